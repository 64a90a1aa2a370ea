package ingestion

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ReadCSV reads rows from a CSV stream whose first record is a header.
// Columns are matched by name, case-insensitively; unknown columns are ignored.
// The name, location, cuisines and rate columns are required.
func ReadCSV(r io.Reader) ([]RawRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return []RawRow{}, nil
		}
		return nil, fmt.Errorf("reading header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := index[h]; !dup {
			index[h] = i
		}
	}
	for _, required := range []string{ColumnName, ColumnLocation, ColumnCuisines, ColumnRate} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, required)
		}
	}

	costCol := -1
	for _, alias := range costAliases {
		if i, ok := index[alias]; ok {
			costCol = i
			break
		}
	}

	field := func(record []string, col int) string {
		if col < 0 || col >= len(record) {
			return ""
		}
		return record[col]
	}
	column := func(name string) int {
		if i, ok := index[name]; ok {
			return i
		}
		return -1
	}
	var (
		nameCol     = column(ColumnName)
		locationCol = column(ColumnLocation)
		cuisinesCol = column(ColumnCuisines)
		rateCol     = column(ColumnRate)
		votesCol    = column(ColumnVotes)
		restTypeCol = column(ColumnRestType)
		addressCol  = column(ColumnAddress)
	)

	rows := []RawRow{}
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", len(rows)+1, err)
		}
		rows = append(rows, RawRow{
			Name:     field(record, nameCol),
			Location: field(record, locationCol),
			Cuisines: field(record, cuisinesCol),
			Rate:     field(record, rateCol),
			Votes:    field(record, votesCol),
			Cost:     field(record, costCol),
			RestType: field(record, restTypeCol),
			Address:  field(record, addressCol),
		})
	}
	return rows, nil
}

// ReadJSON reads rows from a JSON document. It accepts an array of row
// objects, or an object with a "rows" array whose items are row objects or
// wrap one under "row". Values may be strings, numbers or string lists.
// Optional fields missing at the top level are looked up in a nested
// "raw_metadata" object.
func ReadJSON(r io.Reader) ([]RawRow, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding JSON: %w", err)
	}

	var items []any
	switch v := doc.(type) {
	case []any:
		items = v
	case map[string]any:
		list, ok := v["rows"].([]any)
		if !ok {
			return nil, fmt.Errorf("%w: object without a rows array", ErrUnsupportedDocument)
		}
		items = list
	default:
		return nil, fmt.Errorf("%w: top level must be an array or object", ErrUnsupportedDocument)
	}

	rows := make([]RawRow, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: row %d is not an object", ErrUnsupportedDocument, i)
		}
		if inner, ok := obj["row"].(map[string]any); ok {
			obj = inner
		}
		rows = append(rows, rowFromObject(obj))
	}
	return rows, nil
}

func rowFromObject(obj map[string]any) RawRow {
	meta, _ := obj["raw_metadata"].(map[string]any)
	lookup := func(key string) string {
		if v, ok := obj[key]; ok && v != nil {
			return text(v)
		}
		if v, ok := meta[key]; ok && v != nil {
			return text(v)
		}
		return ""
	}

	row := RawRow{
		Name:     lookup(ColumnName),
		Location: lookup(ColumnLocation),
		Cuisines: lookup(ColumnCuisines),
		Rate:     lookup(ColumnRate),
		Votes:    lookup(ColumnVotes),
		RestType: lookup(ColumnRestType),
		Address:  lookup(ColumnAddress),
	}
	for _, alias := range costAliases {
		if row.Cost = lookup(alias); row.Cost != "" {
			break
		}
	}
	return row
}

// text renders a decoded JSON value as row text.
func text(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "Yes"
		}
		return "No"
	case []any:
		parts := make([]string, 0, len(t))
		for _, p := range t {
			if s := strings.TrimSpace(text(p)); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	default:
		return ""
	}
}
