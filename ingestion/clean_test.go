package ingestion

import (
	"testing"

	"github.com/poiesic/shortlist/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanRow(t *testing.T) {
	base := RawRow{Name: " Jalsa ", Location: " Banashankari", Cuisines: "North Indian,  Mughlai ,,Chinese", Rate: "4.1/5", Votes: "775", Cost: "800", RestType: " Casual Dining "}

	r, err := CleanRow(base)
	require.NoError(t, err)
	assert.Equal(t, "Jalsa", r.Name)
	assert.Equal(t, "Banashankari", r.Location)
	assert.Equal(t, "North Indian, Mughlai, Chinese", r.Cuisines)
	assert.Equal(t, 4.1, r.Rate)
	require.NotNil(t, r.Votes)
	assert.Equal(t, 775, *r.Votes)
	require.NotNil(t, r.Cost)
	assert.Equal(t, 800.0, *r.Cost)
	assert.Equal(t, "Casual Dining", r.RestType)
}

func TestCleanRow_Values(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*RawRow)
		check func(t *testing.T, r core.Restaurant)
	}{
		{
			name: "rate with spaces before slash",
			edit: func(r *RawRow) { r.Rate = "3.9 /5" },
			check: func(t *testing.T, r core.Restaurant) {
				assert.Equal(t, 3.9, r.Rate)
			},
		},
		{
			name: "plain numeric rate",
			edit: func(r *RawRow) { r.Rate = "4" },
			check: func(t *testing.T, r core.Restaurant) {
				assert.Equal(t, 4.0, r.Rate)
			},
		},
		{
			name: "cost with thousands separator",
			edit: func(r *RawRow) { r.Cost = "1,200" },
			check: func(t *testing.T, r core.Restaurant) {
				require.NotNil(t, r.Cost)
				assert.Equal(t, 1200.0, *r.Cost)
			},
		},
		{
			name: "blank cost and votes are missing",
			edit: func(r *RawRow) { r.Cost = " "; r.Votes = "" },
			check: func(t *testing.T, r core.Restaurant) {
				assert.Nil(t, r.Cost)
				assert.Nil(t, r.Votes)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := RawRow{Name: "A", Location: "HSR", Cuisines: "Cafe", Rate: "4.0/5"}
			tt.edit(&raw)
			r, err := CleanRow(raw)
			require.NoError(t, err)
			tt.check(t, r)
		})
	}
}

func TestCleanRow_Dropped(t *testing.T) {
	tests := []struct {
		name string
		edit func(*RawRow)
	}{
		{"new restaurant", func(r *RawRow) { r.Rate = "NEW" }},
		{"dash rate", func(r *RawRow) { r.Rate = "-" }},
		{"blank rate", func(r *RawRow) { r.Rate = "" }},
		{"garbage rate", func(r *RawRow) { r.Rate = "great" }},
		{"nan rate", func(r *RawRow) { r.Rate = "NaN" }},
		{"rate above five", func(r *RawRow) { r.Rate = "7/5" }},
		{"blank location", func(r *RawRow) { r.Location = "  " }},
		{"only separators in cuisines", func(r *RawRow) { r.Cuisines = " , ," }},
		{"blank name", func(r *RawRow) { r.Name = "" }},
		{"garbage cost", func(r *RawRow) { r.Cost = "cheap" }},
		{"negative cost", func(r *RawRow) { r.Cost = "-10" }},
		{"garbage votes", func(r *RawRow) { r.Votes = "many" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := RawRow{Name: "A", Location: "HSR", Cuisines: "Cafe", Rate: "4.0/5", Cost: "300", Votes: "12"}
			tt.edit(&raw)
			_, err := CleanRow(raw)
			assert.ErrorIs(t, err, ErrMalformedRow)
		})
	}
}
