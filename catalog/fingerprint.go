package catalog

import (
	"encoding/hex"
	"strconv"

	"github.com/go-crypt/x/blake2b"
	"github.com/poiesic/shortlist/core"
)

// fingerprintSize is the digest length in bytes.
const fingerprintSize = 16

// Fingerprint returns a hex BLAKE2b digest of the dataset contents. Datasets
// holding the same records in the same order have the same fingerprint.
// Storage IDs do not contribute.
func (d *Dataset) Fingerprint() string {
	h, _ := blake2b.New(fingerprintSize, nil)

	var buf []byte
	for _, r := range d.All() {
		buf = appendRecord(buf[:0], &r)
		h.Write(buf)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// appendRecord writes r as NUL separated fields. Missing votes and cost are
// written as "-" so they differ from zero.
func appendRecord(buf []byte, r *core.Restaurant) []byte {
	field := func(s string) {
		buf = append(buf, s...)
		buf = append(buf, 0)
	}

	field(r.Name)
	field(r.Location)
	field(r.Cuisines)
	field(strconv.FormatFloat(r.Rate, 'g', -1, 64))
	if r.Votes != nil {
		field(strconv.Itoa(*r.Votes))
	} else {
		field("-")
	}
	if r.Cost != nil {
		field(strconv.FormatFloat(*r.Cost, 'g', -1, 64))
	} else {
		field("-")
	}
	field(r.RestType)
	field(r.Address)
	return append(buf, '\n')
}
