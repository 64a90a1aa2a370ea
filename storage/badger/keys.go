package badger

import (
	"encoding/binary"

	"github.com/poiesic/shortlist/core"
)

// Key prefixes for different data types
const (
	restaurantPrefix = "rest:"
	restaurantIDSeq  = "restseq"
)

// makeRestaurantKey generates a key for a restaurant by ID.
// Format: prefix + big-endian ID, so key order equals insertion order.
func makeRestaurantKey(id core.ID) []byte {
	buf := make([]byte, len(restaurantPrefix)+8)
	offset := copy(buf, restaurantPrefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}
