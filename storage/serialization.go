package storage

import (
	"fmt"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/shortlist/core"
)

// RestaurantMUS is the MUS serializer for core.Restaurant.
// Optional fields are written as a presence flag followed by the value.
var RestaurantMUS = restaurantMUS{}

type restaurantMUS struct{}

func (s restaurantMUS) Marshal(v core.Restaurant, bs []byte) (n int) {
	n = varint.Uint64.Marshal(uint64(v.Id), bs)
	n += ord.String.Marshal(v.Name, bs[n:])
	n += ord.String.Marshal(v.Location, bs[n:])
	n += ord.String.Marshal(v.Cuisines, bs[n:])
	n += raw.Float64.Marshal(v.Rate, bs[n:])
	n += ord.Bool.Marshal(v.Votes != nil, bs[n:])
	if v.Votes != nil {
		n += varint.Int.Marshal(*v.Votes, bs[n:])
	}
	n += ord.Bool.Marshal(v.Cost != nil, bs[n:])
	if v.Cost != nil {
		n += raw.Float64.Marshal(*v.Cost, bs[n:])
	}
	n += ord.String.Marshal(v.RestType, bs[n:])
	n += ord.String.Marshal(v.Address, bs[n:])
	return
}

func (s restaurantMUS) Unmarshal(bs []byte) (v core.Restaurant, n int, err error) {
	var (
		n1  int
		id  uint64
		has bool
	)
	id, n, err = varint.Uint64.Unmarshal(bs)
	if err != nil {
		return
	}
	v.Id = core.ID(id)
	if v.Name, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if v.Location, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if v.Cuisines, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if v.Rate, n1, err = raw.Float64.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1

	if has, n1, err = ord.Bool.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if has {
		var votes int
		if votes, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
			return
		}
		n += n1
		v.Votes = &votes
	}

	if has, n1, err = ord.Bool.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if has {
		var cost float64
		if cost, n1, err = raw.Float64.Unmarshal(bs[n:]); err != nil {
			return
		}
		n += n1
		v.Cost = &cost
	}

	if v.RestType, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if v.Address, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	return
}

func (s restaurantMUS) Size(v core.Restaurant) (size int) {
	size = varint.Uint64.Size(uint64(v.Id))
	size += ord.String.Size(v.Name)
	size += ord.String.Size(v.Location)
	size += ord.String.Size(v.Cuisines)
	size += raw.Float64.Size(v.Rate)
	size += ord.Bool.Size(v.Votes != nil)
	if v.Votes != nil {
		size += varint.Int.Size(*v.Votes)
	}
	size += ord.Bool.Size(v.Cost != nil)
	if v.Cost != nil {
		size += raw.Float64.Size(*v.Cost)
	}
	size += ord.String.Size(v.RestType)
	size += ord.String.Size(v.Address)
	return
}

// MarshalRestaurant serializes a Restaurant to bytes.
func MarshalRestaurant(record *core.Restaurant) []byte {
	buf := make([]byte, RestaurantMUS.Size(*record))
	RestaurantMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalRestaurant deserializes a Restaurant from bytes.
func UnmarshalRestaurant(data []byte) (*core.Restaurant, error) {
	record, _, err := RestaurantMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &record, nil
}
