package ifs

import (
	"github.com/matzehuels/ifsgen/pkg/errors"
)

// DefaultMapCount is the number of zero-valued maps held by [NewMapSet].
const DefaultMapCount = 5

// MapSet is an ordered, index-addressed collection of affine maps. The order
// is the application order used by [Generate].
//
// MapSet is not safe for concurrent use.
type MapSet struct {
	maps []AffineMap
}

// NewMapSet returns a set of DefaultMapCount zero-valued maps. Callers are
// expected to overwrite them with [MapSet.SetAt] before generating.
func NewMapSet() *MapSet {
	return &MapSet{maps: make([]AffineMap, DefaultMapCount)}
}

// NewMapSetOf returns a set holding copies of maps in the given order.
func NewMapSetOf(maps ...AffineMap) *MapSet {
	s := &MapSet{maps: make([]AffineMap, len(maps))}
	copy(s.maps, maps)
	return s
}

// Len returns the number of maps.
func (s *MapSet) Len() int { return len(s.maps) }

// Add appends m to the end of the set.
func (s *MapSet) Add(m AffineMap) {
	s.maps = append(s.maps, m)
}

// RemoveAt deletes the map at index and shifts later maps down by one.
// It returns an INDEX_OUT_OF_RANGE error and leaves the set unchanged when
// index is outside [0, Len()).
func (s *MapSet) RemoveAt(index int) error {
	if err := s.check(index); err != nil {
		return err
	}
	copy(s.maps[index:], s.maps[index+1:])
	s.maps[len(s.maps)-1] = AffineMap{}
	s.maps = s.maps[:len(s.maps)-1]
	return nil
}

// SetAt replaces the map at index, keeping its position.
// It fails like [MapSet.RemoveAt].
func (s *MapSet) SetAt(index int, m AffineMap) error {
	if err := s.check(index); err != nil {
		return err
	}
	s.maps[index] = m
	return nil
}

// At returns the map at index.
func (s *MapSet) At(index int) (AffineMap, error) {
	if err := s.check(index); err != nil {
		return AffineMap{}, err
	}
	return s.maps[index], nil
}

// Maps returns a copy of the maps in application order.
func (s *MapSet) Maps() []AffineMap {
	out := make([]AffineMap, len(s.maps))
	copy(out, s.maps)
	return out
}

// Snapshot returns an independent copy of the set.
func (s *MapSet) Snapshot() *MapSet {
	return NewMapSetOf(s.maps...)
}

func (s *MapSet) check(index int) error {
	if index < 0 || index >= len(s.maps) {
		return errors.IndexOutOfRange(index, len(s.maps))
	}
	return nil
}
