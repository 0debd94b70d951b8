package dto

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
)

// Number accepts both JSON numbers and numeric strings. HTML forms post
// numeric inputs as strings, so "1200" and 1200 decode to the same value.
// An empty string decodes to zero. NaN and infinities are rejected.
type Number float64

func (n *Number) UnmarshalJSON(b []byte) error {
	s := string(bytes.Trim(b, `"`))
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("invalid number %q", s)
	}
	*n = Number(f)
	return nil
}

func (n Number) Float() float64 { return float64(n) }

func (n Number) Int() int { return int(n) }

// OptionalID distinguishes a field that was omitted from one that was sent
// as null. Set is true whenever the key was present in the body.
type OptionalID struct {
	Set   bool
	Value *uint
}

func (o *OptionalID) UnmarshalJSON(b []byte) error {
	o.Set = true
	s := string(bytes.Trim(b, `"`))
	if s == "null" || s == "" {
		o.Value = nil
		return nil
	}
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return fmt.Errorf("invalid id %q", s)
	}
	v := uint(id)
	o.Value = &v
	return nil
}
