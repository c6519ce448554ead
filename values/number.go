// Copyright (c) 2026, CoEditAR. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package values

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Number is a [Simple] float64 value with an optional inclusive range.
type Number struct {
	Simple[float64]

	min, max *float64
}

// Range returns the minimum and maximum of the range, and
// false for each bound that is not set.
func (n *Number) Range() (lo float64, hasLo bool, hi float64, hasHi bool) {
	if n.min != nil {
		lo, hasLo = *n.min, true
	}
	if n.max != nil {
		hi, hasHi = *n.max, true
	}
	return
}

// SetRange sets the inclusive range of the number. NaN clears a bound.
// It returns a [ValidationError] without changing anything if min is
// greater than max, or if the current value or default value is out of
// the new range.
func (n *Number) SetRange(min, max float64) error {
	var lo, hi *float64
	if !math.IsNaN(min) {
		lo = &min
	}
	if !math.IsNaN(max) {
		hi = &max
	}
	if lo != nil && hi != nil && min > max {
		return &ValidationError{Name: n.Name, Value: min, Reason: fmt.Sprintf("minimum is greater than maximum %v", max)}
	}
	for _, cur := range []*float64{n.value, n.def} {
		if cur == nil {
			continue
		}
		if err := n.checkRange(*cur, lo, hi); err != nil {
			return err
		}
	}
	n.min, n.max = lo, hi
	return nil
}

func (n *Number) checkRange(v float64, lo, hi *float64) error {
	if lo != nil && v < *lo {
		return &ValidationError{Name: n.Name, Value: v, Reason: fmt.Sprintf("less than minimum %v", *lo)}
	}
	if hi != nil && v > *hi {
		return &ValidationError{Name: n.Name, Value: v, Reason: fmt.Sprintf("greater than maximum %v", *hi)}
	}
	return nil
}

// CheckValue rejects NaN and values outside the range of the number,
// then applies the checks of [Simple].
func (n *Number) CheckValue(v float64) error {
	if math.IsNaN(v) {
		return &ValidationError{Name: n.Name, Value: v, Reason: "not a number"}
	}
	if err := n.checkRange(v, n.min, n.max); err != nil {
		return err
	}
	return n.Simple.CheckValue(v)
}

// ConvertValue accepts all Go number types and numeric strings.
func (n *Number) ConvertValue(data any) (float64, error) {
	if f, ok := toFloat(data); ok {
		return f, nil
	}
	if s, ok := data.(string); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err == nil {
			return f, nil
		}
	}
	return 0, fmt.Errorf("values: %q: %w %v (%T) to number", n.Name, ErrConvert, data, data)
}

// toFloat converts the number types produced by the decoders to float64.
func toFloat(data any) (float64, bool) {
	switch v := data.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	}
	return 0, false
}
