// Copyright (c) 2026, CoEditAR. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package codec

import (
	"fmt"
	"maps"
	"slices"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"coeditar.org/core/base/ordmap"
)

func encodeBSON(data any) ([]byte, error) {
	doc, ok := toBSON(data).(bson.D)
	if !ok {
		return nil, fmt.Errorf("codec: encode bson: %w", ErrNotDocument)
	}
	b, err := bson.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("codec: encode bson: %w", err)
	}
	return b, nil
}

// toBSON converts ordered and plain maps to ordered BSON documents,
// recursively.
func toBSON(v any) any {
	switch x := v.(type) {
	case *ordmap.Map[string, any]:
		d := make(bson.D, 0, x.Len())
		for k, val := range x.All() {
			d = append(d, bson.E{Key: k, Value: toBSON(val)})
		}
		return d
	case map[string]any:
		return toBSON(ordmap.Make(sortedPairs(x)))
	case []any:
		a := make(bson.A, len(x))
		for i, e := range x {
			a[i] = toBSON(e)
		}
		return a
	}
	return v
}

func sortedPairs(m map[string]any) []ordmap.KeyValue[string, any] {
	kvs := make([]ordmap.KeyValue[string, any], 0, len(m))
	for _, k := range slices.Sorted(maps.Keys(m)) {
		kvs = append(kvs, ordmap.KeyValue[string, any]{Key: k, Value: m[k]})
	}
	return kvs
}

func decodeBSON(b []byte) (any, error) {
	var doc bson.D
	if err := bson.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("codec: decode bson: %w", err)
	}
	return fromBSON(doc), nil
}

// fromBSON converts BSON documents and arrays to ordered maps and slices,
// recursively.
func fromBSON(v any) any {
	switch x := v.(type) {
	case bson.D:
		om := ordmap.New[string, any]()
		for _, e := range x {
			om.Add(e.Key, fromBSON(e.Value))
		}
		return om
	case bson.A:
		s := make([]any, len(x))
		for i, e := range x {
			s[i] = fromBSON(e)
		}
		return s
	case primitive.Null, primitive.Undefined:
		return nil
	}
	return v
}
