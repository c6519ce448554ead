// Copyright (c) 2026, CoEditAR. All rights reserved.
// Copyright (c) 2018, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"reflect"
	"slices"

	"coeditar.org/core/base/ordmap"
)

// ErrNotStructured is returned when string data given to [Item.Deserialize]
// parses to a scalar value instead of a map or a sequence.
var ErrNotStructured = errors.New("tree: data is not a map or a sequence")

// Serialize returns an ordered map with the name of the item, if any,
// followed by the serialized data of every child stored under the child's
// name. In [ModeSimple], children that serialize to nil are omitted.
// In [ModeTree], the members of the declared relations of the item are
// stored as a sequence under the relation name instead.
func (it *Item) Serialize(mode Mode) any {
	om := ordmap.New[string, any]()
	if it.Name != "" {
		om.Add("name", it.Name)
	}
	var groups map[*Relation][]any
	for _, kid := range it.children.All() {
		ki := kid.AsItem()
		v := kid.Serialize(mode)
		if mode == ModeTree && ki.relation != nil && ki.relation != it.children && ki.relation.owner == it.This {
			if groups == nil {
				groups = map[*Relation][]any{}
			}
			rel := ki.relation
			if _, has := groups[rel]; !has {
				om.Add(rel.name, nil)
			}
			groups[rel] = append(groups[rel], v)
			continue
		}
		if v == nil && mode == ModeSimple {
			continue
		}
		om.Add(ki.Name, v)
	}
	for rel, vals := range groups {
		om.Add(rel.name, vals)
	}
	return om
}

// Deserialize applies the given data to the item and its children:
//   - A string is parsed as YAML or JSON and the result is deserialized.
//     Parse errors are returned.
//   - A sequence is applied positionally: the i-th element is deserialized
//     into the i-th child. Elements past the last child are ignored.
//   - A map is applied by key. Nil values are skipped. If the key is the
//     name of a declared relation and the value is a sequence, a new item
//     of the relation type is created for every element, which is then
//     deserialized into it. Otherwise, if the key is the name of a child,
//     the value is deserialized into that child. Other keys are ignored.
//
// Maps are ordered maps or plain Go maps, whose keys are processed in
// sorted order. Any other data is ignored.
func (it *Item) Deserialize(data any, mode Mode) error {
	switch d := data.(type) {
	case nil:
		return nil
	case string:
		parsed, err := ordmap.DecodeYAML([]byte(d))
		if err != nil {
			return fmt.Errorf("tree: deserialize %s: %w", it.Path(), err)
		}
		if _, isMap := pairs(parsed); !isMap {
			if _, isSeq := sequence(parsed); !isSeq {
				return fmt.Errorf("tree: deserialize %s: %w", it.Path(), ErrNotStructured)
			}
		}
		return it.This.Deserialize(parsed, mode)
	}
	if seq, ok := sequence(data); ok {
		return it.deserializeSequence(seq, mode)
	}
	if kvs, ok := pairs(data); ok {
		return it.deserializeMap(kvs, mode)
	}
	slog.Debug("tree: ignoring unstructured data", "item", it.Path(), "type", fmt.Sprintf("%T", data))
	return nil
}

func (it *Item) deserializeSequence(seq []any, mode Mode) error {
	for i, v := range seq {
		kid, ok := it.children.GetByIndex(i)
		if !ok {
			break
		}
		if v == nil {
			continue
		}
		if err := kid.Deserialize(v, mode); err != nil {
			return err
		}
	}
	return nil
}

func (it *Item) deserializeMap(kvs []ordmap.KeyValue[string, any], mode Mode) error {
	for _, kv := range kvs {
		if kv.Value == nil {
			continue
		}
		if rel := it.RelationByName(kv.Key); rel != nil {
			if seq, ok := sequence(kv.Value); ok {
				if err := it.growRelation(rel, seq, mode); err != nil {
					return err
				}
				continue
			}
		}
		kid := it.ChildByName(kv.Key)
		if kid == nil {
			continue
		}
		if err := kid.Deserialize(kv.Value, mode); err != nil {
			return err
		}
	}
	return nil
}

// growRelation creates a new item in the given relation for every element
// of the given sequence. The name of each new item is taken from the name
// key of its element if present.
func (it *Item) growRelation(rel *Relation, seq []any, mode Mode) error {
	for _, el := range seq {
		name := ""
		if kvs, ok := pairs(el); ok {
			for _, kv := range kvs {
				if s, isStr := kv.Value.(string); isStr && kv.Key == "name" {
					name = s
					break
				}
			}
		}
		n, err := rel.NewItem(name)
		if err != nil {
			return err
		}
		n.AsItem().Invalidate()
		if err := n.Deserialize(el, mode); err != nil {
			return err
		}
	}
	return nil
}

// pairs returns the key-value pairs of the given map data in order,
// and false if it is not map data.
func pairs(data any) ([]ordmap.KeyValue[string, any], bool) {
	switch d := data.(type) {
	case *ordmap.Map[string, any]:
		if d == nil {
			return nil, false
		}
		return d.Order, true
	case map[string]any:
		keys := slices.Sorted(maps.Keys(d))
		kvs := make([]ordmap.KeyValue[string, any], len(keys))
		for i, k := range keys {
			kvs[i] = ordmap.KeyValue[string, any]{Key: k, Value: d[k]}
		}
		return kvs, true
	}
	return nil, false
}

// sequence returns the given data as a slice of values,
// and false if it is not a slice or array (byte slices are not sequences).
func sequence(data any) ([]any, bool) {
	if s, ok := data.([]any); ok {
		return s, true
	}
	rv := reflect.ValueOf(data)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	if rv.Type().Elem().Kind() == reflect.Uint8 {
		return nil, false
	}
	s := make([]any, rv.Len())
	for i := range s {
		s[i] = rv.Index(i).Interface()
	}
	return s, true
}
