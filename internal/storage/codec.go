package storage

import (
	"cmp"
	"encoding/json"
	"fmt"
	"sort"
)

// Codec converts a stored field to and from its persisted bytes.
// Each Store is given its codec when it is created.
type Codec[T any] interface {
	Encode(v T) ([]byte, error)
	Decode(data []byte) (T, error)
}

// StringSetCodec persists a Set as a JSON array of its members, sorted
type StringSetCodec struct{}

// Encode writes the members as a sorted JSON array
func (StringSetCodec) Encode(s Set) ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// Decode reads a JSON array of strings back into a Set.
// null, either as the payload or as an element, is rejected.
func (StringSetCodec) Decode(data []byte) (Set, error) {
	var members []*string
	if err := json.Unmarshal(data, &members); err != nil {
		return nil, err
	}
	if members == nil {
		return nil, fmt.Errorf("expected a JSON array, got %s", data)
	}

	s := make(Set, len(members))
	for i, m := range members {
		if m == nil {
			return nil, fmt.Errorf("element %d is null, want a string", i)
		}
		s[*m] = struct{}{}
	}
	return s, nil
}

// JSONCodec persists a value as plain JSON
type JSONCodec[T any] struct{}

// Encode marshals v with encoding/json
func (JSONCodec[T]) Encode(v T) ([]byte, error) {
	return json.Marshal(v)
}

// Decode unmarshals data into a new T
func (JSONCodec[T]) Decode(data []byte) (T, error) {
	var v T
	err := json.Unmarshal(data, &v)
	return v, err
}

// PairsCodec persists a map as a JSON array of [key, value] pairs ordered by key
type PairsCodec[K cmp.Ordered, V any] struct{}

// Encode writes the entries as [key, value] pairs sorted by key
func (PairsCodec[K, V]) Encode(m map[K]V) ([]byte, error) {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	pairs := make([][2]any, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, [2]any{k, m[k]})
	}
	return json.Marshal(pairs)
}

// Decode reads [key, value] pairs back into a map; every pair must have two elements
func (PairsCodec[K, V]) Decode(data []byte) (map[K]V, error) {
	var raw [][]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	m := make(map[K]V, len(raw))
	for i, pair := range raw {
		if len(pair) != 2 {
			return nil, fmt.Errorf("pair %d has %d elements, want 2", i, len(pair))
		}
		var k K
		if err := json.Unmarshal(pair[0], &k); err != nil {
			return nil, fmt.Errorf("pair %d key: %w", i, err)
		}
		var v V
		if err := json.Unmarshal(pair[1], &v); err != nil {
			return nil, fmt.Errorf("pair %d value: %w", i, err)
		}
		m[k] = v
	}
	return m, nil
}
