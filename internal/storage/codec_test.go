package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringSetCodec(t *testing.T) {
	c := StringSetCodec{}

	data, err := c.Encode(NewSet("z", "a", "m"))
	require.NoError(t, err)
	assert.JSONEq(t, `["a","m","z"]`, string(data))

	empty, err := c.Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(empty))

	s, err := c.Decode([]byte(`["x","x","y"]`))
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, s.Sorted())

	_, err = c.Decode([]byte(`{"x":1}`))
	assert.Error(t, err)
}

func TestStringSetCodecRejectsNull(t *testing.T) {
	c := StringSetCodec{}

	for _, payload := range []string{`["a",null]`, `[null]`, `null`, `["a",1]`} {
		s, err := c.Decode([]byte(payload))
		assert.Error(t, err, payload)
		assert.Nil(t, s, payload)
	}
}

func TestStringSetCodecPreservesOddMembers(t *testing.T) {
	c := StringSetCodec{}
	in := NewSet("", "with \"quotes\"", "ünïcödé", "line\nbreak")

	data, err := c.Encode(in)
	require.NoError(t, err)
	out, err := c.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestPairsCodec(t *testing.T) {
	c := PairsCodec[string, int]{}

	data, err := c.Encode(map[string]int{"b": 2, "a": 1})
	require.NoError(t, err)
	assert.JSONEq(t, `[["a",1],["b",2]]`, string(data))

	m, err := c.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a": 1, "b": 2}, m)

	_, err = c.Decode([]byte(`[["a"]]`))
	assert.Error(t, err)

	_, err = c.Decode([]byte(`[["a","not a number"]]`))
	assert.Error(t, err)
}

func TestJSONCodec(t *testing.T) {
	type prefs struct {
		Theme string `json:"theme"`
	}
	c := JSONCodec[prefs]{}

	data, err := c.Encode(prefs{Theme: "dark"})
	require.NoError(t, err)

	p, err := c.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, "dark", p.Theme)
}

func TestSetToggle(t *testing.T) {
	s := NewSet("a")
	next := s.Toggle("b")

	assert.False(t, s.Has("b"), "toggle must not modify the receiver")
	assert.True(t, next.Has("b"))
	assert.False(t, next.Toggle("a").Has("a"))
}
