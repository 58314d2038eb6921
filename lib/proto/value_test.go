package proto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnwrap(t *testing.T) {
	testCases := []struct {
		name     string
		in       any
		expected any
	}{
		{"plain string", "x", "x"},
		{"plain number", float64(3), float64(3)},
		{"plain bool", true, true},
		{"nil", nil, nil},
		{"tagged integer", map[string]any{"Integer": float64(42)}, float64(42)},
		{"tagged string", map[string]any{"String": "hello"}, "hello"},
		{"tagged boolean", map[string]any{"Boolean": false}, false},
		{
			"two keys is data, not a wrapper",
			map[string]any{"a": float64(1), "b": float64(2)},
			map[string]any{"a": float64(1), "b": float64(2)},
		},
		{"empty object unchanged", map[string]any{}, map[string]any{}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Unwrap(tc.in))
		})
	}
}

// Unwrapping an already-unwrapped value must be a no-op.
func TestUnwrapIdempotent(t *testing.T) {
	once := Unwrap(map[string]any{"Float": 1.5})
	assert.Equal(t, once, Unwrap(once))
}

func TestTag(t *testing.T) {
	tag, inner, ok := Tag(map[string]any{"Timestamp": float64(1000)})
	assert.True(t, ok)
	assert.Equal(t, "Timestamp", tag)
	assert.Equal(t, float64(1000), inner)

	_, _, ok = Tag("scalar")
	assert.False(t, ok)

	_, _, ok = Tag(map[string]any{"a": 1, "b": 2})
	assert.False(t, ok)
}

func TestIsNull(t *testing.T) {
	assert.True(t, IsNull(nil))
	assert.True(t, IsNull("Null"))
	assert.False(t, IsNull("null"))
	assert.False(t, IsNull(""))
	assert.False(t, IsNull(float64(0)))
	// a genuine string "Null" arrives wrapped and is not the marker
	assert.False(t, IsNull(map[string]any{"String": "Null"}))
}
