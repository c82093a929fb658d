package handler

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepr(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"key value", Event{"key": "value"}, "{'key': 'value'}"},
		{"empty", Event{}, "{}"},
		{"sorted keys", map[string]any{"b": 2.0, "a": 1.0}, "{'a': 1, 'b': 2}"},
		{"fraction", 1.5, "1.5"},
		{"bools and none", []any{true, false, nil}, "[True, False, None]"},
		{"nested", Event{"x": map[string]any{"y": []any{"z", 3.0}}}, "{'x': {'y': ['z', 3]}}"},
		{"single quote", "it's", `"it's"`},
		{"both quotes", `it's "x"`, `'it\'s "x"'`},
		{"newline", "a\nb", `'a\nb'`},
		{"backslash", `a\b`, `'a\\b'`},
		{"json number", json.Number("42"), "42"},
		{"int", 7, "7"},
		{"string map", map[string]string{"k": "v"}, "{'k': 'v'}"},
		{"string list", []string{"a", "b"}, "['a', 'b']"},
		{"json float", json.Number("1.0"), "1.0"},
		{"json fraction", json.Number("2.5"), "2.5"},
		{"json exponent", json.Number("1e5"), "100000.0"},
		{"json large float", json.Number("1e16"), "1e+16"},
		{"json small float", json.Number("0.00001"), "1e-05"},
		{"json large int", json.Number("12345678901234567890"), "12345678901234567890"},
		{"json negative zero", json.Number("-0"), "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Repr(tt.in))
		})
	}
}

func TestReprDecodedEvent(t *testing.T) {
	var ev Event
	require.NoError(t, json.Unmarshal([]byte(`{"a": 1.0, "b": 1, "c": [2.50, 10000000000000000001], "d": {"e": 3}}`), &ev))
	assert.Equal(t, "{'a': 1.0, 'b': 1, 'c': [2.5, 10000000000000000001], 'd': {'e': 3}}", Repr(ev))

	var empty Event
	require.NoError(t, json.Unmarshal([]byte(`null`), &empty))
	assert.Nil(t, empty)
	assert.Error(t, json.Unmarshal([]byte(`[1]`), &empty))
}
