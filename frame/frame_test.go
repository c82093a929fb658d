package frame

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelfCheckShape(t *testing.T) {
	df, err := SelfCheck()
	require.NoError(t, err)

	assert.Equal(t, 2, df.Ncol())
	assert.Equal(t, 2, df.Nrow())
	assert.Equal(t, []string{"col1", "col2"}, df.Names())

	col1, err := Ints(df, "col1")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, col1)

	col2, err := Ints(df, "col2")
	require.NoError(t, err)
	assert.Equal(t, []int{3, 4}, col2)
}

func TestRenderContainsColumns(t *testing.T) {
	df, err := SelfCheck()
	require.NoError(t, err)

	out := Render(df)
	assert.Contains(t, out, "col1")
	assert.Contains(t, out, "col2")
	assert.True(t, strings.Contains(out, "2x2"), "render: %q", out)
}

func TestFromMapSortsColumns(t *testing.T) {
	df, err := FromMap(map[string][]int{"col2": {3, 4}, "col1": {1, 2}})
	require.NoError(t, err)
	assert.Equal(t, []string{"col1", "col2"}, df.Names())
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name string
		cols []Column
	}{
		{"no columns", nil},
		{"empty name", []Column{{Name: "", Values: []int{1}}}},
		{"duplicate", []Column{{Name: "a", Values: []int{1}}, {Name: "a", Values: []int{2}}}},
		{"ragged", []Column{{Name: "a", Values: []int{1, 2}}, {Name: "b", Values: []int{3}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cols...)
			assert.Error(t, err)
		})
	}
}

func TestIntsUnknownColumn(t *testing.T) {
	df, err := SelfCheck()
	require.NoError(t, err)

	_, err = Ints(df, "missing")
	assert.Error(t, err)
}
