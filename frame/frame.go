// Package frame builds the in-memory table used to confirm the data frame
// library is linked into the function.
package frame

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Column is a named column of integers.
type Column struct {
	Name   string
	Values []int
}

// SelfCheckColumns is the fixed literal built on every invocation.
func SelfCheckColumns() []Column {
	return []Column{
		{Name: "col1", Values: []int{1, 2}},
		{Name: "col2", Values: []int{3, 4}},
	}
}

// New builds a data frame from the given columns, in order.
func New(cols ...Column) (dataframe.DataFrame, error) {
	if len(cols) == 0 {
		return dataframe.DataFrame{}, errors.New("frame: no columns")
	}

	seen := make(map[string]struct{}, len(cols))
	list := make([]series.Series, 0, len(cols))
	for _, col := range cols {
		if col.Name == "" {
			return dataframe.DataFrame{}, errors.New("frame: empty column name")
		}
		if _, ok := seen[col.Name]; ok {
			return dataframe.DataFrame{}, fmt.Errorf("frame: duplicate column %q", col.Name)
		}
		seen[col.Name] = struct{}{}
		if len(col.Values) != len(cols[0].Values) {
			return dataframe.DataFrame{}, fmt.Errorf("frame: column %q has %d rows, want %d",
				col.Name, len(col.Values), len(cols[0].Values))
		}
		list = append(list, series.New(col.Values, series.Int, col.Name))
	}

	df := dataframe.New(list...)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("frame: %w", df.Err)
	}
	return df, nil
}

// FromMap builds a data frame with columns ordered by name.
func FromMap(data map[string][]int) (dataframe.DataFrame, error) {
	names := make([]string, 0, len(data))
	for name := range data {
		names = append(names, name)
	}
	sort.Strings(names)

	cols := make([]Column, 0, len(names))
	for _, name := range names {
		cols = append(cols, Column{Name: name, Values: data[name]})
	}
	return New(cols...)
}

// SelfCheck builds the two-column, two-row check table.
func SelfCheck() (dataframe.DataFrame, error) {
	return New(SelfCheckColumns()...)
}

// Render returns the textual form written to the diagnostic output.
func Render(df dataframe.DataFrame) string {
	return df.String()
}

// Ints returns the values of the named column.
func Ints(df dataframe.DataFrame, name string) ([]int, error) {
	col := df.Col(name)
	if col.Err != nil {
		return nil, fmt.Errorf("frame: %w", col.Err)
	}
	return col.Int()
}
