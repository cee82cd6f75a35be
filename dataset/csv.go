package dataset

import (
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"
)

// Row is one membership in the CSV layout: a header line "set,element",
// then one row per element of a set.
type Row struct {
	Set     string `csv:"set"`
	Element string `csv:"element"`
}

// LoadCSV reads a CSV dataset from path.
func LoadCSV(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV reads a CSV dataset. A column whose values are all integers is
// typed int64, otherwise string.
func ReadCSV(r io.Reader) (*Dataset, error) {
	var rows []*Row
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}

	var setCol, elemCol columnType
	for _, row := range rows {
		setCol.observe(row.Set)
		elemCol.observe(row.Element)
	}

	b := newBuilder()
	for _, row := range rows {
		b.add(setCol.convert(row.Set), elemCol.convert(row.Element))
	}
	return b.dataset(), nil
}

// WriteCSV writes d in the CSV layout read by ReadCSV. Sets without
// elements cannot be represented and are skipped.
func (d *Dataset) WriteCSV(w io.Writer) error {
	rows := make([]*Row, 0, d.Rows)
	for _, set := range d.Sets {
		elems, ok := set.Elements.([]any)
		if !ok {
			return fmt.Errorf("set %v: elements are %T, not []any", set.ID, set.Elements)
		}
		for _, el := range elems {
			rows = append(rows, &Row{Set: fmt.Sprint(set.ID), Element: fmt.Sprint(el)})
		}
	}
	return gocsv.Marshal(rows, w)
}
