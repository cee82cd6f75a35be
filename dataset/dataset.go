// Package dataset loads set/element memberships from files and databases and
// generates synthetic ones.
//
// Every source is reduced to (set, element) pairs. Sets keep the order in
// which they first appear, which the solver uses to break ties, and each
// set's elements keep their order too.
package dataset

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hayeah/setcover"
)

// Dataset is a loaded input, ready for setcover.SolveDynamic.
type Dataset struct {
	Name string
	Sets []setcover.DynamicSet
	// Rows is the number of (set, element) pairs read, duplicates included.
	Rows int
}

// Options tunes Load.
type Options struct {
	// Query overrides DefaultQuery for SQLite sources.
	Query string
}

// Load reads path, choosing the format by extension: .csv, .json/.jsonc/.hujson
// or .db/.sqlite/.sqlite3.
func Load(ctx context.Context, path string, opts Options) (*Dataset, error) {
	var (
		ds  *Dataset
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		ds, err = LoadCSV(path)
	case ".json", ".jsonc", ".hujson":
		ds, err = LoadJSON(path)
	case ".db", ".sqlite", ".sqlite3":
		ds, err = LoadSQLite(ctx, path, opts.Query)
	default:
		return nil, fmt.Errorf("unknown dataset format %q for %s", ext, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	ds.Name = filepath.Base(path)
	return ds, nil
}

// Memberships returns each set's elements as strings, for display and tests.
func (d *Dataset) Memberships() map[string][]string {
	out := make(map[string][]string, len(d.Sets))
	for _, set := range d.Sets {
		elems, _ := set.Elements.([]any)
		strs := make([]string, len(elems))
		for i, el := range elems {
			strs[i] = fmt.Sprint(el)
		}
		out[fmt.Sprint(set.ID)] = strs
	}
	return out
}

// builder groups pairs by set in first-seen order.
type builder struct {
	index map[any]int
	ids   []any
	elems [][]any
	rows  int
}

func newBuilder() *builder {
	return &builder{index: make(map[any]int)}
}

func (b *builder) add(set, el any) {
	i, ok := b.index[set]
	if !ok {
		i = len(b.ids)
		b.index[set] = i
		b.ids = append(b.ids, set)
		b.elems = append(b.elems, nil)
	}
	b.elems[i] = append(b.elems[i], el)
	b.rows++
}

func (b *builder) dataset() *Dataset {
	sets := make([]setcover.DynamicSet, len(b.ids))
	for i, id := range b.ids {
		sets[i] = setcover.DynamicSet{ID: id, Elements: b.elems[i]}
	}
	return &Dataset{Sets: sets, Rows: b.rows}
}

// columnType decides whether a text column holds integers: every value must
// be a canonical base-10 int64.
type columnType struct {
	ints bool
	seen bool
}

func (c *columnType) observe(s string) {
	if c.seen && !c.ints {
		return
	}
	n, err := strconv.ParseInt(s, 10, 64)
	c.ints = err == nil && strconv.FormatInt(n, 10) == s
	c.seen = true
}

func (c *columnType) convert(s string) any {
	if c.ints {
		n, _ := strconv.ParseInt(s, 10, 64)
		return n
	}
	return s
}
