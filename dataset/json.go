package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/hayeah/setcover"
	"github.com/hayeah/setcover/internal/hujsonutil"
	"github.com/tailscale/hujson"
)

// LoadJSON reads a JSON dataset from path.
func LoadJSON(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadJSON(f)
}

// ReadJSON reads a single object mapping set ids to element arrays:
//
//	{
//	  // comments and trailing commas are fine
//	  "A": [1, 2, 3],
//	  "B": [3, 4],
//	}
//
// Key order is preserved. Keys that are all integers become int64 ids. A key
// that appears twice is an ErrInvalidInputShape, since set ids must be unique.
// Values are passed through untyped, so a value that is not an array, or an
// element that is not a string or integer, is reported by the solver.
func ReadJSON(r io.Reader) (*Dataset, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	std, err := hujson.Standardize(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse json: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(std))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to parse json: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, setcover.ErrInvalidInputShape.New("top-level json value must be an object")
	}

	var (
		keys   []string
		values []any
		keyCol columnType
	)
	seen := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to parse json: %w", err)
		}
		key := tok.(string)
		if first, ok := seen[key]; ok {
			return nil, setcover.ErrInvalidInputShape.New(fmt.Sprintf("duplicate set id %q at keys %d and %d", key, first, len(keys)))
		}
		seen[key] = len(keys)

		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("failed to parse json value of %q: %w", key, err)
		}
		keyCol.observe(key)
		keys = append(keys, key)
		values = append(values, value)
	}

	ds := &Dataset{Sets: make([]setcover.DynamicSet, len(keys))}
	for i, key := range keys {
		ds.Sets[i] = setcover.DynamicSet{ID: keyCol.convert(key), Elements: values[i]}
		if elems, ok := values[i].([]any); ok {
			ds.Rows += len(elems)
		}
	}
	return ds, nil
}

// WriteJSON writes d in the layout read by ReadJSON, headed by a comment
// naming the dataset. Ids are written as object keys, so int64 ids come
// back as int64 only when every id is an integer.
func (d *Dataset) WriteJSON(w io.Writer) error {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, set := range d.Sets {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(fmt.Sprint(set.ID))
		if err != nil {
			return err
		}
		value, err := json.Marshal(set.Elements)
		if err != nil {
			return fmt.Errorf("set %v: %w", set.ID, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')

	out, err := hujsonutil.Format(buf.Bytes(), fmt.Sprintf("%s: %d sets, %d memberships", d.Name, len(d.Sets), d.Rows))
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}
