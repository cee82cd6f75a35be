package hujsonutil

import (
	"strings"

	"github.com/tailscale/hujson"
)

// Value wraps hujson.Value to provide convenience helpers.
type Value struct {
	*hujson.Value
}

// NewValue wraps a hujson.Value.
func NewValue(v *hujson.Value) *Value {
	return &Value{Value: v}
}

// Parse parses HuJSON (or plain JSON) into a Value.
func Parse(b []byte) (*Value, error) {
	v, err := hujson.Parse(b)
	if err != nil {
		return nil, err
	}
	return NewValue(&v), nil
}

// SetComment replaces whatever precedes the value with one line comment
// per line. Lines must not contain newlines.
func (v *Value) SetComment(lines ...string) {
	var b strings.Builder
	for _, ln := range lines {
		b.WriteString("// ")
		b.WriteString(ln)
		b.WriteByte('\n')
	}
	v.BeforeExtra = hujson.Extra(b.String())
}

// Format pretty-prints JSON data and heads it with a comment block.
func Format(data []byte, comment ...string) ([]byte, error) {
	v, err := Parse(data)
	if err != nil {
		return nil, err
	}
	v.Format()
	v.SetComment(comment...)
	return v.Pack(), nil
}
