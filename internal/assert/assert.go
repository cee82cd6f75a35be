package assert

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Assert is a wrapper around assert.Assertions and testing.T
type Assert struct {
	*assert.Assertions
	T *testing.T
}

// New creates a new Assert object
func New(t *testing.T) *Assert {
	return &Assert{
		Assertions: assert.New(t),
		T:          t,
	}
}

// fixturePath is fixtures/<test name>_<name><ext>. Subtest names contain a
// slash, which becomes a directory.
func (a *Assert) fixturePath(name, ext string) string {
	return filepath.Join("fixtures", fmt.Sprintf("%s_%s%s", a.T.Name(), name, ext))
}

// equalToFixture compares got with the fixture file, or rewrites the file
// when GEN_FIXTURE=true.
func (a *Assert) equalToFixture(path, got string) {
	if os.Getenv("GEN_FIXTURE") == "true" {
		a.NoError(os.MkdirAll(filepath.Dir(path), 0755), "Failed to create fixture directory")
		a.NoError(os.WriteFile(path, []byte(got), 0644), "Failed to write fixture file")
		return
	}

	expected, err := os.ReadFile(path)
	if !a.NoError(err, "Failed to read fixture file (regenerate with GEN_FIXTURE=true)") {
		return
	}
	a.Equal(string(expected), got, "Result does not match fixture %s", path)
}

// EqualToJSONFixture marshals result as indented JSON and compares it with
// fixtures/<test name>_<fixtureName>.json.
func (a *Assert) EqualToJSONFixture(fixtureName string, result any) {
	data, err := json.MarshalIndent(result, "", "  ")
	if !a.NoError(err, "Failed to marshal result to JSON") {
		return
	}
	a.equalToFixture(a.fixturePath(fixtureName, ".json"), string(data)+"\n")
}

// EqualToTextFixture compares text output, ignoring trailing whitespace on
// each line, with fixtures/<test name>_<fixtureName>.txt.
func (a *Assert) EqualToTextFixture(fixtureName string, got string) {
	a.equalToFixture(a.fixturePath(fixtureName, ".txt"), trimLines(got))
}

func trimLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, ln := range lines {
		lines[i] = strings.TrimRight(ln, " \t")
	}
	return strings.Join(lines, "\n")
}
