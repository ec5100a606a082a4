// Package artifact parses the coverage, mutation, lint and build artifacts produced for a test suite.
package artifact

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/huangsam/testaudit/schema"
)

// ErrArtifactNotFound is returned when an input artifact does not exist.
var ErrArtifactNotFound = fmt.Errorf("artifact not found: %w", fs.ErrNotExist)

// openArtifact opens an artifact for reading and maps a missing file to ErrArtifactNotFound.
func openArtifact(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrArtifactNotFound, path)
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return f, nil
}

// attrOr returns the value of an unqualified attribute, or def when it is absent.
func attrOr(attrs []xml.Attr, name, def string) string {
	for _, a := range attrs {
		if a.Name.Space == "" && a.Name.Local == name {
			return a.Value
		}
	}
	return def
}

// textOr returns the trimmed text, or def when it is empty.
func textOr(s, def string) string {
	if t := strings.TrimSpace(s); t != "" {
		return t
	}
	return def
}

// intOr parses a base-10 integer, or returns def when the value is not numeric.
func intOr(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}

// newDecoder builds the XML decoder shared by all report parsers.
func newDecoder(f *os.File) *xml.Decoder {
	dec := xml.NewDecoder(f)
	// Reports declare their own encoding; non UTF-8 input is passed through untouched.
	dec.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) { return input, nil }
	return dec
}

// unknownIfEmpty maps an empty value to the shared unknown placeholder.
func unknownIfEmpty(s string) string {
	return textOr(s, schema.UnknownValue)
}
