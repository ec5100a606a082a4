package artifact

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/huangsam/testaudit/schema"
)

type mutationElement struct {
	MutatedClass  string  `xml:"mutatedClass"`
	MutatedMethod string  `xml:"mutatedMethod"`
	LineNumber    *string `xml:"lineNumber"`
	Mutator       string  `xml:"mutator"`
	KillingTest   string  `xml:"killingTest"`
	Description   string  `xml:"description"`
}

// ParseMutationReport reads a PIT XML report and returns one record per mutation element.
func ParseMutationReport(path string) ([]schema.MutationRecord, error) {
	f, err := openArtifact(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	dec := newDecoder(f)
	var records []schema.MutationRecord
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse mutation report %s: %w", path, err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "mutation" {
			continue
		}

		var m mutationElement
		if err := dec.DecodeElement(&m, &start); err != nil {
			return nil, fmt.Errorf("failed to parse mutation in %s: %w", path, err)
		}
		line := schema.MissingLineNumber
		if m.LineNumber != nil {
			line = intOr(*m.LineNumber, schema.MissingLineNumber)
		}
		records = append(records, schema.MutationRecord{
			Class:       unknownIfEmpty(m.MutatedClass),
			Method:      unknownIfEmpty(m.MutatedMethod),
			Line:        line,
			Mutator:     unknownIfEmpty(m.Mutator),
			Status:      schema.MutationStatus(attrOr(start.Attr, "status", string(schema.UnknownStatus))),
			Detected:    attrOr(start.Attr, "detected", "false") == "true",
			KillingTest: textOr(m.KillingTest, ""),
			Description: textOr(m.Description, ""),
		})
	}
	return records, nil
}
