package artifact

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/huangsam/testaudit/schema"
)

type violationElement struct {
	Text string `xml:",chardata"`
}

// ParseViolationReport reads a PMD XML report and returns the violations of rules in the rule set.
//
// The namespace of the root element decides which elements match: a namespaced report
// only matches namespaced file and violation elements, a plain report only plain ones.
func ParseViolationReport(path string, rules schema.RuleSet) ([]schema.ViolationRecord, error) {
	f, err := openArtifact(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	dec := newDecoder(f)
	var (
		records   []schema.ViolationRecord
		ns        string
		rootSeen  bool
		depth     int
		fileDepth = -1
		fileName  string
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse lint report %s: %w", path, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			if !rootSeen {
				rootSeen = true
				ns = t.Name.Space
				continue
			}
			if t.Name.Space != ns {
				continue
			}

			switch {
			case t.Name.Local == "file" && fileDepth < 0:
				fileDepth = depth
				fileName = attrOr(t.Attr, "name", schema.UnknownValue)

			case t.Name.Local == "violation" && fileDepth > 0 && depth == fileDepth+1:
				var v violationElement
				if err := dec.DecodeElement(&v, &t); err != nil {
					return nil, fmt.Errorf("failed to parse violation in %s: %w", path, err)
				}
				depth-- // DecodeElement consumed the matching end element

				ruleName := attrOr(t.Attr, "rule", schema.UnknownValue)
				rule, ok := rules.Lookup(ruleName)
				if !ok {
					continue
				}
				records = append(records, schema.ViolationRecord{
					File:        fileName,
					Rule:        ruleName,
					RuleSet:     attrOr(t.Attr, "ruleset", schema.UnknownValue),
					Priority:    attrOr(t.Attr, "priority", schema.UnknownValue),
					BeginLine:   attrOr(t.Attr, "beginline", schema.UnknownValue),
					EndLine:     attrOr(t.Attr, "endline", schema.UnknownValue),
					Message:     textOr(v.Text, schema.NoDescriptionMessage),
					Description: rule.Description,
					RuleRef:     rule.RuleRef,
				})
			}

		case xml.EndElement:
			if depth == fileDepth {
				fileDepth = -1
			}
			depth--
		}
	}
	return records, nil
}
