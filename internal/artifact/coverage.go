package artifact

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/huangsam/testaudit/schema"
)

type coverageCounter struct {
	Type    string `xml:"type,attr"`
	Missed  string `xml:"missed,attr"`
	Covered string `xml:"covered,attr"`
}

type coverageClass struct {
	Name     string            `xml:"name,attr"`
	Counters []coverageCounter `xml:"counter"`
}

type coveragePackage struct {
	Classes []coverageClass `xml:"class"`
}

// ParseCoverageReport reads a JaCoCo XML report and returns one record per class counter.
// Only counters that are direct children of a class inside a package are read, so the
// package and report totals are not double counted.
func ParseCoverageReport(path string) ([]schema.CoverageRecord, error) {
	f, err := openArtifact(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	dec := newDecoder(f)
	var records []schema.CoverageRecord
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse coverage report %s: %w", path, err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "package" {
			continue
		}

		var pkg coveragePackage
		if err := dec.DecodeElement(&pkg, &start); err != nil {
			return nil, fmt.Errorf("failed to parse coverage package in %s: %w", path, err)
		}
		for _, class := range pkg.Classes {
			className := unknownIfEmpty(class.Name)
			for _, c := range class.Counters {
				counterType := schema.CounterType(textOr(c.Type, string(schema.UnknownCounter)))
				records = append(records, schema.CoverageRecord{
					Class:   className,
					Type:    counterType,
					Missed:  max(intOr(c.Missed, 0), 0),
					Covered: max(intOr(c.Covered, 0), 0),
				})
			}
		}
	}
	return records, nil
}
