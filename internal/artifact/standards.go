package artifact

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/huangsam/testaudit/schema"
	"gopkg.in/yaml.v3"
)

// standardsKey is the root key holding the list of standards.
const standardsKey = "standards"

// LoadStandards reads the standards configuration. JSON and YAML documents are both
// accepted. The root must be a mapping whose "standards" key holds a list of entries
// and every entry needs an id.
func LoadStandards(path string) ([]schema.Standard, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrArtifactNotFound, path)
		}
		return nil, fmt.Errorf("failed to read standards file %s: %w", path, err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse standards file %s: %w", path, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("standards file %s is empty", path)
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("standards file %s must be a mapping with a %q key", path, standardsKey)
	}

	var list *yaml.Node
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value == standardsKey {
			list = root.Content[i+1]
			break
		}
	}
	if list == nil {
		return nil, fmt.Errorf("standards file %s has no %q key", path, standardsKey)
	}
	if list.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("%q in %s must be a list of standards (line %d)", standardsKey, path, list.Line)
	}

	var standards []schema.Standard
	if err := list.Decode(&standards); err != nil {
		return nil, fmt.Errorf("failed to decode standards in %s: %w", path, err)
	}
	for i, s := range standards {
		if s.ID == "" {
			return nil, fmt.Errorf("standard #%d in %s has no id", i+1, path)
		}
	}
	return standards, nil
}
