package recio

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/meredith/spikekit/internal/neuro"
)

// recordingDoc is the top-level YAML recording file layout: a list of
// blocks, or a single bare object with an explicit type.
type recordingDoc struct {
	Blocks []*ObjectDoc `yaml:"blocks"`
}

// yamlReader holds the objects decoded from one recording file.
type yamlReader struct {
	objs []neuro.DomainObject
}

// OpenYAML opens a YAML recording file. The whole file is decoded up
// front; ReadAll hands out the decoded objects.
func OpenYAML(path string) (Reader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading recording %s: %w", path, err)
	}

	var doc recordingDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing recording %s: %w", path, err)
	}
	if len(doc.Blocks) == 0 {
		// Fall back to a single top-level object document.
		var single ObjectDoc
		if err := yaml.Unmarshal(data, &single); err != nil {
			return nil, fmt.Errorf("parsing recording %s: %w", path, err)
		}
		if single.Type == "" {
			return nil, fmt.Errorf("recording %s has no blocks and no typed object", path)
		}
		doc.Blocks = []*ObjectDoc{&single}
	}

	objs := make([]neuro.DomainObject, 0, len(doc.Blocks))
	for i, blockDoc := range doc.Blocks {
		if blockDoc.Type == "" {
			blockDoc.Type = "Block"
		}
		obj, err := DecodeObject(blockDoc)
		if err != nil {
			return nil, fmt.Errorf("recording %s, object %d: %w", path, i, err)
		}
		objs = append(objs, obj)
	}
	return &yamlReader{objs: objs}, nil
}

func (r *yamlReader) ReadAll() ([]neuro.DomainObject, error) {
	return r.objs, nil
}

func (r *yamlReader) Close() error { return nil }
