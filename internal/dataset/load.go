package dataset

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// overridesFile is the YAML shape of a dataset overrides file: a list of
// full dataset records keyed by id. Records replace the built-in with the
// same id; new ids are added as-is.
type overridesFile struct {
	Datasets []*Dataset `yaml:"datasets"`
}

// Load returns the built-in dataset records, optionally replaced or
// extended by a YAML overrides file. Every record returned has passed
// Validate, so config errors surface here, before any grid work or job
// submission.
func Load(overridesPath string) (map[string]*Dataset, error) {
	records := Builtin()

	if overridesPath != "" {
		data, err := os.ReadFile(overridesPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read dataset overrides: %w", err)
		}
		var file overridesFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse dataset overrides %s: %w", overridesPath, err)
		}
		for _, ds := range file.Datasets {
			if ds == nil || ds.ID == "" {
				return nil, fmt.Errorf("dataset overrides %s: record without id", overridesPath)
			}
			records[ds.ID] = ds
		}
	}

	for _, ds := range records {
		if err := ds.Validate(); err != nil {
			return nil, err
		}
	}
	return records, nil
}
