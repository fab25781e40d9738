package schedule

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type specFile struct {
	Actions []ActionSpec `yaml:"actions"`
}

// LoadSpecTable reads the action-spec table from a YAML file:
//
//	actions:
//	  - type: Join
//	    subject: "Welcome to the club, {First}!"
//	    body: "<p>Your membership runs until {Expires}.</p>"
//	  - type: Expiry1
//	    offset_days: -30
//	    subject: "Your membership expires on {Expires}"
//	    body: "..."
func LoadSpecTable(path string) (SpecTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read action specs: %w", err)
	}

	var file specFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse action specs: %w", err)
	}

	table := make(SpecTable, len(file.Actions))
	for _, spec := range file.Actions {
		if spec.Type == "" {
			return nil, fmt.Errorf("%w: action spec without a type", ErrInvalidSpecTable)
		}
		if _, ok := table[spec.Type]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSpec, spec.Type)
		}
		table[spec.Type] = spec
	}

	// Without a terminal stage no member would ever expire.
	if _, ok := table[TerminalAction]; !ok {
		return nil, ErrMissingTerminal
	}

	return table, nil
}
