package template

import "fmt"

// Template is one seeded game assignment within a stage. SeedSuffix is the
// expected seed suffix a replay must prove it played; empty means any seed
// of the right shape is accepted.
type Template struct {
	ID         string
	EventID    string
	StageID    string
	Name       string
	Variant    string
	SeedSuffix string
	Ordering   int
}

func (t Template) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("template id is required")
	}
	if t.EventID == "" {
		return fmt.Errorf("template event id is required")
	}
	if t.StageID == "" {
		return fmt.Errorf("template stage id is required")
	}
	if t.Variant == "" {
		return fmt.Errorf("template variant is required")
	}

	return nil
}
