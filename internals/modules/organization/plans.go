package organization

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed plans.yaml
var defaultPlans []byte

type Plan struct {
	Code     string   `yaml:"code"`
	Name     string   `yaml:"name"`
	Trial    bool     `yaml:"trial"`
	Features []string `yaml:"features"`
	Message  string   `yaml:"message"`
}

type Catalogue struct {
	plans map[string]Plan
}

// LoadCatalogue parses a plan list; nil means the embedded default.
func LoadCatalogue(raw []byte) (*Catalogue, error) {
	if raw == nil {
		raw = defaultPlans
	}

	var doc struct {
		Plans []Plan `yaml:"plans"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse plan catalogue: %w", err)
	}

	c := &Catalogue{plans: make(map[string]Plan, len(doc.Plans))}
	for _, p := range doc.Plans {
		code := strings.TrimSpace(p.Code)
		if code == "" {
			return nil, fmt.Errorf("plan %q has no code", p.Name)
		}
		if _, dup := c.plans[code]; dup {
			return nil, fmt.Errorf("duplicate plan code %q", code)
		}
		c.plans[code] = p
	}
	return c, nil
}

// Lookup is an exact, case-sensitive match on the subscription code.
func (c *Catalogue) Lookup(code string) (Plan, bool) {
	p, ok := c.plans[strings.TrimSpace(code)]
	return p, ok
}
