package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// A Scenario bundles the configuration records describing one planning
// case: model geometry, host resources, traffic statistics, and optional
// policy overrides.
type Scenario struct {
	Model   ModelSpec   `json:"model" yaml:"model"`
	System  SystemSpec  `json:"system" yaml:"system"`
	Traffic TrafficSpec `json:"traffic" yaml:"traffic"`
	Policy  *PolicySpec `json:"policy,omitempty" yaml:"policy,omitempty"` // nil means defaults
}

// ReadScenario loads and validates a scenario from a YAML file.
func ReadScenario(path string) (*Scenario, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file %s: %w", path, err)
	}
	return ParseScenario(bytes)
}

// ParseScenario unmarshals and validates a scenario from YAML bytes.
// A missing policy section is filled in with the default constants.
func ParseScenario(bytes []byte) (*Scenario, error) {
	scenario := &Scenario{}
	if err := yaml.Unmarshal(bytes, scenario); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scenario: %w", err)
	}
	if scenario.Policy == nil {
		scenario.Policy = DefaultPolicy()
	}
	if err := scenario.Check(); err != nil {
		return nil, err
	}
	return scenario, nil
}

// Check validity of all scenario parts
func (s *Scenario) Check() error {
	if err := s.Model.Check(); err != nil {
		return err
	}
	if err := s.System.Check(); err != nil {
		return err
	}
	if err := s.Traffic.Check(); err != nil {
		return err
	}
	if s.Policy != nil {
		if err := s.Policy.Check(); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scenario) String() string {
	return fmt.Sprintf("{model:%s, system:%s, traffic:%s, policy:%s}",
		&s.Model, &s.System, &s.Traffic, s.Policy)
}
