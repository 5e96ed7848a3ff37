package director

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// WriteScenario writes a scenario to a YAML file
func WriteScenario(scenario *Scenario, path string) error {
	data, err := yaml.Marshal(scenario)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ReadScenario reads a scenario from a YAML file and checks that every
// offset lies inside the recorded size.
func ReadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	if scenario.Width <= 0 || scenario.Height <= 0 {
		return nil, fmt.Errorf("scenario %s: invalid size %dx%d", path, scenario.Width, scenario.Height)
	}
	for _, f := range scenario.Frames {
		if f.XOffset < 0 || f.XOffset >= scenario.Width || f.YOffset < 0 || f.YOffset >= scenario.Height {
			return nil, fmt.Errorf("scenario %s: frame %d offset (%d,%d) outside %dx%d",
				path, f.Index, f.XOffset, f.YOffset, scenario.Width, scenario.Height)
		}
	}

	return &scenario, nil
}
