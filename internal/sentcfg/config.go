// Package sentcfg loads the YAML bus manifest that names the SENT
// channels a host application should capture: which GPIO chip and line
// each channel reads from, and the human-readable names to attach to its
// fast- and slow-channel values when reporting them.
package sentcfg

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Channel describes one physical SENT line to capture.
type Channel struct {
	// Name identifies the channel in logs and trace file names.
	Name string `yaml:"name"`
	// Chip is the GPIO character-device path, e.g. "/dev/gpiochip0".
	Chip string `yaml:"chip"`
	// Line is the GPIO line offset on Chip that carries the SENT signal.
	Line int `yaml:"line"`
	// Sig0Name and Sig1Name label the two 12-bit fast-channel signals for
	// display; both default to "sig0"/"sig1" when empty.
	Sig0Name string `yaml:"sig0_name"`
	Sig1Name string `yaml:"sig1_name"`
	// SlowChannelIDs names known slow-channel mailbox ids for display,
	// keyed by the numeric id.
	SlowChannelIDs map[byte]string `yaml:"slow_channel_ids"`
}

// Manifest is the top-level bus configuration: every channel a capture or
// replay run should instantiate its own sent.Channel for.
type Manifest struct {
	Channels []Channel `yaml:"channels"`
}

// Load reads and validates a bus manifest from path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("sentcfg: reading %s: %w", path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("sentcfg: parsing %s: %w", path, err)
	}

	if len(m.Channels) == 0 {
		return nil, fmt.Errorf("sentcfg: %s: no channels defined", path)
	}

	seen := make(map[string]bool, len(m.Channels))
	for i := range m.Channels {
		c := &m.Channels[i]
		if c.Name == "" {
			return nil, fmt.Errorf("sentcfg: %s: channel %d has no name", path, i)
		}
		if seen[c.Name] {
			return nil, fmt.Errorf("sentcfg: %s: duplicate channel name %q", path, c.Name)
		}
		seen[c.Name] = true

		if c.Chip == "" {
			return nil, fmt.Errorf("sentcfg: %s: channel %q has no chip", path, c.Name)
		}
		if c.Line < 0 {
			return nil, fmt.Errorf("sentcfg: %s: channel %q has a negative line offset", path, c.Name)
		}
		if c.Sig0Name == "" {
			c.Sig0Name = "sig0"
		}
		if c.Sig1Name == "" {
			c.Sig1Name = "sig1"
		}
	}

	return &m, nil
}
