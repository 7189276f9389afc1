//go:build !tinygo

package board

import (
	"fmt"
	"io/ioutil"

	"github.com/flynn/json5"
)

// Load overrides c with the JSON5 document in data. Fields absent from the
// document keep their values.
func (c *Config) Load(data []byte) error {
	if err := json5.Unmarshal(data, c); err != nil {
		return fmt.Errorf("board config: %w", err)
	}
	return nil
}

// LoadFile loads c.File if it is set.
func (c *Config) LoadFile() error {
	if c.File == "" {
		return nil
	}
	data, err := ioutil.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("board config: %w", err)
	}
	return c.Load(data)
}
