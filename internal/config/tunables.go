package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tomz197/cosmicdefender/internal/game"
)

// LoadTunables reads a YAML tunables file. Fields missing from the file keep
// their default values. The result is validated.
func LoadTunables(path string) (game.Tunables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return game.DefaultTunables(), fmt.Errorf("read tunables: %w", err)
	}
	t, err := ParseTunables(data)
	if err != nil {
		return game.DefaultTunables(), fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// ParseTunables overlays a YAML document on the default tunables.
// Unknown keys are rejected so typos do not pass silently.
func ParseTunables(data []byte) (game.Tunables, error) {
	t := game.DefaultTunables()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil && !errors.Is(err, io.EOF) {
		return game.DefaultTunables(), fmt.Errorf("parse tunables: %w", err)
	}
	if err := t.Validate(); err != nil {
		return game.DefaultTunables(), err
	}
	return t, nil
}

// WriteTunables writes t as YAML, e.g. to produce a starting file.
func WriteTunables(w io.Writer, t game.Tunables) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(t); err != nil {
		return fmt.Errorf("encode tunables: %w", err)
	}
	return enc.Close()
}
