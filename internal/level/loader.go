package level

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a level from a YAML file.
func Load(path string) (Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Level{}, fmt.Errorf("level: read %s: %w", path, err)
	}
	l, err := Parse(data)
	if err != nil {
		return Level{}, fmt.Errorf("level: parse %s: %w", path, err)
	}
	return l, nil
}

// Parse decodes a level and checks that every collider has a box.
func Parse(data []byte) (Level, error) {
	var l Level
	if err := yaml.Unmarshal(data, &l); err != nil {
		return Level{}, err
	}
	if l.Name == "" {
		return Level{}, fmt.Errorf("level: missing name")
	}
	for _, d := range l.Colliders {
		if _, err := d.AABB(); err != nil {
			return Level{}, err
		}
	}
	return l, nil
}

// Resolve returns the registered level called name, or loads it from disk
// when no level of that name is registered.
func Resolve(name string) (Level, error) {
	if Exists(name) {
		return Get(name)
	}
	return Load(name)
}

// Marshal encodes a level as YAML.
func Marshal(l Level) ([]byte, error) {
	return yaml.Marshal(l)
}
