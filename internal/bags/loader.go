package bags

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Pair is the two bags a calculation draws from.
type Pair struct {
	Bag1 Definition
	Bag2 Definition
}

// FileConfig mirrors the YAML bag file.
type FileConfig struct {
	Bags struct {
		Bag1 *BagSpec `yaml:"bag1"`
		Bag2 *BagSpec `yaml:"bag2"`
	} `yaml:"bags"`
}

type BagSpec struct {
	Name  string `yaml:"name"`
	Items []Item `yaml:"items"`
}

// Defaults returns the built-in soulstone bags.
func Defaults() Pair {
	return Pair{
		Bag1: MustNew("Bag I", []Item{
			{Value: 1, Probability: 0.36},
			{Value: 2, Probability: 0.37},
			{Value: 5, Probability: 0.15},
			{Value: 10, Probability: 0.07},
			{Value: 20, Probability: 0.03},
			{Value: 30, Probability: 0.02},
		}),
		Bag2: MustNew("Bag II", []Item{
			{Value: 10, Probability: 0.46},
			{Value: 15, Probability: 0.27},
			{Value: 20, Probability: 0.17},
			{Value: 50, Probability: 0.05},
			{Value: 80, Probability: 0.03},
			{Value: 100, Probability: 0.02},
		}),
	}
}

// LoadFile reads a YAML bag file. An empty path or a missing file yields the
// defaults; a bag omitted from the file keeps its default.
func LoadFile(path string) (Pair, error) {
	pair := Defaults()
	if path == "" {
		return pair, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return pair, nil
		}
		return Pair{}, fmt.Errorf("read bag file: %w", err)
	}
	return Parse(b)
}

// Parse decodes YAML bag definitions on top of the defaults.
func Parse(data []byte) (Pair, error) {
	pair := Defaults()

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Pair{}, fmt.Errorf("decode bag file: %w", err)
	}

	if spec := cfg.Bags.Bag1; spec != nil {
		d, err := spec.build(pair.Bag1.Name())
		if err != nil {
			return Pair{}, err
		}
		pair.Bag1 = d
	}
	if spec := cfg.Bags.Bag2; spec != nil {
		d, err := spec.build(pair.Bag2.Name())
		if err != nil {
			return Pair{}, err
		}
		pair.Bag2 = d
	}
	return pair, nil
}

func (s *BagSpec) build(fallbackName string) (Definition, error) {
	name := s.Name
	if name == "" {
		name = fallbackName
	}
	return New(name, s.Items)
}
