package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ColumnKind selects the transformer applied to a column.
type ColumnKind string

const (
	// KindNumeric columns are standard-scaled then weighted.
	KindNumeric ColumnKind = "numeric"
	// KindCategorical columns are one-hot encoded; each category has its own weight.
	KindCategorical ColumnKind = "categorical"
)

// Column is one input column of the pipeline.
type Column struct {
	Name string     `json:"name" yaml:"name"`
	Kind ColumnKind `json:"kind" yaml:"kind"`

	Mean   float64 `json:"mean,omitempty" yaml:"mean,omitempty"`
	Scale  float64 `json:"scale,omitempty" yaml:"scale,omitempty"`
	Weight float64 `json:"weight,omitempty" yaml:"weight,omitempty"`

	Weights map[string]float64 `json:"weights,omitempty" yaml:"weights,omitempty"`
}

// Pipeline is a fitted binary logistic model over scaled and encoded columns.
type Pipeline struct {
	Name       string   `json:"name" yaml:"name"`
	EngineName string   `json:"engine" yaml:"engine"`
	Intercept  float64  `json:"intercept" yaml:"intercept"`
	Columns    []Column `json:"columns" yaml:"columns"`
}

// Load reads and validates the artifact at path. The encoding is chosen by
// extension: .json, .yaml or .yml.
func Load(path string) (*Pipeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrArtifactNotFound, path)
		}
		return nil, fmt.Errorf("failed to read model artifact: %w", err)
	}

	var p Pipeline
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, &p)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &p)
	default:
		return nil, fmt.Errorf("%w: unsupported extension %q", ErrInvalidArtifact, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidArtifact, path, err)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks the structural rules every artifact must satisfy.
func (p *Pipeline) Validate() error {
	if len(p.Columns) == 0 {
		return fmt.Errorf("%w: no columns", ErrInvalidArtifact)
	}

	seen := make(map[string]struct{}, len(p.Columns))
	for i, c := range p.Columns {
		if strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("%w: column %d has no name", ErrInvalidArtifact, i)
		}
		if _, dup := seen[c.Name]; dup {
			return fmt.Errorf("%w: duplicate column %q", ErrInvalidArtifact, c.Name)
		}
		seen[c.Name] = struct{}{}

		switch c.Kind {
		case KindNumeric:
			if c.Scale == 0 {
				return fmt.Errorf("%w: column %q has zero scale", ErrInvalidArtifact, c.Name)
			}
		case KindCategorical:
			if len(c.Weights) == 0 {
				return fmt.Errorf("%w: column %q has no category weights", ErrInvalidArtifact, c.Name)
			}
		default:
			return fmt.Errorf("%w: column %q has unknown kind %q", ErrInvalidArtifact, c.Name, c.Kind)
		}
	}
	return nil
}

// Engine returns the solver name reported with every prediction.
func (p *Pipeline) Engine() string {
	if p.EngineName == "" {
		return DefaultEngine
	}
	return p.EngineName
}

// ColumnNames returns the declared column names in artifact order.
func (p *Pipeline) ColumnNames() []string {
	names := make([]string, len(p.Columns))
	for i, c := range p.Columns {
		names[i] = c.Name
	}
	return names
}

// ModelName returns the artifact's declared name.
func (p *Pipeline) ModelName() string {
	return p.Name
}
