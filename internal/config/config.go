// Package config provides YAML-based game configuration loading for the
// blockfall platform.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Validation errors returned (wrapped) by BlockfallConfig.Validate.
var (
	ErrInvalidBoard   = errors.New("config: invalid board size")
	ErrInvalidTiming  = errors.New("config: invalid timing")
	ErrInvalidScoring = errors.New("config: invalid scoring")
)

// Smallest board that leaves spawn headroom for every rotation.
const (
	MinRows = 4
	MinCols = 4
)

// BlockfallConfig contains all configuration for the Blockfall game.
type BlockfallConfig struct {
	Board   BlockfallBoard   `yaml:"board"`
	Timing  BlockfallTiming  `yaml:"timing"`
	Scoring BlockfallScoring `yaml:"scoring"`
}

// BlockfallBoard defines the grid dimensions.
type BlockfallBoard struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// BlockfallTiming defines the gravity period.
type BlockfallTiming struct {
	GravityMS int `yaml:"gravity_ms"`
}

// BlockfallScoring defines score accounting.
type BlockfallScoring struct {
	PointsPerLine int `yaml:"points_per_line"`
}

// Gravity returns the gravity period as a duration.
func (c BlockfallConfig) Gravity() time.Duration {
	return time.Duration(c.Timing.GravityMS) * time.Millisecond
}

// Validate checks that the configuration describes a playable game.
func (c BlockfallConfig) Validate() error {
	if c.Board.Rows < MinRows || c.Board.Cols < MinCols {
		return fmt.Errorf("%w: %dx%d (minimum %dx%d)", ErrInvalidBoard,
			c.Board.Rows, c.Board.Cols, MinRows, MinCols)
	}
	if c.Timing.GravityMS <= 0 {
		return fmt.Errorf("%w: gravity_ms must be positive, got %d", ErrInvalidTiming, c.Timing.GravityMS)
	}
	if c.Scoring.PointsPerLine < 0 {
		return fmt.Errorf("%w: points_per_line must not be negative, got %d", ErrInvalidScoring, c.Scoring.PointsPerLine)
	}
	return nil
}
