package config

import (
	_ "embed"
)

//go:embed defaults/blockfall.yaml
var defaultBlockfallYAML []byte

// DefaultBlockfallConfig returns the default Blockfall configuration.
func DefaultBlockfallConfig() BlockfallConfig {
	return BlockfallConfig{
		Board: BlockfallBoard{
			Rows: 24,
			Cols: 10,
		},
		Timing: BlockfallTiming{
			GravityMS: 300,
		},
		Scoring: BlockfallScoring{
			PointsPerLine: 100,
		},
	}
}
