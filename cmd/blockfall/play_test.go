package main

import "testing"

func TestRuntimeConfigSeed(t *testing.T) {
	t.Cleanup(func() { flagSeed = 0 })

	flagSeed = 42
	if got := runtimeConfig().Seed; got != 42 {
		t.Errorf("runtimeConfig().Seed = %d, expected 42", got)
	}

	flagSeed = 0
	if got := runtimeConfig().Seed; got == 0 {
		t.Error("runtimeConfig().Seed = 0, expected a clock seed")
	}
}
