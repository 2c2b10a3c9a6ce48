package main

import (
	"fmt"

	"github.com/cwbudde/algo-tape/dsp/core"
	"github.com/cwbudde/algo-tape/dsp/mix"
	"github.com/cwbudde/algo-tape/dsp/tape"
	timestats "github.com/cwbudde/algo-tape/stats/time"
)

// render processes each channel in place with its own Saturator, scales the
// result by outputGain and returns the output levels per channel.
func render(channels [][]float64, cfg core.ProcessorConfig, st tape.State, outputGain float64) ([]timestats.Levels, error) {
	levels := make([]timestats.Levels, len(channels))

	for ch, samples := range channels {
		sat, err := tape.New()
		if err != nil {
			return nil, err
		}

		sat.ApplyState(st)

		if err := sat.PrepareConfig(cfg); err != nil {
			return nil, fmt.Errorf("channel %d: %w", ch, err)
		}

		var meter timestats.Meter

		for start := 0; start < len(samples); start += cfg.BlockSize {
			block := samples[start:min(start+cfg.BlockSize, len(samples))]
			sat.ProcessInPlace(block)
			mix.Gain(block, outputGain)
			meter.Update(block)
		}

		levels[ch] = meter.Result()
	}

	return levels, nil
}
