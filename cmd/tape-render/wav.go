package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/wav"
	"github.com/go-audio/audio"
)

// readWAV returns the channels of a WAV file as separate float64 slices.
func readWAV(path string) ([][]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("invalid wav file: %s", path)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, err
	}

	if buf == nil || buf.Format == nil || buf.Format.NumChannels < 1 {
		return nil, 0, fmt.Errorf("invalid wav buffer: %s", path)
	}

	if buf.Format.SampleRate <= 0 {
		return nil, 0, fmt.Errorf("invalid wav sample-rate: %d", buf.Format.SampleRate)
	}

	return deinterleave(buf.Data, buf.Format.NumChannels), buf.Format.SampleRate, nil
}

func writeWAV(path string, channels [][]float64, sampleRate, bitDepth int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, bitDepth, len(channels), 1)

	buf := &audio.Float32Buffer{
		Format: &audio.Format{
			SampleRate:  sampleRate,
			NumChannels: len(channels),
		},
		Data:           interleave(channels),
		SourceBitDepth: bitDepth,
	}

	if err := enc.Write(buf); err != nil {
		return err
	}

	return enc.Close()
}

func deinterleave(data []float32, numCh int) [][]float64 {
	frames := len(data) / numCh

	out := make([][]float64, numCh)
	for ch := range out {
		out[ch] = make([]float64, frames)
		for i := range frames {
			out[ch][i] = float64(data[i*numCh+ch])
		}
	}

	return out
}

// interleave clips to [-1, 1] for the fixed-point encoder.
func interleave(channels [][]float64) []float32 {
	if len(channels) == 0 {
		return nil
	}

	frames := len(channels[0])
	out := make([]float32, frames*len(channels))

	for ch, samples := range channels {
		for i, v := range samples[:frames] {
			out[i*len(channels)+ch] = float32(max(-1, min(1, v)))
		}
	}

	return out
}
