// Command tapeinfo prints the harmonic signature of each tape model.
//
// Usage:
//
//	tapeinfo [flags] [model-name ...]
//
// Without arguments it measures every model and, for the hysteresis model,
// every solver.
//
// Examples:
//
//	tapeinfo
//	tapeinfo -drive 3 -freq 100 hysteresis
//	tapeinfo -rate 96000 -bias 0.3
//	tapeinfo -list
//	tapeinfo -cpu
package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-tape/dsp/tape"
	"github.com/cwbudde/algo-vecmath/cpu"
)

func main() {
	rate := flag.Float64("rate", 48000, "sample rate in Hz")
	freq := flag.Float64("freq", 750, "test tone frequency in Hz (snapped to an FFT bin)")
	amp := flag.Float64("amp", 0.5, "test tone amplitude")
	drive := flag.Float64("drive", 1, "drive")
	saturation := flag.Float64("saturation", 0.5, "saturation")
	bias := flag.Float64("bias", 0, "bias")
	fftSize := flag.Int("fft", 4096, "analysis FFT size")
	list := flag.Bool("list", false, "list models and solvers")
	showCPU := flag.Bool("cpu", false, "print detected SIMD features")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: tapeinfo [flags] [model-name ...]\n\n")
		fmt.Fprintf(os.Stderr, "Prints harmonic distortion of the tape models for a sine test tone.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  tapeinfo -drive 3 hysteresis\n")
		fmt.Fprintf(os.Stderr, "  tapeinfo -list\n")
	}
	flag.Parse()

	if *list {
		printList()
		return
	}

	if *showCPU {
		printCPU()
		return
	}

	models, ok := resolveModels(flag.Args())
	if !ok {
		fmt.Fprintf(os.Stderr, "error: no matching models\n")
		os.Exit(1)
	}

	rows, err := analyze(settings{
		sampleRate: *rate,
		freq:       *freq,
		amplitude:  *amp,
		drive:      *drive,
		saturation: *saturation,
		bias:       *bias,
		fftSize:    *fftSize,
	}, models)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	printRows(rows)
}

func printList() {
	fmt.Println("models:")

	for _, m := range tape.Models() {
		fmt.Printf("  %s\n", m)
	}

	fmt.Println("solvers (rate evaluations per sample):")

	for _, s := range tape.Solvers() {
		fmt.Printf("  %s  %d\n", s, s.Evaluations())
	}
}

func printCPU() {
	f := cpu.DetectFeatures()
	fmt.Printf("arch:    %s\n", f.Architecture)
	fmt.Printf("sse2:    %t\n", f.HasSSE2)
	fmt.Printf("avx2:    %t\n", f.HasAVX2)
	fmt.Printf("generic: %t\n", f.ForceGeneric)
}

func resolveModels(names []string) ([]tape.Model, bool) {
	if len(names) == 0 {
		return tape.Models(), true
	}

	var out []tape.Model

	for _, name := range names {
		m, err := tape.ParseModel(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: unknown model %q (use -list to see available)\n", name)
			continue
		}

		out = append(out, m)
	}

	return out, len(out) > 0
}

func printRows(rows []row) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Model\tSolver\tTHD [%%]\tTHD [dB]\tOdd [%%]\tEven [%%]\tSINAD [dB]\tRMS [dBFS]\tDC\n"); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output header: %v\n", err)
		return
	}

	if _, err := fmt.Fprintf(tw, "-----\t------\t-------\t--------\t-------\t--------\t----------\t----------\t--\n"); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output header: %v\n", err)
		return
	}

	for _, r := range rows {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%.4f\t%.2f\t%.4f\t%.4f\t%.2f\t%.2f\t%.2g\n",
			r.model,
			r.label(),
			100*r.thd.THD,
			r.thd.THD_dB,
			100*r.thd.OddHD,
			100*r.thd.EvenHD,
			r.thd.SINAD,
			r.levels.RMS_dB,
			r.levels.DC,
		); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output row: %v\n", err)
			return
		}
	}

	if err := tw.Flush(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}
