// Package tape implements a per-sample tape saturation processor.
//
// A [Saturator] offers two transfer models behind one processing call:
//
//   - [ModelSimple]: a +9 dB high-shelf pre-emphasis at 3 kHz, a blended
//     tanh curve and the exact inverse de-emphasis, so high frequencies
//     compress earlier than low ones.
//   - [ModelHysteresis]: the Jiles-Atherton magnetization equation,
//     integrated by one of four solvers ([SolverRK2], [SolverRK4],
//     [SolverNR4], [SolverNR8]). Each takes one step per sample with a
//     fixed evaluation count ([Solver.Evaluations]), cheapest for RK2.
//
// Drive, saturation, bias and mix are smoothed over about 5 ms. Model
// changes crossfade with an equal-power curve over 10 ms. A fixed 10 Hz
// high-pass removes DC after the model and before the dry/wet blend.
//
// The processor handles a single channel and is not safe for concurrent
// use. Setters are plain field writes; hosts that call them from a control
// thread must serialize them against block boundaries.
//
// Nothing allocates after [Saturator.Prepare].
package tape
