// Package viz renders growth runs in the terminal.
//
//   - [PlotComparison]: asciigraph chart of Euler samples against n0*exp(r*t)
//   - [PlotConvergence]: log2 error per halving of dt
//   - [Summary]: lipgloss panel with run parameters and metrics
//   - [SparklineChart], [ProgressBar]: compact widgets used by the live replay
package viz
