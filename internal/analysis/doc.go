// Package analysis measures ripple runs without a terminal.
//
//   - [Record]: run an engine headless and trace energy and a probe cell
//   - [PowerSpectrum]: frequency content of a probe trace
//   - [DecayRate]: per-frame energy decay once rain stops
//
// # Damping Check
//
// Once the rain stops, stencil energy falls by the damping factor each
// frame, so the measured rate should sit near ln(damping):
//
//	rate := analysis.DecayRate(sim, pair, 0.95, 400)
//	// rate ≈ math.Log(0.95)
package analysis
