// Package physics provides the update rules that advance the ripple field.
//
// Every policy implements [Simulator] and leaves the displayable state in
// [field.Pair.Current] when Step returns:
//
//   - [Stencil]: finite-difference wave recurrence over a 9-point stencil
//   - [Spring]: mass-spring lattice, explicit Euler with sub-stepping
//   - [Oscillator]: per-cell harmonic oscillators (harmonica) pulled toward
//     the mean of their neighbours
//
// Exactly one policy drives a run. Policies also implement [Hamiltonian] so
// callers can watch energy drift:
//
//	sim, _ := physics.New("stencil", physics.DefaultOptions())
//	if h, ok := sim.(physics.Hamiltonian); ok {
//	    e := h.Energy(pair)
//	}
//
// Damping must lie in (0, 1]. Values above 1 make every policy unstable; the
// caller validates it, Step does not.
package physics
