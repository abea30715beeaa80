// Package puddle runs the rain simulation against a terminal surface.
//
// An [Engine] owns the buffer pair, the resize manager, the simulator policy,
// the raindrop scheduler and the colour mapper. [Engine.Frame] performs one
// iteration of the cooperative loop:
//
//  1. checkpoint: shutdown and resize requests recorded in [Flags]
//  2. one non-blocking key poll
//  3. at most one raindrop
//  4. one simulation step
//  5. render and present
//
// [Loop] adds pacing to a fixed frame period for surfaces that do not bring
// their own clock.
//
// # Thread Safety
//
// Engine is confined to one goroutine. Only [Flags] may be touched from
// elsewhere, typically by a signal relay.
package puddle
