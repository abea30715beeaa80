// Package palette turns displacements into something a terminal can show.
//
// [Index] quantizes a displacement in one of two modes:
//
//   - [Magnitude]: |d| onto a 0-based ramp, for glyph and greyscale ramps
//   - [Signed]: d onto a 1-based diverging ramp centred on rest
//
// Built-in palettes are [Mono] (glyphs, id 0), [Blue] (diverging, id 1) and
// [Grey] (xterm greys, id 2). [Select] applies the colour capability policy,
// falling back to Mono when allowed.
package palette
