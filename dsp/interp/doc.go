// Package interp provides fractional-position interpolation primitives used
// by the speed transforms.
//
//   - [Linear2]: 2-point linear interpolation
//   - [LinearAt]: linear read at a fractional index of a slice
package interp
