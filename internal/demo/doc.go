// Package demo is a small engine written in Go and reached through the
// binary engine ABI.
//
// The scene shows a sun, an orbiting earth and, on the primary backend, a
// star field. The camera orbits with the arrow keys (or a/d) and with the
// directional controls; w/s and up/down zoom.
package demo
