// Package dynamics provides the brick-wall lookahead limiter.
//
// The limiter looks ahead over a short window so gain reduction is fully in
// place before a peak arrives, then recovers with an exponential release.
// Channels can share one gain (Linked) or be limited independently.
package dynamics
