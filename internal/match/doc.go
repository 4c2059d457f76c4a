// Package match implements component F: turning an ordered candidate
// list and a target house number into a street segment to interpolate
// across. It is pure — no I/O, no randomness — so its edge cases are
// exhaustively unit tested.
package match
