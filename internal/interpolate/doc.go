// Package interpolate implements component G: turning a matched
// segment and a target house number into a fraction along the segment
// and a side of the street, following Colombian street-numbering
// convention (odd is right, even is left).
package interpolate
