// Package parser recognizes Colombian street addresses of the form
// "<street-type> <street-name> # <number-prefix>[-<number-suffix>]" and
// normalizes the street-type token to one of a closed set of
// abbreviations. Parsing never panics: failure is returned as a boolean,
// not an error or exception.
package parser
