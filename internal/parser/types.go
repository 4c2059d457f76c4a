package parser

import "fmt"

// Components is the parsed, in-memory form of a Colombian address
// (spec.md §3.2).
type Components struct {
	StreetType   string // normalized abbreviation, or the unrecognized token upper-cased
	StreetName   string // alphanumeric, upper-cased, e.g. "43" or "68B"
	NumberPrefix string // alphanumeric, upper-cased, e.g. "57"
	NumberSuffix string // optional, e.g. "49"; empty when absent
	Raw          string // original input, verbatim
}

// FullStreetName returns "{StreetType} {StreetName}", e.g. "KR 43".
func (c Components) FullStreetName() string {
	return fmt.Sprintf("%s %s", c.StreetType, c.StreetName)
}

// FullNumber returns "{prefix}-{suffix}" when a suffix is present, else
// just the prefix.
func (c Components) FullNumber() string {
	if c.NumberSuffix == "" {
		return c.NumberPrefix
	}
	return fmt.Sprintf("%s-%s", c.NumberPrefix, c.NumberSuffix)
}
