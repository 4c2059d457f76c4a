package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// addressPattern captures street-type, street-name, number-prefix, and an
// optional number-suffix. The street-type group accepts any run of
// letters — not just the closed set in the lexicon — since spec.md §4.1
// requires unrecognized street types to still parse successfully; only
// normalization is restricted to the closed set, not recognition. The
// pattern is anchored at the start of the input, so the street-type token
// must be the first word.
var addressPattern = regexp.MustCompile(
	`(?i)^\s*([A-Za-z]+)\s+(\d+[A-Za-z]?)\s*#?\s*(\d+[A-Za-z]?)(?:\s*[-\s]\s*(\d+))?`,
)

// leadingIntPattern finds the first run of digits anywhere in a string.
var leadingIntPattern = regexp.MustCompile(`\d+`)

// digitRunPattern finds every run of digits in a string.
var digitRunPattern = regexp.MustCompile(`\d+`)

// Parse recognizes a Colombian address string and returns its normalized
// components. It returns ok=false — never an error or panic — when the
// required token sequence is not present, or the input is empty.
//
//	Parse("CALLE 100 # 15")      -> {CL, 100, 15, "", ...}, true
//	Parse("CARRERA 43 # 57-49")  -> {KR, 43, 57, 49, ...}, true
//	Parse("AV 68B # 25 10")      -> {AV, 68B, 25, 10, ...}, true
//	Parse("Invalid Address 123") -> {}, false
func Parse(raw string) (Components, bool) {
	if raw == "" {
		return Components{}, false
	}

	m := addressPattern.FindStringSubmatch(raw)
	if m == nil {
		return Components{}, false
	}

	return Components{
		StreetType:   normalizeStreetType(m[1]),
		StreetName:   strings.ToUpper(m[2]),
		NumberPrefix: strings.ToUpper(m[3]),
		NumberSuffix: strings.ToUpper(m[4]),
		Raw:          raw,
	}, true
}

// ExtractLeadingInt returns the first run of digits found in s, as an
// int. It stops at the first non-digit of that run. Used by the matcher
// (component F) to order candidates and the target, where a number
// field like "13 247" should be read as 13. Returns 0, false when no
// digits are present.
func ExtractLeadingInt(s string) (int, bool) {
	m := leadingIntPattern.FindString(s)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ExtractDigitRun concatenates every run of digits in s and parses the
// result as an int: "57-49" -> 5749, "13 247" -> 13247. Used by the
// position interpolator (component G) to order and interpolate between
// numbers that may carry a cross-street prefix. Returns 0, false when no
// digits are present.
func ExtractDigitRun(s string) (int, bool) {
	runs := digitRunPattern.FindAllString(s, -1)
	if len(runs) == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(strings.Join(runs, ""))
	if err != nil {
		return 0, false
	}
	return n, true
}
