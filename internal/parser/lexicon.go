package parser

import "strings"

// streetTypeAbbreviations maps every recognized long and short form of a
// Colombian street type to its canonical abbreviation (spec.md §4.1).
var streetTypeAbbreviations = map[string]string{
	"CALLE": "CL", "CA": "CL", "CL": "CL",
	"CARRERA": "KR", "CR": "KR", "KR": "KR",
	"AVENIDA": "AV", "AV": "AV",
	"DIAGONAL": "DG", "DG": "DG",
	"TRANSVERSAL": "TV", "TV": "TV",
	"CIRCULAR": "CIR", "CIR": "CIR",
	"AUTOPISTA": "AUT", "AUT": "AUT",
	"VIA": "VIA",
}

// normalizeStreetType returns the canonical abbreviation for a street-type
// token. Unrecognized tokens are returned upper-cased, unchanged — the
// parser still succeeds, it just can't normalize a type it doesn't know.
func normalizeStreetType(raw string) string {
	upper := strings.ToUpper(raw)
	if canon, ok := streetTypeAbbreviations[upper]; ok {
		return canon
	}
	return upper
}
