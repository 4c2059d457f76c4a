package store

import (
	"time"

	"github.com/shopspring/decimal"
)

// Address is a reference address as stored in the addresses table.
// Optional descriptive fields are nil, not "" —
// the empty-string-to-absent conversion happens at the store boundary
// (see normalizeEmpty in postgres.go), never left to callers.
type Address struct {
	ID          int64
	Fingerprint *string // ≤16 chars, unique when present — the upsert key (column "hash")
	Number      *string // free-form, may contain spaces/letters/dashes
	Street      *string // normalized street name, e.g. "KR 43"
	Unit        *string
	City        *string
	District    *string
	Region      *string // ≤10 chars
	Postcode    *string
	ExternalID  *string // ≤20 chars
	Accuracy    *string // ≤50 chars

	Longitude decimal.NullDecimal // fixed-point, 7 fractional digits, [-180, 180]
	Latitude  decimal.NullDecimal // fixed-point, 7 fractional digits, [-90, 90]

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasCoordinates reports whether both Longitude and Latitude are present.
func (a Address) HasCoordinates() bool {
	return a.Longitude.Valid && a.Latitude.Valid
}

// Coordinates returns (lon, lat) as float64 and whether both were
// present. Used by components that do floating-point math (E's
// centroid, G, H) once a row has left the store boundary.
func (a Address) Coordinates() (lon, lat float64, ok bool) {
	if !a.HasCoordinates() {
		return 0, 0, false
	}
	lonF, _ := a.Longitude.Decimal.Float64()
	latF, _ := a.Latitude.Decimal.Float64()
	return lonF, latF, true
}

// FullAddress renders a human-readable line from the populated fields,
// in the order street, number, unit, city, region, postcode — mirroring
// the original Python model's full_address property.
func (a Address) FullAddress() string {
	parts := make([]string, 0, 6)
	if a.Street != nil {
		parts = append(parts, *a.Street)
	}
	if a.Number != nil {
		parts = append(parts, *a.Number)
	}
	if a.Unit != nil {
		parts = append(parts, "Unit "+*a.Unit)
	}
	if a.City != nil {
		parts = append(parts, *a.City)
	}
	if a.Region != nil {
		parts = append(parts, *a.Region)
	}
	if a.Postcode != nil {
		parts = append(parts, *a.Postcode)
	}
	return joinNonEmpty(parts, ", ")
}

func joinNonEmpty(parts []string, sep string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += sep
		}
		out += p
	}
	return out
}
