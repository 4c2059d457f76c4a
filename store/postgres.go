package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	// registers the "postgres" database/sql driver; never referenced
	// directly. cmd/ingest, which opens the pool, gets the driver
	// registered through its import of this package.
	_ "github.com/lib/pq"
)

// PostgresStore implements Store against a *sql.DB opened with the
// "postgres" driver. Pool construction, migrations, and connection
// configuration are an external collaborator's responsibility;
// PostgresStore only ever receives an already-open pool.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore wraps an already-configured connection pool.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// upsertColumns and selectColumns use the external schema's column name
// "hash" for what this package calls Fingerprint — the unique,
// nullable upsert key.
const upsertColumns = `hash, number, street, unit, city, district, region, postcode, external_id, accuracy, longitude, latitude, created_at, updated_at`

// UpsertBatch upserts every row of batch in a single transaction, keyed
// on fingerprint, updating every value column on conflict. Empty
// strings are normalized to absent here, at the store boundary, not by
// the caller.
func (s *PostgresStore) UpsertBatch(ctx context.Context, batch []Address) error {
	if len(batch) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin upsert batch: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	const cols = 12 // columns bound per row; created_at/updated_at use now()
	values := make([]string, 0, len(batch))
	args := make([]interface{}, 0, len(batch)*cols)

	for i, a := range batch {
		base := i*cols + 1
		placeholders := make([]string, cols)
		for j := 0; j < cols; j++ {
			placeholders[j] = fmt.Sprintf("$%d", base+j)
		}
		values = append(values, "("+strings.Join(placeholders, ", ")+", now(), now())")

		args = append(args,
			normalizeEmpty(a.Fingerprint),
			normalizeEmpty(a.Number),
			normalizeEmpty(a.Street),
			normalizeEmpty(a.Unit),
			normalizeEmpty(a.City),
			normalizeEmpty(a.District),
			normalizeEmpty(a.Region),
			normalizeEmpty(a.Postcode),
			normalizeEmpty(a.ExternalID),
			normalizeEmpty(a.Accuracy),
			nullDecimalArg(a.Longitude),
			nullDecimalArg(a.Latitude),
		)
	}

	query := fmt.Sprintf(`
		INSERT INTO addresses (%s)
		VALUES %s
		ON CONFLICT (hash) DO UPDATE SET
			number = EXCLUDED.number,
			street = EXCLUDED.street,
			unit = EXCLUDED.unit,
			city = EXCLUDED.city,
			district = EXCLUDED.district,
			region = EXCLUDED.region,
			postcode = EXCLUDED.postcode,
			external_id = EXCLUDED.external_id,
			accuracy = EXCLUDED.accuracy,
			longitude = EXCLUDED.longitude,
			latitude = EXCLUDED.latitude,
			updated_at = now()
	`, upsertColumns, strings.Join(values, ", "))

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("store: upsert batch: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit upsert batch: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByFingerprint(ctx context.Context, fingerprint string) (Address, bool, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` FROM addresses WHERE hash = $1`, fingerprint)
	addr, err := scanAddress(row)
	if err == sql.ErrNoRows {
		return Address{}, false, nil
	}
	if err != nil {
		return Address{}, false, fmt.Errorf("store: find by fingerprint: %w", err)
	}
	return addr, true, nil
}

func (s *PostgresStore) FindByCity(ctx context.Context, city string, limit int) ([]Address, error) {
	return s.queryAddresses(ctx, selectColumns+` FROM addresses WHERE city = $1 ORDER BY number LIMIT $2`, city, limit)
}

func (s *PostgresStore) FindByStreet(ctx context.Context, street string, limit int) ([]Address, error) {
	return s.queryAddresses(ctx, selectColumns+` FROM addresses WHERE street = $1 ORDER BY number LIMIT $2`, street, limit)
}

func (s *PostgresStore) FindByRegion(ctx context.Context, region string, limit int) ([]Address, error) {
	return s.queryAddresses(ctx, selectColumns+` FROM addresses WHERE region = $1 ORDER BY number LIMIT $2`, region, limit)
}

func (s *PostgresStore) FindByCityStreetNumber(ctx context.Context, city, street, number string) ([]Address, error) {
	return s.queryAddresses(ctx,
		selectColumns+` FROM addresses WHERE city = $1 AND street = $2 AND number = $3 ORDER BY number`,
		city, street, number)
}

func (s *PostgresStore) FindByCoordinates(ctx context.Context, longitude, latitude float64) ([]Address, error) {
	return s.queryAddresses(ctx,
		selectColumns+` FROM addresses WHERE longitude = $1 AND latitude = $2`,
		longitude, latitude)
}

// SearchExact is the first search tier.
func (s *PostgresStore) SearchExact(ctx context.Context, city, street, region string, limit int) ([]Address, error) {
	return s.queryAddresses(ctx, selectColumns+`
		FROM addresses
		WHERE city = $1 AND street = $2 AND region = $3
			AND longitude IS NOT NULL AND latitude IS NOT NULL
		ORDER BY number
		LIMIT $4`,
		city, street, region, limit)
}

// SearchFuzzy is the second search tier. streetSubstring is escaped
// for LIKE metacharacters before being wrapped in %...% to avoid
// letting a literal % or _ in user input change the query's meaning.
func (s *PostgresStore) SearchFuzzy(ctx context.Context, city, streetSubstring, region string, limit int) ([]Address, error) {
	pattern := "%" + escapeLike(streetSubstring) + "%"
	return s.queryAddresses(ctx, selectColumns+`
		FROM addresses
		WHERE city = $1 AND street ILIKE $2 ESCAPE '\' AND region = $3
			AND longitude IS NOT NULL AND latitude IS NOT NULL
		ORDER BY number
		LIMIT $4`,
		city, pattern, region, limit)
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func (s *PostgresStore) queryAddresses(ctx context.Context, query string, args ...interface{}) ([]Address, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: query: %w", err)
	}
	defer rows.Close()

	var out []Address
	for rows.Next() {
		addr, err := scanAddress(rows)
		if err != nil {
			return nil, fmt.Errorf("store: scan: %w", err)
		}
		out = append(out, addr)
	}
	return out, rows.Err()
}

const selectColumns = `SELECT id, hash, number, street, unit, city, district, region, postcode, external_id, accuracy, longitude, latitude, created_at, updated_at`

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAddress(r rowScanner) (Address, error) {
	var a Address
	var fingerprint, number, street, unit, city, district, region, postcode, externalID, accuracy sql.NullString
	var longitude, latitude sql.NullFloat64

	err := r.Scan(
		&a.ID, &fingerprint, &number, &street, &unit, &city, &district, &region, &postcode,
		&externalID, &accuracy, &longitude, &latitude, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return Address{}, err
	}

	a.Fingerprint = nullStringPtr(fingerprint)
	a.Number = nullStringPtr(number)
	a.Street = nullStringPtr(street)
	a.Unit = nullStringPtr(unit)
	a.City = nullStringPtr(city)
	a.District = nullStringPtr(district)
	a.Region = nullStringPtr(region)
	a.Postcode = nullStringPtr(postcode)
	a.ExternalID = nullStringPtr(externalID)
	a.Accuracy = nullStringPtr(accuracy)

	if longitude.Valid {
		a.Longitude = decimal.NullDecimal{Decimal: decimal.NewFromFloat(longitude.Float64), Valid: true}
	}
	if latitude.Valid {
		a.Latitude = decimal.NullDecimal{Decimal: decimal.NewFromFloat(latitude.Float64), Valid: true}
	}

	return a, nil
}

func nullStringPtr(n sql.NullString) *string {
	if !n.Valid {
		return nil
	}
	return &n.String
}

// normalizeEmpty converts a nil or zero-length string pointer to a SQL
// NULL; a non-empty string passes through unchanged. This is the "empty
// string → absent" boundary spec.md §3.1/§4.2 requires.
func normalizeEmpty(s *string) interface{} {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}

func nullDecimalArg(d decimal.NullDecimal) interface{} {
	if !d.Valid {
		return nil
	}
	f, _ := d.Decimal.Round(7).Float64()
	return f
}
