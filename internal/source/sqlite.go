package source

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/evcraddock/propfinder/internal/property"
)

// SQLiteSource serves listings from the local SQLite store. It acts as one
// upstream source among the remote ones, so locally tracked listings take
// part in every search.
type SQLiteSource struct {
	name string
	db   *sql.DB
}

// NewSQLiteSource creates a local listing source backed by db.
func NewSQLiteSource(name string, db *sql.DB) *SQLiteSource {
	if name == "" {
		name = "local"
	}
	return &SQLiteSource{name: name, db: db}
}

// Name implements Source.
func (s *SQLiteSource) Name() string { return s.name }

// Search implements Source with SQL range predicates.
func (s *SQLiteSource) Search(ctx context.Context, q Query) (records []property.Record, err error) {
	query := `SELECT id, street, city, state, zip, lat, lng, property_type, price,
		price_sqft, sqft, year_built, occupancy, cap_rate, noi, days_on_market, zoning, updated_at
		FROM listings`

	var conds []string
	var args []interface{}

	if len(q.Cities) > 0 {
		ph := make([]string, len(q.Cities))
		for i, c := range q.Cities {
			ph[i] = "?"
			args = append(args, strings.ToLower(c))
		}
		conds = append(conds, "LOWER(city) IN ("+strings.Join(ph, ",")+")")
	}
	if len(q.States) > 0 {
		ph := make([]string, len(q.States))
		for i, st := range q.States {
			ph[i] = "?"
			args = append(args, strings.ToUpper(st))
		}
		conds = append(conds, "UPPER(state) IN ("+strings.Join(ph, ",")+")")
	}
	if len(q.Types) > 0 {
		ph := make([]string, len(q.Types))
		for i, t := range q.Types {
			ph[i] = "?"
			args = append(args, string(t))
		}
		conds = append(conds, "property_type IN ("+strings.Join(ph, ",")+")")
	}
	if q.MinPrice != nil {
		conds = append(conds, "price >= ?")
		args = append(args, *q.MinPrice)
	}
	if q.MaxPrice != nil {
		conds = append(conds, "price <= ?")
		args = append(args, *q.MaxPrice)
	}
	if q.MinSqft != nil {
		conds = append(conds, "sqft >= ?")
		args = append(args, *q.MinSqft)
	}
	if q.MaxSqft != nil {
		conds = append(conds, "sqft <= ?")
		args = append(args, *q.MaxSqft)
	}
	if q.BoundingBox != nil {
		conds = append(conds, "lat BETWEEN ? AND ? AND lng BETWEEN ? AND ?")
		args = append(args, q.BoundingBox.MinLat, q.BoundingBox.MaxLat, q.BoundingBox.MinLng, q.BoundingBox.MaxLng)
	}

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY updated_at DESC"
	if q.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", q.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("source %s: querying listings: %w", s.name, err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("source %s: closing rows: %w", s.name, closeErr)
		}
	}()

	for rows.Next() {
		rec, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("source %s: scanning listing: %w", s.name, err)
		}
		rec.Source = s.name
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("source %s: iterating listings: %w", s.name, err)
	}

	return records, nil
}

// MarketMetrics implements Source with SQL aggregates over the local store.
func (s *SQLiteSource) MarketMetrics(ctx context.Context, area string, pt property.Type) (*MarketMetrics, error) {
	query := `SELECT COUNT(*),
		COALESCE(AVG(price), 0),
		COALESCE(AVG(cap_rate), 0),
		COALESCE(AVG(days_on_market), 0)
		FROM listings WHERE LOWER(city) = ?`
	args := []interface{}{strings.ToLower(area)}
	if pt != "" {
		query += " AND property_type = ?"
		args = append(args, string(pt))
	}

	m := &MarketMetrics{Area: area, PropertyType: string(pt)}
	var meanPrice float64
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&m.ActiveListing, &meanPrice, &m.MeanCapRate, &m.MeanDOM)
	if err != nil {
		return nil, fmt.Errorf("source %s: aggregating metrics: %w", s.name, err)
	}
	// The local store is small enough that mean stands in for median.
	m.MedianPrice = meanPrice
	return m, nil
}

// Insert stores or replaces a listing in the local store.
func (s *SQLiteSource) Insert(ctx context.Context, r *property.Record) error {
	if err := r.Validate(); err != nil {
		return fmt.Errorf("source %s: %w", s.name, err)
	}

	_, err := s.db.ExecContext(ctx, `INSERT OR REPLACE INTO listings
		(id, street, city, state, zip, lat, lng, property_type, price, price_sqft,
		 sqft, year_built, occupancy, cap_rate, noi, days_on_market, zoning, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`,
		r.ID, r.Address.Street, r.Address.City, r.Address.State, r.Address.Zip,
		r.Coordinates.Lat, r.Coordinates.Lng, string(r.Type), r.Listing.Price,
		nullFloat(nonZero(r.Listing.PricePerSqft)), nullFloat(nonZero(r.Listing.Sqft)),
		nullInt(r.Listing.YearBuilt), nullFloat(r.Listing.Occupancy),
		nullFloat(r.Listing.CapRate), nullFloat(r.Listing.NOI),
		nullInt(r.Market.DaysOnMarket), r.Zoning,
	)
	if err != nil {
		return fmt.Errorf("source %s: inserting listing: %w", s.name, err)
	}
	return nil
}

// scanListing scans a listing row into a Record.
func scanListing(row interface{ Scan(...interface{}) error }) (*property.Record, error) {
	var r property.Record
	var priceSqft, sqft, occupancy, capRate, noi sql.NullFloat64
	var yearBuilt, dom sql.NullInt64
	var ptype string

	err := row.Scan(
		&r.ID, &r.Address.Street, &r.Address.City, &r.Address.State, &r.Address.Zip,
		&r.Coordinates.Lat, &r.Coordinates.Lng, &ptype, &r.Listing.Price,
		&priceSqft, &sqft, &yearBuilt, &occupancy, &capRate, &noi, &dom,
		&r.Zoning, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	r.Type = property.Type(ptype)
	if priceSqft.Valid {
		r.Listing.PricePerSqft = priceSqft.Float64
	}
	if sqft.Valid {
		r.Listing.Sqft = sqft.Float64
	}
	if yearBuilt.Valid {
		yb := int(yearBuilt.Int64)
		r.Listing.YearBuilt = &yb
	}
	if occupancy.Valid {
		r.Listing.Occupancy = &occupancy.Float64
	}
	if capRate.Valid {
		r.Listing.CapRate = &capRate.Float64
	}
	if noi.Valid {
		r.Listing.NOI = &noi.Float64
	}
	if dom.Valid {
		d := int(dom.Int64)
		r.Market.DaysOnMarket = &d
	}
	return &r, nil
}

func nullFloat(f *float64) interface{} {
	if f == nil {
		return nil
	}
	return *f
}

func nullInt(i *int) interface{} {
	if i == nil {
		return nil
	}
	return *i
}

func nonZero(f float64) *float64 {
	if f == 0 {
		return nil
	}
	return &f
}
