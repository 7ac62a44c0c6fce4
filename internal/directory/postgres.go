package directory

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"callforecast/internal/model"
)

// LoadPostgres reads the directory from a hospital_directory table and
// closes the connection afterwards; the directory never refreshes during
// the process lifetime.
func LoadPostgres(ctx context.Context, dsn string) (*Directory, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("directory db pool init: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("directory db ping: %w", err)
	}

	rows, err := pool.Query(ctx, `
		SELECT organization_id, hospital_name, unit_name
		FROM hospital_directory
		ORDER BY hospital_name, unit_name
	`)
	if err != nil {
		return nil, fmt.Errorf("querying hospital_directory: %w", err)
	}
	defer rows.Close()

	var entries []model.DirectoryEntry
	for rows.Next() {
		var e model.DirectoryEntry
		if err := rows.Scan(&e.OrganizationID, &e.HospitalName, &e.UnitName); err != nil {
			return nil, fmt.Errorf("scanning hospital_directory row: %w", err)
		}
		entries = append(entries, e)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterating hospital_directory rows: %w", rows.Err())
	}

	return New(entries)
}
