package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ourvoice/mgnrega-api/internal/database"
	"github.com/ourvoice/mgnrega-api/internal/models"
)

// DistrictRepository defines the interface for district reference-data access.
type DistrictRepository interface {
	// ListByState returns all districts in the given state ordered by
	// name ascending. Returns an empty slice if none exist.
	ListByState(ctx context.Context, state string) ([]models.District, error)

	// ListAll returns every known district in natural (id) order. This
	// is the reference set for nearest-district resolution.
	ListAll(ctx context.Context) ([]models.District, error)

	// FindByID finds a single district by id.
	// Returns nil, nil if no district exists (not an error).
	FindByID(ctx context.Context, id int) (*models.District, error)
}

// districtRepository is the concrete implementation of DistrictRepository.
type districtRepository struct {
	db *database.Database
}

// NewDistrictRepository creates a new instance of DistrictRepository.
func NewDistrictRepository(db *database.Database) DistrictRepository {
	return &districtRepository{db: db}
}

const districtColumns = `id, name, state, district_code, latitude, longitude`

func (r *districtRepository) ListByState(ctx context.Context, state string) ([]models.District, error) {
	query := `
		SELECT ` + districtColumns + `
		FROM districts
		WHERE state = $1
		ORDER BY name ASC
	`

	rows, err := r.db.Pool.Query(ctx, query, state)
	if err != nil {
		return nil, fmt.Errorf("failed to query districts for state %q: %w", state, err)
	}
	defer rows.Close()

	return scanDistricts(rows)
}

func (r *districtRepository) ListAll(ctx context.Context) ([]models.District, error) {
	query := `
		SELECT ` + districtColumns + `
		FROM districts
		ORDER BY id
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query districts: %w", err)
	}
	defer rows.Close()

	return scanDistricts(rows)
}

func (r *districtRepository) FindByID(ctx context.Context, id int) (*models.District, error) {
	query := `
		SELECT ` + districtColumns + `
		FROM districts
		WHERE id = $1
	`

	var d models.District
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&d.ID,
		&d.Name,
		&d.State,
		&d.DistrictCode,
		&d.Latitude,
		&d.Longitude,
	)

	// No rows is not an error at the repository level
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query district %d: %w", id, err)
	}

	return &d, nil
}

func scanDistricts(rows pgx.Rows) ([]models.District, error) {
	var districts []models.District

	for rows.Next() {
		var d models.District
		if err := rows.Scan(
			&d.ID,
			&d.Name,
			&d.State,
			&d.DistrictCode,
			&d.Latitude,
			&d.Longitude,
		); err != nil {
			return nil, fmt.Errorf("failed to scan district row: %w", err)
		}
		districts = append(districts, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating district rows: %w", err)
	}

	if districts == nil {
		districts = []models.District{}
	}

	return districts, nil
}
