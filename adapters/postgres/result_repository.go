package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"geoks/domain/core"
	"geoks/domain/geochron"
)

// ResultRepository persists K-S test results
type ResultRepository struct {
	db *sqlx.DB
}

// NewResultRepository creates a new result repository
func NewResultRepository(db *sqlx.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

// Save inserts a test result. Winners, warnings and filter outcomes are
// stored as jsonb so the full result round-trips without extra tables.
func (r *ResultRepository) Save(ctx context.Context, result *geochron.TestResult) error {
	winnersJSON, err := json.Marshal(result.Winners)
	if err != nil {
		return fmt.Errorf("failed to marshal winners: %w", err)
	}
	warningsJSON, err := json.Marshal(result.Warnings)
	if err != nil {
		return fmt.Errorf("failed to marshal warnings: %w", err)
	}
	filterXJSON, err := marshalFilter(result.FilterX)
	if err != nil {
		return err
	}
	filterYJSON, err := marshalFilter(result.FilterY)
	if err != nil {
		return err
	}

	query := `INSERT INTO ks_results (
		id, statistic, p_value, winners, alternative, method,
		n_x, n_y, pooled_n, warnings, filter_x, filter_y, input_hash, created_at
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
	)`

	_, err = r.db.ExecContext(ctx, query,
		result.ID.String(), result.Statistic, result.PValue, winnersJSON,
		result.Alternative, result.Method, result.NX, result.NY, result.PooledN,
		warningsJSON, filterXJSON, filterYJSON, result.InputHash.String(),
		result.CreatedAt.Time(),
	)
	if err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}
	return nil
}

// GetByID retrieves a test result by its ID
func (r *ResultRepository) GetByID(ctx context.Context, id core.ResultID) (*geochron.TestResult, error) {
	query := `SELECT
		id, statistic, p_value, winners, alternative, method,
		n_x, n_y, pooled_n, warnings, filter_x, filter_y, input_hash, created_at
	FROM ks_results WHERE id = $1`

	return r.scanResult(r.db.QueryRowxContext(ctx, query, id.String()))
}

// ListRecent retrieves the most recently created results
func (r *ResultRepository) ListRecent(ctx context.Context, limit int) ([]*geochron.TestResult, error) {
	if limit < 1 || limit > 100 {
		limit = 10
	}
	query := `SELECT
		id, statistic, p_value, winners, alternative, method,
		n_x, n_y, pooled_n, warnings, filter_x, filter_y, input_hash, created_at
	FROM ks_results ORDER BY created_at DESC LIMIT $1`

	rows, err := r.db.QueryxContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}
	defer rows.Close()

	var results []*geochron.TestResult
	for rows.Next() {
		result, err := r.scanResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *ResultRepository) scanResult(row rowScanner) (*geochron.TestResult, error) {
	var result geochron.TestResult
	var id, inputHash string
	var winnersJSON, warningsJSON, filterXJSON, filterYJSON []byte
	var createdAt sql.NullTime

	err := row.Scan(
		&id, &result.Statistic, &result.PValue, &winnersJSON,
		&result.Alternative, &result.Method, &result.NX, &result.NY, &result.PooledN,
		&warningsJSON, &filterXJSON, &filterYJSON, &inputHash, &createdAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("result not found: %w", err)
		}
		return nil, fmt.Errorf("failed to scan result: %w", err)
	}

	result.ID = core.ResultID(id)
	result.InputHash = core.InputHash(inputHash)
	if createdAt.Valid {
		result.CreatedAt = core.NewTimestamp(createdAt.Time)
	}
	if err := json.Unmarshal(winnersJSON, &result.Winners); err != nil {
		return nil, fmt.Errorf("failed to unmarshal winners: %w", err)
	}
	if len(warningsJSON) > 0 {
		if err := json.Unmarshal(warningsJSON, &result.Warnings); err != nil {
			return nil, fmt.Errorf("failed to unmarshal warnings: %w", err)
		}
	}
	if result.FilterX, err = unmarshalFilter(filterXJSON); err != nil {
		return nil, err
	}
	if result.FilterY, err = unmarshalFilter(filterYJSON); err != nil {
		return nil, err
	}
	return &result, nil
}

func marshalFilter(f *geochron.FilterResult) ([]byte, error) {
	if f == nil {
		return nil, nil
	}
	data, err := json.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal filter result: %w", err)
	}
	return data, nil
}

func unmarshalFilter(data []byte) (*geochron.FilterResult, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var f geochron.FilterResult
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to unmarshal filter result: %w", err)
	}
	return &f, nil
}
