package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iulianpascalau/metrics-dashboard/services/dashboard/common"
)

const selectDashboardColumns = `SELECT id, name, layout, widgets, settings, is_default, created_at, last_modified FROM dashboard_configs`

// ListDashboardConfigs returns all the dashboard configs, the default one first, then the most recently modified
func (s *sqliteStorage) ListDashboardConfigs(ctx context.Context) ([]common.DashboardConfig, error) {
	rows, err := s.db.QueryContext(ctx, selectDashboardColumns+" ORDER BY is_default DESC, last_modified DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	results := make([]common.DashboardConfig, 0)
	for rows.Next() {
		cfg, errScan := scanDashboardConfig(rows)
		if errScan != nil {
			return nil, errScan
		}

		results = append(results, cfg)
	}

	return results, rows.Err()
}

// GetDashboardConfig returns the dashboard config with the provided identity
func (s *sqliteStorage) GetDashboardConfig(ctx context.Context, id int64) (*common.DashboardConfig, error) {
	return getDashboardConfig(ctx, s.db, id)
}

// GetDefaultDashboardConfig returns the dashboard config marked as default
func (s *sqliteStorage) GetDefaultDashboardConfig(ctx context.Context) (*common.DashboardConfig, error) {
	row := s.db.QueryRowContext(ctx, selectDashboardColumns+" WHERE is_default = 1 LIMIT 1")

	cfg, err := scanDashboardConfig(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNoDefaultDashboard
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get default dashboard config: %w", err)
	}

	return &cfg, nil
}

// CreateDashboardConfig inserts a new dashboard config. If the new config is the default one, all the other
// configs lose the default flag in the same transaction.
func (s *sqliteStorage) CreateDashboardConfig(ctx context.Context, cfg common.DashboardConfig) (common.DashboardConfig, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return common.DashboardConfig{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if cfg.IsDefault {
		err = clearDefaults(ctx, tx, 0)
		if err != nil {
			return common.DashboardConfig{}, err
		}
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO dashboard_configs (name, layout, widgets, settings, is_default, created_at, last_modified)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, cfg.Name, cfg.Layout, cfg.Widgets, cfg.Settings, cfg.IsDefault, toUnixNano(cfg.CreatedAt), toUnixNano(cfg.LastModified))
	if err != nil {
		return common.DashboardConfig{}, fmt.Errorf("failed to insert dashboard config: %w", err)
	}

	cfg.ID, err = res.LastInsertId()
	if err != nil {
		return common.DashboardConfig{}, fmt.Errorf("failed to read dashboard config id: %w", err)
	}

	err = tx.Commit()
	if err != nil {
		return common.DashboardConfig{}, fmt.Errorf("failed to commit dashboard config: %w", err)
	}

	cfg.CreatedAt = cfg.CreatedAt.UTC()
	cfg.LastModified = cfg.LastModified.UTC()

	return cfg, nil
}

// UpdateDashboardConfig overwrites the mutable fields of an existing dashboard config. The creation time is
// preserved. If the config becomes the default one, all the other configs lose the flag in the same transaction.
func (s *sqliteStorage) UpdateDashboardConfig(ctx context.Context, cfg common.DashboardConfig) (common.DashboardConfig, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return common.DashboardConfig{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	existing, err := getDashboardConfig(ctx, tx, cfg.ID)
	if err != nil {
		return common.DashboardConfig{}, err
	}

	if cfg.IsDefault {
		err = clearDefaults(ctx, tx, cfg.ID)
		if err != nil {
			return common.DashboardConfig{}, err
		}
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE dashboard_configs
		SET name = ?, layout = ?, widgets = ?, settings = ?, is_default = ?, last_modified = ?
		WHERE id = ?
	`, cfg.Name, cfg.Layout, cfg.Widgets, cfg.Settings, cfg.IsDefault, toUnixNano(cfg.LastModified), cfg.ID)
	if err != nil {
		return common.DashboardConfig{}, fmt.Errorf("failed to update dashboard config: %w", err)
	}

	err = tx.Commit()
	if err != nil {
		return common.DashboardConfig{}, fmt.Errorf("failed to commit dashboard config: %w", err)
	}

	cfg.CreatedAt = existing.CreatedAt
	cfg.LastModified = cfg.LastModified.UTC()

	return cfg, nil
}

// SetDefaultDashboardConfig marks the provided config as the only default one
func (s *sqliteStorage) SetDefaultDashboardConfig(ctx context.Context, id int64, modifiedAt time.Time) (common.DashboardConfig, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return common.DashboardConfig{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	cfg, err := getDashboardConfig(ctx, tx, id)
	if err != nil {
		return common.DashboardConfig{}, err
	}

	err = clearDefaults(ctx, tx, id)
	if err != nil {
		return common.DashboardConfig{}, err
	}

	_, err = tx.ExecContext(ctx, "UPDATE dashboard_configs SET is_default = 1, last_modified = ? WHERE id = ?", toUnixNano(modifiedAt), id)
	if err != nil {
		return common.DashboardConfig{}, fmt.Errorf("failed to set default dashboard config: %w", err)
	}

	err = tx.Commit()
	if err != nil {
		return common.DashboardConfig{}, fmt.Errorf("failed to commit dashboard config: %w", err)
	}

	cfg.IsDefault = true
	cfg.LastModified = modifiedAt.UTC()

	return *cfg, nil
}

// DeleteDashboardConfig removes a dashboard config. The default config can not be removed.
func (s *sqliteStorage) DeleteDashboardConfig(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	cfg, err := getDashboardConfig(ctx, tx, id)
	if err != nil {
		return err
	}
	if cfg.IsDefault {
		return common.ErrDefaultDashboardDeletion
	}

	_, err = tx.ExecContext(ctx, "DELETE FROM dashboard_configs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete dashboard config: %w", err)
	}

	return tx.Commit()
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func getDashboardConfig(ctx context.Context, q queryRower, id int64) (*common.DashboardConfig, error) {
	row := q.QueryRowContext(ctx, selectDashboardColumns+" WHERE id = ?", id)

	cfg, err := scanDashboardConfig(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrDashboardNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get dashboard config: %w", err)
	}

	return &cfg, nil
}

// clearDefaults removes the default flag from every config except the one with the provided identity
func clearDefaults(ctx context.Context, tx *sql.Tx, exceptID int64) error {
	_, err := tx.ExecContext(ctx, "UPDATE dashboard_configs SET is_default = 0 WHERE is_default = 1 AND id != ?", exceptID)
	if err != nil {
		return fmt.Errorf("failed to clear the default dashboard configs: %w", err)
	}

	return nil
}

func scanDashboardConfig(row rowScanner) (common.DashboardConfig, error) {
	var cfg common.DashboardConfig
	var createdAt, lastModified int64

	err := row.Scan(&cfg.ID, &cfg.Name, &cfg.Layout, &cfg.Widgets, &cfg.Settings, &cfg.IsDefault, &createdAt, &lastModified)
	if err != nil {
		return common.DashboardConfig{}, err
	}

	cfg.CreatedAt = fromUnixNano(createdAt)
	cfg.LastModified = fromUnixNano(lastModified)

	return cfg, nil
}
