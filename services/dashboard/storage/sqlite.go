package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/iulianpascalau/metrics-dashboard/services/dashboard/common"
	_ "github.com/mattn/go-sqlite3"
	logger "github.com/multiversx/mx-chain-logger-go"
)

var log = logger.GetOrCreate("storage")

const selectMetricColumns = `SELECT id, timestamp, server_name, environment, metric_type, metric_value, source FROM metrics`

var distributionColumns = map[common.DistributionDimension]string{
	common.DistributionByEnvironment: "environment",
	common.DistributionByType:        "metric_type",
	common.DistributionByServer:      "server_name",
}

// sqliteStorage is the sqlite implementation for the metrics and dashboard configs storage
type sqliteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage opens (or creates) the database and the schema
func NewSQLiteStorage(dbPath string) (*sqliteStorage, error) {
	err := prepareDirectories(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create initial empty DB file: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// a single connection serializes the writers and keeps :memory: databases in one place
	db.SetMaxOpenConns(1)

	err = createSchema(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	log.Debug("sqlite storage opened", "path", dbPath)

	return newSQLStorage(db), nil
}

func newSQLStorage(db *sql.DB) *sqliteStorage {
	return &sqliteStorage{
		db: db,
	}
}

func prepareDirectories(dbPath string) error {
	return os.MkdirAll(filepath.Dir(dbPath), os.ModePerm)
}

func createSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS metrics (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp    INTEGER NOT NULL,
		server_name  TEXT    NOT NULL,
		environment  TEXT    NOT NULL,
		metric_type  TEXT    NOT NULL,
		metric_value TEXT    NOT NULL,
		source       TEXT    NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_metrics_timestamp ON metrics(timestamp);
	CREATE INDEX IF NOT EXISTS idx_metrics_metric_type ON metrics(metric_type);

	CREATE TABLE IF NOT EXISTS dashboard_configs (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		name          TEXT    NOT NULL,
		layout        TEXT    NOT NULL,
		widgets       TEXT    NOT NULL,
		settings      TEXT    NOT NULL DEFAULT '{}',
		is_default    INTEGER NOT NULL DEFAULT 0,
		created_at    INTEGER NOT NULL,
		last_modified INTEGER NOT NULL
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_dashboard_configs_single_default
		ON dashboard_configs(is_default) WHERE is_default = 1;
	`

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// SaveMetric inserts the metric record and returns it with the assigned identity. The insert is committed
// when the function returns without error.
func (s *sqliteStorage) SaveMetric(ctx context.Context, record common.MetricRecord) (common.MetricRecord, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return common.MetricRecord{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO metrics (timestamp, server_name, environment, metric_type, metric_value, source)
		VALUES (?, ?, ?, ?, ?, ?)
	`, toUnixNano(record.Timestamp), record.ServerName, record.Environment, record.MetricType, record.MetricValue, record.Source)
	if err != nil {
		return common.MetricRecord{}, fmt.Errorf("failed to insert metric: %w", err)
	}

	record.ID, err = res.LastInsertId()
	if err != nil {
		return common.MetricRecord{}, fmt.Errorf("failed to read metric id: %w", err)
	}

	err = tx.Commit()
	if err != nil {
		return common.MetricRecord{}, fmt.Errorf("failed to commit metric: %w", err)
	}

	record.Timestamp = record.Timestamp.UTC()

	return record, nil
}

// GetMetric returns the metric record with the provided identity
func (s *sqliteStorage) GetMetric(ctx context.Context, id int64) (*common.MetricRecord, error) {
	row := s.db.QueryRowContext(ctx, selectMetricColumns+" WHERE id = ?", id)

	record, err := scanMetric(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrMetricNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get metric: %w", err)
	}

	return &record, nil
}

// QueryMetrics returns the records matching all the set predicates, newest first, capped at limit rows
func (s *sqliteStorage) QueryMetrics(ctx context.Context, filter common.MetricFilter, limit int) ([]common.MetricRecord, error) {
	conditions := make([]string, 0, 5)
	args := make([]interface{}, 0, 6)

	if len(filter.ServerName) > 0 {
		conditions = append(conditions, "instr(server_name, ?) > 0")
		args = append(args, filter.ServerName)
	}
	if len(filter.Environment) > 0 {
		conditions = append(conditions, "environment = ?")
		args = append(args, filter.Environment)
	}
	if len(filter.MetricType) > 0 {
		conditions = append(conditions, "instr(metric_type, ?) > 0")
		args = append(args, filter.MetricType)
	}
	if filter.StartDate != nil {
		conditions = append(conditions, "timestamp >= ?")
		args = append(args, toUnixNano(*filter.StartDate))
	}
	if filter.EndDate != nil {
		conditions = append(conditions, "timestamp <= ?")
		args = append(args, toUnixNano(*filter.EndDate))
	}

	query := selectMetricColumns
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY timestamp DESC, id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	results := make([]common.MetricRecord, 0)
	for rows.Next() {
		record, errScan := scanMetric(rows)
		if errScan != nil {
			return nil, errScan
		}

		results = append(results, record)
	}

	return results, rows.Err()
}

// GetSummary computes the global counters over the metrics table
func (s *sqliteStorage) GetSummary(ctx context.Context) (*common.MetricsSummary, error) {
	var summary common.MetricsSummary
	var lastTimestamp sql.NullInt64

	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COUNT(DISTINCT server_name), COUNT(DISTINCT metric_type), MAX(timestamp)
		FROM metrics
	`).Scan(&summary.TotalMetrics, &summary.UniqueServers, &summary.UniqueMetricTypes, &lastTimestamp)
	if err != nil {
		return nil, fmt.Errorf("failed to compute summary: %w", err)
	}

	if lastTimestamp.Valid {
		lastTime := fromUnixNano(lastTimestamp.Int64)
		summary.LastMetricTime = &lastTime
	}

	return &summary, nil
}

// GetTypeOverview groups the records by metric type, ordered by type name
func (s *sqliteStorage) GetTypeOverview(ctx context.Context) ([]common.MetricTypeOverview, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT metric_type, COUNT(*), MAX(timestamp)
		FROM metrics
		GROUP BY metric_type
		ORDER BY metric_type ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	results := make([]common.MetricTypeOverview, 0)
	for rows.Next() {
		var overview common.MetricTypeOverview
		var lastTimestamp int64

		err = rows.Scan(&overview.MetricType, &overview.Quantity, &lastTimestamp)
		if err != nil {
			return nil, err
		}

		overview.LastUpdateTime = fromUnixNano(lastTimestamp)
		results = append(results, overview)
	}

	return results, rows.Err()
}

// GetDistribution counts the records grouped by the provided dimension, biggest groups first.
// A limit <= 0 returns all the groups.
func (s *sqliteStorage) GetDistribution(ctx context.Context, dimension common.DistributionDimension, limit int) ([]common.DistributionItem, error) {
	column, ok := distributionColumns[dimension]
	if !ok {
		return nil, fmt.Errorf("%w: %s", common.ErrInvalidDistributionDimension, dimension)
	}
	if limit <= 0 {
		limit = -1
	}

	query := fmt.Sprintf(`
		SELECT COALESCE(NULLIF(%s, ''), ?) AS group_name, COUNT(*) AS group_count
		FROM metrics
		GROUP BY group_name
		ORDER BY group_count DESC, group_name ASC
		LIMIT ?
	`, column)

	rows, err := s.db.QueryContext(ctx, query, common.UnknownGroupName, limit)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	results := make([]common.DistributionItem, 0)
	for rows.Next() {
		var item common.DistributionItem
		err = rows.Scan(&item.Name, &item.Count)
		if err != nil {
			return nil, err
		}

		results = append(results, item)
	}

	return results, rows.Err()
}

// Close closes the database
func (s *sqliteStorage) Close() error {
	return s.db.Close()
}

// IsInterfaceNil returns true if the value under the interface is nil
func (s *sqliteStorage) IsInterfaceNil() bool {
	return s == nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMetric(row rowScanner) (common.MetricRecord, error) {
	var record common.MetricRecord
	var timestamp int64

	err := row.Scan(&record.ID, &timestamp, &record.ServerName, &record.Environment, &record.MetricType, &record.MetricValue, &record.Source)
	if err != nil {
		return common.MetricRecord{}, err
	}

	record.Timestamp = fromUnixNano(timestamp)

	return record, nil
}

func toUnixNano(t time.Time) int64 {
	return t.UTC().UnixNano()
}

func fromUnixNano(nanos int64) time.Time {
	return time.Unix(0, nanos).UTC()
}
