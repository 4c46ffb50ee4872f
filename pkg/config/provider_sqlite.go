package config

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteProvider implements ConfigProvider for SQLite database configuration
type SQLiteProvider struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteProvider creates a new SQLite configuration provider
func NewSQLiteProvider(dbPath string) (*SQLiteProvider, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	return &SQLiteProvider{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// LoadConfig loads the complete configuration from the SQLite database.
// All three tables are single-row; a missing row leaves that section at its
// zero value so defaults apply downstream.
func (s *SQLiteProvider) LoadConfig() (*ConfigData, error) {
	config := &ConfigData{}

	row := s.db.QueryRow(`SELECT listen_addr, port, tls_cert_path, tls_key_path FROM http_config LIMIT 1`)
	err := row.Scan(&config.HTTP.ListenAddr, &config.HTTP.Port, &config.HTTP.TLSCertPath, &config.HTTP.TLSKeyPath)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to load http config: %w", err)
	}

	var connString string
	row = s.db.QueryRow(`SELECT connection_string FROM storage_config LIMIT 1`)
	err = row.Scan(&connString)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to load storage config: %w", err)
	}
	if connString != "" {
		config.Storage.TimescaleDB = &TimescaleDBData{ConnectionString: connString}
	}

	row = s.db.QueryRow(`SELECT default_sensitivity FROM analysis_config LIMIT 1`)
	err = row.Scan(&config.Analysis.DefaultSensitivity)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to load analysis config: %w", err)
	}

	return config, nil
}

// IsReadOnly returns false; SQLite configuration can be modified
func (s *SQLiteProvider) IsReadOnly() bool {
	return false
}

// Close closes the database connection
func (s *SQLiteProvider) Close() error {
	return s.db.Close()
}
