// Package config provides configuration loading from YAML files and SQLite
// databases behind a common provider interface.
package config

// ConfigProvider defines the interface for configuration data sources
type ConfigProvider interface {
	// Load complete configuration
	LoadConfig() (*ConfigData, error)

	// Configuration management
	IsReadOnly() bool
	Close() error
}

// ConfigData represents the complete configuration structure
type ConfigData struct {
	HTTP     HTTPData     `json:"http"`
	Storage  StorageData  `json:"storage,omitempty"`
	Analysis AnalysisData `json:"analysis,omitempty"`
}

// HTTPData holds the REST server listener configuration
type HTTPData struct {
	ListenAddr  string `json:"listen_addr,omitempty"`
	Port        int    `json:"port,omitempty"`
	TLSCertPath string `json:"tls_cert_path,omitempty"`
	TLSKeyPath  string `json:"tls_key_path,omitempty"`
}

// StorageData holds the configuration for the optional analysis history store
type StorageData struct {
	TimescaleDB *TimescaleDBData `json:"timescaledb,omitempty"`
}

// TimescaleDBData holds the database connection configuration
type TimescaleDBData struct {
	ConnectionString string `json:"connection_string"`
}

// AnalysisData holds tunables for the detection pipeline. The pipeline
// constants themselves (sampling rate, window size, caps) are fixed; only
// the default sensitivity used when a request omits one is configurable.
type AnalysisData struct {
	DefaultSensitivity float64 `json:"default_sensitivity,omitempty"`
}
