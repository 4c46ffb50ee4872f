package config

import (
	"os"

	"gopkg.in/yaml.v2"
)

// YAMLProvider implements ConfigProvider for YAML configuration files
type YAMLProvider struct {
	filename string
}

// NewYAMLProvider creates a new YAML configuration provider
func NewYAMLProvider(filename string) *YAMLProvider {
	return &YAMLProvider{filename: filename}
}

// yamlConfig mirrors ConfigData with YAML tags
type yamlConfig struct {
	HTTP struct {
		ListenAddr  string `yaml:"listen_addr,omitempty"`
		Port        int    `yaml:"port,omitempty"`
		TLSCertPath string `yaml:"tls_cert_path,omitempty"`
		TLSKeyPath  string `yaml:"tls_key_path,omitempty"`
	} `yaml:"http"`
	Storage struct {
		TimescaleDB *struct {
			ConnectionString string `yaml:"connection_string"`
		} `yaml:"timescaledb,omitempty"`
	} `yaml:"storage,omitempty"`
	Analysis struct {
		DefaultSensitivity float64 `yaml:"default_sensitivity,omitempty"`
	} `yaml:"analysis,omitempty"`
}

// LoadConfig loads the complete configuration from the YAML file
func (y *YAMLProvider) LoadConfig() (*ConfigData, error) {
	cfgFile, err := os.ReadFile(y.filename)
	if err != nil {
		return nil, err
	}

	var raw yamlConfig
	if err := yaml.Unmarshal(cfgFile, &raw); err != nil {
		return nil, err
	}

	config := &ConfigData{
		HTTP: HTTPData{
			ListenAddr:  raw.HTTP.ListenAddr,
			Port:        raw.HTTP.Port,
			TLSCertPath: raw.HTTP.TLSCertPath,
			TLSKeyPath:  raw.HTTP.TLSKeyPath,
		},
		Analysis: AnalysisData{
			DefaultSensitivity: raw.Analysis.DefaultSensitivity,
		},
	}

	if raw.Storage.TimescaleDB != nil {
		config.Storage.TimescaleDB = &TimescaleDBData{
			ConnectionString: raw.Storage.TimescaleDB.ConnectionString,
		}
	}

	return config, nil
}

// IsReadOnly returns true; YAML configuration is not editable at runtime
func (y *YAMLProvider) IsReadOnly() bool {
	return true
}

// Close is a no-op for YAML providers
func (y *YAMLProvider) Close() error {
	return nil
}
