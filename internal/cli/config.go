package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/protoglyph/slatedesk/internal/paths"
	"github.com/protoglyph/slatedesk/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	// Config keys.
	cfgKeySchemaDir   = "schema_dir"
	cfgKeyRecordsDir  = "records_dir"
	cfgKeyListenAddr  = "listen_addr"
	cfgKeyLatencyMS   = "latency_ms"
	cfgKeyPersistence = "persistence"
	cfgKeySinkURL     = "sink_url"
	cfgKeyLogLevel    = "log_level"

	defaultListenAddr = "localhost:8490"
)

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# Slatedesk configuration

# Persistence backend for record snapshots: file, sqlite, http, or none
persistence: file

# Record-writer endpoint for the http backend, e.g. http://localhost:8490
# sink_url:

# Dev server listen address
listen_addr: localhost:8490

# Artificial delay before each store operation, in milliseconds
latency_ms: 0

# Log level: debug, info, warn, error
log_level: info

# Directories (optional; default under the data directory)
# schema_dir:
# records_dir:
`

// loadConfig reads config.yaml from the resolved config directory using
// Viper. A missing config.yaml is not an error; defaults apply.
func loadConfig(configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyPersistence, types.PersistenceFile)
	v.SetDefault(cfgKeyListenAddr, defaultListenAddr)
	v.SetDefault(cfgKeyLatencyMS, 0)
	v.SetDefault(cfgKeyLogLevel, "info")
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	v.SetEnvPrefix("SLATEDESK")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// resolveConfig assembles the effective Config from flags, config.yaml, and
// defaults. Schema and records directories default under the data directory.
func resolveConfig() (types.Config, error) {
	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve config dir: %w", err)
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return types.Config{}, err
	}

	dataDir, err := paths.ResolveDataDir(flags.dataDir, v.GetString("data_dir"))
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve data dir: %w", err)
	}

	cfg := types.Config{
		SchemaDir:   v.GetString(cfgKeySchemaDir),
		RecordsDir:  v.GetString(cfgKeyRecordsDir),
		ListenAddr:  v.GetString(cfgKeyListenAddr),
		LatencyMS:   v.GetInt(cfgKeyLatencyMS),
		Persistence: v.GetString(cfgKeyPersistence),
		SinkURL:     v.GetString(cfgKeySinkURL),
		LogLevel:    v.GetString(cfgKeyLogLevel),
	}
	if cfg.SchemaDir == "" {
		cfg.SchemaDir = filepath.Join(dataDir, "schemas")
	}
	if cfg.RecordsDir == "" {
		cfg.RecordsDir = filepath.Join(dataDir, "records")
	}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, err
	}
	return cfg, nil
}

// ensureConfigDir creates the config directory if it does not exist.
func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile writes config.yaml on first run. An existing file
// is left alone.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileName+"."+configFileType)
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
