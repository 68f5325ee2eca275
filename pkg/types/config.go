package types

import "errors"

// Persistence backend names.
const (
	PersistenceFile   = "file"
	PersistenceSQLite = "sqlite"
	PersistenceHTTP   = "http"
	PersistenceNone   = "none"
)

// Config validation errors.
var (
	ErrPersistenceUnknown = errors.New("unknown persistence backend")
	ErrSinkURLRequired    = errors.New("http persistence requires sink_url")
	ErrLatencyNegative    = errors.New("latency must not be negative")
)

// knownPersistence lists the backends that Validate accepts.
var knownPersistence = map[string]bool{
	PersistenceFile:   true,
	PersistenceSQLite: true,
	PersistenceHTTP:   true,
	PersistenceNone:   true,
}

// Config holds the runtime parameters shared by the CLI and the dev server.
// SinkURL names the remote record-writer endpoint used by the http backend.
type Config struct {
	SchemaDir   string `json:"schema_dir" yaml:"schema_dir"`
	RecordsDir  string `json:"records_dir" yaml:"records_dir"`
	ListenAddr  string `json:"listen_addr" yaml:"listen_addr"`
	LatencyMS   int    `json:"latency_ms" yaml:"latency_ms"`
	Persistence string `json:"persistence" yaml:"persistence"`
	SinkURL     string `json:"sink_url" yaml:"sink_url"`
	LogLevel    string `json:"log_level" yaml:"log_level"`
}

// Validate checks that the Config is well-formed. An empty Persistence is
// allowed and means file.
func (c Config) Validate() error {
	if c.Persistence != "" && !knownPersistence[c.Persistence] {
		return ErrPersistenceUnknown
	}
	if c.Persistence == PersistenceHTTP && c.SinkURL == "" {
		return ErrSinkURLRequired
	}
	if c.LatencyMS < 0 {
		return ErrLatencyNegative
	}
	return nil
}

// EffectivePersistence returns the configured backend, defaulting to file.
func (c Config) EffectivePersistence() string {
	if c.Persistence == "" {
		return PersistenceFile
	}
	return c.Persistence
}
