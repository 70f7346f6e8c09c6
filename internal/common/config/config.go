package config

import "time"

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Scorer   ScorerConfig   `mapstructure:"scorer"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Matching MatchingConfig `mapstructure:"matching"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type StorageConfig struct {
	UploadDir string `mapstructure:"upload_dir"`
	DataFile  string `mapstructure:"data_file"`
	// MaxUploadBytes bounds the multipart form size accepted by /upload.
	MaxUploadBytes int64 `mapstructure:"max_upload_bytes"`
}

// ScorerConfig selects how candidate confidences are obtained. Mode "remote"
// calls an external inference service; mode "keyword" is the degraded
// text-overlap fallback that needs no model host.
type ScorerConfig struct {
	Mode     string        `mapstructure:"mode"`
	BaseURL  string        `mapstructure:"base_url"`
	Timeout  time.Duration `mapstructure:"timeout"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type MatchingConfig struct {
	// TieBandRatio is the relative tolerance that keeps a candidate inside
	// the tie band: confidence >= TieBandRatio * bestConfidence.
	TieBandRatio float64 `mapstructure:"tie_band_ratio"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
