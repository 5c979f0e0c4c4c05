package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/fortress/internal/flagx"
)

// JsonConfig is the on-disk shape. Pointers tell absent keys from zero
// values.
type JsonConfig struct {
	StorageDriver *string `json:"storage_driver"`
	DatabaseDSN   *string `json:"database_dsn"`
	ExportDir     *string `json:"export_dir"`
	MaxFileSize   *int64  `json:"max_file_size"`
	QuotaBytes    *int64  `json:"quota_bytes"`
	KDFIterations *int    `json:"kdf_iterations"`
	LogLevel      *string `json:"log_level"`
	LogFormat     *string `json:"log_format"`
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// parseJson overlays cfg with the file named by -c/-config or
// $FORTRESS_CONFIG. It panics if the file cannot be read or parsed.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	set(&cfg.StorageDriver, jc.StorageDriver)
	set(&cfg.DatabaseDSN, jc.DatabaseDSN)
	set(&cfg.ExportDir, jc.ExportDir)
	set(&cfg.MaxFileSize, jc.MaxFileSize)
	set(&cfg.QuotaBytes, jc.QuotaBytes)
	set(&cfg.KDFIterations, jc.KDFIterations)
	set(&cfg.LogLevel, jc.LogLevel)
	set(&cfg.LogFormat, jc.LogFormat)
}
