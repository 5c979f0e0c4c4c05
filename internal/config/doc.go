// Package config loads runtime configuration for the Fortress CLI.
//
// Sources, later ones winning:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file named by -c / -config, or by $FORTRESS_CONFIG
//     (which LoadConfig also picks up from a .env file).
//  3. Command-line flags.
//
// Supported flags
//
//	-s string   storage driver: sqlite, pgx or memory
//	-d string   database file (sqlite) or connection string (pgx)
//	-o string   directory downloads and exports are written to
//	-m int      largest file accepted for upload, in MiB
//	-q int      per-user vault quota, in MiB
//	-k int      PBKDF2 iterations (at least 100000)
//	-l string   log level: debug, info, warn, error
//
// # JSON schema
//
// Sizes are in bytes. Absent keys keep their default:
//
//	{
//	  "storage_driver": "sqlite",
//	  "database_dsn": "fortress.db",
//	  "export_dir": "downloads",
//	  "max_file_size": 5242880,
//	  "quota_bytes": 5242880,
//	  "kdf_iterations": 100000,
//	  "log_level": "warn"
//	}
//
// Malformed JSON or flags panic, since there is nothing sensible to run
// with; Validate reports values that parse but cannot be used.
package config
