package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/fortress/internal/flagx"
)

var knownFlags = []string{"-s", "-d", "-o", "-m", "-q", "-k", "-l", "-f"}

// parseFlags overlays cfg with command-line flags. Only the flags listed in
// knownFlags are looked at; -m and -q are given in MiB and applied only when
// present so byte-exact JSON values survive.
func parseFlags(cfg *Config, args []string) {
	fs := flag.NewFlagSet("fortress", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.StorageDriver, "s", cfg.StorageDriver, "storage driver (sqlite, pgx, memory)")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database file or connection string")
	fs.StringVar(&cfg.ExportDir, "o", cfg.ExportDir, "directory for downloads and exports")
	maxFile := fs.Int64("m", cfg.MaxFileSize/mib, "max upload size (MiB)")
	quota := fs.Int64("q", cfg.QuotaBytes/mib, "per-user quota (MiB)")
	fs.IntVar(&cfg.KDFIterations, "k", cfg.KDFIterations, "PBKDF2 iterations")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "f", cfg.LogFormat, "log format (text, json)")

	if err := fs.Parse(flagx.FilterArgs(args, knownFlags)); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "m":
			cfg.MaxFileSize = *maxFile * mib
		case "q":
			cfg.QuotaBytes = *quota * mib
		}
	})
}
