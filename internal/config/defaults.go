package config

const (
	defaultConfigPath      = "~/.config/vcfimport/config.toml"
	projectConfigName      = "vcfimport.toml"
	defaultDataDir         = "~/.local/share/vcfimport"
	defaultLogDir          = "~/.local/share/vcfimport/logs"
	defaultStoreFileName   = "contacts.db"
	defaultOnAmbiguousName = AmbiguousAbort
	defaultDelimiter       = ","
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Ambiguous-name policies.
const (
	AmbiguousAbort = "abort"
	AmbiguousSkip  = "skip"
)

// DefaultExportFields is the column order used when export.fields is unset.
var DefaultExportFields = []string{"display_name", "phone", "email", "note"}

// Default returns a Config populated with repository defaults. The store
// path is derived from the data directory during normalization.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Parse: Parse{
			OnAmbiguousName: defaultOnAmbiguousName,
		},
		Export: Export{
			Delimiter: defaultDelimiter,
			Header:    true,
			Fields:    append([]string(nil), DefaultExportFields...),
		},
		Store: Store{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
