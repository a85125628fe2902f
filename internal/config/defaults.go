package config

// Default configuration values.
const (
	// ConfigFileName is the name of the config file.
	ConfigFileName = "lengthcalc.yaml"
	// ConfigFileNameAlt is the alternate name of the config file.
	ConfigFileNameAlt = "lengthcalc.yml"

	DefaultStateFile = ".lengthcalc/state.db"
	DefaultOutput    = "auto" // Auto-detect: TTY=table, non-TTY=markdown
)

// ApplySourceDefaults applies default values to a SourceConfig based on
// the source type.
func ApplySourceDefaults(s *SourceConfig) {
	if s == nil {
		return
	}

	if s.Type == "postgres" {
		if s.Port == 0 {
			s.Port = 5432
		}
	}
}
