package config

// TypeConfig holds per-report-type defaults for a single generator tag.
// This allows routing different report types through different formats
// and channels without repeating flags on every invocation.
type TypeConfig struct {
	// Format is the formatter tag to render this report type with.
	Format string `yaml:"format,omitempty"`

	// Channel is the delivery channel tag for this report type.
	Channel string `yaml:"channel,omitempty"`

	// Recipient is the email destination for this report type.
	// Only used when the resolved channel is "email".
	Recipient string `yaml:"recipient,omitempty"`

	// DownloadDir overrides the download directory for this report type.
	DownloadDir string `yaml:"downloadDir,omitempty"`

	// CloudPrefix overrides the cloud key prefix for this report type.
	CloudPrefix string `yaml:"cloudPrefix,omitempty"`
}

// File represents the structure of the .reportpipe configuration file.
type File struct {
	// Types maps generator tags to their report-type-specific defaults.
	// Keys are the registry tags (e.g., "sales", "financial").
	Types map[string]TypeConfig `yaml:"types,omitempty"`

	// Defaults contains defaults applied to all report types unless
	// overridden in the type-specific configuration.
	Defaults TypeConfig `yaml:"defaults,omitempty"`
}

// GetTypeConfig returns the configuration for a specific report type.
// It merges the type-specific configuration with defaults.
func (cf *File) GetTypeConfig(reportType string) TypeConfig {
	// Start with defaults
	result := cf.Defaults

	// Override with type-specific configuration if present
	if typeConfig, ok := cf.Types[reportType]; ok {
		if typeConfig.Format != "" {
			result.Format = typeConfig.Format
		}
		if typeConfig.Channel != "" {
			result.Channel = typeConfig.Channel
		}
		if typeConfig.Recipient != "" {
			result.Recipient = typeConfig.Recipient
		}
		if typeConfig.DownloadDir != "" {
			result.DownloadDir = typeConfig.DownloadDir
		}
		if typeConfig.CloudPrefix != "" {
			result.CloudPrefix = typeConfig.CloudPrefix
		}
	}

	return result
}
