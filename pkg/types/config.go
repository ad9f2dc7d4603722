package types

import "time"

// HTTPConfig holds settings for requests to FantasyPros.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with every request.
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`

	// RequestDelay is the minimum spacing between consecutive requests
	// (default 1s). A negative value disables pacing.
	RequestDelay time.Duration `json:"request_delay" yaml:"request_delay" mapstructure:"request_delay"`

	// APIKey is sent as the x-api-key header when set.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`
}

// ScraperConfig holds settings shared by the expert and ranking scrapers.
type ScraperConfig struct {
	HTTP HTTPConfig `json:"http" yaml:"http" mapstructure:"http"`

	// BaseDir is the directory containing experts/ and rankings/.
	BaseDir string `json:"base_dir" yaml:"base_dir" mapstructure:"base_dir"`

	// Verbose logs every file written.
	Verbose bool `json:"verbose" yaml:"verbose" mapstructure:"verbose"`
}
