package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
)

// Config holds all CLI configuration
type Config struct {
	// Invocation settings
	BaseURL string
	Method  string
	Headers []string // raw "Name: Value" pairs from -H flags
	Data    string
	JSON    bool
	Region  string
	Token   string

	// Transport settings
	Lambda bool

	// Output settings
	Verbose        bool
	Debug          bool
	IncludeHeaders bool

	// MCP settings
	MCP bool
}

// NewConfig creates a Config with default values
func NewConfig() *Config {
	return &Config{
		Method: "POST",
	}
}

// LoadFromFlags creates a Config from command line flags
func LoadFromFlags(flags *pflag.FlagSet) (*Config, error) {
	config := NewConfig()

	var err error

	if config.BaseURL, err = flags.GetString("url"); err != nil {
		return nil, fmt.Errorf("failed to get url flag: %w", err)
	}
	if config.Method, err = flags.GetString("request"); err != nil {
		return nil, fmt.Errorf("failed to get request flag: %w", err)
	}
	config.Method = strings.ToUpper(strings.TrimSpace(config.Method))
	if config.Method == "" {
		config.Method = "POST"
	}

	if config.Headers, err = flags.GetStringSlice("header"); err != nil {
		return nil, fmt.Errorf("failed to get header flag: %w", err)
	}
	if config.Data, err = flags.GetString("data"); err != nil {
		return nil, fmt.Errorf("failed to get data flag: %w", err)
	}
	if config.JSON, err = flags.GetBool("json"); err != nil {
		return nil, fmt.Errorf("failed to get json flag: %w", err)
	}
	if config.Region, err = flags.GetString("region"); err != nil {
		return nil, fmt.Errorf("failed to get region flag: %w", err)
	}
	if config.Token, err = flags.GetString("token"); err != nil {
		return nil, fmt.Errorf("failed to get token flag: %w", err)
	}
	if config.Lambda, err = flags.GetBool("lambda"); err != nil {
		return nil, fmt.Errorf("failed to get lambda flag: %w", err)
	}
	if config.Verbose, err = flags.GetBool("verbose"); err != nil {
		return nil, fmt.Errorf("failed to get verbose flag: %w", err)
	}
	if config.Debug, err = flags.GetBool("debug"); err != nil {
		return nil, fmt.Errorf("failed to get debug flag: %w", err)
	}
	if config.IncludeHeaders, err = flags.GetBool("include"); err != nil {
		return nil, fmt.Errorf("failed to get include flag: %w", err)
	}
	if config.MCP, err = flags.GetBool("mcp"); err != nil {
		return nil, fmt.Errorf("failed to get mcp flag: %w", err)
	}

	// Environment fallbacks
	if config.BaseURL == "" {
		config.BaseURL = os.Getenv("EDGEFN_URL")
	}
	if config.Token == "" {
		config.Token = os.Getenv("EDGEFN_TOKEN")
	}

	return config, nil
}

// Validate checks the configuration for required values
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base URL is required (set --url or EDGEFN_URL)")
	}
	return nil
}

// HeaderMap parses the raw -H flag values into a header map
func (c *Config) HeaderMap() map[string]string {
	headers := make(map[string]string, len(c.Headers))
	for _, header := range c.Headers {
		parts := strings.SplitN(header, ":", 2)
		name := strings.TrimSpace(parts[0])
		if name == "" {
			continue
		}
		value := ""
		if len(parts) == 2 {
			value = strings.TrimSpace(parts[1])
		}
		headers[name] = value
	}
	return headers
}
