package config

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("url", "", "")
	flags.String("request", "POST", "")
	flags.StringSliceP("header", "H", nil, "")
	flags.String("data", "", "")
	flags.Bool("json", false, "")
	flags.String("region", "", "")
	flags.String("token", "", "")
	flags.Bool("lambda", false, "")
	flags.Bool("verbose", false, "")
	flags.Bool("debug", false, "")
	flags.Bool("include", false, "")
	flags.Bool("mcp", false, "")
	return flags
}

func TestLoadFromFlags(t *testing.T) {
	flags := newFlagSet()
	require.NoError(t, flags.Parse([]string{
		"--url", "https://functions.example.com",
		"--request", "get",
		"-H", "X-Tenant: acme",
		"--data", `{"a":1}`,
		"--json",
		"--region", "us-east-1",
		"--token", "secret",
	}))

	cfg, err := LoadFromFlags(flags)
	require.NoError(t, err)

	assert.Equal(t, "https://functions.example.com", cfg.BaseURL)
	assert.Equal(t, "GET", cfg.Method, "method is normalized to uppercase")
	assert.Equal(t, []string{"X-Tenant: acme"}, cfg.Headers)
	assert.Equal(t, `{"a":1}`, cfg.Data)
	assert.True(t, cfg.JSON)
	assert.Equal(t, "us-east-1", cfg.Region)
	assert.Equal(t, "secret", cfg.Token)
}

func TestLoadFromFlags_EnvFallbacks(t *testing.T) {
	t.Setenv("EDGEFN_URL", "https://env.example.com")
	t.Setenv("EDGEFN_TOKEN", "env-token")

	flags := newFlagSet()
	require.NoError(t, flags.Parse(nil))

	cfg, err := LoadFromFlags(flags)
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com", cfg.BaseURL)
	assert.Equal(t, "env-token", cfg.Token)
}

func TestValidate(t *testing.T) {
	t.Setenv("EDGEFN_URL", "")

	flags := newFlagSet()
	require.NoError(t, flags.Parse(nil))

	cfg, err := LoadFromFlags(flags)
	require.NoError(t, err)
	require.Error(t, cfg.Validate())

	cfg.BaseURL = "https://functions.example.com"
	assert.NoError(t, cfg.Validate())
}

func TestHeaderMap(t *testing.T) {
	cfg := &Config{Headers: []string{
		"X-Tenant: acme",
		"X-Empty:",
		"X-NoValue",
		": skipped",
	}}

	headers := cfg.HeaderMap()
	assert.Equal(t, map[string]string{
		"X-Tenant":  "acme",
		"X-Empty":   "",
		"X-NoValue": "",
	}, headers)
}
