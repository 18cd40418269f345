package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/brendan.keane/edgefn/internal/config"
	"github.com/brendan.keane/edgefn/pkg/functions"
	"github.com/brendan.keane/edgefn/pkg/transport"
)

// InvokeHandler handles function invocation commands
type InvokeHandler struct {
	logger zerolog.Logger
}

// NewInvokeHandler creates a new invocation command handler
func NewInvokeHandler(logger zerolog.Logger) *InvokeHandler {
	return &InvokeHandler{
		logger: logger.With().Str("handler", "invoke").Logger(),
	}
}

// Execute handles the invoke command
func (h *InvokeHandler) Execute(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFlags(cmd.Flags())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load configuration")
		return err
	}
	if err := cfg.Validate(); err != nil {
		h.logger.Error().Err(err).Msg("configuration validation failed")
		return err
	}

	if len(args) == 0 {
		return fmt.Errorf("function name is required")
	}
	functionName := args[0]

	h.logger.Debug().
		Str("function", functionName).
		Str("method", cfg.Method).
		Str("base_url", cfg.BaseURL).
		Msg("processing invoke command")

	client, err := BuildClient(cfg, h.logger)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to create functions client")
		return err
	}

	opts, err := buildInvokeOptions(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp, err := client.Invoke(ctx, functionName, opts)
	if err != nil {
		PrintError(err)
		return err
	}

	PrintResponse(resp, cfg.IncludeHeaders)
	return nil
}

// BuildClient constructs a functions client from the CLI configuration
func BuildClient(cfg *config.Config, logger zerolog.Logger) (*functions.Client, error) {
	opts := []functions.Option{
		functions.WithDefaultHeaders(cfg.HeaderMap()),
		functions.WithLogger(logger),
	}
	if cfg.Token != "" {
		opts = append(opts, functions.WithAuthToken(cfg.Token))
	}
	if cfg.Region != "" {
		region, err := functions.ParseRegion(cfg.Region)
		if err != nil {
			return nil, err
		}
		opts = append(opts, functions.WithRegion(region))
	}
	if cfg.Lambda {
		lt, err := transport.NewLambda(context.Background(), transport.WithLogger(logger))
		if err != nil {
			return nil, err
		}
		opts = append(opts, functions.WithHTTPClient(lt.Client()))
	}
	return functions.NewClient(cfg.BaseURL, opts...)
}

// buildInvokeOptions translates CLI flags into per-call invoke options
func buildInvokeOptions(cfg *config.Config) (*functions.InvokeOptions, error) {
	opts := &functions.InvokeOptions{
		Method: cfg.Method,
	}
	if opts.Method == "" {
		opts.Method = http.MethodPost
	}
	if cfg.Data != "" {
		if cfg.JSON {
			var fields map[string]interface{}
			if err := json.Unmarshal([]byte(cfg.Data), &fields); err != nil {
				return nil, fmt.Errorf("--json requires a JSON object body: %w", err)
			}
			opts.Body = functions.JSONBody(fields)
		} else {
			opts.Body = functions.TextBody(cfg.Data)
		}
	}
	return opts, nil
}
