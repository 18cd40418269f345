package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/brendan.keane/edgefn/internal/cli"
	"github.com/brendan.keane/edgefn/internal/config"
	"github.com/brendan.keane/edgefn/internal/logger"
	"github.com/brendan.keane/edgefn/internal/mcp"
)

var (
	baseURL        string
	httpMethod     string
	headers        []string
	data           string
	jsonBody       bool
	region         string
	token          string
	useLambda      bool
	verbose        bool
	debug          bool
	includeHeaders bool
	mcpMode        bool
)

var rootCmd *cobra.Command

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd = &cobra.Command{
		Use:   "edgefn [function-name]",
		Short: "Invoke remote serverless functions",
		Long: `edgefn is a command-line client for invoking serverless edge functions.
It sends a single HTTP request per invocation and classifies the outcome,
with support for regions, bearer tokens, and an AWS Lambda transport.`,
		Args:         cobra.MaximumNArgs(1),
		RunE:         runEdgefn,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "", "Base URL of the functions endpoint (or EDGEFN_URL)")
	rootCmd.PersistentFlags().StringVarP(&httpMethod, "request", "X", "POST", "HTTP method (POST, GET, PUT, PATCH, DELETE)")
	rootCmd.PersistentFlags().StringSliceVarP(&headers, "header", "H", []string{}, "Pass custom header(s) to the function (can be used multiple times)")
	rootCmd.PersistentFlags().StringVarP(&data, "data", "d", "", "Request body data")
	rootCmd.PersistentFlags().BoolVar(&jsonBody, "json", false, "Send the body as application/json (requires a JSON object)")
	rootCmd.PersistentFlags().StringVar(&region, "region", "", "Execution region (e.g. us-east-1)")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "Bearer token for the Authorization header (or EDGEFN_TOKEN)")
	rootCmd.PersistentFlags().BoolVar(&useLambda, "lambda", false, "Route lambda:// base URLs through the AWS Lambda API")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Debug logging with caller info")
	rootCmd.PersistentFlags().BoolVarP(&includeHeaders, "include", "i", false, "Include response status and headers in output")
	rootCmd.PersistentFlags().BoolVar(&mcpMode, "mcp", false, "Run as an MCP server exposing function invocation as a tool")
}

func runEdgefn(cmd *cobra.Command, args []string) error {
	log := logger.SetupFromFlags(verbose, debug)

	if mcpMode {
		cfg, err := config.LoadFromFlags(cmd.Flags())
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		client, err := cli.BuildClient(cfg, log)
		if err != nil {
			return err
		}
		return mcp.NewServer(log, client).Start()
	}

	handler := cli.NewInvokeHandler(log)
	return handler.Execute(cmd, args)
}
