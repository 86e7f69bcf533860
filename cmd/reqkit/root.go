package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ambiyansyah-risyal/reqkit"
)

type rootOptions struct {
	configPath string
	debug      bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "reqkit",
		Short:         "Request preparation and error extraction helpers",
		Version:       reqkit.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "YAML file with default headers and query")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "log helper activity to stderr")

	cmd.AddCommand(
		newQueryCmd(opts),
		newHeadersCmd(opts),
		newErrorCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

func (o *rootOptions) builder(stderr io.Writer) *reqkit.Builder {
	if !o.debug {
		return reqkit.New()
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: stderr, NoColor: true}).With().Timestamp().Logger()
	return reqkit.New(reqkit.WithDebug(), reqkit.WithLogger(reqkit.NewZerologLogger(logger)))
}

func newQueryCmd(root *rootOptions) *cobra.Command {
	var paramsFile string

	cmd := &cobra.Command{
		Use:   "query [key=value...]",
		Short: "Render a query string",
		Long: "Render key=value pairs as a query string in the order given. A literal\n" +
			"true or false becomes a boolean, so key=false is left out.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(root.configPath)
			if err != nil {
				return err
			}
			defaults, err := cfg.params()
			if err != nil {
				return err
			}

			var params reqkit.Params
			if paramsFile != "" {
				if params, err = loadParamsFile(paramsFile); err != nil {
					return err
				}
			}
			for _, arg := range args {
				key, value, ok := strings.Cut(arg, "=")
				if !ok || key == "" {
					return fmt.Errorf("invalid parameter %q, want key=value", arg)
				}
				params = params.Add(key, parseQueryValue(value))
			}

			params = overlayParams(defaults, params)
			if err := reqkit.ValidateQuery(params); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), reqkit.StringifyQuery(params))
			return nil
		},
	}
	cmd.Flags().StringVar(&paramsFile, "params-file", "", "YAML mapping of parameters, rendered before positional ones")
	return cmd
}

func parseQueryValue(s string) any {
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	return s
}

// overlayParams keeps the defaults whose key the command line does not set,
// followed by the command line parameters.
func overlayParams(defaults, params reqkit.Params) reqkit.Params {
	set := make(map[string]struct{}, len(params))
	for _, p := range params {
		set[p.Key] = struct{}{}
	}

	out := make(reqkit.Params, 0, len(defaults)+len(params))
	for _, p := range defaults {
		if _, overridden := set[p.Key]; !overridden {
			out = append(out, p)
		}
	}
	return append(out, params...)
}

func newHeadersCmd(root *rootOptions) *cobra.Command {
	var base, set []string

	cmd := &cobra.Command{
		Use:   "headers",
		Short: "Merge header sets under lowercased names",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(root.configPath)
			if err != nil {
				return err
			}
			baseHeaders, err := parseHeaderFlags(base)
			if err != nil {
				return err
			}
			overrides, err := parseHeaderFlags(set)
			if err != nil {
				return err
			}

			merged := reqkit.MergeHeaders(reqkit.MergeHeaders(cfg.headers(), baseHeaders), overrides)

			names := make([]string, 0, len(merged))
			for name := range merged {
				names = append(names, name)
			}
			sort.Strings(names)

			out := cmd.OutOrStdout()
			for _, name := range names {
				fmt.Fprintf(out, "%s: %v\n", name, merged[name])
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&base, "base", nil, "base header as name=value (repeatable)")
	cmd.Flags().StringArrayVar(&set, "set", nil, "override header as name=value (repeatable)")
	return cmd
}

func parseHeaderFlags(values []string) (reqkit.Headers, error) {
	h := make(reqkit.Headers, len(values))
	for _, v := range values {
		name, value, ok := strings.Cut(v, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid header %q, want name=value", v)
		}
		h[strings.TrimSpace(name)] = value
	}
	return h, nil
}

func newErrorCmd(root *rootOptions) *cobra.Command {
	var (
		status   int
		body     string
		bodyFile string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "error",
		Short: "Extract the error message from a failed response body",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := []byte(body)
			if bodyFile != "" {
				var err error
				if bodyFile == "-" {
					raw, err = io.ReadAll(cmd.InOrStdin())
				} else {
					raw, err = os.ReadFile(bodyFile)
				}
				if err != nil {
					return fmt.Errorf("read body: %w", err)
				}
			}

			b := root.builder(cmd.ErrOrStderr())
			reqErr := b.ParseJSONError(nil, reqkit.Response{StatusCode: status, Body: raw})

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				return enc.Encode(map[string]any{
					"name":       reqErr.Name,
					"statusCode": reqErr.StatusCode,
					"message":    reqErr.Message,
				})
			}
			fmt.Fprintf(out, "%s %d: %s\n", reqErr.Name, reqErr.StatusCode, reqErr.Message)
			return nil
		},
	}
	cmd.Flags().IntVar(&status, "status", 0, "response status code")
	cmd.Flags().StringVar(&body, "body", "", "response body")
	cmd.Flags().StringVar(&bodyFile, "body-file", "", "read the response body from a file, - for stdin")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the error as JSON")
	_ = cmd.MarkFlagRequired("status")
	return cmd
}

func newVersionCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !asJSON {
				fmt.Fprintln(cmd.OutOrStdout(), reqkit.GetVersion())
				return nil
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(reqkit.GetVersionInfo())
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print build information as JSON")
	return cmd
}
