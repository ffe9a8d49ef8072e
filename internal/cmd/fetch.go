package cmd

import (
	"fmt"
	"strings"

	"github.com/niels/tinyhttp/pkg/client"
	"github.com/niels/tinyhttp/pkg/logging"
	"github.com/niels/tinyhttp/pkg/output"
	"github.com/spf13/cobra"
)

func newFetchCmd() *cobra.Command {
	var (
		addr    string
		method  string
		headers []string
		body    string
		raw     bool
		noColor bool
	)

	fetchCmd := &cobra.Command{
		Use:   "fetch [path]",
		Short: "Send one request to a server and print the response",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/"
			if len(args) == 1 {
				path = args[0]
			}
			if addr == "" {
				addr = cfg.Server.Address
			}

			header, err := parseHeaders(headers)
			if err != nil {
				return err
			}

			request := client.BuildRequest(strings.ToUpper(method), path, addr, header, body)
			reply, err := client.New(cfg, addr).Do(cmd.Context(), request)
			if err := checkReply(cmd, addr, reply, err); err != nil {
				return err
			}

			formatter := output.NewFormatter(!noColor).
				WithWriter(cmd.OutOrStdout()).
				WithRaw(raw)
			return formatter.Print(reply)
		},
	}

	fetchCmd.Flags().StringVar(&addr, "addr", "", "Server address (defaults to server.address from config)")
	fetchCmd.Flags().StringVarP(&method, "method", "X", "GET", "Request method")
	fetchCmd.Flags().StringArrayVarP(&headers, "header", "H", nil, "Request header as 'Name: value' (repeatable)")
	fetchCmd.Flags().StringVarP(&body, "data", "D", "", "Request body")
	fetchCmd.Flags().BoolVar(&raw, "raw", false, "Print the response exactly as received")
	fetchCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	return fetchCmd
}

// checkReply fails when nothing came back and warns when a read error cut a reply short
func checkReply(cmd *cobra.Command, addr, reply string, err error) error {
	if err == nil {
		return nil
	}
	if reply == "" {
		return fmt.Errorf("fetch failed: %w", err)
	}

	logging.WarnWith("Response may be incomplete", map[string]interface{}{
		"addr":  addr,
		"bytes": len(reply),
		"error": err,
	})
	fmt.Fprintf(cmd.ErrOrStderr(), "Warning: response may be incomplete: %v\n", err)
	return nil
}

func parseHeaders(values []string) (map[string]string, error) {
	header := make(map[string]string, len(values))
	for _, v := range values {
		name, value, ok := strings.Cut(v, ":")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid header %q, expected 'Name: value'", v)
		}
		header[name] = strings.TrimSpace(value)
	}
	return header, nil
}
