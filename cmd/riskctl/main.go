// Package main is the entry point for the riskctl CLI, a thin client for the
// travel risk orchestrator API.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	serverURL string

	destinationID string
	fromDate      string
	toDate        string
	refresh       bool
)

var rootCmd = &cobra.Command{
	Use:           "riskctl",
	Short:         "Travel risk orchestrator CLI",
	Long:          "riskctl queries a running travel risk orchestrator for destinations, forecasts, and AI risk reports.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var destinationsCmd = &cobra.Command{
	Use:   "destinations",
	Short: "List the configured destinations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return getJSON(cmd, "/v1/destinations")
	},
}

var forecastCmd = &cobra.Command{
	Use:   "forecast <destination-id>",
	Short: "Show the daily and hourly forecast for a destination",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return getJSON(cmd, "/v1/destinations/"+args[0]+"/forecast")
	},
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a travel risk report for a trip",
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := json.Marshal(map[string]string{
			"destinationId": destinationID,
			"startDate":     fromDate,
			"endDate":       toDate,
		})
		if err != nil {
			return err
		}

		path := "/v1/risk/report"
		if refresh {
			path = "/v1/risk/report/refresh"
		}
		return postJSON(cmd, path, body)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8090", "orchestrator base URL")

	reportCmd.Flags().StringVar(&destinationID, "destination", "", "destination id (e.g. dubai)")
	reportCmd.Flags().StringVar(&fromDate, "from", "", "trip start date (YYYY-MM-DD)")
	reportCmd.Flags().StringVar(&toDate, "to", "", "trip end date (YYYY-MM-DD)")
	reportCmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the cached report and regenerate")
	_ = reportCmd.MarkFlagRequired("destination")
	_ = reportCmd.MarkFlagRequired("from")
	_ = reportCmd.MarkFlagRequired("to")

	rootCmd.AddCommand(destinationsCmd, forecastCmd, reportCmd)
}

func getJSON(cmd *cobra.Command, path string) error {
	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Get(serverURL + path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	return printResponse(cmd, resp)
}

func postJSON(cmd *cobra.Command, path string, body []byte) error {
	// Report generation waits on the model, so allow a longer timeout.
	client := &http.Client{Timeout: 2 * time.Minute}
	resp, err := client.Post(serverURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	return printResponse(cmd, resp)
}

func printResponse(cmd *cobra.Command, resp *http.Response) error {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err != nil {
		pretty.Write(raw)
	}
	fmt.Fprintln(cmd.OutOrStdout(), pretty.String())

	if resp.StatusCode >= 400 {
		return fmt.Errorf("server returned status %d", resp.StatusCode)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}
