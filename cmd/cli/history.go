package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/iho/gocalc/internal/adapter/http/dto"
)

func historyCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Calculation history kept by the API server",
	}

	var limit int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recent calculations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var history dto.HistoryResponse
			target := fmt.Sprintf("%s/api/v1/history?limit=%d", v.GetString("url"), limit)
			if err := doRequest(cmd.Context(), v, http.MethodGet, target, http.StatusOK, &history); err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "TIME\tCALCULATOR\tRESULT")
			for _, e := range history.Entries {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Timestamp.Local().Format("2006-01-02 15:04"), e.CalculatorName, truncate(e.Result, 60))
			}
			return tw.Flush()
		},
	}
	listCmd.Flags().IntVar(&limit, "limit", 20, "Maximum entries to show")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all history entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := doRequest(cmd.Context(), v, http.MethodDelete, v.GetString("url")+"/api/v1/history", http.StatusNoContent, nil); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "History cleared")
			return nil
		},
	}

	cmd.AddCommand(listCmd, clearCmd)
	return cmd
}

func doRequest(ctx context.Context, v *viper.Viper, method, target string, wantStatus int, out any) error {
	if ctx == nil {
		ctx = context.Background()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: v.GetDuration("timeout")}
	started := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	zerolog.Ctx(ctx).Debug().
		Str("method", method).
		Str("url", target).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(started)).
		Msg("api call")

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode != wantStatus {
		var apiErr dto.ErrorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("request failed (status %d): %s: %s", resp.StatusCode, apiErr.Error, apiErr.Message)
		}
		return fmt.Errorf("request failed (status %d): %s", resp.StatusCode, string(body))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
