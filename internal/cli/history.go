package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/fataltest/internal/journal"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Journal  string // journal database path
	Limit    int    // max entries to show
	Scenario string // filter by scenario name
}

// HistoryEntry is one journal row formatted for CLI output.
type HistoryEntry struct {
	ID           string `json:"id"`
	Scenario     string `json:"scenario"`
	Mode         string `json:"mode"`
	Verdict      string `json:"verdict"`
	Fulfillments int64  `json:"fulfillments"`
	Pass         bool   `json:"pass"`
	CreatedAt    string `json:"created_at"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded run outcomes",
		Long: `Show run outcomes previously recorded with check --journal.

Examples:
  fataltest history --journal runs.db
  fataltest history --journal runs.db --limit 10
  fataltest history --journal runs.db --scenario trigger_once
  fataltest history --journal runs.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Journal, "journal", "", "journal database path (required)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum entries to show (0 for all)")
	cmd.Flags().StringVar(&opts.Scenario, "scenario", "", "filter by scenario name")
	cmd.MarkFlagRequired("journal")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	if _, err := os.Stat(opts.Journal); os.IsNotExist(err) {
		return NewExitError(ExitCommandError, fmt.Sprintf("journal not found: %s", opts.Journal))
	}

	jnl, err := journal.Open(opts.Journal)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open journal", err)
	}
	defer jnl.Close()

	var entries []journal.Entry
	if opts.Scenario != "" {
		entries, err = jnl.ListByScenario(cmd.Context(), opts.Scenario, opts.Limit)
	} else {
		entries, err = jnl.List(cmd.Context(), opts.Limit)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read journal", err)
	}

	out := make([]HistoryEntry, len(entries))
	for i, e := range entries {
		out[i] = HistoryEntry{
			ID:           e.ID,
			Scenario:     e.Scenario,
			Mode:         e.Mode,
			Verdict:      e.Verdict,
			Fulfillments: e.Fulfillments,
			Pass:         e.Pass,
			CreatedAt:    e.CreatedAt,
		}
	}

	if opts.Format == "json" {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(CLIResponse{Status: "ok", Data: out})
	}

	w := cmd.OutOrStdout()
	if len(out) == 0 {
		fmt.Fprintln(w, "No recorded runs.")
		return nil
	}
	for _, e := range out {
		mark := "✓"
		if !e.Pass {
			mark = "✗"
		}
		fmt.Fprintf(w, "%s %s  %-20s %-5s %-13s fulfillments=%d\n",
			mark, e.CreatedAt, e.Scenario, e.Mode, e.Verdict, e.Fulfillments)
	}
	return nil
}
