package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/fataltest/scenario"
)

// ProbeInfo describes one built-in probe for CLI output.
type ProbeInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Modes       []string `json:"modes"`
}

// NewProbesCommand creates the probes command.
func NewProbesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "probes",
		Short: "List built-in probes",
		Long: `List the built-in probes scenarios can reference.

Examples:
  fataltest probes
  fataltest probes --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProbes(rootOpts, cmd)
		},
	}
}

func runProbes(opts *RootOptions, cmd *cobra.Command) error {
	infos := make([]ProbeInfo, 0)
	for _, name := range scenario.Names() {
		probe, ok := scenario.Lookup(name)
		if !ok {
			continue
		}
		info := ProbeInfo{Name: probe.Name, Description: probe.Description}
		if probe.Sync != nil {
			info.Modes = append(info.Modes, scenario.ModeSync)
		}
		if probe.Async != nil {
			info.Modes = append(info.Modes, scenario.ModeAsync)
		}
		infos = append(infos, info)
	}

	if opts.Format == "json" {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(CLIResponse{Status: "ok", Data: infos})
	}

	w := cmd.OutOrStdout()
	for _, info := range infos {
		fmt.Fprintf(w, "%-14s %v\n", info.Name, info.Modes)
		fmt.Fprintf(w, "  %s\n", info.Description)
	}
	return nil
}
