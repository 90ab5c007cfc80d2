package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/reithediver/lol-smurfguard-sub000/config"
)

func newLimitsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "limits",
		Short: "Print the configured rate limit windows per endpoint class",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(newViper(cmd))
			if err != nil {
				return err
			}
			renderLimits(cmd.OutOrStdout(), cfg.RateLimits)
			return nil
		},
	}
}

func renderLimits(w io.Writer, limits map[string][]config.RateLimitWindow) {
	classes := make([]string, 0, len(limits))
	for class := range limits {
		classes = append(classes, class)
	}
	sort.Strings(classes)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Class", "Window", "Max Requests", "Sustained req/s"})

	for _, class := range classes {
		windows := append([]config.RateLimitWindow(nil), limits[class]...)
		sort.Slice(windows, func(i, j int) bool { return windows[i].Duration < windows[j].Duration })
		for _, window := range windows {
			t.AppendRow(table.Row{
				class,
				window.Duration.String(),
				window.MaxRequests,
				fmt.Sprintf("%.2f", float64(window.MaxRequests)/window.Duration.Seconds()),
			})
		}
		t.AppendSeparator()
	}

	t.Render()
}
