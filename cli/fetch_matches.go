package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/reithediver/lol-smurfguard-sub000/core"
	"github.com/reithediver/lol-smurfguard-sub000/riot"
	rc "github.com/reithediver/lol-smurfguard-sub000/riot_common"
)

func newFetchMatchesCmd() *cobra.Command {
	var (
		riotID    string
		count     int
		timelines bool
	)

	cmd := &cobra.Command{
		Use:   "fetch-matches",
		Short: "Fetch a player's recent matches through the cache and rate limiter",
		RunE: func(cmd *cobra.Command, args []string) error {
			gameName, tagLine, err := riot.ParseRiotID(riotID)
			if err != nil {
				return err
			}
			if count <= 0 {
				return fmt.Errorf("--count must be greater than 0")
			}

			rt, err := loadRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.logger.Sync() // nolint:errcheck

			ctx := cmd.Context()
			components, err := core.Build(ctx, rt.config, nil, rt.logger)
			if err != nil {
				return err
			}
			if err := components.Cache.Start(ctx); err != nil {
				return err
			}
			defer components.Cache.Stop()

			client := components.Riot
			client.Progress().Subscribe().Watch(ctx, func(p rc.BatchProgress) {
				rt.logger.Debug("batch progress",
					zap.String("job_id", p.JobID),
					zap.Int("completed", p.Completed),
					zap.Int("total", p.Total))
			})

			accountPayload, err := client.GetAccountByRiotID(ctx, gameName, tagLine)
			if err != nil {
				return err
			}
			account, err := riot.Decode[riot.Account](accountPayload)
			if err != nil {
				return err
			}

			idsPayload, err := client.GetMatchIDs(ctx, account.PUUID, riot.MatchListQuery{Count: count})
			if err != nil {
				return err
			}
			matchIDs, err := riot.Decode[[]string](idsPayload)
			if err != nil {
				return err
			}

			result := client.FetchMatches(ctx, matchIDs)
			renderBatch(cmd.OutOrStdout(), account.RiotID(), result)

			if timelines {
				renderBatch(cmd.OutOrStdout(), account.RiotID()+" timelines", client.FetchMatchTimelines(ctx, matchIDs))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&riotID, "riot-id", "", "player Riot ID as GameName#TagLine")
	cmd.Flags().IntVar(&count, "count", 20, "number of recent matches")
	cmd.Flags().BoolVar(&timelines, "timelines", false, "also fetch match timelines")
	_ = cmd.MarkFlagRequired("riot-id")

	return cmd
}

func renderBatch(w io.Writer, title string, result *rc.BatchResult[[]byte]) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.SetTitle(title)
	t.AppendHeader(table.Row{"Match", "Status", "Bytes", "Error"})

	ids := append([]string(nil), result.IDs...)
	sort.Strings(ids)
	for _, id := range ids {
		if payload, ok := result.Results[id]; ok {
			t.AppendRow(table.Row{id, "ok", len(payload), ""})
			continue
		}
		if err, ok := result.Failures[id]; ok {
			t.AppendRow(table.Row{id, "failed", 0, err.Error()})
		}
	}

	t.AppendFooter(table.Row{
		"",
		fmt.Sprintf("%d/%d ok", result.Succeeded(), result.Requested()),
		"",
		"job " + result.JobID,
	})
	t.Render()
}
