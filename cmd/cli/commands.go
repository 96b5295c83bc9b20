package main

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mauv0809/keybet/internal/config"
	"github.com/mauv0809/keybet/internal/history"
	"github.com/mauv0809/keybet/internal/metrics"
	"github.com/mauv0809/keybet/internal/processor"
)

func newCountriesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "countries",
		Short: "List the countries of the team catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.catalog(cmd.Context())
			if err != nil {
				return err
			}
			printLines(a, c.Countries())
			return nil
		},
	}
}

func newLeaguesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "leagues <country>",
		Short: "List the leagues of a country",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.catalog(cmd.Context())
			if err != nil {
				return err
			}
			printLines(a, c.Leagues(args[0]))
			return nil
		},
	}
}

func newTeamsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "teams <country> <league>",
		Short: "List the teams of a league",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.catalog(cmd.Context())
			if err != nil {
				return err
			}
			printLines(a, c.Teams(args[0], args[1]))
			return nil
		},
	}
}

func printLines(a *app, lines []string) {
	for _, l := range lines {
		fmt.Fprintln(a.out, l)
	}
}

func newHealthCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the prediction server is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.predictionClient()
			if err != nil {
				return err
			}
			if err := client.Health(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s is up\n", client.BaseURL())
			return nil
		},
	}
}

func newHistoryCmd(a *app) *cobra.Command {
	var limit int
	var toSlack, dryRun bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent predictions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				return fmt.Errorf("--limit must be positive")
			}
			db, err := a.database()
			if err != nil {
				return err
			}
			store := history.New(db)
			if toSlack {
				notifier := a.notifier()
				if notifier == nil {
					return fmt.Errorf("slack is not configured; set slack.token and slack.channel_id")
				}
				return processor.New(nil, nil, store, notifier, a.metrics(), nil).SendSummary(limit, dryRun)
			}

			records, err := store.List(limit)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(a.out, "No predictions yet.")
				return nil
			}
			for _, r := range records {
				home, away := r.Result().Goals()
				fmt.Fprintf(a.out, "%s  %s vs %s  %.2f-%.2f  %d%%/%d%%\n",
					r.CreatedAt.Local().Format("2006-01-02 15:04"), r.Home, r.Away,
					home, away, r.HomeShare, r.AwayShare)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of predictions to show")
	cmd.Flags().BoolVar(&toSlack, "slack", false, "Post the list to the configured Slack channel instead")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Log the Slack message instead of sending it")
	return cmd
}

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show local usage counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.database()
			if err != nil {
				return err
			}
			counters, err := metrics.New(db).GetAll()
			if err != nil {
				return err
			}
			if len(counters) == 0 {
				fmt.Fprintln(a.out, "No usage recorded yet.")
				return nil
			}
			keys := make([]string, 0, len(counters))
			for k := range counters {
				keys = append(keys, k)
			}
			slices.Sort(keys)
			for _, k := range keys {
				fmt.Fprintf(a.out, "%-28s %d\n", strings.ReplaceAll(k, "_", " "), counters[k])
			}
			return nil
		},
	}
}

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create the configuration file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration with secrets masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.cfg.Redacted().YAML()
			if err != nil {
				return err
			}
			if used := a.v.ConfigFileUsed(); used != "" {
				fmt.Fprintf(a.out, "# %s\n", used)
			}
			_, err = a.out.Write(data)
			return err
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a default configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "keybet.yaml"
			if len(args) == 1 {
				path = args[0]
			} else if home, err := os.UserHomeDir(); err == nil {
				path = filepath.Join(home, ".keybet", "keybet.yaml")
			}
			if err := config.WriteDefault(path, force); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")
	cmd.AddCommand(initCmd)
	return cmd
}
