package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mauv0809/keybet/internal/config"
)

func newRootCmd(a *app) *cobra.Command {
	var configFile string
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "keybet",
		Short: "Predict soccer match outcomes with a KeyBet server",
		Long: `A command-line client for a KeyBet prediction server. Browse the team
catalog by country and league, log in and request match predictions.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log.SetOutput(a.errOut)
			cfg, err := config.Load(a.v, configFile)
			if err != nil {
				return err
			}
			cfg.Log.ApplyLogging()
			if verbose {
				log.SetLevel(log.DebugLevel)
			}
			a.cfg = cfg
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "Config file (default ./keybet.yaml or ~/.keybet/keybet.yaml)")
	flags.String("server", "", "Address of the prediction server, e.g. 34.83.220.67:5000")
	flags.String("catalog", "", "Path of the teams CSV")
	flags.String("catalog-source", "", "Where teams come from: file, remote or db")
	flags.String("schema", "", "Prediction response schema: keybet, classic or legacy")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	bindFlags(a.v, rootCmd, map[string]string{
		"server.url":     "server",
		"catalog.path":   "catalog",
		"catalog.source": "catalog-source",
		"schema.name":    "schema",
	})

	rootCmd.AddCommand(
		newCountriesCmd(a),
		newLeaguesCmd(a),
		newTeamsCmd(a),
		newLoginCmd(a),
		newPredictCmd(a),
		newHistoryCmd(a),
		newStatsCmd(a),
		newHealthCmd(a),
		newConfigCmd(a),
	)
	return rootCmd
}

// bindFlags lets set flags override the matching configuration keys.
func bindFlags(v *viper.Viper, cmd *cobra.Command, keys map[string]string) {
	for key, flag := range keys {
		if err := v.BindPFlag(key, cmd.PersistentFlags().Lookup(flag)); err != nil {
			log.Fatal("Failed to bind flag", "flag", flag, "error", err)
		}
	}
}

// run executes the CLI with args and returns the process exit code.
func run(args []string, in io.Reader, out, errOut io.Writer) int {
	a := newApp(config.NewViper(), in, out, errOut)
	rootCmd := newRootCmd(a)
	rootCmd.SetArgs(args)
	rootCmd.SetIn(in)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		a.close()
		fmt.Fprintf(errOut, "Error: %s\n", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
