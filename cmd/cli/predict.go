package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mauv0809/keybet/internal/predictor"
	"github.com/mauv0809/keybet/internal/processor"
)

var errLoginCancelled = errors.New("login cancelled")

type credentials struct {
	username, password string
}

func (c credentials) complete() bool {
	return c.username != "" && c.password != ""
}

// login authenticates client. Complete credentials get exactly one
// attempt; otherwise the user is prompted until a login succeeds or the
// input ends.
func (a *app) login(ctx context.Context, client predictor.PredictionClient, creds credentials) error {
	if creds.complete() {
		ok, err := client.Login(ctx, creds.username, creds.password)
		if err != nil {
			return err
		}
		if !ok {
			return errors.New("invalid username or password")
		}
		return nil
	}

	for {
		username := creds.username
		if username == "" {
			prompt := "Username: "
			if a.cfg.Server.Username != "" {
				prompt = fmt.Sprintf("Username [%s]: ", a.cfg.Server.Username)
			}
			fmt.Fprint(a.out, prompt)
			line, err := a.readLine()
			if err != nil {
				return cancelled(err)
			}
			username = strings.TrimSpace(line)
			if username == "" {
				username = a.cfg.Server.Username
			}
		}

		fmt.Fprint(a.out, "Password: ")
		password, err := a.readPassword()
		if err != nil {
			return cancelled(err)
		}

		if username == "" || password == "" {
			fmt.Fprintln(a.out, "Username and password are required.")
			continue
		}
		ok, err := client.Login(ctx, username, password)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		fmt.Fprintln(a.out, "Invalid username or password, try again.")
	}
}

func cancelled(err error) error {
	if errors.Is(err, io.EOF) {
		return errLoginCancelled
	}
	return err
}

func newLoginCmd(a *app) *cobra.Command {
	var creds credentials

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Check credentials against the prediction server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.predictionClient()
			if err != nil {
				return err
			}
			if err := a.login(cmd.Context(), client, creds); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Login successful.")
			return nil
		},
	}
	cmd.Flags().StringVarP(&creds.username, "username", "u", "", "Username")
	cmd.Flags().StringVarP(&creds.password, "password", "p", "", "Password (prompted when omitted)")
	return cmd
}

func newPredictCmd(a *app) *cobra.Command {
	var (
		creds           credentials
		country, league string
		dryRun, bars    bool
	)

	cmd := &cobra.Command{
		Use:   "predict <home> <away>",
		Short: "Predict the outcome of a match",
		Long: `Predict the outcome of a match between two teams. With --country and
--league both teams are checked against the team catalog first.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			req := processor.Request{
				Country: country,
				League:  league,
				Home:    strings.TrimSpace(args[0]),
				Away:    strings.TrimSpace(args[1]),
			}
			if err := predictor.ValidateTeams(req.Home, req.Away); err != nil {
				return err
			}

			var lookup processor.Lookup
			if country != "" && league != "" {
				c, err := a.catalog(ctx)
				if err != nil {
					return err
				}
				lookup = c
			}

			client, err := a.predictionClient()
			if err != nil {
				return err
			}
			proc, err := a.processor(ctx, lookup)
			if err != nil {
				return err
			}
			if client.RequiresLogin() && !client.IsAuthenticated() {
				if err := a.login(ctx, client, creds); err != nil {
					return err
				}
			}

			prediction, err := proc.Predict(ctx, req, dryRun)
			if err != nil {
				return err
			}
			fmt.Fprint(a.out, predictor.FormatReport(client.Schema(), prediction.Result, req.Home, req.Away))
			if bars {
				fmt.Fprintln(a.out)
				fmt.Fprint(a.out, predictor.FormatBars(prediction.Record.HomeShare, prediction.Record.AwayShare))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&country, "country", "", "Country of both teams")
	cmd.Flags().StringVar(&league, "league", "", "League of both teams")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Do not record, announce or publish the prediction")
	cmd.Flags().BoolVar(&bars, "bars", false, "Show the win share bars")
	cmd.Flags().StringVarP(&creds.username, "username", "u", "", "Username for servers that require login")
	cmd.Flags().StringVarP(&creds.password, "password", "p", "", "Password for servers that require login")
	return cmd
}
