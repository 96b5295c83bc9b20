package main

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/mauv0809/keybet/internal/catalog"
	"github.com/mauv0809/keybet/internal/config"
	"github.com/mauv0809/keybet/internal/database"
	"github.com/mauv0809/keybet/internal/history"
	"github.com/mauv0809/keybet/internal/metrics"
	"github.com/mauv0809/keybet/internal/notifier/slack"
	"github.com/mauv0809/keybet/internal/predictor"
	"github.com/mauv0809/keybet/internal/processor"
	"github.com/mauv0809/keybet/internal/pubsub"
)

// app holds the state shared by the commands of one invocation. Resources
// are opened on first use.
type app struct {
	v   *viper.Viper
	cfg config.Config

	in           *bufio.Reader
	out, errOut  io.Writer
	readPassword func() (string, error)

	db         *sql.DB
	dbErr      error
	dbTeardown func()
	usage      metrics.Metrics
	client     *predictor.APIClient
	ps         pubsub.PubSubClient
}

func newApp(v *viper.Viper, in io.Reader, out, errOut io.Writer) *app {
	a := &app{
		v:      v,
		in:     bufio.NewReader(in),
		out:    out,
		errOut: errOut,
	}
	a.readPassword = a.readLine
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		a.readPassword = func() (string, error) {
			b, err := term.ReadPassword(int(f.Fd()))
			fmt.Fprintln(a.out)
			return string(b), err
		}
	}
	return a
}

// readLine returns the next input line without its line ending. It returns
// io.EOF once the input is exhausted.
func (a *app) readLine() (string, error) {
	line, err := a.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// database opens the database once. A failed open is remembered and
// returned on every later call.
func (a *app) database() (*sql.DB, error) {
	if a.db != nil || a.dbErr != nil {
		return a.db, a.dbErr
	}
	db, teardown, err := database.InitDB(a.cfg.DB.Path, a.cfg.DB.TursoURL, a.cfg.DB.TursoToken)
	if err != nil {
		a.dbErr = fmt.Errorf("failed to open database: %w", err)
		return nil, a.dbErr
	}
	a.db, a.dbTeardown = db, teardown
	return db, nil
}

// metrics returns the persistent usage counters, or a no-op sink when the
// database cannot be opened.
func (a *app) metrics() metrics.Metrics {
	if a.usage != nil {
		return a.usage
	}
	db, err := a.database()
	if err != nil {
		log.Debug("Usage counters disabled", "error", err)
		a.usage = metrics.Noop{}
		return a.usage
	}
	a.usage = metrics.NewUsage(metrics.New(db))
	return a.usage
}

func (a *app) predictionClient() (*predictor.APIClient, error) {
	if a.client != nil {
		return a.client, nil
	}
	c, err := predictor.NewClientFromConfig(a.cfg, a.metrics())
	if err != nil {
		return nil, err
	}
	a.client = c
	return c, nil
}

// catalog loads the team catalog from the configured source.
func (a *app) catalog(ctx context.Context) (*catalog.Catalog, error) {
	var store catalog.CatalogStore
	var remote catalog.RemoteSource
	switch a.cfg.Catalog.Source {
	case config.SourceDB:
		db, err := a.database()
		if err != nil {
			return nil, err
		}
		store = catalog.NewStore(db)
	case config.SourceRemote:
		c, err := a.predictionClient()
		if err != nil {
			return nil, err
		}
		remote = c
	}

	c, err := catalog.LoadSource(ctx, a.cfg.Catalog, store, remote)
	if err != nil {
		return nil, err
	}
	a.metrics().IncCatalogRequests()
	return c, nil
}

// processor wires the prediction side effects that are configured. lookup
// may be nil to skip catalog validation. Without a database predictions are
// made but not recorded.
func (a *app) processor(ctx context.Context, lookup processor.Lookup) (*processor.Processor, error) {
	client, err := a.predictionClient()
	if err != nil {
		return nil, err
	}

	var store processor.Store
	if db, err := a.database(); err != nil {
		log.Warn("Prediction history disabled", "error", err)
	} else {
		store = history.New(db)
	}


	var ps pubsub.PubSubClient
	if a.cfg.PubSub.ProjectID != "" {
		if a.ps == nil {
			if a.ps, err = pubsub.New(ctx, a.cfg.PubSub.ProjectID); err != nil {
				return nil, err
			}
		}
		ps = a.ps
	}

	return processor.New(client, lookup, store, a.notifier(), a.metrics(), ps), nil
}

// notifier returns the Slack notifier, or nil when Slack is not configured.
func (a *app) notifier() processor.Notifier {
	if a.cfg.Slack.Token == "" || a.cfg.Slack.ChannelID == "" {
		return nil
	}
	return slack.NewNotifier(a.cfg.Slack.Token, a.cfg.Slack.ChannelID, a.metrics())
}

// close releases whatever was opened. It is safe to call more than once.
func (a *app) close() {
	if a.ps != nil {
		if err := a.ps.Close(); err != nil {
			log.Warn("Failed to close Pub/Sub client", "error", err)
		}
		a.ps = nil
	}
	if a.dbTeardown != nil {
		a.dbTeardown()
		a.dbTeardown, a.db = nil, nil
	}
}
