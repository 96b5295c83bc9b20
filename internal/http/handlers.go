package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"github.com/mauv0809/keybet/internal/history"
	"github.com/mauv0809/keybet/internal/pubsub"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 500
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) CountriesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Metrics.IncCatalogRequests()
		writeJSON(w, http.StatusOK, s.Catalog.Countries())
	}
}

func (s *Server) LeaguesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Metrics.IncCatalogRequests()
		country, ok := pathVar(w, r, "country")
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, s.Catalog.Leagues(country))
	}
}

func (s *Server) TeamsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Metrics.IncCatalogRequests()
		country, ok := pathVar(w, r, "country")
		if !ok {
			return
		}
		league, ok := pathVar(w, r, "league")
		if !ok {
			return
		}
		teams := s.Catalog.Teams(country, league)
		log.Debug("Serving teams", "country", country, "league", league, "count", len(teams))
		writeJSON(w, http.StatusOK, teams)
	}
}

func (s *Server) HistoryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.History == nil {
			writeJSON(w, http.StatusOK, []*history.Record{})
			return
		}

		limit := defaultHistoryLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 {
				writeJSON(w, http.StatusBadRequest, errorResponse{Error: "limit must be a positive integer"})
				return
			}
			limit = min(n, maxHistoryLimit)
		}

		records, err := s.History.List(limit)
		if err != nil {
			log.Error("Failed to list prediction history", "error", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to load history"})
			return
		}
		writeJSON(w, http.StatusOK, records)
	}
}

// PredictionEventHandler receives prediction-made events from a Pub/Sub
// push subscription and records them.
func (s *Server) PredictionEventHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received prediction event", "body", string(bodyBytes))

		push, rawData, err := pubsub.DecodePush(bodyBytes)
		if err != nil {
			log.Error("Failed to decode push message", "error", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		decode := pubsub.Unmarshal
		if s.PubSub != nil {
			decode = s.PubSub.ProcessMessage
		}
		var record history.Record
		if err := decode(rawData, &record); err != nil {
			// Acked; a redelivery would fail the same way.
			log.Error("Dropping undecodable prediction event", "error", err, "messageId", push.Message.ID)
			w.Write([]byte("OK"))
			return
		}

		if err := s.Processor.RecordEvent(&record, isDryRunFromContext(r)); err != nil {
			log.Error("Failed to record prediction event", "error", err, "messageId", push.Message.ID)
			http.Error(w, "Failed to record prediction event", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}

// pathVar returns an unescaped route variable. The router matches on the
// encoded path so names containing "/" survive.
func pathVar(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	v, err := url.PathUnescape(mux.Vars(r)[name])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid %s", name)})
		return "", false
	}
	return v, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}
