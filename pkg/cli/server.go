package cli

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/pressframe/pctl/pkg/data"
	"github.com/pressframe/pctl/pkg/engine"
	"github.com/pressframe/pctl/pkg/report"
)

const (
	serverShutdownWaitSeconds = 5
	serverTimeoutSeconds      = 300
	serverMaxHeaderBytes      = 20
	serverPortDefault         = 8080
	serverMaxBodyBytes        = 1 << 20
)

var (
	portFlag = &cli.IntFlag{
		Name:  "port",
		Usage: "Port on which the server will listen",
		Value: serverPortDefault,
	}

	serverCmd = &cli.Command{
		Name:    "server",
		Aliases: []string{"serve"},
		Usage:   "Start local HTTP API",
		Action:  cmdStartServer,
		Flags: []cli.Flag{
			portFlag,
			debugFlag,
		},
	}
)

func cmdStartServer(c *cli.Context) error {
	cfg := getConfig(c)
	address := fmt.Sprintf("127.0.0.1:%d", c.Int(portFlag.Name))

	s := &http.Server{
		Addr:           address,
		Handler:        makeRouter(cfg.DB),
		ReadTimeout:    serverTimeoutSeconds * time.Second,
		WriteTimeout:   serverTimeoutSeconds * time.Second,
		MaxHeaderBytes: 1 << serverMaxHeaderBytes,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := s.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("error starting server", "error", err)
		}
	}()

	slog.Info("server started", "address", "http://"+address)

	<-done

	ctx, cancel := context.WithTimeout(context.Background(), serverShutdownWaitSeconds*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("error shutting down server", "error", err)
	}
	return nil
}

func makeRouter(db *sql.DB) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/report", reportAPIHandler())
	mux.HandleFunc("POST /api/export", exportAPIHandler())
	mux.HandleFunc("POST /api/check", checkAPIHandler(db))

	mux.HandleFunc("GET /api/monitors", monitorListAPIHandler(db))
	mux.HandleFunc("POST /api/monitors", monitorAddAPIHandler(db))
	mux.HandleFunc("DELETE /api/monitors/{id}", monitorRemoveAPIHandler(db))

	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func readBodyAssessment(w http.ResponseWriter, r *http.Request) (*engine.Assessment, bool) {
	b, err := io.ReadAll(io.LimitReader(r.Body, serverMaxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "reading request body")
		return nil, false
	}
	a, err := engine.ParseAssessment(b)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return a, true
}

func reportAPIHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, ok := readBodyAssessment(w, r)
		if !ok {
			return
		}
		s := engine.Aggregate(a, engine.DefaultWeights())
		plain := r.URL.Query().Get("plain") != ""

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintln(w, report.Render(a, s, plain, time.Now()))
	}
}

func exportAPIHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, ok := readBodyAssessment(w, r)
		if !ok {
			return
		}
		s := engine.Aggregate(a, engine.DefaultWeights())
		writeJSON(w, http.StatusOK, report.NewExport(a, s, time.Now()))
	}
}

func checkAPIHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, ok := readBodyAssessment(w, r)
		if !ok {
			return
		}

		th := engine.DefaultThresholds()
		if id := r.URL.Query().Get("monitor"); id != "" {
			m, err := data.GetMonitor(db, id)
			if err != nil {
				if errors.Is(err, data.ErrMonitorNotFound) {
					writeError(w, http.StatusNotFound, err.Error())
					return
				}
				writeError(w, http.StatusInternalServerError, err.Error())
				return
			}
			th = m.Thresholds
		}

		s := engine.Aggregate(a, engine.DefaultWeights())
		writeJSON(w, http.StatusOK, &engine.Evaluation{
			Summary: s,
			Alerts:  engine.Evaluate(a, s, th),
		})
	}
}

func monitorListAPIHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := data.ListMonitors(db)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

type monitorRequest struct {
	Topic            string   `json:"topic"`
	Feeds            []string `json:"feeds,omitempty"`
	Keywords         []string `json:"keywords,omitempty"`
	FrequencyMinutes int      `json:"frequency_minutes,omitempty"`
}

func monitorAddAPIHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req monitorRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, serverMaxBodyBytes)).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid monitor request")
			return
		}
		if req.Topic == "" {
			writeError(w, http.StatusBadRequest, "topic required")
			return
		}

		m, err := data.AddMonitor(db, req.Topic, req.Feeds, req.Keywords, req.FrequencyMinutes)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, m)
	}
}

func monitorRemoveAPIHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := data.RemoveMonitor(db, r.PathValue("id")); err != nil {
			if errors.Is(err, data.ErrMonitorNotFound) {
				writeError(w, http.StatusNotFound, err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
