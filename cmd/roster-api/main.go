// main is the entry point of the Roster API application.
//
// STARTUP SEQUENCE:
//  1. Load configuration from a YAML file
//  2. Initialise the logger
//  3. Open the SQLite snapshot slot and load the roster into memory
//  4. Build the roster engine and the shared view-state
//  5. Register all HTTP routes
//  6. Start the HTTP server in a separate goroutine
//  7. Block the main goroutine until an OS signal (Ctrl+C / kill) arrives
//  8. Gracefully shut down: finish in-flight requests, then exit
//
// RUNNING THE SERVER:
//
//	go run ./cmd/roster-api --config=config/local.yaml
//
// or (with the environment variable):
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/roster-api
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aanand-mishra/roster-api/internal/config"
	"github.com/aanand-mishra/roster-api/internal/http/handlers/student"
	"github.com/aanand-mishra/roster-api/internal/roster"
	"github.com/aanand-mishra/roster-api/internal/storage/sqlite"
)

func main() {
	// ── 1. Load Config ────────────────────────────────────────────────────
	// MustLoad reads the YAML config and panics if anything is wrong.
	// The name "Must" signals: if this returns, config is guaranteed valid.
	cfg := config.MustLoad()

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	// slog is Go's structured logger (stdlib since Go 1.21).
	// Structured logging writes key=value pairs rather than plain strings,
	// making logs easy to filter/search in tools like Loki or Datadog.
	log := setupLogger(cfg.Env)

	log.Info("starting roster-api",
		slog.String("env", cfg.Env),
		slog.String("version", "1.0.0"),
	)

	// ── 3. Initialise Storage + Record Store ──────────────────────────────
	// sqlite.New opens the SQLite file and creates the snapshot table.
	// The store only knows the storage.Snapshotter INTERFACE, not
	// *sqlite.SQLite — swapping to another backend later only requires
	// changing this one line.
	snaps, err := sqlite.New(cfg)
	if err != nil {
		log.Error("failed to initialise storage",
			slog.String("error", err.Error()))
		os.Exit(1) // non-zero exit code signals failure to the OS / CI system
	}

	// OpenStore performs the one startup Load: the persisted snapshot
	// becomes the in-memory roster, or an empty roster on first run.
	store, err := roster.OpenStore(snaps, log)
	if err != nil {
		log.Error("failed to load roster snapshot",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("roster loaded",
		slog.String("path", cfg.StoragePath),
		slog.Int("students", store.Len()))

	// ── 4. Build the Engine and the View-State ────────────────────────────
	// The engine owns the mutation rules; the view-state holds the
	// single user session (draft, mode, filter, page, messages).
	engine := roster.NewEngine(store)
	state := student.NewState()

	// ── 5. Register HTTP Routes ───────────────────────────────────────────
	// The handler functions are FACTORIES — they receive their
	// dependencies and return the actual handler. This is the
	// dependency injection / closure pattern.
	//
	// Route table:
	//   POST   /api/students             → enroll a new student
	//   GET    /api/students             → filtered, paginated table view
	//   GET    /api/students/{id}        → search: load a student for update
	//   PUT    /api/students/{id}        → update the loaded student
	//   POST   /api/students/{id}/select → row click: load for update
	//   DELETE /api/students/{id}        → delete (requires confirm=true)
	//   GET    /api/session              → current draft / mode / messages
	router := http.NewServeMux()

	router.HandleFunc("POST /api/students", student.Enroll(engine, state))
	router.HandleFunc("GET /api/students", student.GetList(engine, state, cfg.PageSize))
	router.HandleFunc("GET /api/students/{id}", student.Search(engine, state))
	router.HandleFunc("PUT /api/students/{id}", student.Update(engine, state))
	router.HandleFunc("POST /api/students/{id}/select", student.Select(engine, state))
	router.HandleFunc("DELETE /api/students/{id}", student.Delete(engine, state))
	router.HandleFunc("GET /api/session", student.GetSession(state))

	// ── 6. Create the HTTP Server ─────────────────────────────────────────
	// http.Server is a struct. We configure it here but don't start it yet.
	server := &http.Server{
		Addr:    cfg.HTTPServer.Addr, // e.g. "localhost:8082"
		Handler: router,              // every request goes through our router

		// Set timeouts to prevent slow-client attacks.
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ── 7. Start Server in a Goroutine ────────────────────────────────────
	// ListenAndServe blocks forever (it loops accepting connections).
	// If we called it here in main(), the graceful-shutdown code below
	// would never run. So we run it in a separate goroutine.
	go func() {
		log.Info("server started", slog.String("address", cfg.HTTPServer.Addr))

		// ListenAndServe returns http.ErrServerClosed when Shutdown() is
		// called. That's expected — we don't want to log it as an error.
		if err := server.ListenAndServe(); err != nil &&
			err != http.ErrServerClosed {
			log.Error("server encountered an error",
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// ── 8. Wait for Shutdown Signal ───────────────────────────────────────
	// Buffered channel of size 1 so we don't miss the signal if main is
	// briefly busy.
	done := make(chan os.Signal, 1)

	// signal.Notify registers our channel to receive specific OS signals:
	//   os.Interrupt = Ctrl+C (SIGINT)
	//   syscall.SIGTERM = sent by `kill <pid>` or container orchestrators
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	// <-done blocks the main goroutine until a signal arrives.
	<-done

	log.Info("shutdown signal received, stopping server...")

	// ── 9. Graceful Shutdown ──────────────────────────────────────────────
	// context.WithTimeout gives the shutdown a 5-second deadline. If
	// in-flight requests don't finish within 5 seconds, the context
	// cancels and Shutdown returns an error.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// server.Shutdown:
	//   • Stops accepting new connections
	//   • Waits for active requests to complete (up to ctx deadline)
	//   • Returns nil on clean shutdown, error if deadline exceeded
	if err := server.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server gracefully",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level.
//
//	JSON logs are easy to ingest by log aggregators (Loki, CloudWatch, etc.)
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo, // INFO and above in production
			}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug, // more verbose in staging
			}),
		)
	default: // "dev" and anything unrecognised
		return slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug, // all levels in development
			}),
		)
	}
}
