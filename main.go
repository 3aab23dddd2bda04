package main

import (
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/lunch-pick/airtable"
	"github.com/danielhkuo/lunch-pick/cliparse"
	"github.com/danielhkuo/lunch-pick/db"
	"github.com/danielhkuo/lunch-pick/middleware"
	"github.com/danielhkuo/lunch-pick/router"
	"github.com/danielhkuo/lunch-pick/session"
	"github.com/danielhkuo/lunch-pick/store"
)

func main() {
	var err error

	// .env is optional; real environment variables win
	if err := cliparse.LoadEnvFile(".env"); err != nil {
		slog.Error("Error loading .env", "error", err)
		os.Exit(1)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// sqlite registers as "sqlite", lib/pq as "postgres"
	dbConn, err := sql.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	if cfg.DatabaseType == "sqlite" {
		// sqlite serializes writers anyway; one connection avoids SQLITE_BUSY
		dbConn.SetMaxOpenConns(1)
	}

	// Verify connection
	if err := dbConn.Ping(); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	sqlStore := db.New(dbConn)

	var (
		candidates store.CandidateSource = sqlStore
		ledger     store.Ledger          = sqlStore
		// the candidate list is only writable when this service owns it
		candidateWriter store.CandidateWriter = sqlStore
	)
	if cfg.LedgerBackend == cliparse.BackendAirtable {
		client := airtable.New(airtable.Config{
			URL:             cfg.AirtableURL,
			APIKey:          cfg.AirtableAPIKey,
			BaseID:          cfg.AirtableBaseID,
			CandidatesTable: cfg.CandidatesTable,
			LedgerTable:     cfg.LedgerTable,
			HTTPClient:      &http.Client{Timeout: cfg.HTTPTimeout},
		})
		candidates, ledger, candidateWriter = client, client, nil
		slog.Info("Using Airtable backend", "base", cfg.AirtableBaseID, "candidates", cfg.CandidatesTable, "ledger", cfg.LedgerTable)
	}

	sessions := session.NewRegistry(session.Deps{
		Candidates: candidates,
		Ledger:     ledger,
		Flags:      sqlStore,
		MaxVotes:   cfg.MaxVotes,
	}, cfg.SessionTTL)

	if candidateWriter != nil && cfg.AdminKey == "" {
		slog.Warn("ADMIN_KEY not set; POST /candidates will reject every request")
	}

	// Create router
	mux := router.NewRouter(sessions, candidateWriter, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "max_votes", cfg.MaxVotes)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
