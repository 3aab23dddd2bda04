package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Ledger backends
const (
	BackendSQL      = "sql"
	BackendAirtable = "airtable"
)

const (
	defaultPort            = 3318
	defaultSQLiteURL       = "file:lunch-pick.db"
	defaultAirtableURL     = "https://api.airtable.com/v0"
	defaultCandidatesTable = "Lokale"
	defaultLedgerTable     = "Stimmen-Log"
	defaultMaxVotes        = 3
	defaultSessionTTL      = 12 * time.Hour
	defaultHTTPTimeout     = 15 * time.Second
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string

	LedgerBackend   string
	AirtableURL     string
	AirtableAPIKey  string
	AirtableBaseID  string
	CandidatesTable string
	LedgerTable     string

	MaxVotes    int
	SessionTTL  time.Duration
	HTTPTimeout time.Duration

	// AdminKey guards candidate management. Empty disables it.
	AdminKey string
}

// LoadEnvFile loads KEY=value pairs from path into the environment without
// overriding variables that are already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ParseFlags validates flags and fills the rest from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("lunch-pick", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Ledger
	fs.StringVar(&cfg.LedgerBackend, "ledger", "", "Ledger backend (sql or airtable)")
	fs.StringVar(&cfg.AirtableURL, "airtable-url", "", "Airtable API base URL")
	fs.StringVar(&cfg.AirtableBaseID, "airtable-base", "", "Airtable base ID")
	fs.StringVar(&cfg.AirtableAPIKey, "airtable-key", "", "Airtable API key (prefer env)")
	fs.StringVar(&cfg.CandidatesTable, "candidates-table", "", "Candidate table name")
	fs.StringVar(&cfg.LedgerTable, "ledger-table", "", "Vote ledger table name")

	// Voting
	fs.IntVar(&cfg.MaxVotes, "max-votes", 0, "Votes per client per day")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", 0, "Idle time before a session is dropped")
	fs.DurationVar(&cfg.HTTPTimeout, "http-timeout", 0, "Timeout for ledger HTTP calls")

	// Admin
	fs.StringVar(&cfg.AdminKey, "admin-key", "", "Key for candidate management (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		port, err := envInt("PORT", defaultPort)
		if err != nil {
			return Config{}, err
		}
		cfg.Port = port
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = envString("DATABASE_TYPE", "sqlite")
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType == "postgres" {
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = defaultSQLiteURL
	}

	if cfg.LedgerBackend == "" {
		cfg.LedgerBackend = envString("LEDGER_BACKEND", BackendSQL)
	}
	if cfg.AirtableURL == "" {
		cfg.AirtableURL = envString("AIRTABLE_URL", defaultAirtableURL)
	}
	if cfg.AirtableBaseID == "" {
		cfg.AirtableBaseID = os.Getenv("AIRTABLE_BASE_ID")
	}
	if cfg.AirtableAPIKey == "" {
		cfg.AirtableAPIKey = os.Getenv("AIRTABLE_API_KEY")
	}
	if cfg.CandidatesTable == "" {
		cfg.CandidatesTable = envString("CANDIDATES_TABLE", defaultCandidatesTable)
	}
	if cfg.LedgerTable == "" {
		cfg.LedgerTable = envString("LEDGER_TABLE", defaultLedgerTable)
	}

	switch cfg.LedgerBackend {
	case BackendSQL:
	case BackendAirtable:
		// Secrets - MUST be provided
		if cfg.AirtableAPIKey == "" {
			return Config{}, errors.New("AIRTABLE_API_KEY required for the airtable ledger")
		}
		if cfg.AirtableBaseID == "" {
			return Config{}, errors.New("AIRTABLE_BASE_ID required for the airtable ledger")
		}
	default:
		return Config{}, fmt.Errorf("unknown ledger backend %q", cfg.LedgerBackend)
	}

	if cfg.MaxVotes == 0 {
		maxVotes, err := envInt("MAX_VOTES", defaultMaxVotes)
		if err != nil {
			return Config{}, err
		}
		cfg.MaxVotes = maxVotes
	}
	if cfg.MaxVotes < 1 {
		return Config{}, errors.New("max votes must be at least 1")
	}

	if cfg.SessionTTL == 0 {
		ttl, err := envDuration("SESSION_TTL", defaultSessionTTL)
		if err != nil {
			return Config{}, err
		}
		cfg.SessionTTL = ttl
	}
	if cfg.HTTPTimeout == 0 {
		timeout, err := envDuration("HTTP_TIMEOUT", defaultHTTPTimeout)
		if err != nil {
			return Config{}, err
		}
		cfg.HTTPTimeout = timeout
	}

	if cfg.AdminKey == "" {
		cfg.AdminKey = os.Getenv("ADMIN_KEY")
	}

	return cfg, nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable", key)
	}
	return n, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable", key)
	}
	return d, nil
}
