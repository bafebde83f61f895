package sink

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"regexp"

	_ "github.com/lib/pq"

	"github.com/seoagent/hostprobe/internal/detect"
)

// PGSink writes one row per detection run to Postgres.
type PGSink struct {
	dsn   string
	table string
	db    *sql.DB
}

func NewPGSink(dsn, table string) *PGSink {
	if table == "" {
		table = "detections"
	}
	return &PGSink{dsn: dsn, table: table}
}

// NewPGSinkFromEnv creates a PGSink from PG_DSN and PG_TABLE.
func NewPGSinkFromEnv() *PGSink {
	return NewPGSink(os.Getenv("PG_DSN"), os.Getenv("PG_TABLE"))
}

// identifierRE matches a bare, unquoted Postgres identifier. Anything else
// is rejected rather than quoted, since the table name is operator config,
// not user input.
var identifierRE = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

func validateTableName(name string) error {
	if name == "" {
		return fmt.Errorf("pg sink: empty table name")
	}
	if len(name) > 63 {
		return fmt.Errorf("pg sink: table name %q exceeds 63 characters", name)
	}
	if !identifierRE.MatchString(name) {
		return fmt.Errorf("pg sink: invalid table name %q", name)
	}
	return nil
}

func (s *PGSink) Start(ctx context.Context) error {
	if err := validateTableName(s.table); err != nil {
		return err
	}
	if s.dsn == "" {
		return fmt.Errorf("pg sink: no DSN configured")
	}
	db, err := sql.Open("postgres", s.dsn)
	if err != nil {
		return fmt.Errorf("pg sink: open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("pg sink: ping: %w", err)
	}
	s.db = db
	return nil
}

func (s *PGSink) Enqueue(rec detect.Record) error {
	if s.db == nil {
		return fmt.Errorf("pg sink: not started")
	}

	candidates, err := json.Marshal(rec.Candidates)
	if err != nil {
		return fmt.Errorf("pg sink: marshal candidates: %w", err)
	}
	matches, err := json.Marshal(rec.Matches)
	if err != nil {
		return fmt.Errorf("pg sink: marshal matches: %w", err)
	}
	methods, err := json.Marshal(rec.MethodsUsed)
	if err != nil {
		return fmt.Errorf("pg sink: marshal methods: %w", err)
	}

	// Table name is validated in Start; placeholders cover everything else.
	query := fmt.Sprintf(`INSERT INTO %s
		(run_id, identity, domain, normalized_url, primary_provider,
		 overall_confidence, candidates, methods_used, matches,
		 user_agent, duration_ms, detected_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`, s.table)

	_, err = s.db.Exec(query,
		rec.RunID, rec.Identity, rec.Domain, rec.NormalizedURL, rec.Primary,
		rec.OverallConfidence, candidates, methods, matches,
		rec.UserAgent, rec.DurationMs, rec.DetectedAt)
	if err != nil {
		return fmt.Errorf("pg sink: insert run %s: %w", rec.RunID, err)
	}
	return nil
}

func (s *PGSink) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *PGSink) Name() string { return "postgres" }
