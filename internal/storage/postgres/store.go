package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/Hassnain829/Ai-Sales-Representative/internal/model/conversation"
)

// Store persists conversation records and training examples in Postgres.
// Every write runs in its own short-lived transaction; no locks are held
// across requests.
type Store struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

// Open creates the database handle. The connection is lazy; call Ping to
// verify reachability.
func Open(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return db, nil
}

// NewStore wires a sql.DB implementation.
func NewStore(db *sql.DB) *Store {
	return &Store{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// EnsureSchema creates the tables on startup when they do not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS conversations (
			id BIGSERIAL PRIMARY KEY,
			session_id VARCHAR(64) NOT NULL,
			transcript TEXT NOT NULL,
			intent VARCHAR(50),
			entities JSONB,
			sentiment VARCHAR(20),
			agent_response TEXT,
			timestamp TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			outcome VARCHAR(50),
			duration DOUBLE PRECISION,
			needs_review BOOLEAN NOT NULL DEFAULT FALSE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversations_session_id ON conversations (session_id)`,
		`CREATE TABLE IF NOT EXISTS training_data (
			id BIGSERIAL PRIMARY KEY,
			text TEXT NOT NULL,
			intent VARCHAR(50) NOT NULL,
			entities JSONB,
			sentiment VARCHAR(20),
			source VARCHAR(50),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// SaveConversation stores a completed interaction. The insert is atomic:
// either the full record lands or nothing does.
func (s *Store) SaveConversation(ctx context.Context, rec conversation.Record) error {
	entities, err := marshalEntities(rec.Entities)
	if err != nil {
		return fmt.Errorf("%w: encode entities: %v", conversation.ErrPersistence, err)
	}

	query, args, err := s.sb.Insert("conversations").
		Columns("session_id", "transcript", "intent", "entities", "sentiment",
			"agent_response", "timestamp", "outcome", "duration", "needs_review").
		Values(rec.SessionID, rec.Transcript, rec.Intent, entities, rec.Sentiment,
			rec.AgentResponse, rec.Timestamp, rec.Outcome, rec.Duration, rec.NeedsReview).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: build insert: %v", conversation.ErrPersistence, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin tx: %v", conversation.ErrPersistence, err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("%w: insert conversation: %v", conversation.ErrPersistence, describePQ(err))
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", conversation.ErrPersistence, err)
	}
	return nil
}

// ListBySession returns the stored records for one session, oldest first.
func (s *Store) ListBySession(ctx context.Context, sessionID string) ([]conversation.Record, error) {
	query, args, err := s.sb.Select("id", "session_id", "transcript", "intent", "entities",
		"sentiment", "agent_response", "timestamp", "outcome", "duration", "needs_review").
		From("conversations").
		Where(sq.Eq{"session_id": sessionID}).
		OrderBy("timestamp ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query conversations: %w", err)
	}
	defer rows.Close()

	var records []conversation.Record
	for rows.Next() {
		var (
			rec      conversation.Record
			entities []byte
			intent   sql.NullString
			senti    sql.NullString
			response sql.NullString
		)
		if err := rows.Scan(&rec.ID, &rec.SessionID, &rec.Transcript, &intent, &entities,
			&senti, &response, &rec.Timestamp, &rec.Outcome, &rec.Duration, &rec.NeedsReview); err != nil {
			return nil, fmt.Errorf("scan conversation: %w", err)
		}
		rec.Intent = intent.String
		rec.Sentiment = senti.String
		rec.AgentResponse = response.String
		rec.Entities = unmarshalEntities(entities)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return records, nil
}

// InsertTrainingExample appends a labeled example and returns its id.
func (s *Store) InsertTrainingExample(ctx context.Context, ex conversation.TrainingExample) (int64, error) {
	entities, err := marshalEntities(ex.Entities)
	if err != nil {
		return 0, fmt.Errorf("encode entities: %w", err)
	}

	query, args, err := s.sb.Insert("training_data").
		Columns("text", "intent", "entities", "sentiment", "source", "created_at").
		Values(ex.Text, ex.Intent, entities, ex.Sentiment, ex.Source, ex.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert: %w", err)
	}

	var id int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert training example: %w", describePQ(err))
	}
	return id, nil
}

// Ping verifies database reachability for the health endpoint.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping postgres: %w", err)
	}
	return nil
}

func marshalEntities(entities map[string]any) ([]byte, error) {
	if entities == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(entities)
}

// unmarshalEntities parses the stored JSONB strictly; malformed payloads
// degrade to an empty mapping instead of failing the read.
func unmarshalEntities(raw []byte) map[string]any {
	if len(raw) == 0 {
		return map[string]any{}
	}
	var entities map[string]any
	if err := json.Unmarshal(raw, &entities); err != nil || entities == nil {
		return map[string]any{}
	}
	return entities
}

// describePQ surfaces the Postgres error code when available, which makes
// constraint violations readable in the operator log.
func describePQ(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("%s (code %s)", pqErr.Message, pqErr.Code)
	}
	return err
}
