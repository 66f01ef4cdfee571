package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/stpnv0/EventRadar/internal/domain"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/retry"
)

// EventRepository stores canonical events as JSON documents keyed by id.
type EventRepository struct {
	db       *dbpg.DB
	strategy retry.Strategy
}

func NewEventRepo(db *dbpg.DB) *EventRepository {
	return &EventRepository{
		db: db,
		strategy: retry.Strategy{
			Attempts: 3,
			Delay:    500 * time.Millisecond,
			Backoff:  2,
		},
	}
}

// SaveBatch upserts events in a single statement.
func (r *EventRepository) SaveBatch(ctx context.Context, events []domain.Event) error {
	if len(events) == 0 {
		return nil
	}
	b, err := newBatch(events)
	if err != nil {
		return err
	}

	query := `INSERT INTO events (id, provider, raw_date, payload, updated_at)
			  SELECT u.id, u.provider, NULLIF(u.raw_date, '')::timestamptz, u.payload::jsonb, $5
			  FROM unnest($1::text[], $2::text[], $3::text[], $4::text[]) AS u(id, provider, raw_date, payload)
			  ON CONFLICT (id) DO UPDATE
			  SET provider = EXCLUDED.provider,
			      raw_date = EXCLUDED.raw_date,
			      payload = EXCLUDED.payload,
			      updated_at = EXCLUDED.updated_at`

	_, err = r.db.ExecWithRetry(
		ctx, r.strategy, query,
		pq.Array(b.ids), pq.Array(b.providers), pq.Array(b.rawDates), pq.Array(b.payloads),
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save events: %w", err)
	}

	return nil
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT payload FROM events WHERE id = $1`

	row, err := r.db.QueryRowWithRetry(ctx, r.strategy, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	var payload []byte
	if err = row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("scan event: %w", err)
	}

	var e domain.Event
	if err = json.Unmarshal(payload, &e); err != nil {
		return nil, fmt.Errorf("decode event %s: %w", id, err)
	}

	return &e, nil
}

// batch holds the column arrays passed to unnest.
type batch struct {
	ids       []string
	providers []string
	rawDates  []string
	payloads  []string
}

// newBatch encodes events column-wise. Repeated ids keep the last value, since
// one upsert statement cannot touch the same row twice.
func newBatch(events []domain.Event) (batch, error) {
	pos := make(map[string]int, len(events))
	var b batch
	for _, e := range events {
		payload, err := json.Marshal(e)
		if err != nil {
			return batch{}, fmt.Errorf("encode event %s: %w", e.ID, err)
		}
		rawDate := ""
		if t, ok := e.StartTime(); ok {
			rawDate = t.UTC().Format(time.RFC3339)
		}

		if i, dup := pos[e.ID]; dup {
			b.providers[i], b.rawDates[i], b.payloads[i] = e.Provider, rawDate, string(payload)
			continue
		}
		pos[e.ID] = len(b.ids)
		b.ids = append(b.ids, e.ID)
		b.providers = append(b.providers, e.Provider)
		b.rawDates = append(b.rawDates, rawDate)
		b.payloads = append(b.payloads, string(payload))
	}
	return b, nil
}
