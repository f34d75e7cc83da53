package store

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schema embed.FS

// ErrNotFound is returned when a hand id is unknown.
var ErrNotFound = errors.New("hand not found")

type DB struct{ *pgxpool.Pool }

func Open(dsn string) (*DB, error) {
	p, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		return nil, err
	}
	return &DB{p}, nil
}

func (db *DB) Close(ctx context.Context)      { db.Pool.Close() }
func (db *DB) Ping(ctx context.Context) error { return db.Pool.Ping(ctx) }

func Migrate(ctx context.Context, db *DB) error {
	sqlBytes, err := schema.ReadFile("schema.sql")
	if err != nil {
		return err
	}
	_, err = db.Exec(ctx, string(sqlBytes))
	return err
}

// RawHand is one stored hand: the engine's positional event records plus
// the player names known at save time.
type RawHand struct {
	ID          int64
	PlayedAt    time.Time
	Description []json.RawMessage
	PlayerNames map[int64]string
}

// HandSummary is a listing row.
type HandSummary struct {
	ID       int64     `json:"id"`
	PlayedAt time.Time `json:"played_at"`
}

// SaveHand upserts one hand's raw description.
func (db *DB) SaveHand(ctx context.Context, h RawHand) error {
	desc, err := json.Marshal(h.Description)
	if err != nil {
		return err
	}
	names, err := json.Marshal(stringKeys(h.PlayerNames))
	if err != nil {
		return err
	}
	playedAt := h.PlayedAt
	if playedAt.IsZero() {
		playedAt = time.Now().UTC()
	}
	_, err = db.Exec(ctx, `
        INSERT INTO hands(id, played_at, description, player_names)
        VALUES ($1,$2,$3,$4)
        ON CONFLICT (id) DO UPDATE
          SET played_at = EXCLUDED.played_at,
              description = EXCLUDED.description,
              player_names = EXCLUDED.player_names
    `, h.ID, playedAt, desc, names)
	return err
}

// LoadHand fetches one hand's raw description by id.
func (db *DB) LoadHand(ctx context.Context, id int64) (RawHand, error) {
	var (
		h     = RawHand{ID: id}
		desc  []byte
		names []byte
	)
	err := db.QueryRow(ctx, `
        SELECT played_at, description, player_names
          FROM hands WHERE id = $1
    `, id).Scan(&h.PlayedAt, &desc, &names)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return RawHand{}, ErrNotFound
		}
		return RawHand{}, err
	}
	if err := json.Unmarshal(desc, &h.Description); err != nil {
		return RawHand{}, fmt.Errorf("hand %d description: %w", id, err)
	}
	var raw map[string]string
	if err := json.Unmarshal(names, &raw); err != nil {
		return RawHand{}, fmt.Errorf("hand %d player_names: %w", id, err)
	}
	h.PlayerNames = make(map[int64]string, len(raw))
	for k, v := range raw {
		pid, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			return RawHand{}, fmt.Errorf("hand %d player id %q: %w", id, k, err)
		}
		h.PlayerNames[pid] = v
	}
	return h, nil
}

// ListHands returns the most recently played hands.
func (db *DB) ListHands(ctx context.Context, limit int) ([]HandSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.Query(ctx, `
        SELECT id, played_at FROM hands
         ORDER BY played_at DESC, id DESC
         LIMIT $1
    `, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []HandSummary{}
	for rows.Next() {
		var s HandSummary
		if err := rows.Scan(&s.ID, &s.PlayedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func stringKeys(m map[int64]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[strconv.FormatInt(k, 10)] = v
	}
	return out
}
