package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"pokerhist/server/engine"
	"pokerhist/server/history"
	"pokerhist/server/store"
	"pokerhist/server/verify"
)

type server struct {
	db        *store.DB
	siteName  string
	chipScale int
}

func Router(db *store.DB, siteName string, chipScale int) http.Handler {
	s := &server{db: db, siteName: siteName, chipScale: chipScale}

	r := chi.NewRouter()
	r.Get("/api/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]any{"ok": true})
	})
	r.Get("/api/hands", s.listHands)
	r.Post("/api/hands", s.saveHand)
	r.Get("/api/hands/{handID}/history", s.handHistory)
	r.Get("/api/hands/{handID}/audit", s.auditHand)
	return r
}

func (s *server) listHands(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	hands, err := s.db.ListHands(r.Context(), limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"hands": hands})
}

func (s *server) saveHand(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID          int64             `json:"id"`
		PlayedAt    *time.Time        `json:"played_at"`
		Description []json.RawMessage `json:"description"`
		PlayerNames map[string]string `json:"player_names"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if body.ID == 0 || len(body.Description) == 0 {
		http.Error(w, "id and description are required", http.StatusBadRequest)
		return
	}
	// Reject descriptions the adapter cannot read; bad hands are easier to
	// fix at ingest than at render time.
	if _, err := engine.ParseHand(body.Description); err != nil {
		http.Error(w, "unreadable description: "+err.Error(), http.StatusBadRequest)
		return
	}

	names := make(map[int64]string, len(body.PlayerNames))
	for k, v := range body.PlayerNames {
		id, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			http.Error(w, "bad player id "+k, http.StatusBadRequest)
			return
		}
		names[id] = v
	}

	h := store.RawHand{ID: body.ID, Description: body.Description, PlayerNames: names}
	if body.PlayedAt != nil {
		h.PlayedAt = *body.PlayedAt
	}
	if err := s.db.SaveHand(r.Context(), h); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]any{"id": body.ID})
}

func (s *server) handHistory(w http.ResponseWriter, r *http.Request) {
	raw, events, ok := s.loadHand(w, r)
	if !ok {
		return
	}

	formatter := history.NewFormatter(s.siteName)
	switch r.URL.Query().Get("perspective") {
	case "", "admin":
	case "observer":
		formatter.Perspective = history.Observer
	case "player":
		pid, err := strconv.ParseInt(r.URL.Query().Get("player"), 10, 64)
		if err != nil {
			http.Error(w, "player perspective needs a numeric player param", http.StatusBadRequest)
			return
		}
		formatter.Perspective = history.PlayerView
		formatter.PlayerID = pid
	default:
		http.Error(w, "unknown perspective", http.StatusBadRequest)
		return
	}

	normalizer := history.DefaultNormalizer()
	normalizer.SetChipScale(s.chipScale)
	doc, err := history.GenerateDocument(normalizer, formatter, events,
		raw.PlayerNames, raw.PlayedAt.Unix())
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(doc + "\n"))
}

func (s *server) auditHand(w http.ResponseWriter, r *http.Request) {
	raw, events, ok := s.loadHand(w, r)
	if !ok {
		return
	}

	normalizer := history.DefaultNormalizer()
	normalizer.SetChipScale(s.chipScale)
	ctx := history.NewContext(raw.PlayerNames, raw.PlayedAt.Unix())
	narrative, err := normalizer.Normalize(events, ctx)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	mismatches, err := verify.Showdowns(narrative)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	if mismatches == nil {
		mismatches = []verify.Mismatch{}
	}
	writeJSON(w, map[string]any{"hand_id": raw.ID, "mismatches": mismatches})
}

// loadHand fetches the hand named in the URL and parses its raw records.
func (s *server) loadHand(w http.ResponseWriter, r *http.Request) (store.RawHand, []engine.Event, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "handID"), 10, 64)
	if err != nil {
		http.Error(w, "bad hand id", http.StatusBadRequest)
		return store.RawHand{}, nil, false
	}
	raw, err := s.db.LoadHand(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "no such hand", http.StatusNotFound)
		} else {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return store.RawHand{}, nil, false
	}
	events, err := engine.ParseHand(raw.Description)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return store.RawHand{}, nil, false
	}
	return raw, events, true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
