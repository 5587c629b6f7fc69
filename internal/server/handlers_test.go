package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bggtools/shelfsync/internal/importer"
	"github.com/bggtools/shelfsync/internal/models"
	"github.com/bggtools/shelfsync/internal/shared"
)

type stubStore struct {
	games []models.Game

	listCriteria map[string]any
	listErr      error

	playedID    string
	playedValue bool
	playedErr   error

	tierID    string
	tierValue *string
	tierErr   error

	updates    []models.TierUpdate
	updatesErr error
}

func (s *stubStore) List(criteria map[string]any) ([]models.Game, error) {
	s.listCriteria = criteria
	return s.games, s.listErr
}

func (s *stubStore) SetPlayed(id string, played bool) error {
	s.playedID, s.playedValue = id, played
	return s.playedErr
}

func (s *stubStore) SetTier(id string, tier *string) error {
	s.tierID, s.tierValue = id, tier
	return s.tierErr
}

func (s *stubStore) ApplyTierUpdates(updates []models.TierUpdate) error {
	s.updates = updates
	return s.updatesErr
}

type stubImporter struct {
	summary  *models.ImportSummary
	err      error
	username string
}

func (s *stubImporter) Run(ctx context.Context, username string, progress chan<- importer.ProgressUpdate) (*models.ImportSummary, error) {
	s.username = username
	if s.err != nil {
		return nil, s.err
	}
	return s.summary, nil
}

func newTestRouter(store *stubStore, imp *stubImporter) http.Handler {
	logger := shared.NewLogger(io.Discard)
	return New(NewShelfHandler(store, imp), logger)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	return body
}

func TestImportEndpoint(t *testing.T) {
	t.Run("runs an import and reports counts", func(t *testing.T) {
		imp := &stubImporter{summary: &models.ImportSummary{Created: 3, Updated: 1, Batches: 2}}
		router := newTestRouter(&stubStore{}, imp)

		req := httptest.NewRequest(http.MethodPost, "/api/import", strings.NewReader(`{"username":"alice"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
		}
		if imp.username != "alice" {
			t.Errorf("imported username = %q, want alice", imp.username)
		}

		body := decodeBody(t, rec)
		if body["ok"] != true || body["imported"] != float64(3) || body["updated"] != float64(1) || body["batches"] != float64(2) {
			t.Errorf("body = %v", body)
		}
	})

	t.Run("maps failures to statuses", func(t *testing.T) {
		tests := []struct {
			name string
			err  error
			want int
		}{
			{"invalid input", shared.ErrInvalidInput, http.StatusBadRequest},
			{"unknown user", shared.ErrUserNotFound, http.StatusNotFound},
			{"timeout", shared.ErrTimeout, http.StatusGatewayTimeout},
			{"unavailable", shared.ErrUnavailable, http.StatusBadGateway},
			{"detail fetch", shared.ErrDetailFetch, http.StatusBadGateway},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				router := newTestRouter(&stubStore{}, &stubImporter{err: tt.err})

				req := httptest.NewRequest(http.MethodPost, "/api/import", strings.NewReader(`{"username":"alice"}`))
				rec := httptest.NewRecorder()
				router.ServeHTTP(rec, req)

				if rec.Code != tt.want {
					t.Errorf("status = %d, want %d", rec.Code, tt.want)
				}
				if body := decodeBody(t, rec); body["error"] == "" {
					t.Error("expected an error message")
				}
			})
		}
	})

	t.Run("rejects a bad body", func(t *testing.T) {
		router := newTestRouter(&stubStore{}, &stubImporter{})

		req := httptest.NewRequest(http.MethodPost, "/api/import", strings.NewReader(`{`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestListGamesEndpoint(t *testing.T) {
	t.Run("returns the shelf", func(t *testing.T) {
		store := &stubStore{games: []models.Game{{ID: "game-1", Name: "Gloomhaven"}}}
		router := newTestRouter(store, &stubImporter{})

		req := httptest.NewRequest(http.MethodGet, "/api/games", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		body := decodeBody(t, rec)
		games, ok := body["games"].([]any)
		if !ok || len(games) != 1 {
			t.Errorf("games = %v, want 1 entry", body["games"])
		}
		if store.listCriteria != nil {
			t.Errorf("criteria = %v, want nil for a full listing", store.listCriteria)
		}
	})

	t.Run("filters by tier", func(t *testing.T) {
		store := &stubStore{}
		router := newTestRouter(store, &stubImporter{})

		req := httptest.NewRequest(http.MethodGet, "/api/games?tier=S", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if store.listCriteria["tier"] != "S" {
			t.Errorf("criteria = %v, want tier S", store.listCriteria)
		}

		body := decodeBody(t, rec)
		if _, ok := body["games"].([]any); !ok {
			t.Errorf("empty shelf should encode as [], got %v", body["games"])
		}
	})

	t.Run("rejects unknown tiers", func(t *testing.T) {
		router := newTestRouter(&stubStore{}, &stubImporter{})

		req := httptest.NewRequest(http.MethodGet, "/api/games?tier=Z", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestReorderEndpoint(t *testing.T) {
	t.Run("applies updates", func(t *testing.T) {
		store := &stubStore{}
		router := newTestRouter(store, &stubImporter{})

		payload := `{"updates":[{"id":"game-1","tier":"A","tier_rank":0},{"id":"game-2","tier":null,"tier_rank":null}]}`
		req := httptest.NewRequest(http.MethodPost, "/api/games/reorder", strings.NewReader(payload))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
		}
		if len(store.updates) != 2 {
			t.Fatalf("got %d updates, want 2", len(store.updates))
		}
		if store.updates[0].GameID != "game-1" || store.updates[0].Tier == nil || *store.updates[0].Tier != "A" {
			t.Errorf("first update = %+v", store.updates[0])
		}
		if store.updates[1].Tier != nil {
			t.Errorf("second update should clear the tier, got %+v", store.updates[1])
		}
	})

	t.Run("rejects invalid tiers before writing", func(t *testing.T) {
		store := &stubStore{}
		router := newTestRouter(store, &stubImporter{})

		payload := `{"updates":[{"id":"game-1","tier":"Z","tier_rank":0}]}`
		req := httptest.NewRequest(http.MethodPost, "/api/games/reorder", strings.NewReader(payload))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
		if store.updates != nil {
			t.Error("store should not be touched on validation failure")
		}
	})

	t.Run("unknown game rolls up as 404", func(t *testing.T) {
		store := &stubStore{updatesErr: shared.ErrGameNotFound}
		router := newTestRouter(store, &stubImporter{})

		payload := `{"updates":[{"id":"missing","tier":"A","tier_rank":0}]}`
		req := httptest.NewRequest(http.MethodPost, "/api/games/reorder", strings.NewReader(payload))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}

func TestSetTierEndpoint(t *testing.T) {
	t.Run("assigns a tier", func(t *testing.T) {
		store := &stubStore{}
		router := newTestRouter(store, &stubImporter{})

		req := httptest.NewRequest(http.MethodPatch, "/api/games/game-1/tier", strings.NewReader(`{"tier":"B"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
		}
		if store.tierID != "game-1" || store.tierValue == nil || *store.tierValue != "B" {
			t.Errorf("SetTier(%q, %v)", store.tierID, store.tierValue)
		}
	})

	t.Run("null tier clears the ranking", func(t *testing.T) {
		store := &stubStore{}
		router := newTestRouter(store, &stubImporter{})

		req := httptest.NewRequest(http.MethodPatch, "/api/games/game-1/tier", strings.NewReader(`{"tier":null}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if store.tierID != "game-1" || store.tierValue != nil {
			t.Errorf("SetTier(%q, %v), want nil tier", store.tierID, store.tierValue)
		}
	})
}

func TestSetPlayedEndpoint(t *testing.T) {
	t.Run("marks a game played", func(t *testing.T) {
		store := &stubStore{}
		router := newTestRouter(store, &stubImporter{})

		req := httptest.NewRequest(http.MethodPatch, "/api/games/game-1/played", strings.NewReader(`{"played":true}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
		}
		if store.playedID != "game-1" || !store.playedValue {
			t.Errorf("SetPlayed(%q, %v)", store.playedID, store.playedValue)
		}
	})

	t.Run("requires an explicit flag", func(t *testing.T) {
		router := newTestRouter(&stubStore{}, &stubImporter{})

		req := httptest.NewRequest(http.MethodPatch, "/api/games/game-1/played", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("unknown game is 404", func(t *testing.T) {
		store := &stubStore{playedErr: shared.ErrGameNotFound}
		router := newTestRouter(store, &stubImporter{})

		req := httptest.NewRequest(http.MethodPatch, "/api/games/missing/played", strings.NewReader(`{"played":false}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}
