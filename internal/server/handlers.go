package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bggtools/shelfsync/internal/importer"
	"github.com/bggtools/shelfsync/internal/models"
	"github.com/bggtools/shelfsync/internal/shared"
)

// GameStore is the slice of the game repository the HTTP layer needs.
type GameStore interface {
	List(criteria map[string]any) ([]models.Game, error)
	SetPlayed(id string, played bool) error
	SetTier(id string, tier *string) error
	ApplyTierUpdates(updates []models.TierUpdate) error
}

// Importer runs one collection import.
type Importer interface {
	Run(ctx context.Context, username string, progress chan<- importer.ProgressUpdate) (*models.ImportSummary, error)
}

// ShelfHandler serves the shelf API: listing games, tier and played
// mutations, and triggering imports.
type ShelfHandler struct {
	games    GameStore
	importer Importer
}

// NewShelfHandler creates a handler over the given store and importer.
func NewShelfHandler(games GameStore, imp Importer) *ShelfHandler {
	return &ShelfHandler{games: games, importer: imp}
}

// Register wires all shelf routes into the router.
func (h *ShelfHandler) Register(router Router) {
	router.Handle(http.MethodPost, "/api/import", http.HandlerFunc(h.Import))
	router.Handle(http.MethodGet, "/api/games", http.HandlerFunc(h.ListGames))
	router.Handle(http.MethodPost, "/api/games/reorder", http.HandlerFunc(h.Reorder))
	router.Handle(http.MethodPatch, "/api/games/{id}/tier", http.HandlerFunc(h.SetTier))
	router.Handle(http.MethodPatch, "/api/games/{id}/played", http.HandlerFunc(h.SetPlayed))
}

// Import runs a synchronous collection import for the posted username.
func (h *ShelfHandler) Import(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	summary, err := h.importer.Run(r.Context(), body.Username, nil)
	if err != nil {
		writeError(w, importStatus(err), importer.UserMessage(err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":       true,
		"username": body.Username,
		"imported": summary.Created,
		"updated":  summary.Updated,
		"batches":  summary.Batches,
	})
}

// ListGames returns the whole shelf, optionally filtered by ?tier=.
func (h *ShelfHandler) ListGames(w http.ResponseWriter, r *http.Request) {
	var criteria map[string]any
	if tier := r.URL.Query().Get("tier"); tier != "" {
		if !models.ValidTier(tier) {
			writeError(w, http.StatusBadRequest, "Invalid tier")
			return
		}
		criteria = map[string]any{"tier": tier}
	}

	games, err := h.games.List(criteria)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not list games")
		return
	}
	if games == nil {
		games = []models.Game{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"games": games})
}

// Reorder applies a batch of tier/rank assignments from the tier board.
func (h *ShelfHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Updates []models.TierUpdate `json:"updates"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	for _, u := range body.Updates {
		if u.Tier != nil && !models.ValidTier(*u.Tier) {
			writeError(w, http.StatusBadRequest, "Invalid tier")
			return
		}
	}

	if err := h.games.ApplyTierUpdates(body.Updates); err != nil {
		if errors.Is(err, shared.ErrGameNotFound) {
			writeError(w, http.StatusNotFound, "Game not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Could not reorder games")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// SetTier assigns or clears one game's tier.
func (h *ShelfHandler) SetTier(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var body struct {
		Tier *string `json:"tier"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if body.Tier != nil && !models.ValidTier(*body.Tier) {
		writeError(w, http.StatusBadRequest, "Invalid tier")
		return
	}

	if err := h.games.SetTier(id, body.Tier); err != nil {
		if errors.Is(err, shared.ErrGameNotFound) {
			writeError(w, http.StatusNotFound, "Game not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Could not update tier")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// SetPlayed flips one game's played flag.
func (h *ShelfHandler) SetPlayed(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var body struct {
		Played *bool `json:"played"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Played == nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.games.SetPlayed(id, *body.Played); err != nil {
		if errors.Is(err, shared.ErrGameNotFound) {
			writeError(w, http.StatusNotFound, "Game not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Could not update played status")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// importStatus maps an import failure to its HTTP status.
func importStatus(err error) int {
	switch {
	case errors.Is(err, shared.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, shared.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, shared.ErrTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, shared.ErrUnavailable), errors.Is(err, shared.ErrDetailFetch):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}
