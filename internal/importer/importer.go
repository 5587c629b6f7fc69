package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bggtools/shelfsync/internal/models"
	"github.com/bggtools/shelfsync/internal/shared"
)

// Catalog is the remote game catalog the importer pulls from.
// Implemented by bgg.Client.
type Catalog interface {
	// FetchCollection returns the deduplicated ids of games owned by username.
	FetchCollection(ctx context.Context, username string) ([]int64, error)

	// FetchThings fetches detail records for ids in sequential batches,
	// reporting each batch through onBatch and returning the number of
	// batch requests issued.
	FetchThings(ctx context.Context, ids []int64, onBatch func(step, total int)) ([]models.Thing, int, error)
}

// Store is the shelf the importer reconciles into.
// Implemented by repositories.GameRepository.
type Store interface {
	// List retrieves games matching criteria; nil lists the whole shelf.
	List(criteria map[string]any) ([]models.Game, error)

	// Create inserts a new game and assigns its id.
	Create(game *models.Game) error

	// Update applies a partial field update to one game.
	Update(id string, fields map[string]any) error
}

// RunRecorder keeps the history of import runs.
// Implemented by repositories.ImportRunRepository.
type RunRecorder interface {
	Create(run *models.ImportRun) error
}

// Engine orchestrates one import: poll the collection, fetch detail
// batches, reconcile once over the accumulated records, record the run.
type Engine struct {
	catalog Catalog
	store   Store
	runs    RunRecorder
	now     func() time.Time
}

// NewEngine creates an import engine. runs may be nil when no history
// should be kept.
func NewEngine(catalog Catalog, store Store, runs RunRecorder) *Engine {
	return &Engine{
		catalog: catalog,
		store:   store,
		runs:    runs,
		now:     time.Now,
	}
}

// Run imports the owned collection of username into the shelf and
// returns the summary, or a typed failure from the shared taxonomy.
// An empty collection succeeds immediately with all-zero counts and no
// detail requests. Store writes already committed by the reconciler are
// not rolled back on failure.
func (e *Engine) Run(ctx context.Context, username string, progress chan<- ProgressUpdate) (*models.ImportSummary, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", shared.ErrInvalidInput)
	}

	startedAt := e.now().UTC()

	summary, err := e.run(ctx, username, progress)
	e.record(username, summary, startedAt, err)
	if err != nil {
		return nil, err
	}
	return summary, nil
}

func (e *Engine) run(ctx context.Context, username string, progress chan<- ProgressUpdate) (*models.ImportSummary, error) {
	e.sendProgress(progress, pollUpdate(username))

	ids, err := e.catalog.FetchCollection(ctx, username)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return &models.ImportSummary{}, nil
	}

	things, batches, err := e.catalog.FetchThings(ctx, ids, func(step, total int) {
		e.sendProgress(progress, batchUpdate(step, total))
	})
	if err != nil {
		return nil, err
	}

	e.sendProgress(progress, reconcileUpdate(len(things)))

	existing, err := e.store.List(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to read shelf: %w", err)
	}

	created, updated, err := reconcile(e.store, existing, things)
	if err != nil {
		return nil, err
	}

	return &models.ImportSummary{Created: created, Updated: updated, Batches: batches}, nil
}

// record persists the run outcome. Recording failures are swallowed;
// history must never break an import that already finished.
func (e *Engine) record(username string, summary *models.ImportSummary, startedAt time.Time, runErr error) {
	if e.runs == nil {
		return
	}

	run := &models.ImportRun{
		Username:   username,
		Status:     models.RunSucceeded,
		StartedAt:  startedAt,
		FinishedAt: e.now().UTC(),
	}
	if summary != nil {
		run.Created = summary.Created
		run.Updated = summary.Updated
		run.Batches = summary.Batches
	}
	if runErr != nil {
		run.Status = models.RunFailed
		run.Error = runErr.Error()
	}

	_ = e.runs.Create(run)
}

// sendProgress sends a progress update through the channel without blocking.
func (e *Engine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// UserMessage converts an import failure into the single human-readable
// message shown to the user.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, shared.ErrInvalidInput):
		return "Please provide a BGG username."
	case errors.Is(err, shared.ErrUserNotFound):
		return "BGG user not found."
	case errors.Is(err, shared.ErrTimeout):
		return "BGG is still preparing the collection. Please try again shortly."
	case errors.Is(err, shared.ErrUnavailable):
		return "Could not fetch BGG collection right now."
	case errors.Is(err, shared.ErrDetailFetch):
		return "Could not fetch BGG game details."
	default:
		return "Import failed. Please try again."
	}
}
