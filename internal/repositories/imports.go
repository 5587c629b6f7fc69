package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/bggtools/shelfsync/internal/models"
	"github.com/bggtools/shelfsync/internal/shared"
)

const runSelect = `
	SELECT id, sequence, username, created_count, updated_count, batch_count,
	       status, error_message, started_at, finished_at
	FROM import_runs
`

// ImportRunRepository keeps the history of import invocations, one row
// per completed run.
type ImportRunRepository struct {
	db *sql.DB
}

// NewImportRunRepository creates a new ImportRunRepository with the given database connection
func NewImportRunRepository(db *sql.DB) *ImportRunRepository {
	return &ImportRunRepository{db: db}
}

// Create records a finished import run, assigning its id and sequence.
func (r *ImportRunRepository) Create(run *models.ImportRun) error {
	if err := run.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	sequence, err := NextSequence(r.db, "import_runs")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	run.ID = shared.GenerateID()
	run.Sequence = sequence

	var errorMessage any
	if run.Error != "" {
		errorMessage = run.Error
	}

	query := `
		INSERT INTO import_runs (id, sequence, username, created_count, updated_count,
		                         batch_count, status, error_message, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		run.ID,
		run.Sequence,
		run.Username,
		run.Created,
		run.Updated,
		run.Batches,
		run.Status,
		errorMessage,
		run.StartedAt,
		run.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert import run: %w", err)
	}

	return nil
}

// Get retrieves one run by id.
func (r *ImportRunRepository) Get(id string) (*models.ImportRun, error) {
	run, err := scanRun(r.db.QueryRow(runSelect+" WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shared.ErrRunNotFound
		}
		return nil, err
	}
	return run, nil
}

// List retrieves runs, newest first, optionally filtered by username.
func (r *ImportRunRepository) List(username string) ([]models.ImportRun, error) {
	query := runSelect
	var args []any
	if username != "" {
		query += " WHERE username = ?"
		args = append(args, username)
	}
	query += " ORDER BY sequence DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list import runs: %w", err)
	}
	defer rows.Close()

	var runs []models.ImportRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

func scanRun(row rowScanner) (*models.ImportRun, error) {
	var run models.ImportRun
	var errorMessage sql.NullString
	err := row.Scan(
		&run.ID,
		&run.Sequence,
		&run.Username,
		&run.Created,
		&run.Updated,
		&run.Batches,
		&run.Status,
		&errorMessage,
		&run.StartedAt,
		&run.FinishedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan import run: %w", err)
	}
	run.Error = errorMessage.String
	return &run, nil
}
