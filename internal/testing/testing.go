// package testing contains shared testing utilities
package testing

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/bggtools/shelfsync/internal/models"
	"github.com/bggtools/shelfsync/internal/shared"
)

// Response builds an *http.Response with the given status and body.
func Response(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper returns the same response (or error) for every request.
type MockRoundTripper struct {
	Resp *http.Response
	Err  error
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.Resp, m.Err
}

// Scripted is one canned reply for a ScriptedRoundTripper.
type Scripted struct {
	Status int
	Body   string
	Err    error
}

// ScriptedRoundTripper replays a fixed sequence of responses, one per
// request, recording every request URL it sees. The last script entry
// repeats once the sequence is exhausted. Safe for concurrent use.
type ScriptedRoundTripper struct {
	Script []Scripted

	mu   sync.Mutex
	URLs []string
}

func (s *ScriptedRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	s.mu.Lock()
	idx := len(s.URLs)
	s.URLs = append(s.URLs, req.URL.String())
	s.mu.Unlock()

	if len(s.Script) == 0 {
		return nil, fmt.Errorf("no scripted responses")
	}
	if idx >= len(s.Script) {
		idx = len(s.Script) - 1
	}

	reply := s.Script[idx]
	if reply.Err != nil {
		return nil, reply.Err
	}
	return Response(reply.Status, reply.Body), nil
}

// Calls returns how many requests the transport has served.
func (s *ScriptedRoundTripper) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.URLs)
}

// MemoryStore is an in-memory test double for importer.Store. Games are
// kept in insertion order; updates apply the same field keys the real
// repository accepts.
type MemoryStore struct {
	Games   []*models.Game
	nextID  int
	Creates int
	Updates int
}

func (m *MemoryStore) List(criteria map[string]any) ([]models.Game, error) {
	out := make([]models.Game, 0, len(m.Games))
	for _, g := range m.Games {
		out = append(out, *g)
	}
	return out, nil
}

func (m *MemoryStore) Create(game *models.Game) error {
	m.nextID++
	game.ID = fmt.Sprintf("game-%d", m.nextID)
	stored := *game
	m.Games = append(m.Games, &stored)
	m.Creates++
	return nil
}

func (m *MemoryStore) Update(id string, fields map[string]any) error {
	game := m.find(id)
	if game == nil {
		return shared.ErrGameNotFound
	}
	for key, value := range fields {
		switch key {
		case "name":
			game.Name = value.(string)
		case "bgg_id":
			switch v := value.(type) {
			case int64:
				game.BGGID = &v
			case *int64:
				game.BGGID = v
			case nil:
				game.BGGID = nil
			}
		case "year_published":
			game.YearPublished = value.(*int)
		case "min_players":
			game.MinPlayers = value.(*int)
		case "max_players":
			game.MaxPlayers = value.(*int)
		case "playing_time":
			game.PlayingTime = value.(*int)
		case "thumbnail_url":
			game.ThumbnailURL = value.(*string)
		case "played":
			game.Played = value.(bool)
		default:
			return fmt.Errorf("unsupported update field: %s", key)
		}
	}
	m.Updates++
	return nil
}

// Get returns the stored game with the given id, or nil.
func (m *MemoryStore) Get(id string) *models.Game {
	return m.find(id)
}

func (m *MemoryStore) find(id string) *models.Game {
	for _, g := range m.Games {
		if g.ID == id {
			return g
		}
	}
	return nil
}

// MemoryRunRecorder collects import run records in memory.
type MemoryRunRecorder struct {
	Runs []models.ImportRun
}

func (m *MemoryRunRecorder) Create(run *models.ImportRun) error {
	run.ID = fmt.Sprintf("run-%d", len(m.Runs)+1)
	m.Runs = append(m.Runs, *run)
	return nil
}
