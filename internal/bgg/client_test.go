package bgg

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/bggtools/shelfsync/internal/shared"
	tu "github.com/bggtools/shelfsync/internal/testing"
)

func newTestClient(rt http.RoundTripper) *Client {
	return NewClient(ClientOpts{
		BaseURL:      "http://bgg.test/xmlapi2",
		Transport:    rt,
		MinInterval:  time.Millisecond,
		RetryWaitMin: time.Millisecond,
		RetryWaitMax: 2 * time.Millisecond,
		BatchSize:    20,
		BatchDelay:   time.Millisecond,
		PollDelay:    time.Millisecond,
		PollDelayCap: 4 * time.Millisecond,
	})
}

func collectionBody(ids ...int64) string {
	var b strings.Builder
	b.WriteString("<items>")
	for _, id := range ids {
		fmt.Fprintf(&b, `<item objecttype="thing" objectid="%d" subtype="boardgame"/>`, id)
	}
	b.WriteString("</items>")
	return b.String()
}

func thingBody(ids ...int64) string {
	var b strings.Builder
	b.WriteString("<items>")
	for _, id := range ids {
		fmt.Fprintf(&b, `<item id="%d"><name type="primary" value="Game %d"/></item>`, id, id)
	}
	b.WriteString("</items>")
	return b.String()
}

func TestFetchCollection(t *testing.T) {
	t.Run("returns ids for a ready collection", func(t *testing.T) {
		rt := &tu.ScriptedRoundTripper{Script: []tu.Scripted{
			{Status: http.StatusOK, Body: collectionBody(174430, 224517)},
		}}

		ids, err := newTestClient(rt).FetchCollection(context.Background(), "alice")
		if err != nil {
			t.Fatalf("FetchCollection() error = %v", err)
		}
		if len(ids) != 2 || ids[0] != 174430 || ids[1] != 224517 {
			t.Errorf("ids = %v, want [174430 224517]", ids)
		}

		url := rt.URLs[0]
		for _, part := range []string{"username=alice", "own=1", "subtype=boardgame"} {
			if !strings.Contains(url, part) {
				t.Errorf("request url %q missing %q", url, part)
			}
		}
	})

	t.Run("polls while the collection is being prepared", func(t *testing.T) {
		rt := &tu.ScriptedRoundTripper{Script: []tu.Scripted{
			{Status: http.StatusAccepted},
			{Status: http.StatusAccepted},
			{Status: http.StatusOK, Body: collectionBody(42)},
		}}

		ids, err := newTestClient(rt).FetchCollection(context.Background(), "alice")
		if err != nil {
			t.Fatalf("FetchCollection() error = %v", err)
		}
		if len(ids) != 1 || ids[0] != 42 {
			t.Errorf("ids = %v, want [42]", ids)
		}
		if rt.Calls() != 3 {
			t.Errorf("calls = %d, want 3", rt.Calls())
		}
	})

	t.Run("gives up when the collection never becomes ready", func(t *testing.T) {
		rt := &tu.ScriptedRoundTripper{Script: []tu.Scripted{
			{Status: http.StatusAccepted},
		}}

		client := NewClient(ClientOpts{
			BaseURL:         "http://bgg.test/xmlapi2",
			Transport:       rt,
			MinInterval:     time.Millisecond,
			PollDelay:       time.Millisecond,
			PollDelayCap:    2 * time.Millisecond,
			MaxPollAttempts: 3,
		})

		_, err := client.FetchCollection(context.Background(), "alice")
		if !errors.Is(err, shared.ErrTimeout) {
			t.Fatalf("error = %v, want ErrTimeout", err)
		}
		if rt.Calls() != 3 {
			t.Errorf("calls = %d, want 3", rt.Calls())
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		rt := &tu.ScriptedRoundTripper{Script: []tu.Scripted{
			{Status: http.StatusNotFound},
		}}

		_, err := newTestClient(rt).FetchCollection(context.Background(), "nobody")
		if !errors.Is(err, shared.ErrUserNotFound) {
			t.Fatalf("error = %v, want ErrUserNotFound", err)
		}
	})

	t.Run("persistent server errors become unavailable", func(t *testing.T) {
		rt := &tu.ScriptedRoundTripper{Script: []tu.Scripted{
			{Status: http.StatusServiceUnavailable},
		}}

		_, err := newTestClient(rt).FetchCollection(context.Background(), "alice")
		if !errors.Is(err, shared.ErrUnavailable) {
			t.Fatalf("error = %v, want ErrUnavailable", err)
		}
	})

	t.Run("blank username is rejected before any request", func(t *testing.T) {
		rt := &tu.ScriptedRoundTripper{Script: []tu.Scripted{
			{Status: http.StatusOK, Body: collectionBody()},
		}}

		_, err := newTestClient(rt).FetchCollection(context.Background(), "   ")
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Fatalf("error = %v, want ErrInvalidInput", err)
		}
		if rt.Calls() != 0 {
			t.Errorf("calls = %d, want 0", rt.Calls())
		}
	})
}

func TestFetchThings(t *testing.T) {
	t.Run("batches ids in order", func(t *testing.T) {
		ids := make([]int64, 45)
		for i := range ids {
			ids[i] = int64(i + 1)
		}

		rt := &tu.ScriptedRoundTripper{Script: []tu.Scripted{
			{Status: http.StatusOK, Body: thingBody(ids[:20]...)},
			{Status: http.StatusOK, Body: thingBody(ids[20:40]...)},
			{Status: http.StatusOK, Body: thingBody(ids[40:]...)},
		}}

		var steps []int
		things, batches, err := newTestClient(rt).FetchThings(context.Background(), ids, func(step, total int) {
			if total != 3 {
				t.Errorf("total = %d, want 3", total)
			}
			steps = append(steps, step)
		})
		if err != nil {
			t.Fatalf("FetchThings() error = %v", err)
		}

		if batches != 3 {
			t.Errorf("batches = %d, want 3", batches)
		}
		if len(things) != 45 {
			t.Errorf("got %d things, want 45", len(things))
		}
		if len(steps) != 3 || steps[0] != 1 || steps[2] != 3 {
			t.Errorf("steps = %v, want [1 2 3]", steps)
		}

		if !strings.Contains(rt.URLs[0], "id=1,") || !strings.Contains(rt.URLs[0], ",20&") {
			t.Errorf("first batch url = %q, want ids 1..20", rt.URLs[0])
		}
		if !strings.Contains(rt.URLs[2], "id=41,") {
			t.Errorf("last batch url = %q, want ids 41..45", rt.URLs[2])
		}
		for _, url := range rt.URLs {
			if !strings.Contains(url, "stats=1") {
				t.Errorf("url %q missing stats=1", url)
			}
		}
	})

	t.Run("empty id list issues no requests", func(t *testing.T) {
		rt := &tu.ScriptedRoundTripper{}

		things, batches, err := newTestClient(rt).FetchThings(context.Background(), nil, nil)
		if err != nil {
			t.Fatalf("FetchThings() error = %v", err)
		}
		if things != nil || batches != 0 {
			t.Errorf("got (%v, %d), want (nil, 0)", things, batches)
		}
		if rt.Calls() != 0 {
			t.Errorf("calls = %d, want 0", rt.Calls())
		}
	})

	t.Run("a failed batch aborts the rest", func(t *testing.T) {
		ids := make([]int64, 45)
		for i := range ids {
			ids[i] = int64(i + 1)
		}

		rt := &tu.ScriptedRoundTripper{Script: []tu.Scripted{
			{Status: http.StatusOK, Body: thingBody(ids[:20]...)},
			{Status: http.StatusNotFound},
		}}

		_, _, err := newTestClient(rt).FetchThings(context.Background(), ids, nil)
		if !errors.Is(err, shared.ErrDetailFetch) {
			t.Fatalf("error = %v, want ErrDetailFetch", err)
		}
		if rt.Calls() != 2 {
			t.Errorf("calls = %d, want 2", rt.Calls())
		}
	})
}
