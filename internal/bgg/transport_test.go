package bgg

import (
	"errors"
	"net/http"
	"testing"
	"time"

	tu "github.com/bggtools/shelfsync/internal/testing"
)

func doGet(t *testing.T, rt http.RoundTripper) (*http.Response, error) {
	t.Helper()
	client := newPacedClient(time.Millisecond, time.Millisecond, 2*time.Millisecond, rt)
	return client.Get("http://bgg.test/xmlapi2/collection?username=alice")
}

func TestPacedClient(t *testing.T) {
	t.Run("retries transient server errors", func(t *testing.T) {
		rt := &tu.ScriptedRoundTripper{Script: []tu.Scripted{
			{Status: http.StatusServiceUnavailable},
			{Status: http.StatusOK, Body: "<items/>"},
		}}

		resp, err := doGet(t, rt)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Errorf("status = %d, want 200", resp.StatusCode)
		}
		if rt.Calls() != 2 {
			t.Errorf("calls = %d, want 2", rt.Calls())
		}
	})

	t.Run("returns the last response once retries are exhausted", func(t *testing.T) {
		rt := &tu.ScriptedRoundTripper{Script: []tu.Scripted{
			{Status: http.StatusServiceUnavailable},
		}}

		resp, err := doGet(t, rt)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusServiceUnavailable {
			t.Errorf("status = %d, want 503", resp.StatusCode)
		}
		if want := maxRetries + 1; rt.Calls() != want {
			t.Errorf("calls = %d, want %d", rt.Calls(), want)
		}
	})

	t.Run("does not retry not found", func(t *testing.T) {
		rt := &tu.ScriptedRoundTripper{Script: []tu.Scripted{
			{Status: http.StatusNotFound},
		}}

		resp, err := doGet(t, rt)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		defer resp.Body.Close()

		if rt.Calls() != 1 {
			t.Errorf("calls = %d, want 1", rt.Calls())
		}
	})

	t.Run("does not retry accepted", func(t *testing.T) {
		rt := &tu.ScriptedRoundTripper{Script: []tu.Scripted{
			{Status: http.StatusAccepted},
		}}

		resp, err := doGet(t, rt)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		defer resp.Body.Close()

		if rt.Calls() != 1 {
			t.Errorf("calls = %d, want 1", rt.Calls())
		}
	})

	t.Run("transport errors surface without retry", func(t *testing.T) {
		broken := errors.New("connection reset")
		rt := &tu.ScriptedRoundTripper{Script: []tu.Scripted{
			{Err: broken},
		}}

		if _, err := doGet(t, rt); err == nil {
			t.Fatal("expected error from broken transport")
		}
		if rt.Calls() != 1 {
			t.Errorf("calls = %d, want 1", rt.Calls())
		}
	})
}
