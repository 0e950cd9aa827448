// Package e2e holds the test specifications: one file per feature
// area, each composing the client wrapper, the fixture corpus, the
// assertion helpers and the schema registry.
//
// By default every test runs against an in-process API double. Set
// DUMMYJSON_BASE_URL to point the whole suite at a live deployment.
package e2e

import (
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/hasmiknersesyan/DummyJSON/internal/client"
	"github.com/hasmiknersesyan/DummyJSON/internal/config"
	"github.com/hasmiknersesyan/DummyJSON/internal/fixtures"
	"github.com/hasmiknersesyan/DummyJSON/internal/mockapi"
)

// newClient returns a client for the target under test. Each test
// owns an isolated client (and, in mock mode, an isolated server).
func newClient(t *testing.T) *client.Client {
	t.Helper()

	if os.Getenv("DUMMYJSON_BASE_URL") != "" {
		return client.New(config.Load())
	}

	srv := httptest.NewServer(mockapi.New().Handler())
	t.Cleanup(srv.Close)
	return client.New(config.Config{BaseURL: srv.URL, Timeout: 5 * time.Second})
}

func corpus(t *testing.T) *fixtures.Data {
	t.Helper()
	d, err := fixtures.Load()
	if err != nil {
		t.Fatalf("load fixtures: %v", err)
	}
	return d
}
