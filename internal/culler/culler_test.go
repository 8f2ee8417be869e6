package culler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/nikbrunner/bmpage/internal/culler"
	"github.com/nikbrunner/bmpage/internal/model"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {})
	mux.HandleFunc("/gone", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusGone)
	})
	mux.HandleFunc("/broken", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/get-only", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func bookmark(id, url string) model.Entry {
	return model.Entry{ID: id, Title: id, URL: url, Type: model.TypeBookmark}
}

func TestChecker_Check(t *testing.T) {
	srv := newServer(t)

	closed := httptest.NewServer(http.NotFoundHandler())
	closedURL := closed.URL
	closed.Close()

	entries := []model.Entry{
		{ID: "f1", Title: "Folder", Type: model.TypeFolder},
		bookmark("ok", srv.URL+"/ok"),
		bookmark("missing", srv.URL+"/missing"),
		bookmark("gone", srv.URL+"/gone"),
		bookmark("broken", srv.URL+"/broken"),
		bookmark("get-only", srv.URL+"/get-only"),
		bookmark("closed", closedURL),
	}

	var progress int32
	c := culler.NewChecker(culler.CheckerParams{Concurrency: 3})
	results := c.Check(context.Background(), entries, func(completed, total int) {
		atomic.AddInt32(&progress, 1)
		assert.Check(t, total == 6)
	})

	assert.Assert(t, is.Len(results, 6), "folders are skipped")
	assert.Equal(t, int(atomic.LoadInt32(&progress)), 6)

	want := map[string]culler.Status{
		"ok":       culler.Healthy,
		"missing":  culler.Dead,
		"gone":     culler.Dead,
		"broken":   culler.Unreachable,
		"get-only": culler.Healthy,
		"closed":   culler.Unreachable,
	}
	for _, r := range results {
		assert.Check(t, is.Equal(r.Status, want[r.Entry.ID]), "entry %s", r.Entry.ID)
	}

	dead := culler.DeadEntries(results)
	assert.Equal(t, len(dead), 2)
	assert.Equal(t, dead[0].ID, "missing")
	assert.Equal(t, dead[1].ID, "gone")
}

func TestChecker_ExcludedDomain(t *testing.T) {
	srv := newServer(t)

	c := culler.NewChecker(culler.CheckerParams{ExcludeDomains: []string{"127.0.0.1"}})
	results := c.Check(context.Background(), []model.Entry{bookmark("private", srv.URL+"/missing")}, nil)

	assert.Assert(t, is.Len(results, 1))
	assert.Equal(t, results[0].Status, culler.Unreachable)
	assert.Equal(t, results[0].Error, "Possibly private (auth required)")
}

func TestChecker_Cancelled(t *testing.T) {
	srv := newServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := culler.NewChecker(culler.CheckerParams{})
	results := c.Check(ctx, []model.Entry{bookmark("ok", srv.URL+"/ok")}, nil)

	assert.Equal(t, results[0].Status, culler.Unreachable)
	assert.Equal(t, results[0].Error, "Cancelled")
}

func TestChecker_NoBookmarks(t *testing.T) {
	c := culler.NewChecker(culler.CheckerParams{})
	assert.Check(t, is.Nil(c.Check(context.Background(), nil, nil)))
}
