package api_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/weightboard/internal/api"
	"github.com/twiced-technology-gmbh/weightboard/internal/api/apitest"
	"github.com/twiced-technology-gmbh/weightboard/internal/task"
)

func fixedNow() time.Time { return time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC) }

func newClient(t *testing.T, store *apitest.Store) *api.Client {
	t.Helper()
	store.Now = fixedNow
	srv := store.Server(t)
	c, err := api.New(srv.URL, "", api.WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	return c
}

func TestNew_RejectsBadURL(t *testing.T) {
	_, err := api.New("ftp://example.com", "")
	assert.Error(t, err)

	_, err = api.New("://nope", "")
	assert.Error(t, err)
}

func TestEndpoint(t *testing.T) {
	c, err := api.New("http://localhost:8000/", "")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000/api/tasks", c.Endpoint(api.PathTasks))

	c, err = api.New("http://localhost:8000", "/v2/")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000/v2/auto-50", c.Endpoint(api.PathAuto))
}

func TestTasks_DecodesSnapshot(t *testing.T) {
	store := apitest.NewStore(
		task.Task{ID: task.NewID("1"), Title: "a", DueDate: "2026-10-19", Weight: 2},
		task.Task{ID: task.NewID("2"), Title: "b", DueDate: "this-week", Weight: 3},
		task.Task{ID: task.NewID("3"), Title: "c", DueDate: "tomorrow", Weight: 5, Completed: true},
	)
	c := newClient(t, store)

	s, err := c.Tasks(context.Background())
	require.NoError(t, err)

	require.Len(t, s.Tasks, 3)
	assert.InDelta(t, 10, s.Progress.TotalWeight, 1e-9)
	assert.InDelta(t, 5, s.Progress.CompletedWeight, 1e-9)
	assert.InDelta(t, 50, s.Progress.CompletedWeight/s.Progress.TotalWeight*100, 1e-9)
	assert.Contains(t, s.Interpretation, "good shape")
}

func TestTasks_ErrorPageIsAnError(t *testing.T) {
	store := apitest.NewStore()
	store.FailReads(true)
	c := newClient(t, store)

	_, err := c.Tasks(context.Background())
	assert.Error(t, err)
}

func TestTasks_MissingFieldsIsMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"error": "boom"}`)
	}))
	t.Cleanup(srv.Close)

	c, err := api.New(srv.URL, "")
	require.NoError(t, err)

	_, err = c.Tasks(context.Background())
	assert.ErrorIs(t, err, api.ErrMalformedSnapshot)
}

func TestTasks_StatusCodeIgnoredWhenBodyIsASnapshot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = io.WriteString(w, `{"tasks": [], "progress": {"total_weight": 0}, "interpretation": "empty"}`)
	}))
	t.Cleanup(srv.Close)

	c, err := api.New(srv.URL, "")
	require.NoError(t, err)

	s, err := c.Tasks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "empty", s.Interpretation)
}

func TestMutations_SendContractBodies(t *testing.T) {
	store := apitest.NewStore(task.Task{ID: task.NewID("1"), Title: "a", DueDate: "this-week", Weight: 1})
	c := newClient(t, store)
	ctx := context.Background()

	require.NoError(t, c.Add(ctx, api.AddRequest{Title: "new", DueDate: "tomorrow", Weight: "4"}))
	require.NoError(t, c.Edit(ctx, api.EditRequest{ID: task.NewID("1"), Title: "renamed", DueDate: "today", Weight: "2"}))
	require.NoError(t, c.Complete(ctx, task.NewID("1")))
	require.NoError(t, c.Delete(ctx, task.NewID("2")))
	require.NoError(t, c.AutoTarget(ctx))

	reqs := store.Mutations()
	require.Len(t, reqs, 5)

	assert.Equal(t, "/api/add", reqs[0].Path)
	assert.Equal(t, map[string]any{"title": "new", "due_date": "tomorrow", "weight": "4"}, reqs[0].Body)
	assert.Equal(t, "/api/edit", reqs[1].Path)
	assert.Equal(t, map[string]any{"id": float64(1), "title": "renamed", "due_date": "today", "weight": "2"}, reqs[1].Body)
	assert.Equal(t, "/api/complete", reqs[2].Path)
	assert.Equal(t, map[string]any{"id": float64(1)}, reqs[2].Body)
	assert.Equal(t, "/api/delete", reqs[3].Path)
	assert.Equal(t, map[string]any{"id": float64(2)}, reqs[3].Body)
	assert.Equal(t, "/api/auto-50", reqs[4].Path)
	assert.Equal(t, map[string]any{}, reqs[4].Body)

	tasks := store.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "renamed", tasks[0].Title)
	assert.Equal(t, "2026-10-19", tasks[0].DueDate)
	assert.True(t, tasks[0].Completed)
}

func TestPost_SetsJSONContentType(t *testing.T) {
	var gotType string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusTeapot)
	}))
	t.Cleanup(srv.Close)

	c, err := api.New(srv.URL, "")
	require.NoError(t, err)

	require.NoError(t, c.Complete(context.Background(), task.NewID("abc")), "status codes are not inspected")
	assert.Equal(t, "application/json", gotType)
	assert.Equal(t, map[string]any{"id": "abc"}, gotBody)
}

func TestPost_NetworkErrorIsReturned(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := api.New(url, "")
	require.NoError(t, err)
	assert.Error(t, c.Delete(context.Background(), task.NewID("1")))
}
