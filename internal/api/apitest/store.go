// Package apitest provides an in-memory task store that speaks the
// dashboard's HTTP contract, for tests.
package apitest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/twiced-technology-gmbh/weightboard/internal/api"
	"github.com/twiced-technology-gmbh/weightboard/internal/date"
	"github.com/twiced-technology-gmbh/weightboard/internal/progress"
	"github.com/twiced-technology-gmbh/weightboard/internal/task"
)

// Request is one recorded call.
type Request struct {
	Method string
	Path   string
	Body   map[string]any
}

// Store is a scripted task store. Tasks get sequential numeric IDs.
type Store struct {
	mu       sync.Mutex
	tasks    []task.Task
	nextID   int
	requests []Request
	failRead bool

	// AutoTarget decides what /api/auto-50 does. Nil leaves tasks untouched.
	AutoTarget func(tasks []task.Task) []task.Task
	// Now is the store's clock for due-date normalization.
	Now func() time.Time
}

// NewStore returns a store seeded with tasks. Seed IDs are kept; new tasks
// continue after the highest numeric seed ID.
func NewStore(seed ...task.Task) *Store {
	s := &Store{nextID: 1, Now: time.Now}
	for _, t := range seed {
		if n, err := strconv.Atoi(t.ID.String()); err == nil && n >= s.nextID {
			s.nextID = n + 1
		}
		s.tasks = append(s.tasks, t)
	}
	return s
}

// Server starts an httptest server for the store. It is closed when the
// test ends.
func (s *Store) Server(t testing.TB) *httptest.Server {
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return srv
}

// Handler returns the store's HTTP handler.
func (s *Store) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+api.DefaultBasePath+api.PathTasks, s.handleTasks)
	mux.HandleFunc("POST "+api.DefaultBasePath+"/{op}", s.handleMutation)
	return mux
}

// FailReads makes /api/tasks answer with a non-JSON error page.
func (s *Store) FailReads(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failRead = fail
}

// Requests returns the recorded calls in arrival order.
func (s *Store) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Mutations returns recorded POST calls only.
func (s *Store) Mutations() []Request {
	var out []Request
	for _, r := range s.Requests() {
		if r.Method == http.MethodPost {
			out = append(out, r)
		}
	}
	return out
}

// Tasks returns a copy of the store's tasks.
func (s *Store) Tasks() []task.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]task.Task(nil), s.tasks...)
}

// Snapshot builds the dashboard payload for the current tasks.
func (s *Store) Snapshot() task.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() task.Snapshot {
	tasks := append([]task.Task{}, s.tasks...)
	p := progress.Compute(tasks)

	interp := fmt.Sprintf("Progress is at %.1f%%.", p.Progress)
	if p.Progress >= 50 { //nolint:mnd // milestone
		interp += " You are in good shape!"
	} else {
		interp += " Focus on completing some tasks to reach the 50% milestone."
	}

	bars := make([]task.BarRow, 0, len(tasks))
	for _, t := range tasks {
		row := task.BarRow{Title: t.Title, RemainingWeight: t.Weight}
		if t.Completed {
			row = task.BarRow{Title: t.Title, CompletedWeight: t.Weight}
		}
		bars = append(bars, row)
	}

	return task.Snapshot{
		Tasks:          tasks,
		Progress:       p,
		Interpretation: interp,
		PieData: []task.PieSlice{
			{Name: "Completed", Value: p.CompletedWeight},
			{Name: "Remaining", Value: p.RemainingWeight},
		},
		BarData: bars,
	}
}

func (s *Store) handleTasks(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.requests = append(s.requests, Request{Method: r.Method, Path: r.URL.Path})
	fail := s.failRead
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if fail {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, "<html>store unavailable</html>")
		return
	}
	writeJSON(w, snap)
}

func (s *Store) handleMutation(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	data, _ := io.ReadAll(r.Body)
	if len(data) > 0 {
		_ = json.Unmarshal(data, &body)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, Request{Method: r.Method, Path: r.URL.Path, Body: body})

	switch r.PathValue("op") {
	case "add":
		s.tasks = append(s.tasks, task.Task{
			ID:      task.NewID(strconv.Itoa(s.nextID)),
			Title:   stringOr(body["title"], "Untitled"),
			DueDate: s.normalizeDue(stringOr(body["due_date"], "today")),
			Weight:  numberOr(body["weight"], 1),
		})
		s.nextID++
	case "edit":
		if i := s.indexLocked(body["id"]); i >= 0 {
			t := &s.tasks[i]
			t.Title = stringOr(body["title"], t.Title)
			t.DueDate = s.normalizeDue(stringOr(body["due_date"], t.DueDate))
			t.Weight = numberOr(body["weight"], t.Weight)
		}
	case "complete":
		if i := s.indexLocked(body["id"]); i >= 0 {
			s.tasks[i].Completed = !s.tasks[i].Completed
		}
	case "delete":
		if i := s.indexLocked(body["id"]); i >= 0 {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
		}
	case "auto-50":
		if s.AutoTarget != nil {
			s.tasks = s.AutoTarget(append([]task.Task(nil), s.tasks...))
		}
	default:
		http.NotFound(w, r)
		return
	}

	writeJSON(w, s.snapshotLocked())
}

func (s *Store) indexLocked(raw any) int {
	want := fmt.Sprint(raw)
	if f, ok := raw.(float64); ok {
		want = strconv.FormatFloat(f, 'f', -1, 64)
	}
	for i, t := range s.tasks {
		if t.ID.String() == want {
			return i
		}
	}
	return -1
}

func (s *Store) normalizeDue(due string) string {
	today := date.Today(s.Now)
	switch due {
	case "today":
		return today.String()
	case "tomorrow":
		return today.AddDays(1).String()
	}
	return due
}

func stringOr(v any, def string) string {
	if s, ok := v.(string); ok {
		return s
	}
	return def
}

func numberOr(v any, def float64) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case string:
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			return f
		}
	}
	return def
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
