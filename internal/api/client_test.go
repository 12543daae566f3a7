package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordmap/wordmap/internal/conceptgraph"
	"github.com/wordmap/wordmap/internal/deck"
)

// fakeAPI is an in-memory persistence API.
type fakeAPI struct {
	mu     sync.Mutex
	nodes  []conceptgraph.Node
	edges  []conceptgraph.Edge
	decks  []deck.Resolved
	nextID int
	fail   int // status to answer every request with, 0 for none
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		nodes: []conceptgraph.Node{
			{ID: 3, Label: "cat", Details: "feline"},
			{ID: 7, Label: "dog", Details: "canine"},
			{ID: 9, Label: "cow", Details: "bovine"},
		},
		edges:  []conceptgraph.Edge{{From: 3, To: 7}, {From: 7, To: 9}},
		nextID: 1,
	}
}

func (f *fakeAPI) setFail(status int) {
	f.mu.Lock()
	f.fail = status
	f.mu.Unlock()
}

func (f *fakeAPI) resolve(ids []int) []conceptgraph.Node {
	var words []conceptgraph.Node
	for _, n := range f.nodes {
		for _, id := range ids {
			if n.ID == id {
				words = append(words, n)
			}
		}
	}
	return words
}

func (f *fakeAPI) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			f.mu.Lock()
			status := f.fail
			f.mu.Unlock()
			if status != 0 {
				http.Error(w, "backend unavailable", status)
				return
			}
			next.ServeHTTP(w, req)
		})
	})

	r.Get("/api/data", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, conceptgraph.Document{Nodes: f.nodes, Edges: f.edges})
	})
	r.Get("/api/flashcards", func(w http.ResponseWriter, _ *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, http.StatusOK, f.decks)
	})
	r.Post("/api/flashcards", func(w http.ResponseWriter, req *http.Request) {
		var body deck.Request
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		d := deck.Resolved{ID: f.nextID, Name: body.Name, Words: f.resolve(body.IDs)}
		f.nextID++
		f.decks = append(f.decks, d)
		writeJSON(w, http.StatusCreated, d)
	})
	r.Put("/api/flashcards/{id}/content", func(w http.ResponseWriter, req *http.Request) {
		id, _ := strconv.Atoi(chi.URLParam(req, "id"))
		var body deck.Request
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		for i := range f.decks {
			if f.decks[i].ID == id {
				f.decks[i].Name = body.Name
				f.decks[i].Words = f.resolve(body.IDs)
				writeJSON(w, http.StatusOK, f.decks[i])
				return
			}
		}
		http.Error(w, "not found", http.StatusNotFound)
	})
	r.Delete("/api/flashcards/{id}", func(w http.ResponseWriter, req *http.Request) {
		id, _ := strconv.Atoi(chi.URLParam(req, "id"))
		f.mu.Lock()
		defer f.mu.Unlock()
		for i := range f.decks {
			if f.decks[i].ID == id {
				f.decks = append(f.decks[:i], f.decks[i+1:]...)
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		http.Error(w, "not found", http.StatusNotFound)
	})
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func setup(t *testing.T) (*fakeAPI, *Client) {
	t.Helper()
	f := newFakeAPI()
	ts := httptest.NewServer(f.routes())
	t.Cleanup(ts.Close)

	c, err := New(ts.URL, WithTimeout(2*time.Second))
	require.NoError(t, err)
	return f, c
}

func TestNew_RejectsBadURL(t *testing.T) {
	_, err := New("ftp://example.com")
	assert.Error(t, err)
	_, err = New("://nope")
	assert.Error(t, err)

	c, err := New("http://127.0.0.1:5000/")
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:5000", c.BaseURL())
}

func TestGraph(t *testing.T) {
	_, c := setup(t)
	g, err := c.Graph(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, g.Len())

	connected := g.Connected(7)
	require.Len(t, connected, 2)
	assert.Equal(t, 3, connected[0].ID)
	assert.Equal(t, 9, connected[1].ID)
}

func TestCreateListRoundTrip(t *testing.T) {
	_, c := setup(t)
	ctx := context.Background()

	created, err := c.CreateDeck(ctx, deck.Request{IDs: []int{3, 7, 9}, Name: "Set A"})
	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)
	assert.Equal(t, "Set A", created.Name)
	assert.Equal(t, []int{3, 7, 9}, created.IDs())

	decks, err := c.ListDecks(ctx)
	require.NoError(t, err)
	require.Len(t, decks, 1)
	assert.Equal(t, *created, decks[0])
	assert.Equal(t, []deck.Flashcard{
		{Front: "cat", Back: "feline"},
		{Front: "dog", Back: "canine"},
		{Front: "cow", Back: "bovine"},
	}, decks[0].Flashcards())
}

func TestUpdateAndDelete(t *testing.T) {
	_, c := setup(t)
	ctx := context.Background()

	created, err := c.CreateDeck(ctx, deck.Request{IDs: []int{3, 7}, Name: "Set A"})
	require.NoError(t, err)

	updated, err := c.UpdateDeck(ctx, created.ID, deck.Request{IDs: []int{7, 9}, Name: "Set B"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Set B", updated.Name)
	assert.Equal(t, []int{7, 9}, updated.IDs())

	require.NoError(t, c.DeleteDeck(ctx, created.ID))
	decks, err := c.ListDecks(ctx)
	require.NoError(t, err)
	assert.Empty(t, decks)

	err = c.DeleteDeck(ctx, created.ID)
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.True(t, se.NotFound())
	assert.True(t, IsNotFound(fmt.Errorf("wrapped: %w", err)))
	assert.Equal(t, http.MethodDelete, se.Method)
	assert.Equal(t, "/api/flashcards/1", se.Path)
}

func TestStatusError(t *testing.T) {
	f, c := setup(t)
	f.setFail(http.StatusInternalServerError)

	_, err := c.CreateDeck(context.Background(), deck.Request{IDs: []int{3, 7}, Name: "x"})
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
	assert.Equal(t, "backend unavailable", se.Body)
	assert.Equal(t, "POST /api/flashcards: 500 Internal Server Error: backend unavailable", se.Error())
	assert.False(t, IsNotFound(err))
	assert.False(t, IsNotFound(nil))
}

func TestLoadAll(t *testing.T) {
	_, c := setup(t)
	ctx := context.Background()
	_, err := c.CreateDeck(ctx, deck.Request{IDs: []int{3, 9}, Name: "Set A"})
	require.NoError(t, err)

	g, decks, err := c.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, g.Len())
	assert.Len(t, decks, 1)
}

func TestLoadAll_Failure(t *testing.T) {
	f, c := setup(t)
	f.setFail(http.StatusBadGateway)

	_, _, err := c.LoadAll(context.Background())
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusBadGateway, se.StatusCode)
}

func TestDecodeFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"nodes": [`))
	}))
	t.Cleanup(ts.Close)

	c, err := New(ts.URL)
	require.NoError(t, err)
	_, err = c.Graph(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode GET /api/data")
}

// The deck manager drives the client end to end: a failed submit keeps
// the selection, and a retry after the backend recovers succeeds.
func TestManagerSubmitThroughClient(t *testing.T) {
	f, c := setup(t)
	ctx := context.Background()

	g, err := c.Graph(ctx)
	require.NoError(t, err)
	m := deck.NewManager(c, deck.WithGraph(g))
	m.BeginCreate()
	for _, id := range []int{3, 7, 9} {
		m.ToggleSelection(id)
	}

	f.setFail(http.StatusServiceUnavailable)

	_, err = m.Submit(ctx, "Set A")
	var pe *deck.PersistenceError
	require.True(t, errors.As(err, &pe))
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, []int{3, 7, 9}, m.Snapshot().Selection)

	f.setFail(0)

	got, err := m.Submit(ctx, "Set A")
	require.NoError(t, err)
	assert.Equal(t, "Set A", got.Name)
	assert.Equal(t, []int{3, 7, 9}, got.IDs())
}
