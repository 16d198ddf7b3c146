package spectate

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Philser/roguelike/internal/logger"
	"github.com/Philser/roguelike/internal/store"
)

// memStore is an in-memory store.Store, newest record last.
type memStore struct {
	recs []store.RunRecord
	err  error
}

func (m *memStore) Save(rec store.RunRecord) error {
	m.recs = append(m.recs, rec)
	return nil
}

func (m *memStore) Recent(n int) ([]store.RunRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []store.RunRecord
	for i := len(m.recs) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, m.recs[i])
	}
	return out, nil
}

func (m *memStore) Get(id string) (store.RunRecord, error) {
	for _, r := range m.recs {
		if r.ID == id {
			return r, nil
		}
	}
	return store.RunRecord{}, store.ErrNotFound
}

func (m *memStore) Close() error { return nil }

func serve(t *testing.T, runs store.Store, target string) *httptest.ResponseRecorder {
	t.Helper()
	router := NewRouter(NewHub(logger.Discard()), runs)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestRunsEndpoint(t *testing.T) {
	runs := &memStore{}
	for _, id := range []string{"a", "b", "c"} {
		runs.Save(store.RunRecord{ID: id, Turns: len(id)})
	}

	resp := serve(t, runs, "/runs?limit=2")
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d", resp.Code)
	}
	var got []store.RunRecord
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].ID != "c" || got[1].ID != "b" {
		t.Errorf("runs = %+v", got)
	}
}

func TestRunsEndpointErrors(t *testing.T) {
	runs := &memStore{recs: []store.RunRecord{{ID: "a"}}}
	cases := []struct {
		name   string
		store  store.Store
		target string
		want   int
	}{
		{"bad limit", runs, "/runs?limit=x", http.StatusBadRequest},
		{"zero limit", runs, "/runs?limit=0", http.StatusBadRequest},
		{"missing run", runs, "/runs/zzz", http.StatusNotFound},
		{"broken store", &memStore{err: errors.New("disk gone")}, "/runs", http.StatusInternalServerError},
		{"found", runs, "/runs/a", http.StatusOK},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if resp := serve(t, c.store, c.target); resp.Code != c.want {
				t.Errorf("status = %d, want %d", resp.Code, c.want)
			}
		})
	}
}

func TestEmptyHistoryIsAnEmptyList(t *testing.T) {
	resp := serve(t, &memStore{}, "/runs")
	if body := resp.Body.String(); body != "[]\n" {
		t.Errorf("body = %q", body)
	}
}

func TestHealthAndNoHistoryRoutes(t *testing.T) {
	if resp := serve(t, nil, "/health"); resp.Code != http.StatusOK || resp.Body.String() != "ok" {
		t.Errorf("health = %d %q", resp.Code, resp.Body.String())
	}
	if resp := serve(t, nil, "/runs"); resp.Code != http.StatusNotFound {
		t.Errorf("/runs without a store = %d", resp.Code)
	}
}
