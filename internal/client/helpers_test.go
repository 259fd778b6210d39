package client_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/fivetwenty-io/harvest-client/pkg/harvest"
)

const (
	testUsername = "testuser"
	testPassword = "testpass"
	testToken    = "issued-token"
)

// fakeHarvest serves the subset of the Harvest API the client talks to.
type fakeHarvest struct {
	*httptest.Server

	// relative advertises root-relative URLs instead of absolute ones.
	relative bool
	// omitToken makes authentication succeed without returning a token.
	omitToken bool

	discoveries  atomic.Int32
	logins       atomic.Int32
	conceptLists atomic.Int32
	pingTimeout  atomic.Bool

	mutex  sync.Mutex
	tokens []string
}

type fakeOption func(*fakeHarvest)

func withRelativeLinks() fakeOption {
	return func(f *fakeHarvest) {
		f.relative = true
	}
}

func withoutToken() fakeOption {
	return func(f *fakeHarvest) {
		f.omitToken = true
	}
}

func newFakeHarvest(t *testing.T, opts ...fakeOption) *fakeHarvest {
	t.Helper()

	fake := &fakeHarvest{}
	for _, opt := range opts {
		opt(fake)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/", fake.handleRoot)
	mux.HandleFunc("GET /api/ping/", fake.handlePing)
	mux.HandleFunc("GET /api/categories/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []harvest.Category{{ID: 1, Name: "Demographics", Order: 1}})
	})
	mux.HandleFunc("GET /api/fields/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []harvest.Field{{ID: 2, Name: "MRN", AppName: "patients", ModelName: "patient", FieldName: "mrn"}})
	})
	mux.HandleFunc("GET /api/concepts/", fake.handleConcepts)
	mux.HandleFunc("GET /api/concepts/{id}/", fake.handleConcept)
	mux.HandleFunc("GET /api/contexts/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []harvest.Context{{ID: 1, Session: true}})
	})
	mux.HandleFunc("GET /api/contexts/{id}/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]interface{}{"id": 1, "session": r.PathValue("id") == "session"})
	})
	mux.HandleFunc("GET /api/views/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []harvest.View{{ID: 3}})
	})
	mux.HandleFunc("GET /api/views/{id}/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]interface{}{"id": 3, "name": "view " + r.PathValue("id")})
	})
	mux.HandleFunc("GET /api/queries/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []harvest.Query{{ID: 4, Name: "Mine"}})
	})
	mux.HandleFunc("GET /api/queries/public/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []harvest.Query{{ID: 5, Name: "Shared", Public: true}})
	})
	mux.HandleFunc("GET /api/queries/{id}/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]interface{}{"id": 4, "name": "query " + r.PathValue("id")})
	})
	mux.HandleFunc("GET /api/data/preview/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]interface{}{
			"item_name":        "patient",
			"item_name_plural": "patients",
			"limit":            20,
			"page":             1,
			"keys":             []map[string]interface{}{{"id": 2, "name": "MRN"}},
			"items":            []map[string]interface{}{{"pk": 1, "values": []interface{}{"A-1"}}},
		})
	})
	mux.HandleFunc("GET /api/data/export/{type}/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]interface{}{"format": r.PathValue("type"), "rows": []int{1, 2}})
	})
	mux.HandleFunc("GET /api/stats/counts/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []harvest.StatsCount{{AppName: "patients", ModelName: "patient", Count: 42}})
	})

	fake.Server = httptest.NewServer(fake.record(mux))
	t.Cleanup(fake.Close)

	return fake
}

// APIURL returns the base URL of the API.
func (f *fakeHarvest) APIURL() string {
	return f.URL + "/api/"
}

// Tokens returns the Api-Token header of every request received so far.
func (f *fakeHarvest) Tokens() []string {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	return append([]string(nil), f.tokens...)
}

func (f *fakeHarvest) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mutex.Lock()
		f.tokens = append(f.tokens, r.Header.Get("Api-Token"))
		f.mutex.Unlock()

		next.ServeHTTP(w, r)
	})
}

func (f *fakeHarvest) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/api/" {
		http.NotFound(w, r)

		return
	}

	prefix := f.URL
	if f.relative {
		prefix = ""
	}

	w.Header().Set("Link", strings.Join([]string{
		fmt.Sprintf(`<%s/api/ping/>; rel="ping"`, prefix),
		fmt.Sprintf(`<%s/api/categories/>; rel="categories"`, prefix),
		fmt.Sprintf(`<%s/api/fields/>; rel="fields"`, prefix),
		fmt.Sprintf(`<%s/api/concepts/>; rel="concepts"`, prefix),
		fmt.Sprintf(`<%s/api/contexts/>; rel="contexts"`, prefix),
		fmt.Sprintf(`<%s/api/views/>; rel="views"`, prefix),
		fmt.Sprintf(`<%s/api/queries/>; rel="queries"`, prefix),
		fmt.Sprintf(`<%s/api/queries/public/>; rel="public_queries"`, prefix),
		fmt.Sprintf(`<%s/api/data/preview/>; rel="preview"`, prefix),
		fmt.Sprintf(`<%s/api/stats/counts/>; rel="stats_counts"`, prefix),
	}, ", "))
	w.Header().Set("Link-Template", strings.Join([]string{
		fmt.Sprintf(`<%s/api/concepts/{id}/>; rel="concept"`, prefix),
		fmt.Sprintf(`<%s/api/contexts/{id}/>; rel="context"`, prefix),
		fmt.Sprintf(`<%s/api/views/{id}/>; rel="view"`, prefix),
		fmt.Sprintf(`<%s/api/queries/{id}/>; rel="query"`, prefix),
		fmt.Sprintf(`<%s/api/data/export/{type}/>; rel="export"`, prefix),
	}, ", "))

	if r.Method != http.MethodPost {
		f.discoveries.Add(1)
		writeJSON(w, map[string]string{"title": "Harvest"})

		return
	}

	f.logins.Add(1)

	var creds map[string]string

	err := json.NewDecoder(r.Body).Decode(&creds)
	if err != nil || creds["username"] != testUsername || creds["password"] != testPassword {
		w.WriteHeader(http.StatusUnauthorized)
		writeJSON(w, map[string]string{"message": "invalid credentials"})

		return
	}

	if f.omitToken {
		writeJSON(w, map[string]string{})

		return
	}

	writeJSON(w, map[string]string{"token": testToken})
}

func (f *fakeHarvest) handlePing(w http.ResponseWriter, r *http.Request) {
	if f.pingTimeout.Load() {
		writeJSON(w, map[string]string{"status": "timeout"})

		return
	}

	writeJSON(w, map[string]string{"status": "ok"})
}

func (f *fakeHarvest) handleConcepts(w http.ResponseWriter, r *http.Request) {
	f.conceptLists.Add(1)

	concepts := []harvest.Concept{
		{ID: 1, Name: "MRN", Queryable: true, Viewable: true},
		{ID: 2, Name: "Sex", Queryable: true, Viewable: false},
		{ID: 3, Name: "Notes", Queryable: false, Viewable: true},
		{ID: 4, Name: "Internal", Queryable: false, Viewable: false},
	}

	query := r.URL.Query().Get("query")
	if query == "" {
		writeJSON(w, concepts)

		return
	}

	matches := []harvest.Concept{}

	for _, concept := range concepts {
		if strings.Contains(strings.ToLower(concept.Name), strings.ToLower(query)) {
			matches = append(matches, concept)
		}
	}

	writeJSON(w, matches)
}

func (f *fakeHarvest) handleConcept(w http.ResponseWriter, r *http.Request) {
	if r.PathValue("id") != "1" {
		w.WriteHeader(http.StatusNotFound)
		writeJSON(w, map[string]string{"message": "not found"})

		return
	}

	writeJSON(w, harvest.Concept{ID: 1, Name: "MRN", Queryable: true, Viewable: true})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// blockingServer holds every request until release is closed.
type blockingServer struct {
	*httptest.Server

	hits atomic.Int32
}

func newBlockingServer(t *testing.T, release <-chan struct{}) *blockingServer {
	t.Helper()

	server := &blockingServer{}
	server.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		server.hits.Add(1)
		<-release

		w.Header().Set("Link", `</ping/>; rel="ping"`)
		writeJSON(w, map[string]string{})
	}))
	t.Cleanup(server.Close)

	return server
}

// transportSpy counts the round trips made through it.
type transportSpy struct {
	calls atomic.Int32
}

func (s *transportSpy) RoundTrip(req *http.Request) (*http.Response, error) {
	s.calls.Add(1)

	return http.DefaultTransport.RoundTrip(req)
}

// eventRecorder collects session events.
type eventRecorder struct {
	mutex  sync.Mutex
	events []harvest.SessionEvent
}

func (r *eventRecorder) OnSessionEvent(event harvest.SessionEvent) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.events = append(r.events, event)
}

func (r *eventRecorder) Types() []harvest.SessionEventType {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	types := make([]harvest.SessionEventType, 0, len(r.events))
	for _, event := range r.events {
		types = append(types, event.Type)
	}

	return types
}
