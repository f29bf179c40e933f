//go:build e2e && unix

package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

// establishment is the directory record served by the fake API
type establishment struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Address       string  `json:"address"`
	City          string  `json:"city"`
	State         string  `json:"state"`
	Type          string  `json:"type"`
	AverageRating float64 `json:"averageRating"`
	TotalRatings  int     `json:"totalRatings"`
}

var defaultEstablishments = []establishment{
	{ID: 1, Name: "Museu do Ipiranga", Address: "Parque da Independência", City: "São Paulo", State: "SP", Type: "Museu", AverageRating: 4.5, TotalRatings: 2},
	{ID: 2, Name: "Museu Nacional", Address: "Quinta da Boa Vista", City: "Rio de Janeiro", State: "RJ", Type: "Museu", AverageRating: 3, TotalRatings: 1},
	{ID: 3, Name: "Cinema Belas Artes", Address: "Rua da Consolação 2423", City: "São Paulo", State: "SP", Type: "Cinema"},
}

// FakeAPI is an in-process stand-in for the directory service
type FakeAPI struct {
	*httptest.Server

	mu       sync.Mutex
	searches []string // raw query strings of name searches, in arrival order
}

// NewFakeAPI starts the fake directory service
func NewFakeAPI() *FakeAPI {
	f := &FakeAPI{}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/establishments/search", f.search)
	mux.HandleFunc("GET /api/establishments/{id}", f.establishment)
	mux.HandleFunc("GET /api/reviews/establishment/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []map[string]any{
			{"id": 10, "userName": "Ana", "rating": 5, "comment": "Ramp at the side entrance", "hasRamp": true},
		})
	})
	mux.HandleFunc("GET /api/reviews/establishment/{id}/accessibility", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]bool{"hasRamp": true, "hasElevator": true})
	})
	f.Server = httptest.NewServer(mux)
	return f
}

// Searches returns the query strings of every search by name received so far
func (f *FakeAPI) Searches() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.searches...)
}

func (f *FakeAPI) search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Has("name") {
		f.mu.Lock()
		f.searches = append(f.searches, r.URL.RawQuery)
		f.mu.Unlock()
	}

	// the home screen's top rated list stays empty so it never matches suggestion text
	if !q.Has("name") && q.Get("sortBy") == "averageRating" {
		writeJSON(w, map[string]any{"content": []establishment{}, "totalElements": 0, "totalPages": 0})
		return
	}
	name := strings.ToLower(q.Get("name"))
	content := []establishment{}
	for _, e := range defaultEstablishments {
		if name != "" && !strings.Contains(strings.ToLower(e.Name), name) {
			continue
		}
		if st := q.Get("state"); st != "" && e.State != st {
			continue
		}
		content = append(content, e)
	}
	size, _ := strconv.Atoi(q.Get("size"))
	if size > 0 && len(content) > size {
		content = content[:size]
	}
	writeJSON(w, map[string]any{
		"content":       content,
		"totalElements": len(content),
		"totalPages":    1,
		"size":          size,
		"number":        0,
	})
}

func (f *FakeAPI) establishment(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
	for _, e := range defaultEstablishments {
		if e.ID == id {
			writeJSON(w, e)
			return
		}
	}
	w.WriteHeader(http.StatusNotFound)
	writeJSON(w, map[string]string{"message": "Establishment not found"})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// CreateTestWorkspace creates an isolated home with a config pointing at api
func (tf *TUITestFramework) CreateTestWorkspace(api *FakeAPI) (string, error) {
	workspace, err := os.MkdirTemp("", "avaliaccess-e2e-*")
	if err != nil {
		return "", fmt.Errorf("failed to create workspace: %w", err)
	}
	tf.workspace = workspace

	config := fmt.Sprintf(`version = 1
api_url = %q
log_file = %q
log_level = "debug"
token_file = %q

[search]
debounce_ms = 300
min_query_length = 2
suggestion_page_size = 10
listing_page_size = 12
request_timeout_ms = 5000

[ui]
mouse = false
alt_screen = true
`, api.URL, filepath.Join(workspace, "avaliaccess.log"), filepath.Join(workspace, "session.json"))

	tf.config = filepath.Join(workspace, "config.toml")
	if err := os.WriteFile(tf.config, []byte(config), 0644); err != nil {
		return "", fmt.Errorf("failed to write config: %w", err)
	}
	return workspace, nil
}
