package api

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/presiyan-ivanov/floem/stream"
)

// Api serves the latest frame as JSON next to the static client.
type Api struct {
	mu     sync.RWMutex
	latest *stream.Frame
	mux    *http.ServeMux
}

// NewApi creates an Api serving static files from dir. An empty dir serves
// only the snapshot.
func NewApi(dir string) *Api {
	a := new(Api)
	a.mux = http.NewServeMux()
	a.mux.HandleFunc("/snapshot", a.handleSnapshot)
	if dir != "" {
		a.mux.Handle("/", http.FileServer(http.Dir(dir)))
	}
	return a
}

// Show stores f as the latest frame.
func (a *Api) Show(f *stream.Frame) error {
	a.mu.Lock()
	a.latest = f
	a.mu.Unlock()
	return nil
}

func (a *Api) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	a.mu.RLock()
	f := a.latest
	a.mu.RUnlock()
	if f == nil {
		f = stream.NewFrame()
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(f); err != nil {
		log.Printf("Snapshot: %v", err)
	}
}

// ServeHTTP implements http.Handler.
func (a *Api) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mux.ServeHTTP(w, r)
}

// Serve listens on addr until the server fails.
func (a *Api) Serve(addr string) error {
	log.Printf("Listening on %s...", addr)
	return http.ListenAndServe(addr, a)
}
