// Package archivetest provides an in-memory fake backuper archive
// server for tests. It implements the client-facing HTTP contract
// (submit, retrieve, check, list, repair) without any erasure coding:
// submitted bytes are kept whole and shard hashes are derived
// deterministically from them.
package archivetest

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
)

type entry struct {
	data   []byte
	lmod   time.Time
	hashes []string
}

// Server is a fake archive reachable over a real HTTP listener.
type Server struct {
	DataShards   int
	ParityShards int

	mu    sync.Mutex
	files map[string]*entry
	ts    *httptest.Server
}

// New starts a fake archive with 2 data and 1 parity shard. Callers must
// Close it.
func New() *Server {
	s := &Server{
		DataShards:   2,
		ParityShards: 1,
		files:        make(map[string]*entry),
	}

	r := chi.NewRouter()
	r.Post("/submit_data", s.handleSubmit)
	r.Get("/retrieve_data/{name}", s.handleRetrieve)
	r.Get("/check_data/{name}", s.handleCheck)
	r.Get("/list_data", s.handleList)
	r.Get("/repair_data/{name}", s.handleRepair)

	s.ts = httptest.NewServer(r)
	return s
}

// URL returns the base address of the fake archive.
func (s *Server) URL() string {
	return s.ts.URL
}

// Close shuts the listener down.
func (s *Server) Close() {
	s.ts.Close()
}

// Put seeds a file directly, bypassing the submit endpoint.
func (s *Server) Put(name string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[name] = &entry{
		data:   append([]byte(nil), data...),
		lmod:   time.Now().UTC(),
		hashes: s.shardHashes(data),
	}
}

// Content returns the stored bytes for name, or nil when absent.
func (s *Server) Content(name string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.files[name]
	if !ok {
		return nil
	}
	return append([]byte(nil), e.data...)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, "bad multipart form", http.StatusBadRequest)
		return
	}

	name := r.FormValue("filename")
	if name == "" {
		http.Error(w, "missing filename", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file field", http.StatusBadRequest)
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "read upload", http.StatusInternalServerError)
		return
	}

	hashes := s.shardHashes(data)

	s.mu.Lock()
	s.files[name] = &entry{
		data:   data,
		lmod:   time.Now().UTC(),
		hashes: hashes,
	}
	s.mu.Unlock()

	writeJSON(w, map[string]any{
		"size":          int64(len(data)),
		"data_shards":   s.DataShards,
		"parity_shards": s.ParityShards,
		"hashes":        hashes,
	})
}

func (s *Server) handleRetrieve(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	s.mu.Lock()
	e, ok := s.files[name]
	s.mu.Unlock()

	if !ok {
		http.Error(w, "file not found", http.StatusBadRequest)
		return
	}
	_, _ = w.Write(e.data)
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	s.mu.Lock()
	e, ok := s.files[name]
	s.mu.Unlock()

	if !ok {
		http.Error(w, "file not found", http.StatusBadRequest)
		return
	}

	writeJSON(w, map[string]any{
		"name":   name,
		"lmod":   e.lmod.Format(time.RFC3339),
		"health": "healthy",
		"hashes": e.hashes,
	})
}

func (s *Server) handleList(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	names := make([]string, 0, len(s.files))
	for name := range s.files {
		names = append(names, name)
	}
	s.mu.Unlock()

	sort.Strings(names)
	writeJSON(w, map[string]any{"files": names})
}

func (s *Server) handleRepair(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	s.mu.Lock()
	_, ok := s.files[name]
	s.mu.Unlock()

	if !ok {
		http.Error(w, "file not found", http.StatusBadRequest)
		return
	}

	writeJSON(w, map[string]any{
		"name":   name,
		"status": "GOOD",
	})
}

// shardHashes derives one hex digest per data shard from nearly equal
// slices of data, plus one per parity shard from the whole content and
// the shard index. Deterministic, but not the real coder's output.
func (s *Server) shardHashes(data []byte) []string {
	hashes := make([]string, 0, s.DataShards+s.ParityShards)

	chunk := (len(data) + s.DataShards - 1) / s.DataShards
	if chunk == 0 {
		chunk = 1
	}
	for i := 0; i < s.DataShards; i++ {
		start := i * chunk
		if start > len(data) {
			start = len(data)
		}
		end := start + chunk
		if end > len(data) {
			end = len(data)
		}
		sum := sha256.Sum256(data[start:end])
		hashes = append(hashes, hex.EncodeToString(sum[:]))
	}

	for i := 0; i < s.ParityShards; i++ {
		h := sha256.New()
		h.Write(data)
		h.Write([]byte{byte(i)})
		hashes = append(hashes, hex.EncodeToString(h.Sum(nil)))
	}

	return hashes
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
