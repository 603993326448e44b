// Package assets loads glTF/GLB scene assets in the background and hands out
// handles that systems can poll.
package assets

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/qmuntal/gltf"
	"golang.org/x/sync/singleflight"
)

//go:generate go tool stringer -type=LoadState -output=loadstate_string.go

// LoadState is the lifecycle of a handle.
type LoadState int

const (
	NotLoaded LoadState = iota
	Loading
	Loaded
	Failed
)

// Handle refers to one labeled asset. Handles for the same path and label are
// equal. The zero Handle refers to nothing.
type Handle struct {
	id    uint32
	path  string
	label string
}

// Path returns the file part of the asset path.
func (h Handle) Path() string { return h.path }

// Label returns the sub-asset label, or "" for the whole file.
func (h Handle) Label() string { return h.label }

// IsZero reports whether the handle refers to nothing.
func (h Handle) IsZero() bool { return h.id == 0 }

func (h Handle) String() string {
	if h.label == "" {
		return h.path
	}
	return h.path + "#" + h.label
}

// Opener reads and parses a glTF or GLB file.
type Opener func(path string) (*gltf.Document, error)

type entry struct {
	state LoadState
	scene *Scene
	err   error
}

// Server loads scene assets relative to a root directory. It is safe for
// concurrent use.
type Server struct {
	root   string
	open   Opener
	logger *slog.Logger

	mu      sync.Mutex
	handles map[string]Handle
	entries map[uint32]*entry
	nextId  uint32

	// pending counts running loads. idle is closed when pending drops to
	// zero and replaced when it rises again.
	pending int
	idle    chan struct{}

	reads singleflight.Group
}

// NewServer creates a server rooted at root. A nil open uses gltf.Open; a nil
// logger uses slog.Default().
func NewServer(root string, open Opener, logger *slog.Logger) *Server {
	if open == nil {
		open = gltf.Open
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		root:    root,
		open:    open,
		logger:  logger.With("component", "assets"),
		handles: make(map[string]Handle),
		entries: make(map[uint32]*entry),
	}
}

// Load returns the handle for path, which may carry a "#Label" suffix, and
// starts loading it if this is the first request for it. It never blocks on
// the file system.
func (s *Server) Load(path string) Handle {
	file, label := SplitLabel(path)
	key := file + "#" + label

	s.mu.Lock()
	if h, ok := s.handles[key]; ok {
		s.mu.Unlock()
		return h
	}
	s.nextId++
	h := Handle{id: s.nextId, path: file, label: label}
	s.handles[key] = h
	s.entries[h.id] = &entry{state: Loading}
	if s.pending == 0 {
		s.idle = make(chan struct{})
	}
	s.pending++
	s.mu.Unlock()

	go s.load(h)
	return h
}

func (s *Server) load(h Handle) {
	start := time.Now()
	fullPath := s.FilePath(h)

	// Several labels of one file share a single read.
	doc, err, shared := s.reads.Do(fullPath, func() (any, error) {
		return s.open(fullPath)
	})

	var scene *Scene
	if err == nil {
		scene, err = buildScene(doc.(*gltf.Document), h.label)
	}

	s.mu.Lock()
	e := s.entries[h.id]
	if err != nil {
		e.state = Failed
		e.err = fmt.Errorf("load %s: %w", h, err)
	} else {
		e.state = Loaded
		e.scene = scene
	}
	s.pending--
	if s.pending == 0 {
		close(s.idle)
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("asset failed to load", "asset", h.String(), "error", err)
		return
	}
	s.logger.Info("asset loaded",
		"asset", h.String(),
		"scene", scene.Name,
		"nodes", len(scene.Nodes),
		"shared_read", shared,
		"took", time.Since(start))
}

// FilePath returns the file system path of the handle's file.
func (s *Server) FilePath(h Handle) string {
	if filepath.IsAbs(h.path) || s.root == "" {
		return h.path
	}
	return filepath.Join(s.root, h.path)
}

// State returns the load state of a handle. Unknown handles are NotLoaded.
func (s *Server) State(h Handle) LoadState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[h.id]; ok {
		return e.state
	}
	return NotLoaded
}

// Scene returns the loaded scene, or false if the handle has not loaded.
// The returned scene is shared and must not be modified.
func (s *Server) Scene(h Handle) (*Scene, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[h.id]
	if !ok || e.state != Loaded {
		return nil, false
	}
	return e.scene, true
}

// Err returns the load error of a failed handle.
func (s *Server) Err(h Handle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[h.id]; ok {
		return e.err
	}
	return nil
}

// Wait blocks until no load is running, or the context is done. Loads started
// while Wait blocks are waited for too. It is safe to call Load concurrently.
func (s *Server) Wait(ctx context.Context) error {
	s.mu.Lock()
	if s.pending == 0 {
		s.mu.Unlock()
		return nil
	}
	idle := s.idle
	s.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
