package repository

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"studio-proof/internal/domain/portfolio"
	"studio-proof/internal/domain/session"
	"studio-proof/pkg/logger"

	"github.com/goccy/go-json"
)

// Document is the whole persisted state. It is always written in one piece.
type Document struct {
	Sessions       map[string]session.Session `json:"sessions"`
	PortfolioItems []portfolio.Item           `json:"portfolioItems"`
}

func NewDocument() Document {
	return Document{
		Sessions:       map[string]session.Session{},
		PortfolioItems: []portfolio.Item{},
	}
}

func (d Document) clone() Document {
	out := Document{
		Sessions:       make(map[string]session.Session, len(d.Sessions)),
		PortfolioItems: make([]portfolio.Item, len(d.PortfolioItems)),
	}
	for id, s := range d.Sessions {
		out.Sessions[id] = s.Clone()
	}
	copy(out.PortfolioItems, d.PortfolioItems)
	return out
}

// LoadState records where the in-memory document came from.
type LoadState int

const (
	// NotLoaded means Load has not run yet.
	NotLoaded LoadState = iota
	// LoadedFromDisk means the data file existed and parsed.
	LoadedFromDisk
	// Initialized means the data file was missing and an empty one was written.
	Initialized
	// RecoveredEmpty means the data file was corrupt and the store started empty.
	RecoveredEmpty
)

func (st LoadState) String() string {
	switch st {
	case LoadedFromDisk:
		return "loaded"
	case Initialized:
		return "initialized"
	case RecoveredEmpty:
		return "recovered-empty"
	default:
		return "not-loaded"
	}
}

// Store keeps the document in memory and mirrors it to a single JSON file.
// Last successful Save wins; there is no journal.
type Store struct {
	mu     sync.RWMutex
	saveMu sync.Mutex
	path   string
	doc    Document
	state  LoadState
	logger *logger.Logger
}

func NewStore(path string, l *logger.Logger) *Store {
	if l == nil {
		l = logger.NewNop()
	}
	return &Store{
		path:   path,
		doc:    NewDocument(),
		logger: l,
	}
}

func (s *Store) Path() string {
	return s.path
}

// State reports the outcome of the last Load.
func (s *Store) State() LoadState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Load reads the document from disk. A missing file is initialized with an empty
// document and written immediately. A corrupt file is left untouched on disk and
// the store starts empty.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.replace(NewDocument(), Initialized)
			s.logger.Infof("data file %s not found, initializing empty document", s.path)
			return s.Save()
		}
		return fmt.Errorf("failed to read data file: %w", err)
	}

	doc := NewDocument()
	if err := json.Unmarshal(data, &doc); err != nil {
		s.logger.Errorf("data file %s is corrupt, starting with an empty document: %s", s.path, err)
		s.replace(NewDocument(), RecoveredEmpty)
		return nil
	}
	if doc.Sessions == nil {
		doc.Sessions = map[string]session.Session{}
	}
	if doc.PortfolioItems == nil {
		doc.PortfolioItems = []portfolio.Item{}
	}
	for id, sess := range doc.Sessions {
		if sess.Photos == nil {
			sess.Photos = []session.Photo{}
			doc.Sessions[id] = sess
		}
	}
	s.replace(doc, LoadedFromDisk)
	s.logger.Infof("loaded %d sessions and %d portfolio items from %s", len(doc.Sessions), len(doc.PortfolioItems), s.path)
	return nil
}

// Save serializes the full in-memory document and overwrites the data file.
func (s *Store) Save() error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.RLock()
	data, err := json.MarshalIndent(s.doc, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	if err := AtomicWriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write data file: %w", err)
	}
	return nil
}

// Snapshot returns a deep copy of the current document.
func (s *Store) Snapshot() Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.clone()
}

// Reset replaces the in-memory document with an empty one. Callers Save afterwards.
func (s *Store) Reset() {
	s.mu.Lock()
	s.doc = NewDocument()
	s.mu.Unlock()
}

// HealthCheck verifies the directory holding the data file is reachable.
func (s *Store) HealthCheck() error {
	dir := filepath.Dir(s.path)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("data directory unavailable: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("data directory %s is not a directory", dir)
	}
	return nil
}

func (s *Store) replace(doc Document, state LoadState) {
	s.mu.Lock()
	s.doc = doc
	s.state = state
	s.mu.Unlock()
}

func (s *Store) read(fn func(doc *Document)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(&s.doc)
}

func (s *Store) write(fn func(doc *Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&s.doc)
}

// ReferencedKeys returns every storage key the document points at.
func (d Document) ReferencedKeys() map[string]struct{} {
	keys := make(map[string]struct{})
	for _, s := range d.Sessions {
		for _, name := range s.Filenames() {
			if name != "" {
				keys[name] = struct{}{}
			}
		}
	}
	for _, it := range d.PortfolioItems {
		if it.Filename != "" {
			keys[it.Filename] = struct{}{}
		}
	}
	return keys
}

// Orphans returns the keys in stored that the document does not reference.
func (d Document) Orphans(stored []string) []string {
	referenced := d.ReferencedKeys()
	var out []string
	for _, key := range stored {
		if _, ok := referenced[key]; !ok {
			out = append(out, key)
		}
	}
	return out
}
