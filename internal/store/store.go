// Package store is the JSON-document-backed record store shared by every manager.
//
// Every mutation follows the same discipline: load the full snapshot, mutate it in
// memory, write the full snapshot back. There is no locking; one interactive
// session is assumed to be the only writer (last writer wins).
package store

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
)

type Store struct {
	adapter Adapter
	data    *Document
	log     logrus.FieldLogger
}

// New returns a store with nothing loaded. Until Init succeeds every
// operation fails with ErrNotInitialized.
func New(adapter Adapter, log logrus.FieldLogger) *Store {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Store{adapter: adapter, log: log.WithField("component", "store")}
}

// Open creates a store and initializes it from the adapter
func Open(adapter Adapter, log logrus.FieldLogger) (*Store, error) {
	s := New(adapter, log)
	if err := s.Init(); err != nil {
		return nil, err
	}
	return s, nil
}

// Init loads the document. An absent or empty backing is initialized with four
// empty collections and persisted straight away.
func (s *Store) Init() error {
	if err := s.load(); err != nil {
		return err
	}
	if s.data == nil {
		s.data = EmptyDocument()
		s.log.Info("Initialized empty ledger document")
		return s.Save()
	}
	return nil
}

// load replaces the in-memory document with the backing content (nil if empty)
func (s *Store) load() error {
	raw, err := s.adapter.Read()
	if err != nil {
		return fmt.Errorf("read ledger: %w", err)
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		s.data = nil
		return nil
	}

	var doc *Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("decode ledger: %w", err)
	}
	s.data = doc
	return nil
}

// Save serializes the whole in-memory document over the backing
func (s *Store) Save() error {
	if s.data == nil {
		return ErrNotInitialized
	}
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}
	if err := s.adapter.Write(append(raw, '\n')); err != nil {
		return fmt.Errorf("write ledger: %w", err)
	}
	return nil
}

// Read reloads the backing and returns a copy of the document
func (s *Store) Read() (*Document, error) {
	if s.data == nil {
		return nil, ErrNotInitialized
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	if s.data == nil {
		return nil, ErrNotInitialized
	}
	return s.data.Clone(), nil
}

// Transaction runs fn against a fresh copy of the document. If fn or the write
// fails, the loaded document stays as it was; otherwise the copy is installed
// and saved as one unit.
func (s *Store) Transaction(fn func(doc *Document) error) error {
	doc, err := s.Read()
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	prev := s.data
	s.data = doc
	if err := s.Save(); err != nil {
		s.data = prev
		return err
	}
	return nil
}

// Reset discards every record and persists four empty collections
func (s *Store) Reset() error {
	s.data = EmptyDocument()
	if err := s.Save(); err != nil {
		return err
	}
	s.log.Warn("Ledger document reset")
	return nil
}
