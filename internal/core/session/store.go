package session

import (
	"sync"

	"github.com/rmandel/docfill/internal/core/models"
)

// Store is the single authoritative in-memory model of the active document:
// its identity, the running transcript, the latest placeholder snapshot, and
// a coarse busy flag. State is ephemeral; nothing survives the process.
//
// Every mutation is applied atomically under the lock, so readers always
// observe the latest fully-applied state. Writers always write complete
// replacement values (transcript append, wholesale snapshot replace), never
// field-level patches.
//
// Construct with NewStore and pass explicitly; the zero value is not used.
type Store struct {
	mu sync.RWMutex

	documentID string
	fileName   string
	chat       []models.ChatMessage
	snapshot   *models.PlaceholderSet
	busy       bool

	// Snapshot writes are tagged with a monotonic sequence so an overlapping
	// manual refresh cannot overwrite a newer chat-driven reconciliation.
	seqIssued  uint64
	seqApplied uint64
}

func NewStore() *Store {
	return &Store{}
}

// SetDocumentID records the active document. An empty ID means no session.
func (s *Store) SetDocumentID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documentID = id
}

func (s *Store) DocumentID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.documentID
}

func (s *Store) SetFileName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fileName = name
}

func (s *Store) FileName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fileName
}

// AppendMessage adds one message to the transcript. Prior messages are never
// mutated or removed except by Reset.
func (s *Store) AppendMessage(m models.ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chat = append(s.chat, m)
}

// Messages returns a copy of the transcript in append order.
func (s *Store) Messages() []models.ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ChatMessage, len(s.chat))
	copy(out, s.chat)
	return out
}

// BeginSnapshotUpdate reserves a sequence number for an upcoming snapshot
// write. Call it before issuing the placeholder query so that a slower,
// earlier query cannot clobber the result of a later one.
func (s *Store) BeginSnapshotUpdate() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seqIssued++
	return s.seqIssued
}

// ReplaceSnapshot replaces the snapshot wholesale. Writes tagged with a
// sequence at or below the last applied one are discarded; the return value
// reports whether the write took effect.
func (s *Store) ReplaceSnapshot(set *models.PlaceholderSet, seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq <= s.seqApplied {
		return false
	}
	s.snapshot = set
	s.seqApplied = seq
	return true
}

func (s *Store) Snapshot() *models.PlaceholderSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

func (s *Store) SetBusy(busy bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = busy
}

func (s *Store) Busy() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.busy
}

// Reset clears the session for a fresh upload: identity, transcript and
// snapshot all go. The applied sequence jumps to the last issued one so that
// any snapshot query still in flight for the previous document is discarded
// when it lands.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documentID = ""
	s.fileName = ""
	s.chat = nil
	s.snapshot = nil
	s.seqApplied = s.seqIssued
}
