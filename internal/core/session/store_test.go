package session

import (
	"testing"

	"github.com/rmandel/docfill/internal/core/models"
)

func snapshotWith(filled, total int) *models.PlaceholderSet {
	pct := 0.0
	if total > 0 {
		pct = 100 * float64(filled) / float64(total)
	}
	set := &models.PlaceholderSet{
		Status: "success",
		Summary: models.PlaceholderSummary{
			Total:             total,
			FilledCount:       filled,
			UnfilledCount:     total - filled,
			CompletionPercent: pct,
		},
	}
	for i := 0; i < total; i++ {
		set.Placeholders = append(set.Placeholders, models.Placeholder{
			ID:       string(rune('a' + i)),
			IsFilled: i < filled,
		})
	}
	return set
}

func TestStoreTranscriptAppendOnly(t *testing.T) {
	s := NewStore()

	s.AppendMessage(models.NewChatMessage(models.RoleUser, "first", nil))
	s.AppendMessage(models.NewChatMessage(models.RoleAssistant, "second", nil))

	msgs := s.Messages()
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Content != "first" || msgs[1].Content != "second" {
		t.Errorf("messages out of order: %q, %q", msgs[0].Content, msgs[1].Content)
	}

	// Mutating the returned slice must not touch the store.
	msgs[0].Content = "tampered"
	if s.Messages()[0].Content != "first" {
		t.Error("Messages() exposed internal state")
	}
}

func TestStoreReset(t *testing.T) {
	s := NewStore()
	s.SetDocumentID("doc_1")
	s.SetFileName("safe.docx")
	s.AppendMessage(models.NewChatMessage(models.RoleUser, "hi", nil))
	s.ReplaceSnapshot(snapshotWith(1, 3), s.BeginSnapshotUpdate())

	s.Reset()

	if s.DocumentID() != "" {
		t.Errorf("documentID = %q after reset", s.DocumentID())
	}
	if s.FileName() != "" {
		t.Errorf("fileName = %q after reset", s.FileName())
	}
	if len(s.Messages()) != 0 {
		t.Errorf("transcript not cleared, %d messages remain", len(s.Messages()))
	}
	if s.Snapshot() != nil {
		t.Error("snapshot not cleared")
	}
}

func TestStoreSnapshotSequenceGuard(t *testing.T) {
	s := NewStore()

	staleSeq := s.BeginSnapshotUpdate() // manual refresh starts first
	newerSeq := s.BeginSnapshotUpdate() // chat reconciliation starts second

	newer := snapshotWith(2, 5)
	if !s.ReplaceSnapshot(newer, newerSeq) {
		t.Fatal("newer write rejected")
	}

	// The slower, older query lands afterwards and must be discarded.
	if s.ReplaceSnapshot(snapshotWith(1, 5), staleSeq) {
		t.Error("stale write was applied")
	}
	if got := s.Snapshot(); got != newer {
		t.Errorf("snapshot = %+v, want the newer write", got.Summary)
	}
}

func TestStoreSnapshotIdempotentReplace(t *testing.T) {
	s := NewStore()

	// Two queries with no intervening change return equal snapshots;
	// applying either leaves the store in an equivalent state.
	first := snapshotWith(1, 4)
	second := snapshotWith(1, 4)
	s.ReplaceSnapshot(first, s.BeginSnapshotUpdate())
	summaryA := s.Snapshot().Summary
	s.ReplaceSnapshot(second, s.BeginSnapshotUpdate())
	summaryB := s.Snapshot().Summary

	if summaryA != summaryB {
		t.Errorf("summaries differ: %+v vs %+v", summaryA, summaryB)
	}
}

func TestStoreResetDiscardsInFlightSnapshot(t *testing.T) {
	s := NewStore()
	seq := s.BeginSnapshotUpdate()

	s.Reset() // new upload while the old document's query is in flight

	if s.ReplaceSnapshot(snapshotWith(3, 3), seq) {
		t.Error("pre-reset snapshot write applied to the new session")
	}
	if s.Snapshot() != nil {
		t.Error("snapshot set from a discarded write")
	}
}

func TestStoreBusyFlag(t *testing.T) {
	s := NewStore()
	if s.Busy() {
		t.Error("new store is busy")
	}
	s.SetBusy(true)
	if !s.Busy() {
		t.Error("busy flag not set")
	}
	s.SetBusy(false)
	if s.Busy() {
		t.Error("busy flag not cleared")
	}
}
