package domain

import "testing"

func TestBatch_AddPreservesOrder(t *testing.T) {
	b := NewBatch(4)

	jobs := []FrameJob{
		NewFrameJob([]byte("aa"), "cam-1"),
		NewFrameJob([]byte("bbb"), "cam-2"),
		NewFrameJob([]byte("c"), "cam-1"),
	}
	for _, j := range jobs {
		b.Add(j)
	}

	if b.Size() != 3 {
		t.Fatalf("Size() = %d, want 3", b.Size())
	}
	if b.Empty() {
		t.Fatal("Empty() = true for non-empty batch")
	}
	if b.TotalBytes != 6 {
		t.Errorf("TotalBytes = %d, want 6", b.TotalBytes)
	}

	ids := b.IDs()
	for i, j := range jobs {
		if ids[i] != j.ID {
			t.Errorf("IDs()[%d] = %s, want %s", i, ids[i], j.ID)
		}
	}
}

func TestNewFrameJob_AssignsIdentity(t *testing.T) {
	a := NewFrameJob([]byte("x"), "cam")
	b := NewFrameJob([]byte("x"), "cam")

	if a.ID == "" || b.ID == "" {
		t.Fatal("NewFrameJob returned empty ID")
	}
	if a.ID == b.ID {
		t.Errorf("two jobs share ID %s", a.ID)
	}
	if a.EnqueuedAt.IsZero() {
		t.Error("EnqueuedAt is zero")
	}
}
