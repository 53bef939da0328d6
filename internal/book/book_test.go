package book

import (
	"os"
	"testing"

	"xiangqi/internal/board"
)

func openTestBook(t *testing.T) *Book {
	t.Helper()
	dir, err := os.MkdirTemp("", "xiangqi-book-test-*")
	if err != nil {
		t.Fatalf("MkdirTemp: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	b, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { b.Close() })
	return b
}

func TestBookAddAndProbe(t *testing.T) {
	b := openTestBook(t)
	pos := board.NewPosition()

	legal := pos.GenerateLegalMoves()
	if legal.Len() == 0 {
		t.Fatal("starting position has no legal moves")
	}
	want := legal.Get(0)

	if err := b.AddEntry(pos.Hash, BookEntry{Move: want, Weight: 10}); err != nil {
		t.Fatalf("AddEntry: %v", err)
	}

	got, found := b.Probe(pos)
	if !found {
		t.Fatal("expected a book hit")
	}
	if got.From() != want.From() || got.To() != want.To() {
		t.Errorf("Probe = %s, want %s", got, want)
	}
}

func TestBookMiss(t *testing.T) {
	b := openTestBook(t)
	pos := board.NewPosition()

	move, found := b.Probe(pos)
	if found {
		t.Error("expected a miss on an empty book")
	}
	if move != board.NoMove {
		t.Errorf("expected NoMove on miss, got %s", move)
	}
}

func TestNilBookMisses(t *testing.T) {
	var b *Book
	pos := board.NewPosition()

	move, found := b.Probe(pos)
	if found || move != board.NoMove {
		t.Error("a nil *Book must always miss")
	}
}

func TestBookProbeAllSortedByWeight(t *testing.T) {
	b := openTestBook(t)
	pos := board.NewPosition()
	legal := pos.GenerateLegalMoves()
	if legal.Len() < 2 {
		t.Fatal("need at least two legal moves for this test")
	}

	m1, m2 := legal.Get(0), legal.Get(1)
	if err := b.AddEntry(pos.Hash, BookEntry{Move: m1, Weight: 5}); err != nil {
		t.Fatalf("AddEntry: %v", err)
	}
	if err := b.AddEntry(pos.Hash, BookEntry{Move: m2, Weight: 50}); err != nil {
		t.Fatalf("AddEntry: %v", err)
	}

	all := b.ProbeAll(pos)
	if len(all) != 2 {
		t.Fatalf("ProbeAll returned %d entries, want 2", len(all))
	}
	if all[0].Weight != 50 {
		t.Errorf("ProbeAll[0].Weight = %d, want 50 (heaviest first)", all[0].Weight)
	}
}
