package board

import (
	"testing"

	"golang.org/x/sync/errgroup"
)

// TestConcurrentPositionsShareTablesSafely exercises the concurrency model:
// many goroutines each own a private *Position and drive it through make
// and unmake, while all of them read the same package-level attack and
// Zobrist tables. Nothing here mutates shared state, so a race here would
// indicate the tables are not the write-once, read-only data they are
// supposed to be.
func TestConcurrentPositionsShareTablesSafely(t *testing.T) {
	const workers = 16
	const plies = 40

	var g errgroup.Group
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			pos := NewPosition()
			for ply := 0; ply < plies; ply++ {
				moves := pos.GenerateLegalMoves()
				if moves.Len() == 0 {
					return nil
				}
				m := moves.Get(ply % moves.Len())
				if _, err := pos.MakeMove(m); err != nil {
					return err
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent position walk failed: %v", err)
	}
}
