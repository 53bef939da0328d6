package board

import "testing"

// TestCheckmate builds a minimal rook mate: Black's king is flanked by its
// own advisors (so it cannot step sideways) and Red's rook checks from e9.
// The king cannot take the rook because Red's pawn on d9 guards e9, and an
// advisor cannot take it because Red's cannon on e2 would then check
// through the advisor as its screen.
func TestCheckmate(t *testing.T) {
	pos, err := ParseFEN("3aka3/3PR4/9/9/9/9/9/9/4C4/3K5 b - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	if !pos.InCheck() {
		t.Fatal("expected black to be in check")
	}
	if got := pos.GenerateLegalMoves().Len(); got != 0 {
		t.Errorf("expected no legal moves, got %d", got)
	}
	if !pos.IsCheckmate() {
		t.Error("expected checkmate")
	}
	if pos.IsStalemate() {
		t.Error("checkmate must not also report as stalemate")
	}
}

// TestNotCheckmate is a rook check down an open file with only one advisor
// beside the king, giving the king an escape square off the checked file.
func TestNotCheckmate(t *testing.T) {
	pos, err := ParseFEN("3ak4/9/9/9/9/9/9/9/9/3KR4 b - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	if !pos.InCheck() {
		t.Fatal("expected black to be in check")
	}
	if pos.IsCheckmate() {
		t.Error("expected NOT checkmate: king can step to f10")
	}

	moves := pos.GenerateLegalMoves()
	found := false
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		if m.From() == pos.KingSquare[Black] {
			found = true
		}
	}
	if !found {
		t.Error("expected a legal king move among the escapes")
	}
}
