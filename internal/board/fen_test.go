package board

import "testing"

func TestParseFENStartPosition(t *testing.T) {
	pos, err := ParseFEN(StartFEN)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if pos.SideToMove != Red {
		t.Errorf("SideToMove = %s, want Red", pos.SideToMove)
	}
	if pos.PieceAt(NewSquare(4, 0)) != RedKing {
		t.Errorf("expected red king at e1")
	}
	if pos.PieceAt(NewSquare(4, 9)) != BlackKing {
		t.Errorf("expected black king at e10")
	}
}

func TestFENRoundTrip(t *testing.T) {
	pos, err := ParseFEN(StartFEN)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	again, err := ParseFEN(pos.ToFEN())
	if err != nil {
		t.Fatalf("ParseFEN(ToFEN()): %v", err)
	}
	if again.Hash != pos.Hash {
		t.Errorf("round trip changed the hash: %016x != %016x", again.Hash, pos.Hash)
	}
	if again.ToFEN() != pos.ToFEN() {
		t.Errorf("round trip changed the FEN: %q != %q", again.ToFEN(), pos.ToFEN())
	}
}

func TestParseFENRejectsAdjacentDigits(t *testing.T) {
	_, err := ParseFEN("rnbakabnr/18/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR w - - 0 1")
	if err == nil {
		t.Fatal("expected an error for adjacent digits in a rank")
	}
	fenErr, ok := err.(*InvalidFenError)
	if !ok {
		t.Fatalf("expected *InvalidFenError, got %T", err)
	}
	if fenErr.Reason != AdjacentDigits {
		t.Errorf("Reason = %s, want %s", fenErr.Reason, AdjacentDigits)
	}
}

func TestParseFENRejectsMissingKing(t *testing.T) {
	_, err := ParseFEN("rnbaaabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR w - - 0 1")
	if err == nil {
		t.Fatal("expected an error for a side with no king")
	}
	fenErr, ok := err.(*InvalidFenError)
	if !ok {
		t.Fatalf("expected *InvalidFenError, got %T", err)
	}
	if fenErr.Reason != FailedStructuralCheck {
		t.Errorf("Reason = %s, want %s", fenErr.Reason, FailedStructuralCheck)
	}
}

func TestParseFENRejectsTwoKings(t *testing.T) {
	_, err := ParseFEN("rnbakkbnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR w - - 0 1")
	if err == nil {
		t.Fatal("expected an error for a side with two kings")
	}
	if err.(*InvalidFenError).Reason != FailedStructuralCheck {
		t.Errorf("Reason = %s, want %s", err.(*InvalidFenError).Reason, FailedStructuralCheck)
	}
}

func TestParseFENRejectsShortRank(t *testing.T) {
	_, err := ParseFEN("rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABN w - - 0 1")
	if err == nil {
		t.Fatal("expected an error for a rank with too few files")
	}
	fenErr, ok := err.(*InvalidFenError)
	if !ok {
		t.Fatalf("expected *InvalidFenError, got %T", err)
	}
	if fenErr.Reason != WrongFileCount {
		t.Errorf("Reason = %s, want %s", fenErr.Reason, WrongFileCount)
	}
}

func TestParseFENRejectsWrongRankCount(t *testing.T) {
	_, err := ParseFEN("rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/RNBAKABNR w - - 0 1")
	if err == nil {
		t.Fatal("expected an error for the wrong number of ranks")
	}
	if err.(*InvalidFenError).Reason != WrongRankCount {
		t.Errorf("Reason = %s, want %s", err.(*InvalidFenError).Reason, WrongRankCount)
	}
}
