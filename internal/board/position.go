package board

import "fmt"

// Position represents a complete Xiangqi position: piece placement, side to
// move, and the incremental hash keys that let higher layers (transposition
// tables, pawn-structure caches) avoid recomputing from scratch.
//
// There is deliberately no castling-rights or en-passant field here: those
// are orthodox-chess concepts with no Xiangqi equivalent, and carrying them
// as dead state would invite them leaking back into move generation.
type Position struct {
	// Piece bitboards: [Color][PieceType]
	Pieces [2][7]Bitboard

	// mailbox mirrors Pieces as a flat square-indexed lookup: mailbox[s] is
	// the piece standing on s, or NoPiece. Kept in lockstep by setPiece,
	// removePiece, and movePiece so PieceAt never has to scan bitboards.
	mailbox [NumSquares]Piece

	// Occupancy bitboards (cached for efficiency)
	Occupied    [2]Bitboard
	AllOccupied Bitboard

	SideToMove     Color
	HalfMoveClock  int // half-moves since the last capture or pawn move; notation only, no legality meaning
	FullMoveNumber int

	// Hash is the full Zobrist key for the position.
	Hash uint64
	// PawnKey hashes only pawn placement, for a pawn-structure cache.
	PawnKey uint64
	// NonPawnKeys[c] hashes only color c's non-pawn pieces.
	NonPawnKeys [2]uint64

	KingSquare [2]Square
	Checkers   Bitboard
}

// NewPosition creates the standard starting position.
func NewPosition() *Position {
	pos, err := ParseFEN(StartFEN)
	if err != nil {
		panic(fmt.Sprintf("board: start position failed to parse: %v", err))
	}
	return pos
}

// Copy returns a deep copy of the position (all fields are value types or
// fixed-size arrays, so a plain struct copy suffices).
func (p *Position) Copy() *Position {
	newPos := *p
	return &newPos
}

// PieceAt returns the piece occupying sq, or NoPiece if it is empty.
func (p *Position) PieceAt(sq Square) Piece {
	return p.mailbox[sq]
}

// initMailbox fills mailbox with NoPiece; Go's zero value for Piece is
// RedPawn (0), not NoPiece (14), so every fresh Position must call this
// before any setPiece call.
func (p *Position) initMailbox() {
	for sq := range p.mailbox {
		p.mailbox[sq] = NoPiece
	}
}

// IsEmpty reports whether sq has no piece on it.
func (p *Position) IsEmpty(sq Square) bool {
	return !p.AllOccupied.Contains(sq)
}

// setPiece places a piece on sq. It does not touch the hash keys; callers
// that need incremental hashing do that themselves around this call.
func (p *Position) setPiece(piece Piece, sq Square) {
	if piece == NoPiece {
		return
	}
	c, pt := piece.Color(), piece.Type()

	p.Pieces[c][pt] = p.Pieces[c][pt].WithBitSet(sq)
	p.Occupied[c] = p.Occupied[c].WithBitSet(sq)
	p.AllOccupied = p.AllOccupied.WithBitSet(sq)
	p.mailbox[sq] = piece

	if pt == King {
		p.KingSquare[c] = sq
	}
}

// removePiece removes and returns whatever piece stood on sq.
func (p *Position) removePiece(sq Square) Piece {
	piece := p.PieceAt(sq)
	if piece == NoPiece {
		return NoPiece
	}
	c, pt := piece.Color(), piece.Type()

	p.Pieces[c][pt] = p.Pieces[c][pt].WithBitCleared(sq)
	p.Occupied[c] = p.Occupied[c].WithBitCleared(sq)
	p.AllOccupied = p.AllOccupied.WithBitCleared(sq)
	p.mailbox[sq] = NoPiece

	return piece
}

// movePiece relocates whatever piece stands on from to to, leaving to's
// prior contents (if any) untouched by the caller's responsibility - it
// assumes to is empty, as it is after any capture has already been removed.
func (p *Position) movePiece(from, to Square) {
	piece := p.PieceAt(from)
	if piece == NoPiece {
		return
	}
	c, pt := piece.Color(), piece.Type()

	p.Pieces[c][pt] = p.Pieces[c][pt].WithBitCleared(from).WithBitSet(to)
	p.Occupied[c] = p.Occupied[c].WithBitCleared(from).WithBitSet(to)
	p.AllOccupied = p.AllOccupied.WithBitCleared(from).WithBitSet(to)
	p.mailbox[from] = NoPiece
	p.mailbox[to] = piece

	if pt == King {
		p.KingSquare[c] = to
	}
}

// updateOccupied recomputes the cached occupancy bitboards from scratch.
func (p *Position) updateOccupied() {
	p.Occupied[Red] = Empty
	p.Occupied[Black] = Empty
	for pt := Pawn; pt <= Cannon; pt++ {
		p.Occupied[Red] = p.Occupied[Red].Union(p.Pieces[Red][pt])
		p.Occupied[Black] = p.Occupied[Black].Union(p.Pieces[Black][pt])
	}
	p.AllOccupied = p.Occupied[Red].Union(p.Occupied[Black])
}

// findKings locates and caches both Kings' squares.
func (p *Position) findKings() {
	p.KingSquare[Red] = p.Pieces[Red][King].LSB()
	p.KingSquare[Black] = p.Pieces[Black][King].LSB()
}

// String renders the position as a 10x9 grid plus game-state summary.
func (p *Position) String() string {
	s := "\n"
	for rank := NumRanks - 1; rank >= 0; rank-- {
		s += fmt.Sprintf("%2d  ", rank+1)
		for file := 0; file < NumFiles; file++ {
			piece := p.PieceAt(NewSquare(file, rank))
			if piece == NoPiece {
				s += ". "
			} else {
				s += piece.String() + " "
			}
		}
		s += "\n"
	}
	s += "\n    a b c d e f g h i\n\n"
	s += fmt.Sprintf("Side to move: %s\n", p.SideToMove)
	s += fmt.Sprintf("Half-move clock: %d\n", p.HalfMoveClock)
	s += fmt.Sprintf("Full move: %d\n", p.FullMoveNumber)
	s += fmt.Sprintf("Hash: %016x\n", p.Hash)
	return s
}

// Clear resets the position to an empty board.
func (p *Position) Clear() {
	*p = Position{FullMoveNumber: 1}
	p.KingSquare[Red] = NoSquare
	p.KingSquare[Black] = NoSquare
	p.initMailbox()
}

// Validate runs structural sanity checks that a position parsed from
// untrusted input must satisfy before move generation can trust it.
func (p *Position) Validate() error {
	if p.Pieces[Red][King].PopCount() != 1 {
		return fmt.Errorf("red must have exactly one king")
	}
	if p.Pieces[Black][King].PopCount() != 1 {
		return fmt.Errorf("black must have exactly one king")
	}
	if !p.KingSquare[Red].InPalace() {
		return fmt.Errorf("red king must stand inside its palace")
	}
	if !p.KingSquare[Black].InPalace() {
		return fmt.Errorf("black king must stand inside its palace")
	}
	for _, c := range [2]Color{Red, Black} {
		if p.Pieces[c][Advisor].PopCount() > 2 {
			return fmt.Errorf("%s has more than two advisors", c)
		}
		if p.Pieces[c][Bishop].PopCount() > 2 {
			return fmt.Errorf("%s has more than two elephants", c)
		}
	}
	return nil
}

// InCheck reports whether the side to move is currently in check.
func (p *Position) InCheck() bool {
	return p.Checkers.Any()
}

// NullMoveUndo stores the state needed to reverse MakeNullMove.
type NullMoveUndo struct {
	Hash uint64
}

// MakeNullMove passes the turn without moving a piece, flipping only the
// side to move and its hash contribution. Used by search-adjacent callers
// that want to probe "what if it were the opponent's move" without a real
// move; kept here even though search itself is out of scope, since the
// operation belongs to Position's own state machine, not to any searcher.
func (p *Position) MakeNullMove() NullMoveUndo {
	undo := NullMoveUndo{Hash: p.Hash}

	p.SideToMove = p.SideToMove.Other()
	p.Hash ^= ZobristSideToMove()

	p.UpdateCheckers()
	return undo
}

// UnmakeNullMove reverses MakeNullMove.
func (p *Position) UnmakeNullMove(undo NullMoveUndo) {
	p.Hash = undo.Hash
	p.SideToMove = p.SideToMove.Other()
	p.UpdateCheckers()
}
