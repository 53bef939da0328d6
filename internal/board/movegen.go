package board

import "log"

// DebugMoveValidation enables extra consistency checks (king bitboard vs.
// cached KingSquare in move generation, capturing a king in MakeMove). It is off by
// default; flip it on while chasing a move-generation bug, not in normal use.
var DebugMoveValidation = false

// MoveFilter selects which subset of moves a generator call should produce.
type MoveFilter uint8

const (
	FilterAll      MoveFilter = iota // every pseudo-legal move
	FilterCaptures                   // only pseudo-legal captures
	FilterQuiets                     // only pseudo-legal non-captures
	FilterEvasions                   // pseudo-legal king moves, checker captures, and interpositions (see filterEvasions)
	FilterLegal                      // fully legal moves (verified via make/unmake)
)

// GenerateMoves produces a MoveList according to filter.
func (p *Position) GenerateMoves(filter MoveFilter) *MoveList {
	switch filter {
	case FilterLegal:
		ml := NewMoveList()
		p.generatePseudoMoves(ml, FilterAll)
		return p.filterLegalMoves(ml)
	case FilterEvasions:
		ml := NewMoveList()
		p.generatePseudoMoves(ml, FilterAll)
		return p.filterEvasions(ml)
	default:
		ml := NewMoveList()
		p.generatePseudoMoves(ml, filter)
		return ml
	}
}

// GenerateLegalMoves is a convenience wrapper around GenerateMoves(FilterLegal).
func (p *Position) GenerateLegalMoves() *MoveList {
	return p.GenerateMoves(FilterLegal)
}

// addTargets filters a raw reachable-squares bitboard down to what filter
// asks for and appends the resulting moves to ml. ownOcc is always excluded
// first, since a piece's own occupied squares are never legal destinations -
// this is also what makes a Cannon's table-returned "capture beyond the
// screen" square silently drop out when that square holds a friendly piece.
func addTargets(ml *MoveList, from Square, reachable, ownOcc, enemyOcc Bitboard, filter MoveFilter) {
	targets := reachable.Without(ownOcc)
	switch filter {
	case FilterCaptures:
		targets = targets.Intersect(enemyOcc)
	case FilterQuiets:
		targets = targets.Without(enemyOcc)
	}
	targets.ForEach(func(to Square) {
		if enemyOcc.Contains(to) {
			ml.Add(NewCaptureMove(from, to))
		} else {
			ml.Add(NewQuietMove(from, to))
		}
	})
}

// generatePseudoMoves generates every pseudo-legal move matching filter
// (FilterAll, FilterCaptures, or FilterQuiets - the other two filter values
// are resolved by GenerateMoves on top of a FilterAll pass).
func (p *Position) generatePseudoMoves(ml *MoveList, filter MoveFilter) {
	us := p.SideToMove
	them := us.Other()
	occupied := p.AllOccupied
	ownOcc := p.Occupied[us]
	enemyOcc := p.Occupied[them]

	if DebugMoveValidation {
		kingBB := p.Pieces[us][King]
		if kingBB.IsEmpty() {
			log.Printf("movegen: %v has no king on the board (hash=%x)", us, p.Hash)
		} else if p.KingSquare[us] != kingBB.LSB() {
			log.Printf("movegen: %v KingSquare=%v but king bitboard says %v (hash=%x)",
				us, p.KingSquare[us], kingBB.LSB(), p.Hash)
		}
	}

	p.Pieces[us][Pawn].ForEach(func(from Square) {
		addTargets(ml, from, PawnMoves(from, us), ownOcc, enemyOcc, filter)
	})
	p.Pieces[us][Knight].ForEach(func(from Square) {
		addTargets(ml, from, HorseAttacks(from, occupied), ownOcc, enemyOcc, filter)
	})
	p.Pieces[us][Bishop].ForEach(func(from Square) {
		addTargets(ml, from, ElephantMoves(from, occupied), ownOcc, enemyOcc, filter)
	})
	p.Pieces[us][Advisor].ForEach(func(from Square) {
		addTargets(ml, from, AdvisorMoves(from), ownOcc, enemyOcc, filter)
	})
	p.Pieces[us][Rook].ForEach(func(from Square) {
		addTargets(ml, from, RookAttacks(from, occupied), ownOcc, enemyOcc, filter)
	})
	p.Pieces[us][Cannon].ForEach(func(from Square) {
		addTargets(ml, from, CannonAttacks(from, occupied), ownOcc, enemyOcc, filter)
	})
	p.Pieces[us][King].ForEach(func(from Square) {
		addTargets(ml, from, KingMoves(from), ownOcc, enemyOcc, filter)
	})
}

// filterEvasions keeps only moves from ml that address the side to move's
// current check(s): a king move, or (absent a double check) a move that
// captures the lone checker or interposes between it and the king. This is
// a cheap pseudo-legal narrowing, not a full legality check - pinned pieces
// can still slip through and must be caught by FilterLegal. Evasions of any
// other shape are not kept: moving a checking cannon's screen off the line,
// or blocking a checking horse's leg, is dropped even when it ends the check.
func (p *Position) filterEvasions(ml *MoveList) *MoveList {
	checkers := p.Checkers
	if checkers.IsEmpty() {
		return ml
	}

	us := p.SideToMove
	ksq := p.KingSquare[us]
	doubleCheck := checkers.PopCount() > 1
	checker := checkers.LSB()
	validTargets := SquareBB(checker).Union(Between(checker, ksq))

	result := NewMoveList()
	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		if m.From() == ksq {
			result.Add(m)
			continue
		}
		if doubleCheck {
			continue
		}
		if validTargets.Contains(m.To()) {
			result.Add(m)
		}
	}
	return result
}

// filterLegalMoves keeps only moves from ml that do not leave the mover's
// own king in check. Xiangqi's cannon can turn any piece between two
// cannons into a dynamic pin the instant it moves, so unlike an orthodox
// chess engine this cannot be reduced to a precomputed pinned-piece mask -
// each candidate is made, tested, and unmade.
func (p *Position) filterLegalMoves(ml *MoveList) *MoveList {
	result := NewMoveList()
	us := p.SideToMove
	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		undo, err := p.MakeMove(m)
		if err != nil {
			continue
		}
		if !p.IsInCheck(us) {
			result.Add(m)
		}
		p.UnmakeMove(m, undo)
	}
	return result
}

// IsInCheck reports whether color c's king is currently attacked, including
// via the flying-general rule.
func (p *Position) IsInCheck(c Color) bool {
	ksq := p.KingSquare[c]
	if p.IsSquareAttacked(ksq, c.Other()) {
		return true
	}
	red, black := p.KingSquare[Red], p.KingSquare[Black]
	return red != NoSquare && black != NoSquare && p.KingsFacing()
}

// IsLegal reports whether a single pseudo-legal move is legal, via
// make/unmake. Prefer GenerateMoves(FilterLegal) when checking many moves;
// this is for one-off checks, e.g. validating a move parsed from input.
func (p *Position) IsLegal(m Move) bool {
	us := p.SideToMove
	undo, err := p.MakeMove(m)
	if err != nil {
		return false
	}
	legal := !p.IsInCheck(us)
	p.UnmakeMove(m, undo)
	return legal
}

// GivesCheck reports whether playing m would leave the opponent in check. It
// makes the move, tests check, and unmakes it again; callers that already
// hold a legal move should prefer this over inspecting target squares by
// hand, since cannons and the flying-general rule both make "does this
// attack the enemy king" depend on the whole board, not just the moving
// piece's own reach.
func (p *Position) GivesCheck(m Move) bool {
	undo, err := p.MakeMove(m)
	if err != nil {
		return false
	}
	check := p.InCheck()
	p.UnmakeMove(m, undo)
	return check
}

// HasLegalMoves reports whether the side to move has any legal move at all.
func (p *Position) HasLegalMoves() bool {
	return p.GenerateMoves(FilterLegal).Len() > 0
}

// IsCheckmate reports whether the side to move is in check with no legal
// reply.
func (p *Position) IsCheckmate() bool {
	return p.InCheck() && !p.HasLegalMoves()
}

// IsStalemate reports whether the side to move has no legal move while not
// in check. Xiangqi treats stalemate as a loss for the stalemated side
// rather than a draw, but that scoring decision belongs to a searcher, not
// to the board; this method only reports the position, not its outcome.
func (p *Position) IsStalemate() bool {
	return !p.InCheck() && !p.HasLegalMoves()
}

// MakeMove applies m to the position, returning undo information to pass to
// UnmakeMove, or a structured error if m cannot legally be applied as given.
func (p *Position) MakeMove(m Move) (UndoInfo, error) {
	us := p.SideToMove
	them := us.Other()
	from, to := m.From(), m.To()

	piece := p.PieceAt(from)
	if piece == NoPiece {
		return UndoInfo{}, &IllegalMoveError{Move: m, Reason: NoPieceAtOrigin}
	}
	if piece.Color() != us {
		return UndoInfo{}, &IllegalMoveError{Move: m, Reason: WrongSideToMove}
	}

	if DebugMoveValidation {
		if captured := p.PieceAt(to); captured != NoPiece && captured.Type() == King {
			log.Printf("movegen: move %v captures %v's king at %v (hash=%x)",
				m, captured.Color(), to, p.Hash)
		}
	}

	undo := UndoInfo{
		CapturedPiece: NoPiece,
		Hash:          p.Hash,
		PawnKey:       p.PawnKey,
		NonPawnKeys:   p.NonPawnKeys,
		Checkers:      p.Checkers,
		KingSquare:    p.KingSquare,
		Pieces:        p.Pieces,
		Occupied:      p.Occupied,
		AllOccupied:   p.AllOccupied,
		Mailbox:       p.mailbox,
		HalfMoveClock: p.HalfMoveClock,
	}

	pt := piece.Type()
	p.Hash ^= ZobristSideToMove()

	if captured := p.PieceAt(to); captured != NoPiece {
		undo.CapturedPiece = captured
		p.removePiece(to)
		capKey := ZobristPiece(them, captured.Type(), to)
		p.Hash ^= capKey
		if IsPawnKeyPiece(captured.Type()) {
			p.PawnKey ^= capKey
		} else {
			p.NonPawnKeys[them] ^= capKey
		}
	}

	p.movePiece(from, to)
	fromKey := ZobristPiece(us, pt, from)
	toKey := ZobristPiece(us, pt, to)
	p.Hash ^= fromKey ^ toKey
	if IsPawnKeyPiece(pt) {
		p.PawnKey ^= fromKey ^ toKey
	} else {
		p.NonPawnKeys[us] ^= fromKey ^ toKey
	}

	if pt == Pawn || undo.CapturedPiece != NoPiece {
		p.HalfMoveClock = 0
	} else {
		p.HalfMoveClock++
	}
	if us == Black {
		p.FullMoveNumber++
	}

	p.SideToMove = them
	p.UpdateCheckers()

	return undo, nil
}

// UnmakeMove reverses a MakeMove call using its returned UndoInfo. m must be
// the same move that produced undo, and no other MakeMove may have
// intervened - this is a stack discipline, not a general-purpose restore.
func (p *Position) UnmakeMove(m Move, undo UndoInfo) {
	us := p.SideToMove.Other()

	p.Hash = undo.Hash
	p.PawnKey = undo.PawnKey
	p.NonPawnKeys = undo.NonPawnKeys
	p.Checkers = undo.Checkers
	p.KingSquare = undo.KingSquare
	p.Pieces = undo.Pieces
	p.Occupied = undo.Occupied
	p.AllOccupied = undo.AllOccupied
	p.mailbox = undo.Mailbox
	p.HalfMoveClock = undo.HalfMoveClock
	p.SideToMove = us

	if us == Black {
		p.FullMoveNumber--
	}
}
