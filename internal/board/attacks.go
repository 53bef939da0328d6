package board

// Pre-computed attack/move tables for the pieces whose reach does not
// depend on occupancy except through simple blocking rules checked here
// directly: Pawn, Advisor, King, and Elephant. Rook, Cannon, and Horse use
// the occupancy-indexed tables in magic.go instead.
var (
	pawnMoves    [2][NumSquares]Bitboard // [Color][Square]
	advisorMoves [NumSquares]Bitboard
	kingMoves    [NumSquares]Bitboard
	elephantEyes [NumSquares][4]elephantJump

	// betweenBB holds, for each pair of rank- or file-aligned squares, the
	// squares strictly between them. Xiangqi has no diagonal sliders, so
	// unlike an orthodox-chess engine this table never needs a diagonal case.
	betweenBB [NumSquares][NumSquares]Bitboard
)

type elephantJump struct {
	to  Square
	eye Square
}

func init() {
	initPawnMoves()
	initAdvisorMoves()
	initKingMoves()
	initElephantJumps()
	initBetweenBB()
	initMagics() // from magic.go
}

func initPawnMoves() {
	for sq := Square(0); sq < NumSquares; sq++ {
		file, rank := sq.File(), sq.Rank()

		red := Empty
		if rank+1 < NumRanks {
			red = red.WithBitSet(NewSquare(file, rank+1))
		}
		if sq.HasCrossedRiver(Red) {
			if file-1 >= 0 {
				red = red.WithBitSet(NewSquare(file-1, rank))
			}
			if file+1 < NumFiles {
				red = red.WithBitSet(NewSquare(file+1, rank))
			}
		}
		pawnMoves[Red][sq] = red

		black := Empty
		if rank-1 >= 0 {
			black = black.WithBitSet(NewSquare(file, rank-1))
		}
		if sq.HasCrossedRiver(Black) {
			if file-1 >= 0 {
				black = black.WithBitSet(NewSquare(file-1, rank))
			}
			if file+1 < NumFiles {
				black = black.WithBitSet(NewSquare(file+1, rank))
			}
		}
		pawnMoves[Black][sq] = black
	}
}

func initAdvisorMoves() {
	for sq := Square(0); sq < NumSquares; sq++ {
		if !sq.InPalace() {
			continue
		}
		file, rank := sq.File(), sq.Rank()
		bb := Empty
		for _, d := range [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}} {
			f, r := file+d[0], rank+d[1]
			if f < 0 || f >= NumFiles || r < 0 || r >= NumRanks {
				continue
			}
			dst := NewSquare(f, r)
			if dst.InPalace() {
				bb = bb.WithBitSet(dst)
			}
		}
		advisorMoves[sq] = bb
	}
}

func initKingMoves() {
	for sq := Square(0); sq < NumSquares; sq++ {
		if !sq.InPalace() {
			continue
		}
		file, rank := sq.File(), sq.Rank()
		bb := Empty
		for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			f, r := file+d[0], rank+d[1]
			if f < 0 || f >= NumFiles || r < 0 || r >= NumRanks {
				continue
			}
			dst := NewSquare(f, r)
			if dst.InPalace() {
				bb = bb.WithBitSet(dst)
			}
		}
		kingMoves[sq] = bb
	}
}

// initElephantJumps records, for each square, the up-to-four diagonal
// two-step jumps and the eye square that must be empty for each to be legal.
// Unlike the teacher's diagonal slider, the Elephant never rides through
// intermediate squares - it either jumps clean over its eye or not at all -
// and it may never cross the river onto the opponent's half.
func initElephantJumps() {
	for sq := Square(0); sq < NumSquares; sq++ {
		file, rank := sq.File(), sq.Rank()
		n := 0
		for _, d := range [4][2]int{{2, 2}, {2, -2}, {-2, 2}, {-2, -2}} {
			f, r := file+d[0], rank+d[1]
			if f < 0 || f >= NumFiles || r < 0 || r >= NumRanks {
				continue
			}
			to := NewSquare(f, r)
			if to.SideOfRiver() != sq.SideOfRiver() {
				continue
			}
			eye := NewSquare(file+d[0]/2, rank+d[1]/2)
			elephantEyes[sq][n] = elephantJump{to: to, eye: eye}
			n++
		}
		for ; n < 4; n++ {
			elephantEyes[sq][n] = elephantJump{to: NoSquare, eye: NoSquare}
		}
	}
}

func initBetweenBB() {
	for sq1 := Square(0); sq1 < NumSquares; sq1++ {
		for sq2 := Square(0); sq2 < NumSquares; sq2++ {
			if sq1 == sq2 {
				continue
			}
			f1, r1 := sq1.File(), sq1.Rank()
			f2, r2 := sq2.File(), sq2.Rank()

			if f1 != f2 && r1 != r2 {
				continue // not rank- or file-aligned
			}

			df, dr := sign(f2-f1), sign(r2-r1)
			between := Empty
			f, r := f1+df, r1+dr
			for f != f2 || r != r2 {
				between = between.WithBitSet(NewSquare(f, r))
				f += df
				r += dr
			}
			betweenBB[sq1][sq2] = between
		}
	}
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// PawnMoves returns the squares a pawn of color c on sq may move to (which,
// in Xiangqi, are exactly the squares it may capture on).
func PawnMoves(sq Square, c Color) Bitboard {
	return pawnMoves[c][sq]
}

// AdvisorMoves returns the Advisor's reachable squares from sq.
func AdvisorMoves(sq Square) Bitboard {
	return advisorMoves[sq]
}

// KingMoves returns the General's reachable squares from sq.
func KingMoves(sq Square) Bitboard {
	return kingMoves[sq]
}

// ElephantMoves returns the Elephant's reachable squares from sq given the
// current occupancy, skipping any jump whose eye square is blocked.
func ElephantMoves(sq Square, occupied Bitboard) Bitboard {
	bb := Empty
	for _, j := range elephantEyes[sq] {
		if j.to == NoSquare {
			continue
		}
		if occupied.Contains(j.eye) {
			continue
		}
		bb = bb.WithBitSet(j.to)
	}
	return bb
}

// Between returns the squares strictly between two rank- or file-aligned
// squares. It is empty if the squares are not so aligned.
func Between(sq1, sq2 Square) Bitboard {
	return betweenBB[sq1][sq2]
}

// AttackersTo returns every piece of either color attacking sq under the
// given occupancy.
func (p *Position) AttackersTo(sq Square, occupied Bitboard) Bitboard {
	return p.AttackersByColor(sq, Red, occupied).Union(p.AttackersByColor(sq, Black, occupied))
}

// pawnAttackersFrom returns the squares that, if occupied by a pawn of
// color c, would have sq among their legal moves. Pawn moves are not
// symmetric the way rook, cannon, advisor, king, and elephant moves are - the forward step
// depends on c's direction and the sideways step depends on whether the
// *source* square has crossed the river - so this is computed directly
// rather than reusing PawnMoves the way most other piece kinds do below.
func pawnAttackersFrom(sq Square, c Color) Bitboard {
	file, rank := sq.File(), sq.Rank()
	bb := Empty

	srcRank := rank - 1
	if c == Black {
		srcRank = rank + 1
	}
	if srcRank >= 0 && srcRank < NumRanks {
		bb = bb.WithBitSet(NewSquare(file, srcRank))
	}

	if sq.HasCrossedRiver(c) {
		if file-1 >= 0 {
			bb = bb.WithBitSet(NewSquare(file-1, rank))
		}
		if file+1 < NumFiles {
			bb = bb.WithBitSet(NewSquare(file+1, rank))
		}
	}
	return bb
}

// AttackersByColor returns the pieces of color c attacking sq under the
// given occupancy.
func (p *Position) AttackersByColor(sq Square, c Color, occupied Bitboard) Bitboard {
	attackers := Empty
	attackers = attackers.Union(pawnAttackersFrom(sq, c).Intersect(p.Pieces[c][Pawn]))
	// A horse's leg sits next to the horse, not next to sq, so HorseAttacks(sq)
	// cannot be reused here: check the leg beside each candidate source.
	file, rank := sq.File(), sq.Rank()
	for _, d := range [8][2]int{{1, 2}, {1, -2}, {-1, 2}, {-1, -2}, {2, 1}, {2, -1}, {-2, 1}, {-2, -1}} {
		f, r := file-d[0], rank-d[1]
		if f < 0 || f >= NumFiles || r < 0 || r >= NumRanks {
			continue
		}
		from := NewSquare(f, r)
		if p.Pieces[c][Knight].Contains(from) && !occupied.Contains(NewSquare(f+d[0]/2, r+d[1]/2)) {
			attackers = attackers.WithBitSet(from)
		}
	}
	attackers = attackers.Union(AdvisorMoves(sq).Intersect(p.Pieces[c][Advisor]))
	attackers = attackers.Union(KingMoves(sq).Intersect(p.Pieces[c][King]))
	attackers = attackers.Union(ElephantMoves(sq, occupied).Intersect(p.Pieces[c][Bishop]))
	attackers = attackers.Union(RookAttacks(sq, occupied).Intersect(p.Pieces[c][Rook]))

	cannonReach := CannonAttacks(sq, occupied)
	cannonAttackers := cannonReach.Intersect(p.Pieces[c][Cannon])
	// Only squares actually occupied by a cannon beyond a screen count as
	// attacking sq; quiet reach never threatens it.
	attackers = attackers.Union(cannonAttackers)

	return attackers
}

// IsSquareAttacked reports whether sq is attacked by byColor.
func (p *Position) IsSquareAttacked(sq Square, byColor Color) bool {
	return p.AttackersByColor(sq, byColor, p.AllOccupied).Any()
}

// IsAttacked reports whether any square in squares is attacked by an enemy
// of defending, the bitboard-of-squares counterpart to IsSquareAttacked -
// useful for questions like "is any square this piece would cross attacked"
// without looping over Squares() and calling IsSquareAttacked per square.
func (p *Position) IsAttacked(defending Color, squares Bitboard) bool {
	attacker := defending.Other()
	reachable := squares
	for reachable.Any() {
		sq := reachable.PopLSB()
		if p.IsSquareAttacked(sq, attacker) {
			return true
		}
	}
	return false
}

// ColorAt returns the color of the piece standing on sq, or NoColor if sq is
// empty.
func (p *Position) ColorAt(sq Square) Color {
	return p.PieceAt(sq).Color()
}

// UpdateCheckers refreshes the Checkers bitboard for the side to move,
// taking into account the flying-general rule: if the two palace Kings face
// each other with a clear file between them, each counts as attacking the
// other even from outside the palace's normal reach.
func (p *Position) UpdateCheckers() {
	us := p.SideToMove
	kingBB := p.Pieces[us][King]
	if kingBB.IsEmpty() {
		p.Checkers = Empty
		return
	}
	kingSq := kingBB.LSB()
	checkers := p.AttackersByColor(kingSq, us.Other(), p.AllOccupied)
	if p.KingsFacing() {
		checkers = checkers.WithBitSet(p.KingSquare[us.Other()])
	}
	p.Checkers = checkers
}

// KingsFacing reports whether both Kings stand on the same file with no
// piece between them - an illegal exposure ("flying general") rather than a
// legal way to escape check.
func (p *Position) KingsFacing() bool {
	red, black := p.KingSquare[Red], p.KingSquare[Black]
	if red == NoSquare || black == NoSquare {
		return false
	}
	if red.File() != black.File() {
		return false
	}
	return Between(red, black).Intersect(p.AllOccupied).IsEmpty()
}
