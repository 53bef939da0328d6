package board

import (
	"strconv"
	"strings"
)

// StartFEN is the position-notation string for the Xiangqi starting
// position: ten ranks of placement (Black's back rank first), the side to
// move, two literal "-" placeholders kept for notation compatibility with
// the orthodox-chess FEN fields they descend from (Xiangqi has no castling
// rights or en-passant target, so neither placeholder is ever interpreted),
// and the half-move/full-move counters.
const StartFEN = "rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR w - - 0 1"

// ParseFEN parses a position-notation string into a Position.
func ParseFEN(fen string) (*Position, error) {
	parts := strings.Fields(fen)
	if len(parts) < 4 {
		return nil, &InvalidFenError{Fen: fen, Reason: WrongFieldCount,
			Detail: "need at least 4 fields"}
	}

	pos := &Position{FullMoveNumber: 1}
	pos.KingSquare[Red] = NoSquare
	pos.KingSquare[Black] = NoSquare
	pos.initMailbox()

	if err := parsePiecePlacement(pos, parts[0], fen); err != nil {
		return nil, err
	}

	if err := pos.Validate(); err != nil {
		return nil, &InvalidFenError{Fen: fen, Reason: FailedStructuralCheck, Detail: err.Error()}
	}

	switch parts[1] {
	case "w", "r":
		pos.SideToMove = Red
	case "b":
		pos.SideToMove = Black
	default:
		return nil, &InvalidFenError{Fen: fen, Reason: BadSideToMove, Detail: parts[1]}
	}

	// parts[2] and parts[3] are the orthodox-chess castling/en-passant
	// placeholders; Xiangqi has neither concept, so they are accepted
	// (almost always "-") but never interpreted.

	if len(parts) > 4 {
		hmc, err := strconv.Atoi(parts[4])
		if err != nil {
			return nil, &InvalidFenError{Fen: fen, Reason: BadCounter, Detail: parts[4]}
		}
		pos.HalfMoveClock = hmc
	}
	if len(parts) > 5 {
		fmn, err := strconv.Atoi(parts[5])
		if err != nil {
			return nil, &InvalidFenError{Fen: fen, Reason: BadCounter, Detail: parts[5]}
		}
		pos.FullMoveNumber = fmn
	}

	pos.updateOccupied()
	pos.findKings()
	pos.Hash = pos.ComputeHash()
	pos.PawnKey = pos.ComputePawnKey()
	pos.NonPawnKeys[Red] = pos.ComputeNonPawnKey(Red)
	pos.NonPawnKeys[Black] = pos.ComputeNonPawnKey(Black)
	pos.UpdateCheckers()

	return pos, nil
}

// parsePiecePlacement parses the '/'-separated rank placement section.
func parsePiecePlacement(pos *Position, placement, fen string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != NumRanks {
		return &InvalidFenError{Fen: fen, Reason: WrongRankCount,
			Detail: strconv.Itoa(len(ranks)) + " ranks"}
	}

	for i, rankStr := range ranks {
		rank := NumRanks - 1 - i // position notation lists Black's back rank first
		file := 0
		prevWasDigit := false

		for _, c := range rankStr {
			if file >= NumFiles {
				return &InvalidFenError{Fen: fen, Reason: WrongFileCount,
					Detail: "too many squares in rank " + strconv.Itoa(rank+1)}
			}
			if c >= '1' && c <= '9' {
				if prevWasDigit {
					return &InvalidFenError{Fen: fen, Reason: AdjacentDigits,
						Detail: "rank " + strconv.Itoa(rank+1)}
				}
				file += int(c - '0')
				prevWasDigit = true
				continue
			}
			prevWasDigit = false
			piece := PieceFromChar(byte(c))
			if piece == NoPiece {
				return &InvalidFenError{Fen: fen, Reason: BadPieceChar, Detail: string(c)}
			}
			pos.setPiece(piece, NewSquare(file, rank))
			file++
		}

		if file != NumFiles {
			return &InvalidFenError{Fen: fen, Reason: WrongFileCount,
				Detail: "rank " + strconv.Itoa(rank+1) + " has " + strconv.Itoa(file) + " files"}
		}
	}

	return nil
}

// ToFEN renders the position back into position notation.
func (p *Position) ToFEN() string {
	var sb strings.Builder

	for rank := NumRanks - 1; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < NumFiles; file++ {
			piece := p.PieceAt(NewSquare(file, rank))
			if piece == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if p.SideToMove == Red {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteString(" - -")

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.HalfMoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.FullMoveNumber))

	return sb.String()
}

// ComputeHash recomputes the full Zobrist hash for the position from
// scratch, rather than relying on whatever incremental state Hash may hold.
func (p *Position) ComputeHash() uint64 {
	var hash uint64
	for c := Red; c <= Black; c++ {
		for pt := Pawn; pt <= Cannon; pt++ {
			p.Pieces[c][pt].ForEach(func(sq Square) {
				hash ^= ZobristPiece(c, pt, sq)
			})
		}
	}
	if p.SideToMove == Black {
		hash ^= ZobristSideToMove()
	}
	return hash
}

// ComputePawnKey recomputes the pawn-only hash key from scratch.
func (p *Position) ComputePawnKey() uint64 {
	var key uint64
	for c := Red; c <= Black; c++ {
		p.Pieces[c][Pawn].ForEach(func(sq Square) {
			key ^= ZobristPiece(c, Pawn, sq)
		})
	}
	return key
}

// ComputeNonPawnKey recomputes color c's non-pawn hash key from scratch.
func (p *Position) ComputeNonPawnKey(c Color) uint64 {
	var key uint64
	for pt := Knight; pt <= Cannon; pt++ {
		p.Pieces[c][pt].ForEach(func(sq Square) {
			key ^= ZobristPiece(c, pt, sq)
		})
	}
	return key
}
