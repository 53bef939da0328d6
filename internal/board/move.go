package board

import "fmt"

// Move encodes a Xiangqi move in 16 bits:
// bits 0-6:   from square (0-89)
// bits 7-13:  to square (0-89)
// bits 14-15: flag (0=quiet, 1=capture)
//
// Xiangqi has no promotion, castling, or en passant, so unlike orthodox
// chess move encodings there is no room reserved for them here.
type Move uint16

const (
	fromMask = 0x007F
	toShift  = 7
	toMask   = 0x3F80
	flagMask = 0xC000
)

// Move flags.
const (
	FlagQuiet   uint16 = 0 << 14
	FlagCapture uint16 = 1 << 14
)

// NoMove represents an invalid or null move.
const NoMove Move = 0

// NewMove creates a move with an explicit flag.
func NewMove(from, to Square, flag uint16) Move {
	return Move(uint16(from)|uint16(to)<<toShift) | Move(flag)
}

// NewQuietMove creates a non-capturing move.
func NewQuietMove(from, to Square) Move {
	return NewMove(from, to, FlagQuiet)
}

// NewCaptureMove creates a capturing move.
func NewCaptureMove(from, to Square) Move {
	return NewMove(from, to, FlagCapture)
}

// From returns the origin square.
func (m Move) From() Square {
	return Square(m & fromMask)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square((m & toMask) >> toShift)
}

// Flag returns the move's flag bits.
func (m Move) Flag() uint16 {
	return uint16(m) & flagMask
}

// IsCapture reports whether the move is flagged as a capture.
func (m Move) IsCapture() bool {
	return m.Flag() == FlagCapture
}

// IsQuiet reports whether the move is flagged as quiet.
func (m Move) IsQuiet() bool {
	return m.Flag() == FlagQuiet
}

// IsNoisy reports whether the move is tactically significant enough that a
// quiescence-style search would want to consider it. With no promotion or
// en-passant flags to also treat as noisy, this is exactly IsCapture.
func (m Move) IsNoisy() bool {
	return m.IsCapture()
}

// String returns a coordinate-notation rendering of the move (e.g. "e1e2").
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	return m.From().String() + m.To().String()
}

// ParseMove parses a coordinate-notation move string against pos, inferring
// the capture flag from whatever occupies the destination square.
func ParseMove(s string, pos *Position) (Move, error) {
	if len(s) < 4 {
		return NoMove, fmt.Errorf("invalid move string: %s", s)
	}

	fromLen := 2
	if s[2] >= '0' && s[2] <= '9' {
		fromLen = 3 // rank 10, e.g. "e10e9"
	}
	from, err := ParseSquare(s[0:fromLen])
	if err != nil {
		return NoMove, err
	}

	rest := s[fromLen:]
	if len(rest) < 2 {
		return NoMove, fmt.Errorf("invalid move string: %s", s)
	}
	var toStr string
	switch {
	case len(rest) >= 3 && rest[2] >= '0' && rest[2] <= '9':
		toStr = rest[0:3]
	default:
		toStr = rest[0:2]
	}
	to, err := ParseSquare(toStr)
	if err != nil {
		return NoMove, err
	}

	if pos.PieceAt(from) == NoPiece {
		return NoMove, fmt.Errorf("no piece at %s", from)
	}

	if pos.PieceAt(to) != NoPiece {
		return NewCaptureMove(from, to), nil
	}
	return NewQuietMove(from, to), nil
}

// MoveList is a fixed-size list of moves to avoid allocations during
// move generation.
type MoveList struct {
	moves [128]Move
	count int
}

// NewMoveList creates an empty move list.
func NewMoveList() *MoveList {
	return &MoveList{}
}

// Add appends a move to the list.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves in the list.
func (ml *MoveList) Len() int {
	return ml.count
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

// Set overwrites the move at index i.
func (ml *MoveList) Set(i int, m Move) {
	ml.moves[i] = m
}

// Swap exchanges two moves in the list.
func (ml *MoveList) Swap(i, j int) {
	ml.moves[i], ml.moves[j] = ml.moves[j], ml.moves[i]
}

// Clear empties the list without releasing its backing array.
func (ml *MoveList) Clear() {
	ml.count = 0
}

// Contains reports whether m is present in the list.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i] == m {
			return true
		}
	}
	return false
}

// Slice returns the moves currently held as a slice.
func (ml *MoveList) Slice() []Move {
	return ml.moves[:ml.count]
}

// UndoInfo captures everything needed to reverse a MakeMove call.
type UndoInfo struct {
	CapturedPiece Piece
	Hash          uint64
	PawnKey       uint64
	NonPawnKeys   [2]uint64
	Checkers      Bitboard
	KingSquare    [2]Square
	Pieces        [2][7]Bitboard
	Occupied      [2]Bitboard
	AllOccupied   Bitboard
	Mailbox       [NumSquares]Piece
	HalfMoveClock int
}
