package ui

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"xiangqi/internal/board"
)

// CellSize is the pixel spacing between grid intersections; there is no
// side panel, since there is no move list, clock, or settings menu to show
// without a search driver behind them.
const CellSize = 72

// Game implements ebiten.Game as a read/move viewer over a live
// board.Position: it draws the current position and turns mouse clicks into
// make_move calls when they name a legal move, nothing more.
type Game struct {
	pos      *board.Position
	renderer *Renderer

	selected board.Square
	legal    *board.MoveList
	checking board.Bitboard
	lastMove board.Move
}

// NewGame creates a viewer starting from the Xiangqi start position.
func NewGame() *Game {
	return &Game{
		pos:      board.NewPosition(),
		renderer: NewRenderer(CellSize),
		selected: board.NoSquare,
		lastMove: board.NoMove,
	}
}

// Update handles a single mouse click: the first click on a piece belonging
// to the side to move selects it and computes its legal destinations; a
// second click on a highlighted destination plays the move.
func (g *Game) Update() error {
	if !ebiten.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return nil
	}
	x, y := ebiten.CursorPosition()
	sq := g.renderer.ScreenToSquare(x, y)
	if sq == board.NoSquare {
		g.clearSelection()
		return nil
	}

	if g.selected == board.NoSquare {
		g.trySelect(sq)
		return nil
	}

	if sq == g.selected {
		g.clearSelection()
		return nil
	}

	for i := 0; i < g.legal.Len(); i++ {
		m := g.legal.Get(i)
		if m.To() == sq {
			if _, err := g.pos.MakeMove(m); err != nil {
				log.Printf("ui: unexpected illegal move %s: %v", m, err)
			} else {
				g.lastMove = m
			}
			g.clearSelection()
			return nil
		}
	}

	g.trySelect(sq)
	return nil
}

func (g *Game) trySelect(sq board.Square) {
	piece := g.pos.PieceAt(sq)
	if piece == board.NoPiece || piece.Color() != g.pos.SideToMove {
		g.clearSelection()
		return
	}

	all := g.pos.GenerateLegalMoves()
	fromHere := board.NewMoveList()
	checking := board.Empty
	for i := 0; i < all.Len(); i++ {
		m := all.Get(i)
		if m.From() != sq {
			continue
		}
		fromHere.Add(m)
		if g.pos.GivesCheck(m) {
			checking = checking.WithBitSet(m.To())
		}
	}
	g.selected = sq
	g.legal = fromHere
	g.checking = checking
}

func (g *Game) clearSelection() {
	g.selected = board.NoSquare
	g.legal = nil
	g.checking = board.Empty
}

// Draw renders the board, highlights, and pieces for the current frame.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.renderer.Theme().Background)
	g.renderer.DrawBoard(screen)
	g.renderer.DrawHighlights(screen, g.selected, g.legal, g.checking, g.lastMove)
	if g.pos.InCheck() {
		g.renderer.DrawCheck(screen, g.pos.KingSquare[g.pos.SideToMove])
	}
	g.renderer.DrawPieces(screen, g.pos, false, board.NoSquare)
}

// Layout fixes the logical screen size to the board's natural size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.renderer.Width(), g.renderer.Height()
}
