package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"xiangqi/internal/board"
)

// Theme defines the color scheme for the board. Xiangqi is drawn as a grid
// of lines with pieces sitting on intersections, not a checkerboard of
// alternating squares, so there is no light/dark square pair here.
type Theme struct {
	BoardColor     color.RGBA
	LineColor      color.RGBA
	SelectedColor  color.RGBA
	LegalMoveColor color.RGBA
	LastMoveColor  color.RGBA
	CheckColor     color.RGBA
	Background     color.RGBA
	TextColor      color.RGBA
}

// DefaultTheme returns the default color theme.
func DefaultTheme() *Theme {
	return &Theme{
		BoardColor:     color.RGBA{230, 199, 145, 255},
		LineColor:      color.RGBA{60, 40, 20, 255},
		SelectedColor:  color.RGBA{247, 247, 105, 180},
		LegalMoveColor: color.RGBA{130, 151, 105, 200},
		LastMoveColor:  color.RGBA{180, 190, 100, 90},
		CheckColor:     color.RGBA{255, 100, 100, 180},
		Background:     color.RGBA{40, 44, 52, 255},
		TextColor:      color.RGBA{220, 220, 220, 255},
	}
}

// Renderer draws a board.Position onto a grid of nine files by ten ranks.
// cellSize is the spacing between adjacent intersections; pieces are drawn
// centered on an intersection rather than filling a square.
type Renderer struct {
	sprites  *SpriteManager
	theme    *Theme
	cellSize int
	margin   int
}

// NewRenderer creates a renderer whose grid cells are cellSize pixels apart.
func NewRenderer(cellSize int) *Renderer {
	return &Renderer{
		sprites:  NewSpriteManager(int(float64(cellSize) * 0.9)),
		theme:    DefaultTheme(),
		cellSize: cellSize,
		margin:   cellSize / 2,
	}
}

// Width returns the pixel width needed to draw the full board.
func (r *Renderer) Width() int {
	return r.margin*2 + (board.NumFiles-1)*r.cellSize
}

// Height returns the pixel height needed to draw the full board.
func (r *Renderer) Height() int {
	return r.margin*2 + (board.NumRanks-1)*r.cellSize
}

// DrawBoard draws the grid lines, river gap, and palace diagonals.
func (r *Renderer) DrawBoard(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, 0, 0, float32(r.Width()), float32(r.Height()), r.theme.BoardColor, false)

	top := float32(r.margin)
	bottom := float32(r.margin + (board.NumRanks-1)*r.cellSize)
	riverTop := float32(r.margin + 4*r.cellSize)    // rank 5, Black's side
	riverBottom := float32(r.margin + 5*r.cellSize) // rank 4, Red's side
	for file := 0; file < board.NumFiles; file++ {
		x := float32(r.margin + file*r.cellSize)
		if file == 0 || file == board.NumFiles-1 {
			vector.StrokeLine(screen, x, top, x, bottom, 1.5, r.theme.LineColor, false)
			continue
		}
		vector.StrokeLine(screen, x, top, x, riverTop, 1.5, r.theme.LineColor, false)
		vector.StrokeLine(screen, x, riverBottom, x, bottom, 1.5, r.theme.LineColor, false)
	}
	for rank := 0; rank < board.NumRanks; rank++ {
		y := float32(r.margin + rank*r.cellSize)
		vector.StrokeLine(screen, float32(r.margin), y, float32(r.margin+(board.NumFiles-1)*r.cellSize), y, 1.5, r.theme.LineColor, false)
	}

	r.drawPalaceDiagonals(screen, 0)
	r.drawPalaceDiagonals(screen, board.NumRanks-3)
}

// drawPalaceDiagonals draws the X crossing the 3x3 palace that spans files
// 3-5 and the three grid rows starting baseRank rows down from the top edge
// (0 is Black's palace, NumRanks-3 is Red's).
func (r *Renderer) drawPalaceDiagonals(screen *ebiten.Image, baseRank int) {
	x0 := float32(r.margin + 3*r.cellSize)
	x1 := float32(r.margin + 5*r.cellSize)
	y0 := float32(r.margin + baseRank*r.cellSize)
	y1 := float32(r.margin + (baseRank+2)*r.cellSize)

	vector.StrokeLine(screen, x0, y0, x1, y1, 1.5, r.theme.LineColor, false)
	vector.StrokeLine(screen, x0, y1, x1, y0, 1.5, r.theme.LineColor, false)
}

// DrawHighlights draws selection and legal-move indicators. Destinations in
// checkingMoves (moves that would give check, per board.Position.GivesCheck)
// are drawn in CheckColor instead of LegalMoveColor, so a player scanning
// their options can see which replies are checks without playing each one.
func (r *Renderer) DrawHighlights(screen *ebiten.Image, selected board.Square, legalMoves *board.MoveList, checkingMoves board.Bitboard, lastMove board.Move) {
	if lastMove != board.NoMove {
		r.highlight(screen, lastMove.From(), r.theme.LastMoveColor)
		r.highlight(screen, lastMove.To(), r.theme.LastMoveColor)
	}
	if selected != board.NoSquare {
		r.highlight(screen, selected, r.theme.SelectedColor)
	}
	if legalMoves != nil {
		for i := 0; i < legalMoves.Len(); i++ {
			to := legalMoves.Get(i).To()
			dotColor := r.theme.LegalMoveColor
			if checkingMoves.Contains(to) {
				dotColor = r.theme.CheckColor
			}
			r.drawLegalMoveIndicator(screen, to, dotColor)
		}
	}
}

// DrawCheck highlights kingSq when its side is in check.
func (r *Renderer) DrawCheck(screen *ebiten.Image, kingSq board.Square) {
	if kingSq != board.NoSquare {
		r.highlight(screen, kingSq, r.theme.CheckColor)
	}
}

func (r *Renderer) highlight(screen *ebiten.Image, sq board.Square, c color.RGBA) {
	if sq == board.NoSquare {
		return
	}
	x, y := r.SquareToScreen(sq)
	radius := float32(r.cellSize) * 0.45
	vector.DrawFilledCircle(screen, float32(x), float32(y), radius, c, false)
}

func (r *Renderer) drawLegalMoveIndicator(screen *ebiten.Image, sq board.Square, c color.RGBA) {
	x, y := r.SquareToScreen(sq)
	vector.DrawFilledCircle(screen, float32(x), float32(y), float32(r.cellSize)*0.15, c, false)
}

// DrawPieces draws every piece on the board, skipping dragSquare if dragging
// is true. Nothing in this package draws a piece at the cursor in its place.
func (r *Renderer) DrawPieces(screen *ebiten.Image, pos *board.Position, dragging bool, dragSquare board.Square) {
	for sq := 0; sq < board.NumSquares; sq++ {
		s := board.Square(sq)
		if dragging && s == dragSquare {
			continue
		}
		piece := pos.PieceAt(s)
		if piece == board.NoPiece {
			continue
		}
		x, y := r.SquareToScreen(s)
		r.sprites.DrawPieceAt(screen, piece, x-r.sprites.Size()/2, y-r.sprites.Size()/2)
	}
}

// SquareToScreen returns the pixel centre of sq's intersection.
func (r *Renderer) SquareToScreen(sq board.Square) (int, int) {
	file := sq.File()
	rank := sq.Rank()
	x := r.margin + file*r.cellSize
	y := r.margin + (board.NumRanks-1-rank)*r.cellSize // rank 0 (Red's side) drawn at the bottom
	return x, y
}

// ScreenToSquare returns the nearest square to pixel (x, y), or NoSquare if
// outside the board's drawn extent.
func (r *Renderer) ScreenToSquare(x, y int) board.Square {
	x -= r.margin
	y -= r.margin
	if x < -r.cellSize/2 || y < -r.cellSize/2 {
		return board.NoSquare
	}
	file := (x + r.cellSize/2) / r.cellSize
	rankFromTop := (y + r.cellSize/2) / r.cellSize
	if file < 0 || file >= board.NumFiles || rankFromTop < 0 || rankFromTop >= board.NumRanks {
		return board.NoSquare
	}
	rank := board.NumRanks - 1 - rankFromTop
	return board.NewSquare(file, rank)
}

// Theme returns the active theme.
func (r *Renderer) Theme() *Theme {
	return r.theme
}

// Sprites returns the sprite manager backing this renderer.
func (r *Renderer) Sprites() *SpriteManager {
	return r.sprites
}
