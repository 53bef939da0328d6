// Package ui renders a live board.Position with Ebitengine: a static board
// viewer plus click-to-move input, not a full game shell with menus, sound,
// or persisted settings - the search/eval driver that would make those
// meaningful is out of scope.
package ui

import (
	"bytes"
	"embed"
	"image"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"xiangqi/internal/board"
)

//go:embed assets/pieces/*.svg
var pieceAssets embed.FS

// SpriteManager rasterizes and caches the SVG glyph for each of the
// fourteen Xiangqi piece/colour combinations.
type SpriteManager struct {
	pieces      map[board.Piece]*ebiten.Image
	size        int
	renderScale float64
}

// NewSpriteManager creates a sprite manager whose pieces render at size
// display pixels.
func NewSpriteManager(size int) *SpriteManager {
	sm := &SpriteManager{
		pieces:      make(map[board.Piece]*ebiten.Image),
		size:        size,
		renderScale: 3.0,
	}
	sm.loadPieces()
	return sm
}

// pieceFiles maps each piece to its embedded SVG asset.
var pieceFiles = map[board.Piece]string{
	board.RedPawn:      "assets/pieces/RP.svg",
	board.RedKnight:    "assets/pieces/RN.svg",
	board.RedBishop:    "assets/pieces/RB.svg",
	board.RedRook:      "assets/pieces/RR.svg",
	board.RedAdvisor:   "assets/pieces/RA.svg",
	board.RedKing:      "assets/pieces/RK.svg",
	board.RedCannon:    "assets/pieces/RC.svg",
	board.BlackPawn:    "assets/pieces/BP.svg",
	board.BlackKnight:  "assets/pieces/BN.svg",
	board.BlackBishop:  "assets/pieces/BB.svg",
	board.BlackRook:    "assets/pieces/BR.svg",
	board.BlackAdvisor: "assets/pieces/BA.svg",
	board.BlackKing:    "assets/pieces/BK.svg",
	board.BlackCannon:  "assets/pieces/BC.svg",
}

func (sm *SpriteManager) loadPieces() {
	renderSize := int(float64(sm.size) * sm.renderScale)

	for piece, path := range pieceFiles {
		data, err := pieceAssets.ReadFile(path)
		if err != nil {
			log.Printf("ui: failed to read piece asset %s: %v", path, err)
			continue
		}

		icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
		if err != nil {
			log.Printf("ui: failed to parse piece asset %s: %v", path, err)
			continue
		}
		icon.SetTarget(0, 0, float64(renderSize), float64(renderSize))

		rgba := image.NewRGBA(image.Rect(0, 0, renderSize, renderSize))
		scanner := rasterx.NewScannerGV(renderSize, renderSize, rgba, rgba.Bounds())
		raster := rasterx.NewDasher(renderSize, renderSize, scanner)
		icon.Draw(raster, 1.0)

		sm.pieces[piece] = ebiten.NewImageFromImage(rgba)
	}
}

// GetPiece returns the cached sprite for p, or nil if p has none.
func (sm *SpriteManager) GetPiece(p board.Piece) *ebiten.Image {
	return sm.pieces[p]
}

// DrawPieceAt draws piece p with its top-left corner at pixel (x, y).
func (sm *SpriteManager) DrawPieceAt(screen *ebiten.Image, p board.Piece, x, y int) {
	if p == board.NoPiece {
		return
	}
	sprite := sm.GetPiece(p)
	if sprite == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	scale := 1.0 / sm.renderScale
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(float64(x), float64(y))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(sprite, op)
}

// Size returns the on-screen size of a piece sprite in pixels.
func (sm *SpriteManager) Size() int {
	return sm.size
}
