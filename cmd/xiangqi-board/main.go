// Command xiangqi-board is a Xiangqi board viewer built with Ebitengine.
package main

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"xiangqi/internal/ui"
)

func main() {
	game := ui.NewGame()

	ebiten.SetWindowSize(game.Layout(0, 0))
	ebiten.SetWindowTitle("Xiangqi")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
