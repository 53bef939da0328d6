// Command xiangqi-perft cross-checks the move generator by walking the
// legal-move tree from a position and printing leaf counts per depth, the
// standard technique for catching make/unmake or generation bugs that a
// single test position might miss.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"xiangqi/internal/board"
	"xiangqi/internal/book"
	"xiangqi/internal/storage"
)

func main() {
	fen := flag.String("fen", board.StartFEN, "position to search from")
	depth := flag.Int("depth", 4, "maximum perft depth")
	divide := flag.Bool("divide", false, "print per-root-move subtree counts at the top depth")
	probeOpeningBook := flag.Bool("book", false, "probe the opening book for this position before running perft")
	bookDir := flag.String("book-dir", "", "opening book database directory (defaults to the platform data directory)")
	flag.Parse()

	pos, err := board.ParseFEN(*fen)
	if err != nil {
		log.Fatalf("xiangqi-perft: %v", err)
	}

	if *probeOpeningBook {
		dir := *bookDir
		if dir == "" {
			d, err := storage.GetDatabaseDir()
			if err != nil {
				log.Fatalf("xiangqi-perft: %v", err)
			}
			dir = d
		}
		probeBook(dir, pos)
	}

	for d := 1; d <= *depth; d++ {
		start := time.Now()
		nodes := perft(pos, d)
		elapsed := time.Since(start)
		fmt.Printf("depth %d: %d nodes (%s)\n", d, nodes, elapsed)
	}

	if *divide {
		dividePerft(pos, *depth)
	}
}

// probeBook opens the book database at dir and prints every candidate it
// stores for pos with its weight, heaviest first, leaving the book open for the rest of the process
// (the OS reclaims the handle on exit, matching the teacher's own
// short-lived CLI database usage).
func probeBook(dir string, pos *board.Position) {
	b, err := book.Open(dir)
	if err != nil {
		log.Printf("xiangqi-perft: book.Open(%s): %v", dir, err)
		return
	}

	entries := b.ProbeAll(pos)
	if len(entries) == 0 {
		fmt.Printf("book: no entries for this position\n")
		return
	}
	for _, e := range entries {
		fmt.Printf("book: %s (weight %d)\n", e.Move, e.Weight)
	}
}

func perft(p *board.Position, depth int) int64 {
	if depth == 0 {
		return 1
	}
	moves := p.GenerateLegalMoves()
	if depth == 1 {
		return int64(moves.Len())
	}
	var nodes int64
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		undo, err := p.MakeMove(m)
		if err != nil {
			continue
		}
		nodes += perft(p, depth-1)
		p.UnmakeMove(m, undo)
	}
	return nodes
}

func dividePerft(p *board.Position, depth int) {
	moves := p.GenerateLegalMoves()
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		undo, err := p.MakeMove(m)
		if err != nil {
			continue
		}
		nodes := perft(p, depth-1)
		p.UnmakeMove(m, undo)
		fmt.Printf("%s: %d\n", m, nodes)
	}
}
