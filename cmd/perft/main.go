// Command perft counts legal move generator leaf nodes to a fixed
// depth, the cross-check used to validate a bitboard move generator's
// make/unmake and legality filtering against known node counts.
package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	. "github.com/cataphract-engine/cataphract/common"
)

func main() {
	if len(os.Args) <= 2 || os.Args[1][0] != '-' {
		usage()
		return
	}
	depth, err := strconv.Atoi(os.Args[2])
	if err != nil || depth <= 0 {
		usage()
		return
	}

	switch os.Args[1] {
	case "-p":
		runPerft(depth, os.Args)
	case "-v":
		runVerify(depth, os.Args)
	default:
		usage()
	}
}

func runPerft(depth int, args []string) {
	fen := InitialPositionFEN
	if len(args) > 3 {
		fen = args[3]
	}
	b, err := NewBoard(fen, NewState())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("Starting position: %s\n", fen)
	for i := 1; i <= depth; i++ {
		start := time.Now()
		nodes := perft(b, i)
		elapsed := time.Since(start)
		fmt.Printf("perft(%d) - %v - %d nodes visited\n", i, elapsed, nodes)
	}
}

func runVerify(depth int, args []string) {
	if len(args) < 6 {
		usage()
		return
	}
	fen := args[3]
	want, err := strconv.ParseUint(args[4], 10, 64)
	if err != nil {
		usage()
		return
	}
	line := args[5]

	b, err := NewBoard(fen, NewState())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	got := perft(b, depth)
	if uint64(got) == want {
		fmt.Printf("%s passed\n", line)
	} else {
		fmt.Printf("%s failed (got %d, want %d)\n", line, got, want)
		os.Exit(1)
	}
}

func perft(b *Board, depth int) int64 {
	var buf [MaxMoves]Move
	moves := b.GenerateMoves(buf[:0])
	if depth <= 1 {
		return int64(len(moves))
	}
	var nodes int64
	var st State
	for _, m := range moves {
		b.ApplyMove(m, &st)
		nodes += perft(b, depth-1)
		b.RetractMove(m)
	}
	return nodes
}

func usage() {
	fmt.Println(`Usage: perft -p <depth> [FEN]
       perft -v <depth> <FEN> <count> <line>

  -p  run perft to depth, printing the leaf count at each ply
  -v  run perft to depth once, comparing against an expected count`)
}
