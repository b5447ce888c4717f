package cli

import (
	"fmt"

	"chesscore/src/base"
)

// DrawFunc renders the position for the user.
type DrawFunc func(b *base.Board)

var glyphs = map[base.Color]map[base.PieceType]string{
	base.White: {
		base.King:   "♔",
		base.Queen:  "♕",
		base.Rook:   "♖",
		base.Bishop: "♗",
		base.Knight: "♘",
		base.Pawn:   "♙",
	},
	base.Black: {
		base.King:   "♚",
		base.Queen:  "♛",
		base.Rook:   "♜",
		base.Bishop: "♝",
		base.Knight: "♞",
		base.Pawn:   "♟",
	},
}

// PrintBoard writes an ANSI-colored board, 8th rank at the top.
func PrintBoard(b *base.Board) {
	const (
		reset   = "\033[0m"
		lightBg = "\033[47m"
		darkBg  = "\033[100m"
		whiteF  = "\033[97m"
		blackF  = "\033[30m"
		dimF    = "\033[90m"
	)

	fmt.Println()
	fmt.Println("   a  b  c  d  e  f  g  h")
	for rank := 0; rank < 8; rank++ {
		label := 8 - rank
		fmt.Printf("%d ", label)
		for file := 0; file < 8; file++ {
			sq := base.Square{File: uint8(file), Rank: uint8(rank)}
			p := b.PieceAt(sq)

			g := " "
			if p != nil {
				g = glyphs[p.Color][p.Type]
			}

			var bg, fg string
			if base.IsLightSquare(sq) {
				bg = lightBg
				fg = blackF
			} else {
				bg = darkBg
				if p != nil && p.Color == base.White {
					fg = whiteF
				} else if p != nil {
					fg = blackF
				} else {
					fg = dimF
				}
			}

			fmt.Printf("%s%s %s %s", bg, fg, g, reset)
		}
		fmt.Printf(" %d\n", label)
	}
	fmt.Println("   a  b  c  d  e  f  g  h")
	fmt.Println()
}

// PrintBoardPlain skips the ANSI codes for dumb terminals.
func PrintBoardPlain(b *base.Board) {
	fmt.Println()
	fmt.Println("  a b c d e f g h")
	for rank := 0; rank < 8; rank++ {
		label := 8 - rank
		fmt.Printf("%d ", label)
		for file := 0; file < 8; file++ {
			p := b.PieceAt(base.Square{File: uint8(file), Rank: uint8(rank)})
			g := "."
			if p != nil {
				g = glyphs[p.Color][p.Type]
			}
			fmt.Printf("%s ", g)
		}
		fmt.Printf("%d\n", label)
	}
	fmt.Println("  a b c d e f g h")
	fmt.Println()
}
