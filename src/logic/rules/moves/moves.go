package moves

import (
	"chesscore/src/base"
	"chesscore/src/logic/attack"
)

func startRank(c base.Color) int {
	if c == base.White {
		return 6
	}
	return 1
}

func promoRank(c base.Color) int {
	if c == base.White {
		return 0
	}
	return 7
}

var promotionTypes = [4]base.PieceType{base.Queen, base.Rook, base.Bishop, base.Knight}

// appendPawn emits the move, fanning out the four promotion variants when
// the pawn reaches the far rank.
func appendPawn(c base.Color, mv base.Move, out *[]base.Move) {
	if int(mv.To.Rank) == promoRank(c) {
		for _, pt := range promotionTypes {
			promoted := mv
			promoted.Promotion = pt
			*out = append(*out, promoted)
		}
		return
	}
	*out = append(*out, mv)
}

func pseudoPawnMoves(b *base.Board, from base.Square, c base.Color, out *[]base.Move) {
	dir := c.PawnDir()
	f := int(from.File)
	r := int(from.Rank)

	// push
	if fr := r + dir; base.OnBoard(f, fr) {
		to := base.Square{File: uint8(f), Rank: uint8(fr)}
		if b.PieceAt(to) == nil {
			appendPawn(c, base.Move{From: from, To: to, Piece: base.Pawn}, out)
			// double push from the starting rank
			if r == startRank(c) {
				to2 := base.Square{File: uint8(f), Rank: uint8(r + dir*2)}
				if b.PieceAt(to2) == nil {
					*out = append(*out, base.Move{From: from, To: to2, Piece: base.Pawn})
				}
			}
		}
	}

	// captures
	for _, df := range []int{-1, 1} {
		if !base.OnBoard(f+df, r+dir) {
			continue
		}
		to := base.Square{File: uint8(f + df), Rank: uint8(r + dir)}
		if q := b.PieceAt(to); q != nil && q.Color != c {
			appendPawn(c, base.Move{From: from, To: to, Piece: base.Pawn, Captured: q.Type}, out)
		}
	}

	// en passant onto the tracked target square
	if ep := b.EnPassant; ep != nil {
		if int(ep.Rank) == r+dir && (int(ep.File) == f-1 || int(ep.File) == f+1) {
			*out = append(*out, base.Move{From: from, To: *ep, Piece: base.Pawn, Captured: base.Pawn})
		}
	}
}

func pseudoKnightMoves(b *base.Board, from base.Square, c base.Color, out *[]base.Move) {
	for _, d := range attack.KnightOffsets {
		f := int(from.File) + d.DF
		r := int(from.Rank) + d.DR
		if !base.OnBoard(f, r) {
			continue
		}
		to := base.Square{File: uint8(f), Rank: uint8(r)}
		q := b.PieceAt(to)
		if q == nil {
			*out = append(*out, base.Move{From: from, To: to, Piece: base.Knight})
		} else if q.Color != c {
			*out = append(*out, base.Move{From: from, To: to, Piece: base.Knight, Captured: q.Type})
		}
	}
}

func pseudoSlidingMoves(b *base.Board, from base.Square, p *base.Piece, out *[]base.Move) {
	for _, d := range attack.SliderDirs(p.Type) {
		for step := 1; ; step++ {
			f := int(from.File) + d.DF*step
			r := int(from.Rank) + d.DR*step
			if !base.OnBoard(f, r) {
				break
			}
			to := base.Square{File: uint8(f), Rank: uint8(r)}
			q := b.PieceAt(to)
			if q == nil {
				*out = append(*out, base.Move{From: from, To: to, Piece: p.Type})
				continue
			}
			if q.Color != p.Color {
				*out = append(*out, base.Move{From: from, To: to, Piece: p.Type, Captured: q.Type})
			}
			break
		}
	}
}

func pseudoKingMoves(b *base.Board, from base.Square, c base.Color, opp *attack.Map, out *[]base.Move) {
	for _, d := range attack.AllDirs {
		f := int(from.File) + d.DF
		r := int(from.Rank) + d.DR
		if !base.OnBoard(f, r) {
			continue
		}
		to := base.Square{File: uint8(f), Rank: uint8(r)}
		q := b.PieceAt(to)
		if q == nil {
			*out = append(*out, base.Move{From: from, To: to, Piece: base.King})
		} else if q.Color != c {
			*out = append(*out, base.Move{From: from, To: to, Piece: base.King, Captured: q.Type})
		}
	}

	back := c.BackRank()
	if CanCastle(b, c, true, opp) {
		to := base.Square{File: 6, Rank: uint8(back)}
		*out = append(*out, base.Move{From: from, To: to, Piece: base.King})
	}
	if CanCastle(b, c, false, opp) {
		to := base.Square{File: 2, Rank: uint8(back)}
		*out = append(*out, base.Move{From: from, To: to, Piece: base.King})
	}
}

// CanCastle checks every castling precondition in order: the right is
// still held, the king is not in check, king and rook sit unmoved on
// their origin squares, the squares between them are empty, and no square
// the king crosses (origin included) is attacked.
func CanCastle(b *base.Board, c base.Color, kingSide bool, opp *attack.Map) bool {
	pl := b.Player(c)
	if kingSide && !pl.CastleKingSide {
		return false
	}
	if !kingSide && !pl.CastleQueenSide {
		return false
	}

	back := uint8(c.BackRank())
	kingSq := base.Square{File: 4, Rank: back}
	k := b.PieceAt(kingSq)
	if k == nil || k.Type != base.King || k.Color != c || k.HasMoved {
		return false
	}
	rookFile := uint8(0)
	if kingSide {
		rookFile = 7
	}
	rk := b.PieceAt(base.Square{File: rookFile, Rank: back})
	if rk == nil || rk.Type != base.Rook || rk.Color != c || rk.HasMoved {
		return false
	}

	var between, kingPath []uint8
	if kingSide {
		between = []uint8{5, 6}
		kingPath = []uint8{4, 5, 6}
	} else {
		between = []uint8{1, 2, 3}
		kingPath = []uint8{4, 3, 2}
	}
	for _, f := range between {
		if b.PieceAt(base.Square{File: f, Rank: back}) != nil {
			return false
		}
	}
	for _, f := range kingPath {
		if opp.All.Has(base.Square{File: f, Rank: back}) {
			return false
		}
	}
	return true
}

// PseudoLegalMoves generates moves by piece rule only, with one legality
// concern folded in here: a pinned piece's destinations are cut down to
// its pin line. That alone zeroes out pinned knights and keeps pinned
// pawns and sliders on the axis.
func PseudoLegalMoves(b *base.Board, pins []attack.Pin, opp *attack.Map) []base.Move {
	c := b.SideToMove()
	pinAt := make(map[base.Square]*attack.Pin, len(pins))
	for i := range pins {
		pinAt[pins[i].Square] = &pins[i]
	}

	out := make([]base.Move, 0, 64)
	b.EachPiece(func(from base.Square, p *base.Piece) {
		if p.Color != c {
			return
		}
		var mine []base.Move
		switch p.Type {
		case base.Pawn:
			pseudoPawnMoves(b, from, c, &mine)
		case base.Knight:
			pseudoKnightMoves(b, from, c, &mine)
		case base.Bishop, base.Rook, base.Queen:
			pseudoSlidingMoves(b, from, p, &mine)
		case base.King:
			pseudoKingMoves(b, from, c, opp, &mine)
		}
		if pin, ok := pinAt[from]; ok {
			for _, mv := range mine {
				if pin.Allowed.Has(mv.To) {
					out = append(out, mv)
				}
			}
			return
		}
		out = append(out, mine...)
	})
	return out
}

// LegalMoves is the full legal move set for the side to move.
//
// The filter is a state machine over check status: with no check every
// pseudo-legal move stands (king destinations already exclude attacked
// squares); under a single check only king moves, captures of the checker
// and blocks on its path survive; under double check only king moves do.
func LegalMoves(b *base.Board) []base.Move {
	c := b.SideToMove()
	opp := attack.Compute(b, c.Other())
	pins := attack.Pins(b, c)

	var checkers []attack.Checker
	if kingSq, ok := b.KingSquare(c); ok {
		checkers = attack.Checkers(opp, kingSq)
	}

	pseudo := PseudoLegalMoves(b, pins, opp)
	legal := make([]base.Move, 0, len(pseudo))
	for _, mv := range pseudo {
		if mv.Piece == base.King {
			if opp.All.Has(mv.To) {
				continue
			}
			legal = append(legal, mv)
			continue
		}
		if mv.Piece == base.Pawn && b.EnPassant != nil && mv.To == *b.EnPassant &&
			enPassantExposesKing(b, mv, c) {
			continue
		}
		switch len(checkers) {
		case 0:
			legal = append(legal, mv)
		case 1:
			if squareInPath(checkers[0].Path, mv.To) {
				legal = append(legal, mv)
				continue
			}
			// en passant may remove a checking pawn without landing on it
			if mv.Piece == base.Pawn && b.EnPassant != nil && mv.To == *b.EnPassant {
				capSq := base.Square{File: mv.To.File, Rank: mv.From.Rank}
				if capSq == checkers[0].From {
					legal = append(legal, mv)
				}
			}
		default:
			// double check: nothing but king moves helps
		}
	}
	return legal
}

// enPassantExposesKing vets the one move the pin scan cannot: the
// capture empties two squares on the capturer's rank at once, so a rook
// or queen hiding behind both pawns is invisible to the single-candidate
// pin walk. Played out on a scratch board instead.
func enPassantExposesKing(b *base.Board, mv base.Move, c base.Color) bool {
	scratch := b.Clone()
	if _, err := Apply(scratch, mv); err != nil {
		return true
	}
	return InCheck(scratch, c)
}

func squareInPath(path []base.Square, sq base.Square) bool {
	for _, s := range path {
		if s == sq {
			return true
		}
	}
	return false
}
