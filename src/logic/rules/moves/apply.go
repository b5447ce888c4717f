package moves

import (
	"fmt"

	"chesscore/src/base"
	"chesscore/src/logic/attack"
)

// InCheck reports whether the color's king square sits in the opponent's
// attacked set.
func InCheck(b *base.Board, c base.Color) bool {
	kingSq, ok := b.KingSquare(c)
	if !ok {
		return false
	}
	return attack.Compute(b, c.Other()).All.Has(kingSq)
}

// Apply mutates the board with one atomic move transition and returns the
// move annotated with what it captured. Legality is the caller's problem
// (see rules.IsLegalMove); Apply only rejects moves it cannot express,
// leaving the board untouched in that case.
func Apply(b *base.Board, mv base.Move) (base.Move, error) {
	if b == nil {
		return mv, fmt.Errorf("%w: nil board", base.ErrIllegalMove)
	}
	p := b.PieceAt(mv.From)
	if p == nil {
		return mv, fmt.Errorf("%w: no piece at %s", base.ErrIllegalMove, mv.From.Algebraic())
	}
	c := b.SideToMove()
	if p.Color != c {
		return mv, fmt.Errorf("%w: not %s to move", base.ErrIllegalMove, p.Color)
	}
	if q := b.PieceAt(mv.To); q != nil && q.Color == c {
		return mv, fmt.Errorf("%w: own piece at %s", base.ErrIllegalMove, mv.To.Algebraic())
	}
	promoting := p.Type == base.Pawn && int(mv.To.Rank) == promoRank(c)
	if promoting && mv.Promotion == base.NoPieceType {
		return mv, fmt.Errorf("%w: promotion piece not chosen", base.ErrIllegalMove)
	}

	captured := base.NoPieceType

	// 1. en passant removes the bypassed pawn, not the target square
	if p.Type == base.Pawn && b.EnPassant != nil && mv.To == *b.EnPassant && b.PieceAt(mv.To) == nil {
		capSq := base.Square{File: mv.To.File, Rank: mv.From.Rank}
		if victim := b.PieceAt(capSq); victim != nil && victim.Type == base.Pawn && victim.Color != c {
			b.SetPieceAt(capSq, nil)
			captured = base.Pawn
		}
	}

	// 2. plain capture
	if q := b.PieceAt(mv.To); q != nil {
		captured = q.Type
		// a rook taken on its corner loses that castling right with it
		clearRookRight(b, mv.To, q)
	}

	// 3. relocate; castling drags the rook along in the same transition
	b.SetPieceAt(mv.To, p)
	b.SetPieceAt(mv.From, nil)
	p.HasMoved = true
	if p.Type == base.King && mv.From.File == 4 {
		back := mv.From.Rank
		if mv.To.File == 6 {
			rookFrom := base.Square{File: 7, Rank: back}
			rookTo := base.Square{File: 5, Rank: back}
			if rk := b.PieceAt(rookFrom); rk != nil {
				b.SetPieceAt(rookTo, rk)
				b.SetPieceAt(rookFrom, nil)
				rk.HasMoved = true
			}
		}
		if mv.To.File == 2 {
			rookFrom := base.Square{File: 0, Rank: back}
			rookTo := base.Square{File: 3, Rank: back}
			if rk := b.PieceAt(rookFrom); rk != nil {
				b.SetPieceAt(rookTo, rk)
				b.SetPieceAt(rookFrom, nil)
				rk.HasMoved = true
			}
		}
	}

	// 4. promotion replaces the pawn
	if promoting {
		b.SetPieceAt(mv.To, &base.Piece{Type: mv.Promotion, Color: c, HasMoved: true})
	}

	// 5. castling rights forfeited by the mover
	pl := b.Player(c)
	if p.Type == base.King {
		pl.CastleKingSide = false
		pl.CastleQueenSide = false
	}
	if p.Type == base.Rook {
		clearRookRight(b, mv.From, p)
	}

	// 6. en passant target: only when a double push lands next to an
	// enemy pawn that could actually take it
	b.EnPassant = nil
	if p.Type == base.Pawn {
		delta := int(mv.To.Rank) - int(mv.From.Rank)
		if delta == 2 || delta == -2 {
			if enemyPawnAdjacent(b, mv.To, c) {
				mid := base.Square{File: mv.From.File, Rank: uint8((int(mv.From.Rank) + int(mv.To.Rank)) / 2)}
				b.EnPassant = &mid
			}
		}
	}

	// 7. clocks
	if p.Type == base.Pawn || promoting || captured != base.NoPieceType {
		b.Halfmove = 0
	} else {
		b.Halfmove++
	}
	if !b.WhiteToMove {
		b.Fullmove++
	}

	// 8. refresh both check flags
	b.White.InCheck = InCheck(b, base.White)
	b.Black.InCheck = InCheck(b, base.Black)

	// 9. flip side to move
	b.WhiteToMove = !b.WhiteToMove

	mv.Captured = captured
	return mv, nil
}

// clearRookRight drops the castling right tied to a rook origin corner.
func clearRookRight(b *base.Board, sq base.Square, rk *base.Piece) {
	if rk.Type != base.Rook {
		return
	}
	pl := b.Player(rk.Color)
	if int(sq.Rank) != rk.Color.BackRank() {
		return
	}
	switch sq.File {
	case 0:
		pl.CastleQueenSide = false
	case 7:
		pl.CastleKingSide = false
	}
}

func enemyPawnAdjacent(b *base.Board, landing base.Square, mover base.Color) bool {
	for _, df := range []int{-1, 1} {
		f := int(landing.File) + df
		if !base.OnBoard(f, int(landing.Rank)) {
			continue
		}
		q := b.PieceAt(base.Square{File: uint8(f), Rank: landing.Rank})
		if q != nil && q.Type == base.Pawn && q.Color != mover {
			return true
		}
	}
	return false
}
