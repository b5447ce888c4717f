package rules

import (
	"chesscore/src/base"
	"chesscore/src/logic/rules/moves"
)

// IsLegalMove checks the move against the current legal move set.
func IsLegalMove(b *base.Board, mv base.Move) bool {
	for _, m := range moves.LegalMoves(b) {
		if m.From == mv.From && m.To == mv.To && m.Promotion == mv.Promotion {
			return true
		}
	}
	return false
}

func IsInCheck(b *base.Board, c base.Color) bool {
	return moves.InCheck(b, c)
}

// StatusOf evaluates terminal conditions, first match wins: checkmate,
// stalemate, threefold repetition, fifty-move rule, insufficient
// material. repetitions is how often the current position hash has
// occurred in the game, the current occurrence included.
func StatusOf(b *base.Board, repetitions int) base.GameStatus {
	if b == nil {
		return base.InvalidGame
	}
	inCheck := IsInCheck(b, b.SideToMove())
	if len(moves.LegalMoves(b)) == 0 {
		if inCheck {
			return base.Checkmate
		}
		return base.Stalemate
	}
	if repetitions >= 3 {
		return base.DrawByRepetition
	}
	// 100 halfmoves == 50 full moves without pawn move or capture
	if b.Halfmove >= 100 {
		return base.DrawByFiftyMove
	}
	if IsInsufficientMaterial(b) {
		return base.DrawByMaterial
	}
	if inCheck {
		return base.Check
	}
	return base.Pass
}

// IsInsufficientMaterial covers the dead positions no legal sequence can
// win from: bare kings, a lone minor, or single same-shaded bishops.
func IsInsufficientMaterial(b *base.Board) bool {
	white := base.CountMaterial(b, base.White)
	black := base.CountMaterial(b, base.Black)

	if white.Pawns+black.Pawns > 0 ||
		white.Rooks+black.Rooks > 0 ||
		white.Queens+black.Queens > 0 {
		return false
	}

	totalMinors := white.Minors() + black.Minors()
	if totalMinors <= 1 {
		return true
	}

	if white.Bishops == 1 && black.Bishops == 1 && totalMinors == 2 {
		return white.BishopShades[0] == black.BishopShades[0]
	}
	return false
}
