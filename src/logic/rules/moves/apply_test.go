package moves_test

import (
	"testing"

	"chesscore/src/base"
	"chesscore/src/logic/convert/convfen"
	"chesscore/src/logic/rules/moves"

	"github.com/stretchr/testify/require"
)

func apply(t *testing.T, b *base.Board, from, to string) base.Move {
	t.Helper()
	mv := base.Move{From: sq(t, from), To: sq(t, to)}
	if p := b.PieceAt(mv.From); p != nil {
		mv.Piece = p.Type
	}
	out, err := moves.Apply(b, mv)
	require.NoError(t, err)
	return out
}

func TestOpeningMovesProduceExpectedFEN(t *testing.T) {
	b := mustBoard(t, base.FEN_START_GAME)
	apply(t, b, "e2", "e4")
	apply(t, b, "e7", "e5")
	require.Equal(t,
		"rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2",
		convfen.ConvertBoardToFEN(b))
}

func TestEnPassantRemovesBypassedPawn(t *testing.T) {
	b := mustBoard(t, "k7/8/8/3pP3/8/8/8/K7 w - d6 0 1")
	out := apply(t, b, "e5", "d6")

	require.Equal(t, base.Pawn, out.Captured)
	require.Nil(t, b.PieceAt(sq(t, "d5")), "the bypassed pawn must be gone")
	p := b.PieceAt(sq(t, "d6"))
	require.NotNil(t, p)
	require.Equal(t, base.Pawn, p.Type)
	require.Equal(t, base.White, p.Color)
}

func TestCastlingRelocatesRookSameTurn(t *testing.T) {
	b := mustBoard(t, "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w KQkq - 0 1")
	apply(t, b, "e1", "g1")

	require.Nil(t, b.PieceAt(sq(t, "h1")))
	rook := b.PieceAt(sq(t, "f1"))
	require.NotNil(t, rook)
	require.Equal(t, base.Rook, rook.Type)
	require.False(t, b.White.CastleKingSide)
	require.False(t, b.White.CastleQueenSide)

	// queenside for black
	apply(t, b, "e8", "c8")
	require.Nil(t, b.PieceAt(sq(t, "a8")))
	rook = b.PieceAt(sq(t, "d8"))
	require.NotNil(t, rook)
	require.Equal(t, base.Rook, rook.Type)
	require.False(t, b.Black.CastleQueenSide)
}

func TestRookMoveForfeitsOneSideOnly(t *testing.T) {
	b := mustBoard(t, "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w KQkq - 0 1")
	apply(t, b, "h1", "g1")
	require.False(t, b.White.CastleKingSide)
	require.True(t, b.White.CastleQueenSide)
}

func TestCapturedRookLosesItsCastlingRight(t *testing.T) {
	b := mustBoard(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	apply(t, b, "a1", "a8")
	require.False(t, b.Black.CastleQueenSide)
	require.True(t, b.Black.CastleKingSide)
}

func TestEnPassantTargetOnlyWithAdjacentEnemyPawn(t *testing.T) {
	b := mustBoard(t, base.FEN_START_GAME)
	apply(t, b, "e2", "e4")
	require.Nil(t, b.EnPassant, "no black pawn can capture, so no target")

	b = mustBoard(t, "k7/8/8/8/3p4/8/4P3/K7 w - - 0 1")
	apply(t, b, "e2", "e4")
	require.NotNil(t, b.EnPassant)
	require.Equal(t, "e3", b.EnPassant.Algebraic())
}

func TestHalfmoveClock(t *testing.T) {
	b := mustBoard(t, "k7/8/8/8/8/8/4P3/KR6 w - - 4 10")
	apply(t, b, "b1", "b2")
	require.Equal(t, 5, b.Halfmove, "quiet rook move increments")

	apply(t, b, "a8", "a7")
	require.Equal(t, 6, b.Halfmove)

	apply(t, b, "e2", "e3")
	require.Equal(t, 0, b.Halfmove, "pawn move resets")
}

func TestFullmoveIncrementsAfterBlack(t *testing.T) {
	b := mustBoard(t, base.FEN_START_GAME)
	apply(t, b, "g1", "f3")
	require.Equal(t, 1, b.Fullmove)
	apply(t, b, "g8", "f6")
	require.Equal(t, 2, b.Fullmove)
}

func TestPromotionReplacesPawn(t *testing.T) {
	b := mustBoard(t, "k7/4P3/8/8/8/8/8/K7 w - - 7 1")
	mv := base.Move{From: sq(t, "e7"), To: sq(t, "e8"), Piece: base.Pawn, Promotion: base.Queen}
	_, err := moves.Apply(b, mv)
	require.NoError(t, err)

	q := b.PieceAt(sq(t, "e8"))
	require.NotNil(t, q)
	require.Equal(t, base.Queen, q.Type)
	require.Equal(t, 0, b.Halfmove, "promotion resets the clock")
}

func TestPromotionWithoutChoiceRejected(t *testing.T) {
	b := mustBoard(t, "k7/4P3/8/8/8/8/8/K7 w - - 0 1")
	before := convfen.ConvertBoardToFEN(b)
	_, err := moves.Apply(b, base.Move{From: sq(t, "e7"), To: sq(t, "e8"), Piece: base.Pawn})
	require.ErrorIs(t, err, base.ErrIllegalMove)
	require.Equal(t, before, convfen.ConvertBoardToFEN(b), "board untouched on rejection")
}

func TestApplyRejectsWrongSide(t *testing.T) {
	b := mustBoard(t, base.FEN_START_GAME)
	_, err := moves.Apply(b, base.Move{From: sq(t, "e7"), To: sq(t, "e5"), Piece: base.Pawn})
	require.ErrorIs(t, err, base.ErrIllegalMove)
}

func TestCheckFlagsRefreshed(t *testing.T) {
	b := mustBoard(t, "k7/8/8/8/8/8/1R6/K7 w - - 0 1")
	apply(t, b, "b2", "a2")
	require.True(t, b.Black.InCheck)
	require.False(t, b.White.InCheck)
}
