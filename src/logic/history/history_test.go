package history_test

import (
	"testing"

	"chesscore/src/base"
	"chesscore/src/logic/convert/convfen"
	"chesscore/src/logic/hashing"
	"chesscore/src/logic/history"

	"github.com/stretchr/testify/require"
)

func mustBoard(t *testing.T, fen string) *base.Board {
	t.Helper()
	b, err := convfen.ConvertFENToBoard(fen)
	require.NoError(t, err)
	return b
}

func mv(t *testing.T, b *base.Board, from, to string) base.Move {
	t.Helper()
	f, err := base.SquareFromAlgebraic(from)
	require.NoError(t, err)
	to2, err := base.SquareFromAlgebraic(to)
	require.NoError(t, err)
	p := b.PieceAt(f)
	require.NotNil(t, p, "no piece on %s", from)
	return base.Move{From: f, To: to2, Piece: p.Type}
}

func newHistory(t *testing.T, b *base.Board) *history.History {
	t.Helper()
	h := history.NewHistory(hashing.NewZobrist())
	h.Reset(b)
	return h
}

func TestPushMoveRecordsLine(t *testing.T) {
	b := mustBoard(t, base.FEN_START_GAME)
	h := newHistory(t, b)

	st, err := h.PushMove(b, mv(t, b, "e2", "e4"))
	require.NoError(t, err)
	require.Equal(t, base.Pass, st)

	st, err = h.PushMove(b, mv(t, b, "e7", "e5"))
	require.NoError(t, err)
	require.Equal(t, base.Pass, st)

	require.Equal(t, 2, h.Len())
	require.Equal(t, 2, h.CurrentMove())
	require.Equal(t, "1. e4 e5", h.MovesAsText())
	require.Equal(t,
		"rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2",
		convfen.ConvertBoardToFEN(b))
}

func TestPushMoveRejectsIllegal(t *testing.T) {
	b := mustBoard(t, base.FEN_START_GAME)
	h := newHistory(t, b)

	e2, _ := base.SquareFromAlgebraic("e2")
	e5, _ := base.SquareFromAlgebraic("e5")
	st, err := h.PushMove(b, base.Move{From: e2, To: e5, Piece: base.Pawn})
	require.ErrorIs(t, err, base.ErrIllegalMove)
	require.Equal(t, base.InvalidGame, st)
	require.Equal(t, 0, h.Len())
	require.Equal(t, base.FEN_START_GAME, convfen.ConvertBoardToFEN(b))
}

func TestThreefoldRepetition(t *testing.T) {
	b := mustBoard(t, base.FEN_START_GAME)
	h := newHistory(t, b)

	shuffle := [][2]string{
		{"g1", "f3"}, {"g8", "f6"}, {"f3", "g1"}, {"f6", "g8"},
	}

	// first return to the start position: second occurrence
	for _, m := range shuffle {
		st, err := h.PushMove(b, mv(t, b, m[0], m[1]))
		require.NoError(t, err)
		require.Equal(t, base.Pass, st)
	}
	require.Equal(t, 2, h.Repetitions())

	// second return: third occurrence, drawn
	var last base.GameStatus
	for _, m := range shuffle {
		var err error
		last, err = h.PushMove(b, mv(t, b, m[0], m[1]))
		require.NoError(t, err)
	}
	require.Equal(t, base.DrawByRepetition, last)
	require.Equal(t, 3, h.Repetitions())
}

func TestUndoRedo(t *testing.T) {
	b := mustBoard(t, base.FEN_START_GAME)
	h := newHistory(t, b)

	_, err := h.PushMove(b, mv(t, b, "e2", "e4"))
	require.NoError(t, err)
	after := convfen.ConvertBoardToFEN(b)

	require.NoError(t, h.Undo(b))
	require.Equal(t, base.FEN_START_GAME, convfen.ConvertBoardToFEN(b))
	require.Equal(t, 0, h.CurrentMove())

	require.NoError(t, h.Redo(b))
	require.Equal(t, after, convfen.ConvertBoardToFEN(b))
	require.Equal(t, 1, h.CurrentMove())

	require.Error(t, h.Redo(b))
	require.NoError(t, h.Undo(b))
	require.Error(t, h.Undo(b))
}

func TestPushAfterUndoTruncatesTail(t *testing.T) {
	b := mustBoard(t, base.FEN_START_GAME)
	h := newHistory(t, b)

	_, err := h.PushMove(b, mv(t, b, "e2", "e4"))
	require.NoError(t, err)
	_, err = h.PushMove(b, mv(t, b, "e7", "e5"))
	require.NoError(t, err)

	require.NoError(t, h.GotoMove(b, 1))
	_, err = h.PushMove(b, mv(t, b, "c7", "c5"))
	require.NoError(t, err)

	require.Equal(t, 2, h.Len())
	require.Equal(t, "1. e4 c5", h.MovesAsText())
}

func TestTruncationDropsRepetitionCounts(t *testing.T) {
	b := mustBoard(t, base.FEN_START_GAME)
	h := newHistory(t, b)

	shuffle := [][2]string{
		{"g1", "f3"}, {"g8", "f6"}, {"f3", "g1"}, {"f6", "g8"},
	}
	for i := 0; i < 2; i++ {
		for _, m := range shuffle {
			_, err := h.PushMove(b, mv(t, b, m[0], m[1]))
			require.NoError(t, err)
		}
	}
	require.Equal(t, 3, h.Repetitions())

	// rewind past both shuffles, then branch: the discarded occurrences
	// must stop counting toward repetition
	require.NoError(t, h.GotoMove(b, 0))
	st, err := h.PushMove(b, mv(t, b, "e2", "e4"))
	require.NoError(t, err)
	require.Equal(t, base.Pass, st)

	shuffle2 := [][2]string{
		{"g8", "f6"}, {"g1", "f3"}, {"f6", "g8"}, {"f3", "g1"},
	}
	for _, m := range shuffle2 {
		st, err = h.PushMove(b, mv(t, b, m[0], m[1]))
		require.NoError(t, err)
	}
	require.Equal(t, base.Pass, st)
	require.Equal(t, 2, h.Repetitions())
}

func TestMovesAsTextBlackFirst(t *testing.T) {
	b := mustBoard(t, "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 2")
	h := newHistory(t, b)

	_, err := h.PushMove(b, mv(t, b, "g8", "f6"))
	require.NoError(t, err)
	_, err = h.PushMove(b, mv(t, b, "g1", "f3"))
	require.NoError(t, err)

	require.Equal(t, "2... Nf6 3. Nf3", h.MovesAsText())
}

func TestCheckSuffixSurvivesDrawStatus(t *testing.T) {
	// Rf8+ gives check and lands the halfmove clock on 100 at once; the
	// draw verdict must not strip the suffix
	b := mustBoard(t, "k7/8/8/8/8/8/5R2/K7 w - - 99 80")
	h := newHistory(t, b)

	st, err := h.PushMove(b, mv(t, b, "f2", "f8"))
	require.NoError(t, err)
	require.Equal(t, base.DrawByFiftyMove, st)
	require.Equal(t, "80. Rf8+", h.MovesAsText())
}

func TestMoveTextAnnotatesCheck(t *testing.T) {
	b := mustBoard(t, "rnbqkbnr/ppp2ppp/8/3pp3/8/4P3/PPPPBPPP/RNBQK1NR w KQkq - 0 3")
	h := newHistory(t, b)

	st, err := h.PushMove(b, mv(t, b, "e2", "b5"))
	require.NoError(t, err)
	require.Equal(t, base.Check, st)
	require.Equal(t, "3. Bb5+", h.MovesAsText())
}
