package attack_test

import (
	"testing"

	"chesscore/src/base"
	"chesscore/src/logic/attack"
	"chesscore/src/logic/convert/convfen"

	"github.com/stretchr/testify/require"
)

func mustBoard(t *testing.T, fen string) *base.Board {
	t.Helper()
	b, err := convfen.ConvertFENToBoard(fen)
	require.NoError(t, err)
	return b
}

func sq(t *testing.T, alg string) base.Square {
	t.Helper()
	s, err := base.SquareFromAlgebraic(alg)
	require.NoError(t, err)
	return s
}

func TestPawnAttacksDiagonalsOnly(t *testing.T) {
	b := mustBoard(t, "4k3/8/8/8/8/4P3/8/4K3 w - - 0 1")
	m := attack.Compute(b, base.White)

	require.True(t, m.All.Has(sq(t, "d4")))
	require.True(t, m.All.Has(sq(t, "f4")))
	// the push square is not attacked
	require.False(t, m.All.Has(sq(t, "e4")))
}

func TestKnightAttacksIgnoreOccupancy(t *testing.T) {
	// friendly pawn on one of the knight's target squares
	b := mustBoard(t, "4k3/8/8/8/8/5P2/8/4K1N1 w - - 0 1")
	m := attack.Compute(b, base.White)
	require.True(t, m.All.Has(sq(t, "f3")), "knights attack friendly-occupied squares too")
	require.True(t, m.All.Has(sq(t, "e2")))
	require.True(t, m.All.Has(sq(t, "h3")))
}

func TestSliderStopsAtFirstPiece(t *testing.T) {
	b := mustBoard(t, "4k3/8/8/8/4p3/8/8/R3K3 b - - 0 1")
	// black pawn e4, white rook a1: rook marches a-file and rank 1 only
	m := attack.Compute(b, base.White)
	require.True(t, m.All.Has(sq(t, "a8")))
	require.True(t, m.All.Has(sq(t, "d1")))
	require.False(t, m.All.Has(sq(t, "e4")))
}

func TestSliderRayExtendsPastEnemyKing(t *testing.T) {
	b := mustBoard(t, "4k3/8/8/4r3/8/4K3/8/8 w - - 0 1")
	m := attack.Compute(b, base.Black)

	// rook e5 checks the king on e3; the ray continues to e2 so the
	// king cannot retreat along its own check line
	require.True(t, m.All.Has(sq(t, "e4")))
	require.True(t, m.All.Has(sq(t, "e3")))
	require.True(t, m.All.Has(sq(t, "e2")))
	require.False(t, m.All.Has(sq(t, "e1")), "extension is one square only")
}

func TestPinDetection(t *testing.T) {
	b := mustBoard(t, "k3r3/8/8/8/4R3/8/8/4K3 w - - 0 1")
	pins := attack.Pins(b, base.White)
	require.Len(t, pins, 1)

	pin := pins[0]
	require.Equal(t, sq(t, "e4"), pin.Square)
	for _, alg := range []string{"e2", "e3", "e5", "e6", "e7", "e8"} {
		require.True(t, pin.Allowed.Has(sq(t, alg)), "pin line must allow %s", alg)
	}
	require.False(t, pin.Allowed.Has(sq(t, "d4")))
	require.False(t, pin.Allowed.Has(sq(t, "f4")))
}

func TestNoPinWhenEnemyPieceIsFirst(t *testing.T) {
	// black knight sits between king and rook: nothing of ours is pinned
	b := mustBoard(t, "k3r3/8/8/4n3/8/8/8/4K3 w - - 0 1")
	require.Empty(t, attack.Pins(b, base.White))
}

func TestNoPinFromNonMatchingSlider(t *testing.T) {
	// bishop on the file cannot pin along it
	b := mustBoard(t, "k3b3/8/8/8/4R3/8/8/4K3 w - - 0 1")
	require.Empty(t, attack.Pins(b, base.White))
}

func TestCheckersPathForSlider(t *testing.T) {
	b := mustBoard(t, "4k3/8/8/8/8/8/8/r3K3 w - - 0 1")
	m := attack.Compute(b, base.Black)
	kingSq, ok := b.KingSquare(base.White)
	require.True(t, ok)

	checkers := attack.Checkers(m, kingSq)
	require.Len(t, checkers, 1)
	ck := checkers[0]
	require.Equal(t, sq(t, "a1"), ck.From)

	// path: squares between attacker and king plus the attacker itself
	want := map[base.Square]bool{
		sq(t, "b1"): true,
		sq(t, "c1"): true,
		sq(t, "d1"): true,
		sq(t, "a1"): true,
	}
	require.Len(t, ck.Path, len(want))
	for _, s := range ck.Path {
		require.True(t, want[s], "unexpected path square %s", s.Algebraic())
	}
}

func TestCheckersContactPieceHasNoBlockSquares(t *testing.T) {
	b := mustBoard(t, "4k3/8/8/8/8/3n4/8/4K3 w - - 0 1")
	m := attack.Compute(b, base.Black)
	kingSq, _ := b.KingSquare(base.White)

	checkers := attack.Checkers(m, kingSq)
	require.Len(t, checkers, 1)
	require.Equal(t, []base.Square{sq(t, "d3")}, checkers[0].Path)
}

func TestDoubleCheckReportsBothAttackers(t *testing.T) {
	b := mustBoard(t, "4k3/8/3N4/8/8/8/8/4RK2 b - - 0 1")
	m := attack.Compute(b, base.White)
	kingSq, _ := b.KingSquare(base.Black)
	require.Len(t, attack.Checkers(m, kingSq), 2)
}
