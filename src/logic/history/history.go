package history

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"chesscore/src/base"
	"chesscore/src/logic/hashing"
	"chesscore/src/logic/rules"
	"chesscore/src/logic/rules/moves"
)

// History is the move log plus the position-hash trail used for
// draw-by-repetition. Entry 0 is the starting position; undo/redo walk
// the snapshots, pushing a move from the middle truncates the tail.
type History struct {
	zob     *hashing.Zobrist
	entries []Entry
	counts  map[uint64]int
	current int
}

type Entry struct {
	Move  base.Move
	Text  string
	Hash  uint64
	Board *base.Board
}

func NewHistory(z *hashing.Zobrist) *History {
	return &History{zob: z, counts: make(map[uint64]int)}
}

// Reset re-seeds the log with b as the starting position.
func (h *History) Reset(b *base.Board) {
	h.entries = h.entries[:0]
	h.counts = make(map[uint64]int)
	h.current = 0
	hash := h.zob.Hash(b)
	h.entries = append(h.entries, Entry{Hash: hash, Board: b.Clone()})
	h.counts[hash] = 1
}

// Len is the number of applied moves on the active line.
func (h *History) Len() int {
	if len(h.entries) == 0 {
		return 0
	}
	return len(h.entries) - 1
}

func (h *History) CurrentMove() int { return h.current }

func (h *History) Entries() []Entry {
	if len(h.entries) <= 1 {
		return nil
	}
	out := make([]Entry, len(h.entries)-1)
	copy(out, h.entries[1:])
	return out
}

// Repetitions is how many times the current position has occurred,
// itself included.
func (h *History) Repetitions() int {
	if len(h.entries) == 0 {
		return 0
	}
	return h.counts[h.entries[h.current].Hash]
}

func (h *History) CurrentHash() uint64 {
	if len(h.entries) == 0 {
		return 0
	}
	return h.entries[h.current].Hash
}

// PushMove validates the move, applies it to b and records the result.
// The returned status already accounts for repetition on the new hash.
func (h *History) PushMove(b *base.Board, mv base.Move) (base.GameStatus, error) {
	if b == nil {
		return base.InvalidGame, errors.New("nil board")
	}
	if !rules.IsLegalMove(b, mv) {
		return base.InvalidGame, fmt.Errorf("%w: %s", base.ErrIllegalMove, mv)
	}
	if len(h.entries) == 0 {
		h.Reset(b)
	}

	// drop any redo tail
	for i := h.current + 1; i < len(h.entries); i++ {
		h.counts[h.entries[i].Hash]--
	}
	h.entries = h.entries[:h.current+1]

	legal := moves.LegalMoves(b)
	applied, err := moves.Apply(b, mv)
	if err != nil {
		return base.InvalidGame, err
	}

	hash := h.zob.Hash(b)
	h.counts[hash]++
	status := rules.StatusOf(b, h.counts[hash])

	// the status enum may report a draw for a move that also checks, so
	// the suffix comes from the board itself
	isCheck := b.Player(b.SideToMove()).InCheck
	text := moves.MoveText(applied, legal, isCheck, status == base.Checkmate)

	h.entries = append(h.entries, Entry{Move: applied, Text: text, Hash: hash, Board: b.Clone()})
	h.current++
	return status, nil
}

// GotoMove rewrites b to the snapshot after the index-th applied move
// (0 is the starting position).
func (h *History) GotoMove(b *base.Board, index int) error {
	if b == nil {
		return errors.New("nil board")
	}
	if len(h.entries) == 0 {
		return errors.New("empty history")
	}
	if index < 0 || index >= len(h.entries) {
		return fmt.Errorf("invalid history index %d", index)
	}
	*b = *h.entries[index].Board.Clone()
	h.current = index
	return nil
}

func (h *History) Undo(b *base.Board) error {
	return h.GotoMove(b, h.current-1)
}

func (h *History) Redo(b *base.Board) error {
	return h.GotoMove(b, h.current+1)
}

// MovesAsText renders the active line, e.g. "1. e4 e5 2. Nf3 Nc6".
func (h *History) MovesAsText() string {
	if h.Len() == 0 {
		return ""
	}
	start := h.entries[0].Board
	num := start.Fullmove
	blackFirst := !start.WhiteToMove

	var sb strings.Builder
	for i := 1; i < len(h.entries); i++ {
		text := h.entries[i].Text
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		whiteMove := i%2 == 1
		if blackFirst {
			whiteMove = !whiteMove
		}
		if whiteMove {
			sb.WriteString(strconv.Itoa(num) + ". " + text)
		} else {
			if i == 1 {
				sb.WriteString(strconv.Itoa(num) + "... " + text)
			} else {
				sb.WriteString(text)
			}
			num++
		}
	}
	return sb.String()
}
