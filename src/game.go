package src

import (
	"errors"
	"fmt"

	"chesscore/src/base"
	"chesscore/src/logic/convert/convfen"
	"chesscore/src/logic/hashing"
	"chesscore/src/logic/history"
	"chesscore/src/logic/rules"
	"chesscore/src/logic/rules/moves"
	"chesscore/src/logx"
)

// ErrPromotionCancelled marks a promotion attempt the user backed out
// of; the move never touched the board.
var ErrPromotionCancelled = errors.New("promotion cancelled")

type MoveOutcomeKind uint8

const (
	Applied MoveOutcomeKind = iota
	Rejected
	AwaitingPromotion
)

// MoveOutcome is the answer to one attempted move. Applied carries the
// completed move and the resulting status; Rejected carries the reason;
// AwaitingPromotion means the builder holds the move pending a piece
// choice and the board is untouched until ResolvePromotion.
type MoveOutcome struct {
	Kind   MoveOutcomeKind
	Move   base.Move
	Status base.GameStatus
	Err    error
}

// pendingPromotion is the resume token of the two-phase protocol. Only
// one can exist: the engine is single-writer and nothing else suspends.
type pendingPromotion struct {
	from base.Square
	to   base.Square
}

// GameBuilder is the boundary the UI talks to. Use a Create* method
// before anything else.
type GameBuilder struct {
	board   *base.Board
	zob     *hashing.Zobrist
	history *history.History
	status  base.GameStatus
	pending *pendingPromotion
	logger  logx.Logger
}

func NewBuilderBoard(logger logx.Logger) *GameBuilder {
	if logger == nil {
		logger = logx.NewNop()
	}
	z := hashing.NewZobrist()
	return &GameBuilder{
		zob:     z,
		history: history.NewHistory(z),
		status:  base.Pass,
		logger:  logger,
	}
}

// CreateFromFEN resets the game to the given position.
func (gb *GameBuilder) CreateFromFEN(fen string) (base.GameStatus, error) {
	gb.logger.Debugf("create game by FEN: %v", fen)
	board, err := convfen.ConvertFENToBoard(fen)
	if err != nil {
		return base.InvalidGame, fmt.Errorf("error parse FEN: %w", err)
	}
	gb.board = board
	gb.pending = nil
	gb.history.Reset(board)
	gb.status = rules.StatusOf(board, gb.history.Repetitions())
	return gb.status, nil
}

func (gb *GameBuilder) CreateClassic() {
	gb.logger.Debug("create classic game")
	gb.status, _ = gb.CreateFromFEN(base.FEN_START_GAME)
}

func (gb *GameBuilder) Status() base.GameStatus {
	return gb.status
}

func (gb *GameBuilder) Board() *base.Board {
	return gb.board
}

// FEN exports the current position.
func (gb *GameBuilder) FEN() string {
	return convfen.ConvertBoardToFEN(gb.board)
}

// LegalMoves maps each movable piece, addressed by its square, to its
// legal destinations.
func (gb *GameBuilder) LegalMoves() map[base.Square][]base.Square {
	out := make(map[base.Square][]base.Square)
	seen := make(map[base.Square]map[base.Square]bool)
	for _, mv := range moves.LegalMoves(gb.board) {
		if seen[mv.From] == nil {
			seen[mv.From] = make(map[base.Square]bool)
		}
		// promotion variants collapse to one destination
		if seen[mv.From][mv.To] {
			continue
		}
		seen[mv.From][mv.To] = true
		out[mv.From] = append(out[mv.From], mv.To)
	}
	return out
}

// AttemptMove tries from->to for the side to move. A pawn reaching the
// far rank suspends into AwaitingPromotion instead of mutating anything.
func (gb *GameBuilder) AttemptMove(from, to base.Square) MoveOutcome {
	gb.logger.Infof("move %s%s", from.Algebraic(), to.Algebraic())
	if gb.pending != nil {
		return MoveOutcome{Kind: Rejected, Err: fmt.Errorf("%w: promotion outstanding", base.ErrIllegalMove)}
	}
	if gb.status.IsTerminal() {
		return MoveOutcome{Kind: Rejected, Status: gb.status, Err: fmt.Errorf("%w: game over", base.ErrIllegalMove)}
	}

	var matched *base.Move
	for _, mv := range moves.LegalMoves(gb.board) {
		if mv.From == from && mv.To == to {
			m := mv
			matched = &m
			break
		}
	}
	if matched == nil {
		return MoveOutcome{Kind: Rejected, Status: gb.status, Err: fmt.Errorf("%w: %s%s", base.ErrIllegalMove, from.Algebraic(), to.Algebraic())}
	}

	if matched.Promotion != base.NoPieceType {
		gb.pending = &pendingPromotion{from: from, to: to}
		gb.logger.Debugf("awaiting promotion choice for %s%s", from.Algebraic(), to.Algebraic())
		return MoveOutcome{Kind: AwaitingPromotion, Move: *matched, Status: gb.status}
	}

	return gb.push(*matched)
}

// ResolvePromotion completes the suspended move with the chosen piece,
// or aborts it when pt is nil, leaving the board exactly as it was.
func (gb *GameBuilder) ResolvePromotion(pt *base.PieceType) MoveOutcome {
	if gb.pending == nil {
		return MoveOutcome{Kind: Rejected, Status: gb.status, Err: base.ErrNoPendingPromotion}
	}
	pending := *gb.pending
	gb.pending = nil

	if pt == nil {
		gb.logger.Debug("promotion cancelled")
		return MoveOutcome{Kind: Rejected, Status: gb.status, Err: ErrPromotionCancelled}
	}
	switch *pt {
	case base.Queen, base.Rook, base.Bishop, base.Knight:
	default:
		return MoveOutcome{Kind: Rejected, Status: gb.status, Err: fmt.Errorf("%w: cannot promote to %s", base.ErrIllegalMove, *pt)}
	}

	mv := base.Move{From: pending.from, To: pending.to, Piece: base.Pawn, Promotion: *pt}
	return gb.push(mv)
}

func (gb *GameBuilder) push(mv base.Move) MoveOutcome {
	status, err := gb.history.PushMove(gb.board, mv)
	if err != nil {
		gb.logger.Errorf("push move %s: %v", mv, err)
		return MoveOutcome{Kind: Rejected, Status: gb.status, Err: err}
	}
	gb.status = status
	gb.logger.Debugf("applied %s, status %s", mv, status)
	return MoveOutcome{Kind: Applied, Move: mv, Status: status}
}

// MoveSAN accepts a move in algebraic notation, promotion included, so
// no suspension happens on this path.
func (gb *GameBuilder) MoveSAN(san string) (base.GameStatus, error) {
	gb.logger.Infof("move SAN: %v", san)
	if gb.pending != nil {
		return gb.status, fmt.Errorf("%w: promotion outstanding", base.ErrIllegalMove)
	}
	mv, err := moves.ParseSAN(gb.board, san)
	if err != nil {
		return gb.status, err
	}
	out := gb.push(mv)
	return out.Status, out.Err
}

func (gb *GameBuilder) Undo() base.GameStatus {
	gb.logger.Debug("call undo")
	gb.pending = nil
	if err := gb.history.Undo(gb.board); err != nil {
		return gb.status
	}
	gb.status = rules.StatusOf(gb.board, gb.history.Repetitions())
	return gb.status
}

func (gb *GameBuilder) Redo() base.GameStatus {
	gb.logger.Debug("call redo")
	gb.pending = nil
	if err := gb.history.Redo(gb.board); err != nil {
		return gb.status
	}
	gb.status = rules.StatusOf(gb.board, gb.history.Repetitions())
	return gb.status
}

// MovesAsText is the played line, e.g. "1. e4 e5 2. Nf3".
func (gb *GameBuilder) MovesAsText() string {
	return gb.history.MovesAsText()
}

// DescribeMove renders one move as SAN against a legal move set.
func (gb *GameBuilder) DescribeMove(mv base.Move, legal []base.Move, isCheck, isMate bool) string {
	return moves.MoveText(mv, legal, isCheck, isMate)
}
