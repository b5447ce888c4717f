package base

type GameStatus uint8

const (
	Pass GameStatus = iota
	Check
	Checkmate
	Stalemate
	DrawByRepetition
	DrawByFiftyMove
	DrawByMaterial
	InvalidGame
)

func (gs GameStatus) String() string {
	switch gs {
	case Pass:
		return "pass"
	case Check:
		return "check"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case DrawByRepetition:
		return "draw by repetition"
	case DrawByFiftyMove:
		return "draw by fifty-move rule"
	case DrawByMaterial:
		return "draw by insufficient material"
	default:
		return "invalid"
	}
}

func (gs GameStatus) IsDraw() bool {
	switch gs {
	case Stalemate, DrawByRepetition, DrawByFiftyMove, DrawByMaterial:
		return true
	}
	return false
}

// IsTerminal reports whether the game cannot continue.
func (gs GameStatus) IsTerminal() bool {
	return gs == Checkmate || gs.IsDraw()
}
