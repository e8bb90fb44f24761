package rating

// Outcome is a finished game's raw result in terms of colors.
type Outcome int

const (
	OutcomeWhiteWins Outcome = iota
	OutcomeBlackWins
	OutcomeDraw
)

var outcomeNames = map[Outcome]string{
	OutcomeWhiteWins: "white",
	OutcomeBlackWins: "black",
	OutcomeDraw:      "draw",
}

func (o Outcome) String() string {
	if name, ok := outcomeNames[o]; ok {
		return name
	}
	return "unknown"
}

// ParseOutcome maps an outcome name ("white", "black", "draw") to its Outcome.
func ParseOutcome(s string) (Outcome, bool) {
	for o, name := range outcomeNames {
		if name == s {
			return o, true
		}
	}
	return OutcomeDraw, false
}

// Result is a game result expressed relative to the white (first) player.
type Result int

const (
	ResultWin Result = iota
	ResultLoss
	ResultDraw
)

func (r Result) String() string {
	switch r {
	case ResultWin:
		return "win"
	case ResultLoss:
		return "loss"
	default:
		return "draw"
	}
}

// EncodeResult converts a raw outcome to white's Result.
func EncodeResult(o Outcome) Result {
	switch o {
	case OutcomeWhiteWins:
		return ResultWin
	case OutcomeBlackWins:
		return ResultLoss
	default:
		return ResultDraw
	}
}

// Invert flips the result to the opponent's perspective.
func (r Result) Invert() Result {
	switch r {
	case ResultWin:
		return ResultLoss
	case ResultLoss:
		return ResultWin
	default:
		return ResultDraw
	}
}

// Score converts the result to a Glicko-2 score: 1 for a win, 0.5 for a
// draw, 0 for a loss.
func (r Result) Score() float64 {
	switch r {
	case ResultWin:
		return 1
	case ResultLoss:
		return 0
	default:
		return 0.5
	}
}
