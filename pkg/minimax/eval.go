package minimax

import "github.com/IlikeChooros/go-connect4/pkg/board"

const (
	WinScore  = 100000
	LossScore = -WinScore

	// Bonus for each own piece in the center column
	CenterScore = 3

	// Depth scaling base, threats found closer to the root are worth more
	depthBase   = 10
	threeWeight = 5
	twoWeight   = 2
)

// Static evaluation of 'b' from the 'player' perspective, at 'depth' plies from the root
func Evaluate(b *board.Board, player board.Cell, depth int) int {
	if outcome := b.Outcome(); outcome.Status == board.Win {
		if outcome.Winner == player {
			return WinScore
		}
		return LossScore
	}

	opponent := player.Opponent()
	threeAlign := threeWeight * (depthBase - depth)
	twoAlign := twoWeight * (depthBase - depth)

	score := 0
	for row := 0; row < board.Rows; row++ {
		if b[row][board.CenterColumn] == player {
			score += CenterScore
		}
	}

	for i := range board.Windows {
		score += scoreWindow(b, &board.Windows[i], player, opponent, threeAlign, twoAlign)
	}
	return score
}

func scoreWindow(b *board.Board, w *board.Window, player, opponent board.Cell, threeAlign, twoAlign int) int {
	own, empty, opp := 0, 0, 0
	for _, sq := range w {
		switch b[sq.Row][sq.Col] {
		case player:
			own++
		case opponent:
			opp++
		default:
			empty++
		}
	}

	score := 0
	if own == 3 && empty == 1 {
		score += threeAlign
	} else if own == 2 && empty == 2 {
		score += twoAlign
	}

	if opp == 3 && empty == 1 {
		score -= threeAlign
	}
	return score
}
