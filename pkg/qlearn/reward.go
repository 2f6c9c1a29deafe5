package qlearn

import "github.com/IlikeChooros/go-connect4/pkg/board"

const (
	WinReward  = 1.0
	DrawReward = 0.0
	StepReward = -0.1

	// Given to the losing side for its last move, drivers opt in
	LossReward = -1.0
)

// Shaped reward for the player who just moved, computed on the board after the move
func Reward(next board.Board, mover board.Cell) float64 {
	outcome := next.Outcome()
	switch {
	case outcome.Status == board.Win && outcome.Winner == mover:
		return WinReward
	case outcome.Status == board.Draw:
		return DrawReward
	default:
		return StepReward
	}
}
