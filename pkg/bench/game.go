package bench

import (
	"context"
	"time"

	"github.com/IlikeChooros/go-connect4/pkg/agent"
	"github.com/IlikeChooros/go-connect4/pkg/board"
	_ "github.com/IlikeChooros/go-connect4/pkg/logging"
	"github.com/IlikeChooros/go-connect4/pkg/qlearn"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

var ErrIllegalMove = errors.New("illegal move")

// Finished (or interrupted) game
type GameRecord struct {
	ID        uuid.UUID
	Start     board.Board
	Moves     []int
	Final     board.Board
	Outcome   board.Outcome
	First     string // name of the agent that moved first
	Second    string
	StartedAt time.Time
	Duration  time.Duration
}

// Color of the agent that moved first
func (g *GameRecord) FirstMover() board.Cell {
	return g.Start.Turn()
}

// Name of the winning agent, empty for a draw or unfinished game
func (g *GameRecord) WinnerName() string {
	if g.Outcome.Status != board.Win {
		return ""
	}
	if g.Outcome.Winner == g.FirstMover() {
		return g.First
	}
	return g.Second
}

type MoveEvent struct {
	Ply   int // 1-based
	Agent string
	Mover board.Cell
	Move  int
	Board board.Board // position after the move
}

type GameOptions struct {
	// Position to start from, the empty board if nil
	Start *board.Board

	// Called after every applied move
	OnMove func(MoveEvent)

	// Learners that lose also observe their last transition with qlearn.LossReward,
	// otherwise only the player who just moved learns
	PenalizeLoss bool
}

type lastTransition struct {
	prev   board.Board
	action int
	set    bool
}

// Plays one game, 'first' moves first. Every move is validated against the legal
// columns, learners observe the shaped reward of their own moves.
// A cancelled context ends the game early with the partial record and the context's error.
func PlayGame(ctx context.Context, first, second agent.Agent, opts *GameOptions) (*GameRecord, error) {
	if opts == nil {
		opts = &GameOptions{}
	}

	b := board.New()
	if opts.Start != nil {
		b = *opts.Start
	}

	record := &GameRecord{
		ID:        uuid.New(),
		Start:     b,
		Moves:     make([]int, 0, board.Rows*board.Columns),
		First:     first.Name(),
		Second:    second.Name(),
		StartedAt: time.Now(),
	}
	defer func() {
		record.Final = b
		record.Outcome = b.Outcome()
		record.Duration = time.Since(record.StartedAt)
	}()

	players := map[board.Cell]agent.Agent{
		b.Turn():            first,
		b.Turn().Opponent(): second,
	}
	last := map[board.Cell]*lastTransition{
		board.PlayerA: {},
		board.PlayerB: {},
	}

	for !b.Outcome().Terminal() {
		select {
		case <-ctx.Done():
			return record, ctx.Err()
		default:
		}

		mover := b.Turn()
		player := players[mover]
		legal := b.LegalMoves()

		move, err := player.ChooseMove(b, legal)
		if err != nil {
			return record, errors.Wrapf(err, "%s (%v) failed to move", player.Name(), mover)
		}
		if !agent.Contains(legal, move) {
			return record, errors.Wrapf(ErrIllegalMove, "%s (%v) played column %d, legal %v",
				player.Name(), mover, move, legal)
		}

		next, err := b.Apply(move, mover)
		if err != nil {
			return record, err
		}

		done := next.Outcome().Terminal()
		if learner, ok := player.(agent.Learner); ok {
			learner.Observe(b, move, qlearn.Reward(next, mover), next, done)
		}
		*last[mover] = lastTransition{prev: b, action: move, set: true}

		b = next
		record.Moves = append(record.Moves, move)
		if opts.OnMove != nil {
			opts.OnMove(MoveEvent{
				Ply:   len(record.Moves),
				Agent: player.Name(),
				Mover: mover,
				Move:  move,
				Board: b,
			})
		}
	}

	// The loser's last move led to this, let it know
	if outcome := b.Outcome(); opts.PenalizeLoss && outcome.Status == board.Win {
		loser := outcome.Winner.Opponent()
		if learner, ok := players[loser].(agent.Learner); ok && last[loser].set {
			learner.Observe(last[loser].prev, last[loser].action, qlearn.LossReward, b, true)
		}
	}

	log.Debug().
		Str("game", record.ID.String()).
		Str("first", record.First).
		Str("second", record.Second).
		Int("plies", len(record.Moves)).
		Stringer("outcome", b.Outcome()).
		Msg("game finished")
	return record, nil
}
