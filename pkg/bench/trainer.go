package bench

import (
	"context"

	"github.com/IlikeChooros/go-connect4/pkg/agent"
	"github.com/IlikeChooros/go-connect4/pkg/board"
	"github.com/IlikeChooros/go-connect4/pkg/qlearn"
	"github.com/rs/zerolog/log"
)

type TrainerConfig struct {
	Episodes  int
	BlockSize int // episodes per curve point
	SaveEvery int // 0 saves only at the end
	Store     qlearn.Store

	// See GameOptions.PenalizeLoss
	PenalizeLoss bool
}

func DefaultTrainerConfig() TrainerConfig {
	return TrainerConfig{
		Episodes:     1000,
		BlockSize:    100,
		SaveEvery:    500,
		PenalizeLoss: true,
	}
}

// Results of a block of episodes, from the learner's perspective
type TrainingPoint struct {
	Episode  int // episodes played so far
	Wins     int
	Draws    int
	Losses   int
	States   int // known states after the block
	WinRate  float64
	DrawRate float64
	LossRate float64
}

type TrainingCurve struct {
	Learner  string
	Opponent string
	Points   []TrainingPoint
}

// Q-learning training by playing against an opponent, colors alternate every episode.
// The learner may be its own opponent.
type Trainer struct {
	Learner  *qlearn.Engine
	Opponent agent.Agent
	Config   TrainerConfig
	ctx      context.Context
}

func NewTrainer(learner *qlearn.Engine, opponent agent.Agent, config TrainerConfig) *Trainer {
	return &Trainer{
		Learner:  learner,
		Opponent: opponent,
		Config:   config,
		ctx:      context.Background(),
	}
}

func (t *Trainer) WithContext(ctx context.Context) *Trainer {
	t.ctx = ctx
	return t
}

// Plays all episodes, saving the table on the way. Returns the curve even if
// interrupted, along with the context's error.
func (t *Trainer) Run() (*TrainingCurve, error) {
	blockSize := max(t.Config.BlockSize, 1)
	curve := &TrainingCurve{
		Learner:  t.Learner.Name(),
		Opponent: t.Opponent.Name(),
		Points:   make([]TrainingPoint, 0, t.Config.Episodes/blockSize+1),
	}
	opts := &GameOptions{PenalizeLoss: t.Config.PenalizeLoss}
	point := TrainingPoint{}

	for episode := 0; episode < t.Config.Episodes; episode++ {
		learnerFirst := episode%2 == 0
		first, second := agent.Agent(t.Learner), t.Opponent
		if !learnerFirst {
			first, second = second, first
		}

		record, err := PlayGame(t.ctx, first, second, opts)
		if err != nil {
			t.flush(curve, &point, episode)
			return curve, err
		}

		learnerColor := record.FirstMover()
		if !learnerFirst {
			learnerColor = learnerColor.Opponent()
		}
		switch {
		case record.Outcome.Status == board.Draw:
			point.Draws++
		case record.Outcome.Winner == learnerColor:
			point.Wins++
		default:
			point.Losses++
		}

		if (episode+1)%blockSize == 0 {
			t.flush(curve, &point, episode+1)
		}

		if t.Config.SaveEvery > 0 && (episode+1)%t.Config.SaveEvery == 0 {
			if err := t.save(); err != nil {
				return curve, err
			}
		}
	}

	t.flush(curve, &point, t.Config.Episodes)
	return curve, t.save()
}

// Appends the point if it holds any games and starts a new one
func (t *Trainer) flush(curve *TrainingCurve, point *TrainingPoint, episode int) {
	games := point.Wins + point.Draws + point.Losses
	if games == 0 {
		return
	}

	point.Episode = episode
	point.States = t.Learner.Size()
	point.WinRate = float64(point.Wins) / float64(games)
	point.DrawRate = float64(point.Draws) / float64(games)
	point.LossRate = float64(point.Losses) / float64(games)
	curve.Points = append(curve.Points, *point)

	log.Info().
		Int("episode", episode).
		Int("states", point.States).
		Float64("win_rate", point.WinRate).
		Float64("draw_rate", point.DrawRate).
		Float64("loss_rate", point.LossRate).
		Msg("training block")
	*point = TrainingPoint{}
}

func (t *Trainer) save() error {
	if t.Config.Store == nil {
		return nil
	}
	_, err := t.Learner.Save(t.Config.Store)
	return err
}
