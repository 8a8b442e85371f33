package tabletop

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/catanlab/catanenv/catan"
)

// scriptActor answers every decision with a fixed choice rule and
// records what it saw.
type scriptActor struct {
	pick      func(legal []bool) uint16
	decisions int
	began     bool
	result    catan.SeatResult
	ended     bool
}

func (a *scriptActor) BeginGame(catan.PlayerId, catan.State) { a.began = true }

func (a *scriptActor) PickAction(_ catan.State, _ catan.Phase, legal []bool) (uint16, error) {
	a.decisions++
	return a.pick(legal), nil
}

func (a *scriptActor) EndGame(_ catan.State, r catan.SeatResult) {
	a.ended = true
	a.result = r
}

func pickFirstLegal(legal []bool) uint16 {
	for i, ok := range legal {
		if ok {
			return uint16(i)
		}
	}
	return 0
}

func pickFirstIllegal(legal []bool) uint16 {
	for i, ok := range legal {
		if !ok {
			return uint16(i)
		}
	}
	return 0
}

func TestTableRotatesWinner(t *testing.T) {
	table := &Table{Players: 3, Rounds: 2, ActionSpace: 8}
	rng := rand.New(rand.NewPCG(1, 2))

	for game := 0; game < 3; game++ {
		actors := make([]catan.Actor, 3)
		scripts := make([]*scriptActor, 3)
		for i := range actors {
			scripts[i] = &scriptActor{pick: pickFirstLegal}
			actors[i] = scripts[i]
		}
		if err := table.Play(rng, actors); err != nil {
			t.Fatalf("game %d: %v", game, err)
		}
		for seat, s := range scripts {
			if !s.began || !s.ended {
				t.Fatalf("game %d seat %d: lifecycle calls missing", game, seat)
			}
			if s.decisions != 2 {
				t.Errorf("game %d seat %d: %d decisions, want 2", game, seat, s.decisions)
			}
			wantWin := seat == game%3
			if s.result.Winner != wantWin {
				t.Errorf("game %d seat %d: winner = %v, want %v", game, seat, s.result.Winner, wantWin)
			}
			if wantWin && s.result.VictoryPoints != 10 {
				t.Errorf("game %d seat %d: winner has %d points, want 10", game, seat, s.result.VictoryPoints)
			}
		}
	}
}

func TestTableRejectsIllegalAction(t *testing.T) {
	table := &Table{Players: 2, Rounds: 1, ActionSpace: 8}
	actors := []catan.Actor{
		&scriptActor{pick: pickFirstIllegal},
		&scriptActor{pick: pickFirstLegal},
	}
	err := table.Play(rand.New(rand.NewPCG(1, 2)), actors)
	if err == nil || !strings.Contains(err.Error(), "illegal action") {
		t.Fatalf("Play = %v, want illegal-action error", err)
	}
}

func TestTableRejectsActorCountMismatch(t *testing.T) {
	table := &Table{Players: 3, Rounds: 1, ActionSpace: 8}
	actors := []catan.Actor{&scriptActor{pick: pickFirstLegal}}
	if err := table.Play(rand.New(rand.NewPCG(1, 2)), actors); err == nil {
		t.Fatal("Play accepted the wrong actor count")
	}
}

func TestWinnerlessTable(t *testing.T) {
	table := &Table{Players: 2, Rounds: 1, ActionSpace: 8, Winnerless: true}
	scripts := []*scriptActor{
		{pick: pickFirstLegal},
		{pick: pickFirstLegal},
	}
	err := table.Play(rand.New(rand.NewPCG(1, 2)), []catan.Actor{scripts[0], scripts[1]})
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	for seat, s := range scripts {
		if s.result.Winner {
			t.Errorf("seat %d flagged as winner in a winnerless game", seat)
		}
		if s.result.VictoryPoints == 10 {
			t.Errorf("seat %d got the winner's score in a winnerless game", seat)
		}
	}
}
