// Package dice rolls the pair of six-sided dice that drive each turn.
package dice

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/lox/finest9/internal/randutil"
)

const (
	// Faces is the number of sides on each die.
	Faces = 6

	SnakeEyes = 2
	Boxcars   = 12
	// Nine cannot be played and is always re-rolled.
	Nine = 9
)

// Roll is the result of rolling two dice.
type Roll struct {
	Die1 int
	Die2 int
}

// NewRoll builds a roll from two faces, rejecting values outside 1..6.
func NewRoll(die1, die2 int) (Roll, error) {
	if die1 < 1 || die1 > Faces || die2 < 1 || die2 > Faces {
		return Roll{}, fmt.Errorf("dice: invalid faces %d and %d", die1, die2)
	}
	return Roll{Die1: die1, Die2: die2}, nil
}

// MustRoll is NewRoll for tests and literals; it panics on bad faces.
func MustRoll(die1, die2 int) Roll {
	r, err := NewRoll(die1, die2)
	if err != nil {
		panic(err)
	}
	return r
}

func (r Roll) Total() int        { return r.Die1 + r.Die2 }
func (r Roll) IsSnakeEyes() bool { return r.Total() == SnakeEyes }
func (r Roll) IsBoxcars() bool   { return r.Total() == Boxcars }
func (r Roll) IsNine() bool      { return r.Total() == Nine }

func (r Roll) String() string {
	return fmt.Sprintf("%d+%d=%d", r.Die1, r.Die2, r.Total())
}

// Roller rolls dice from an injected random source.
type Roller struct {
	rng    randutil.Source
	logger *log.Logger
}

// NewRoller creates a Roller.
func NewRoller(rng randutil.Source, logger *log.Logger) *Roller {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Roller{rng: rng, logger: logger.WithPrefix("dice")}
}

// Roll rolls two independent dice.
func (r *Roller) Roll() Roll {
	return Roll{
		Die1: r.rng.IntN(Faces) + 1,
		Die2: r.rng.IntN(Faces) + 1,
	}
}

// RollUntilNotNine keeps rolling until the total is anything but nine.
func (r *Roller) RollUntilNotNine() Roll {
	roll := r.Roll()
	for roll.IsNine() {
		r.logger.Debug("Re-rolling nine", "roll", roll)
		roll = r.Roll()
	}
	return roll
}
