// Package commands contains the leaf command bodies. Each handler group is a
// struct carrying its collaborators; the catalog in this package binds their
// methods to command definitions at startup.
package commands

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"gabbot/internal/core/domain"
)

// Basic groups the self-contained commands that need no external
// collaborators.
type Basic struct{}

func NewBasic() *Basic {
	return &Basic{}
}

func (b *Basic) Ping(_ context.Context, inv *domain.Invocation, _ domain.Sink) (domain.Result, error) {
	latency := time.Since(inv.Message.Date).Truncate(time.Millisecond)
	return domain.TextResult(fmt.Sprintf("Pong! %s", latency)), nil
}

func (b *Basic) Roll(_ context.Context, inv *domain.Invocation, _ domain.Sink) (domain.Result, error) {
	sides, _ := inv.Args[0].Int()

	dice := 1
	if len(inv.Args) > 1 {
		dice, _ = inv.Args[1].Int()
	}

	if sides < 1 || dice < 1 {
		return domain.TextResult("Dice need at least one side, and you need at least one die."), nil
	}

	rolls := make([]string, dice)
	for i := range rolls {
		rolls[i] = strconv.Itoa(rand.IntN(sides) + 1)
	}

	return domain.TextResult(strings.Join(rolls, " ")), nil
}

// OneRM estimates a one-rep max using the Epley formula.
func (b *Basic) OneRM(_ context.Context, inv *domain.Invocation, _ domain.Sink) (domain.Result, error) {
	weight, _ := inv.Args[0].Float()
	reps, _ := inv.Args[1].Float()

	max := math.Floor(weight * (1 + reps/30))

	return domain.TextResult(fmt.Sprintf("Estimated one rep max: %d", int(max))), nil
}

func (b *Basic) Caesar(_ context.Context, inv *domain.Invocation, _ domain.Sink) (domain.Result, error) {
	shift, _ := inv.Args[0].Int()
	text := inv.Args[1].String()

	shift = ((shift % 26) + 26) % 26

	out := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return 'a' + (r-'a'+rune(shift))%26
		case r >= 'A' && r <= 'Z':
			return 'A' + (r-'A'+rune(shift))%26
		default:
			return r
		}
	}, text)

	return domain.TextResult(out), nil
}
