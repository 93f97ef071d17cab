// Package dice provides the random source used by combat and enemy spawning.
// The source is injected so tests can replay a fixed sequence.
package dice

import (
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Source produces uniform integers in [0,n). *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// Roller handles dice rolling with a configurable random source
type Roller struct {
	src Source
}

// NewRoller creates a new Roller with the given random source
func NewRoller(src Source) *Roller {
	return &Roller{src: src}
}

// NewSeededRoller creates a Roller over math/rand seeded with seed, or with
// the current time when seed is 0.
func NewSeededRoller(seed int64) *Roller {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return NewRoller(rand.New(rand.NewSource(seed)))
}

// Coin returns a uniform random bit
func (r *Roller) Coin() bool {
	return r.src.Intn(2) == 1
}

// Intn returns a uniform integer in [0,n)
func (r *Roller) Intn(n int) int {
	return r.src.Intn(n)
}

// diceRegex matches "3d6", "1d4+2", "2d8-1"
var diceRegex = regexp.MustCompile(`^(\d+)d(\d+)(?:([+-])(\d+))?$`)

// Roll evaluates a dice expression: a constant ("5") or NdS with an optional
// +M / -M modifier. The result is never negative.
func (r *Roller) Roll(expression string) (int, error) {
	expr := strings.ReplaceAll(strings.TrimSpace(strings.ToLower(expression)), " ", "")
	if expr == "" {
		return 0, fmt.Errorf("empty expression")
	}

	if n, err := strconv.Atoi(expr); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("negative constant in expression: %s", expression)
		}
		return n, nil
	}

	matches := diceRegex.FindStringSubmatch(expr)
	if matches == nil {
		return 0, fmt.Errorf("invalid dice expression: %s", expression)
	}

	count, _ := strconv.Atoi(matches[1])
	sides, _ := strconv.Atoi(matches[2])
	if count <= 0 || sides <= 0 {
		return 0, fmt.Errorf("invalid dice expression: %s", expression)
	}

	total := 0
	for i := 0; i < count; i++ {
		total += r.src.Intn(sides) + 1
	}

	if matches[3] != "" {
		mod, _ := strconv.Atoi(matches[4])
		if matches[3] == "-" {
			mod = -mod
		}
		total += mod
	}

	if total < 0 {
		total = 0
	}
	return total, nil
}

// Validate reports whether expression can be rolled, without rolling it
func Validate(expression string) error {
	_, err := NewRoller(NewReplay(0)).Roll(expression)
	return err
}
