package dice

// Replay is a Source that yields fixed values in order and then starts over.
// Each value is reduced modulo n. Used for deterministic tests and replays.
type Replay struct {
	values []int
	pos    int
}

// NewReplay returns a Source over values
func NewReplay(values ...int) *Replay {
	return &Replay{values: values}
}

// Intn returns the next value modulo n
func (r *Replay) Intn(n int) int {
	if len(r.values) == 0 {
		return 0
	}
	v := r.values[r.pos%len(r.values)]
	r.pos++
	if v < 0 {
		v = -v
	}
	return v % n
}

// Bits returns a Replay of coin flips: true maps to 1, false to 0
func Bits(flips ...bool) *Replay {
	values := make([]int, len(flips))
	for i, f := range flips {
		if f {
			values[i] = 1
		}
	}
	return NewReplay(values...)
}
