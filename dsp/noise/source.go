package noise

import (
	"fmt"
	"math/rand"
	"strings"
	"sync/atomic"
)

// Type selects the noise colour.
type Type int32

const (
	White Type = iota
	Pink
	Brown
)

func (t Type) String() string {
	switch t {
	case White:
		return "white"
	case Pink:
		return "pink"
	case Brown:
		return "brown"
	default:
		return fmt.Sprintf("Type(%d)", int32(t))
	}
}

// Valid reports whether t names a known generator.
func (t Type) Valid() bool {
	return t >= White && t <= Brown
}

// ParseType maps a name to a Type. Unknown names yield White and an error.
func ParseType(name string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "white":
		return White, nil
	case "pink":
		return Pink, nil
	case "brown", "brownian", "red":
		return Brown, nil
	}
	return White, fmt.Errorf("noise: unknown type %q", name)
}

type config struct {
	seed   int64
	params Params
	typ    Type
}

// Option configures a Source.
type Option func(*config) error

// WithSeed sets the seed of the uniform random source.
func WithSeed(seed int64) Option {
	return func(c *config) error {
		c.seed = seed
		return nil
	}
}

// WithParams replaces the generator constants.
func WithParams(p Params) Option {
	return func(c *config) error {
		if err := p.Validate(); err != nil {
			return err
		}
		c.params = p
		return nil
	}
}

// WithType sets the initial generator.
func WithType(t Type) Option {
	return func(c *config) error {
		if !t.Valid() {
			return fmt.Errorf("noise: invalid type: %d", int32(t))
		}
		c.typ = t
		return nil
	}
}

// Source generates noise of the active Type.
type Source struct {
	typ    atomic.Int32
	params Params
	rng    *rand.Rand

	pink  PinkState
	brown BrownState
}

// New returns a Source with zeroed state.
func New(opts ...Option) (*Source, error) {
	cfg := config{seed: 1, params: DefaultParams(), typ: White}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	s := &Source{
		params: cfg.params,
		rng:    rand.New(rand.NewSource(cfg.seed)),
	}
	s.typ.Store(int32(cfg.typ))
	return s, nil
}

// SetType switches the active generator. State of every generator is kept.
// Unknown types fall back to White.
func (s *Source) SetType(t Type) {
	if !t.Valid() {
		t = White
	}
	s.typ.Store(int32(t))
}

// Type returns the active generator.
func (s *Source) Type() Type {
	return Type(s.typ.Load())
}

// Params returns the generator constants.
func (s *Source) Params() Params {
	return s.params
}

// Next returns one sample of the active generator.
func (s *Source) Next() float64 {
	return s.next(Type(s.typ.Load()))
}

// GenerateBlock fills dst with samples of the active generator.
// The type is sampled once per block.
func (s *Source) GenerateBlock(dst []float64) {
	t := Type(s.typ.Load())
	for i := range dst {
		dst[i] = s.next(t)
	}
}

func (s *Source) next(t Type) float64 {
	w := s.rng.Float64()*2 - 1
	switch t {
	case Pink:
		return s.pink.step(w, &s.params) * s.params.PinkScale
	case Brown:
		return s.brown.step(w, s.params.BrownLeak) * s.params.BrownScale
	default:
		return w * s.params.WhiteScale
	}
}

// PinkState returns a copy of the pink filter memory.
// Call it from the goroutine that generates samples.
func (s *Source) PinkState() PinkState {
	return s.pink
}

// BrownState returns a copy of the brown accumulator.
// Call it from the goroutine that generates samples.
func (s *Source) BrownState() BrownState {
	return s.brown
}

// Reset clears all generator memory. The random sequence continues.
func (s *Source) Reset() {
	s.pink = PinkState{}
	s.brown = BrownState{}
}
