package generate

import "math/rand"

// defaultSeed is used when the caller passes seed 0.
const defaultSeed int64 = 1

// Defaults for unset ranges.
const (
	defaultQtyMin  = 1
	defaultQtyMax  = 50
	defaultCostMin = 1
	defaultCostMax = 20
)

// Option customizes Random.
// Option constructors panic on meaningless input; Random itself returns errors.
type Option func(*config)

type config struct {
	rng              *rand.Rand
	qtyMin, qtyMax   int
	costMin, costMax int
	imbalance        int
	penalties        bool
	penMin, penMax   int
}

func newConfig(opts []Option) config {
	c := config{
		qtyMin:  defaultQtyMin,
		qtyMax:  defaultQtyMax,
		costMin: defaultCostMin,
		costMax: defaultCostMax,
	}
	for _, opt := range opts {
		opt(&c)
	}
	if c.rng == nil {
		c.rng = rngFromSeed(0)
	}

	return c
}

// rngFromSeed returns a deterministic source; seed 0 maps to defaultSeed.
func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultSeed
	}

	return rand.New(rand.NewSource(seed))
}

// WithSeed makes generation reproducible.
func WithSeed(seed int64) Option {
	return func(c *config) { c.rng = rngFromSeed(seed) }
}

// WithRand supplies an explicit source. Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("generate: WithRand(nil)")
	}

	return func(c *config) { c.rng = r }
}

// WithQuantityRange sets the inclusive range of each supply. Panics unless
// 0 <= lo <= hi.
func WithQuantityRange(lo, hi int) Option {
	if lo < 0 || hi < lo {
		panic("generate: WithQuantityRange requires 0 <= lo <= hi")
	}

	return func(c *config) { c.qtyMin, c.qtyMax = lo, hi }
}

// WithCostRange sets the inclusive range of each unit cost. Panics if hi < lo.
func WithCostRange(lo, hi int) Option {
	if hi < lo {
		panic("generate: WithCostRange requires lo <= hi")
	}

	return func(c *config) { c.costMin, c.costMax = lo, hi }
}

// WithImbalance sets sum(supply) - sum(demand). Positive values leave a
// surplus (a dummy sink appears when solving), negative values a shortage.
func WithImbalance(d int) Option {
	return func(c *config) { c.imbalance = d }
}

// WithPenaltyRange enables per-unit penalties drawn from [lo, hi]. Panics if
// hi < lo.
func WithPenaltyRange(lo, hi int) Option {
	if hi < lo {
		panic("generate: WithPenaltyRange requires lo <= hi")
	}

	return func(c *config) { c.penalties, c.penMin, c.penMax = true, lo, hi }
}
