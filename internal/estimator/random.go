// Package estimator holds PriceEstimator implementations used by the local dispatcher.
package estimator

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"sync"

	"github.com/shopspring/decimal"
)

var ErrInvalidBand = errors.New("estimator: band must satisfy 0 <= min <= max and max-min < MaxInt64")

// Random draws a whole-unit amount uniformly from [Min, Max]. It ignores the
// house attributes and stands in for a real model.
type Random struct {
	min, max int64

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewRandom(lo, hi int64, seed uint64) (*Random, error) {
	// the band width plus one must fit in an int64
	if lo < 0 || lo > hi || hi-lo == math.MaxInt64 {
		return nil, ErrInvalidBand
	}
	return &Random{
		min: lo,
		max: hi,
		rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}, nil
}

func (r *Random) Estimate(ctx context.Context, location, houseType string, bedrooms, bathrooms, toilets int) (decimal.Decimal, error) {
	if err := ctx.Err(); err != nil {
		return decimal.Zero, err
	}

	r.mu.Lock()
	n := r.min + r.rnd.Int64N(r.max-r.min+1)
	r.mu.Unlock()

	return decimal.NewFromInt(n), nil
}
