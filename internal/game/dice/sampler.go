package dice

import (
	"fmt"
	"math"

	"go.uber.org/zap"
)

// Sampler wraps a Source and logger to provide the draws item generation
// needs. Every draw is logged at debug level so a generation run can be
// traced end to end.
//
// A Sampler is owned by one generation worker at a time.
type Sampler struct {
	src    Source
	logger *zap.Logger
}

// NewSampler creates a Sampler that draws from src and logs to logger.
//
// Precondition: src must be non-nil. A nil logger disables logging.
func NewSampler(src Source, logger *zap.Logger) *Sampler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sampler{src: src, logger: logger}
}

// Flip returns the result of a fair coin toss.
func (s *Sampler) Flip() bool {
	v := s.src.Intn(2) == 1
	s.logger.Debug("coin flip", zap.Bool("result", v))
	return v
}

// IntRange returns a uniformly distributed int in the inclusive range [min, max].
//
// Precondition: min <= max.
// Postcondition: min <= result <= max.
func (s *Sampler) IntRange(min, max int) int {
	if min > max {
		panic(fmt.Sprintf("dice: IntRange called with min %d > max %d", min, max))
	}
	v := min + s.src.Intn(max-min+1)
	s.logger.Debug("range roll",
		zap.Int("min", min),
		zap.Int("max", max),
		zap.Int("result", v),
	)
	return v
}

// WeightedIndex draws an index into weights with probability proportional to
// its weight. Zero-weight entries are never chosen.
//
// Postcondition: on success weights[result] > 0.
// Returns ErrNoWeight when the weights sum to zero (including an empty slice)
// and ErrWeightOverflow when the sum exceeds math.MaxInt.
func (s *Sampler) WeightedIndex(weights []uint64) (int, error) {
	var total uint64
	for _, w := range weights {
		if w > math.MaxInt-total {
			return 0, ErrWeightOverflow
		}
		total += w
	}
	if total == 0 {
		return 0, ErrNoWeight
	}

	roll := uint64(s.src.Intn(int(total)))
	for i, w := range weights {
		if roll < w {
			s.logger.Debug("weighted draw",
				zap.Int("candidates", len(weights)),
				zap.Uint64("total", total),
				zap.Int("index", i),
			)
			return i, nil
		}
		roll -= w
	}
	// unreachable: roll < total
	return 0, ErrNoWeight
}
