package recommend

import (
	"math"

	"github.com/kailas-cloud/cardex/internal/domain/car"
)

// Weights distributes the composite score across the four similarity
// factors. Values are applied as given; keeping them summing to 1 is the
// caller's contract, not enforced here.
type Weights struct {
	Price       float64
	Performance float64
	Brand       float64
	Tags        float64
}

// DefaultWeights favors price and performance over brand and tag overlap.
func DefaultWeights() Weights {
	return Weights{Price: 0.3, Performance: 0.3, Brand: 0.2, Tags: 0.2}
}

// scorer scores candidates against one reference car. The reference side is
// resolved once so scoring a candidate is allocation-free.
type scorer struct {
	w        Weights
	refAvg   *float64
	refPerf  *car.Performance
	refBrand string
	refTags  map[string]struct{}
}

func newScorer(ref car.Car, refTags []string, w Weights) *scorer {
	s := &scorer{
		w:        w,
		refAvg:   ref.AveragePrice(),
		refPerf:  ref.Performance(),
		refBrand: ref.BrandSlug(),
		refTags:  make(map[string]struct{}, len(refTags)),
	}
	for _, id := range refTags {
		s.refTags[id] = struct{}{}
	}
	return s
}

// score computes the weighted similarity of one candidate. Factors with
// missing data on either side contribute zero.
func (s *scorer) score(c car.Car, tags []string) float64 {
	return s.w.Price*s.priceSim(c) +
		s.w.Performance*s.perfSim(c) +
		s.w.Brand*s.brandSim(c) +
		s.w.Tags*s.tagSim(tags)
}

// priceSim compares average prices. It is not clamped at zero, so a wildly
// mispriced candidate drags its composite score down.
func (s *scorer) priceSim(c car.Car) float64 {
	if s.refAvg == nil || *s.refAvg == 0 {
		return 0
	}
	avg := c.AveragePrice()
	if avg == nil {
		return 0
	}
	return 1 - math.Abs(*avg-*s.refAvg)/(*s.refAvg)
}

// perfSim averages a top speed term and an acceleration term. A term counts
// only when the reference metric is present and non-zero and the candidate
// carries the metric too; the divisor stays 2 regardless.
func (s *scorer) perfSim(c car.Car) float64 {
	if s.refPerf == nil {
		return 0
	}
	perf := c.Performance()
	if perf == nil {
		return 0
	}

	var topTerm, accelTerm float64
	refTop, candTop := s.refPerf.TopSpeedKMH(), perf.TopSpeedKMH()
	if refTop != nil && *refTop != 0 && candTop != nil {
		topTerm = 1 - math.Abs(float64(*candTop-*refTop))/float64(*refTop)
	}
	refAccel, candAccel := s.refPerf.AccelMinSeconds(), perf.AccelMinSeconds()
	if refAccel != nil && *refAccel != 0 && candAccel != nil {
		accelTerm = 1 - math.Abs(*candAccel-*refAccel)/(*refAccel)
	}
	return (topTerm + accelTerm) / 2
}

func (s *scorer) brandSim(c car.Car) float64 {
	if c.BrandSlug() == s.refBrand {
		return 1
	}
	return 0
}

// tagSim is the share of the reference car's tags the candidate carries.
func (s *scorer) tagSim(tags []string) float64 {
	if len(s.refTags) == 0 {
		return 0
	}
	matching := 0
	for _, id := range tags {
		if _, ok := s.refTags[id]; ok {
			matching++
		}
	}
	return float64(matching) / float64(len(s.refTags))
}
