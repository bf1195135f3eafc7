package stats

import (
	"fmt"
	"sort"

	"github.com/kailas-cloud/cardex/internal/domain/car"
	"github.com/kailas-cloud/cardex/internal/domain/engine"
)

// averagePrice is the mean of (min+max)/2 over cars carrying both bounds.
func averagePrice(cars []car.Car) *float64 {
	var sum float64
	var n int
	for _, c := range cars {
		if avg := c.AveragePrice(); avg != nil {
			sum += *avg
			n++
		}
	}
	if n == 0 {
		return nil
	}
	avg := sum / float64(n)
	return &avg
}

// averagePerformance computes the mean top speed and the mean acceleration.
// Acceleration averages the per-metric means of the 0-100 bounds and needs
// data on both sides.
func averagePerformance(cars []car.Car) (topSpeed, accel *float64) {
	var speedSum float64
	var speedN int
	var minSum, maxSum float64
	var minN, maxN int

	for _, c := range cars {
		p := c.Performance()
		if p == nil {
			continue
		}
		if v := p.TopSpeedKMH(); v != nil {
			speedSum += float64(*v)
			speedN++
		}
		if v := p.AccelMinSeconds(); v != nil {
			minSum += *v
			minN++
		}
		if v := p.AccelMaxSeconds(); v != nil {
			maxSum += *v
			maxN++
		}
	}

	if speedN > 0 {
		v := speedSum / float64(speedN)
		topSpeed = &v
	}
	if minN > 0 && maxN > 0 {
		v := (minSum/float64(minN) + maxSum/float64(maxN)) / 2
		accel = &v
	}
	return topSpeed, accel
}

// popularEngines groups engines by (layout, cylinder count, aspiration) and
// returns the top groups by count, ties broken by description. Groups with
// no describable data are skipped without consuming a slot.
func popularEngines(engines []engine.Engine, limit int) []EngineCount {
	type group struct {
		layout     engine.Layout
		cylinders  int
		aspiration engine.Aspiration
	}

	counts := make(map[group]int)
	for _, e := range engines {
		var g group
		if e.Layout() != nil {
			g.layout = *e.Layout()
		}
		if e.CylinderCount() != nil {
			g.cylinders = *e.CylinderCount()
		}
		if e.Aspiration() != nil {
			g.aspiration = *e.Aspiration()
		}
		counts[g]++
	}

	out := make([]EngineCount, 0, len(counts))
	for g, n := range counts {
		desc := describeGroup(g.layout, g.cylinders, g.aspiration)
		if desc == "" {
			continue
		}
		out = append(out, EngineCount{Description: desc, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Description < out[j].Description
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// describeGroup renders the statistics label for an engine group. Unlike
// Engine.Config, a bare layout reads "Unspecified V Engine".
func describeGroup(layout engine.Layout, cylinders int, aspiration engine.Aspiration) string {
	var desc string
	switch {
	case layout != "" && cylinders > 0:
		desc = fmt.Sprintf("%s%d", layout, cylinders)
	case layout != "":
		desc = fmt.Sprintf("Unspecified %s Engine", layout.Name())
	case cylinders > 0:
		desc = fmt.Sprintf("%d-Cylinder", cylinders)
	}
	if aspiration != "" {
		if desc != "" {
			desc += " "
		}
		desc += aspiration.Name()
	}
	return desc
}
