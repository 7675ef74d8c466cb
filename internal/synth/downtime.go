package synth

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"renewflow/internal/model"
)

const (
	maintenanceHoursMin = 2.0
	maintenanceHoursMax = 12.0
	weatherOutageMean   = 0.5
	weatherOutageCutoff = 3.0
)

// Daily maintenance probability by technology. Wind turbines need the
// most attention, batteries the least.
var maintenanceProb = map[model.SiteType]float64{
	model.SiteTypeSolar:   0.02,
	model.SiteTypeWind:    0.03,
	model.SiteTypeBattery: 0.01,
}

// DowntimeModel produces per-day outage hours in [0,24]. The stream is
// rebuilt from the fixed downtime seed on every call, so sites of the
// same type share an outage calendar and only the event probability
// differs across technologies.
type DowntimeModel struct {
	seed uint64
}

func NewDowntimeModel() *DowntimeModel {
	return &DowntimeModel{seed: downtimeSeed}
}

// Generate returns outage hours for each day in the range.
func (m *DowntimeModel) Generate(r model.DateRange, siteType model.SiteType) []float64 {
	n := r.Len()
	src := newSource(m.seed)
	prob := maintenanceProb[siteType]

	// The mask, duration, and weather columns are each drawn in full so
	// the stream layout does not depend on how many events fire.
	uniform := distuv.Uniform{Min: 0, Max: 1, Src: src}
	events := make([]bool, n)
	for i := range events {
		events[i] = uniform.Rand() < prob
	}

	duration := distuv.Uniform{Min: maintenanceHoursMin, Max: maintenanceHoursMax, Src: src}
	hours := make([]float64, n)
	for i := range hours {
		h := duration.Rand()
		if events[i] {
			hours[i] = h
		}
	}

	// Brief weather incidents: exponentially distributed, zeroed above
	// a short threshold so most days contribute nothing.
	outage := distuv.Exponential{Rate: 1 / weatherOutageMean, Src: src}
	for i := range hours {
		w := outage.Rand()
		if w <= weatherOutageCutoff {
			hours[i] += w
		}
		hours[i] = math.Min(hours[i], 24)
	}
	return hours
}
