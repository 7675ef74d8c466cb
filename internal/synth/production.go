package synth

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/stat/distuv"

	"renewflow/internal/model"
)

// Wind turbine power-curve thresholds in m/s.
const (
	windCutIn  = 3.5
	windRated  = 12.0
	windCutOut = 25.0
)

const batteryDischargeHours = 4.0

// Per-model weather derates, one finite table per technology. Wind is
// weather-complementary to solar: storms boost it, fog and clear sky
// reduce it. Battery dispatch favors poor-renewable weather.
var (
	solarConditionFactor = map[model.Condition]float64{
		model.ConditionSunny:        0.95,
		model.ConditionPartlyCloudy: 0.75,
		model.ConditionCloudy:       0.45,
		model.ConditionRainy:        0.2,
		model.ConditionStormy:       0.1,
		model.ConditionFoggy:        0.3,
	}
	windConditionFactor = map[model.Condition]float64{
		model.ConditionSunny:        0.8,
		model.ConditionPartlyCloudy: 0.9,
		model.ConditionCloudy:       1.0,
		model.ConditionRainy:        1.1,
		model.ConditionStormy:       1.3,
		model.ConditionFoggy:        0.7,
	}
	batteryConditionFactor = map[model.Condition]float64{
		model.ConditionSunny:        0.3,
		model.ConditionPartlyCloudy: 0.5,
		model.ConditionCloudy:       0.8,
		model.ConditionRainy:        1.0,
		model.ConditionStormy:       1.2,
		model.ConditionFoggy:        0.9,
	}
)

// production dispatches to the model matching the site's type and
// returns the pre-downtime daily energy series in kWh. Each site's
// stream is derived from its id, so same-type sites are decorrelated
// but individually reproducible. An unrecognized type is a
// configuration error.
func production(site model.Site, days []time.Time, w *model.Weather) ([]float64, error) {
	src := newSource(siteSeed(site.ID))
	switch site.Type {
	case model.SiteTypeSolar:
		return solarProduction(days, w, site.Capacity, src), nil
	case model.SiteTypeWind:
		return windProduction(w, site.Capacity, src), nil
	case model.SiteTypeBattery:
		return batteryProduction(days, w, site.Capacity, src), nil
	default:
		return nil, fmt.Errorf("unknown site type %q for site %s", site.Type, site.ID)
	}
}

// solarProduction models daily solar output: seasonal daylight,
// condition derate, high-temperature efficiency loss, bounded noise.
func solarProduction(days []time.Time, w *model.Weather, capacity float64, src rand.Source) []float64 {
	noise := distuv.Uniform{Min: 0.8, Max: 1.2, Src: src}
	out := make([]float64, len(days))
	for i, d := range days {
		doy := float64(d.YearDay())
		seasonal := 0.7 + 0.3*math.Sin(2*math.Pi*(doy-80)/365.25)
		weather := solarConditionFactor[w.Conditions[i]]
		// Panel efficiency drops 1%/°C above 25°C, floored at 50%.
		tempDerate := math.Max(0.5, 1-0.01*math.Max(0, w.TemperatureC[i]-25))
		daylightHours := 8 + 4*seasonal
		out[i] = math.Max(capacity*daylightHours*seasonal*weather*tempDerate*noise.Rand(), 0)
	}
	return out
}

// windProduction converts wind speed to a capacity factor through a
// three-region power curve, then applies the condition factor and
// bounded noise over 24 hours of operation.
func windProduction(w *model.Weather, capacity float64, src rand.Source) []float64 {
	noise := distuv.Uniform{Min: 0.85, Max: 1.15, Src: src}
	out := make([]float64, len(w.WindSpeedMPS))
	for i, speed := range w.WindSpeedMPS {
		cf := capacityFactor(speed)
		weather := windConditionFactor[w.Conditions[i]]
		out[i] = math.Max(capacity*24*cf*weather*noise.Rand(), 0)
	}
	return out
}

// capacityFactor is the fraction of rated output achieved at a given
// wind speed: zero below cut-in, cubic ramp to rated, unity to
// cut-out, zero above.
func capacityFactor(speed float64) float64 {
	switch {
	case speed < windCutIn:
		return 0
	case speed < windRated:
		ratio := speed / windRated
		return ratio * ratio * ratio
	case speed < windCutOut:
		return 1
	default:
		return 0
	}
}

// batteryProduction models net daily discharge: seasonal demand peaks
// at both solstice extremes, weekday demand premium, weather-driven
// dispatch, and a wide operational-decision factor.
func batteryProduction(days []time.Time, w *model.Weather, capacity float64, src rand.Source) []float64 {
	operational := distuv.Uniform{Min: 0.3, Max: 1.0, Src: src}
	out := make([]float64, len(days))
	for i, d := range days {
		doy := float64(d.YearDay())
		seasonal := 0.4 + 0.3*math.Abs(math.Sin(2*math.Pi*doy/365.25))
		weekly := 0.8
		if isWeekday(d) {
			weekly += 0.4
		}
		weather := batteryConditionFactor[w.Conditions[i]]
		out[i] = math.Max(capacity*batteryDischargeHours*seasonal*weekly*weather*operational.Rand(), 0)
	}
	return out
}
