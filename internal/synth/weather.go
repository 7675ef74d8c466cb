package synth

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"renewflow/internal/model"
)

const (
	baseTemperatureC = 15.0
	tempSeasonalAmpl = 12.0
	tempNoiseSigma   = 5.0

	baseWindSpeed    = 8.0
	windSeasonalAmpl = 3.0
	windGammaShape   = 2.0
	windGammaScale   = 2.0
)

// WeatherModel produces the shared per-day weather series. It is a
// pure function of the date range: every call rebuilds its stream from
// the fixed weather seed, so repeated calls are bit-for-bit identical.
type WeatherModel struct {
	seed uint64
}

func NewWeatherModel() *WeatherModel {
	return &WeatherModel{seed: weatherSeed}
}

// Generate returns one weather sample per day in the range.
func (m *WeatherModel) Generate(r model.DateRange) *model.Weather {
	days := r.Days()
	n := len(days)
	src := newSource(m.seed)

	// Temperature: base + annual sinusoid peaking near day 80 + noise.
	// Draws happen column at a time, mirroring bulk array arithmetic.
	temp := make([]float64, n)
	noise := distuv.Normal{Mu: 0, Sigma: tempNoiseSigma, Src: src}
	for i, d := range days {
		doy := float64(d.YearDay())
		temp[i] = baseTemperatureC + tempSeasonalAmpl*math.Sin(2*math.Pi*(doy-80)/365.25)
	}
	for i := range temp {
		temp[i] += noise.Rand()
	}

	// Wind: base + phase-shifted sinusoid + gamma-skewed draw, floored
	// at zero. The gamma shape keeps the distribution right-skewed.
	wind := make([]float64, n)
	gamma := distuv.Gamma{Alpha: windGammaShape, Beta: 1 / windGammaScale, Src: src}
	for i, d := range days {
		doy := float64(d.YearDay())
		wind[i] = baseWindSpeed + windSeasonalAmpl*math.Sin(2*math.Pi*(doy-120)/365.25)
	}
	for i := range wind {
		wind[i] = math.Max(wind[i]+gamma.Rand(), 0)
	}

	conds := make([]model.Condition, n)
	uniform := distuv.Uniform{Min: 0, Max: 1, Src: src}
	for i := range conds {
		conds[i] = sampleCondition(temp[i], wind[i], uniform.Rand())
	}

	return &model.Weather{
		TemperatureC: temp,
		WindSpeedMPS: wind,
		Conditions:   conds,
	}
}

// conditionWeights returns the unnormalized sampling weight for each
// label in model.Conditions() order. Baselines are strictly positive,
// so the normalizing sum can never degenerate to zero.
func conditionWeights(tempC, windSpeed float64) [6]float64 {
	w := [6]float64{0.4, 0.25, 0.2, 0.1, 0.03, 0.02}
	if tempC > 20 {
		w[0] += 0.2 // Sunny
	}
	if tempC < 10 {
		w[3] += 0.1 // Rainy
	}
	if windSpeed > 15 {
		w[4] += 0.02 // Stormy
	}
	if tempC < 5 {
		w[5] += 0.03 // Foggy
	}
	return w
}

// sampleCondition picks one label given a uniform draw in [0,1).
func sampleCondition(tempC, windSpeed, u float64) model.Condition {
	weights := conditionWeights(tempC, windSpeed)
	total := 0.0
	for _, w := range weights {
		total += w
	}
	labels := model.Conditions()
	target := u * total
	cum := 0.0
	for i, w := range weights {
		cum += w
		if target < cum {
			return labels[i]
		}
	}
	return labels[len(labels)-1]
}
