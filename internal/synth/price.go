package synth

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat/distuv"

	"renewflow/internal/model"
)

const (
	basePrice       = 45.0
	priceFloor      = 5.0
	weekdayPremium  = 5.0
	annualTrend     = 2.0
	volatilitySigma = 8.0
	spikeProb       = 0.05
	spikeMin        = 20.0
	spikeMax        = 80.0
)

// PriceModel produces the shared daily spot-market price series. Its
// stream is independent of the weather model's, rebuilt from the fixed
// price seed on every call.
type PriceModel struct {
	seed uint64
}

func NewPriceModel() *PriceModel {
	return &PriceModel{seed: priceSeed}
}

// Generate returns one price per day, floored at a positive minimum.
func (m *PriceModel) Generate(r model.DateRange) []float64 {
	days := r.Days()
	n := len(days)
	src := newSource(m.seed)

	prices := make([]float64, n)
	for i, d := range days {
		doy := float64(d.YearDay())
		seasonal := 10*math.Sin(2*math.Pi*doy/365.25) + 8*math.Sin(4*math.Pi*doy/365.25)
		weekly := 0.0
		if isWeekday(d) {
			weekly = weekdayPremium
		}
		yearsSinceStart := d.Sub(r.Start).Hours() / 24 / 365.25
		prices[i] = basePrice + seasonal + weekly + annualTrend*yearsSinceStart
	}

	volatility := distuv.Normal{Mu: 0, Sigma: volatilitySigma, Src: src}
	for i := range prices {
		prices[i] += volatility.Rand()
	}

	// Sparse spikes: the mask and the magnitudes are drawn as two full
	// columns so the stream layout stays fixed regardless of how many
	// days actually spike.
	uniform := distuv.Uniform{Min: 0, Max: 1, Src: src}
	mask := make([]bool, n)
	for i := range mask {
		mask[i] = uniform.Rand() < spikeProb
	}
	magnitude := distuv.Uniform{Min: spikeMin, Max: spikeMax, Src: src}
	for i := range prices {
		jump := magnitude.Rand()
		if mask[i] {
			prices[i] += jump
		}
	}

	for i := range prices {
		prices[i] = math.Max(prices[i], priceFloor)
	}
	return prices
}

func isWeekday(d time.Time) bool {
	switch d.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	return true
}
