package synth

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"renewflow/internal/model"
)

const (
	// DefaultMissingRate is the per-cell missing probability applied to
	// each nullable column.
	DefaultMissingRate = 0.02
	// DefaultOutlierRate is the per-row probability of an energy
	// outlier.
	DefaultOutlierRate = 0.01
)

// Multipliers applied to outlier rows: suppressive readings from
// faulted equipment and amplifying anomalies.
var outlierMultipliers = [4]float64{0.1, 0.2, 2.0, 3.0}

// nullableColumn identifies the cells the missing-value pass may null.
type nullableColumn int

const (
	colEnergy nullableColumn = iota
	colTemperature
	colWindSpeed
)

var nullableColumns = [3]nullableColumn{colEnergy, colTemperature, colWindSpeed}

// Degrader injects the two intentional data-quality defects, in fixed
// order: missing values first, then multiplicative energy outliers.
// Both passes mutate cells only; no rows are ever added or deleted.
type Degrader struct {
	MissingRate float64
	OutlierRate float64
}

func NewDegrader() *Degrader {
	return &Degrader{
		MissingRate: DefaultMissingRate,
		OutlierRate: DefaultOutlierRate,
	}
}

// Apply mutates the merged dataset in place. The two defect classes
// use separate fixed seeds, so each is reproducible independently of
// the other.
func (d *Degrader) Apply(ds *model.Dataset) {
	d.injectMissing(ds)
	d.injectOutliers(ds)
}

// injectMissing nulls a small fraction of cells in each nullable
// column. Missingness is per-cell and independent across columns.
func (d *Degrader) injectMissing(ds *model.Dataset) {
	src := newSource(missingSeed)
	uniform := distuv.Uniform{Min: 0, Max: 1, Src: src}
	for _, col := range nullableColumns {
		for i := range ds.Records {
			if uniform.Rand() >= d.MissingRate {
				continue
			}
			switch col {
			case colEnergy:
				ds.Records[i].EnergyKWh = math.NaN()
			case colTemperature:
				ds.Records[i].TemperatureC = math.NaN()
			case colWindSpeed:
				ds.Records[i].WindSpeedMPS = math.NaN()
			}
		}
	}
}

// injectOutliers scales the energy of a sparse row subset by one of
// the extreme multipliers. NaN energy stays NaN; the multiply is a
// no-op on already-missing cells.
func (d *Degrader) injectOutliers(ds *model.Dataset) {
	src := newSource(outlierSeed)
	uniform := distuv.Uniform{Min: 0, Max: 1, Src: src}
	selected := make([]bool, len(ds.Records))
	for i := range selected {
		selected[i] = uniform.Rand() < d.OutlierRate
	}
	rng := rand.New(src)
	for i, hit := range selected {
		if !hit {
			continue
		}
		ds.Records[i].EnergyKWh *= outlierMultipliers[rng.IntN(len(outlierMultipliers))]
	}
}
