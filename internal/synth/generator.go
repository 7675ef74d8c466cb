package synth

import (
	"fmt"

	"renewflow/internal/model"
)

// Generator composes the per-stage models into one merged dataset. It
// is the sole entry point of the synthesis engine and carries no
// side effects: the same range and catalog always produce the same
// artifact.
type Generator struct {
	dateRange model.DateRange
	catalog   model.Catalog

	weather  *WeatherModel
	price    *PriceModel
	downtime *DowntimeModel
	degrader *Degrader
}

// NewGenerator validates the catalog up front; an invalid catalog is a
// configuration error, not a runtime condition.
func NewGenerator(r model.DateRange, catalog model.Catalog) (*Generator, error) {
	if err := catalog.Validate(); err != nil {
		return nil, fmt.Errorf("invalid site catalog: %w", err)
	}
	return &Generator{
		dateRange: r,
		catalog:   catalog,
		weather:   NewWeatherModel(),
		price:     NewPriceModel(),
		downtime:  NewDowntimeModel(),
		degrader:  NewDegrader(),
	}, nil
}

// SetQualityRates overrides the default defect injection rates, for
// runs driven by configuration.
func (g *Generator) SetQualityRates(missingRate, outlierRate float64) {
	g.degrader.MissingRate = missingRate
	g.degrader.OutlierRate = outlierRate
}

// Generate builds the merged dataset: shared weather and price series,
// one row block per site, quality degradation, and a final revenue
// recompute so the derived-field invariant holds on the emitted
// artifact even where injection altered energy.
func (g *Generator) Generate() (*model.Dataset, error) {
	days := g.dateRange.Days()

	// One shared weather and price series for the whole range: on any
	// given day every site observes the same sky and the same market.
	weather := g.weather.Generate(g.dateRange)
	prices := g.price.Generate(g.dateRange)

	ds := &model.Dataset{
		Records: make([]model.Record, 0, len(days)*len(g.catalog)),
	}

	for _, site := range g.catalog {
		energy, err := production(site, days, weather)
		if err != nil {
			return nil, err
		}
		downtime := g.downtime.Generate(g.dateRange, site.Type)

		for i, day := range days {
			availability := 1 - downtime[i]/24
			produced := energy[i] * availability
			ds.Records = append(ds.Records, model.Record{
				Date:          day,
				SiteID:        site.ID,
				SiteName:      site.Name,
				SiteType:      site.Type,
				EnergyKWh:     produced,
				SpotPrice:     prices[i],
				Revenue:       revenue(produced, prices[i]),
				Condition:     weather.Conditions[i],
				DowntimeHours: downtime[i],
				TemperatureC:  weather.TemperatureC[i],
				WindSpeedMPS:  weather.WindSpeedMPS[i],
			})
		}
	}

	g.degrader.Apply(ds)

	// Recompute revenue from the possibly-corrupted energy column.
	// NaN energy yields NaN revenue through the multiply.
	for i := range ds.Records {
		ds.Records[i].Revenue = revenue(ds.Records[i].EnergyKWh, ds.Records[i].SpotPrice)
	}

	ds.Sort()
	return ds, nil
}

// revenue converts kWh production and a $/MWh price into currency.
func revenue(energyKWh, pricePerMWh float64) float64 {
	return energyKWh * pricePerMWh / 1000
}
