package synth

import (
	"math"

	"renewflow/internal/model"
)

// Summary is the statistics artifact derived from a generated dataset.
// Field names follow the downstream pipeline's metadata contract.
type Summary struct {
	TotalRecords int              `json:"total_records"`
	DateRange    DateBounds       `json:"date_range"`
	Sites        SiteSummary      `json:"sites"`
	Energy       AggregateSummary `json:"energy_production"`
	Revenue      AggregateSummary `json:"revenue"`
	DataQuality  QualitySummary   `json:"data_quality"`
}

type DateBounds struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type SiteSummary struct {
	TotalSites int            `json:"total_sites"`
	SiteTypes  map[string]int `json:"site_types"`
	SitesList  []string       `json:"sites_list"`
}

// AggregateSummary holds NaN-aware totals over one numeric column.
type AggregateSummary struct {
	Total    float64 `json:"total"`
	AvgDaily float64 `json:"avg_daily"`
	MaxDaily float64 `json:"max_daily"`
}

type QualitySummary struct {
	MissingValues     map[string]int     `json:"missing_values"`
	MissingPercentage map[string]float64 `json:"missing_percentage"`
}

// TotalMissing sums missing-cell counts across all columns.
func (q QualitySummary) TotalMissing() int {
	total := 0
	for _, n := range q.MissingValues {
		total += n
	}
	return total
}

// Summarize derives the summary statistics from a dataset. It is a
// pure read: missing cells are skipped in aggregates and counted in
// the data-quality section.
func Summarize(ds *model.Dataset) Summary {
	s := Summary{
		TotalRecords: ds.Len(),
		Sites: SiteSummary{
			SiteTypes: make(map[string]int),
		},
		DataQuality: QualitySummary{
			MissingValues:     make(map[string]int),
			MissingPercentage: make(map[string]float64),
		},
	}

	if ds.Len() > 0 {
		minDate, maxDate := ds.Records[0].Date, ds.Records[0].Date
		for _, r := range ds.Records {
			if r.Date.Before(minDate) {
				minDate = r.Date
			}
			if r.Date.After(maxDate) {
				maxDate = r.Date
			}
		}
		s.DateRange = DateBounds{
			Start: minDate.Format("2006-01-02"),
			End:   maxDate.Format("2006-01-02"),
		}
	}

	typeBySite := make(map[string]model.SiteType)
	for _, r := range ds.Records {
		if _, ok := typeBySite[r.SiteID]; !ok {
			typeBySite[r.SiteID] = r.SiteType
			s.Sites.SitesList = append(s.Sites.SitesList, r.SiteID)
		}
	}
	s.Sites.TotalSites = len(s.Sites.SitesList)
	for _, t := range typeBySite {
		s.Sites.SiteTypes[string(t)]++
	}

	s.Energy = aggregate(ds, func(r model.Record) float64 { return r.EnergyKWh })
	s.Revenue = aggregate(ds, func(r model.Record) float64 { return r.Revenue })

	missing := map[string]int{}
	for _, r := range ds.Records {
		if model.Missing(r.EnergyKWh) {
			missing["EnergyProduced_kWh"]++
		}
		if model.Missing(r.Revenue) {
			missing["Revenue"]++
		}
		if model.Missing(r.TemperatureC) {
			missing["Temperature_C"]++
		}
		if model.Missing(r.WindSpeedMPS) {
			missing["WindSpeed_mps"]++
		}
	}
	for _, col := range model.Columns {
		count := missing[col]
		s.DataQuality.MissingValues[col] = count
		if ds.Len() > 0 {
			s.DataQuality.MissingPercentage[col] = float64(count) / float64(ds.Len()) * 100
		} else {
			s.DataQuality.MissingPercentage[col] = 0
		}
	}
	return s
}

// aggregate computes total, mean, and max of one column, skipping
// missing cells.
func aggregate(ds *model.Dataset, value func(model.Record) float64) AggregateSummary {
	var agg AggregateSummary
	agg.MaxDaily = math.Inf(-1)
	present := 0
	for _, r := range ds.Records {
		v := value(r)
		if model.Missing(v) {
			continue
		}
		agg.Total += v
		if v > agg.MaxDaily {
			agg.MaxDaily = v
		}
		present++
	}
	if present > 0 {
		agg.AvgDaily = agg.Total / float64(present)
	} else {
		agg.MaxDaily = 0
	}
	return agg
}
