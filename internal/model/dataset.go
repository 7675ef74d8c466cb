package model

import (
	"math"
	"sort"
	"time"
)

// Columns is the fixed output column contract, in emission order.
// Every persisted artifact carries exactly these columns.
var Columns = []string{
	"Date",
	"SiteID",
	"SiteName",
	"SiteType",
	"EnergyProduced_kWh",
	"SpotMarketPrice",
	"Revenue",
	"WeatherCondition",
	"DowntimeHours",
	"Temperature_C",
	"WindSpeed_mps",
}

// Record is one (date, site) observation. Nullable numeric cells use
// NaN as the missing marker so that derived arithmetic propagates
// missingness the same way the degradation stage introduced it.
type Record struct {
	Date          time.Time
	SiteID        string
	SiteName      string
	SiteType      SiteType
	EnergyKWh     float64
	SpotPrice     float64
	Revenue       float64
	Condition     Condition
	DowntimeHours float64
	TemperatureC  float64
	WindSpeedMPS  float64
}

// Missing reports whether a nullable cell value is absent.
func Missing(v float64) bool {
	return math.IsNaN(v)
}

// Dataset is the merged output table: one record per (date, site).
// It is built once by the generator, mutated in place by the quality
// degrader, and treated as read-only by every downstream consumer.
type Dataset struct {
	Records []Record
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.Records)
}

// Sort orders records by date ascending with site id as the tie-break.
func (d *Dataset) Sort() {
	sort.SliceStable(d.Records, func(i, j int) bool {
		a, b := d.Records[i], d.Records[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		return a.SiteID < b.SiteID
	})
}

// SiteIDs returns the distinct site ids present, in first-seen order.
func (d *Dataset) SiteIDs() []string {
	seen := make(map[string]struct{})
	ids := make([]string, 0)
	for _, r := range d.Records {
		if _, ok := seen[r.SiteID]; ok {
			continue
		}
		seen[r.SiteID] = struct{}{}
		ids = append(ids, r.SiteID)
	}
	return ids
}
