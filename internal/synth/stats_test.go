package synth

import (
	"math"
	"testing"
	"time"

	"renewflow/internal/model"
)

func TestSummarizeBasics(t *testing.T) {
	d1 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	ds := &model.Dataset{Records: []model.Record{
		{Date: d1, SiteID: "SOLAR001", SiteType: model.SiteTypeSolar, EnergyKWh: 100, Revenue: 5, TemperatureC: 20, WindSpeedMPS: 8},
		{Date: d1, SiteID: "WIND001", SiteType: model.SiteTypeWind, EnergyKWh: 200, Revenue: 10, TemperatureC: 20, WindSpeedMPS: 8},
		{Date: d2, SiteID: "SOLAR001", SiteType: model.SiteTypeSolar, EnergyKWh: math.NaN(), Revenue: math.NaN(), TemperatureC: 21, WindSpeedMPS: 9},
	}}

	s := Summarize(ds)
	if s.TotalRecords != 3 {
		t.Fatalf("total records: %d", s.TotalRecords)
	}
	if s.DateRange.Start != "2024-03-01" || s.DateRange.End != "2024-03-02" {
		t.Fatalf("date bounds: %+v", s.DateRange)
	}
	if s.Sites.TotalSites != 2 {
		t.Fatalf("site count: %d", s.Sites.TotalSites)
	}
	if s.Sites.SiteTypes["solar"] != 1 || s.Sites.SiteTypes["wind"] != 1 {
		t.Fatalf("site types: %v", s.Sites.SiteTypes)
	}

	if s.Energy.Total != 300 {
		t.Fatalf("energy total skipping missing: %v", s.Energy.Total)
	}
	if s.Energy.AvgDaily != 150 {
		t.Fatalf("energy mean over present cells: %v", s.Energy.AvgDaily)
	}
	if s.Energy.MaxDaily != 200 {
		t.Fatalf("energy max: %v", s.Energy.MaxDaily)
	}

	if s.DataQuality.MissingValues["EnergyProduced_kWh"] != 1 {
		t.Fatalf("missing energy count: %v", s.DataQuality.MissingValues)
	}
	if s.DataQuality.MissingValues["Revenue"] != 1 {
		t.Fatalf("missing revenue count: %v", s.DataQuality.MissingValues)
	}
	wantPct := 1.0 / 3.0 * 100
	if math.Abs(s.DataQuality.MissingPercentage["EnergyProduced_kWh"]-wantPct) > 1e-9 {
		t.Fatalf("missing percentage: %v", s.DataQuality.MissingPercentage)
	}
	if s.DataQuality.TotalMissing() != 2 {
		t.Fatalf("total missing: %d", s.DataQuality.TotalMissing())
	}
}

func TestSummarizeEmptyDataset(t *testing.T) {
	s := Summarize(&model.Dataset{})
	if s.TotalRecords != 0 {
		t.Fatalf("total records: %d", s.TotalRecords)
	}
	if s.Energy.Total != 0 || s.Energy.MaxDaily != 0 {
		t.Fatalf("empty aggregates should be zero: %+v", s.Energy)
	}
	for col, pct := range s.DataQuality.MissingPercentage {
		if pct != 0 {
			t.Fatalf("column %s: nonzero percentage on empty dataset", col)
		}
	}
}
