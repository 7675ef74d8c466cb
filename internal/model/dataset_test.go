package model

import (
	"math"
	"testing"
	"time"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func TestDatasetSort(t *testing.T) {
	ds := &Dataset{Records: []Record{
		{Date: day(2), SiteID: "B"},
		{Date: day(1), SiteID: "B"},
		{Date: day(2), SiteID: "A"},
		{Date: day(1), SiteID: "A"},
	}}
	ds.Sort()

	want := []struct {
		d  time.Time
		id string
	}{
		{day(1), "A"}, {day(1), "B"}, {day(2), "A"}, {day(2), "B"},
	}
	for i, w := range want {
		r := ds.Records[i]
		if !r.Date.Equal(w.d) || r.SiteID != w.id {
			t.Fatalf("row %d: got (%s, %s), want (%s, %s)",
				i, r.Date.Format("2006-01-02"), r.SiteID, w.d.Format("2006-01-02"), w.id)
		}
	}
}

func TestDatasetSiteIDs(t *testing.T) {
	ds := &Dataset{Records: []Record{
		{Date: day(1), SiteID: "X"},
		{Date: day(1), SiteID: "Y"},
		{Date: day(2), SiteID: "X"},
	}}
	ids := ds.SiteIDs()
	if len(ids) != 2 || ids[0] != "X" || ids[1] != "Y" {
		t.Fatalf("unexpected site ids: %v", ids)
	}
}

func TestMissing(t *testing.T) {
	if Missing(0) || Missing(-12.5) {
		t.Fatalf("finite values must not be missing")
	}
	if !Missing(math.NaN()) {
		t.Fatalf("NaN must be missing")
	}
}
