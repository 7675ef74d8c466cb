package synth

import (
	"testing"
	"time"

	"renewflow/internal/model"
)

func TestPriceGenerateFloor(t *testing.T) {
	r, _ := model.ParseDateRange("2022-01-01", "2024-12-31")
	prices := NewPriceModel().Generate(r)
	if len(prices) != r.Len() {
		t.Fatalf("expected %d prices, got %d", r.Len(), len(prices))
	}
	for i, p := range prices {
		if p < priceFloor {
			t.Fatalf("day %d: price %v below floor", i, p)
		}
	}
}

func TestPriceGenerateDeterministic(t *testing.T) {
	r, _ := model.ParseDateRange("2024-01-01", "2024-06-30")
	m := NewPriceModel()
	a := m.Generate(r)
	b := m.Generate(r)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("day %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestPriceSpikesPresent(t *testing.T) {
	r, _ := model.ParseDateRange("2022-01-01", "2024-12-31")
	prices := NewPriceModel().Generate(r)
	spikes := 0
	for _, p := range prices {
		if p > 100 {
			spikes++
		}
	}
	if spikes == 0 {
		t.Fatalf("expected occasional spikes over three years")
	}
}

func TestIsWeekday(t *testing.T) {
	// 2024-03-04 is a Monday, 2024-03-09 a Saturday.
	if !isWeekday(time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("Monday should be a weekday")
	}
	if isWeekday(time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("Saturday should not be a weekday")
	}
}
