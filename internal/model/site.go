package model

import "fmt"

// SiteType identifies the generation technology of a site.
type SiteType string

const (
	SiteTypeSolar   SiteType = "solar"
	SiteTypeWind    SiteType = "wind"
	SiteTypeBattery SiteType = "battery"
)

// Valid reports whether the site type is one of the known technologies.
func (t SiteType) Valid() bool {
	switch t {
	case SiteTypeSolar, SiteTypeWind, SiteTypeBattery:
		return true
	}
	return false
}

// Site is an immutable catalog entry for a generation or storage asset.
// Capacity is MW for solar and wind sites and MWh for battery sites.
type Site struct {
	ID       string
	Name     string
	Type     SiteType
	Capacity float64
}

// Catalog is an ordered collection of sites. Order is preserved from
// configuration so that output assembly is deterministic.
type Catalog []Site

// Validate checks the catalog for configuration errors: it must be
// non-empty with unique ids, known types, and positive capacities.
func (c Catalog) Validate() error {
	if len(c) == 0 {
		return fmt.Errorf("site catalog is empty")
	}
	seen := make(map[string]struct{}, len(c))
	for _, s := range c {
		if s.ID == "" {
			return fmt.Errorf("site with empty id")
		}
		if _, ok := seen[s.ID]; ok {
			return fmt.Errorf("duplicate site id %q", s.ID)
		}
		seen[s.ID] = struct{}{}
		if !s.Type.Valid() {
			return fmt.Errorf("unknown site type %q for site %s", s.Type, s.ID)
		}
		if s.Capacity <= 0 {
			return fmt.Errorf("site %s has non-positive capacity %v", s.ID, s.Capacity)
		}
	}
	return nil
}

// ReferenceCatalog returns the default six-site portfolio used when the
// configuration does not list its own sites.
func ReferenceCatalog() Catalog {
	return Catalog{
		{ID: "SOLAR001", Name: "Desert Sun Solar Farm", Type: SiteTypeSolar, Capacity: 50},
		{ID: "SOLAR002", Name: "Coastal Solar Array", Type: SiteTypeSolar, Capacity: 35},
		{ID: "SOLAR003", Name: "Mountain Ridge Solar", Type: SiteTypeSolar, Capacity: 60},
		{ID: "WIND001", Name: "Prairie Wind Farm", Type: SiteTypeWind, Capacity: 100},
		{ID: "WIND002", Name: "Offshore Wind Array", Type: SiteTypeWind, Capacity: 150},
		{ID: "BATT001", Name: "Grid Scale Battery", Type: SiteTypeBattery, Capacity: 200},
	}
}
