package model

// Condition is the categorical daily weather label shared by all sites.
type Condition string

const (
	ConditionSunny        Condition = "Sunny"
	ConditionPartlyCloudy Condition = "Partly Cloudy"
	ConditionCloudy       Condition = "Cloudy"
	ConditionRainy        Condition = "Rainy"
	ConditionStormy       Condition = "Stormy"
	ConditionFoggy        Condition = "Foggy"
)

// Conditions returns every weather label in sampling order.
func Conditions() []Condition {
	return []Condition{
		ConditionSunny,
		ConditionPartlyCloudy,
		ConditionCloudy,
		ConditionRainy,
		ConditionStormy,
		ConditionFoggy,
	}
}

// Valid reports whether the condition is one of the six known labels.
func (c Condition) Valid() bool {
	switch c {
	case ConditionSunny, ConditionPartlyCloudy, ConditionCloudy,
		ConditionRainy, ConditionStormy, ConditionFoggy:
		return true
	}
	return false
}

// Weather holds the per-day weather series for one date range. All
// slices have the same length as the range and index by day offset.
type Weather struct {
	TemperatureC []float64
	WindSpeedMPS []float64
	Conditions   []Condition
}
