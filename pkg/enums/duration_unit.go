package enums

import "fmt"

// DurationUnit is the time bucket a rental slot is priced in.
type DurationUnit string

const (
	DurationHour  DurationUnit = "hour"
	DurationDay   DurationUnit = "day"
	DurationWeek  DurationUnit = "week"
	DurationMonth DurationUnit = "month"
	DurationYear  DurationUnit = "year"
)

var validDurationUnits = []DurationUnit{
	DurationHour,
	DurationDay,
	DurationWeek,
	DurationMonth,
	DurationYear,
}

// String implements fmt.Stringer.
func (d DurationUnit) String() string {
	return string(d)
}

// IsValid reports whether the value is a known DurationUnit.
func (d DurationUnit) IsValid() bool {
	for _, candidate := range validDurationUnits {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDurationUnit converts raw input into a DurationUnit.
func ParseDurationUnit(value string) (DurationUnit, error) {
	for _, candidate := range validDurationUnits {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid duration unit %q", value)
}
