package engine

import (
	"fmt"
	"strings"
	"time"
)

// ParsePriority parses user input to a Priority.
// Supported: low, med, medium, high (and l/m/h).
// If input is empty or unrecognized, returns DefaultPriority.
func ParsePriority(input string) Priority {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "l", "low":
		return PriorityLow
	case "m", "med", "medium":
		return PriorityMedium
	case "h", "hi", "high", "urgent":
		return PriorityHigh
	default:
		return DefaultPriority
	}
}

// ParseBuilding accepts a building key or a short alias.
func ParseBuilding(input string) (BuildingDef, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "lab", "alchemy", "alchemist_lab":
		s = string(BuildingAlchemist)
	case "tower", "chrono_tower":
		s = string(BuildingChrono)
	case "gardens":
		s = string(BuildingGarden)
	case "hall", "guild_hall":
		s = string(BuildingGuild)
	}
	def, ok := BuildingByKey(s)
	if !ok {
		return BuildingDef{}, fmt.Errorf("unknown building: %q", input)
	}
	return def, nil
}

// ParseDueDate reads a local calendar date (YYYY-MM-DD) or one of today/tomorrow.
// The result is the end of that local day.
func ParseDueDate(input string, now time.Time) (*time.Time, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	if s == "" {
		return nil, nil
	}
	var day time.Time
	switch s {
	case "today":
		day = now
	case "tomorrow":
		day = now.AddDate(0, 0, 1)
	default:
		d, err := time.ParseInLocation(dateLayout, s, now.Location())
		if err != nil {
			return nil, fmt.Errorf("invalid due date %q (want YYYY-MM-DD)", input)
		}
		day = d
	}
	_, end := dayBounds(day)
	due := end.Add(-time.Second)
	return &due, nil
}
