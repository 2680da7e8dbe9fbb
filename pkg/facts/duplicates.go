package facts

import (
	"fmt"
	"strings"
)

// RuleDuplicate is the stable rule identifier duplicate-group errors carry,
// one per colliding group regardless of how many groups exist.
const RuleDuplicate = "FACT_DUPLICATE"

// maxValueDisplay caps each colliding value when rendered into a message.
const maxValueDisplay = 50

type groupKey struct {
	element string
	context string
	unit    string
}

// Duplicate describes one colliding (element, context, unit) group.
type Duplicate struct {
	Element string   `json:"element"`
	Context string   `json:"context"`
	Unit    string   `json:"unit,omitempty"`
	Count   int      `json:"count"`
	Values  []string `json:"values"`
}

// FindDuplicates groups a fact list by (element, context, unit) and
// returns one entry per group with two or more members, in first-encounter
// order. A missing unit is a distinct, stable key component: two unitless
// facts collide with each other but never with a unit-bearing one.
// Collected values keep encounter order and are truncated for display.
func FindDuplicates(list []Fact) []Duplicate {
	groups := make(map[groupKey][]string)
	var order []groupKey
	for _, f := range list {
		key := groupKey{element: f.Element, context: f.Context, unit: f.Unit}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], truncateValue(f.Value))
	}

	var out []Duplicate
	for _, key := range order {
		values := groups[key]
		if len(values) < 2 {
			continue
		}
		out = append(out, Duplicate{
			Element: key.element,
			Context: key.context,
			Unit:    key.unit,
			Count:   len(values),
			Values:  values,
		})
	}
	return out
}

// Message renders the group into the diagnostic carried by its error.
func (d Duplicate) Message() string {
	unit := d.Unit
	if unit == "" {
		unit = "none"
	}
	return fmt.Sprintf("element %s is reported %d times for context %s (unit %s): %s",
		d.Element, d.Count, d.Context, unit, strings.Join(d.Values, "; "))
}

func truncateValue(v string) string {
	runes := []rune(v)
	if len(runes) <= maxValueDisplay {
		return v
	}
	return string(runes[:maxValueDisplay]) + "..."
}
