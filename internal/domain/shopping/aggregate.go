package shopping

import "sort"

type itemKey struct {
	name string
	unit string
}

// Aggregate sums amounts per (ingredient name, measurement unit) and orders
// the result by name, then unit. It depends on nothing but its input.
func Aggregate(lines []Line) []Item {
	totals := make(map[itemKey]int64, len(lines))
	for _, line := range lines {
		key := itemKey{name: line.Name, unit: line.MeasurementUnit}
		totals[key] += int64(line.Amount)
	}

	items := make([]Item, 0, len(totals))
	for key, total := range totals {
		items = append(items, Item{Name: key.name, MeasurementUnit: key.unit, TotalAmount: total})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].MeasurementUnit < items[j].MeasurementUnit
	})
	return items
}
