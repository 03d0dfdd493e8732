package services

import "sort"

// LocationCount is the distinct-session count for one (country, city) pair.
type LocationCount struct {
	Country string `json:"country"`
	City    string `json:"city"`
	Count   int    `json:"count"`
}

const locationTopN = 10

// CalculateLocations groups sessions by the best-effort location attached
// to their events and returns the top pairs by count. Sessions without a
// usable location degrade to Unknown/Unknown silently.
func CalculateLocations(sessions []Session) []LocationCount {
	type key struct{ country, city string }
	counts := map[key]int{}
	for _, s := range sessions {
		k := key{country: "Unknown", city: "Unknown"}
		if s.Location != nil {
			if s.Location.Country != "" {
				k.country = s.Location.Country
			}
			if s.Location.City != "" {
				k.city = s.Location.City
			}
		}
		counts[k]++
	}

	out := make([]LocationCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, LocationCount{Country: k.country, City: k.city, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		if out[i].Country != out[j].Country {
			return out[i].Country < out[j].Country
		}
		return out[i].City < out[j].City
	})
	if len(out) > locationTopN {
		out = out[:locationTopN]
	}
	return out
}
