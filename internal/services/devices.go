package services

import (
	"sort"
	"strings"
)

// DeviceCount is the number of distinct sessions classified into one device
// category.
type DeviceCount struct {
	Device string `json:"device"`
	Count  int    `json:"count"`
}

// BrowserCount is the number of distinct sessions classified into one
// browser family.
type BrowserCount struct {
	Browser string `json:"browser"`
	Count   int    `json:"count"`
}

// uaRule is one substring predicate in a fixed priority order. First match
// wins: every Chrome user agent also contains "Safari", so order is part of
// the contract, not an implementation detail.
type uaRule struct {
	substr string
	label  string
}

var deviceRules = []uaRule{
	{"Mobile", "Mobile"},
	{"Tablet", "Tablet"},
}

var browserRules = []uaRule{
	{"Chrome", "Chrome"},
	{"Firefox", "Firefox"},
	{"Safari", "Safari"},
	{"Edge", "Edge"},
}

func classifyUA(ua string, rules []uaRule, fallback string) string {
	if ua == "" {
		return "Unknown"
	}
	for _, r := range rules {
		if strings.Contains(ua, r.substr) {
			return r.label
		}
	}
	return fallback
}

// ClassifyDevice buckets a user agent into Mobile, Tablet, Desktop, or
// Unknown. This is a substring heuristic, not a parser; misclassification
// of exotic agents is accepted.
func ClassifyDevice(ua string) string { return classifyUA(ua, deviceRules, "Desktop") }

// ClassifyBrowser buckets a user agent into a browser family, or Other for
// agents matching none of the known vendors.
func ClassifyBrowser(ua string) string { return classifyUA(ua, browserRules, "Other") }

// CalculateDevices counts distinct sessions per device category, sorted
// descending by count. Ties keep first-observed order.
func CalculateDevices(sessions []Session) []DeviceCount {
	counts, order := countBy(sessions, ClassifyDevice)
	out := make([]DeviceCount, 0, len(order))
	for _, label := range order {
		out = append(out, DeviceCount{Device: label, Count: counts[label]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// CalculateBrowsers counts distinct sessions per browser family, sorted
// descending by count.
func CalculateBrowsers(sessions []Session) []BrowserCount {
	counts, order := countBy(sessions, ClassifyBrowser)
	out := make([]BrowserCount, 0, len(order))
	for _, label := range order {
		out = append(out, BrowserCount{Browser: label, Count: counts[label]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

func countBy(sessions []Session, classify func(string) string) (map[string]int, []string) {
	counts := map[string]int{}
	order := []string{}
	for _, s := range sessions {
		label := classify(s.UserAgent)
		if _, seen := counts[label]; !seen {
			order = append(order, label)
		}
		counts[label]++
	}
	return counts, order
}
