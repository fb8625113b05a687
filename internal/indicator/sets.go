package indicator

import (
	"sort"
	"strings"
)

// Named indicator sets. "default" is the balanced everyday set; chart_* sets
// back charting views, scan_* sets back screeners.
var sets = map[string][]string{
	"default":         {"SMA_20", "SMA_50", "RSI_14", "MACD", "VOLUME_SMA_20", "ADX_14"},
	"chart_basic":     {"SMA_20", "SMA_50", "VOLUME_SMA_20"},
	"chart_advanced":  {"SMA_20", "SMA_50", "EMA_12", "EMA_26", "MACD", "RSI_14", "BB_20"},
	"chart_full":      {"SMA_20", "SMA_50", "SMA_200", "EMA_12", "EMA_26", "MACD", "RSI_14", "BB_20", "ADX_14", "ATR_14", "VOLUME_SMA_20", "OBV"},
	"scan_momentum":   {"RSI_14", "MACD", "STOCH"},
	"scan_trend":      {"ADX_14", "SMA_20", "SMA_50", "SMA_200"},
	"scan_volatility": {"ATR_14", "BB_20"},
	"scan_volume":     {"OBV", "VOLUME_SMA_20", "CMF_20"},
}

// SetNames lists the recognized set names.
func SetNames() []string {
	names := make([]string, 0, len(sets))
	for name := range sets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve maps a selector to indicator identifiers without validating them.
// A selector is a set name, "all" (the sorted union of every set), a
// comma-separated list, or a single identifier passed through as-is.
func Resolve(selector string) []string {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		selector = "default"
	}

	if names, ok := sets[selector]; ok {
		out := make([]string, len(names))
		copy(out, names)
		return out
	}

	if selector == "all" {
		union := make(map[string]bool)
		for _, names := range sets {
			for _, name := range names {
				union[name] = true
			}
		}
		out := make([]string, 0, len(union))
		for name := range union {
			out = append(out, name)
		}
		sort.Strings(out)
		return out
	}

	if strings.Contains(selector, ",") {
		parts := strings.Split(selector, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.ToUpper(strings.TrimSpace(p)); p != "" {
				out = append(out, p)
			}
		}
		return out
	}

	return []string{strings.ToUpper(selector)}
}

// Validate keeps only registered identifiers, in order, deduplicated.
// Unknown names are dropped silently; short-history symbols and typos get the
// same graceful treatment.
func Validate(names []string) []Definition {
	defs := make([]Definition, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		def, ok := registry[name]
		if !ok || seen[name] {
			continue
		}
		seen[name] = true
		defs = append(defs, def)
	}
	return defs
}

// ResolveAndValidate is the common path: selector in, definitions out.
func ResolveAndValidate(selector string) []Definition {
	return Validate(Resolve(selector))
}

// RequiredHistory returns the largest MinHistory across defs, i.e. the number
// of bars needed before every indicator in the selection can produce a value.
func RequiredHistory(defs []Definition) int {
	max := 0
	for _, def := range defs {
		if def.MinHistory > max {
			max = def.MinHistory
		}
	}
	return max
}
