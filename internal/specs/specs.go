// Package specs normalizes the free-text specification fields of the car
// dataset into structured values. Every parser is pure and best-effort:
// malformed or missing input yields nil results, never errors. Downstream
// code must treat nil as "unknown", not zero.
package specs

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/kailas-cloud/cardex/internal/domain/fuel"
)

var (
	integerRe = regexp.MustCompile(`\d+`)
	decimalRe = regexp.MustCompile(`\d+\.\d+`)

	capacityRangeRe  = regexp.MustCompile(`(\d+(?:,\d{3})*)\s*-\s*(\d+(?:,\d{3})*)\s*(cc|kwh)`)
	capacitySingleRe = regexp.MustCompile(`(\d+(?:,\d{3})*)\s*(cc|kwh)`)

	fuelSeparators = strings.NewReplacer("/", " ", ",", " ", "(", " ", ")", " ")
	priceStripper  = strings.NewReplacer(",", "", "$", "")
)

var fuelTokens = map[string]fuel.Type{
	"petrol":   fuel.TypePetrol,
	"diesel":   fuel.TypeDiesel,
	"electric": fuel.TypeElectric,
	"ev":       fuel.TypeElectric,
	"hydrogen": fuel.TypeHydrogen,
	"cng":      fuel.TypeCNG,
	"hybrid":   fuel.TypeHybrid,
}

// ParseTopSpeed extracts the first integer from a top-speed string
// ("250 km/h" -> 250). Nil when the text has no digits.
func ParseTopSpeed(text string) *int {
	if text == "" {
		return nil
	}
	m := integerRe.FindString(text)
	if m == "" {
		return nil
	}
	v, err := strconv.Atoi(m)
	if err != nil {
		return nil
	}
	return &v
}

// ParseAcceleration extracts the minimum and maximum decimal number from an
// acceleration string ("2.5 - 3.5 sec" -> 2.5, 3.5). Spaces are stripped
// before matching so "3 . 5" style typos still parse. A single value yields
// min == max; no decimals yields nil, nil.
func ParseAcceleration(text string) (*float64, *float64) {
	if text == "" {
		return nil, nil
	}
	matches := decimalRe.FindAllString(strings.ReplaceAll(text, " ", ""), -1)
	var lo, hi float64
	found := false
	for _, m := range matches {
		v, err := strconv.ParseFloat(m, 64)
		if err != nil {
			continue
		}
		if !found || v < lo {
			lo = v
		}
		if !found || v > hi {
			hi = v
		}
		found = true
	}
	if !found {
		return nil, nil
	}
	return &lo, &hi
}

// ParsePrice extracts the minimum and maximum price from a price string.
// Thousands separators and currency symbols are stripped first, so
// "$30,000 - $50,000" -> (30000, 50000) and "1,000,000" -> (1000000, 1000000).
func ParsePrice(text string) (*int, *int) {
	if text == "" {
		return nil, nil
	}
	var lo, hi int
	found := false
	for _, m := range integerRe.FindAllString(priceStripper.Replace(text), -1) {
		v, err := strconv.Atoi(m)
		if err != nil {
			continue
		}
		if !found || v < lo {
			lo = v
		}
		if !found || v > hi {
			hi = v
		}
		found = true
	}
	if !found {
		return nil, nil
	}
	return &lo, &hi
}

// ParseFuelTypes maps a free-text fuel description onto fuel codes:
// "Hybrid (Petrol)" -> [P, X]. Separators (slash, comma, parentheses) become
// spaces, tokens are matched case-insensitively against a fixed dictionary,
// unknown tokens are ignored. The result is deduplicated and sorted by code;
// nil when nothing matches.
func ParseFuelTypes(text string) []fuel.Type {
	if text == "" {
		return nil
	}
	var out []fuel.Type
	for _, token := range strings.Fields(fuelSeparators.Replace(strings.ToLower(text))) {
		if ft, ok := fuelTokens[token]; ok {
			out = append(out, ft)
		}
	}
	return fuel.Normalize(out)
}

// ParsePowerValues extracts every integer from a horsepower or torque string
// in input order, duplicates preserved ("520, 520" -> [520, 520]). Thousands
// separators are stripped first. Nil when the text has no digits.
func ParsePowerValues(text string) []int {
	if text == "" {
		return nil
	}
	matches := integerRe.FindAllString(strings.ReplaceAll(text, ",", ""), -1)
	if len(matches) == 0 {
		return nil
	}
	out := make([]int, 0, len(matches))
	for _, m := range matches {
		v, err := strconv.Atoi(m)
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}

// ParseCapacity extracts engine displacements (cc) and battery capacities
// (kWh) from a combined capacity string. Range expressions are matched first
// so both endpoints land in the right unit, then standalone values; each unit
// set is deduplicated and sorted ascending. "1,000-2,000cc, 75kWh" ->
// ([1000, 2000], [75]). Nil members when a unit never appears.
func ParseCapacity(text string) (engineCC, batteryKWH []int) {
	if text == "" {
		return nil, nil
	}
	lower := strings.ToLower(text)
	engines := make(map[int]bool)
	batteries := make(map[int]bool)

	assign := func(unit string, values ...int) {
		for _, v := range values {
			if unit == "cc" {
				engines[v] = true
			} else {
				batteries[v] = true
			}
		}
	}

	for _, m := range capacityRangeRe.FindAllStringSubmatch(lower, -1) {
		start, err1 := parseCommaNumber(m[1])
		end, err2 := parseCommaNumber(m[2])
		if err1 != nil || err2 != nil {
			continue
		}
		assign(m[3], start, end)
	}
	for _, m := range capacitySingleRe.FindAllStringSubmatch(lower, -1) {
		v, err := parseCommaNumber(m[1])
		if err != nil {
			continue
		}
		assign(m[2], v)
	}

	return sortedKeys(engines), sortedKeys(batteries)
}

func parseCommaNumber(s string) (int, error) {
	return strconv.Atoi(strings.ReplaceAll(s, ",", ""))
}

func sortedKeys(set map[int]bool) []int {
	if len(set) == 0 {
		return nil
	}
	out := make([]int, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}
