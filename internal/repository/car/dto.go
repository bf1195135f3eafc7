package car

import (
	"fmt"
	"strconv"
	"strings"

	domcar "github.com/kailas-cloud/cardex/internal/domain/car"
	"github.com/kailas-cloud/cardex/internal/domain/fuel"
)

// optionalFields are car hash fields not every record carries.
var optionalFields = []string{
	"seats", "price_min", "price_max", "fuel_types",
	"top_speed", "accel_min", "accel_max",
}

// carToHash converts a domain Car to a map for HSET. Optional fields are
// written only when present.
func carToHash(c domcar.Car) map[string]string {
	m := map[string]string{
		"name":       c.Name(),
		"slug":       c.Slug(),
		"brand":      c.BrandSlug(),
		"brand_name": c.BrandName(),
		"sort_key":   sortKey(c),
		"year":       strconv.Itoa(c.Year()),
		"created_at": strconv.FormatInt(c.CreatedAt(), 10),
		"updated_at": strconv.FormatInt(c.UpdatedAt(), 10),
	}
	if c.Seats() != "" {
		m["seats"] = c.Seats()
	}
	if c.PriceMin() != nil {
		m["price_min"] = strconv.Itoa(*c.PriceMin())
	}
	if c.PriceMax() != nil {
		m["price_max"] = strconv.Itoa(*c.PriceMax())
	}
	if fuels := c.FuelTypes(); len(fuels) > 0 {
		codes := make([]string, len(fuels))
		for i, f := range fuels {
			codes[i] = string(f)
		}
		m["fuel_types"] = strings.Join(codes, ",")
	}
	if p := c.Performance(); p != nil {
		if p.TopSpeedKMH() != nil {
			m["top_speed"] = strconv.Itoa(*p.TopSpeedKMH())
		}
		if p.AccelMinSeconds() != nil {
			m["accel_min"] = strconv.FormatFloat(*p.AccelMinSeconds(), 'f', -1, 64)
		}
		if p.AccelMaxSeconds() != nil {
			m["accel_max"] = strconv.FormatFloat(*p.AccelMaxSeconds(), 'f', -1, 64)
		}
	}
	return m
}

// absentOptional lists the optional fields missing from a freshly built hash.
func absentOptional(fields map[string]string) []string {
	var absent []string
	for _, f := range optionalFields {
		if _, ok := fields[f]; !ok {
			absent = append(absent, f)
		}
	}
	return absent
}

// carFromHash hydrates a domain Car from an HGETALL result map.
func carFromHash(m map[string]string) (domcar.Car, error) {
	carSlug := m["slug"]
	if carSlug == "" {
		return domcar.Car{}, fmt.Errorf("car hash missing slug")
	}

	year, err := strconv.Atoi(m["year"])
	if err != nil {
		return domcar.Car{}, fmt.Errorf("invalid year: %w", err)
	}
	createdAt, err := strconv.ParseInt(m["created_at"], 10, 64)
	if err != nil {
		return domcar.Car{}, fmt.Errorf("invalid created_at: %w", err)
	}
	updatedAt, err := strconv.ParseInt(m["updated_at"], 10, 64)
	if err != nil {
		return domcar.Car{}, fmt.Errorf("invalid updated_at: %w", err)
	}

	var fuels []fuel.Type
	if csv := m["fuel_types"]; csv != "" {
		for _, code := range strings.Split(csv, ",") {
			if t := fuel.Type(code); t.IsValid() {
				fuels = append(fuels, t)
			}
		}
	}

	return domcar.Reconstruct(
		m["name"], carSlug, m["brand_name"], m["brand"], year, m["seats"],
		parseOptInt(m, "price_min"), parseOptInt(m, "price_max"),
		fuels, perfFromHash(m), createdAt, updatedAt,
	), nil
}

// perfFromHash reads the performance fields, nil when none are present.
func perfFromHash(m map[string]string) *domcar.Performance {
	top := parseOptInt(m, "top_speed")
	accelMin := parseOptFloat(m, "accel_min")
	accelMax := parseOptFloat(m, "accel_max")
	if top == nil && accelMin == nil && accelMax == nil {
		return nil
	}
	p := domcar.ReconstructPerformance(top, accelMin, accelMax)
	return &p
}

func parseOptInt(m map[string]string, field string) *int {
	s, ok := m[field]
	if !ok || s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}

func parseOptFloat(m map[string]string, field string) *float64 {
	s, ok := m[field]
	if !ok || s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// sortKey is the catalog ordering key: brand slug then lowercased model name.
func sortKey(c domcar.Car) string {
	return c.BrandSlug() + " " + strings.ToLower(c.Name())
}
