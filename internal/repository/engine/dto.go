package engine

import (
	"fmt"
	"strconv"

	domeng "github.com/kailas-cloud/cardex/internal/domain/engine"
)

// optionalFields are engine hash fields not every record carries. Every spec
// field is optional; a hash holding only identity fields is a placeholder
// engine.
var optionalFields = []string{
	"layout", "cylinders", "aspiration", "capacity_cc",
	"battery_kwh", "horsepower", "torque",
}

// engineToHash converts a domain Engine to a map for HSET. Optional fields
// are written only when present.
func engineToHash(e domeng.Engine) map[string]string {
	m := map[string]string{
		"id":         strconv.Itoa(e.ID()),
		"car_slug":   e.CarSlug(),
		"created_at": strconv.FormatInt(e.CreatedAt(), 10),
		"updated_at": strconv.FormatInt(e.UpdatedAt(), 10),
	}
	if e.Layout() != nil {
		m["layout"] = string(*e.Layout())
	}
	if e.CylinderCount() != nil {
		m["cylinders"] = strconv.Itoa(*e.CylinderCount())
	}
	if e.Aspiration() != nil {
		m["aspiration"] = string(*e.Aspiration())
	}
	if e.CapacityCC() != nil {
		m["capacity_cc"] = strconv.Itoa(*e.CapacityCC())
	}
	if e.BatteryKWH() != nil {
		m["battery_kwh"] = strconv.FormatFloat(*e.BatteryKWH(), 'f', -1, 64)
	}
	if e.Horsepower() != nil {
		m["horsepower"] = strconv.Itoa(*e.Horsepower())
	}
	if e.Torque() != nil {
		m["torque"] = strconv.Itoa(*e.Torque())
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

// engineFromHash hydrates a domain Engine from an HGETALL result map.
func engineFromHash(m map[string]string) (domeng.Engine, error) {
	id, err := strconv.Atoi(m["id"])
	if err != nil {
		return domeng.Engine{}, fmt.Errorf("invalid engine id: %w", err)
	}
	carSlug := m["car_slug"]
	if carSlug == "" {
		return domeng.Engine{}, fmt.Errorf("engine hash missing car_slug")
	}
	createdAt, err := strconv.ParseInt(m["created_at"], 10, 64)
	if err != nil {
		return domeng.Engine{}, fmt.Errorf("invalid created_at: %w", err)
	}
	updatedAt, err := strconv.ParseInt(m["updated_at"], 10, 64)
	if err != nil {
		return domeng.Engine{}, fmt.Errorf("invalid updated_at: %w", err)
	}

	var layout *domeng.Layout
	if s := m["layout"]; s != "" {
		l := domeng.Layout(s)
		layout = &l
	}
	var aspiration *domeng.Aspiration
	if s := m["aspiration"]; s != "" {
		a := domeng.Aspiration(s)
		aspiration = &a
	}

	return domeng.Reconstruct(
		id, carSlug, layout,
		parseOptInt(m, "cylinders"), aspiration,
		parseOptInt(m, "capacity_cc"), parseOptFloat(m, "battery_kwh"),
		parseOptInt(m, "horsepower"), parseOptInt(m, "torque"),
		createdAt, updatedAt,
	), nil
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
