package engine

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Layout is the cylinder arrangement code.
type Layout string

const (
	// LayoutInline covers inline and straight blocks.
	LayoutInline Layout = "I"
	// LayoutV is a V block.
	LayoutV Layout = "V"
	// LayoutFlat covers flat and boxer blocks.
	LayoutFlat Layout = "F"
	// LayoutW is a W block.
	LayoutW Layout = "W"
	// LayoutRotary covers rotary and Wankel engines.
	LayoutRotary Layout = "R"
)

// Layouts returns every layout in declaration order.
func Layouts() []Layout {
	return []Layout{LayoutInline, LayoutV, LayoutFlat, LayoutW, LayoutRotary}
}

// IsValid checks if the layout code is known.
func (l Layout) IsValid() bool {
	switch l {
	case LayoutInline, LayoutV, LayoutFlat, LayoutW, LayoutRotary:
		return true
	}
	return false
}

// Name returns the display name for the layout.
func (l Layout) Name() string {
	switch l {
	case LayoutInline:
		return "Inline/Straight"
	case LayoutV:
		return "V"
	case LayoutFlat:
		return "Flat/Boxer"
	case LayoutW:
		return "W"
	case LayoutRotary:
		return "Rotary/Wankel"
	}
	return ""
}

// Aspiration is the induction method code.
type Aspiration string

const (
	// AspirationTurbo is a single turbocharger.
	AspirationTurbo Aspiration = "T"
	// AspirationSupercharged is a supercharger.
	AspirationSupercharged Aspiration = "S"
	// AspirationTwinTurbo is two turbochargers.
	AspirationTwinTurbo Aspiration = "W"
	// AspirationQuadTurbo is four turbochargers.
	AspirationQuadTurbo Aspiration = "Q"
	// AspirationNatural is naturally aspirated.
	AspirationNatural Aspiration = "N"
)

// Aspirations returns every aspiration in declaration order.
func Aspirations() []Aspiration {
	return []Aspiration{AspirationTurbo, AspirationSupercharged, AspirationTwinTurbo, AspirationQuadTurbo, AspirationNatural}
}

// IsValid checks if the aspiration code is known.
func (a Aspiration) IsValid() bool {
	switch a {
	case AspirationTurbo, AspirationSupercharged, AspirationTwinTurbo, AspirationQuadTurbo, AspirationNatural:
		return true
	}
	return false
}

// Name returns the display name for the aspiration.
func (a Aspiration) Name() string {
	switch a {
	case AspirationTurbo:
		return "Turbocharged"
	case AspirationSupercharged:
		return "Supercharged"
	case AspirationTwinTurbo:
		return "Twin Turbo"
	case AspirationQuadTurbo:
		return "Quad Turbo"
	case AspirationNatural:
		return "Naturally Aspirated"
	}
	return ""
}

// Engine is one powertrain variant of a car (immutable value object).
// Every spec field may be absent; a fully empty engine is a legal placeholder
// for cars whose dataset row had no parseable engine data.
type Engine struct {
	id            int
	carSlug       string
	layout        *Layout
	cylinderCount *int
	aspiration    *Aspiration
	capacityCC    *int
	batteryKWH    *float64
	horsepower    *int
	torque        *int
	createdAt     int64
	updatedAt     int64
}

func validateSpecs(
	layout *Layout, cylinderCount *int, aspiration *Aspiration,
	capacityCC *int, batteryKWH *float64, horsepower, torque *int,
) error {
	if layout != nil && !layout.IsValid() {
		return fmt.Errorf("unknown cylinder layout: %q", *layout)
	}
	if aspiration != nil && !aspiration.IsValid() {
		return fmt.Errorf("unknown aspiration: %q", *aspiration)
	}
	if cylinderCount != nil && *cylinderCount < 1 {
		return fmt.Errorf("cylinder count must be positive")
	}
	if capacityCC != nil && *capacityCC < 0 {
		return fmt.Errorf("engine capacity must be non-negative")
	}
	if batteryKWH != nil && *batteryKWH < 0 {
		return fmt.Errorf("battery capacity must be non-negative")
	}
	if horsepower != nil && *horsepower < 0 {
		return fmt.Errorf("horsepower must be non-negative")
	}
	if torque != nil && *torque < 0 {
		return fmt.Errorf("torque must be non-negative")
	}
	return nil
}

// New validates and creates an Engine. The ID is assigned by storage; see WithID.
func New(
	carSlug string, layout *Layout, cylinderCount *int, aspiration *Aspiration,
	capacityCC *int, batteryKWH *float64, horsepower, torque *int,
) (Engine, error) {
	if carSlug == "" {
		return Engine{}, fmt.Errorf("car slug is required")
	}
	if err := validateSpecs(layout, cylinderCount, aspiration, capacityCC, batteryKWH, horsepower, torque); err != nil {
		return Engine{}, err
	}
	now := time.Now().UnixMilli()
	return Engine{
		carSlug:       carSlug,
		layout:        cloneLayout(layout),
		cylinderCount: cloneInt(cylinderCount),
		aspiration:    cloneAspiration(aspiration),
		capacityCC:    cloneInt(capacityCC),
		batteryKWH:    cloneFloat(batteryKWH),
		horsepower:    cloneInt(horsepower),
		torque:        cloneInt(torque),
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// Update returns a copy with the spec fields replaced. ID, car and creation
// time are preserved.
func (e Engine) Update(
	layout *Layout, cylinderCount *int, aspiration *Aspiration,
	capacityCC *int, batteryKWH *float64, horsepower, torque *int,
) (Engine, error) {
	if err := validateSpecs(layout, cylinderCount, aspiration, capacityCC, batteryKWH, horsepower, torque); err != nil {
		return Engine{}, err
	}
	updated := e
	updated.layout = cloneLayout(layout)
	updated.cylinderCount = cloneInt(cylinderCount)
	updated.aspiration = cloneAspiration(aspiration)
	updated.capacityCC = cloneInt(capacityCC)
	updated.batteryKWH = cloneFloat(batteryKWH)
	updated.horsepower = cloneInt(horsepower)
	updated.torque = cloneInt(torque)
	updated.updatedAt = time.Now().UnixMilli()
	return updated, nil
}

// WithID returns a copy with the storage-assigned identifier.
func (e Engine) WithID(id int) Engine {
	e.id = id
	return e
}

// Reconstruct creates an Engine without validation (storage hydration).
func Reconstruct(
	id int, carSlug string, layout *Layout, cylinderCount *int, aspiration *Aspiration,
	capacityCC *int, batteryKWH *float64, horsepower, torque *int,
	createdAt, updatedAt int64,
) Engine {
	return Engine{
		id: id, carSlug: carSlug, layout: layout, cylinderCount: cylinderCount,
		aspiration: aspiration, capacityCC: capacityCC, batteryKWH: batteryKWH,
		horsepower: horsepower, torque: torque, createdAt: createdAt, updatedAt: updatedAt,
	}
}

// ID returns the per-car engine identifier.
func (e Engine) ID() int { return e.id }

// CarSlug returns the owning car's identity key.
func (e Engine) CarSlug() string { return e.carSlug }

// Layout returns the cylinder layout, nil when unknown.
func (e Engine) Layout() *Layout { return e.layout }

// CylinderCount returns the cylinder count, nil when unknown.
func (e Engine) CylinderCount() *int { return e.cylinderCount }

// Aspiration returns the induction method, nil when unknown.
func (e Engine) Aspiration() *Aspiration { return e.aspiration }

// CapacityCC returns the displacement in cc, nil when unknown.
func (e Engine) CapacityCC() *int { return e.capacityCC }

// BatteryKWH returns the battery capacity in kWh, nil when unknown.
func (e Engine) BatteryKWH() *float64 { return e.batteryKWH }

// Horsepower returns the power output in hp, nil when unknown.
func (e Engine) Horsepower() *int { return e.horsepower }

// Torque returns the torque in Nm, nil when unknown.
func (e Engine) Torque() *int { return e.torque }

// CreatedAt returns the creation timestamp (unix millis).
func (e Engine) CreatedAt() int64 { return e.createdAt }

// UpdatedAt returns the last update timestamp (unix millis).
func (e Engine) UpdatedAt() int64 { return e.updatedAt }

// Config renders the short configuration label: "V8" for layout plus count,
// "V Engine" for a bare layout, "8-Cylinder" for a bare count, "" when both
// are absent.
func (e Engine) Config() string {
	switch {
	case e.layout != nil && e.cylinderCount != nil:
		return fmt.Sprintf("%s%d", *e.layout, *e.cylinderCount)
	case e.layout != nil:
		return e.layout.Name() + " Engine"
	case e.cylinderCount != nil:
		return fmt.Sprintf("%d-Cylinder", *e.cylinderCount)
	}
	return ""
}

// Describe renders the configuration with the aspiration appended
// ("V8 Twin Turbo").
func (e Engine) Describe() string {
	parts := make([]string, 0, 2)
	if cfg := e.Config(); cfg != "" {
		parts = append(parts, cfg)
	}
	if e.aspiration != nil {
		parts = append(parts, e.aspiration.Name())
	}
	return strings.Join(parts, " ")
}

// String renders the full human-readable engine description used by the API.
func (e Engine) String() string {
	var parts []string
	if cfg := e.Config(); cfg != "" {
		parts = append(parts, cfg)
	}
	if e.aspiration != nil {
		parts = append(parts, e.aspiration.Name())
	}
	if e.capacityCC != nil {
		parts = append(parts, fmt.Sprintf("Displacement: %d cc", *e.capacityCC))
	}
	if e.batteryKWH != nil {
		parts = append(parts, fmt.Sprintf("Battery Capacity: %s kWh", strconv.FormatFloat(*e.batteryKWH, 'f', -1, 64)))
	}
	if e.horsepower != nil {
		parts = append(parts, fmt.Sprintf("Horsepower: %d hp", *e.horsepower))
	}
	if e.torque != nil {
		parts = append(parts, fmt.Sprintf("Torque: %d Nm", *e.torque))
	}
	if len(parts) == 0 {
		return "No engine data available"
	}
	return strings.Join(parts, ", ")
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneLayout(v *Layout) *Layout {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneAspiration(v *Aspiration) *Aspiration {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
