package fuel

import (
	"fmt"
	"sort"
)

// Type is a single-letter fuel code from the dataset taxonomy.
type Type string

const (
	// TypePetrol is petrol/gasoline.
	TypePetrol Type = "P"
	// TypeDiesel is diesel.
	TypeDiesel Type = "D"
	// TypeElectric is battery electric.
	TypeElectric Type = "E"
	// TypeHydrogen is hydrogen fuel cell.
	TypeHydrogen Type = "H"
	// TypeCNG is compressed natural gas.
	TypeCNG Type = "C"
	// TypeHybrid is any petrol/electric hybrid.
	TypeHybrid Type = "X"
)

// All returns every fuel type in display order.
func All() []Type {
	return []Type{TypePetrol, TypeDiesel, TypeElectric, TypeHydrogen, TypeCNG, TypeHybrid}
}

// IsValid checks if the code belongs to the taxonomy.
func (t Type) IsValid() bool {
	switch t {
	case TypePetrol, TypeDiesel, TypeElectric, TypeHydrogen, TypeCNG, TypeHybrid:
		return true
	}
	return false
}

// Name returns the human-readable fuel name.
func (t Type) Name() string {
	switch t {
	case TypePetrol:
		return "Petrol"
	case TypeDiesel:
		return "Diesel"
	case TypeElectric:
		return "Electric"
	case TypeHydrogen:
		return "Hydrogen"
	case TypeCNG:
		return "Compressed Natural Gas"
	case TypeHybrid:
		return "Hybrid"
	}
	return ""
}

// FromCode validates a raw code string.
func FromCode(code string) (Type, error) {
	t := Type(code)
	if !t.IsValid() {
		return "", fmt.Errorf("unknown fuel type code: %q", code)
	}
	return t, nil
}

// Normalize removes duplicates and sorts ascending by code.
func Normalize(types []Type) []Type {
	if len(types) == 0 {
		return nil
	}
	seen := make(map[Type]bool, len(types))
	out := make([]Type, 0, len(types))
	for _, t := range types {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
