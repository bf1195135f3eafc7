package specs

import (
	"fmt"
	"testing"

	"github.com/kailas-cloud/cardex/internal/domain/engine"
)

// describeSpec flattens a parsed engine into "layout/count/aspiration" with
// "-" for absent parts, which keeps the expectation tables readable.
func describeSpec(e Engine) string {
	layout, count, asp := "-", "-", "-"
	if e.Layout != nil {
		layout = string(*e.Layout)
	}
	if e.CylinderCount != nil {
		count = fmt.Sprintf("%d", *e.CylinderCount)
	}
	if e.Aspiration != nil {
		asp = string(*e.Aspiration)
	}
	return layout + "/" + count + "/" + asp
}

func TestParseEngines(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"V8 Twin-Turbo / I6 Naturally Aspirated", []string{"V/8/W", "I/6/N"}},
		{"V8", []string{"V/8/-"}},
		{"V8 Twin Turbo", []string{"V/8/W"}},
		{"W16 Quad-Turbo", []string{"W/16/Q"}},
		{"INLINE-4 TURBO", []string{"I/-/T"}},
		{"I4 TURBO", []string{"I/4/T"}},
		{"Straight-Six", []string{"I/-/-"}},
		{"4-Cylinder Turbo", []string{"-/4/T"}},
		{"6 CYLINDER", []string{"-/6/-"}},
		{"Flat-6", []string{"F/-/-"}},
		{"F6", []string{"F/6/-"}},
		{"Boxer 4", []string{"F/-/-"}},
		{"Rotary", []string{"R/-/-"}},
		{"Wankel", []string{"R/-/-"}},
		{"V6 OR V8", []string{"V/6/-", "V/8/-"}},
		{"V6 or V8 Supercharged", []string{"V/6/-", "V/8/S"}},
		{"I4 / V6 / V8", []string{"I/4/-", "V/6/-", "V/8/-"}},
		{"Turbocharged", []string{"-/-/T"}},
		{"Supercharged V8", []string{"V/8/S"}},
		{"Electric Motor", nil},
		{"Dual Motor AWD", nil},
		{"", nil},
	}
	for _, tc := range cases {
		got := ParseEngines(tc.in)
		if len(got) != len(tc.want) {
			t.Errorf("ParseEngines(%q) returned %d specs, want %d", tc.in, len(got), len(tc.want))
			continue
		}
		for i, spec := range got {
			if describeSpec(spec) != tc.want[i] {
				t.Errorf("ParseEngines(%q)[%d] = %s, want %s", tc.in, i, describeSpec(spec), tc.want[i])
			}
		}
	}
}

func TestParseEngines_LayoutPrecedence(t *testing.T) {
	// "TWIN" must not read as a W layout: the W pattern needs a word boundary.
	got := ParseEngines("Twin Turbo")
	if len(got) != 1 {
		t.Fatalf("got %d specs, want 1", len(got))
	}
	if got[0].Layout != nil {
		t.Errorf("Layout = %q, want nil", *got[0].Layout)
	}
	if got[0].Aspiration == nil || *got[0].Aspiration != engine.AspirationTwinTurbo {
		t.Errorf("Aspiration = %v, want W", got[0].Aspiration)
	}
}

func TestParseEngines_AspirationOrder(t *testing.T) {
	// "TURBO" is a substring of the longer phrases and must not pre-empt them.
	cases := map[string]engine.Aspiration{
		"Quad Turbo V16":          engine.AspirationQuadTurbo,
		"Twin Turbo V8":           engine.AspirationTwinTurbo,
		"Twin-Turbo V8":           engine.AspirationTwinTurbo,
		"Turbo I4":                engine.AspirationTurbo,
		"Naturally Aspirated V12": engine.AspirationNatural,
	}
	for in, want := range cases {
		got := ParseEngines(in)
		if len(got) != 1 {
			t.Errorf("ParseEngines(%q) returned %d specs, want 1", in, len(got))
			continue
		}
		if got[0].Aspiration == nil || *got[0].Aspiration != want {
			t.Errorf("ParseEngines(%q) aspiration = %v, want %q", in, got[0].Aspiration, want)
		}
	}
}

func TestParseEngines_CaseInsensitive(t *testing.T) {
	lower := ParseEngines("v8 twin-turbo")
	upper := ParseEngines("V8 TWIN-TURBO")
	if len(lower) != 1 || len(upper) != 1 {
		t.Fatalf("got %d and %d specs, want 1 and 1", len(lower), len(upper))
	}
	if describeSpec(lower[0]) != describeSpec(upper[0]) {
		t.Errorf("case mismatch: %s vs %s", describeSpec(lower[0]), describeSpec(upper[0]))
	}
}
