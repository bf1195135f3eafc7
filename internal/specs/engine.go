package specs

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/kailas-cloud/cardex/internal/domain/engine"
)

// Engine is one parsed engine alternative from a free-text description.
type Engine struct {
	Layout        *engine.Layout
	CylinderCount *int
	Aspiration    *engine.Aspiration
}

var (
	engineSplitRe   = regexp.MustCompile(`\s*/\s*|\s+OR\s+`)
	cylinderCountRe = regexp.MustCompile(`(\d+)[-\s]?CYLINDER|\b[IVFWR](\d+)\b`)
)

func layoutPattern(synonym, code string) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(`\b%s(?:[-\s]\d+)?\b|\b%s(?:\d+)?\b`, synonym, code))
}

// layoutTable is ordered: the first synonym whose pattern matches wins. Each
// synonym also answers to its single-letter code, so "INLINE-4" and "I4"
// both resolve to I.
var layoutTable = []struct {
	code engine.Layout
	re   *regexp.Regexp
}{
	{engine.LayoutInline, layoutPattern("INLINE", "I")},
	{engine.LayoutInline, layoutPattern("STRAIGHT", "I")},
	{engine.LayoutV, layoutPattern("V", "V")},
	{engine.LayoutFlat, layoutPattern("FLAT", "F")},
	{engine.LayoutFlat, layoutPattern("BOXER", "F")},
	{engine.LayoutW, layoutPattern("W", "W")},
	{engine.LayoutRotary, layoutPattern("ROTARY", "R")},
	{engine.LayoutRotary, layoutPattern("WANKEL", "R")},
}

// aspirationTable is ordered so longer phrases shadow their substrings:
// "TWIN TURBO" must be checked before "TURBO".
var aspirationTable = []struct {
	phrase string
	code   engine.Aspiration
}{
	{"NATURALLY ASPIRATED", engine.AspirationNatural},
	{"QUAD TURBO", engine.AspirationQuadTurbo},
	{"QUAD-TURBO", engine.AspirationQuadTurbo},
	{"TWIN TURBO", engine.AspirationTwinTurbo},
	{"TWIN-TURBO", engine.AspirationTwinTurbo},
	{"TURBO", engine.AspirationTurbo},
	{"SUPERCHARGED", engine.AspirationSupercharged},
}

// ParseEngines splits a free-text engine description on "/" or the word OR
// into independent alternatives and extracts cylinder layout, cylinder count
// and aspiration from each. Alternatives contributing none of the three are
// dropped; nil when nothing remains.
func ParseEngines(text string) []Engine {
	if text == "" {
		return nil
	}
	var out []Engine
	for _, alt := range engineSplitRe.Split(strings.ToUpper(text), -1) {
		spec := Engine{
			Layout:        extractLayout(alt),
			CylinderCount: extractCylinderCount(alt),
			Aspiration:    extractAspiration(alt),
		}
		if spec.Layout != nil || spec.CylinderCount != nil || spec.Aspiration != nil {
			out = append(out, spec)
		}
	}
	return out
}

func extractLayout(alt string) *engine.Layout {
	for _, entry := range layoutTable {
		if entry.re.MatchString(alt) {
			code := entry.code
			return &code
		}
	}
	return nil
}

func extractCylinderCount(alt string) *int {
	m := cylinderCountRe.FindStringSubmatch(alt)
	if m == nil {
		return nil
	}
	digits := m[1]
	if digits == "" {
		digits = m[2]
	}
	v, err := strconv.Atoi(digits)
	if err != nil {
		return nil
	}
	return &v
}

func extractAspiration(alt string) *engine.Aspiration {
	for _, entry := range aspirationTable {
		if strings.Contains(alt, entry.phrase) {
			code := entry.code
			return &code
		}
	}
	return nil
}
