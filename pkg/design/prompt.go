package design

import (
	"fmt"
	"strings"
)

const (
	phraseNativePlanting = "Colorado native and drought-tolerant plantings (blue grama, little bluestem, penstemon, rabbitbrush, prairie zinnia) in place of thirsty turf"
	phraseRainGarden     = "a shallow rain garden with a river-rock dry creek bed capturing roof and driveway runoff"
	phraseEdibleGeneric  = "an edible guild of layered food-producing plants"
)

var edibleSubPhrases = []struct {
	enabled func(DesignOptions) bool
	phrase  string
}{
	{func(o DesignOptions) bool { return o.Culinary }, "culinary herbs (thyme, oregano, sage, chives)"},
	{func(o DesignOptions) bool { return o.Medicinal }, "medicinal herbs (echinacea, yarrow, calendula)"},
	{func(o DesignOptions) bool { return o.Fruit }, "fruit trees and berry shrubs (apple, serviceberry, currant)"},
}

var styleDescriptions = map[StylePreset]string{
	StyleXeriscape:       "drought-tolerant plants, decorative rock mulch, gravel paths, minimal turf",
	StylePermaculture:    "herbs, vegetables, fruit trees, layered planting, companion planting",
	StyleWaterWiseNative: "Colorado native grasses and flowers, dry creek bed or rain garden features",
}

const designPreamble = `Photorealistic landscape design for a Fort Collins, Colorado yard.
ONLY modify the yard, grass, plants, soil, mulch, paths, and other landscape features.
DO NOT change or alter the house, roof, windows, doors, garage, driveway, sidewalks, fences, existing structures, or architecture in any way.
Keep all non-landscape elements exactly the same as in the reference photo.`

const designClosing = "Natural daylight, high detail, professional photography style."

const planPreamble = `Clean 2D top-down orthographic landscape site plan of a Fort Collins, Colorado residential lot, architectural drawing style.
Show the house footprint, driveway and fences as plain outlines exactly where they are; only the landscape areas are designed.
Label each planting bed, paved area and mulch zone, with approximate square footage, a north arrow and a scale bar.`

const planClosing = "Flat colors, crisp linework, white background, no perspective, no people or vehicles."

func hardscapePhrase(t HardscapeType, m HardscapeMaterial) string {
	material := "natural flagstone"
	if m == MaterialPavers {
		material = "permeable concrete paver"
	}
	if t == HardscapeWalkwayPatio {
		return fmt.Sprintf("a %s walkway leading to a matching %s patio", material, material)
	}
	return fmt.Sprintf("a %s walkway", material)
}

func ediblePhrase(o DesignOptions) string {
	parts := make([]string, 0, len(edibleSubPhrases))
	for _, sub := range edibleSubPhrases {
		if sub.enabled(o) {
			parts = append(parts, sub.phrase)
		}
	}
	if len(parts) == 0 {
		return phraseEdibleGeneric
	}
	return "an edible guild with " + strings.Join(parts, " and ")
}

// FeaturePhrase returns the canned phrase for one toggle under the given options.
func FeaturePhrase(f Feature, o DesignOptions) string {
	o = o.Normalize()
	switch f {
	case FeatureNativePlanting:
		return phraseNativePlanting
	case FeatureRainGarden:
		return phraseRainGarden
	case FeatureHardscape:
		return hardscapePhrase(o.HardscapeType, o.HardscapeMaterial)
	case FeatureEdibleGuild:
		return ediblePhrase(o)
	}
	return ""
}

// FeatureDescription joins the phrases of all active toggles in fixed order.
func FeatureDescription(o DesignOptions) string {
	o = o.Normalize()
	active := o.ActiveFeatures()
	phrases := make([]string, 0, len(active))
	for _, f := range active {
		phrases = append(phrases, FeaturePhrase(f, o))
	}
	return strings.Join(phrases, ", ")
}

func styleLine(s StylePreset) string {
	if s == "" {
		return ""
	}
	if desc, ok := styleDescriptions[s]; ok {
		return "Style: " + desc + "."
	}
	return "Style: " + string(s) + "."
}

func budgetLine(usd int) string {
	if usd <= 0 {
		return ""
	}
	return fmt.Sprintf("Budget-conscious design around $%s.", groupThousands(usd))
}

func groupThousands(n int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

func assemble(preamble string, o DesignOptions, closing string) string {
	lines := []string{preamble}
	if features := FeatureDescription(o); features != "" {
		lines = append(lines, "Include these landscape features: "+features+".")
	} else {
		lines = append(lines, "Tidy up the existing landscape with healthy, water-wise plantings.")
	}
	if l := styleLine(o.Style); l != "" {
		lines = append(lines, l)
	}
	if l := budgetLine(o.BudgetUSD); l != "" {
		lines = append(lines, l)
	}
	lines = append(lines, closing)
	return strings.Join(lines, "\n")
}

// BuildDesignPrompt renders the "after" photo prompt for an edit or text-to-image call.
func BuildDesignPrompt(o DesignOptions) string {
	return assemble(designPreamble, o.Normalize(), designClosing)
}

// BuildPlanPrompt renders the top-down site plan prompt for the same options.
func BuildPlanPrompt(o DesignOptions) string {
	return assemble(planPreamble, o.Normalize(), planClosing)
}
