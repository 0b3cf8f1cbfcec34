package design

import (
	"fmt"
)

type HardscapeType string

const (
	HardscapeWalkway      HardscapeType = "walkway"
	HardscapeWalkwayPatio HardscapeType = "walkway+patio"
)

type HardscapeMaterial string

const (
	MaterialStone  HardscapeMaterial = "stone"
	MaterialPavers HardscapeMaterial = "pavers"
)

// StylePreset is the overall style direction chosen in the style card.
// Unknown names are passed to the prompt verbatim.
type StylePreset string

const (
	StyleXeriscape       StylePreset = "Xeriscape"
	StylePermaculture    StylePreset = "Permaculture Garden"
	StyleWaterWiseNative StylePreset = "Water-Wise Native Plants"
)

// Feature identifies one toggle of DesignOptions, in prompt order.
type Feature int

const (
	FeatureNativePlanting Feature = iota
	FeatureRainGarden
	FeatureHardscape
	FeatureEdibleGuild
)

func (f Feature) String() string {
	switch f {
	case FeatureNativePlanting:
		return "nativePlanting"
	case FeatureRainGarden:
		return "rainGarden"
	case FeatureHardscape:
		return "hardscape"
	case FeatureEdibleGuild:
		return "edibleGuild"
	default:
		return fmt.Sprintf("feature(%d)", int(f))
	}
}

// DesignOptions holds the toggles selected in the UI for one design attempt.
// It is passed by value; callers never share it across requests.
type DesignOptions struct {
	NativePlanting bool `json:"nativePlanting"`
	RainGarden     bool `json:"rainGarden"`

	Hardscape         bool              `json:"hardscape"`
	HardscapeType     HardscapeType     `json:"hardscapeType,omitempty"`
	HardscapeMaterial HardscapeMaterial `json:"hardscapeMaterial,omitempty"`

	EdibleGuild bool `json:"edibleGuild"`
	Culinary    bool `json:"culinary"`
	Medicinal   bool `json:"medicinal"`
	Fruit       bool `json:"fruit"`

	Style     StylePreset `json:"style,omitempty"`
	BudgetUSD int         `json:"budget,omitempty"`
}

// Normalize clears sub-flags whose parent toggle is off and fills enum defaults.
func (o DesignOptions) Normalize() DesignOptions {
	if o.Hardscape {
		if o.HardscapeType == "" {
			o.HardscapeType = HardscapeWalkway
		}
		if o.HardscapeMaterial == "" {
			o.HardscapeMaterial = MaterialStone
		}
	} else {
		o.HardscapeType = ""
		o.HardscapeMaterial = ""
	}

	if !o.EdibleGuild {
		o.Culinary = false
		o.Medicinal = false
		o.Fruit = false
	}

	return o
}

func (o DesignOptions) Validate() error {
	switch o.HardscapeType {
	case "", HardscapeWalkway, HardscapeWalkwayPatio:
	default:
		return fmt.Errorf("unknown hardscape type %q", o.HardscapeType)
	}
	switch o.HardscapeMaterial {
	case "", MaterialStone, MaterialPavers:
	default:
		return fmt.Errorf("unknown hardscape material %q", o.HardscapeMaterial)
	}
	if o.BudgetUSD < 0 {
		return fmt.Errorf("budget must not be negative")
	}
	return nil
}

// ActiveFeatures returns the enabled toggles in prompt order.
func (o DesignOptions) ActiveFeatures() []Feature {
	features := make([]Feature, 0, 4)
	if o.NativePlanting {
		features = append(features, FeatureNativePlanting)
	}
	if o.RainGarden {
		features = append(features, FeatureRainGarden)
	}
	if o.Hardscape {
		features = append(features, FeatureHardscape)
	}
	if o.EdibleGuild {
		features = append(features, FeatureEdibleGuild)
	}
	return features
}
