package label

import (
	"context"
	"strings"

	"github.com/prasetyowira/tyrelabel/constant"
	"github.com/prasetyowira/tyrelabel/infrastructure/logger"
)

// NoiseLevels lists the accepted external rolling noise classes
var NoiseLevels = []string{"A", "B", "C"}

// Icon identifies a pictogram drawn in the bottom row of the label
type Icon string

const (
	IconNoise Icon = "noise"
	IconSnow  Icon = "snow"
	IconIce   Icon = "ice"
)

// Fields is the raw, unvalidated label input
type Fields struct {
	Supplier       string `json:"supplier" yaml:"supplier"`
	TypeIdentifier string `json:"type_identifier" yaml:"type_identifier"`
	Size           string `json:"size" yaml:"size"`
	TyreClass      string `json:"tyre_class" yaml:"tyre_class"`
	FuelEfficiency string `json:"fuel_efficiency" yaml:"fuel_efficiency"`
	WetGrip        string `json:"wet_grip" yaml:"wet_grip"`
	RollNoise      int    `json:"roll_noise" yaml:"roll_noise"`
	NoiseLevel     string `json:"noise_level" yaml:"noise_level"`
	SnowGrip       bool   `json:"snow_grip" yaml:"snow_grip"`
	IceGrip        bool   `json:"ice_grip" yaml:"ice_grip"`
	EPRELID        int    `json:"eprel_id" yaml:"eprel_id"`
	EPRELLink      string `json:"eprel_link" yaml:"eprel_link"`
}

// FieldNames lists the input keys in their canonical order
var FieldNames = []string{
	"supplier", "type_identifier", "size", "tyre_class",
	"fuel_efficiency", "wet_grip", "roll_noise", "noise_level",
	"snow_grip", "ice_grip", "eprel_id", "eprel_link",
}

// Record is a validated label. Its fields can only be read.
type Record struct {
	supplier       string
	typeIdentifier string
	size           string
	tyreClass      string
	fuelEfficiency string
	wetGrip        string
	rollNoise      int
	noiseLevel     string
	snowGrip       bool
	iceGrip        bool
	eprelID        int
	eprelLink      string
	iconCount      int
}

// Normalize validates f and returns the label record. Grades are upper-cased;
// only the noise level is checked against a fixed set, fuel efficiency and
// wet grip are left for the layout lookup to reject.
func Normalize(f Fields) (Record, error) {
	noiseLevel := strings.ToUpper(f.NoiseLevel)
	if !contains(NoiseLevels, noiseLevel) {
		return Record{}, &ValidationError{
			Field:   "noise_level",
			Value:   f.NoiseLevel,
			Allowed: append([]string(nil), NoiseLevels...),
		}
	}

	iconCount := 1
	if f.SnowGrip {
		iconCount++
	}
	if f.IceGrip {
		iconCount++
	}

	return Record{
		supplier:       f.Supplier,
		typeIdentifier: f.TypeIdentifier,
		size:           f.Size,
		tyreClass:      f.TyreClass,
		fuelEfficiency: strings.ToUpper(f.FuelEfficiency),
		wetGrip:        strings.ToUpper(f.WetGrip),
		rollNoise:      f.RollNoise,
		noiseLevel:     noiseLevel,
		snowGrip:       f.SnowGrip,
		iceGrip:        f.IceGrip,
		eprelID:        f.EPRELID,
		eprelLink:      f.EPRELLink,
		iconCount:      iconCount,
	}, nil
}

// normalize wraps Normalize with logging
func normalize(ctx context.Context, f Fields) (Record, error) {
	rec, err := Normalize(f)
	if err != nil {
		logger.CtxWarn(ctx, "Label fields failed validation", logger.LoggerInfo{
			ContextFunction: constant.CtxNormalize,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeInvalidNoiseLevel,
				Message: err.Error(),
				Type:    constant.ErrTypeValidation,
			},
			Data: map[string]interface{}{
				constant.DataEPRELID:    f.EPRELID,
				constant.DataNoiseLevel: f.NoiseLevel,
			},
		})
		return Record{}, err
	}
	return rec, nil
}

func (r Record) Supplier() string       { return r.supplier }
func (r Record) TypeIdentifier() string { return r.typeIdentifier }
func (r Record) Size() string           { return r.size }
func (r Record) TyreClass() string      { return r.tyreClass }
func (r Record) FuelEfficiency() string { return r.fuelEfficiency }
func (r Record) WetGrip() string        { return r.wetGrip }
func (r Record) RollNoise() int         { return r.rollNoise }
func (r Record) NoiseLevel() string     { return r.noiseLevel }
func (r Record) SnowGrip() bool         { return r.snowGrip }
func (r Record) IceGrip() bool          { return r.iceGrip }
func (r Record) EPRELID() int           { return r.eprelID }
func (r Record) EPRELLink() string      { return r.eprelLink }

// IconCount is 1 plus one for each of snow and ice grip
func (r Record) IconCount() int { return r.iconCount }

// Icons returns the pictograms to draw, left to right
func (r Record) Icons() []Icon {
	icons := make([]Icon, 0, 3)
	icons = append(icons, IconNoise)
	if r.snowGrip {
		icons = append(icons, IconSnow)
	}
	if r.iceGrip {
		icons = append(icons, IconIce)
	}
	return icons
}

// Fields converts the record back to its input form
func (r Record) Fields() Fields {
	return Fields{
		Supplier:       r.supplier,
		TypeIdentifier: r.typeIdentifier,
		Size:           r.size,
		TyreClass:      r.tyreClass,
		FuelEfficiency: r.fuelEfficiency,
		WetGrip:        r.wetGrip,
		RollNoise:      r.rollNoise,
		NoiseLevel:     r.noiseLevel,
		SnowGrip:       r.snowGrip,
		IceGrip:        r.iceGrip,
		EPRELID:        r.eprelID,
		EPRELLink:      r.eprelLink,
	}
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
