package cli

import (
	"fmt"
	"strconv"
)

// boolValue is a flag that takes an explicit yes/no style argument
type boolValue struct {
	value *bool
}

func newBoolValue(p *bool) *boolValue {
	return &boolValue{value: p}
}

func (b *boolValue) String() string {
	if b.value == nil {
		return "false"
	}
	return strconv.FormatBool(*b.value)
}

func (b *boolValue) Set(s string) error {
	v, err := parseBool(s)
	if err != nil {
		return err
	}
	*b.value = v
	return nil
}

func (b *boolValue) Type() string {
	return "bool"
}

// parseBool accepts 1, true, True, yes and 0, false, False, no
func parseBool(s string) (bool, error) {
	switch s {
	case "1", "true", "True", "yes":
		return true, nil
	case "0", "false", "False", "no":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean value %q, expected one of 1, true, True, yes, 0, false, False, no", s)
}

// labelFlag ties a command-line flag to the label key it fills
type labelFlag struct {
	name  string
	key   string
	usage string
}

var labelFlags = []labelFlag{
	{"supplier", "supplier", "Supplier name or trade mark"},
	{"type", "type_identifier", "Tyre type identifier"},
	{"size", "size", "Tyre size designation"},
	{"class", "tyre_class", "Tyre class (C1, C2, C3)"},
	{"fuel", "fuel_efficiency", "Fuel efficiency class (A-E)"},
	{"wet", "wet_grip", "Wet grip class (A-E)"},
	{"noise", "roll_noise", "External rolling noise in dB"},
	{"level", "noise_level", "External rolling noise class (A, B or C)"},
	{"snow", "snow_grip", "Snow grip tyre (yes/no)"},
	{"ice", "ice_grip", "Ice grip tyre (yes/no)"},
	{"eprel-id", "eprel_id", "EPREL registration number"},
	{"url", "eprel_link", "EPREL product link encoded in the QR code"},
}
