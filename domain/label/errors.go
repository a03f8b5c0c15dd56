package label

import (
	"fmt"
	"strings"

	"github.com/prasetyowira/tyrelabel/constant"
)

// ValidationError is returned by Normalize when a field holds a value outside
// its allowed set.
type ValidationError struct {
	Field   string
	Value   string
	Allowed []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q, expected %s", e.Field, e.Value, joinAllowed(e.Allowed))
}

// Code returns the stable error code used in logs and API responses
func (e *ValidationError) Code() string {
	return constant.ErrCodeInvalidNoiseLevel
}

// MissingFieldsError is returned when a label definition document lacks keys
type MissingFieldsError struct {
	Keys []string
}

func (e *MissingFieldsError) Error() string {
	return "missing following keys: " + strings.Join(e.Keys, ", ")
}

// ConfigurationError reports a missing or malformed template or layout asset.
// It is not recoverable per request.
type ConfigurationError struct {
	Asset string
	Err   error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("label configuration %s: %v", e.Asset, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// UnknownGrade reports a fuel or wet grade missing from the rating table.
// The grade comes from the caller's input, not from a broken asset.
func (e *ConfigurationError) UnknownGrade() bool {
	return e.Asset == AssetRatingY
}

// Code returns the stable error code used in logs
func (e *ConfigurationError) Code() string {
	switch e.Asset {
	case AssetRatingY, AssetIconX:
		return constant.ErrCodeLayoutLookup
	}
	return constant.ErrCodeTemplateExecute
}

// EncodingError is returned when a link cannot be encoded as a QR code
type EncodingError struct {
	Content string
	Err     error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("cannot encode %q as QR code: %v", e.Content, e.Err)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

// joinAllowed formats {"A","B","C"} as "A, B or C".
func joinAllowed(allowed []string) string {
	switch len(allowed) {
	case 0:
		return ""
	case 1:
		return allowed[0]
	}
	return strings.Join(allowed[:len(allowed)-1], ", ") + " or " + allowed[len(allowed)-1]
}
