package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleJSON = `{"supplier": "Cool Tyre", "type_identifier": "94385300", "size": "185/75 R16",
"tyre_class": "C2", "fuel_efficiency": "E", "wet_grip": "A", "roll_noise": 72, "noise_level": "C",
"snow_grip": true, "ice_grip": true, "eprel_id": 381667, "eprel_link": "https://eprel.ec.europa.eu/qr/381667"}`

const exampleYAML = `supplier: Cool Tyre
type_identifier: "94385300"
size: 185/75 R16
tyre_class: C2
fuel_efficiency: e
wet_grip: a
roll_noise: 72
noise_level: c
snow_grip: false
ice_grip: true
eprel_id: 381667
eprel_link: https://eprel.ec.europa.eu/qr/381667
`

func exampleArgs() []string {
	return []string{
		"--supplier", "Cool Tyre",
		"--type", "94385300",
		"--size", "185/75 R16",
		"--class", "C2",
		"--fuel", "E",
		"--wet", "A",
		"--noise", "72",
		"--level", "C",
		"--snow", "yes",
		"--ice", "True",
		"--eprel-id", "381667",
		"--url", "https://eprel.ec.europa.eu/qr/381667",
	}
}

func run(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Execute(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestExecute_Flags(t *testing.T) {
	// Act
	code, stdout, stderr := run(t, "", exampleArgs()...)

	// Assert
	require.Equal(t, ExitOK, code, stderr)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(stdout), "<"))
	assert.Contains(t, stdout, `id="QR"`)
	assert.Contains(t, stdout, "@font-face")
}

func TestExecute_JSON(t *testing.T) {
	// Act
	code, stdout, stderr := run(t, "", "-j", exampleJSON, "--no-fonts", "--no-link")

	// Assert
	require.Equal(t, ExitOK, code, stderr)
	assert.Contains(t, stdout, `id="QR"`)
	assert.NotContains(t, stdout, "@font-face")
	assert.NotContains(t, stdout, "xlink:href=\"https://eprel")
}

func TestExecute_FileToOutput(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	in := filepath.Join(dir, "label.yaml")
	out := filepath.Join(dir, "label.svg")
	require.NoError(t, os.WriteFile(in, []byte(exampleYAML), 0o644))

	// Act
	code, stdout, stderr := run(t, "", "--file", in, "-o", out)

	// Assert
	require.Equal(t, ExitOK, code, stderr)
	assert.Empty(t, stdout)
	content, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(content), `id="QR"`)
}

func TestExecute_FileFromStdin(t *testing.T) {
	// Act
	code, stdout, stderr := run(t, exampleYAML, "-f", "-")

	// Assert
	require.Equal(t, ExitOK, code, stderr)
	assert.Contains(t, stdout, "Cool Tyre")
}

func TestExecute_UsageErrors(t *testing.T) {
	withFlag := func(name, value string) []string {
		args := exampleArgs()
		for i := 0; i < len(args); i += 2 {
			if args[i] == name {
				args[i+1] = value
			}
		}
		return args
	}

	tests := []struct {
		name     string
		args     []string
		contains string
	}{
		{
			name:     "missing flags",
			args:     []string{"--supplier", "Cool Tyre"},
			contains: "missing arguments: --type, --size",
		},
		{
			name:     "missing json keys",
			args:     []string{"--json", `{"supplier": "Cool Tyre"}`},
			contains: "missing following keys: type_identifier",
		},
		{
			name:     "malformed json",
			args:     []string{"--json", `{`},
			contains: "malformed label definition",
		},
		{
			name:     "json with flags",
			args:     []string{"--json", exampleJSON, "--supplier", "Other"},
			contains: "--supplier",
		},
		{
			name:     "json with file",
			args:     []string{"--json", exampleJSON, "--file", "label.yaml"},
			contains: "cannot be used together",
		},
		{
			name:     "bad boolean",
			args:     withFlag("--snow", "maybe"),
			contains: "invalid boolean value",
		},
		{
			name:     "bad integer",
			args:     withFlag("--noise", "loud"),
			contains: "--noise",
		},
		{
			name:     "invalid noise level",
			args:     withFlag("--level", "X"),
			contains: `invalid noise_level "X", expected A, B or C`,
		},
		{
			name:     "positional argument",
			args:     []string{"label.svg"},
			contains: "unexpected arguments",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			code, stdout, stderr := run(t, "", tt.args...)

			// Assert
			assert.Equal(t, ExitUsage, code)
			assert.Empty(t, stdout)
			assert.Contains(t, stderr, tt.contains)
		})
	}
}

func TestExecute_UnknownGradeFails(t *testing.T) {
	// Arrange
	args := exampleArgs()
	args[9] = "G"

	// Act
	code, stdout, stderr := run(t, "", args...)

	// Assert
	assert.Equal(t, ExitError, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "rating_y")
}

func TestExecute_MissingFile(t *testing.T) {
	code, _, stderr := run(t, "", "--file", filepath.Join(t.TempDir(), "nope.yaml"))

	assert.Equal(t, ExitError, code)
	assert.Contains(t, stderr, "nope.yaml")
}

func TestParseBool(t *testing.T) {
	for _, s := range []string{"1", "true", "True", "yes"} {
		v, err := parseBool(s)
		assert.NoError(t, err, s)
		assert.True(t, v, s)
	}
	for _, s := range []string{"0", "false", "False", "no"} {
		v, err := parseBool(s)
		assert.NoError(t, err, s)
		assert.False(t, v, s)
	}
	for _, s := range []string{"", "TRUE", "y", "2"} {
		_, err := parseBool(s)
		assert.Error(t, err, s)
	}
}
