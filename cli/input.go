package cli

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/prasetyowira/tyrelabel/domain/label"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// renderInput collects the three ways a label can be described
type renderInput struct {
	json   string
	file   string
	fields label.Fields
}

// resolve returns the label fields described on the command line. Exactly
// one source may be used: --json, --file or the discrete label flags.
func (in *renderInput) resolve(cmd *cobra.Command) (label.Fields, error) {
	var changed []string
	for _, f := range labelFlags {
		if cmd.Flags().Changed(f.name) {
			changed = append(changed, "--"+f.name)
		}
	}

	useJSON := cmd.Flags().Changed("json")
	useFile := cmd.Flags().Changed("file")

	switch {
	case useJSON && useFile:
		return label.Fields{}, usageErrorf("--json and --file cannot be used together")
	case (useJSON || useFile) && len(changed) > 0:
		return label.Fields{}, usageErrorf("label flags cannot be combined with --json or --file: %s", strings.Join(changed, ", "))
	case useJSON:
		return decodeJSONArg(in.json)
	case useFile:
		return in.decodeFile(cmd)
	}

	var missing []string
	for _, f := range labelFlags {
		if !cmd.Flags().Changed(f.name) {
			missing = append(missing, "--"+f.name)
		}
	}
	if len(missing) > 0 {
		return label.Fields{}, usageErrorf("missing arguments: %s", strings.Join(missing, ", "))
	}

	return in.fields, nil
}

func decodeJSONArg(s string) (label.Fields, error) {
	fields, err := label.DecodeJSON([]byte(s))
	if err != nil {
		var missing *label.MissingFieldsError
		if errors.As(err, &missing) {
			return label.Fields{}, err
		}
		return label.Fields{}, &UsageError{Err: err}
	}
	return fields, nil
}

// decodeFile reads a YAML (or JSON) label definition; "-" reads stdin
func (in *renderInput) decodeFile(cmd *cobra.Command) (label.Fields, error) {
	var (
		data []byte
		err  error
	)
	if in.file == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(in.file)
	}
	if err != nil {
		return label.Fields{}, err
	}

	return decodeYAML(data)
}

func decodeYAML(data []byte) (label.Fields, error) {
	var doc map[string]yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return label.Fields{}, usageErrorf("malformed label definition: %w", err)
	}

	if missing := label.MissingKeys(doc, isYAMLNull); len(missing) > 0 {
		return label.Fields{}, &label.MissingFieldsError{Keys: missing}
	}

	var fields label.Fields
	if err := yaml.Unmarshal(data, &fields); err != nil {
		return label.Fields{}, usageErrorf("malformed label definition: %w", err)
	}
	return fields, nil
}

// isYAMLNull reports an explicit null, "~" or an empty value
func isYAMLNull(n yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}
