// Package cli implements the tyre-label command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/prasetyowira/tyrelabel/constant"
	"github.com/prasetyowira/tyrelabel/domain/label"
	appLogger "github.com/prasetyowira/tyrelabel/infrastructure/logger"
	"github.com/prasetyowira/tyrelabel/infrastructure/qrcode"
	"github.com/prasetyowira/tyrelabel/infrastructure/svg"
	"github.com/spf13/cobra"
)

type renderSettings struct {
	input   renderInput
	out     string
	noFonts bool
	noLink  bool
	debug   bool
}

// RootCommand creates the tyre-label command. Without a sub-command it
// renders one label.
func RootCommand() *cobra.Command {
	var settings renderSettings

	rootCmd := &cobra.Command{
		Use:   "tyre-label",
		Short: "Render an EU tyre energy label as SVG",
		Long: `Render an EU tyre energy label (Regulation 2020/740) as an SVG document.

The label is described either with --json, with --file (YAML or JSON) or with
the individual label flags, which are then all required.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usageErrorf("unexpected arguments: %s", strings.Join(args, " "))
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := "warn"
			if settings.debug {
				level = "debug"
			}
			// stdout may carry the document
			return appLogger.Initialize(appLogger.Options{
				Level:  level,
				Output: constant.LogOutputStderr,
			})
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			appLogger.Close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, &settings)
		},
	}

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})

	setupFlags(rootCmd, &settings)
	rootCmd.AddCommand(serveCommand())

	return rootCmd
}

func setupFlags(cmd *cobra.Command, settings *renderSettings) {
	cmd.PersistentFlags().BoolVarP(&settings.debug, "debug", "d", false, "Enable debug output on stderr")

	flags := cmd.Flags()
	flags.StringVarP(&settings.input.json, "json", "j", "", "Label definition as a JSON object")
	flags.StringVarP(&settings.input.file, "file", "f", "", "Read the label definition from a YAML or JSON file (- for stdin)")
	flags.StringVarP(&settings.out, "out", "o", "", "Write the SVG to this path instead of stdout")
	flags.BoolVar(&settings.noFonts, "no-fonts", false, "Do not embed fonts in the document")
	flags.BoolVar(&settings.noLink, "no-link", false, "Do not wrap the QR code in a hyperlink")

	f := &settings.input.fields
	for _, lf := range labelFlags {
		switch lf.key {
		case "supplier":
			flags.StringVar(&f.Supplier, lf.name, "", lf.usage)
		case "type_identifier":
			flags.StringVar(&f.TypeIdentifier, lf.name, "", lf.usage)
		case "size":
			flags.StringVar(&f.Size, lf.name, "", lf.usage)
		case "tyre_class":
			flags.StringVar(&f.TyreClass, lf.name, "", lf.usage)
		case "fuel_efficiency":
			flags.StringVar(&f.FuelEfficiency, lf.name, "", lf.usage)
		case "wet_grip":
			flags.StringVar(&f.WetGrip, lf.name, "", lf.usage)
		case "roll_noise":
			flags.IntVar(&f.RollNoise, lf.name, 0, lf.usage)
		case "noise_level":
			flags.StringVar(&f.NoiseLevel, lf.name, "", lf.usage)
		case "snow_grip":
			flags.Var(newBoolValue(&f.SnowGrip), lf.name, lf.usage)
		case "ice_grip":
			flags.Var(newBoolValue(&f.IceGrip), lf.name, lf.usage)
		case "eprel_id":
			flags.IntVar(&f.EPRELID, lf.name, 0, lf.usage)
		case "eprel_link":
			flags.StringVar(&f.EPRELLink, lf.name, "", lf.usage)
		}
	}
}

func runRender(cmd *cobra.Command, settings *renderSettings) error {
	ctx := cmd.Context()

	fields, err := settings.input.resolve(cmd)
	if err != nil {
		appLogger.CtxDebug(ctx, "Rejected command line input", appLogger.LoggerInfo{
			ContextFunction: constant.CtxCLI,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeCLIUsage,
				Message: err.Error(),
				Type:    constant.ErrTypeCLI,
			},
		})
		return err
	}

	renderer, err := svg.NewRenderer()
	if err != nil {
		appLogger.CtxError(ctx, constant.MsgFailedToInitRenderer, appLogger.LoggerInfo{
			ContextFunction: constant.CtxCLI,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAppRendererInit,
				Message: err.Error(),
				Type:    constant.ErrTypeCLI,
			},
		})
		return err
	}
	service := label.NewService(qrcode.NewGenerator(), renderer)

	opts := label.RenderOptions{
		EmbedFonts:  !settings.noFonts,
		IncludeLink: !settings.noLink,
	}

	if settings.out == "" {
		return service.BuildTo(ctx, fields, cmd.OutOrStdout(), opts)
	}
	return service.BuildToPath(ctx, fields, settings.out, opts)
}

// Execute runs the command line with args and returns the process exit status
func Execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := RootCommand()
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitOK
	}

	code := exitCode(err)
	fmt.Fprintf(stderr, "%s: error: %v\n", cmd.Name(), err)
	if code == ExitUsage {
		fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", cmd.Name())
	}

	return code
}
