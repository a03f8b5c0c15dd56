// Package svg renders tyre labels as SVG documents from an embedded template.
package svg

import (
	"bytes"
	"embed"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"text/template"

	"github.com/prasetyowira/tyrelabel/constant"
	"github.com/prasetyowira/tyrelabel/domain/label"
	"github.com/prasetyowira/tyrelabel/infrastructure/logger"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

const templateName = "label.svg.tmpl"

// qrSide is the rendered side of the QR code in user units
const qrSide = 54.0

//go:embed templates/label.svg.tmpl
var templates embed.FS

var grades = []string{"A", "B", "C", "D", "E"}

var fontFaces = sync.OnceValue(func() string {
	var b strings.Builder
	writeFontFace(&b, 400, goregular.TTF)
	b.WriteByte('\n')
	writeFontFace(&b, 700, gobold.TTF)
	return b.String()
})

func writeFontFace(b *strings.Builder, weight int, ttf []byte) {
	b.WriteString(`@font-face { font-family: "Go"; font-weight: `)
	b.WriteString(strconv.Itoa(weight))
	b.WriteString(`; src: url(data:font/ttf;base64,`)
	b.WriteString(base64.StdEncoding.EncodeToString(ttf))
	b.WriteString(`) format("truetype"); }`)
}

// Renderer fills the label template
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded template. A failure here means the binary
// was built with a broken asset and is a *label.ConfigurationError.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New(templateName).
		Funcs(template.FuncMap{"xml": escapeXML}).
		ParseFS(templates, "templates/"+templateName)
	if err != nil {
		logger.Error("Failed to parse label template", logger.LoggerInfo{
			ContextFunction: constant.CtxRender,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeTemplateParse,
				Message: err.Error(),
				Type:    constant.ErrTypeConfiguration,
			},
		})
		return nil, &label.ConfigurationError{Asset: templateName, Err: err}
	}

	return &Renderer{tmpl: tmpl}, nil
}

type point struct {
	X, Y string
}

type bar struct {
	Grade    string
	Class    string
	Top      int
	Baseline int
	Width    int
}

type scale struct {
	ID       string
	Icon     string
	X        int
	Bars     []bar
	Grade    string
	PointerY int
}

type iconSlot struct {
	Name string
	X    int
}

type noiseClass struct {
	Letter string
	X      string
	Active bool
}

type view struct {
	Supplier       string
	TypeIdentifier string
	Size           string
	TyreClass      string
	RollNoise      int
	EPRELID        int
	EPRELLink      string
	QR             label.QRPath
	QRScale        string
	Stars          []point
	Scales         []scale
	Icons          []iconSlot
	NoiseClasses   []noiseClass
	EmbedFonts     bool
	FontFaces      string
	IncludeLink    bool
}

// Render produces the SVG document for rec
func (r *Renderer) Render(rec label.Record, layout label.Layout, qr label.QRPath, opts label.RenderOptions) (string, error) {
	fuel, err := buildScale("fuel", "fuel", 6, rec.FuelEfficiency(), layout)
	if err != nil {
		return "", err
	}
	wet, err := buildScale("wet", "wet", 110, rec.WetGrip(), layout)
	if err != nil {
		return "", err
	}
	icons, err := buildIcons(rec, layout)
	if err != nil {
		return "", err
	}

	v := view{
		Supplier:       rec.Supplier(),
		TypeIdentifier: rec.TypeIdentifier(),
		Size:           rec.Size(),
		TyreClass:      rec.TyreClass(),
		RollNoise:      rec.RollNoise(),
		EPRELID:        rec.EPRELID(),
		EPRELLink:      rec.EPRELLink(),
		QR:             qr,
		QRScale:        qrScale(qr.Extent),
		Stars:          flagStars(),
		Scales:         []scale{fuel, wet},
		Icons:          icons,
		NoiseClasses:   noiseClasses(rec.NoiseLevel()),
		EmbedFonts:     opts.EmbedFonts,
		IncludeLink:    opts.IncludeLink,
	}
	if opts.EmbedFonts {
		v.FontFaces = fontFaces()
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, v); err != nil {
		return "", &label.ConfigurationError{Asset: templateName, Err: err}
	}

	return buf.String(), nil
}

func buildScale(id, icon string, x int, grade string, layout label.Layout) (scale, error) {
	pointerY, ok := layout.RatingY(grade)
	if !ok {
		return scale{}, &label.ConfigurationError{
			Asset: label.AssetRatingY,
			Err:   fmt.Errorf("no pointer position for %s grade %q", id, grade),
		}
	}

	bars := make([]bar, 0, len(grades))
	for i, g := range grades {
		y, ok := layout.RatingY(g)
		if !ok {
			return scale{}, &label.ConfigurationError{
				Asset: label.AssetRatingY,
				Err:   fmt.Errorf("no bar position for grade %q", g),
			}
		}
		bars = append(bars, bar{
			Grade:    g,
			Class:    strings.ToLower(g),
			Top:      y - 9,
			Baseline: y + 5,
			Width:    28 + i*8,
		})
	}

	return scale{
		ID:       id,
		Icon:     icon,
		X:        x,
		Bars:     bars,
		Grade:    grade,
		PointerY: pointerY,
	}, nil
}

func buildIcons(rec label.Record, layout label.Layout) ([]iconSlot, error) {
	icons := rec.Icons()
	xs, ok := layout.IconX(rec.IconCount())
	if !ok || len(xs) != len(icons) {
		return nil, &label.ConfigurationError{
			Asset: label.AssetIconX,
			Err:   fmt.Errorf("no offsets for %d icons", rec.IconCount()),
		}
	}

	slots := make([]iconSlot, len(icons))
	for i, icon := range icons {
		slots[i] = iconSlot{Name: string(icon), X: xs[i]}
	}
	return slots, nil
}

func noiseClasses(level string) []noiseClass {
	xs := []string{"16", "28.5", "41"}
	classes := make([]noiseClass, len(label.NoiseLevels))
	for i, l := range label.NoiseLevels {
		classes[i] = noiseClass{Letter: l, X: xs[i], Active: l == level}
	}
	return classes
}

// flagStars places twelve stars on a circle in the 56x38 flag
func flagStars() []point {
	stars := make([]point, 12)
	for i := range stars {
		a := float64(i) * math.Pi / 6
		stars[i] = point{
			X: formatFloat(28 + 12*math.Sin(a)),
			Y: formatFloat(19 - 12*math.Cos(a)),
		}
	}
	return stars
}

func qrScale(extent int) string {
	if extent <= 0 {
		return "1"
	}
	return formatFloat(qrSide / float64(extent))
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 4, 64)
}

func escapeXML(s string) string {
	var b strings.Builder
	// strings.Builder never returns a write error
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
