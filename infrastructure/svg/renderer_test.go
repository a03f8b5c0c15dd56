package svg

import (
	"encoding/xml"
	"errors"
	"strings"
	"testing"

	"github.com/prasetyowira/tyrelabel/domain/label"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type node struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Nodes   []node     `xml:",any"`
	Text    string     `xml:",chardata"`
}

func (n node) attr(local string) string {
	for _, a := range n.Attrs {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

func (n node) find(match func(node) bool) []node {
	var out []node
	if match(n) {
		out = append(out, n)
	}
	for _, c := range n.Nodes {
		out = append(out, c.find(match)...)
	}
	return out
}

func byID(id string) func(node) bool {
	return func(n node) bool { return n.attr("id") == id }
}

func parse(t *testing.T, doc string) node {
	t.Helper()
	var root node
	require.NoError(t, xml.Unmarshal([]byte(doc), &root), "document must be well-formed XML")
	return root
}

func testFields() label.Fields {
	return label.Fields{
		Supplier:       "Cool Tyre",
		TypeIdentifier: "94385300",
		Size:           "185/75 R16",
		TyreClass:      "C2",
		FuelEfficiency: "e",
		WetGrip:        "a",
		RollNoise:      72,
		NoiseLevel:     "c",
		SnowGrip:       true,
		IceGrip:        true,
		EPRELID:        381667,
		EPRELLink:      "https://eprel.ec.europa.eu/qr/381667",
	}
}

var testQR = label.QRPath{Data: "M 0 0 H 77 V 11 H 0 Z", Extent: 319}

func render(t *testing.T, f label.Fields, opts label.RenderOptions) string {
	t.Helper()
	r, err := NewRenderer()
	require.NoError(t, err)

	rec, err := label.Normalize(f)
	require.NoError(t, err)

	doc, err := r.Render(rec, label.DefaultLayout(), testQR, opts)
	require.NoError(t, err)
	return doc
}

func TestRenderer_Document(t *testing.T) {
	doc := render(t, testFields(), label.DefaultRenderOptions())
	root := parse(t, doc)

	assert.Equal(t, "svg", root.XMLName.Local)
	assert.Equal(t, "http://www.w3.org/2000/svg", root.XMLName.Space)
	assert.Contains(t, doc, "<svg xmlns")

	qr := root.find(byID("QR"))
	require.Len(t, qr, 1)
	paths := qr[0].find(func(n node) bool { return n.XMLName.Local == "path" })
	require.Len(t, paths, 1)
	assert.Equal(t, testQR.Data, paths[0].attr("d"))
}

func TestRenderer_RatingPointers(t *testing.T) {
	root := parse(t, render(t, testFields(), label.DefaultRenderOptions()))

	pointer := func(scaleID string) string {
		scales := root.find(byID(scaleID))
		require.Len(t, scales, 1)
		ptrs := scales[0].find(func(n node) bool { return n.attr("class") == "pointer" })
		require.Len(t, ptrs, 1)
		return ptrs[0].attr("transform")
	}

	assert.Equal(t, "translate(76 128)", pointer("fuel"))
	assert.Equal(t, "translate(76 38)", pointer("wet"))
}

func TestRenderer_IconPositions(t *testing.T) {
	tests := []struct {
		name       string
		snow, ice  bool
		transforms []string
		classes    []string
	}{
		{"noise only", false, false, []string{"translate(73 0)"}, []string{"icon icon-noise"}},
		{"snow", true, false, []string{"translate(48 0)", "translate(124 0)"}, []string{"icon icon-noise", "icon icon-snow"}},
		{"ice", false, true, []string{"translate(48 0)", "translate(124 0)"}, []string{"icon icon-noise", "icon icon-ice"}},
		{"snow and ice", true, true,
			[]string{"translate(11 0)", "translate(87 0)", "translate(144 0)"},
			[]string{"icon icon-noise", "icon icon-snow", "icon icon-ice"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := testFields()
			f.SnowGrip, f.IceGrip = tt.snow, tt.ice
			root := parse(t, render(t, f, label.DefaultRenderOptions()))

			icons := root.find(func(n node) bool { return strings.HasPrefix(n.attr("class"), "icon ") })
			var transforms, classes []string
			for _, icon := range icons {
				transforms = append(transforms, icon.attr("transform"))
				classes = append(classes, icon.attr("class"))
			}
			assert.Equal(t, tt.transforms, transforms)
			assert.Equal(t, tt.classes, classes)
		})
	}
}

func TestRenderer_Fonts(t *testing.T) {
	withFonts := render(t, testFields(), label.RenderOptions{EmbedFonts: true, IncludeLink: true})
	noFonts := render(t, testFields(), label.RenderOptions{EmbedFonts: false, IncludeLink: true})

	assert.Contains(t, withFonts, "@font-face")
	assert.NotContains(t, noFonts, "@font-face")
	parse(t, withFonts)
	parse(t, noFonts)
}

func TestRenderer_Link(t *testing.T) {
	withLink := parse(t, render(t, testFields(), label.RenderOptions{IncludeLink: true}))
	noLink := parse(t, render(t, testFields(), label.RenderOptions{IncludeLink: false}))

	anchors := withLink.find(func(n node) bool { return n.XMLName.Local == "a" })
	require.Len(t, anchors, 1)
	assert.Equal(t, "https://eprel.ec.europa.eu/qr/381667", anchors[0].attr("href"))
	assert.Len(t, anchors[0].find(byID("QR")), 1, "QR group is wrapped by the link")

	assert.Empty(t, noLink.find(func(n node) bool { return n.XMLName.Local == "a" }))
	assert.Len(t, noLink.find(byID("QR")), 1)
}

func TestRenderer_EscapesText(t *testing.T) {
	f := testFields()
	f.Supplier = `Tom & Jerry <"Tyres">`
	f.EPRELLink = "https://example.com/?a=1&b=2"

	root := parse(t, render(t, f, label.DefaultRenderOptions()))

	texts := root.find(func(n node) bool { return n.XMLName.Local == "text" && n.Text == f.Supplier })
	assert.Len(t, texts, 1)
	anchors := root.find(func(n node) bool { return n.XMLName.Local == "a" })
	require.Len(t, anchors, 1)
	assert.Equal(t, f.EPRELLink, anchors[0].attr("href"))
}

func TestRenderer_Deterministic(t *testing.T) {
	first := render(t, testFields(), label.DefaultRenderOptions())
	second := render(t, testFields(), label.DefaultRenderOptions())

	assert.Equal(t, first, second)
}

func TestRenderer_UnknownGrade(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	f := testFields()
	f.FuelEfficiency = "F"
	rec, err := label.Normalize(f)
	require.NoError(t, err, "fuel efficiency is not range checked by the normalizer")

	_, err = r.Render(rec, label.DefaultLayout(), testQR, label.DefaultRenderOptions())

	var cfgErr *label.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "rating_y", cfgErr.Asset)
	assert.Contains(t, err.Error(), `"F"`)
}

func TestQRScale(t *testing.T) {
	assert.Equal(t, "0.1693", qrScale(29*11))
	assert.Equal(t, "1", qrScale(0))
}
