// Package tyrelabel renders EU tyre energy labels (Regulation 2020/740) as
// standalone SVG documents.
//
//	doc, err := tyrelabel.Render(ctx, label.Fields{...})
//
// Fields are validated before anything is drawn; a rejected noise level
// surfaces as a *label.ValidationError.
package tyrelabel

import (
	"context"
	"sync"

	"github.com/prasetyowira/tyrelabel/domain/label"
	"github.com/prasetyowira/tyrelabel/infrastructure/qrcode"
	"github.com/prasetyowira/tyrelabel/infrastructure/svg"
)

// Option adjusts how a single label is rendered
type Option func(*label.RenderOptions)

// WithoutFonts leaves the @font-face rules out of the document
func WithoutFonts() Option {
	return func(o *label.RenderOptions) {
		o.EmbedFonts = false
	}
}

// WithoutLink draws the QR code without wrapping it in a hyperlink
func WithoutLink() Option {
	return func(o *label.RenderOptions) {
		o.IncludeLink = false
	}
}

// New wires the default QR encoder and SVG renderer into a label service
func New() (*label.Service, error) {
	renderer, err := svg.NewRenderer()
	if err != nil {
		return nil, err
	}
	return label.NewService(qrcode.NewGenerator(), renderer), nil
}

var defaultService = sync.OnceValues(New)

// Render builds the label document for fields
func Render(ctx context.Context, fields label.Fields, opts ...Option) (string, error) {
	service, err := defaultService()
	if err != nil {
		return "", err
	}
	return service.Build(ctx, fields, apply(opts))
}

// Save builds the label document for fields and writes it to path. No file is
// created when the label cannot be built.
func Save(ctx context.Context, fields label.Fields, path string, opts ...Option) error {
	service, err := defaultService()
	if err != nil {
		return err
	}
	return service.BuildToPath(ctx, fields, path, apply(opts))
}

func apply(opts []Option) label.RenderOptions {
	o := label.DefaultRenderOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
