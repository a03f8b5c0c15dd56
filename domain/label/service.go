package label

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/prasetyowira/tyrelabel/constant"
	"github.com/prasetyowira/tyrelabel/infrastructure/logger"
)

// QRPath is the vector outline of a QR code. Data is an SVG path "d"
// attribute; Extent is the side of the square it covers in user units.
type QRPath struct {
	Data   string
	Extent int
}

// RenderOptions toggles the optional parts of the document
type RenderOptions struct {
	EmbedFonts  bool
	IncludeLink bool
}

// DefaultRenderOptions embeds fonts and links the QR code
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{EmbedFonts: true, IncludeLink: true}
}

// QREncoder turns a link into QR path data
type QREncoder interface {
	Encode(content string) (QRPath, error)
}

// Renderer composes the final document
type Renderer interface {
	Render(rec Record, layout Layout, qr QRPath, opts RenderOptions) (string, error)
}

// Service assembles label documents: normalize, encode the EPREL link, render.
type Service struct {
	encoder  QREncoder
	renderer Renderer
	layout   Layout
}

// NewService creates a new label service
func NewService(encoder QREncoder, renderer Renderer) *Service {
	ctx := logger.NewRequestContext()

	logger.CtxDebug(ctx, "Creating label service", logger.LoggerInfo{
		ContextFunction: constant.CtxDomain,
		Data: map[string]interface{}{
			constant.DataService: "label",
		},
	})

	return &Service{
		encoder:  encoder,
		renderer: renderer,
		layout:   DefaultLayout(),
	}
}

// Build renders fields into a complete SVG document
func (s *Service) Build(ctx context.Context, fields Fields, opts RenderOptions) (string, error) {
	logger.CtxDebug(ctx, "Building label", logger.LoggerInfo{
		ContextFunction: constant.CtxBuild,
		Data: map[string]interface{}{
			constant.DataEPRELID:     fields.EPRELID,
			constant.DataEmbedFonts:  opts.EmbedFonts,
			constant.DataIncludeLink: opts.IncludeLink,
		},
	})

	rec, err := normalize(ctx, fields)
	if err != nil {
		return "", err
	}

	qr, err := s.encoder.Encode(rec.EPRELLink())
	if err != nil {
		logger.CtxWarn(ctx, "Failed to encode EPREL link", logger.LoggerInfo{
			ContextFunction: constant.CtxBuild,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeQREncode,
				Message: err.Error(),
				Type:    constant.ErrTypeEncoding,
			},
			Data: map[string]interface{}{
				constant.DataEPRELLink: rec.EPRELLink(),
			},
		})
		return "", err
	}

	doc, err := s.renderer.Render(rec, s.layout, qr, opts)
	if err != nil {
		code := constant.ErrCodeTemplateExecute
		logFunc := logger.CtxError
		var cfgErr *ConfigurationError
		if errors.As(err, &cfgErr) {
			code = cfgErr.Code()
			// Unknown grades come from the request
			if cfgErr.UnknownGrade() {
				logFunc = logger.CtxWarn
			}
		}
		logFunc(ctx, "Failed to render label", logger.LoggerInfo{
			ContextFunction: constant.CtxBuild,
			Error: &logger.CustomError{
				Code:    code,
				Message: err.Error(),
				Type:    constant.ErrTypeConfiguration,
			},
			Data: map[string]interface{}{
				constant.DataEPRELID: rec.EPRELID(),
			},
		})
		return "", err
	}

	logger.CtxInfo(ctx, "Label rendered", logger.LoggerInfo{
		ContextFunction: constant.CtxBuild,
		Data: map[string]interface{}{
			constant.DataEPRELID:   rec.EPRELID(),
			constant.DataIconCount: rec.IconCount(),
			constant.DataBytes:     len(doc),
		},
	})

	return doc, nil
}

// BuildTo renders fields and writes the document to w
func (s *Service) BuildTo(ctx context.Context, fields Fields, w io.Writer, opts RenderOptions) error {
	doc, err := s.Build(ctx, fields, opts)
	if err != nil {
		return err
	}

	_, err = io.WriteString(w, doc)
	return err
}

// BuildToPath renders fields and writes the document to path. Nothing is
// created on disk unless rendering succeeds.
func (s *Service) BuildToPath(ctx context.Context, fields Fields, path string, opts RenderOptions) (err error) {
	doc, err := s.Build(ctx, fields, opts)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		logOutputError(ctx, "Failed to create label file", constant.ErrCodeCreateFile, err, path)
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			logOutputError(ctx, "Failed to close label file", constant.ErrCodeCloseFile, cerr, path)
			err = errors.Join(err, fmt.Errorf("close %s: %w", path, cerr))
		}
	}()

	if _, err = io.WriteString(f, doc); err != nil {
		logOutputError(ctx, "Failed to write label file", constant.ErrCodeWriteFile, err, path)
		return err
	}

	logger.CtxInfo(ctx, "Label written", logger.LoggerInfo{
		ContextFunction: constant.CtxBuildToPath,
		Data: map[string]interface{}{
			constant.DataPath:  path,
			constant.DataBytes: len(doc),
		},
	})

	return nil
}

func logOutputError(ctx context.Context, msg, code string, err error, path string) {
	logger.CtxError(ctx, msg, logger.LoggerInfo{
		ContextFunction: constant.CtxBuildToPath,
		Error: &logger.CustomError{
			Code:    code,
			Message: err.Error(),
			Type:    constant.ErrTypeOutput,
		},
		Data: map[string]interface{}{
			constant.DataPath: path,
		},
	})
}
