package qrcode

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/prasetyowira/tyrelabel/constant"
	"github.com/prasetyowira/tyrelabel/domain/label"
	"github.com/prasetyowira/tyrelabel/infrastructure/logger"
	"github.com/skip2/go-qrcode"
	"rsc.io/qr"
)

// ModuleSize is the side of one QR module in SVG user units
const ModuleSize = 11

// Generator traces QR codes into SVG path data
type Generator struct {
	moduleSize int
}

// NewGenerator creates a new QR code generator
func NewGenerator() *Generator {
	return &Generator{moduleSize: ModuleSize}
}

// Encode returns the path data of a QR code for content, error correction
// level M, no quiet zone, smallest version that fits.
func (g *Generator) Encode(content string) (label.QRPath, error) {
	ctx := logger.NewRequestContext()

	bitmap, err := g.bitmap(content)
	if err != nil {
		logger.CtxWarn(ctx, "Failed to encode QR code", logger.LoggerInfo{
			ContextFunction: constant.CtxQREncode,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeQREncode,
				Message: err.Error(),
				Type:    constant.ErrTypeEncoding,
			},
			Data: map[string]interface{}{
				constant.DataEPRELLink: content,
			},
		})
		return label.QRPath{}, &label.EncodingError{Content: content, Err: err}
	}

	logger.CtxDebug(ctx, "QR code encoded", logger.LoggerInfo{
		ContextFunction: constant.CtxQREncode,
		Data: map[string]interface{}{
			constant.DataModules: len(bitmap),
		},
	})

	return label.QRPath{
		Data:   g.trace(bitmap),
		Extent: len(bitmap) * g.moduleSize,
	}, nil
}

// bitmap returns the module matrix, bitmap[y][x] is true for dark modules
func (g *Generator) bitmap(content string) ([][]bool, error) {
	if content == "" {
		// go-qrcode refuses to encode an empty payload
		return emptyPayloadBitmap()
	}

	q, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", constant.ErrQRTooLong, err)
	}
	q.DisableBorder = true

	return q.Bitmap(), nil
}

func emptyPayloadBitmap() ([][]bool, error) {
	code, err := qr.Encode("", qr.M)
	if err != nil {
		return nil, err
	}

	bitmap := make([][]bool, code.Size)
	for y := range bitmap {
		bitmap[y] = make([]bool, code.Size)
		for x := range bitmap[y] {
			bitmap[y][x] = code.Black(x, y)
		}
	}
	return bitmap, nil
}

// trace emits one closed rectangle per horizontal run of dark modules
func (g *Generator) trace(bitmap [][]bool) string {
	var b strings.Builder
	size := g.moduleSize

	for y, row := range bitmap {
		for x := 0; x < len(row); {
			if !row[x] {
				x++
				continue
			}
			start := x
			for x < len(row) && row[x] {
				x++
			}

			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			x0, x1 := strconv.Itoa(start*size), strconv.Itoa(x*size)
			b.WriteString("M " + x0 + " " + strconv.Itoa(y*size))
			b.WriteString(" H " + x1)
			b.WriteString(" V " + strconv.Itoa((y+1)*size))
			b.WriteString(" H " + x0 + " Z")
		}
	}

	return b.String()
}
