package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prasetyowira/tyrelabel/constant"
	"github.com/prasetyowira/tyrelabel/domain/label"
	appLogger "github.com/prasetyowira/tyrelabel/infrastructure/logger"
)

// maxBodySize bounds label definition payloads
const maxBodySize = 1 << 20

// LabelBuilder renders label documents
type LabelBuilder interface {
	Build(ctx context.Context, fields label.Fields, opts label.RenderOptions) (string, error)
}

// LabelCatalog stores label definitions by EPREL id
type LabelCatalog interface {
	Register(ctx context.Context, fields label.Fields) (label.Record, error)
	Lookup(ctx context.Context, eprelID int) (label.Fields, error)
}

// Handler contains service dependencies for API handlers
type Handler struct {
	builder LabelBuilder
	catalog LabelCatalog
}

// RegisterLabelResponse is returned after a definition has been stored
type RegisterLabelResponse struct {
	EPRELID   int    `json:"eprel_id"`
	IconCount int    `json:"icon_count"`
	Location  string `json:"location"`
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      int    `json:"code"`
	ErrorCode string `json:"error_code,omitempty"`
}

// NewHandler creates a new API handler
func NewHandler(builder LabelBuilder, catalog LabelCatalog) *Handler {
	return &Handler{
		builder: builder,
		catalog: catalog,
	}
}

// RenderLabel renders the label definition in the request body
func (h *Handler) RenderLabel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	opts, err := renderOptions(r)
	if err != nil {
		appLogger.CtxWarn(ctx, "Invalid render option", appLogger.LoggerInfo{
			ContextFunction: constant.CtxRenderLabel,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAPIInvalidParam,
				Message: err.Error(),
				Type:    constant.ErrTypeAPI,
			},
		})
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Parse request
	fields, ok := decodeFields(w, r, constant.CtxRenderLabel)
	if !ok {
		return
	}

	// Call service
	doc, err := h.builder.Build(ctx, fields, opts)
	if err != nil {
		writeLabelError(ctx, w, constant.CtxRenderLabel, err)
		return
	}

	WriteSVG(w, doc)
}

// RegisterLabel validates and stores a label definition
func (h *Handler) RegisterLabel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	fields, ok := decodeFields(w, r, constant.CtxRegisterLabel)
	if !ok {
		return
	}

	rec, err := h.catalog.Register(ctx, fields)
	if err != nil {
		writeLabelError(ctx, w, constant.CtxRegisterLabel, err)
		return
	}

	appLogger.CtxInfo(ctx, "Label definition registered", appLogger.LoggerInfo{
		ContextFunction: constant.CtxRegisterLabel,
		Data: map[string]interface{}{
			constant.DataEPRELID: rec.EPRELID(),
		},
	})

	// Return response
	WriteJSON(w, RegisterLabelResponse{
		EPRELID:   rec.EPRELID(),
		IconCount: rec.IconCount(),
		Location:  "/labels/" + strconv.Itoa(rec.EPRELID()),
	}, http.StatusOK)
}

// RenderStoredLabel renders the definition registered for the EPREL id in the path
func (h *Handler) RenderStoredLabel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Get EPREL id from URL
	eprelID, err := strconv.Atoi(chi.URLParam(r, "eprelID"))
	if err != nil {
		WriteJSONError(w, "EPREL id must be an integer", http.StatusBadRequest)
		return
	}

	opts, err := renderOptions(r)
	if err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Get stored definition
	fields, err := h.catalog.Lookup(ctx, eprelID)
	if err != nil {
		writeLabelError(ctx, w, constant.CtxRenderStored, err)
		return
	}

	doc, err := h.builder.Build(ctx, fields, opts)
	if err != nil {
		writeLabelError(ctx, w, constant.CtxRenderStored, err)
		return
	}

	WriteSVG(w, doc)
}

// renderOptions reads the fonts and link query parameters; both default to true
func renderOptions(r *http.Request) (label.RenderOptions, error) {
	opts := label.DefaultRenderOptions()
	query := r.URL.Query()

	for name, dst := range map[string]*bool{"fonts": &opts.EmbedFonts, "link": &opts.IncludeLink} {
		raw := query.Get(name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return opts, errors.New("invalid value for query parameter " + name)
		}
		*dst = v
	}

	return opts, nil
}

func decodeFields(w http.ResponseWriter, r *http.Request, fn string) (label.Fields, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		WriteJSONError(w, "Invalid request format", http.StatusBadRequest)
		return label.Fields{}, false
	}

	fields, err := label.DecodeJSON(body)
	if err != nil {
		appLogger.CtxWarn(r.Context(), "Error decoding request body", appLogger.LoggerInfo{
			ContextFunction: fn,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAPIDecodeRequest,
				Message: err.Error(),
				Type:    constant.ErrTypeAPI,
			},
		})

		// Missing keys get their own error code
		var missing *label.MissingFieldsError
		if errors.As(err, &missing) {
			writeJSONErrorCode(w, err.Error(), constant.ErrCodeMissingFields, http.StatusBadRequest)
			return label.Fields{}, false
		}
		writeJSONErrorCode(w, "Invalid request format", constant.ErrCodeMalformedInput, http.StatusBadRequest)
		return label.Fields{}, false
	}

	return fields, true
}

// writeLabelError maps domain errors to HTTP responses
func writeLabelError(ctx context.Context, w http.ResponseWriter, fn string, err error) {
	var (
		validationErr *label.ValidationError
		encodingErr   *label.EncodingError
		configErr     *label.ConfigurationError
	)

	switch {
	case errors.As(err, &validationErr):
		writeJSONErrorCode(w, err.Error(), validationErr.Code(), http.StatusUnprocessableEntity)
	case errors.As(err, &configErr) && configErr.UnknownGrade():
		// Fuel and wet grades are only checked against the rating table
		writeJSONErrorCode(w, err.Error(), configErr.Code(), http.StatusUnprocessableEntity)
	case errors.As(err, &encodingErr):
		writeJSONErrorCode(w, err.Error(), constant.ErrCodeQREncode, http.StatusUnprocessableEntity)
	case errors.Is(err, label.ErrNotFound):
		writeJSONErrorCode(w, "Label not found", constant.ErrCodeCatalogNotFound, http.StatusNotFound)
	default:
		appLogger.CtxError(ctx, "Error building label", appLogger.LoggerInfo{
			ContextFunction: fn,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAPIServiceError,
				Message: err.Error(),
				Type:    constant.ErrTypeAPI,
			},
		})
		WriteJSONError(w, "Failed to build label", http.StatusInternalServerError)
	}
}

// WriteSVG writes a label document response
func WriteSVG(w http.ResponseWriter, doc string) {
	w.Header().Set(constant.HeaderContentType, constant.ContentTypeSVG)
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, doc)
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set(constant.HeaderContentType, constant.ContentTypeJSON)
	w.WriteHeader(statusCode)
	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		return
	}
}

// WriteJSONError writes a JSON error response
func WriteJSONError(w http.ResponseWriter, message string, statusCode int) {
	writeJSONErrorCode(w, message, "", statusCode)
}

func writeJSONErrorCode(w http.ResponseWriter, message, errorCode string, statusCode int) {
	WriteJSON(w, ErrorResponse{
		Error:     message,
		Code:      statusCode,
		ErrorCode: errorCode,
	}, statusCode)
}
