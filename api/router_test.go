package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prasetyowira/tyrelabel/constant"
	"github.com/prasetyowira/tyrelabel/domain/label"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestRouter() (*Router, *MockBuilder, *MockCatalog) {
	builder := new(MockBuilder)
	catalog := new(MockCatalog)
	router := NewRouter(NewHandler(builder, catalog), "admin", "secret")
	router.SetupRoutes()
	return router, builder, catalog
}

func TestNewRouter(t *testing.T) {
	// Arrange
	handler := NewHandler(new(MockBuilder), new(MockCatalog))

	// Act
	router := NewRouter(handler, "admin", "secret")

	// Assert
	assert.NotNil(t, router)
	assert.Equal(t, handler, router.handler)
	assert.IsType(t, &chi.Mux{}, router.router)
}

func TestRouter_RenderLabel(t *testing.T) {
	// Arrange
	router, builder, _ := newTestRouter()
	builder.On("Build", mock.Anything, sampleFields(), label.DefaultRenderOptions()).Return("<svg/>", nil)

	req := httptest.NewRequest(http.MethodPost, constant.RouteRenderLabel, sampleBody(t, sampleFields()))
	w := httptest.NewRecorder()

	// Act
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "<svg/>", w.Body.String())
	_, err := uuid.Parse(w.Header().Get(constant.HeaderRequestID))
	assert.NoError(t, err)
}

func TestRouter_KeepsClientRequestID(t *testing.T) {
	// Arrange
	router, _, _ := newTestRouter()
	requestID := uuid.New().String()

	req := httptest.NewRequest(http.MethodGet, constant.RouteHealthcheck, nil)
	req.Header.Set(constant.HeaderRequestID, requestID)
	w := httptest.NewRecorder()

	// Act
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, requestID, w.Header().Get(constant.HeaderRequestID))
}

func TestRouter_RegisterLabel_RequiresAuth(t *testing.T) {
	// Arrange
	router, _, catalog := newTestRouter()

	req := httptest.NewRequest(http.MethodPut, constant.RouteRegisterLabel, sampleBody(t, sampleFields()))
	w := httptest.NewRecorder()

	// Act
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	catalog.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestRouter_RegisterLabel_WithAuth(t *testing.T) {
	// Arrange
	router, _, catalog := newTestRouter()
	rec, err := label.Normalize(sampleFields())
	require.NoError(t, err)
	catalog.On("Register", mock.Anything, sampleFields()).Return(rec, nil)

	req := httptest.NewRequest(http.MethodPut, constant.RouteRegisterLabel, sampleBody(t, sampleFields()))
	req.SetBasicAuth("admin", "secret")
	w := httptest.NewRecorder()

	// Act
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	catalog.AssertExpectations(t)
}

func TestRouter_RenderStoredLabel(t *testing.T) {
	// Arrange
	router, builder, catalog := newTestRouter()
	catalog.On("Lookup", mock.Anything, 381667).Return(sampleFields(), nil)
	builder.On("Build", mock.Anything, sampleFields(), label.DefaultRenderOptions()).Return("<svg/>", nil)

	req := httptest.NewRequest(http.MethodGet, "/labels/381667", nil)
	w := httptest.NewRecorder()

	// Act
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, constant.ContentTypeSVG, w.Header().Get(constant.HeaderContentType))
}

func TestRouter_Healthcheck(t *testing.T) {
	// Arrange
	router, _, _ := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, constant.RouteHealthcheck, nil)
	w := httptest.NewRecorder()

	// Act
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, constant.MsgHealthy, w.Body.String())
}

func TestRouter_UnknownRoute(t *testing.T) {
	// Arrange
	router, _, _ := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	w := httptest.NewRecorder()

	// Act
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusNotFound, w.Code)
}
