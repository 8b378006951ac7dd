package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

type DocsHandlerSuite struct {
	suite.Suite
	handler *DocsHandler
	e       *echo.Echo
}

func TestDocsHandler(t *testing.T) {
	suite.Run(t, new(DocsHandlerSuite))
}

func (s *DocsHandlerSuite) SetupTest() {
	s.handler = NewDocsHandler()
	s.e = echo.New()
}

func (s *DocsHandlerSuite) serve(handler echo.HandlerFunc, path, ifNoneMatch string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if ifNoneMatch != "" {
		req.Header.Set("If-None-Match", ifNoneMatch)
	}
	rec := httptest.NewRecorder()
	s.Require().NoError(handler(s.e.NewContext(req, rec)))
	return rec
}

func (s *DocsHandlerSuite) TestServeUI() {
	rec := s.serve(s.handler.ServeUI, "/docs", "")

	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Header().Get("Content-Type"), "text/html")
	s.Contains(rec.Body.String(), "/docs/openapi.json")
	s.Contains(rec.Header().Get("Content-Security-Policy"), "https://cdn.jsdelivr.net")
	s.NotEmpty(rec.Header().Get("ETag"))
}

func (s *DocsHandlerSuite) TestServeOpenAPI() {
	rec := s.serve(s.handler.ServeOpenAPI, "/docs/openapi.json", "")

	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Header().Get("Content-Type"), "application/json")

	var document struct {
		OpenAPI string                 `json:"openapi"`
		Paths   map[string]interface{} `json:"paths"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &document))
	s.Equal("3.0.3", document.OpenAPI)
	s.Contains(document.Paths, "/api/categorias/")
	s.Contains(document.Paths, "/api/categorias/{id}/")
	s.Contains(document.Paths, "/api/transacciones/")
	s.Contains(document.Paths, "/api/transacciones/{id}/")
}

func (s *DocsHandlerSuite) TestNotModified() {
	first := s.serve(s.handler.ServeOpenAPI, "/docs/openapi.json", "")
	etag := first.Header().Get("ETag")
	s.Require().NotEmpty(etag)

	rec := s.serve(s.handler.ServeOpenAPI, "/docs/openapi.json", etag)
	s.Equal(http.StatusNotModified, rec.Code)
	s.Empty(rec.Body.String())

	rec = s.serve(s.handler.ServeOpenAPI, "/docs/openapi.json", `"stale"`)
	s.Equal(http.StatusOK, rec.Code)
}

func TestGenerateETag(t *testing.T) {
	suite.Run(t, new(etagSuite))
}

type etagSuite struct {
	suite.Suite
}

func (s *etagSuite) TestEmptyInput() {
	s.Empty(generateETag(nil))
}

func (s *etagSuite) TestQuotedAndStable() {
	etag := generateETag([]byte("finora"))

	s.Equal(etag, generateETag([]byte("finora")))
	s.NotEqual(etag, generateETag([]byte("finora!")))
	s.Equal(byte('"'), etag[0])
	s.Equal(byte('"'), etag[len(etag)-1])
}
