package handlers

import (
	"crypto/md5"
	"embed"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

//go:embed docs/index.html docs/openapi.json
var docsFS embed.FS

const docsUIPolicy = "default-src 'none'; script-src 'self' 'unsafe-inline' https://cdn.jsdelivr.net; " +
	"style-src 'self' 'unsafe-inline' https://cdn.jsdelivr.net; font-src https://cdn.jsdelivr.net https://fonts.scalar.com; " +
	"connect-src 'self'; img-src 'self' data:"

// DocsHandler serves the OpenAPI document and a Scalar page that renders it
type DocsHandler struct {
	uiHTML      []byte
	uiETag      string
	openAPI     []byte
	openAPIETag string
}

func NewDocsHandler() *DocsHandler {
	uiHTML, _ := docsFS.ReadFile("docs/index.html")
	openAPI, _ := docsFS.ReadFile("docs/openapi.json")

	return &DocsHandler{
		uiHTML:      uiHTML,
		uiETag:      generateETag(uiHTML),
		openAPI:     openAPI,
		openAPIETag: generateETag(openAPI),
	}
}

func (h *DocsHandler) ServeUI(c echo.Context) error {
	c.Response().Header().Set("Content-Security-Policy", docsUIPolicy)
	return serveCached(c, h.uiETag, echo.MIMETextHTMLCharsetUTF8, h.uiHTML)
}

func (h *DocsHandler) ServeOpenAPI(c echo.Context) error {
	return serveCached(c, h.openAPIETag, echo.MIMEApplicationJSON, h.openAPI)
}

func serveCached(c echo.Context, etag, contentType string, body []byte) error {
	header := c.Response().Header()
	header.Set("Cache-Control", "no-cache")
	header.Set("ETag", etag)

	if match := c.Request().Header.Get("If-None-Match"); match != "" && match == etag {
		return c.NoContent(http.StatusNotModified)
	}

	return c.Blob(http.StatusOK, contentType, body)
}

func generateETag(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	return fmt.Sprintf("%q", fmt.Sprintf("%x", md5.Sum(data)))
}
