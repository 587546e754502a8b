package web

import (
	"embed"
	"html/template"

	"StockLens/internal/usecase"
	xlogger "StockLens/pkg/logger"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templatesFS embed.FS

// PageHandler serves the server-rendered lookup page.
type PageHandler struct {
	logger *xlogger.Logger
	svc    *usecase.LookupService
	tmpl   *template.Template
}

func NewPageHandler(logger *xlogger.Logger, svc *usecase.LookupService) *PageHandler {
	return &PageHandler{
		logger: logger,
		svc:    svc,
		tmpl:   template.Must(template.ParseFS(templatesFS, "templates/*.html")),
	}
}

func (h *PageHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Index)
	e.GET("/lookup", h.Lookup)
	e.GET("/chart", h.Chart)
}

// Index renders the empty search form.
func (h *PageHandler) Index(c echo.Context) error {
	return h.render(c, PageData{Title: "StockLens"})
}

// Lookup runs a full lookup cycle and renders the result panels. Partial
// failures render as an error banner above whichever panels did resolve.
func (h *PageHandler) Lookup(c echo.Context) error {
	name := c.QueryParam("name")
	symbol := c.QueryParam("symbol")
	period := c.QueryParam("period")

	view := h.svc.Lookup(c.Request().Context(), name, symbol, period)
	return h.render(c, BuildPageData(view))
}

func (h *PageHandler) render(c echo.Context, data PageData) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	if err := h.tmpl.ExecuteTemplate(c.Response(), "lookup.html", data); err != nil {
		h.logger.Error("template render error", xlogger.Error(err))
		return err
	}
	return nil
}
