package api

import (
	"net/http"

	"StockLens/internal/domain/models"
	"StockLens/internal/service/ratelimit"
	"StockLens/internal/usecase"
	xhttp "StockLens/pkg/http"
	xlogger "StockLens/pkg/logger"

	"github.com/labstack/echo/v4"
)

// LookupEchoHandler exposes the consolidated lookup view plus the four
// panel slots as individual typed proxies over the upstream.
type LookupEchoHandler struct {
	logger  *xlogger.Logger
	svc     *usecase.LookupService
	limiter *ratelimit.Limiter

	rlCapacity float64
	rlRefill   float64
}

func NewLookupEchoHandler(logger *xlogger.Logger, svc *usecase.LookupService, limiter *ratelimit.Limiter, capacity, refillPerSec float64) *LookupEchoHandler {
	return &LookupEchoHandler{
		logger:     logger,
		svc:        svc,
		limiter:    limiter,
		rlCapacity: capacity,
		rlRefill:   refillPerSec,
	}
}

func (h *LookupEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)

	g := e.Group("/api")
	g.GET("/lookup", h.Lookup)
	g.GET("/news", h.News)
	g.GET("/today_stock_info", h.Snapshot)
	g.GET("/get_stock_data", h.Series)
	g.GET("/buy_stock", h.Recommendation)
}

func (h *LookupEchoHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Lookup runs one full four-fetch cycle and returns the assembled view.
// Validation failures are part of the view (error banner), not transport
// errors, so the response is 200 either way.
func (h *LookupEchoHandler) Lookup(c echo.Context) error {
	if !h.allow(c) {
		return xhttp.DataResponse(c, http.StatusTooManyRequests, "rate limit exceeded")
	}

	req := &models.LookupRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	view := h.svc.Lookup(c.Request().Context(), req.Name, req.Symbol, req.Period)
	return xhttp.SuccessResponse(c, view)
}

func (h *LookupEchoHandler) News(c echo.Context) error {
	req := &models.NewsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	arts, err := h.svc.Sources().News.Headlines(c.Request().Context(), req.Name)
	if err != nil {
		h.logger.Error("news proxy error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.NotFoundError("company name not found").WithError(err))
	}
	return xhttp.SuccessResponse(c, map[string]interface{}{"articles": arts})
}

func (h *LookupEchoHandler) Snapshot(c echo.Context) error {
	req := &models.SnapshotRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	snap, err := h.svc.Sources().Snapshot.TodayInfo(c.Request().Context(), req.Symbol)
	if err != nil {
		h.logger.Error("snapshot proxy error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.NotFoundError("invalid ticker symbol").WithError(err))
	}
	return xhttp.SuccessResponse(c, snap)
}

func (h *LookupEchoHandler) Series(c echo.Context) error {
	req := &models.SeriesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	series, err := h.svc.Sources().Series.History(c.Request().Context(), req.Symbol, models.NormalizePeriod(req.Period))
	if err != nil {
		h.logger.Error("series proxy error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.NotFoundError("invalid ticker symbol").WithError(err))
	}
	return xhttp.SuccessResponse(c, series)
}

func (h *LookupEchoHandler) Recommendation(c echo.Context) error {
	req := &models.RecommendationRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	rec, err := h.svc.Sources().Recommend.Advise(c.Request().Context(), req.Symbol)
	if err != nil {
		h.logger.Error("recommendation proxy error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.NotFoundError("invalid ticker symbol").WithError(err))
	}
	return xhttp.SuccessResponse(c, rec)
}

func (h *LookupEchoHandler) allow(c echo.Context) bool {
	if h.limiter == nil || h.rlCapacity <= 0 {
		return true
	}
	return h.limiter.Allow(c.RealIP(), h.rlCapacity, h.rlRefill)
}
