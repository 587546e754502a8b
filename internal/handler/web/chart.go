package web

import (
	"net/http"

	"StockLens/internal/domain/models"
	xlogger "StockLens/pkg/logger"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/labstack/echo/v4"
)

// Chart renders the historical closing-price chart for one symbol and
// period. The page embeds it as an iframe so the chart library owns its
// own document.
func (h *PageHandler) Chart(c echo.Context) error {
	symbol := c.QueryParam("symbol")
	if symbol == "" {
		return c.NoContent(http.StatusNotFound)
	}
	period := h.svc.NormalizePeriod(c.QueryParam("period"))

	series, err := h.svc.Sources().Series.History(c.Request().Context(), symbol, period)
	if err != nil {
		h.logger.Warn("chart series fetch failed",
			xlogger.String("symbol", symbol),
			xlogger.Error(err),
		)
		return c.NoContent(http.StatusNotFound)
	}

	line := buildChart(symbol, period, series)
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	return line.Render(c.Response())
}

// buildChart projects the series onto a single filled line with no point
// markers: x-axis dates in order, y-axis closing prices.
func buildChart(symbol string, period models.Period, series models.Series) *charts.Line {
	labels := make([]string, 0, len(series.Points))
	values := make([]opts.LineData, 0, len(series.Points))
	for _, p := range series.Points {
		labels = append(labels, p.Date)
		values = append(values, opts.LineData{Value: p.Close})
	}

	subtitle := period.Label()
	if pc := PercentChangeLine(series); pc != "" {
		subtitle += "  " + pc
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: symbol + " - StockLens",
			Width:     "900px",
			Height:    "420px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    symbol + " Closing Price",
			Subtitle: subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
	)

	line.SetXAxis(labels).
		AddSeries("Close", values).
		SetSeriesOptions(
			charts.WithLineChartOpts(opts.LineChart{
				ShowSymbol: opts.Bool(false),
			}),
			charts.WithAreaStyleOpts(opts.AreaStyle{
				Opacity: 0.25,
			}),
		)

	return line
}
