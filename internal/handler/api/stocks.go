package api

import (
	"errors"

	"StockVault/internal/domain/models"
	"StockVault/internal/indicator"
	"StockVault/internal/usecase"
	xhttp "StockVault/pkg/http"
	xlogger "StockVault/pkg/logger"

	"github.com/labstack/echo/v4"
)

// StocksHandler exposes the ingestion pipeline and stored data over HTTP.
type StocksHandler struct {
	logger   *xlogger.Logger
	pipeline *usecase.Pipeline
	reader   *usecase.Reader
	catalog  *usecase.CatalogManager
}

func NewStocksHandler(logger *xlogger.Logger, pipeline *usecase.Pipeline, reader *usecase.Reader, catalog *usecase.CatalogManager) *StocksHandler {
	return &StocksHandler{logger: logger, pipeline: pipeline, reader: reader, catalog: catalog}
}

func (h *StocksHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.POST("/download/:symbol", h.Download)
	g.POST("/download", h.BulkDownload)
	g.POST("/sync/:symbol", h.Sync)
	g.GET("/data/:symbol", h.DailyData)
	g.GET("/data/:symbol/weekly", h.WeeklyData)
	g.GET("/data/:symbol/latest", h.LatestPrice)
	g.DELETE("/data/:symbol", h.Delete)
	g.GET("/symbols", h.Symbols)
	g.GET("/indicators", h.Indicators)
	g.GET("/catalog", h.Catalog)
	g.POST("/catalog/rebuild", h.RebuildCatalog)
	g.GET("/health", h.Health)
}

func (h *StocksHandler) Download(c echo.Context) error {
	symbol, appErr := pathSymbol(c)
	if appErr != nil {
		return xhttp.AppErrorResponse(c, appErr)
	}
	req := &models.DownloadRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	result, err := h.pipeline.Download(c.Request().Context(), symbol, req.Period, req.Indicators)
	if err != nil {
		h.logger.Error("download failed", xlogger.String("symbol", symbol), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, result)
}

func (h *StocksHandler) BulkDownload(c echo.Context) error {
	req := &models.BulkDownloadRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	result := h.pipeline.Bulk(c.Request().Context(), req.Symbols, req.Period, req.Indicators)
	return xhttp.SuccessResponse(c, result)
}

func (h *StocksHandler) Sync(c echo.Context) error {
	symbol, appErr := pathSymbol(c)
	if appErr != nil {
		return xhttp.AppErrorResponse(c, appErr)
	}
	req := &models.SyncRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	result, err := h.pipeline.Sync(c.Request().Context(), symbol, req.Indicators)
	if err != nil {
		h.logger.Error("sync failed", xlogger.String("symbol", symbol), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, result)
}

func (h *StocksHandler) DailyData(c echo.Context) error {
	symbol, appErr := pathSymbol(c)
	if appErr != nil {
		return xhttp.AppErrorResponse(c, appErr)
	}
	query, appErr := h.dataQuery(c)
	if appErr != nil {
		return xhttp.AppErrorResponse(c, appErr)
	}

	file, err := h.reader.GetDaily(c.Request().Context(), symbol, *query)
	if err != nil {
		return h.readError(c, symbol, err)
	}
	return xhttp.SuccessResponse(c, file)
}

func (h *StocksHandler) WeeklyData(c echo.Context) error {
	symbol, appErr := pathSymbol(c)
	if appErr != nil {
		return xhttp.AppErrorResponse(c, appErr)
	}
	query, appErr := h.dataQuery(c)
	if appErr != nil {
		return xhttp.AppErrorResponse(c, appErr)
	}

	file, err := h.reader.GetWeekly(c.Request().Context(), symbol, *query)
	if err != nil {
		return h.readError(c, symbol, err)
	}
	return xhttp.SuccessResponse(c, file)
}

func (h *StocksHandler) LatestPrice(c echo.Context) error {
	symbol, appErr := pathSymbol(c)
	if appErr != nil {
		return xhttp.AppErrorResponse(c, appErr)
	}

	latest, err := h.reader.GetLatest(c.Request().Context(), symbol)
	if err != nil {
		return h.readError(c, symbol, err)
	}
	return xhttp.SuccessResponse(c, latest)
}

func (h *StocksHandler) Delete(c echo.Context) error {
	symbol, appErr := pathSymbol(c)
	if appErr != nil {
		return xhttp.AppErrorResponse(c, appErr)
	}

	if err := h.reader.Delete(c.Request().Context(), symbol); err != nil {
		return h.readError(c, symbol, err)
	}
	return xhttp.SuccessResponse(c, map[string]string{"symbol": symbol, "status": "deleted"})
}

func (h *StocksHandler) Symbols(c echo.Context) error {
	symbols, err := h.reader.ListSymbols(c.Request().Context())
	if err != nil {
		h.logger.Error("list symbols failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.ListResponse(c, symbols, int64(len(symbols)))
}

// Indicators lists every registered indicator and the named sets that bundle
// them.
func (h *StocksHandler) Indicators(c echo.Context) error {
	defs := indicator.All()
	out := make([]map[string]interface{}, 0, len(defs))
	for _, def := range defs {
		out = append(out, map[string]interface{}{
			"name":         def.Name,
			"display_name": def.DisplayName,
			"category":     def.Category,
			"parameters":   def.Params,
			"min_history":  def.MinHistory,
			"outputs":      def.Outputs,
		})
	}
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"indicators": out,
		"sets":       indicator.SetNames(),
	})
}

func (h *StocksHandler) Catalog(c echo.Context) error {
	catalog, err := h.reader.GetCatalog(c.Request().Context())
	if err != nil {
		h.logger.Error("get catalog failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, catalog)
}

func (h *StocksHandler) RebuildCatalog(c echo.Context) error {
	catalog, err := h.catalog.Rebuild(c.Request().Context())
	if err != nil {
		h.logger.Error("catalog rebuild failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, catalog)
}

func (h *StocksHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
}

func (h *StocksHandler) readError(c echo.Context, symbol string, err error) error {
	if errors.Is(err, usecase.ErrNoData) {
		return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("no data for symbol %s", symbol))
	}
	h.logger.Error("read failed", xlogger.String("symbol", symbol), xlogger.Error(err))
	return xhttp.AppErrorResponse(c, err)
}

func pathSymbol(c echo.Context) (string, *xhttp.AppError) {
	symbol, err := models.NormalizeSymbol(c.Param("symbol"))
	if err != nil {
		return "", xhttp.BadRequestError(err.Error())
	}
	return symbol, nil
}

func (h *StocksHandler) dataQuery(c echo.Context) (*usecase.DataQuery, *xhttp.AppError) {
	req := &models.DataRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return nil, xhttp.BadRequestErrorf("invalid query: %v", verr)
	}

	query := &usecase.DataQuery{Indicators: req.Indicators, Limit: req.Limit}
	if req.StartDate != "" {
		start, err := models.ParseDate(req.StartDate)
		if err != nil {
			return nil, xhttp.BadRequestError(err.Error())
		}
		query.Start = &start
	}
	if req.EndDate != "" {
		end, err := models.ParseDate(req.EndDate)
		if err != nil {
			return nil, xhttp.BadRequestError(err.Error())
		}
		query.End = &end
	}
	return query, nil
}
