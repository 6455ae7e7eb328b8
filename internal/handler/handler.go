package handler

import (
	"bytes"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"capital-engine/internal/chart"
	"capital-engine/internal/engine"
	"capital-engine/internal/export"
	"capital-engine/internal/model"
)

type Handler struct {
	calc *engine.Calculator
	log  zerolog.Logger
}

func New(calc *engine.Calculator, log zerolog.Logger) *Handler {
	return &Handler{calc: calc, log: log}
}

// Handle routes requests and logs each one.
func (h *Handler) Handle(ctx *fasthttp.RequestCtx) {
	start := time.Now()

	switch string(ctx.Path()) {
	case "/simulate":
		h.post(ctx, h.simulate)
	case "/simulate/csv":
		h.post(ctx, h.simulateCSV)
	case "/simulate/chart":
		h.post(ctx, h.simulateChart)
	case "/health":
		if !ctx.IsGet() {
			writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
			break
		}
		writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
	default:
		writeError(ctx, fasthttp.StatusNotFound, "Not found")
	}

	h.log.Info().
		Str("method", string(ctx.Method())).
		Str("path", string(ctx.Path())).
		Int("status", ctx.Response.StatusCode()).
		Dur("duration", time.Since(start)).
		Msg("HTTP request")
}

func (h *Handler) post(ctx *fasthttp.RequestCtx, next func(*fasthttp.RequestCtx, *model.SimulationRequest)) {
	if !ctx.IsPost() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req model.SimulationRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	next(ctx, &req)
}

func (h *Handler) simulate(ctx *fasthttp.RequestCtx, req *model.SimulationRequest) {
	resp := h.calc.Process(ctx, req)
	if req.Options.OmitPaths {
		resp.CalculationResult.Ensemble = nil
	}
	writeJSON(ctx, fasthttp.StatusOK, resp)
}

func (h *Handler) simulateCSV(ctx *fasthttp.RequestCtx, req *model.SimulationRequest) {
	resp := h.calc.Process(ctx, req)
	if resp.CalculationMetadata.CalculationOutcome != model.OutcomeSuccess {
		writeJSON(ctx, fasthttp.StatusUnprocessableEntity, resp)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, resp.CalculationResult.Ensemble); err != nil {
		h.log.Error().Err(err).Msg("CSV export failed")
		writeError(ctx, fasthttp.StatusInternalServerError, "CSV export failed")
		return
	}
	ctx.Response.Header.Set("Content-Disposition", `attachment; filename="simulation.csv"`)
	ctx.Response.Header.Set("X-Calculation-Id", resp.CalculationMetadata.CalculationID)
	ctx.SetContentType("text/csv; charset=utf-8")
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBody(buf.Bytes())
}

func (h *Handler) simulateChart(ctx *fasthttp.RequestCtx, req *model.SimulationRequest) {
	resp := h.calc.Process(ctx, req)
	if resp.CalculationMetadata.CalculationOutcome != model.OutcomeSuccess {
		writeJSON(ctx, fasthttp.StatusUnprocessableEntity, resp)
		return
	}

	var buf bytes.Buffer
	if err := chart.Render(&buf, resp.CalculationResult.Ensemble, chart.DefaultOptions()); err != nil {
		h.log.Error().Err(err).Msg("Chart rendering failed")
		writeError(ctx, fasthttp.StatusInternalServerError, "Chart rendering failed")
		return
	}
	ctx.Response.Header.Set("X-Calculation-Id", resp.CalculationMetadata.CalculationID)
	ctx.SetContentType("image/png")
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBody(buf.Bytes())
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, "Failed to encode response")
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	body, _ := json.Marshal(model.ErrorResponse{
		Status:  status,
		Message: message,
	})
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}
