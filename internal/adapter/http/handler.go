package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"vacuumworld/internal/app/ports"
	"vacuumworld/internal/app/simulation"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

type Handler struct {
	Sim    *simulation.Simulation
	Runner *simulation.Runner
	KPI    kpiSnapshotProvider
	// CORSOrigin is sent as Access-Control-Allow-Origin; empty means "*".
	CORSOrigin string
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware(h.CORSOrigin))

	sim := s.Group("/api/sim")
	sim.POST("/cycle", h.cycle)
	sim.GET("/snapshot", h.snapshot)
	sim.PUT("/snapshot", h.load)
	sim.POST("/seed", h.seed)
	sim.GET("/snapshots", h.list)
	sim.POST("/snapshots/:name", h.save)
	sim.POST("/snapshots/:name/restore", h.restore)
	sim.GET("/actors/:id/history", h.history)

	sim.GET("/runner", h.runnerStatus)
	sim.POST("/runner/start", h.runnerStart)
	sim.POST("/runner/pause", h.runnerPause)
	sim.POST("/runner/resume", h.runnerResume)
	sim.POST("/runner/stop", h.runnerStop)

	s.GET("/ops/kpi", h.kpi)
}

type listResponse struct {
	Snapshots []simulation.SavedSnapshot `json:"snapshots"`
}

func (h Handler) cycle(c context.Context, ctx *app.RequestContext) {
	resp, err := h.Sim.Cycle(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) snapshot(c context.Context, ctx *app.RequestContext) {
	resp, err := h.Sim.Snapshot(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) load(c context.Context, ctx *app.RequestContext) {
	if !json.Valid(ctx.Request.Body()) {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.Sim.Load(c, ctx.Request.Body())
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) seed(c context.Context, ctx *app.RequestContext) {
	var body simulation.SeedSpec
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.Sim.Reseed(c, body)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) save(c context.Context, ctx *app.RequestContext) {
	resp, err := h.Sim.Save(c, ctx.Param("name"))
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, resp)
}

func (h Handler) restore(c context.Context, ctx *app.RequestContext) {
	resp, err := h.Sim.Restore(c, ctx.Param("name"))
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) list(c context.Context, ctx *app.RequestContext) {
	items, err := h.Sim.List(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, listResponse{Snapshots: items})
}

func (h Handler) history(c context.Context, ctx *app.RequestContext) {
	limit := 0
	if raw := string(ctx.Query("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", "limit must be an integer")
			return
		}
		limit = n
	}
	resp, err := h.Sim.History(c, simulation.HistoryRequest{
		ActorID: ctx.Param("id"),
		Limit:   limit,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) runnerStatus(_ context.Context, ctx *app.RequestContext) {
	if !h.requireRunner(ctx) {
		return
	}
	ctx.JSON(consts.StatusOK, h.Runner.Status())
}

func (h Handler) runnerStart(_ context.Context, ctx *app.RequestContext) {
	h.runnerOp(ctx, h.Runner.Start)
}

func (h Handler) runnerPause(_ context.Context, ctx *app.RequestContext) {
	h.runnerOp(ctx, h.Runner.Pause)
}

func (h Handler) runnerResume(_ context.Context, ctx *app.RequestContext) {
	h.runnerOp(ctx, h.Runner.Resume)
}

func (h Handler) runnerStop(_ context.Context, ctx *app.RequestContext) {
	h.runnerOp(ctx, func() error {
		h.Runner.Stop()
		return nil
	})
}

func (h Handler) runnerOp(ctx *app.RequestContext, op func() error) {
	if !h.requireRunner(ctx) {
		return
	}
	if err := op(); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, h.Runner.Status())
}

func (h Handler) requireRunner(ctx *app.RequestContext) bool {
	if h.Runner == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "runner not configured")
		return false
	}
	return true
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, simulation.ErrInvalidRequest),
		errors.Is(err, ports.ErrInvalidPayload):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, simulation.ErrNotReady):
		writeErrorBody(ctx, consts.StatusConflict, "not_ready", err.Error())
	case errors.Is(err, simulation.ErrRunnerActive):
		writeErrorBody(ctx, consts.StatusConflict, "runner_active", err.Error())
	case errors.Is(err, simulation.ErrRunnerNotRunning):
		writeErrorBody(ctx, consts.StatusConflict, "runner_not_running", err.Error())
	case errors.Is(err, simulation.ErrRunnerNotPaused):
		writeErrorBody(ctx, consts.StatusConflict, "runner_not_paused", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
