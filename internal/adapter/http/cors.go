package httpadapter

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// Browser dashboards poll the snapshot and runner routes and PUT snapshots
// back; nothing else is sent cross-origin.
const (
	corsAllowMethods = "GET,POST,PUT,OPTIONS"
	corsAllowHeaders = "Content-Type,Accept"
	corsMaxAge       = "600"
)

const defaultCORSOrigin = "*"

func applyCORSHeaders(ctx *app.RequestContext, origin string) {
	if origin == "" {
		origin = defaultCORSOrigin
	}
	ctx.Response.Header.Set("Access-Control-Allow-Origin", origin)
	if origin != defaultCORSOrigin {
		ctx.Response.Header.Set("Vary", "Origin")
	}
	ctx.Response.Header.Set("Access-Control-Allow-Methods", corsAllowMethods)
	ctx.Response.Header.Set("Access-Control-Allow-Headers", corsAllowHeaders)
	ctx.Response.Header.Set("Access-Control-Max-Age", corsMaxAge)
}

func corsMiddleware(origin string) app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		applyCORSHeaders(ctx, origin)
		if string(ctx.Method()) == consts.MethodOptions {
			ctx.AbortWithStatus(consts.StatusNoContent)
			return
		}
		ctx.Next(c)
	}
}
