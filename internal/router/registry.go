// Package router implements request dispatch: path normalisation, CORS
// preflight, HEAD mirroring of GET routes, and a plain-text not-found
// default. Modeled on an ordered-registration route registry with a
// rendered routes table at startup, generalised from net/http's
// ServeMux to the gateway's own Request/Response types.
package router

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/pterm/pterm"

	"github.com/thushan/pigate/internal/core/domain"
	"github.com/thushan/pigate/internal/logger"
)

// HandlerFunc dispatches a Request to a Response (materialised or
// streaming).
type HandlerFunc func(ctx context.Context, req *domain.Request) *domain.Response

type routeEntry struct {
	handler     HandlerFunc
	pattern     string
	method      string
	description string
	segments    []string
	order       int
}

// Router normalises paths, then dispatches (method, path) to a registered
// handler.
type Router struct {
	routes   []routeEntry
	logger   *logger.StyledLogger
	orderSeq int
}

func New(log *logger.StyledLogger) *Router {
	return &Router{logger: log}
}

// Handle registers a handler for method+pattern. pattern segments of the
// form "{name}" match any single path segment. When method is GET, a HEAD
// mirror is registered automatically.
func (r *Router) Handle(method, pattern, description string, handler HandlerFunc) {
	r.routes = append(r.routes, routeEntry{
		handler:     handler,
		pattern:     pattern,
		method:      method,
		description: description,
		segments:    strings.Split(strings.Trim(pattern, "/"), "/"),
		order:       r.orderSeq,
	})
	r.orderSeq++

	if method == "GET" {
		r.routes = append(r.routes, routeEntry{
			handler:     handler,
			pattern:     pattern,
			method:      "HEAD",
			description: description + " (HEAD mirror)",
			segments:    strings.Split(strings.Trim(pattern, "/"), "/"),
			order:       r.orderSeq,
		})
		r.orderSeq++
	}
}

// Dispatch normalises req.Path (already done by the codec, but idempotent
// so it's safe to repeat), handles OPTIONS/CORS, HEAD body-stripping, and
// falls through to a 404 default.
func (r *Router) Dispatch(ctx context.Context, req *domain.Request) *domain.Response {
	path := domain.NormalizePath(req.Path)

	if req.Method == "OPTIONS" {
		return corsPreflight()
	}

	entry, params, ok := r.match(req.Method, path)
	if !ok {
		return notFound(path)
	}

	ctx = withParams(ctx, params)
	resp := entry.handler(ctx, req)
	applyCORS(resp)

	if req.Method == "HEAD" && resp.Stream == nil {
		resp = &domain.Response{Status: resp.Status, Headers: resp.Headers}
	}
	return resp
}

func (r *Router) match(method, path string) (routeEntry, map[string]string, bool) {
	segs := strings.Split(strings.Trim(path, "/"), "/")
	for _, entry := range r.routes {
		if entry.method != method {
			continue
		}
		params, ok := matchSegments(entry.segments, segs)
		if ok {
			return entry, params, true
		}
	}
	return routeEntry{}, nil, false
}

func matchSegments(pattern, actual []string) (map[string]string, bool) {
	if len(pattern) != len(actual) {
		return nil, false
	}
	params := map[string]string{}
	for i, p := range pattern {
		if strings.HasPrefix(p, "{") && strings.HasSuffix(p, "}") {
			params[strings.Trim(p, "{}")] = actual[i]
			continue
		}
		if p != actual[i] {
			return nil, false
		}
	}
	return params, true
}

type paramsKey struct{}

func withParams(ctx context.Context, params map[string]string) context.Context {
	return context.WithValue(ctx, paramsKey{}, params)
}

// Param extracts a path parameter captured by a "{name}" pattern segment.
func Param(ctx context.Context, name string) string {
	params, _ := ctx.Value(paramsKey{}).(map[string]string)
	return params[name]
}

func corsPreflight() *domain.Response {
	resp := &domain.Response{Status: 204, Headers: domain.NewHeader()}
	applyCORS(resp)
	resp.Headers.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS, HEAD")
	resp.Headers.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Accept")
	resp.Headers.Set("Access-Control-Max-Age", "600")
	return resp
}

func applyCORS(resp *domain.Response) {
	if resp == nil || resp.Headers == nil {
		return
	}
	if !resp.Headers.Has("Access-Control-Allow-Origin") {
		resp.Headers.Set("Access-Control-Allow-Origin", "*")
	}
}

func notFound(path string) *domain.Response {
	resp := domain.Text(404, fmt.Sprintf("404 not found: %s", path))
	applyCORS(resp)
	return resp
}

// LogRoutes renders the registered surface as a table in the startup log.
func (r *Router) LogRoutes() {
	if len(r.routes) == 0 {
		return
	}
	type row struct {
		method, pattern, desc string
		order                 int
	}
	var rows []row
	for _, e := range r.routes {
		rows = append(rows, row{e.method, e.pattern, e.description, e.order})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].order < rows[j].order })

	data := [][]string{{"METHOD", "ROUTE", "DESCRIPTION"}}
	for _, row := range rows {
		data = append(data, []string{row.method, row.pattern, row.desc})
	}
	r.logger.InfoWithCount("Registered routes", len(rows))
	table, _ := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	fmt.Print(table)
}
