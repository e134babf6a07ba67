package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/net/html"

	"vedur/internal/elements"
	"vedur/internal/geolocation"
	"vedur/internal/locations"
	"vedur/internal/view"
)

// streamRegion sends every replacement of the output region to the browser
// as a server-sent event.
type streamRegion struct {
	c      *gin.Context
	logger *slog.Logger
}

func (r *streamRegion) Replace(n *html.Node) {
	fragment, err := elements.Render(n)
	if err != nil {
		r.logger.Error("failed to render fragment", "error", err)
		return
	}
	r.c.SSEvent("output", fragment)
	r.c.Writer.Flush()
}

// handlePage serves the page. With ?location=<slug> the search runs before
// the page is sent, so the buttons work without the page script.
func (app *App) handlePage(c *gin.Context) {
	page := app.view.Shell(app.catalog.All())
	status := http.StatusOK

	if slug := c.Query(view.LocationParam); slug != "" {
		status = app.runSearch(c.Request.Context(), c, page.Output, slug)
	}

	body, err := page.Render()
	if err != nil {
		app.logger.Error("failed to render page", "error", err)
		c.String(http.StatusInternalServerError, "failed to render page")
		return
	}

	c.Data(status, "text/html; charset=utf-8", []byte(body))
}

// handleSearchStream runs one search and streams each state as an "output"
// event, followed by "done".
func (app *App) handleSearchStream(c *gin.Context) {
	slug := c.Param("slug")

	if slug != locations.CurrentSlug {
		if _, err := app.catalog.Lookup(slug); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
	} else if _, err := geolocation.ParseReport(c.Request.URL.Query()); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	region := &streamRegion{c: c, logger: app.logger}
	app.runSearch(c.Request.Context(), c, region, slug)

	c.SSEvent("done", "")
	c.Writer.Flush()
}

// runSearch searches for slug into region and returns the HTTP status
// matching the outcome. Failures are rendered into region.
func (app *App) runSearch(ctx context.Context, c *gin.Context, region view.Region, slug string) int {
	var err error

	if slug == locations.CurrentSlug {
		report, perr := geolocation.ParseReport(c.Request.URL.Query())
		if perr != nil {
			region.Replace(app.view.Error(perr))
			return http.StatusBadRequest
		}
		err = app.search.SearchCurrentLocation(ctx, region, report)
	} else {
		entry, lerr := app.catalog.Lookup(slug)
		if lerr != nil {
			region.Replace(app.view.Error(lerr))
			return http.StatusNotFound
		}
		err = app.search.Search(ctx, region, entry.Location)
	}

	if err != nil {
		app.logSearchFailure(slug, err)
	}
	return http.StatusOK
}

func (app *App) logSearchFailure(slug string, err error) {
	var posErr *geolocation.PositionError
	switch {
	case errors.Is(err, geolocation.ErrUnsupported), errors.As(err, &posErr):
		app.logger.Info("position unavailable", "slug", slug, "error", err)
	case errors.Is(err, context.Canceled):
		app.logger.Debug("search abandoned by client", "slug", slug)
	default:
		app.logger.Warn("search failed", "slug", slug, "error", err)
	}
}
