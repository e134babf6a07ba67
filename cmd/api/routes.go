package main

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// registerRoutes sets up the page, search streams, assets and API endpoints
func (app *App) registerRoutes() {
	// Page and search streams
	app.router.GET("/", app.handlePage)
	app.router.GET("/search/:slug", app.handleSearchStream)
	app.router.StaticFS("/static", http.FS(app.assets))

	// Health check endpoint
	huma.Register(app.api, huma.Operation{
		OperationID: "ping",
		Method:      http.MethodGet,
		Path:        "/ping",
		Summary:     "Ping health check",
		Description: "Check if the API is running",
		Tags:        []string{"health"},
	}, app.handlePing)

	// Forecast endpoints
	huma.Register(app.api, huma.Operation{
		OperationID: "list-locations",
		Method:      http.MethodGet,
		Path:        "/api/locations",
		Summary:     "List locations",
		Description: "List the locations a forecast can be searched for, with their slugs",
		Tags:        []string{"forecast"},
	}, app.handleListLocations)

	huma.Register(app.api, huma.Operation{
		OperationID: "get-forecast",
		Method:      http.MethodGet,
		Path:        "/api/forecast",
		Summary:     "Get forecast",
		Description: "Hourly temperature and precipitation for the current day at a coordinate",
		Tags:        []string{"forecast"},
		Errors:      []int{http.StatusBadRequest, http.StatusBadGateway},
	}, app.handleGetForecast)

	// Swagger UI reading the OpenAPI document generated by huma
	app.router.GET("/swagger/*any", func(c *gin.Context) {
		path := c.Param("any")
		if path == "/" {
			c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
			return
		}
		ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/openapi.json"))(c)
	})
}
