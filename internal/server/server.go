// Package server exposes the bill data-source API and the comparison
// endpoint over HTTP.
package server

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"BillCompare/internal/compare"
	"BillCompare/internal/domain"
	"BillCompare/internal/render"
	"BillCompare/internal/usecase"
)

// Deps carries what the handlers need.
type Deps struct {
	Catalog  *usecase.Catalog
	Renderer compare.Renderer
	Layout   render.Layout
	Logger   *slog.Logger
}

// New builds the fiber application with every route registered.
func New(deps Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "billcompare",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(deps.Logger),
	})

	api := app.Group("/api")
	(&BillsAPI{Router: api, Catalog: deps.Catalog}).Register()
	(&PartyAPI{Router: api, Catalog: deps.Catalog}).Register()
	(&ProgressAPI{Router: api, Catalog: deps.Catalog}).Register()
	(&CompareAPI{
		Router:   api,
		Catalog:  deps.Catalog,
		Renderer: deps.Renderer,
		Layout:   deps.Layout,
	}).Register()

	return app
}

// errorResponse is the JSON body of every failed request.
type errorResponse struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}

func errorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := statusOf(err)
		if code >= fiber.StatusInternalServerError && logger != nil {
			logger.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
		}
		return c.Status(code).JSON(errorResponse{Code: code, Error: err.Error()})
	}
}

func statusOf(err error) int {
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrNoVersions):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func monthParam(c *fiber.Ctx) (domain.MonthRef, error) {
	year, yErr := strconv.Atoi(c.Params("year"))
	month, mErr := strconv.Atoi(c.Params("month"))
	if yErr != nil || mErr != nil {
		return domain.MonthRef{}, fiber.NewError(fiber.StatusBadRequest, "year and month must be integers")
	}
	return domain.MonthRef{Year: year, Month: month}, nil
}
