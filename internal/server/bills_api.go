package server

import (
	"github.com/gofiber/fiber/v2"

	"BillCompare/internal/ports"
	"BillCompare/internal/usecase"
)

// BillsAPI serves categories, months, legislators and bill listings.
type BillsAPI struct {
	Router  fiber.Router
	Catalog *usecase.Catalog
}

func rangeQuery(c *fiber.Ctx) ports.RangeQuery {
	return ports.RangeQuery{
		Start:    c.Query("start"),
		End:      c.Query("end"),
		Category: c.Query("category"),
	}
}

func (api *BillsAPI) Register() {
	api.Router.Get("/categories", func(c *fiber.Ctx) error {
		categories, err := api.Catalog.Categories(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(categories)
	})

	api.Router.Get("/available-months", func(c *fiber.Ctx) error {
		months, err := api.Catalog.AvailableMonths(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(months)
	})

	api.Router.Get("/legislators.json", func(c *fiber.Ctx) error {
		legislators, err := api.Catalog.Legislators(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"jsonList": legislators})
	})

	api.Router.Get("/bills-range", func(c *fiber.Ctx) error {
		bills, err := api.Catalog.Bills(c.UserContext(), rangeQuery(c))
		if err != nil {
			return err
		}
		return c.JSON(bills)
	})

	api.Router.Get("/bills/all-range", func(c *fiber.Ctx) error {
		q := rangeQuery(c)
		q.Category = ""
		bills, err := api.Catalog.Bills(c.UserContext(), q)
		if err != nil {
			return err
		}
		return c.JSON(bills)
	})

	api.Router.Get("/bills/summary-range", func(c *fiber.Ctx) error {
		summary, err := api.Catalog.CategorySummary(c.UserContext(), rangeQuery(c))
		if err != nil {
			return err
		}
		return c.JSON(summary)
	})

	api.Router.Get("/bills/summary/:year/:month", func(c *fiber.Ctx) error {
		month, err := monthParam(c)
		if err != nil {
			return err
		}
		summary, err := api.Catalog.MonthSummary(c.UserContext(), month)
		if err != nil {
			return err
		}
		return c.JSON(summary)
	})

	api.Router.Get("/bills/all/:year/:month", func(c *fiber.Ctx) error {
		month, err := monthParam(c)
		if err != nil {
			return err
		}
		bills, err := api.Catalog.Month(c.UserContext(), month, "")
		if err != nil {
			return err
		}
		return c.JSON(bills)
	})

	api.Router.Get("/bills/:year/:month", func(c *fiber.Ctx) error {
		month, err := monthParam(c)
		if err != nil {
			return err
		}
		bills, err := api.Catalog.Month(c.UserContext(), month, c.Query("category"))
		if err != nil {
			return err
		}
		return c.JSON(bills)
	})
}
