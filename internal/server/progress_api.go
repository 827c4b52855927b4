package server

import (
	"github.com/gofiber/fiber/v2"

	"BillCompare/internal/usecase"
)

// ProgressAPI serves legislative progress counts and the title ranking.
type ProgressAPI struct {
	Router  fiber.Router
	Catalog *usecase.Catalog
}

func (api *ProgressAPI) Register() {
	api.Router.Get("/progress", func(c *fiber.Ctx) error {
		q := rangeQuery(c)
		counts, err := api.Catalog.Progress(c.UserContext(), q)
		if err != nil {
			return err
		}
		return c.JSON(counts)
	})

	api.Router.Get("/progress-bills", func(c *fiber.Ctx) error {
		bills, err := api.Catalog.ProgressBills(c.UserContext(), rangeQuery(c), c.Query("class"))
		if err != nil {
			return err
		}
		return c.JSON(bills)
	})

	api.Router.Get("/ranking", func(c *fiber.Ctx) error {
		q := rangeQuery(c)
		q.Category = ""
		ranking, err := api.Catalog.Ranking(c.UserContext(), q)
		if err != nil {
			return err
		}
		return c.JSON(ranking)
	})
}
