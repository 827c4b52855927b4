package server

import (
	"github.com/gofiber/fiber/v2"

	"BillCompare/internal/usecase"
)

// PartyAPI serves party participation statistics.
type PartyAPI struct {
	Router  fiber.Router
	Catalog *usecase.Catalog
}

func (api *PartyAPI) Register() {
	api.Router.Get("/party-stats", func(c *fiber.Ctx) error {
		q := rangeQuery(c)
		q.Category = ""
		stats, err := api.Catalog.PartyStats(c.UserContext(), q)
		if err != nil {
			return err
		}
		return c.JSON(stats)
	})

	api.Router.Get("/party-bills", func(c *fiber.Ctx) error {
		q := rangeQuery(c)
		q.Category = ""
		bills, err := api.Catalog.PartyBills(c.UserContext(), q, c.Query("party"))
		if err != nil {
			return err
		}
		return c.JSON(bills)
	})
}
