package server

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"BillCompare/internal/compare"
	"BillCompare/internal/domain"
	"BillCompare/internal/ports"
	"BillCompare/internal/render"
	"BillCompare/internal/usecase"
)

// CompareAPI serves side-by-side comparisons of same-title bill versions.
type CompareAPI struct {
	Router   fiber.Router
	Catalog  *usecase.Catalog
	Renderer compare.Renderer
	Layout   render.Layout
}

type versionInfo struct {
	Affiliation domain.Affiliation `json:"affiliation"`
	SourceFile  string             `json:"source_file"`
	Title       string             `json:"title"`
}

type compareResponse struct {
	Session   string         `json:"session"`
	BaseTitle string         `json:"base_title"`
	Kind      string         `json:"kind"`
	Available []versionInfo  `json:"available"`
	Selected  []versionInfo  `json:"selected"`
	Table     *compare.Table `json:"table,omitempty"`
	HTML      string         `json:"html"`
}

func (api *CompareAPI) Register() {
	api.Router.Get("/compare", func(c *fiber.Ctx) error {
		title := strings.TrimSpace(c.Query("title"))
		if title == "" {
			return fmt.Errorf("title: %w", domain.ErrInvalidInput)
		}
		affs, err := parseVersions(c.Query("versions"))
		if err != nil {
			return err
		}

		ctx := c.UserContext()
		q := ports.RangeQuery{Start: c.Query("start"), End: c.Query("end")}
		legislators, err := api.Catalog.Legislators(ctx)
		if err != nil {
			return err
		}
		pool, err := api.Catalog.Bills(ctx, q)
		if err != nil {
			return err
		}

		session := compare.NewSession(pool, legislators, api.Renderer)
		view, err := usecase.SelectView(session, title, affs)
		if err != nil {
			return err
		}

		layout := api.Layout
		if v := c.Query("layout"); v != "" {
			layout = render.ParseLayout(v)
		}

		return c.JSON(compareResponse{
			Session:   session.ID,
			BaseTitle: session.BaseTitle(),
			Kind:      view.Kind.String(),
			Available: versionInfos(session.Versions().Ordered()),
			Selected:  versionInfos(view.Versions),
			Table:     view.Table,
			HTML:      render.View(view, layout),
		})
	})
}

// parseVersions reads a comma-separated affiliation list. Empty means all.
func parseVersions(value string) ([]domain.Affiliation, error) {
	var affs []domain.Affiliation
	for _, label := range strings.Split(value, ",") {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		aff, ok := domain.ParseAffiliation(label)
		if !ok {
			return nil, fmt.Errorf("version %q: %w", label, domain.ErrInvalidInput)
		}
		affs = append(affs, aff)
	}
	return affs, nil
}

func versionInfos(versions []compare.Version) []versionInfo {
	out := make([]versionInfo, 0, len(versions))
	for _, v := range versions {
		out = append(out, versionInfo{
			Affiliation: v.Affiliation,
			SourceFile:  v.Bill.SourceFile,
			Title:       compare.BillTitle(v.Bill),
		})
	}
	return out
}
