package server

import (
	"net/http"
	"strconv"

	j "github.com/goccy/go-json"
	"github.com/labstack/echo/v4"

	cp "github.com/reoring/catalogpatch"
	"github.com/reoring/catalogpatch/catalog"
)

// Paging bounds of the v2 product list.
const (
	defaultPageNumber = 1
	defaultPageSize   = 10
	maxPageSize       = 100
)

type productResponse struct {
	SKU         string   `json:"sku"`
	Name        string   `json:"name"`
	ImgURI      string   `json:"imgUri"`
	Price       j.Number `json:"price"`
	Description *string  `json:"description"`
}

func toResponse(p catalog.Product) productResponse {
	return productResponse{
		SKU:         p.SKU,
		Name:        p.Name,
		ImgURI:      p.ImgURI,
		Price:       j.Number(p.Price.String()),
		Description: p.Description,
	}
}

func toResponses(ps []catalog.Product) []productResponse {
	out := make([]productResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, toResponse(p))
	}
	return out
}

type pageResponse struct {
	Items      []productResponse `json:"items"`
	TotalCount int               `json:"totalCount"`
	PageNumber int               `json:"pageNumber"`
	PageSize   int               `json:"pageSize"`
	TotalPages int               `json:"totalPages"`
}

// listProducts returns every product on v1 and one page from v2 on.
func (s *Server) listProducts(c echo.Context) error {
	ctx := c.Request().Context()
	v, _ := VersionFromContext(ctx)
	if v == nil || !Satisfies(v, ">= 2") {
		ps, err := s.read.ListProducts(ctx)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, toResponses(ps))
	}

	number, size, err := pageParams(c)
	if err != nil {
		return err
	}
	page, err := s.read.ListProductsPage(ctx, number, size)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pageResponse{
		Items:      toResponses(page.Items),
		TotalCount: page.TotalCount,
		PageNumber: page.PageNumber,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages(),
	})
}

func pageParams(c echo.Context) (number, size int, err error) {
	var iss cp.Issues
	number, ok := queryInt(c, "pageNumber", defaultPageNumber)
	if !ok || number <= 0 {
		iss = cp.AppendIssues(iss, validationError("pageNumber", cp.CodeTooSmall, "Page number must be greater than 0")...)
	}
	size, ok = queryInt(c, "pageSize", defaultPageSize)
	if !ok || size < 1 || size > maxPageSize {
		iss = cp.AppendIssues(iss, validationError("pageSize", cp.CodeTooBig, "Page size must be between 1 and 100")...)
	}
	if len(iss) > 0 {
		return 0, 0, iss
	}
	return number, size, nil
}

func queryInt(c echo.Context, name string, def int) (int, bool) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	return n, err == nil
}

func (s *Server) getProduct(c echo.Context) error {
	sku := c.Param("sku")
	if iss := catalog.ValidateSKU(sku); len(iss) > 0 {
		return iss
	}
	p, err := s.read.GetProduct(c.Request().Context(), sku)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toResponse(p))
}

// patchProduct runs the command prepared by preparePatch.
func (s *Server) patchProduct(c echo.Context) error {
	ctx := c.Request().Context()
	cmd, ok := CommandFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusInternalServerError, "patch command missing from request context")
	}
	if _, err := s.handler.Handle(ctx, cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
