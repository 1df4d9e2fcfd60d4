package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/petconnect/marketplace/internal/core/domain"
	"github.com/petconnect/marketplace/internal/core/ports"
)

// CatalogHandler serves the public storefront catalog and the back-office
// product and banner CRUD.
type CatalogHandler struct {
	catalog ports.CatalogService
}

func NewCatalogHandler(catalog ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListProducts handles the storefront catalog listing. Only active products
// are returned; filters and pagination come from query parameters.
//
// @Summary      List storefront products
// @Tags         catalog
// @Produce      json
// @Param        category   query     string  false  "Category filter"
// @Param        search     query     string  false  "Partial name match"
// @Param        min_price  query     number  false  "Minimum price"
// @Param        max_price  query     number  false  "Maximum price"
// @Param        page       query     int     false  "Page number (1-based)"
// @Param        limit      query     int     false  "Page size (max 100)"
// @Success      200        {object}  listProductsResponse
// @Router       /v1/products [get]
func (h *CatalogHandler) ListProducts(c echo.Context) error {
	return h.listProducts(c, true)
}

// AdminListProducts is the back-office variant: deactivated products are
// included so they can be edited.
func (h *CatalogHandler) AdminListProducts(c echo.Context) error {
	return h.listProducts(c, false)
}

func (h *CatalogHandler) listProducts(c echo.Context, activeOnly bool) error {
	filter := ports.ProductFilter{
		Category:   c.QueryParam("category"),
		Search:     c.QueryParam("search"),
		ActiveOnly: activeOnly,
	}
	filter.MinPrice, _ = strconv.ParseFloat(c.QueryParam("min_price"), 64)
	filter.MaxPrice, _ = strconv.ParseFloat(c.QueryParam("max_price"), 64)
	filter.Page, _ = strconv.Atoi(c.QueryParam("page"))
	filter.Limit, _ = strconv.Atoi(c.QueryParam("limit"))

	result, err := h.catalog.ListProducts(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	resp := listProductsResponse{
		Data: make([]productResponse, 0, len(result.Items)),
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	}
	for _, p := range result.Items {
		resp.Data = append(resp.Data, toProductResponse(p))
	}
	return c.JSON(http.StatusOK, resp)
}

// GetProduct handles GET /v1/products/:id.
//
// @Summary      Get a product
// @Tags         catalog
// @Produce      json
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  productResponse
// @Failure      404  {object}  map[string]string
// @Router       /v1/products/{id} [get]
func (h *CatalogHandler) GetProduct(c echo.Context) error {
	product, err := h.catalog.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponse(product))
}

// SaveProduct handles the back-office create/update form. POST creates,
// PUT /:id updates.
//
// @Summary      Create or update a product
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      saveProductRequest  true  "Product fields"
// @Success      200   {object}  productResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /v1/admin/products [post]
func (h *CatalogHandler) SaveProduct(c echo.Context) error {
	var req saveProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.catalog.SaveProduct(c.Request().Context(), ports.SaveProductInput{
		ID:          c.Param("id"),
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
		Active:      req.Active,
	})
	if err != nil {
		return err
	}

	status := http.StatusOK
	if c.Param("id") == "" {
		status = http.StatusCreated
	}
	return c.JSON(status, toProductResponse(product))
}

// DeleteProduct handles DELETE /v1/admin/products/:id.
//
// @Summary      Delete a product
// @Tags         admin
// @Security     BearerAuth
// @Param        id  path  string  true  "Product id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/admin/products/{id} [delete]
func (h *CatalogHandler) DeleteProduct(c echo.Context) error {
	if err := h.catalog.DeleteProduct(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ActiveBanners handles the storefront banner carousel.
//
// @Summary      List active banners
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  bannerResponse
// @Router       /v1/banners [get]
func (h *CatalogHandler) ActiveBanners(c echo.Context) error {
	banners, err := h.catalog.ActiveBanners(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBannerResponses(banners))
}

// ListBanners is the back-office listing, including inactive banners.
func (h *CatalogHandler) ListBanners(c echo.Context) error {
	banners, err := h.catalog.ListBanners(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBannerResponses(banners))
}

// SaveBanner handles the back-office banner create/update form.
//
// @Summary      Create or update a banner
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      saveBannerRequest  true  "Banner fields"
// @Success      200   {object}  bannerResponse
// @Failure      400   {object}  map[string]string
// @Router       /v1/admin/banners [post]
func (h *CatalogHandler) SaveBanner(c echo.Context) error {
	var req saveBannerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	banner, err := h.catalog.SaveBanner(c.Request().Context(), ports.SaveBannerInput{
		ID:       c.Param("id"),
		Title:    req.Title,
		ImageURL: req.ImageURL,
		LinkURL:  req.LinkURL,
		Position: req.Position,
		Active:   req.Active,
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
	})
	if err != nil {
		return err
	}

	status := http.StatusOK
	if c.Param("id") == "" {
		status = http.StatusCreated
	}
	return c.JSON(status, toBannerResponse(banner))
}

// DeleteBanner handles DELETE /v1/admin/banners/:id.
func (h *CatalogHandler) DeleteBanner(c echo.Context) error {
	if err := h.catalog.DeleteBanner(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func toProductResponse(p *domain.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		Stock:       p.Stock,
		ImageURL:    p.ImageURL,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
	}
}

func toBannerResponse(b *domain.Banner) bannerResponse {
	return bannerResponse{
		ID:       b.ID,
		Title:    b.Title,
		ImageURL: b.ImageURL,
		LinkURL:  b.LinkURL,
		Position: b.Position,
		Active:   b.Active,
	}
}

func toBannerResponses(banners []*domain.Banner) []bannerResponse {
	out := make([]bannerResponse, 0, len(banners))
	for _, b := range banners {
		out = append(out, toBannerResponse(b))
	}
	return out
}
