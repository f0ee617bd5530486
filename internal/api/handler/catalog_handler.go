package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/chickensystem/restaurant-api/internal/core/domain"
	"github.com/chickensystem/restaurant-api/internal/core/ports"
)

// CatalogHandler serves products and restaurant locations.
type CatalogHandler struct {
	products  ports.ProductService
	locations ports.LocationService
}

func NewCatalogHandler(products ports.ProductService, locations ports.LocationService) *CatalogHandler {
	return &CatalogHandler{products: products, locations: locations}
}

// ListProducts handles GET /api/products.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Param        category  query     string  false  "Filter by category"
// @Param        popular   query     bool    false  "Only popular products"
// @Param        page      query     int     false  "Page number"     default(1)
// @Param        limit     query     int     false  "Items per page"  default(20)
// @Success      200       {object}  listResponse[domain.Product]
// @Router       /api/products [get]
func (h *CatalogHandler) ListProducts(c echo.Context) error {
	page, err := ctxPage(c)
	if err != nil {
		return err
	}
	filter := ports.ProductFilter{Category: c.QueryParam("category")}
	if raw := c.QueryParam("popular"); raw != "" {
		popular, err := strconv.ParseBool(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "popular must be true or false")
		}
		filter.Popular = &popular
	}

	res, err := h.products.List(c.Request().Context(), filter, page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toList(res, identity[*domain.Product]))
}

// GetProduct handles GET /api/products/:id.
//
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  domain.Product
// @Failure      404  {object}  errorResponse
// @Router       /api/products/{id} [get]
func (h *CatalogHandler) GetProduct(c echo.Context) error {
	p, err := h.products.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// CreateProduct handles POST /api/products.
//
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      productRequest  true  "Product"
// @Success      201   {object}  domain.Product
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/products [post]
func (h *CatalogHandler) CreateProduct(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}
	var req productRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	p, err := h.products.Create(c.Request().Context(), caller, toProductInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, p)
}

// UpdateProduct handles PUT /api/products/:id.
//
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Product id"
// @Param        body  body      productRequest  true  "Product"
// @Success      200   {object}  domain.Product
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/products/{id} [put]
func (h *CatalogHandler) UpdateProduct(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}
	var req productRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	p, err := h.products.Update(c.Request().Context(), caller, c.Param("id"), toProductInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// DeleteProduct handles DELETE /api/products/:id.
//
// @Summary      Delete a product
// @Tags         products
// @Security     BearerAuth
// @Param        id   path  string  true  "Product id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /api/products/{id} [delete]
func (h *CatalogHandler) DeleteProduct(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}
	if err := h.products.Delete(c.Request().Context(), caller, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListLocations handles GET /api/locations.
//
// @Summary      List restaurant locations
// @Tags         locations
// @Produce      json
// @Param        page   query     int  false  "Page number"     default(1)
// @Param        limit  query     int  false  "Items per page"  default(20)
// @Success      200    {object}  listResponse[domain.Location]
// @Router       /api/locations [get]
func (h *CatalogHandler) ListLocations(c echo.Context) error {
	page, err := ctxPage(c)
	if err != nil {
		return err
	}
	res, err := h.locations.List(c.Request().Context(), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toList(res, identity[*domain.Location]))
}

// CreateLocation handles POST /api/locations.
//
// @Summary      Create a location
// @Tags         locations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      locationRequest  true  "Location"
// @Success      201   {object}  domain.Location
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/locations [post]
func (h *CatalogHandler) CreateLocation(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}
	var req locationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	l, err := h.locations.Create(c.Request().Context(), caller, toLocationInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, l)
}

// UpdateLocation handles PUT /api/locations/:id.
//
// @Summary      Update a location
// @Tags         locations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Location id"
// @Param        body  body      locationRequest  true  "Location"
// @Success      200   {object}  domain.Location
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/locations/{id} [put]
func (h *CatalogHandler) UpdateLocation(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}
	var req locationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	l, err := h.locations.Update(c.Request().Context(), caller, c.Param("id"), toLocationInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, l)
}

// DeleteLocation handles DELETE /api/locations/:id.
//
// @Summary      Delete a location
// @Tags         locations
// @Security     BearerAuth
// @Param        id   path  string  true  "Location id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /api/locations/{id} [delete]
func (h *CatalogHandler) DeleteLocation(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}
	if err := h.locations.Delete(c.Request().Context(), caller, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
