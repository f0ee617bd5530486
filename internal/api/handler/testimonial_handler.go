package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chickensystem/restaurant-api/internal/core/ports"
)

type TestimonialHandler struct {
	service ports.TestimonialService
}

func NewTestimonialHandler(service ports.TestimonialService) *TestimonialHandler {
	return &TestimonialHandler{service: service}
}

// ListPublic handles GET /api/testimonials. Only approved testimonials are listed.
//
// @Summary      List approved testimonials
// @Tags         testimonials
// @Produce      json
// @Param        page   query     int  false  "Page number"     default(1)
// @Param        limit  query     int  false  "Items per page"  default(20)
// @Success      200    {object}  listResponse[testimonialResponse]
// @Router       /api/testimonials [get]
func (h *TestimonialHandler) ListPublic(c echo.Context) error {
	page, err := ctxPage(c)
	if err != nil {
		return err
	}
	res, err := h.service.ListPublic(c.Request().Context(), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toList(res, toTestimonialResponse))
}

// Create handles POST /api/testimonials.
//
// @Summary      Submit a testimonial
// @Tags         testimonials
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTestimonialRequest  true  "Testimonial"
// @Success      201   {object}  domain.Testimonial
// @Failure      400   {object}  errorResponse
// @Router       /api/testimonials [post]
func (h *TestimonialHandler) Create(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}
	var req createTestimonialRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	t, err := h.service.Create(c.Request().Context(), caller, ports.CreateTestimonialInput{Content: req.Content, Rating: req.Rating})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, t)
}

// ListPending handles GET /api/testimonials/pending.
//
// @Summary      Moderation queue
// @Tags         testimonials
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number"     default(1)
// @Param        limit  query     int  false  "Items per page"  default(20)
// @Success      200    {object}  listResponse[testimonialResponse]
// @Failure      403    {object}  errorResponse
// @Router       /api/testimonials/pending [get]
func (h *TestimonialHandler) ListPending(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}
	page, err := ctxPage(c)
	if err != nil {
		return err
	}
	res, err := h.service.ListPending(c.Request().Context(), caller, page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toList(res, toTestimonialResponse))
}

// Approve handles PUT /api/testimonials/:id/approve.
//
// @Summary      Approve a testimonial
// @Tags         testimonials
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Testimonial id"
// @Success      200  {object}  domain.Testimonial
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/testimonials/{id}/approve [put]
func (h *TestimonialHandler) Approve(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}
	t, err := h.service.Approve(c.Request().Context(), caller, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}
