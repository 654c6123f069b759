package handler

import (
	agroapp "github.com/agro/backend/internal/application/agro"
	"github.com/agro/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// ProducerHandler handles producer endpoints
type ProducerHandler struct {
	BaseHandler
	producerService ProducerService
}

// NewProducerHandler creates a new ProducerHandler
func NewProducerHandler(producerService ProducerService) *ProducerHandler {
	return &ProducerHandler{producerService: producerService}
}

// List godoc
// @Summary      List producers
// @Tags         producers
// @Produce      json
// @Param        search query string false "Search by name or tax ID"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size, 0 returns every producer" maximum(100)
// @Success      200 {object} dto.Response
// @Router       /producers [get]
func (h *ProducerHandler) List(c *gin.Context) {
	query := dto.DefaultListRequest()
	if !h.BindQuery(c, &query) {
		return
	}

	producers, total, err := h.producerService.List(c.Request.Context(), toListFilter(query))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, toProducerResponses(producers), total, query.Page, query.PageSize)
}

// GetByID godoc
// @Summary      Get producer by ID
// @Tags         producers
// @Produce      json
// @Param        id path string true "Producer ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /producers/{id} [get]
func (h *ProducerHandler) GetByID(c *gin.Context) {
	id, ok := h.ParseID(c, "id", "producer")
	if !ok {
		return
	}

	producer, err := h.producerService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toProducerResponse(*producer))
}

// Create godoc
// @Summary      Register a producer
// @Tags         producers
// @Accept       json
// @Produce      json
// @Param        request body CreateProducerRequest true "Producer"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Router       /producers [post]
func (h *ProducerHandler) Create(c *gin.Context) {
	var req CreateProducerRequest
	if !h.BindJSON(c, &req) {
		return
	}

	producer, err := h.producerService.Register(c.Request.Context(), agroapp.RegisterProducerRequest{
		TaxID: req.TaxID,
		Name:  req.Name,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toProducerResponse(*producer))
}

// Update godoc
// @Summary      Update a producer
// @Tags         producers
// @Accept       json
// @Produce      json
// @Param        id path string true "Producer ID"
// @Param        request body UpdateProducerRequest true "Fields to change"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Router       /producers/{id} [put]
func (h *ProducerHandler) Update(c *gin.Context) {
	id, ok := h.ParseID(c, "id", "producer")
	if !ok {
		return
	}

	var req UpdateProducerRequest
	if !h.BindJSON(c, &req) {
		return
	}

	producer, err := h.producerService.Update(c.Request.Context(), id, agroapp.UpdateProducerRequest{
		TaxID: req.TaxID,
		Name:  req.Name,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toProducerResponse(*producer))
}

// Delete godoc
// @Summary      Delete a producer with its properties and crops
// @Tags         producers
// @Param        id path string true "Producer ID"
// @Success      204
// @Failure      404 {object} dto.Response
// @Router       /producers/{id} [delete]
func (h *ProducerHandler) Delete(c *gin.Context) {
	id, ok := h.ParseID(c, "id", "producer")
	if !ok {
		return
	}

	if err := h.producerService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
