package handler

import (
	agroapp "github.com/agro/backend/internal/application/agro"
	"github.com/agro/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// PropertyHandler handles property endpoints
type PropertyHandler struct {
	BaseHandler
	propertyService PropertyService
}

// NewPropertyHandler creates a new PropertyHandler
func NewPropertyHandler(propertyService PropertyService) *PropertyHandler {
	return &PropertyHandler{propertyService: propertyService}
}

// List godoc
// @Summary      List properties with their producer and crops
// @Tags         properties
// @Produce      json
// @Param        search query string false "Search by name, city or state"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size, 0 returns every property" maximum(100)
// @Success      200 {object} dto.Response
// @Router       /properties [get]
func (h *PropertyHandler) List(c *gin.Context) {
	query := dto.DefaultListRequest()
	if !h.BindQuery(c, &query) {
		return
	}

	properties, total, err := h.propertyService.List(c.Request.Context(), toListFilter(query))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, toPropertyResponses(properties), total, query.Page, query.PageSize)
}

// GetByID godoc
// @Summary      Get property by ID
// @Tags         properties
// @Produce      json
// @Param        id path string true "Property ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /properties/{id} [get]
func (h *PropertyHandler) GetByID(c *gin.Context) {
	id, ok := h.ParseID(c, "id", "property")
	if !ok {
		return
	}

	property, err := h.propertyService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toPropertyResponse(*property))
}

// ListByProducer godoc
// @Summary      List the properties of a producer
// @Tags         properties
// @Produce      json
// @Param        producerId path string true "Producer ID"
// @Success      200 {object} dto.Response
// @Router       /properties/producer/{producerId} [get]
func (h *PropertyHandler) ListByProducer(c *gin.Context) {
	producerID, ok := h.ParseID(c, "producerId", "producer")
	if !ok {
		return
	}

	properties, err := h.propertyService.ListByProducer(c.Request.Context(), producerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toPropertyResponses(properties))
}

// Create godoc
// @Summary      Register a property, optionally with its crops
// @Tags         properties
// @Accept       json
// @Produce      json
// @Param        request body CreatePropertyRequest true "Property"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /properties [post]
func (h *PropertyHandler) Create(c *gin.Context) {
	var req CreatePropertyRequest
	if !h.BindJSON(c, &req) {
		return
	}

	appReq := agroapp.RegisterPropertyRequest{
		ProducerID:       refID(req.Producer),
		Name:             req.Name,
		City:             req.City,
		State:            req.State,
		TotalArea:        toDecimal(req.TotalArea),
		AgriculturalArea: toDecimal(req.AgriculturalArea),
		VegetationArea:   toDecimal(req.VegetationArea),
	}
	for _, crop := range req.Crops {
		appReq.Crops = append(appReq.Crops, agroapp.CropInput{Name: crop.Name, Season: crop.Season})
	}

	property, err := h.propertyService.Register(c.Request.Context(), appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toPropertyResponse(*property))
}

// Update godoc
// @Summary      Update a property
// @Tags         properties
// @Accept       json
// @Produce      json
// @Param        id path string true "Property ID"
// @Param        request body UpdatePropertyRequest true "Fields to change"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /properties/{id} [put]
func (h *PropertyHandler) Update(c *gin.Context) {
	id, ok := h.ParseID(c, "id", "property")
	if !ok {
		return
	}

	var req UpdatePropertyRequest
	if !h.BindJSON(c, &req) {
		return
	}

	property, err := h.propertyService.Update(c.Request.Context(), id, agroapp.UpdatePropertyRequest{
		ProducerID:       refID(req.Producer),
		Name:             req.Name,
		City:             req.City,
		State:            req.State,
		TotalArea:        toDecimalPtr(req.TotalArea),
		AgriculturalArea: toDecimalPtr(req.AgriculturalArea),
		VegetationArea:   toDecimalPtr(req.VegetationArea),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toPropertyResponse(*property))
}

// Delete godoc
// @Summary      Delete a property with its crops
// @Tags         properties
// @Param        id path string true "Property ID"
// @Success      204
// @Failure      404 {object} dto.Response
// @Router       /properties/{id} [delete]
func (h *PropertyHandler) Delete(c *gin.Context) {
	id, ok := h.ParseID(c, "id", "property")
	if !ok {
		return
	}

	if err := h.propertyService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
