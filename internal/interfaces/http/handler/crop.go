package handler

import (
	agroapp "github.com/agro/backend/internal/application/agro"
	"github.com/agro/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// CropHandler handles crop endpoints
type CropHandler struct {
	BaseHandler
	cropService CropService
}

// NewCropHandler creates a new CropHandler
func NewCropHandler(cropService CropService) *CropHandler {
	return &CropHandler{cropService: cropService}
}

// List godoc
// @Summary      List crops with their property
// @Tags         crops
// @Produce      json
// @Param        search query string false "Search by name or season"
// @Success      200 {object} dto.Response
// @Router       /crops [get]
func (h *CropHandler) List(c *gin.Context) {
	query := dto.DefaultListRequest()
	if !h.BindQuery(c, &query) {
		return
	}

	crops, total, err := h.cropService.List(c.Request.Context(), toListFilter(query))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, toCropResponses(crops), total, query.Page, query.PageSize)
}

// GetByID godoc
// @Summary      Get crop by ID
// @Tags         crops
// @Produce      json
// @Param        id path string true "Crop ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /crops/{id} [get]
func (h *CropHandler) GetByID(c *gin.Context) {
	id, ok := h.ParseID(c, "id", "crop")
	if !ok {
		return
	}

	crop, err := h.cropService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toCropResponse(*crop))
}

// Create godoc
// @Summary      Plant a crop on a property
// @Description  Accepts {name, season, property:{id}} or the older {nome, safra, propriedade:{id}}
// @Tags         crops
// @Accept       json
// @Produce      json
// @Param        request body CreateCropRequest true "Crop"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /crops [post]
func (h *CropHandler) Create(c *gin.Context) {
	var req CreateCropRequest
	if !h.BindJSON(c, &req) {
		return
	}

	name, season, property := req.normalized()
	crop, err := h.cropService.Create(c.Request.Context(), agroapp.CreateCropRequest{
		PropertyID: refID(property),
		Name:       name,
		Season:     season,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toCropResponse(*crop))
}

// Update godoc
// @Summary      Update a crop
// @Tags         crops
// @Accept       json
// @Produce      json
// @Param        id path string true "Crop ID"
// @Param        request body UpdateCropRequest true "Fields to change"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /crops/{id} [put]
func (h *CropHandler) Update(c *gin.Context) {
	id, ok := h.ParseID(c, "id", "crop")
	if !ok {
		return
	}

	var req UpdateCropRequest
	if !h.BindJSON(c, &req) {
		return
	}

	crop, err := h.cropService.Update(c.Request.Context(), id, agroapp.UpdateCropRequest{
		PropertyID: refID(req.Property),
		Name:       req.Name,
		Season:     req.Season,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toCropResponse(*crop))
}

// Delete godoc
// @Summary      Delete a crop
// @Tags         crops
// @Param        id path string true "Crop ID"
// @Success      204
// @Failure      404 {object} dto.Response
// @Router       /crops/{id} [delete]
func (h *CropHandler) Delete(c *gin.Context) {
	id, ok := h.ParseID(c, "id", "crop")
	if !ok {
		return
	}

	if err := h.cropService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
