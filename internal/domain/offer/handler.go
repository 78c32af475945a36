package offer

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mavinci/internal/middleware"
	"mavinci/internal/pkg/response"
	"mavinci/internal/storage"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Calculate handles POST /api/v1/offers/calculate
// @Summary Calculate offer totals
// @Tags Offers
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CalculateRequest true "Lines"
// @Success 200 {object} CalculateResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /offers/calculate [post]
func (h *Handler) Calculate(c *gin.Context) {
	var req CalculateRequest
	if !response.BindJSON(c, &req) {
		return
	}
	res, err := h.service.Calculate(req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// ConvertPrice handles POST /api/v1/offers/price/convert
// @Summary Convert between net and gross
// @Tags Offers
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body ConvertRequest true "Price"
// @Success 200 {object} PriceFields
// @Failure 400 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /offers/price/convert [post]
func (h *Handler) ConvertPrice(c *gin.Context) {
	var req ConvertRequest
	if !response.BindJSON(c, &req) {
		return
	}
	res, err := h.service.ConvertPrice(req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// Submit handles POST /api/v1/offers
// @Summary Submit offer
// @Tags Offers
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body SubmitRequest true "Offer with lines"
// @Success 201 {object} OfferDetails
// @Failure 400 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /offers [post]
func (h *Handler) Submit(c *gin.Context) {
	var req SubmitRequest
	if !response.BindJSON(c, &req) {
		return
	}
	res, err := h.service.Submit(c.Request.Context(), middleware.EmployeeID(c), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, res)
}

// Get handles GET /api/v1/offers/:id
// @Summary Get offer
// @Tags Offers
// @Security BearerAuth
// @Produce json
// @Param id path int true "Offer ID"
// @Success 200 {object} OfferDetails
// @Failure 404 {object} map[string]interface{}
// @Router /offers/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}
	res, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// SetStatus handles PATCH /api/v1/offers/:id/status
// @Summary Change offer status
// @Tags Offers
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Offer ID"
// @Param request body UpdateStatusRequest true "New status"
// @Success 200 {object} OfferDetails
// @Failure 404 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /offers/{id}/status [patch]
func (h *Handler) SetStatus(c *gin.Context) {
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}
	var req UpdateStatusRequest
	if !response.BindJSON(c, &req) {
		return
	}
	res, err := h.service.SetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// AddItem handles POST /api/v1/offers/:id/items
// @Summary Add offer line
// @Tags Offers
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Offer ID"
// @Param request body LineInput true "Line"
// @Success 201 {object} OfferDetails
// @Failure 404 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /offers/{id}/items [post]
func (h *Handler) AddItem(c *gin.Context) {
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}
	var req LineInput
	if !response.BindJSON(c, &req) {
		return
	}
	res, err := h.service.AddItem(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, res)
}

// UpdateItem handles PATCH /api/v1/offers/:id/items/:item_id
// @Summary Update offer line
// @Tags Offers
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Offer ID"
// @Param item_id path int true "Line ID"
// @Param request body UpdateItemRequest true "Changed fields"
// @Success 200 {object} OfferDetails
// @Failure 404 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /offers/{id}/items/{item_id} [patch]
func (h *Handler) UpdateItem(c *gin.Context) {
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}
	itemID, ok := response.ParamID(c, "item_id")
	if !ok {
		return
	}
	var req UpdateItemRequest
	if !response.BindJSON(c, &req) {
		return
	}
	res, err := h.service.UpdateItem(c.Request.Context(), id, itemID, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// RemoveItem handles DELETE /api/v1/offers/:id/items/:item_id
// @Summary Remove offer line
// @Tags Offers
// @Security BearerAuth
// @Produce json
// @Param id path int true "Offer ID"
// @Param item_id path int true "Line ID"
// @Success 200 {object} OfferDetails
// @Failure 404 {object} map[string]interface{}
// @Router /offers/{id}/items/{item_id} [delete]
func (h *Handler) RemoveItem(c *gin.Context) {
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}
	itemID, ok := response.ParamID(c, "item_id")
	if !ok {
		return
	}
	res, err := h.service.RemoveItem(c.Request.Context(), id, itemID)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// Export handles GET /api/v1/offers/:id/export
// @Summary Export offer to Excel
// @Tags Offers
// @Security BearerAuth
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path int true "Offer ID"
// @Success 200 {file} binary
// @Failure 404 {object} map[string]interface{}
// @Router /offers/{id}/export [get]
func (h *Handler) Export(c *gin.Context) {
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}
	data, name, err := h.service.Export(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// ListProducts handles GET /api/v1/offer-products
// @Summary List offer products
// @Tags Offer products
// @Security BearerAuth
// @Produce json
// @Param all query bool false "Include inactive products"
// @Success 200 {object} []ProductDetails
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /offer-products [get]
func (h *Handler) ListProducts(c *gin.Context) {
	res, err := h.service.ListProducts(c.Request.Context(), c.Query("all") != "true")
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// CreateProduct handles POST /api/v1/offer-products
// @Summary Create offer product
// @Tags Offer products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CreateProductRequest true "Product"
// @Success 201 {object} ProductDetails
// @Failure 400 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /offer-products [post]
func (h *Handler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if !response.BindJSON(c, &req) {
		return
	}
	res, err := h.service.CreateProduct(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, res)
}

// GetProduct handles GET /api/v1/offer-products/:id
// @Summary Get offer product
// @Tags Offer products
// @Security BearerAuth
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} ProductDetails
// @Failure 404 {object} map[string]interface{}
// @Router /offer-products/{id} [get]
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}
	res, err := h.service.GetProduct(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// UploadProductPage handles POST /api/v1/offer-products/:id/page (multipart "file")
// @Summary Upload product page
// @Tags Offer products
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Product ID"
// @Param file formData file true "Page file"
// @Success 200 {object} ProductDetails
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 413 {object} map[string]interface{}
// @Router /offer-products/{id}/page [post]
func (h *Handler) UploadProductPage(c *gin.Context) {
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "NO_FILE", "common.bad_request")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.Internal(c, err)
		return
	}
	defer file.Close()

	res, err := h.service.UploadProductPage(c.Request.Context(), id, fileHeader.Filename, file)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrOfferNotFound):
		response.Fail(c, http.StatusNotFound, "OFFER_NOT_FOUND", "offer.not_found")
	case errors.Is(err, ErrItemNotFound):
		response.Fail(c, http.StatusNotFound, "OFFER_ITEM_NOT_FOUND", "offer.item_not_found")
	case errors.Is(err, ErrProductNotFound):
		response.Fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "offer.product_not_found")
	case errors.Is(err, ErrInvalidQuantity):
		response.Fail(c, http.StatusUnprocessableEntity, "INVALID_QUANTITY", "offer.invalid_quantity")
	case errors.Is(err, ErrInvalidPrice):
		response.Fail(c, http.StatusUnprocessableEntity, "INVALID_PRICE", "offer.invalid_price")
	case errors.Is(err, ErrInvalidDiscount):
		response.Fail(c, http.StatusUnprocessableEntity, "INVALID_DISCOUNT", "offer.invalid_discount")
	case errors.Is(err, ErrInvalidVAT):
		response.Fail(c, http.StatusUnprocessableEntity, "INVALID_VAT", "offer.invalid_vat")
	case errors.Is(err, ErrEmptyOffer):
		response.Fail(c, http.StatusUnprocessableEntity, "EMPTY_OFFER", "offer.empty")
	case errors.Is(err, ErrInvalidStatus):
		response.Fail(c, http.StatusUnprocessableEntity, "INVALID_STATUS", "common.validation")
	case errors.Is(err, ErrExportFailed):
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, "EXPORT_FAILED", "offer.export_failed")
	default:
		if storage.FailUpload(c, err) {
			return
		}
		response.Internal(c, err)
	}
}
