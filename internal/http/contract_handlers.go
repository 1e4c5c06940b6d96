package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shieldline/warranty-service/internal/http/middleware"
	"github.com/shieldline/warranty-service/internal/model"
	"github.com/shieldline/warranty-service/internal/service"
	"github.com/shieldline/warranty-service/internal/store"
)

type createContractRequest struct {
	ContractNumber string        `json:"contractNumber"`
	Vehicle        model.Vehicle `json:"vehicle"`
	OdometerKm     *int64        `json:"odometerKm"`
	CustomerName   string        `json:"customerName"`
}

type updateContractRequest struct {
	ContractNumber   *string        `json:"contractNumber"`
	Vehicle          *model.Vehicle `json:"vehicle"`
	OdometerKm       *int64         `json:"odometerKm"`
	ProductID        *uuid.UUID     `json:"productId"`
	ProductPricingID *uuid.UUID     `json:"productPricingId"`
	SelectedAddonIDs []uuid.UUID    `json:"selectedAddonIds"`

	CustomerName     *string `json:"customerName"`
	CustomerEmail    *string `json:"customerEmail"`
	CustomerPhone    *string `json:"customerPhone"`
	CustomerAddress  *string `json:"customerAddress"`
	CustomerCity     *string `json:"customerCity"`
	CustomerProvince *string `json:"customerProvince"`
	CustomerPostal   *string `json:"customerPostal"`

	Status *model.ContractStatus `json:"status"`
}

func (r updateContractRequest) patch() service.ContractPatch {
	return service.ContractPatch{
		ContractNumber:   r.ContractNumber,
		Vehicle:          r.Vehicle,
		OdometerKm:       r.OdometerKm,
		ProductID:        r.ProductID,
		ProductPricingID: r.ProductPricingID,
		SelectedAddonIDs: r.SelectedAddonIDs,
		CustomerName:     r.CustomerName,
		CustomerEmail:    r.CustomerEmail,
		CustomerPhone:    r.CustomerPhone,
		CustomerAddress:  r.CustomerAddress,
		CustomerCity:     r.CustomerCity,
		CustomerProvince: r.CustomerProvince,
		CustomerPostal:   r.CustomerPostal,
		Status:           r.Status,
	}
}

func (h *Handler) listContracts(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	filter := store.ContractFilter{}
	if raw := c.Query("status"); raw != "" {
		status := model.ContractStatus(raw)
		filter.Status = &status
	}

	contracts, err := h.contracts.List(c.Request.Context(), principal, filter)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, contracts)
}

func (h *Handler) getContract(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	contract, err := h.contracts.Get(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, contract)
}

func (h *Handler) createContract(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req createContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contract, err := h.contracts.Create(c.Request.Context(), principal, service.CreateContractInput{
		ContractNumber: req.ContractNumber,
		Vehicle:        req.Vehicle,
		OdometerKm:     req.OdometerKm,
		CustomerName:   req.CustomerName,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, contract)
}

func (h *Handler) updateContract(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req updateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contract, err := h.contracts.Update(c.Request.Context(), principal, id, req.patch())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, contract)
}

// submitContract is the DRAFT to SOLD shortcut; the same validation runs as
// for a PATCH carrying status=SOLD.
func (h *Handler) submitContract(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	sold := model.ContractStatusSold
	contract, err := h.contracts.Update(c.Request.Context(), principal, id, service.ContractPatch{Status: &sold})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, contract)
}

func (h *Handler) removeContract(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.contracts.Remove(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) contractPDF(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.contracts.Document(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, "application/pdf", result.Content)
}

type createDocumentRequest struct {
	Name        string `json:"name" binding:"required"`
	ContentType string `json:"contentType"`
	StorageKey  string `json:"storageKey" binding:"required"`
	SizeBytes   int64  `json:"sizeBytes"`
}

func (h *Handler) listDocuments(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	docs, err := h.dealerships.ListDocuments(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

func (h *Handler) createDocument(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req createDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doc, err := h.dealerships.CreateDocument(c.Request.Context(), principal, model.Document{
		ContractID:  id,
		Name:        req.Name,
		ContentType: req.ContentType,
		StorageKey:  req.StorageKey,
		SizeBytes:   req.SizeBytes,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, doc)
}

func (h *Handler) removeDocument(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.dealerships.RemoveDocument(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
