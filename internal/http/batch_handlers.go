package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shieldline/warranty-service/internal/http/middleware"
	"github.com/shieldline/warranty-service/internal/model"
	"github.com/shieldline/warranty-service/internal/service"
	"github.com/shieldline/warranty-service/internal/store"
)

func (h *Handler) listBatches(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	filter := store.BatchFilter{}
	if raw := c.Query("status"); raw != "" {
		status := model.BatchStatus(raw)
		filter.Status = &status
	}

	batches, err := h.batches.List(c.Request.Context(), principal, filter)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, batches)
}

func (h *Handler) getBatch(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	batch, err := h.batches.Get(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, batch)
}

type createBatchRequest struct {
	Name string `json:"name"`
}

func (h *Handler) createBatch(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req createBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	batch, err := h.batches.Create(c.Request.Context(), principal, req.Name)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, batch)
}

type createRemittanceRequest struct {
	Name        string      `json:"name"`
	ContractIDs []uuid.UUID `json:"contractIds" binding:"required"`
}

func (h *Handler) createRemittance(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req createRemittanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	batch, err := h.batches.CreateRemittance(c.Request.Context(), principal, req.Name, req.ContractIDs)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, batch)
}

type updateBatchRequest struct {
	Name        *string     `json:"name"`
	ContractIDs []uuid.UUID `json:"contractIds"`

	Status           *model.BatchStatus   `json:"status"`
	PaymentStatus    *model.PaymentStatus `json:"paymentStatus"`
	PaymentMethod    *model.PaymentMethod `json:"paymentMethod"`
	PaymentReference *string              `json:"paymentReference"`
	PaymentDate      *time.Time           `json:"paymentDate"`
	PaidAt           *time.Time           `json:"paidAt"`
}

func (h *Handler) updateBatch(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req updateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	batch, err := h.batches.Update(c.Request.Context(), principal, id, service.BatchPatch{
		Name:             req.Name,
		ContractIDs:      req.ContractIDs,
		Status:           req.Status,
		PaymentStatus:    req.PaymentStatus,
		PaymentMethod:    req.PaymentMethod,
		PaymentReference: req.PaymentReference,
		PaymentDate:      req.PaymentDate,
		PaidAt:           req.PaidAt,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, batch)
}

func (h *Handler) approveBatch(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	batch, err := h.batches.Approve(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, batch)
}

type rejectBatchRequest struct {
	Reason string `json:"reason" binding:"required"`
}

func (h *Handler) rejectBatch(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req rejectBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	batch, err := h.batches.Reject(c.Request.Context(), principal, id, req.Reason)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, batch)
}

type markPaidRequest struct {
	Method    model.PaymentMethod `json:"method" binding:"required"`
	Reference string              `json:"reference"`
	Date      time.Time           `json:"date" binding:"required"`
}

func (h *Handler) markBatchPaid(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req markPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	batch, err := h.batches.MarkPaid(c.Request.Context(), principal, id, service.MarkPaidInput{
		Method:    req.Method,
		Reference: req.Reference,
		Date:      req.Date,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, batch)
}

func (h *Handler) batchStatement(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.batches.Statement(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", result.Content)
}
