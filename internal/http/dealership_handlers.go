package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shieldline/warranty-service/internal/http/middleware"
	"github.com/shieldline/warranty-service/internal/model"
	"github.com/shieldline/warranty-service/internal/service"
)

func (h *Handler) getDealership(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	dealership, err := h.dealerships.Get(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dealership)
}

type updateDealershipRequest struct {
	Name      *string  `json:"name"`
	MarkupPct *float64 `json:"markupPct"`
	Address   *string  `json:"address"`
	City      *string  `json:"city"`
	Province  *string  `json:"province"`
	Postal    *string  `json:"postal"`
	Phone     *string  `json:"phone"`
}

func (h *Handler) updateDealership(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req updateDealershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dealership, err := h.dealerships.Update(c.Request.Context(), principal, id, service.DealershipPatch{
		Name:      req.Name,
		MarkupPct: req.MarkupPct,
		Address:   req.Address,
		City:      req.City,
		Province:  req.Province,
		Postal:    req.Postal,
		Phone:     req.Phone,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dealership)
}

func (h *Handler) listEmployees(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	employees, err := h.dealerships.ListEmployees(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, employees)
}

func (h *Handler) createEmployee(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.Employee
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.DealershipID = id

	employee, err := h.dealerships.CreateEmployee(c.Request.Context(), principal, req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, employee)
}

func (h *Handler) updateEmployee(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.Employee
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	employee, err := h.dealerships.UpdateEmployee(c.Request.Context(), principal, id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, employee)
}

func (h *Handler) removeEmployee(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.dealerships.RemoveEmployee(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
