package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/shieldline/warranty-service/internal/service"
)

type Handler struct {
	contracts   *service.ContractService
	batches     *service.BatchService
	products    *service.ProductService
	dealerships *service.DealershipService
	log         zerolog.Logger
}

func NewHandler(
	contracts *service.ContractService,
	batches *service.BatchService,
	products *service.ProductService,
	dealerships *service.DealershipService,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		contracts:   contracts,
		batches:     batches,
		products:    products,
		dealerships: dealerships,
		log:         log,
	}
}

func NewRouter(h *Handler, authMiddleware gin.HandlerFunc, environment string) *gin.Engine {
	if environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Authorization", "Content-Type"},
	}))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	h.Register(router, authMiddleware)
	return router
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	protected := router.Group("/")
	protected.Use(authMiddleware)

	protected.GET("/contracts", h.listContracts)
	protected.POST("/contracts", h.createContract)
	protected.GET("/contracts/:id", h.getContract)
	protected.PATCH("/contracts/:id", h.updateContract)
	protected.DELETE("/contracts/:id", h.removeContract)
	protected.POST("/contracts/:id/submit", h.submitContract)
	protected.GET("/contracts/:id/pdf", h.contractPDF)
	protected.GET("/contracts/:id/documents", h.listDocuments)
	protected.POST("/contracts/:id/documents", h.createDocument)
	protected.DELETE("/documents/:id", h.removeDocument)

	protected.GET("/batches", h.listBatches)
	protected.POST("/batches", h.createBatch)
	protected.GET("/batches/:id", h.getBatch)
	protected.PATCH("/batches/:id", h.updateBatch)
	protected.POST("/batches/remittance", h.createRemittance)
	protected.POST("/batches/:id/approve", h.approveBatch)
	protected.POST("/batches/:id/reject", h.rejectBatch)
	protected.POST("/batches/:id/pay", h.markBatchPaid)
	protected.GET("/batches/:id/statement", h.batchStatement)

	protected.GET("/products", h.listProducts)
	protected.POST("/products", h.createProduct)
	protected.GET("/products/:id", h.getProduct)
	protected.PATCH("/products/:id", h.updateProduct)
	protected.DELETE("/products/:id", h.removeProduct)
	protected.POST("/products/:id/publish", h.publishProduct)
	protected.GET("/products/:id/pricing", h.listPricing)
	protected.POST("/products/:id/pricing", h.createPricing)
	protected.DELETE("/pricing/:id", h.removePricing)
	protected.GET("/products/:id/addons", h.listAddons)
	protected.POST("/products/:id/addons", h.createAddon)
	protected.PATCH("/addons/:id", h.updateAddon)
	protected.DELETE("/addons/:id", h.removeAddon)
	protected.POST("/marketplace/eligible", h.listEligibleProducts)

	protected.GET("/dealerships/:id", h.getDealership)
	protected.PATCH("/dealerships/:id", h.updateDealership)
	protected.GET("/dealerships/:id/employees", h.listEmployees)
	protected.POST("/dealerships/:id/employees", h.createEmployee)
	protected.PATCH("/employees/:id", h.updateEmployee)
	protected.DELETE("/employees/:id", h.removeEmployee)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidTransition), errors.Is(err, service.ErrLocked):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}
