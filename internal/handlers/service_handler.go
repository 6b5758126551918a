package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/services-marketplace/internal/httperr"
	"github.com/BruksfildServices01/services-marketplace/internal/httpresp"
	"github.com/BruksfildServices01/services-marketplace/internal/middleware"
	"github.com/BruksfildServices01/services-marketplace/internal/models"
)

type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
}

type UpdateServiceRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Active      *bool    `json:"active"`
	Category    *string  `json:"category"`
}

// --------- Helpers ---------

func (h *ServiceHandler) providerFor(c *gin.Context) (*models.Provider, bool) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var provider models.Provider
	if err := h.db.Where("user_id = ?", userID).First(&provider).Error; err != nil {
		httperr.Forbidden(c, "not_a_provider", "Apenas prestadores gerenciam serviços.")
		return nil, false
	}
	return &provider, true
}

// --------- Handlers ---------

func (h *ServiceHandler) Create(c *gin.Context) {
	provider, ok := h.providerFor(c)
	if !ok {
		return
	}

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	svc := models.Service{
		ProviderID:  provider.ID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Active:      true,
	}

	if err := h.db.Create(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Erro ao criar serviço.")
		return
	}

	c.JSON(201, svc)
}

func (h *ServiceHandler) ListMine(c *gin.Context) {
	provider, ok := h.providerFor(c)
	if !ok {
		return
	}

	var services []models.Service
	if err := h.db.
		Where("provider_id = ?", provider.ID).
		Order("created_at DESC").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	httpresp.List(c, services)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	provider, ok := h.providerFor(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Id inválido.")
		return
	}

	var svc models.Service
	if err := h.db.
		Where("id = ? AND provider_id = ?", id, provider.ID).
		First(&svc).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Serviço não encontrado.")
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.Title != nil {
		svc.Title = *req.Title
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}
	if req.Active != nil {
		svc.Active = *req.Active
	}
	if req.Category != nil {
		svc.Category = *req.Category
	}

	if err := h.db.Save(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Erro ao atualizar serviço.")
		return
	}

	c.JSON(200, svc)
}

// ListByProvider é público: catálogo de um prestador.
func (h *ServiceHandler) ListByProvider(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Id inválido.")
		return
	}

	var services []models.Service
	if err := h.db.
		Where("provider_id = ? AND active = ?", id, true).
		Order("created_at DESC").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	httpresp.List(c, services)
}
