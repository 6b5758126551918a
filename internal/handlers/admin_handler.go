package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/services-marketplace/internal/audit"
	"github.com/BruksfildServices01/services-marketplace/internal/httperr"
	"github.com/BruksfildServices01/services-marketplace/internal/middleware"
	"github.com/BruksfildServices01/services-marketplace/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type AdminHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewAdminHandler(db *gorm.DB, dispatcher *audit.Dispatcher) *AdminHandler {
	return &AdminHandler{db: db, audit: dispatcher}
}

// --------- Requests ---------

type VerifyProviderRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// VERIFY PROVIDER
// ======================================================

// VerifyProvider muda o status de verificação do prestador. Não toca
// em agendamentos existentes: a elegibilidade só é checada na criação.
func (h *AdminHandler) VerifyProvider(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Id inválido.")
		return
	}

	var req VerifyProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	switch req.Status {
	case models.VerificationPending, models.VerificationVerified, models.VerificationRejected:
	default:
		httperr.BadRequest(c, "invalid_status", "Status de verificação desconhecido.")
		return
	}

	var provider models.Provider
	if err := h.db.First(&provider, id).Error; err != nil {
		httperr.NotFound(c, "provider_not_found", "Prestador não encontrado.")
		return
	}

	provider.VerificationStatus = req.Status
	if err := h.db.Save(&provider).Error; err != nil {
		httperr.Internal(c, "failed_to_update_provider", "Erro ao atualizar prestador.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "provider_verification_changed",
		Entity:   "provider",
		EntityID: &provider.ID,
		Metadata: map[string]any{"status": req.Status},
	})

	c.JSON(200, provider)
}

// ======================================================
// AUDIT LOGS
// ======================================================

func (h *AdminHandler) ListAuditLogs(c *gin.Context) {
	action := c.Query("action")
	entity := c.Query("entity")

	pageStr := c.DefaultQuery("page", "1")
	limitStr := c.DefaultQuery("limit", "50")

	page, _ := strconv.Atoi(pageStr)
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(limitStr)
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	offset := (page - 1) * limit

	q := h.db.Model(&models.AuditLog{})

	if action != "" {
		q = q.Where("action = ?", action)
	}
	if entity != "" {
		q = q.Where("entity = ?", entity)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "audit_count_failed", "Erro ao contar logs.")
		return
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error; err != nil {

		httperr.Internal(c, "audit_list_failed", "Erro ao listar logs.")
		return
	}

	c.JSON(200, gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"logs":  logs,
	})
}
