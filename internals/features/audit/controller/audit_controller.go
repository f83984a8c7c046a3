package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"rotasiku_backend/internals/constants"
	"rotasiku_backend/internals/features/audit/model"
	helper "rotasiku_backend/internals/helpers"
	helperAuth "rotasiku_backend/internals/helpers/auth"
)

type AuditController struct {
	DB *gorm.DB
}

func NewAuditController(db *gorm.DB) *AuditController {
	return &AuditController{DB: db}
}

// GET /a/audit-events?type=&user_id=&page=&per_page=
// Hanya admin; read-only, urut terbaru dulu.
func (ctrl *AuditController) List(c *fiber.Ctx) error {
	_, _, err := helperAuth.RequireCapability(c, constants.ActionViewAuditLog)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 50, 200)

	q := ctrl.DB.WithContext(c.UserContext()).Model(&model.AuditEventModel{})
	if t := c.Query("type"); t != "" {
		q = q.Where("audit_event_type = ?", t)
	}
	if uid := c.Query("user_id"); uid != "" {
		userID, perr := uuid.Parse(uid)
		if perr != nil {
			return fiber.NewError(fiber.StatusBadRequest, "user_id tidak valid")
		}
		q = q.Where("audit_event_user_id = ?", userID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		log.Printf("list audit events count err: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil audit log")
	}

	var events []model.AuditEventModel
	if err := q.Order("audit_event_occurred_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&events).Error; err != nil {
		log.Printf("list audit events err: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil audit log")
	}

	return helper.JsonList(c, "ok", events,
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}
