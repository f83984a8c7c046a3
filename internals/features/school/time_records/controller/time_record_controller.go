package controller

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"rotasiku_backend/internals/constants"
	rediscache "rotasiku_backend/internals/databases/rediscache"
	auditmodel "rotasiku_backend/internals/features/audit/model"
	auditservice "rotasiku_backend/internals/features/audit/service"
	"rotasiku_backend/internals/features/school/time_records/dto"
	"rotasiku_backend/internals/features/school/time_records/model"
	helper "rotasiku_backend/internals/helpers"
	helperAuth "rotasiku_backend/internals/helpers/auth"
)

// TimeRecordController: manajemen record di luar jalur clock —
// listing, approval, dan delete. Mutasi clock tetap di ClockController.
type TimeRecordController struct {
	DB    *gorm.DB
	Audit *auditservice.Dispatcher
	Cache *rediscache.Client
}

func NewTimeRecordController(db *gorm.DB, audit *auditservice.Dispatcher, cache *rediscache.Client) *TimeRecordController {
	return &TimeRecordController{DB: db, Audit: audit, Cache: cache}
}

/* ===================== LISTING ===================== */

// GET /u/time-records?rotation_id=&status=&page=&per_page=
// Student hanya melihat record miliknya sendiri.
func (ctrl *TimeRecordController) ListMine(c *fiber.Ctx) error {
	studentID, _, err := helperAuth.RequireCapability(c, constants.ActionViewOwnRecords)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.WithContext(c.UserContext()).
		Model(&model.TimeRecordModel{}).
		Where("time_record_student_id = ?", studentID)

	if rid := c.Query("rotation_id"); rid != "" {
		rotID, perr := uuid.Parse(rid)
		if perr != nil {
			return fiber.NewError(fiber.StatusBadRequest, "rotation_id tidak valid")
		}
		q = q.Where("time_record_rotation_id = ?", rotID)
	}
	if st := c.Query("status"); st != "" {
		if !model.IsKnownTimeRecordStatus(st) {
			return fiber.NewError(fiber.StatusBadRequest, "status tidak dikenal")
		}
		q = q.Where("time_record_status = ?", st)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		log.Printf("list time records count err: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil time records")
	}

	var recs []model.TimeRecordModel
	if err := q.Order("time_record_clock_in DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&recs).Error; err != nil {
		log.Printf("list time records err: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil time records")
	}

	return helper.JsonList(c, "ok", dto.FromTimeRecordList(recs),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GET /a/rotations/:id/time-records?status=&page=&per_page=
// Untuk preceptor/supervisor/admin: semua record pada satu rotasi.
func (ctrl *TimeRecordController) ListByRotation(c *fiber.Ctx) error {
	_, _, err := helperAuth.RequireCapability(c, constants.ActionViewAllRecords)
	if err != nil {
		return err
	}

	rotID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "rotation_id tidak valid")
	}

	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.WithContext(c.UserContext()).
		Model(&model.TimeRecordModel{}).
		Where("time_record_rotation_id = ?", rotID)

	if st := c.Query("status"); st != "" {
		if !model.IsKnownTimeRecordStatus(st) {
			return fiber.NewError(fiber.StatusBadRequest, "status tidak dikenal")
		}
		q = q.Where("time_record_status = ?", st)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		log.Printf("list rotation time records count err: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil time records")
	}

	var recs []model.TimeRecordModel
	if err := q.Order("time_record_clock_in DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&recs).Error; err != nil {
		log.Printf("list rotation time records err: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil time records")
	}

	return helper.JsonList(c, "ok", dto.FromTimeRecordList(recs),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

/* ===================== APPROVAL ===================== */

// POST /a/time-records/:id/approve
func (ctrl *TimeRecordController) Approve(c *fiber.Ctx) error {
	return ctrl.review(c, model.TimeRecordStatusApproved)
}

// POST /a/time-records/:id/reject
func (ctrl *TimeRecordController) Reject(c *fiber.Ctx) error {
	return ctrl.review(c, model.TimeRecordStatusRejected)
}

// review: transisi PENDING → APPROVED/REJECTED oleh approver.
// Record yang masih terbuka atau sudah direview tidak bisa direview lagi.
func (ctrl *TimeRecordController) review(c *fiber.Ctx, newStatus string) error {
	approverID, _, err := helperAuth.RequireCapability(c, constants.ActionApproveRecords)
	if err != nil {
		return err
	}

	recID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "time_record_id tidak valid")
	}

	var reviewed model.TimeRecordModel
	txErr := ctrl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var rec model.TimeRecordModel
		if err := tx.Where("time_record_id = ?", recID).First(&rec).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Time record tidak ditemukan")
			}
			return err
		}
		if rec.TimeRecordClockOut == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Time record masih terbuka, belum bisa direview")
		}
		if rec.TimeRecordStatus != model.TimeRecordStatusPending {
			return fiber.NewError(fiber.StatusBadRequest, "Time record sudah direview")
		}

		now := time.Now().UTC()
		rec.TimeRecordStatus = newStatus
		rec.TimeRecordApprovedBy = &approverID
		rec.TimeRecordApprovedAt = &now

		if err := tx.Save(&rec).Error; err != nil {
			return err
		}
		reviewed = rec
		return nil
	})
	if txErr != nil {
		var fe *fiber.Error
		if errors.As(txErr, &fe) {
			return fe
		}
		log.Printf("review time record err: %v", txErr)
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mereview time record")
	}

	eventType := auditmodel.AuditEventRecordApproved
	msg := "Time record disetujui"
	if newStatus == model.TimeRecordStatusRejected {
		eventType = auditmodel.AuditEventRecordRejected
		msg = "Time record ditolak"
	}
	ctrl.emit(eventType, approverID, &reviewed)

	return helper.JsonUpdated(c, msg, dto.FromTimeRecordModel(reviewed))
}

/* ===================== DELETE ===================== */

// DELETE /u/time-records/:id
// Student boleh menghapus record miliknya selama masih PENDING;
// admin boleh menghapus record siapa pun. Soft delete.
func (ctrl *TimeRecordController) Delete(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	role, err := helperAuth.GetRoleFromToken(c)
	if err != nil {
		return err
	}

	recID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "time_record_id tidak valid")
	}

	var deleted model.TimeRecordModel
	txErr := ctrl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var rec model.TimeRecordModel
		if err := tx.Where("time_record_id = ?", recID).First(&rec).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Time record tidak ditemukan")
			}
			return err
		}

		isAdmin := constants.Can(role, constants.ActionDeleteRecords)
		if !isAdmin {
			if rec.TimeRecordStudentID != userID {
				return fiber.NewError(fiber.StatusForbidden, "❌ Bukan milik Anda.")
			}
			if rec.TimeRecordStatus != model.TimeRecordStatusPending {
				return fiber.NewError(fiber.StatusBadRequest, "Time record yang sudah direview tidak bisa dihapus")
			}
		}

		if err := tx.Delete(&rec).Error; err != nil {
			return err
		}
		deleted = rec
		return nil
	})
	if txErr != nil {
		var fe *fiber.Error
		if errors.As(txErr, &fe) {
			return fe
		}
		log.Printf("delete time record err: %v", txErr)
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus time record")
	}

	ctrl.emit(auditmodel.AuditEventRecordDeleted, userID, &deleted)
	// record terbuka yang dihapus mengubah clock-status pemiliknya
	if ctrl.Cache != nil {
		ctrl.Cache.InvalidateClockStatus(deleted.TimeRecordStudentID.String())
	}

	return helper.JsonDeleted(c, "Time record dihapus", fiber.Map{
		"time_record_id": deleted.TimeRecordID,
	})
}

/* ===================== Internal ===================== */

func (ctrl *TimeRecordController) emit(eventType string, actorID uuid.UUID, rec *model.TimeRecordModel) {
	if ctrl.Audit == nil {
		return
	}
	recID := rec.TimeRecordID
	rotID := rec.TimeRecordRotationID
	ctrl.Audit.Emit(auditservice.Event{
		Type:         eventType,
		UserID:       actorID,
		TimeRecordID: &recID,
		RotationID:   &rotID,
		Payload: map[string]any{
			"status":     rec.TimeRecordStatus,
			"student_id": rec.TimeRecordStudentID,
		},
	})
}
