package controller

import (
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"rotasiku_backend/internals/constants"
	rediscache "rotasiku_backend/internals/databases/rediscache"
	auditmodel "rotasiku_backend/internals/features/audit/model"
	auditservice "rotasiku_backend/internals/features/audit/service"
	"rotasiku_backend/internals/features/school/time_records/dto"
	"rotasiku_backend/internals/features/school/time_records/model"
	"rotasiku_backend/internals/features/school/time_records/service"
	helper "rotasiku_backend/internals/helpers"
	helperAuth "rotasiku_backend/internals/helpers/auth"
)

type ClockController struct {
	Service *service.ClockService
	Audit   *auditservice.Dispatcher
	Cache   *rediscache.Client
}

func NewClockController(svc *service.ClockService, audit *auditservice.Dispatcher, cache *rediscache.Client) *ClockController {
	return &ClockController{Service: svc, Audit: audit, Cache: cache}
}

/* ===================== CLOCK (mutasi) ===================== */
// POST /u/time-records/clock
func (ctrl *ClockController) Clock(c *fiber.Ctx) error {
	// clock-in/out adalah aksi self-service: hanya role student
	studentID, _, err := helperAuth.RequireCapability(c, constants.ActionClockSelf)
	if err != nil {
		return err
	}

	var req dto.ClockRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}

	// Validasi dasar (type/enum/range)
	v := validator.New()
	if err := v.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	client := service.ClientInfo{
		IP:        c.IP(),
		UserAgent: c.Get(fiber.HeaderUserAgent),
	}

	switch req.Action {
	case dto.ActionClockIn:
		rec, now, err := ctrl.Service.ClockIn(c.UserContext(), studentID, service.ClockInInput{
			RotationID: *req.RotationID,
			Activities: req.Activities,
			Notes:      req.Notes,
			Location:   req.Location(),
			Client:     client,
		})
		if err != nil {
			return ctrl.mapClockError(err)
		}
		ctrl.afterMutation(auditmodel.AuditEventClockIn, studentID, rec)

		iso := now.ISO
		return helper.JsonCreated(c, "Clock-in berhasil", dto.ClockResponse{
			TimeRecord:           dto.FromTimeRecordModel(*rec),
			HighPrecisionClockIn: &iso,
		})

	case dto.ActionClockOut:
		rec, now, err := ctrl.Service.ClockOut(c.UserContext(), studentID, service.ClockOutInput{
			TimeRecordID: *req.TimeRecordID,
			Activities:   req.Activities,
			Notes:        req.Notes,
			Location:     req.Location(),
			Client:       client,
		})
		if err != nil {
			return ctrl.mapClockError(err)
		}
		ctrl.afterMutation(auditmodel.AuditEventClockOut, studentID, rec)

		isoIn := rec.TimeRecordClockIn.UTC().Format(time.RFC3339Nano)
		isoOut := now.ISO
		return helper.JsonOK(c, "Clock-out berhasil", dto.ClockResponse{
			TimeRecord:            dto.FromTimeRecordModel(*rec),
			HighPrecisionClockIn:  &isoIn,
			HighPrecisionClockOut: &isoOut,
		})
	}

	// tidak terjangkau: action sudah divalidasi oneof
	return fiber.NewError(fiber.StatusBadRequest, "Action tidak dikenal")
}

/* ===================== STATUS (read-only) ===================== */
// GET /u/time-records/clock-status?rotation_id=&student_id=
// Selalu menjawab bentuk status; error internal tidak pernah sampai ke UI.
func (ctrl *ClockController) ClockStatus(c *fiber.Ctx) error {
	callerID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	role, err := helperAuth.GetRoleFromToken(c)
	if err != nil {
		return err
	}

	// non-student boleh menanyakan status student lain
	targetID := callerID
	if sid := c.Query("student_id"); sid != "" {
		parsed, perr := uuid.Parse(sid)
		if perr != nil {
			return fiber.NewError(fiber.StatusBadRequest, "student_id tidak valid")
		}
		if parsed != callerID && !constants.Can(role, constants.ActionViewAllRecords) {
			return fiber.NewError(fiber.StatusForbidden, "❌ Tidak boleh melihat status student lain.")
		}
		targetID = parsed
	}

	var rotationID *uuid.UUID
	if rid := c.Query("rotation_id"); rid != "" {
		parsed, perr := uuid.Parse(rid)
		if perr != nil {
			return fiber.NewError(fiber.StatusBadRequest, "rotation_id tidak valid")
		}
		rotationID = &parsed
	}

	res := ctrl.Service.Status(c.UserContext(), targetID, rotationID)
	return helper.JsonOK(c, "ok", res)
}

/* ===================== Internal ===================== */

// mapClockError memetakan taksonomi error service ke status HTTP.
// Konflik bisnis bukan fault server: tidak pernah jadi 500.
func (ctrl *ClockController) mapClockError(err error) error {
	var rv *service.RuleViolation
	switch {
	case errors.Is(err, service.ErrAlreadyClockedIn):
		return fiber.NewError(fiber.StatusBadRequest, "Student sudah clock-in di rotasi ini")
	case errors.Is(err, service.ErrAlreadyClockedOut):
		return fiber.NewError(fiber.StatusBadRequest, "Time record sudah di-clock-out")
	case errors.Is(err, service.ErrRotationNotActive):
		return fiber.NewError(fiber.StatusBadRequest, "Rotasi sedang tidak berada di rentang tanggal aktif")
	case errors.Is(err, service.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Rotasi atau time record tidak ditemukan")
	case errors.Is(err, service.ErrAccessDenied):
		return fiber.NewError(fiber.StatusForbidden, "❌ Bukan milik Anda.")
	case errors.As(err, &rv):
		return fiber.NewError(fiber.StatusBadRequest, rv.Reason)
	case errors.Is(err, service.ErrTxConflict):
		log.Printf("clock tx conflict: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Sistem sibuk, silakan coba lagi")
	default:
		// detail internal tidak bocor ke caller
		log.Printf("clock internal err: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Terjadi kesalahan internal")
	}
}

// afterMutation: audit + invalidasi cache, dua-duanya fire-and-forget
// SETELAH transaksi commit — tidak pernah ditunggu oleh response.
func (ctrl *ClockController) afterMutation(eventType string, studentID uuid.UUID, rec *model.TimeRecordModel) {
	if ctrl.Audit != nil {
		recID := rec.TimeRecordID
		rotID := rec.TimeRecordRotationID
		ctrl.Audit.Emit(auditservice.Event{
			Type:         eventType,
			UserID:       studentID,
			TimeRecordID: &recID,
			RotationID:   &rotID,
			Payload: map[string]any{
				"status": rec.TimeRecordStatus,
			},
		})
	}
	if ctrl.Cache != nil {
		ctrl.Cache.InvalidateClockStatus(studentID.String())
	}
}
