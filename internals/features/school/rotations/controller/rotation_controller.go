package controller

import (
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"rotasiku_backend/internals/constants"
	"rotasiku_backend/internals/features/school/rotations/dto"
	"rotasiku_backend/internals/features/school/rotations/model"
	helper "rotasiku_backend/internals/helpers"
	helperAuth "rotasiku_backend/internals/helpers/auth"
)

type RotationController struct {
	DB *gorm.DB
}

func NewRotationController(db *gorm.DB) *RotationController {
	return &RotationController{DB: db}
}

/* ===================== ADMIN CRUD ===================== */

// POST /a/rotations
func (ctrl *RotationController) Create(c *fiber.Ctx) error {
	_, _, err := helperAuth.RequireCapability(c, constants.ActionManageRotation)
	if err != nil {
		return err
	}

	var req dto.CreateRotationRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	v := validator.New()
	if err := v.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)
	if end.Before(start) {
		return fiber.NewError(fiber.StatusBadRequest, "end_date tidak boleh sebelum start_date")
	}

	rot := model.RotationModel{
		RotationStudentID:     req.StudentID,
		RotationSiteName:      req.SiteName,
		RotationPreceptorName: req.PreceptorName,
		RotationStartDate:     start,
		RotationEndDate:       end,
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Create(&rot).Error; err != nil {
		log.Printf("create rotation err: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat rotasi")
	}

	return helper.JsonCreated(c, "Rotasi berhasil dibuat", dto.FromRotationModel(rot))
}

// GET /a/rotations?student_id=&page=&per_page=
func (ctrl *RotationController) List(c *fiber.Ctx) error {
	_, _, err := helperAuth.RequireCapability(c, constants.ActionViewAllRecords)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.WithContext(c.UserContext()).Model(&model.RotationModel{})
	if sid := c.Query("student_id"); sid != "" {
		studentID, perr := uuid.Parse(sid)
		if perr != nil {
			return fiber.NewError(fiber.StatusBadRequest, "student_id tidak valid")
		}
		q = q.Where("rotation_student_id = ?", studentID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		log.Printf("list rotations count err: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil rotasi")
	}

	var rots []model.RotationModel
	if err := q.Order("rotation_start_date DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rots).Error; err != nil {
		log.Printf("list rotations err: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil rotasi")
	}

	return helper.JsonList(c, "ok", dto.FromRotationList(rots),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GET /a/rotations/:id
func (ctrl *RotationController) GetByID(c *fiber.Ctx) error {
	_, _, err := helperAuth.RequireCapability(c, constants.ActionViewAllRecords)
	if err != nil {
		return err
	}

	rotID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "rotation_id tidak valid")
	}

	var rot model.RotationModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("rotation_id = ?", rotID).
		First(&rot).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Rotasi tidak ditemukan")
		}
		log.Printf("get rotation err: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil rotasi")
	}

	return helper.JsonOK(c, "ok", dto.FromRotationModel(rot))
}

// PUT /a/rotations/:id
func (ctrl *RotationController) Update(c *fiber.Ctx) error {
	_, _, err := helperAuth.RequireCapability(c, constants.ActionManageRotation)
	if err != nil {
		return err
	}

	rotID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "rotation_id tidak valid")
	}

	var req dto.UpdateRotationRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	v := validator.New()
	if err := v.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var rot model.RotationModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("rotation_id = ?", rotID).
		First(&rot).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Rotasi tidak ditemukan")
		}
		log.Printf("get rotation err: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil rotasi")
	}

	if req.SiteName != nil {
		rot.RotationSiteName = *req.SiteName
	}
	if req.PreceptorName != nil {
		rot.RotationPreceptorName = req.PreceptorName
	}
	if req.StartDate != nil {
		start, _ := time.Parse("2006-01-02", *req.StartDate)
		rot.RotationStartDate = start
	}
	if req.EndDate != nil {
		end, _ := time.Parse("2006-01-02", *req.EndDate)
		rot.RotationEndDate = end
	}
	if rot.RotationEndDate.Before(rot.RotationStartDate) {
		return fiber.NewError(fiber.StatusBadRequest, "end_date tidak boleh sebelum start_date")
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Save(&rot).Error; err != nil {
		log.Printf("update rotation err: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memperbarui rotasi")
	}

	return helper.JsonUpdated(c, "Rotasi berhasil diperbarui", dto.FromRotationModel(rot))
}

// DELETE /a/rotations/:id (soft delete)
func (ctrl *RotationController) Delete(c *fiber.Ctx) error {
	_, _, err := helperAuth.RequireCapability(c, constants.ActionManageRotation)
	if err != nil {
		return err
	}

	rotID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "rotation_id tidak valid")
	}

	res := ctrl.DB.WithContext(c.UserContext()).
		Where("rotation_id = ?", rotID).
		Delete(&model.RotationModel{})
	if res.Error != nil {
		log.Printf("delete rotation err: %v", res.Error)
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus rotasi")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Rotasi tidak ditemukan")
	}

	return helper.JsonDeleted(c, "Rotasi dihapus", fiber.Map{"rotation_id": rotID})
}

/* ===================== STUDENT ===================== */

// GET /u/rotations — daftar rotasi milik student yang login.
func (ctrl *RotationController) ListMine(c *fiber.Ctx) error {
	studentID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var rots []model.RotationModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("rotation_student_id = ?", studentID).
		Order("rotation_start_date DESC").
		Find(&rots).Error; err != nil {
		log.Printf("list my rotations err: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil rotasi")
	}

	return helper.JsonOK(c, "ok", dto.FromRotationList(rots))
}
