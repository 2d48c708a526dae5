package controller

import (
	"errors"
	"io"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	database "readingroom_backend/internals/databases"
	"readingroom_backend/internals/features/members/students/dto"
	"readingroom_backend/internals/features/members/students/model"
	"readingroom_backend/internals/features/members/students/repository"
	"readingroom_backend/internals/features/members/students/service"
	helper "readingroom_backend/internals/helpers"
)

type StudentController struct {
	Repo   repository.StudentRepository
	Photos repository.PhotoRepository
	Log    *zap.Logger
}

func NewStudentController(repo repository.StudentRepository, photos repository.PhotoRepository, log *zap.Logger) *StudentController {
	return &StudentController{Repo: repo, Photos: photos, Log: log}
}

func notFound(err error) error {
	if errors.Is(err, database.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Student not found")
	}
	return err
}

// POST /api/students
func (sc *StudentController) Create(c *fiber.Ctx) error {
	var req dto.CreateStudentRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	student := req.ToModel(helper.NewID(), time.Now().UTC())
	if err := sc.Repo.Create(c.UserContext(), student); err != nil {
		return err
	}
	return helper.JsonCreated(c, "Student created", student)
}

// GET /api/students?q=&status=
func (sc *StudentController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, helper.DefaultPerPage, helper.MaxPerPage)
	status := strings.TrimSpace(c.Query("status"))
	if status != "" && status != model.StatusActive && status != model.StatusInactive {
		return fiber.NewError(fiber.StatusBadRequest, "status must be active or inactive")
	}

	items, total, err := sc.Repo.List(c.UserContext(), repository.ListFilter{
		Q:      strings.TrimSpace(c.Query("q")),
		Status: status,
		Offset: p.Offset,
		Limit:  p.Limit,
	})
	if err != nil {
		return err
	}
	return helper.JsonList(c, "ok", items, helper.BuildPagination(total, p, len(items)))
}

// GET /api/students/:id
func (sc *StudentController) Get(c *fiber.Ctx) error {
	id, err := helper.IDParam(c, "id")
	if err != nil {
		return err
	}
	student, err := sc.Repo.FindByID(c.UserContext(), id)
	if err != nil {
		return notFound(err)
	}
	return helper.JsonOK(c, "ok", student)
}

// PUT /api/students/:id
func (sc *StudentController) Update(c *fiber.Ctx) error {
	id, err := helper.IDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateStudentRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}

	patch := req.ToPatch()
	if len(patch) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Nothing to update")
	}
	patch["updated_at"] = time.Now().UTC()

	student, err := sc.Repo.Update(c.UserContext(), id, patch)
	if err != nil {
		return notFound(err)
	}
	return helper.JsonUpdated(c, "Student updated", student)
}

// DELETE /api/students/:id
func (sc *StudentController) Delete(c *fiber.Ctx) error {
	id, err := helper.IDParam(c, "id")
	if err != nil {
		return err
	}
	if err := sc.Repo.Delete(c.UserContext(), id); err != nil {
		return notFound(err)
	}
	if err := sc.Photos.Delete(c.UserContext(), id); err != nil {
		sc.Log.Warn("student photo cleanup failed", zap.String("student_id", id), zap.Error(err))
	}
	return helper.JsonDeleted(c, "Student deleted", fiber.Map{"id": id})
}

// POST /api/students/:id/photo (multipart field "photo")
func (sc *StudentController) UploadPhoto(c *fiber.Ctx) error {
	id, err := helper.IDParam(c, "id")
	if err != nil {
		return err
	}
	if _, err := sc.Repo.FindByID(c.UserContext(), id); err != nil {
		return notFound(err)
	}

	fh, err := c.FormFile("photo")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "photo file is required")
	}
	if fh.Size > service.MaxPhotoBytes {
		return fiber.NewError(fiber.StatusRequestEntityTooLarge, "photo exceeds 5MB")
	}
	f, err := fh.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "cannot read photo")
	}
	defer f.Close()
	raw, err := io.ReadAll(f)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "cannot read photo")
	}

	encoded, err := service.ProcessPhoto(raw)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPhotoTooLarge):
			return fiber.NewError(fiber.StatusRequestEntityTooLarge, err.Error())
		case errors.Is(err, service.ErrEmptyPhoto), errors.Is(err, service.ErrUnsupportedPhoto):
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return err
	}

	now := time.Now().UTC()
	if err := sc.Photos.Save(c.UserContext(), &model.StudentPhotoModel{
		StudentID:   id,
		Content:     encoded,
		ContentType: service.PhotoContentType,
		UpdatedAt:   now,
	}); err != nil {
		return err
	}
	student, err := sc.Repo.Update(c.UserContext(), id, bson.M{"has_photo": true, "updated_at": now})
	if err != nil {
		return notFound(err)
	}
	return helper.JsonUpdated(c, "Photo uploaded", student)
}

// GET /api/students/:id/photo
func (sc *StudentController) GetPhoto(c *fiber.Ctx) error {
	id, err := helper.IDParam(c, "id")
	if err != nil {
		return err
	}
	photo, err := sc.Photos.Find(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Photo not found")
		}
		return err
	}
	c.Set(fiber.HeaderContentType, photo.ContentType)
	c.Set(fiber.HeaderCacheControl, "private, max-age=300")
	return c.Send(photo.Content)
}
