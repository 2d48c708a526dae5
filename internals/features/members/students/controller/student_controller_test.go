package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	database "readingroom_backend/internals/databases"
	"readingroom_backend/internals/features/members/students/model"
	"readingroom_backend/internals/features/members/students/repository"
	"readingroom_backend/internals/features/members/students/service"
	"readingroom_backend/internals/middlewares"
)

type memStudents struct {
	mu   sync.Mutex
	rows map[string]model.StudentModel
}

func (m *memStudents) Create(_ context.Context, s *model.StudentModel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[s.ID] = *s
	return nil
}

func (m *memStudents) FindByID(_ context.Context, id string) (*model.StudentModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.rows[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &s, nil
}

func (m *memStudents) List(_ context.Context, f repository.ListFilter) ([]model.StudentModel, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.StudentModel{}
	for _, s := range m.rows {
		if f.Status != "" && s.Status != f.Status {
			continue
		}
		out = append(out, s)
	}
	return out, int64(len(out)), nil
}

func (m *memStudents) Update(_ context.Context, id string, patch bson.M) (*model.StudentModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.rows[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	if v, ok := patch["full_name"].(string); ok {
		s.FullName = v
	}
	if v, ok := patch["has_photo"].(bool); ok {
		s.HasPhoto = v
	}
	m.rows[id] = s
	return &s, nil
}

func (m *memStudents) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return database.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memStudents) Exists(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.rows[id]
	return ok, nil
}

type memPhotos struct {
	mu   sync.Mutex
	rows map[string]model.StudentPhotoModel
}

func (m *memPhotos) Save(_ context.Context, p *model.StudentPhotoModel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[p.StudentID] = *p
	return nil
}

func (m *memPhotos) Find(_ context.Context, id string) (*model.StudentPhotoModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.rows[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &p, nil
}

func (m *memPhotos) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rows, id)
	return nil
}

func studentApp() (*fiber.App, *memStudents, *memPhotos) {
	students := &memStudents{rows: map[string]model.StudentModel{}}
	photos := &memPhotos{rows: map[string]model.StudentPhotoModel{}}
	ctrl := NewStudentController(students, photos, zap.NewNop())
	app := fiber.New(fiber.Config{ErrorHandler: middlewares.ErrorHandler(nil)})
	app.Post("/students", ctrl.Create)
	app.Get("/students", ctrl.List)
	app.Get("/students/:id", ctrl.Get)
	app.Put("/students/:id", ctrl.Update)
	app.Delete("/students/:id", ctrl.Delete)
	app.Post("/students/:id/photo", ctrl.UploadPhoto)
	app.Get("/students/:id/photo", ctrl.GetPhoto)
	return app, students, photos
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	out := map[string]any{}
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return resp.StatusCode, out
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	for x := 0; x < 40; x++ {
		for y := 0; y < 20; y++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func uploadPhoto(t *testing.T, app *fiber.App, id string, content []byte) int {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("photo", "face.png")
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(fiber.MethodPost, "/students/"+id+"/photo", &body)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestStudentCRUD(t *testing.T) {
	app, students, photos := studentApp()

	status, body := doJSON(t, app, fiber.MethodPost, "/students", `{"full_name":"  Rina Putri ","email":"RINA@Mail.com"}`)
	require.Equal(t, fiber.StatusCreated, status, body)
	data := body["data"].(map[string]any)
	assert.Equal(t, "Rina Putri", data["full_name"])
	assert.Equal(t, "rina@mail.com", data["email"])
	assert.Equal(t, model.StatusActive, data["status"])
	assert.NotEmpty(t, data["joined_at"])
	id := data["id"].(string)

	status, _ = doJSON(t, app, fiber.MethodGet, "/students?status=archived", "")
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, body = doJSON(t, app, fiber.MethodGet, "/students?status=active", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Len(t, body["data"], 1)

	status, _ = doJSON(t, app, fiber.MethodPut, "/students/"+id, `{"full_name":"Rina P."}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Rina P.", students.rows[id].FullName)

	photos.rows[id] = model.StudentPhotoModel{StudentID: id}
	status, _ = doJSON(t, app, fiber.MethodDelete, "/students/"+id, "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Empty(t, photos.rows)

	status, body = doJSON(t, app, fiber.MethodGet, "/students/"+id, "")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "Student not found", body["message"])
}

func TestStudentValidation(t *testing.T) {
	app, _, _ := studentApp()

	status, body := doJSON(t, app, fiber.MethodPost, "/students", `{"full_name":"A","email":"nope"}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	errs := body["errors"].(map[string]any)
	assert.Contains(t, errs, "full_name")
	assert.Contains(t, errs, "email")

	status, _ = doJSON(t, app, fiber.MethodPut, "/students/"+uuid.NewString(), `{}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestStudentPhoto(t *testing.T) {
	app, students, photos := studentApp()
	status, body := doJSON(t, app, fiber.MethodPost, "/students", `{"full_name":"Budi"}`)
	require.Equal(t, fiber.StatusCreated, status, body)
	id := body["data"].(map[string]any)["id"].(string)

	status, _ = doJSON(t, app, fiber.MethodGet, "/students/"+id+"/photo", "")
	assert.Equal(t, fiber.StatusNotFound, status)

	assert.Equal(t, fiber.StatusBadRequest, uploadPhoto(t, app, id, []byte("not an image")))
	assert.Equal(t, fiber.StatusNotFound, uploadPhoto(t, app, uuid.NewString(), pngBytes(t)))

	require.Equal(t, fiber.StatusOK, uploadPhoto(t, app, id, pngBytes(t)))
	assert.True(t, students.rows[id].HasPhoto)
	assert.Equal(t, service.PhotoContentType, photos.rows[id].ContentType)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/students/"+id+"/photo", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, service.PhotoContentType, resp.Header.Get(fiber.HeaderContentType))
	raw, _ := io.ReadAll(resp.Body)
	assert.Equal(t, photos.rows[id].Content, raw)
}
