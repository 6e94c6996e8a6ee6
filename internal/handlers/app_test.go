package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/anonto42/pixgram/backend/internal/middleware"
	"github.com/anonto42/pixgram/backend/internal/models"
	"github.com/anonto42/pixgram/backend/internal/repositories"
	"github.com/anonto42/pixgram/backend/internal/router"
	"github.com/anonto42/pixgram/backend/internal/testutil"
	"github.com/anonto42/pixgram/backend/pkg/storage"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const testSecret = "handlers-test-secret"

type testApp struct {
	t     *testing.T
	e     *echo.Echo
	db    *gorm.DB
	audit *memoryAudit
	// uploads is the directory backing the disk store.
	uploads string
}

type appOption func(*router.Dependencies)

func withoutAudit() appOption {
	return func(d *router.Dependencies) { d.Audit = nil }
}

func newTestApp(t *testing.T, opts ...appOption) *testApp {
	t.Helper()

	db := testutil.NewDB(t)
	uploads := t.TempDir()
	store, err := storage.NewDiskStore(uploads)
	if err != nil {
		t.Fatalf("disk store: %v", err)
	}
	audit := &memoryAudit{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	deps := router.Dependencies{
		Postgres: db,
		Audit:    audit,
		Verifier: middleware.NewHMACVerifier(testSecret),
		Store:    store,
		Logger:   logger,
	}
	for _, opt := range opts {
		opt(&deps)
	}

	e := echo.New()
	router.SetupMiddleware(e, logger, "2M")
	router.SetupRoutes(e, deps)
	return &testApp{t: t, e: e, db: db, audit: audit, uploads: uploads}
}

// request sends body as the given uid; an empty uid sends no token.
func (a *testApp) request(method, path, uid string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	a.t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	if uid != "" {
		token, err := middleware.SignToken(testSecret, models.Identity{
			UID:         uid,
			Email:       uid + "@example.com",
			DisplayName: "Display " + uid,
		}, time.Hour)
		if err != nil {
			a.t.Fatalf("sign token: %v", err)
		}
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) get(path, uid string) *httptest.ResponseRecorder {
	a.t.Helper()
	return a.request(http.MethodGet, path, uid, nil, "")
}

func (a *testApp) sendJSON(method, path, uid string, payload interface{}) *httptest.ResponseRecorder {
	a.t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			a.t.Fatalf("marshal: %v", err)
		}
		body = bytes.NewReader(raw)
	}
	return a.request(method, path, uid, body, echo.MIMEApplicationJSON)
}

type formFile struct {
	field    string
	filename string
	content  []byte
}

func (a *testApp) postMultipart(path, uid string, fields map[string]string, file *formFile) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			a.t.Fatalf("write field: %v", err)
		}
	}
	if file != nil {
		part, err := w.CreateFormFile(file.field, file.filename)
		if err != nil {
			a.t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write(file.content); err != nil {
			a.t.Fatalf("write form file: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		a.t.Fatalf("close multipart: %v", err)
	}
	return a.request(http.MethodPost, path, uid, &buf, w.FormDataContentType())
}

func (a *testApp) createPost(uid, caption string) models.Post {
	a.t.Helper()
	rec := a.postMultipart("/posts", uid, map[string]string{"caption": caption}, pngFile(a.t, "image"))
	expectStatus(a.t, rec, http.StatusCreated)
	return decode[models.Post](a.t, rec)
}

func pngFile(t *testing.T, field string) *formFile {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return &formFile{field: field, filename: "photo.png", content: buf.Bytes()}
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, want, rec.Body.String())
	}
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %T: %v; body: %s", v, err, rec.Body.String())
	}
	return v
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[struct {
		Message string `json:"message"`
	}](t, rec).Message
}

func expectMessageContains(t *testing.T, rec *httptest.ResponseRecorder, substr string) {
	t.Helper()
	if msg := errorMessage(t, rec); !strings.Contains(msg, substr) {
		t.Errorf("message = %q, want it to contain %q", msg, substr)
	}
}

// memoryAudit is an in-process AuditRepository.
type memoryAudit struct {
	mu     sync.Mutex
	events []models.ModerationEvent
}

var _ repositories.AuditRepository = (*memoryAudit)(nil)

func (m *memoryAudit) RecordEvent(_ context.Context, event *models.ModerationEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, *event)
	return nil
}

func (m *memoryAudit) GetRecentEvents(_ context.Context, limit int64) ([]models.ModerationEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	events := make([]models.ModerationEvent, 0, len(m.events))
	for i := len(m.events) - 1; i >= 0 && int64(len(events)) < limit; i-- {
		events = append(events, m.events[i])
	}
	return events, nil
}

func (m *memoryAudit) actions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	actions := make([]string, len(m.events))
	for i, e := range m.events {
		actions[i] = e.Action
	}
	return actions
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// failInsertsInto makes every later insert into table fail.
func failInsertsInto(t *testing.T, db *gorm.DB, table string) {
	t.Helper()
	err := db.Callback().Create().Before("gorm:create").Register("test:fail_"+table, func(tx *gorm.DB) {
		if tx.Statement.Table == table {
			tx.AddError(errors.New("insert into " + table + " failed"))
		}
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}
}

func expectNoUploads(t *testing.T, app *testApp) {
	t.Helper()
	entries, err := os.ReadDir(app.uploads)
	if err != nil {
		t.Fatalf("read uploads: %v", err)
	}
	for _, entry := range entries {
		t.Errorf("upload %s left behind", entry.Name())
	}
}
