package controllers

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/acr-platform/api-go/config"
	"github.com/acr-platform/api-go/middleware"
	"github.com/acr-platform/api-go/repository"
	"github.com/acr-platform/api-go/storage"
	"github.com/dgrijalva/jwt-go"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func testConfig(uploadDir string) *config.Config {
	return &config.Config{
		UploadDir:         uploadDir,
		AllowedExtensions: []string{"png", "jpg", "jpeg", "gif", "pdf", "doc", "docx", "mp4"},
		PageSize:          10,
		ReportCodePrefix:  "ACR",
		JWTSecret:         "test-secret",
		SessionSecret:     "test-session-secret",
	}
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New returned error: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		t.Fatalf("gorm.Open returned error: %v", err)
	}
	return db, mock
}

// newTestApp wires controllers onto a gin engine the way routes does,
// backed by a sqlmock database and a temp upload directory.
func newTestApp(t *testing.T) (*gin.Engine, sqlmock.Sqlmock, *config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock := newMockDB(t)
	cfg := testConfig(t.TempDir())
	log := zap.NewNop().Sugar()

	store, err := storage.New(cfg.UploadDir, cfg.AllowedExtensions)
	if err != nil {
		t.Fatalf("storage.New returned error: %v", err)
	}

	reports := repository.NewReportRepository(db)
	evidence := repository.NewEvidenceRepository(db)
	admins := repository.NewAdminRepository(db)

	citizenController := NewCitizenController(reports, evidence, store, cfg, log)
	adminController := NewAdminController(admins, reports, store, cfg, log)

	r := gin.New()
	r.LoadHTMLGlob("../templates/*.html")
	r.Use(sessions.Sessions("acr_session", cookie.NewStore([]byte(cfg.SessionSecret))))

	r.GET("/", citizenController.Index)
	r.POST("/report", citizenController.SubmitReport)
	r.GET("/success/:code", citizenController.Success)
	r.POST("/track", citizenController.TrackReport)
	r.GET("/manage/:code", citizenController.ManageReport)
	r.POST("/manage/:code", citizenController.ManageReportPost)

	admin := r.Group("/admin")
	admin.GET("/login", adminController.ShowLogin)
	admin.POST("/login", adminController.Login)
	protected := admin.Group("")
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		protected.GET("/dashboard", adminController.Dashboard)
		protected.GET("/report/:id", adminController.ViewReport)
		protected.POST("/report/:id/update_status", adminController.UpdateStatus)
		protected.POST("/report/:id/delete", adminController.DeleteReport)
		protected.GET("/export", adminController.Export)
	}

	return r, mock, cfg
}

func postForm(r *gin.Engine, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	r.ServeHTTP(w, req)
	return w
}

func getPage(r *gin.Engine, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	r.ServeHTTP(w, req)
	return w
}

type formFile struct {
	field    string
	filename string
	content  string
}

func postMultipart(r *gin.Engine, path string, fields map[string]string, files []formFile) *httptest.ResponseRecorder {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		_ = writer.WriteField(key, value)
	}
	for _, f := range files {
		part, _ := writer.CreateFormFile(f.field, f.filename)
		_, _ = io.Copy(part, strings.NewReader(f.content))
	}
	writer.Close()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", path, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	r.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, secret string) *http.Cookie {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"admin_id": 1,
		"username": "admin",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return &http.Cookie{Name: middleware.SessionCookie, Value: signed}
}

func reportColumns() []string {
	return []string{"id", "report_code", "corruption_type", "description", "location", "status", "created_at", "updated_at"}
}

func evidenceColumns() []string {
	return []string{"id", "filename", "original_filename", "file_type", "file_size", "uploaded_at", "report_id"}
}
