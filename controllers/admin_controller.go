package controllers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/acr-platform/api-go/config"
	"github.com/acr-platform/api-go/middleware"
	"github.com/acr-platform/api-go/models"
	"github.com/acr-platform/api-go/repository"
	"github.com/acr-platform/api-go/storage"
	"github.com/acr-platform/api-go/utils"
	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const sessionTTL = 12 * time.Hour

var csvHeader = []string{
	"Report ID", "Corruption Type", "Description", "Location",
	"Status", "Created At", "Updated At", "Evidence Count",
}

type AdminController struct {
	Admins  repository.AdminRepository
	Reports repository.ReportRepository
	Store   *storage.Store
	Config  *config.Config
	Log     *zap.SugaredLogger
}

func NewAdminController(admins repository.AdminRepository, reports repository.ReportRepository,
	store *storage.Store, cfg *config.Config, log *zap.SugaredLogger) *AdminController {
	return &AdminController{Admins: admins, Reports: reports, Store: store, Config: cfg, Log: log}
}

func (ac *AdminController) ShowLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{"Flashes": takeFlashes(c)})
}

// Login verifies credentials and establishes the session cookie. The
// failure message never distinguishes an unknown username from a wrong
// password.
func (ac *AdminController) Login(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")

	admin, err := ac.Admins.FindByUsername(c.Request.Context(), username)
	if err != nil || !admin.CheckPassword(password) {
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			ac.Log.Errorw("failed to query admin", "error", err)
		}
		addFlash(c, "danger", "Invalid username or password")
		c.Redirect(http.StatusFound, "/admin/login")
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"admin_id": admin.ID,
		"username": admin.Username,
		"exp":      time.Now().Add(sessionTTL).Unix(),
	})
	signed, err := token.SignedString([]byte(ac.Config.JWTSecret))
	if err != nil {
		ac.Log.Errorw("failed to sign session token", "error", err)
		serverError(c)
		return
	}

	c.SetCookie(middleware.SessionCookie, signed, int(sessionTTL.Seconds()), "/", "", false, true)
	ac.Log.Infow("admin logged in", "username", admin.Username)
	c.Redirect(http.StatusFound, "/admin/dashboard")
}

func (ac *AdminController) Logout(c *gin.Context) {
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	addFlash(c, "info", "You have been logged out successfully.")
	c.Redirect(http.StatusFound, "/")
}

// Dashboard lists reports matching the conjunctive filters, newest
// first, with fixed-size pages. The KPI counts always cover the whole
// table regardless of the active filter.
func (ac *AdminController) Dashboard(c *gin.Context) {
	filter := filterFromQuery(c)
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	ctx := c.Request.Context()
	reports, total, err := ac.Reports.List(ctx, filter, page, ac.Config.PageSize)
	if err != nil {
		ac.Log.Errorw("failed to list reports", "error", err)
		serverError(c)
		return
	}
	counts, err := ac.Reports.Counts(ctx)
	if err != nil {
		ac.Log.Errorw("failed to count reports", "error", err)
		serverError(c)
		return
	}
	types, err := ac.Reports.DistinctTypes(ctx)
	if err != nil {
		ac.Log.Errorw("failed to list corruption types", "error", err)
		serverError(c)
		return
	}

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"Admin":      utils.GetAdmin(c),
		"Reports":    reports,
		"Counts":     counts,
		"Types":      types,
		"Filter":     filter,
		"Pagination": paginate(page, ac.Config.PageSize, total),
		"Flashes":    takeFlashes(c),
	})
}

func (ac *AdminController) ViewReport(c *gin.Context) {
	report, ok := ac.loadReport(c)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "view_report.html", gin.H{
		"Admin":   utils.GetAdmin(c),
		"Report":  report,
		"Flashes": takeFlashes(c),
	})
}

// UpdateStatus transitions a report to one of the three lifecycle
// states. Anything else is rejected without touching the row.
func (ac *AdminController) UpdateStatus(c *gin.Context) {
	report, ok := ac.loadReport(c)
	if !ok {
		return
	}

	status := c.PostForm("status")
	if !models.ValidStatus(status) {
		addFlash(c, "danger", "Invalid status")
		c.Redirect(http.StatusFound, fmt.Sprintf("/admin/report/%d", report.ID))
		return
	}

	if err := ac.Reports.UpdateStatus(c.Request.Context(), report.ID, status); err != nil {
		ac.Log.Errorw("failed to update status", "id", report.ID, "error", err)
		addFlash(c, "danger", "Could not update the report status. Please try again.")
	} else {
		addFlash(c, "success", fmt.Sprintf("Report %s status updated to %s", report.ReportCode, status))
	}
	c.Redirect(http.StatusFound, fmt.Sprintf("/admin/report/%d", report.ID))
}

// DeleteReport removes the report and its evidence rows, then the
// backing files. File removal errors are logged, not surfaced: the
// database is already consistent at that point.
func (ac *AdminController) DeleteReport(c *gin.Context) {
	report, ok := ac.loadReport(c)
	if !ok {
		return
	}

	if err := ac.Reports.Delete(c.Request.Context(), report.ID); err != nil {
		ac.Log.Errorw("failed to delete report", "id", report.ID, "error", err)
		addFlash(c, "danger", "Could not delete the report. Please try again.")
		c.Redirect(http.StatusFound, "/admin/dashboard")
		return
	}
	for _, evidence := range report.Evidence {
		if err := ac.Store.Remove(evidence.Filename); err != nil {
			ac.Log.Warnw("failed to remove evidence file", "filename", evidence.Filename, "error", err)
		}
	}

	ac.Log.Infow("report deleted", "code", report.ReportCode, "evidence", len(report.Evidence))
	addFlash(c, "success", fmt.Sprintf("Report %s has been deleted", report.ReportCode))
	c.Redirect(http.StatusFound, "/admin/dashboard")
}

// Export streams every report matching the filters as CSV, using the
// same filter semantics as the dashboard but without pagination.
func (ac *AdminController) Export(c *gin.Context) {
	filter := filterFromQuery(c)
	reports, err := ac.Reports.ListAll(c.Request.Context(), filter)
	if err != nil {
		ac.Log.Errorw("failed to export reports", "error", err)
		serverError(c)
		return
	}

	filename := fmt.Sprintf("reports_%s.csv", time.Now().Format("20060102_150405"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	writer := csv.NewWriter(c.Writer)
	_ = writer.Write(csvHeader)
	for _, report := range reports {
		location := report.Location
		if location == "" {
			location = "N/A"
		}
		_ = writer.Write([]string{
			report.ReportCode,
			report.CorruptionType,
			report.Description,
			location,
			report.Status,
			report.CreatedAt.Format("2006-01-02 15:04:05"),
			report.UpdatedAt.Format("2006-01-02 15:04:05"),
			strconv.Itoa(len(report.Evidence)),
		})
	}
	writer.Flush()
}

// DownloadEvidence serves a stored evidence file to an authenticated
// admin. The name is reduced to its base before hitting the store.
func (ac *AdminController) DownloadEvidence(c *gin.Context) {
	filename := filepath.Base(c.Param("filename"))
	if filename == "." || filename == "/" || !ac.Store.Exists(filename) {
		notFound(c)
		return
	}
	c.File(ac.Store.Path(filename))
}

func (ac *AdminController) loadReport(c *gin.Context) (*models.Report, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		notFound(c)
		return nil, false
	}

	report, err := ac.Reports.FindByID(c.Request.Context(), uint(id))
	if errors.Is(err, repository.ErrNotFound) {
		notFound(c)
		return nil, false
	}
	if err != nil {
		ac.Log.Errorw("failed to load report", "id", id, "error", err)
		serverError(c)
		return nil, false
	}
	return report, true
}

func filterFromQuery(c *gin.Context) repository.ReportFilter {
	return repository.ReportFilter{
		Status:   c.Query("status"),
		Type:     c.Query("type"),
		DateFrom: c.Query("date_from"),
		DateTo:   c.Query("date_to"),
	}
}
