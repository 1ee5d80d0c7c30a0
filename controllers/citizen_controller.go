package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/acr-platform/api-go/config"
	"github.com/acr-platform/api-go/models"
	"github.com/acr-platform/api-go/repository"
	"github.com/acr-platform/api-go/storage"
	"github.com/acr-platform/api-go/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxCodeAttempts bounds the regenerate-on-collision loop for public
// report codes; the unique index remains the real guarantee.
const maxCodeAttempts = 3

type CitizenController struct {
	Reports  repository.ReportRepository
	Evidence repository.EvidenceRepository
	Store    *storage.Store
	Config   *config.Config
	Log      *zap.SugaredLogger
}

func NewCitizenController(reports repository.ReportRepository, evidence repository.EvidenceRepository,
	store *storage.Store, cfg *config.Config, log *zap.SugaredLogger) *CitizenController {
	return &CitizenController{Reports: reports, Evidence: evidence, Store: store, Config: cfg, Log: log}
}

func (cc *CitizenController) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{"Flashes": takeFlashes(c)})
}

func (cc *CitizenController) ShowReportForm(c *gin.Context) {
	c.HTML(http.StatusOK, "report_form.html", gin.H{"Flashes": takeFlashes(c)})
}

func (cc *CitizenController) SubmitReport(c *gin.Context) {
	corruptionType := strings.TrimSpace(c.PostForm("corruption_type"))
	description := strings.TrimSpace(c.PostForm("description"))
	location := strings.TrimSpace(c.PostForm("location"))

	if corruptionType == "" || description == "" {
		addFlash(c, "danger", "Please fill in all required fields.")
		c.Redirect(http.StatusFound, "/report")
		return
	}

	saved := cc.saveUploads(c)

	report := &models.Report{
		CorruptionType: corruptionType,
		Description:    description,
		Location:       location,
		Status:         models.StatusPending,
	}

	var err error
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		report.ReportCode, err = utils.GenerateReportCode(cc.Config.ReportCodePrefix)
		if err != nil {
			break
		}
		err = cc.Reports.CreateWithEvidence(c.Request.Context(), report, saved)
		if !errors.Is(err, repository.ErrDuplicateCode) {
			break
		}
		cc.Log.Warnw("report code collision, regenerating", "code", report.ReportCode)
	}
	if err != nil {
		cc.discardUploads(saved)
		cc.Log.Errorw("failed to create report", "error", err)
		addFlash(c, "danger", "Could not submit your report. Please try again.")
		c.Redirect(http.StatusFound, "/report")
		return
	}

	cc.Log.Infow("report submitted", "code", report.ReportCode, "evidence", len(saved))
	addFlash(c, "success", fmt.Sprintf("Report submitted successfully! Your report ID is: %s", report.ReportCode))
	c.Redirect(http.StatusFound, "/success/"+report.ReportCode)
}

func (cc *CitizenController) Success(c *gin.Context) {
	report, err := cc.Reports.FindByCode(c.Request.Context(), c.Param("code"))
	if errors.Is(err, repository.ErrNotFound) {
		notFound(c)
		return
	}
	if err != nil {
		cc.Log.Errorw("failed to load report", "error", err)
		serverError(c)
		return
	}
	c.HTML(http.StatusOK, "success.html", gin.H{"Report": report, "Flashes": takeFlashes(c)})
}

func (cc *CitizenController) ShowTrackForm(c *gin.Context) {
	c.HTML(http.StatusOK, "track.html", gin.H{"Flashes": takeFlashes(c)})
}

// TrackReport resolves a user-typed code to its manage page. Codes are
// stored uppercased, so the lookup normalizes first.
func (cc *CitizenController) TrackReport(c *gin.Context) {
	code := strings.ToUpper(strings.TrimSpace(c.PostForm("report_id")))
	if code == "" {
		addFlash(c, "danger", "Please enter a Report ID.")
		c.Redirect(http.StatusFound, "/track")
		return
	}

	report, err := cc.Reports.FindByCode(c.Request.Context(), code)
	if errors.Is(err, repository.ErrNotFound) {
		addFlash(c, "danger", "Report not found. Please check your Report ID and try again.")
		c.Redirect(http.StatusFound, "/track")
		return
	}
	if err != nil {
		cc.Log.Errorw("failed to look up report", "error", err)
		addFlash(c, "danger", "Could not look up your report. Please try again.")
		c.Redirect(http.StatusFound, "/track")
		return
	}

	c.Redirect(http.StatusFound, "/manage/"+report.ReportCode)
}

func (cc *CitizenController) ManageReport(c *gin.Context) {
	report, err := cc.Reports.FindByCode(c.Request.Context(), c.Param("code"))
	if errors.Is(err, repository.ErrNotFound) {
		notFound(c)
		return
	}
	if err != nil {
		cc.Log.Errorw("failed to load report", "error", err)
		serverError(c)
		return
	}

	c.HTML(http.StatusOK, "manage.html", gin.H{
		"Report":  report,
		"CanEdit": report.CanEdit(),
		"Flashes": takeFlashes(c),
	})
}

// ManageReportPost handles the self-service form: action "update" edits
// the report, action "delete_evidence" removes one file. A report that
// is no longer Pending is locked; the request redirects back without
// mutating anything.
func (cc *CitizenController) ManageReportPost(c *gin.Context) {
	report, err := cc.Reports.FindByCode(c.Request.Context(), c.Param("code"))
	if errors.Is(err, repository.ErrNotFound) {
		notFound(c)
		return
	}
	if err != nil {
		cc.Log.Errorw("failed to load report", "error", err)
		serverError(c)
		return
	}

	if report.CanEdit() {
		switch c.PostForm("action") {
		case "update":
			cc.updateReport(c, report)
		case "delete_evidence":
			cc.deleteEvidence(c, report)
		}
	}

	c.Redirect(http.StatusFound, "/manage/"+report.ReportCode)
}

func (cc *CitizenController) updateReport(c *gin.Context, report *models.Report) {
	corruptionType := strings.TrimSpace(c.PostForm("corruption_type"))
	description := strings.TrimSpace(c.PostForm("description"))
	location := strings.TrimSpace(c.PostForm("location"))

	if corruptionType == "" || description == "" {
		addFlash(c, "danger", "Please fill in all required fields.")
		return
	}

	saved := cc.saveUploads(c)

	report.CorruptionType = corruptionType
	report.Description = description
	report.Location = location

	if err := cc.Reports.UpdateWithEvidence(c.Request.Context(), report, saved); err != nil {
		cc.discardUploads(saved)
		cc.Log.Errorw("failed to update report", "code", report.ReportCode, "error", err)
		addFlash(c, "danger", "Could not update your report. Please try again.")
		return
	}

	addFlash(c, "success", "Report updated successfully!")
}

func (cc *CitizenController) deleteEvidence(c *gin.Context, report *models.Report) {
	id, err := strconv.ParseUint(c.PostForm("evidence_id"), 10, 32)
	if err != nil {
		return
	}

	evidence, err := cc.Evidence.FindForReport(c.Request.Context(), uint(id), report.ID)
	if err != nil {
		// Not this report's evidence (or gone already): no-op.
		if !errors.Is(err, repository.ErrNotFound) {
			cc.Log.Errorw("failed to look up evidence", "error", err)
		}
		return
	}

	if err := cc.Evidence.Delete(c.Request.Context(), evidence.ID); err != nil {
		cc.Log.Errorw("failed to delete evidence", "id", evidence.ID, "error", err)
		addFlash(c, "danger", "Could not delete the evidence file. Please try again.")
		return
	}
	if err := cc.Store.Remove(evidence.Filename); err != nil {
		cc.Log.Warnw("failed to remove evidence file", "filename", evidence.Filename, "error", err)
	}

	addFlash(c, "success", "Evidence file deleted successfully!")
}

// saveUploads stores every acceptable file from the "evidence" form
// field. Files with no name or a disallowed extension are skipped.
func (cc *CitizenController) saveUploads(c *gin.Context) []models.Evidence {
	form, err := c.MultipartForm()
	if err != nil {
		return nil
	}

	var saved []models.Evidence
	for _, fh := range form.File["evidence"] {
		if fh.Filename == "" || !cc.Store.Allowed(fh.Filename) {
			continue
		}
		evidence, err := cc.Store.Save(fh)
		if err != nil {
			cc.Log.Warnw("failed to store evidence file", "filename", fh.Filename, "error", err)
			continue
		}
		saved = append(saved, *evidence)
	}
	return saved
}

// discardUploads removes files written for a database write that failed,
// so they do not linger as orphans.
func (cc *CitizenController) discardUploads(saved []models.Evidence) {
	for _, evidence := range saved {
		if err := cc.Store.Remove(evidence.Filename); err != nil {
			cc.Log.Warnw("failed to remove orphaned file", "filename", evidence.Filename, "error", err)
		}
	}
}
