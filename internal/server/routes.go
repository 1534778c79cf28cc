package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stenvik/anbud/internal/audit"
	"github.com/stenvik/anbud/internal/byggdel"
	"github.com/stenvik/anbud/internal/errs"
	"github.com/stenvik/anbud/internal/models"
	"github.com/stenvik/anbud/internal/notify"
	"github.com/stenvik/anbud/internal/paket"
	"github.com/stenvik/anbud/internal/provision"
	"github.com/stenvik/anbud/internal/settings"
	"gorm.io/gorm"
)

// registerRoutes sets up all API routes on the Gin router.
func registerRoutes(router *gin.Engine, opts StartOpts) {
	router.GET("/api/health", handleHealth(opts.DB))

	p := router.Group("/api/projects/:projectID")
	{
		p.GET("/byggdelar", handleByggdelList(opts))
		p.POST("/byggdelar", handleByggdelCreate(opts))
		p.DELETE("/byggdelar/:id", handleByggdelDelete(opts))

		p.GET("/paket", handlePaketList(opts))
		p.POST("/paket", handlePaketCreate(opts))
		p.PATCH("/paket/:id", handlePaketUpdate(opts))
		p.DELETE("/paket/:id", handlePaketDelete(opts))

		p.GET("/paket/:id/notes", handleNoteList(opts))
		p.POST("/paket/:id/notes", handleNoteCreate(opts))

		p.GET("/settings", handleSettingsGet(opts))
		p.PUT("/settings", handleSettingsPut(opts))

		p.GET("/audit", handleAuditList(opts))

		p.GET("/events/byggdelar", handleByggdelStream(opts))
		p.GET("/events/paket", handlePaketStream(opts))
	}
}

// actorFrom reads the acting user from request headers. API callers
// identify themselves; absent headers fall back to a generic identity.
func actorFrom(c *gin.Context) models.Actor {
	a := models.Actor{
		UID:  c.GetHeader("X-Actor-Uid"),
		Name: c.GetHeader("X-Actor-Name"),
	}
	if a.UID == "" {
		a.UID = "api"
	}
	if a.Name == "" {
		a.Name = a.UID
	}
	return a
}

// fail writes an error response, mapping validation failures to 400.
func fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if errs.IsValidation(err) {
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func handleHealth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

func handleByggdelList(opts StartOpts) gin.HandlerFunc {
	return func(c *gin.Context) {
		includeDeleted := c.Query("include_deleted") == "true"
		items, err := byggdel.List(opts.DB, opts.CompanyID, c.Param("projectID"), includeDeleted)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": items})
	}
}

type byggdelCreateRequest struct {
	Label    string `json:"label"`
	Code     string `json:"code"`
	Category string `json:"category"`
	Moment   string `json:"moment"`
}

func handleByggdelCreate(opts StartOpts) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req byggdelCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body: " + err.Error()})
			return
		}

		projectID := c.Param("projectID")
		bd, err := byggdel.Create(opts.DB, byggdel.CreateOpts{
			CompanyID: opts.CompanyID,
			ProjectID: projectID,
			Label:     req.Label,
			Code:      req.Code,
			Category:  req.Category,
			Moment:    req.Moment,
		}, actorFrom(c))
		if err != nil {
			fail(c, err)
			return
		}

		// Folder provisioning is fire-and-forget: the response never
		// waits on it and never reports its failure.
		if opts.Ensurer != nil {
			if job, err := provision.EnqueueByggdel(opts.DB, opts.projectRoot(projectID), *bd); err == nil {
				provision.Kickoff(opts.DB, opts.Ensurer, job)
			}
		}

		c.JSON(http.StatusCreated, bd)
	}
}

func handleByggdelDelete(opts StartOpts) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := byggdel.SoftDelete(opts.DB, opts.CompanyID, c.Param("projectID"), c.Param("id"), actorFrom(c))
		if err != nil {
			fail(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func handlePaketList(opts StartOpts) gin.HandlerFunc {
	return func(c *gin.Context) {
		filters := paket.ListFilters{
			Section:        c.Query("section"),
			ByggdelID:      c.Query("byggdel_id"),
			Status:         c.Query("status"),
			IncludeDeleted: c.Query("include_deleted") == "true",
		}
		items, err := paket.List(opts.DB, opts.CompanyID, c.Param("projectID"), filters)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": items})
	}
}

type paketCreateRequest struct {
	Section      string `json:"section"`
	ByggdelID    string `json:"byggdelId"`
	ByggdelLabel string `json:"byggdelLabel"`
	SupplierID   string `json:"supplierId"`
	SupplierName string `json:"supplierName"`
	Status       string `json:"status"`
}

func handlePaketCreate(opts StartOpts) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req paketCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body: " + err.Error()})
			return
		}

		projectID := c.Param("projectID")

		// Advisory only: a concurrent creator can pass this check too.
		duplicate := false
		if req.ByggdelID != "" && req.SupplierName != "" {
			duplicate, _ = paket.SupplierExists(opts.DB, opts.CompanyID, projectID, req.ByggdelID, req.SupplierName)
		}

		p, err := paket.Create(opts.DB, paket.CreateOpts{
			CompanyID:    opts.CompanyID,
			ProjectID:    projectID,
			Section:      req.Section,
			ByggdelID:    req.ByggdelID,
			ByggdelLabel: req.ByggdelLabel,
			SupplierID:   req.SupplierID,
			SupplierName: req.SupplierName,
			Status:       req.Status,
		}, actorFrom(c))
		if err != nil {
			fail(c, err)
			return
		}

		if opts.Ensurer != nil {
			if bd, err := byggdel.Get(opts.DB, opts.CompanyID, projectID, p.ByggdelID); err == nil {
				if job, err := provision.EnqueuePaket(opts.DB, opts.projectRoot(projectID), *bd, *p); err == nil {
					provision.Kickoff(opts.DB, opts.Ensurer, job)
				}
			}
		}

		c.JSON(http.StatusCreated, gin.H{"paket": p, "duplicateSupplier": duplicate})
	}
}

// patchColumns maps JSON patch keys to store columns.
var patchColumns = map[string]string{
	"status":       "status",
	"sentAt":       "sent_at",
	"answeredAt":   "answered_at",
	"supplierName": "supplier_name",
	"supplierId":   "supplier_id",
	"byggdelLabel": "byggdel_label",
	"folderPath":   "folder_path",
	"section":      "section",
	"deleted":      "deleted",
}

// translatePatch converts a JSON body into a store patch, parsing
// RFC3339 strings for the timestamp fields.
func translatePatch(body map[string]interface{}) map[string]interface{} {
	patch := make(map[string]interface{}, len(body))
	for key, col := range patchColumns {
		v, ok := body[key]
		if !ok {
			continue
		}
		if col == "sent_at" || col == "answered_at" {
			switch tv := v.(type) {
			case string:
				if ts, err := time.Parse(time.RFC3339, tv); err == nil {
					patch[col] = ts
				}
			case nil:
				patch[col] = nil
			}
			continue
		}
		patch[col] = v
	}
	return patch
}

func handlePaketUpdate(opts StartOpts) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body map[string]interface{}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body: " + err.Error()})
			return
		}

		p, err := paket.Update(opts.DB, opts.CompanyID, c.Param("projectID"), c.Param("id"),
			translatePatch(body), actorFrom(c))
		if err != nil {
			fail(c, err)
			return
		}

		// Best-effort notification on status transitions.
		if _, changed := body["status"]; changed && opts.Notifier != nil {
			if evt, ok := notify.ForStatus(*p); ok {
				go opts.Notifier.Send(context.Background(), evt)
			}
		}

		c.JSON(http.StatusOK, p)
	}
}

func handlePaketDelete(opts StartOpts) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := paket.SoftDelete(opts.DB, opts.CompanyID, c.Param("projectID"), c.Param("id"), actorFrom(c))
		if err != nil {
			fail(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func handleNoteList(opts StartOpts) gin.HandlerFunc {
	return func(c *gin.Context) {
		notes, err := paket.Notes(opts.DB, c.Param("id"))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": notes})
	}
}

type noteCreateRequest struct {
	Text string `json:"text"`
}

func handleNoteCreate(opts StartOpts) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req noteCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body: " + err.Error()})
			return
		}

		note, err := paket.AddNote(opts.DB, opts.CompanyID, c.Param("projectID"), c.Param("id"), req.Text, actorFrom(c))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, note)
	}
}

func handleSettingsGet(opts StartOpts) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := settings.Get(opts.DB, opts.CompanyID, c.Param("projectID"))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, s)
	}
}

type settingsPutRequest struct {
	StructureMode string `json:"structureMode"`
}

func handleSettingsPut(opts StartOpts) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req settingsPutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body: " + err.Error()})
			return
		}

		projectID := c.Param("projectID")
		if err := settings.SetStructureMode(opts.DB, opts.CompanyID, projectID, req.StructureMode, actorFrom(c)); err != nil {
			fail(c, err)
			return
		}

		s, err := settings.Get(opts.DB, opts.CompanyID, projectID)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, s)
	}
}

func handleAuditList(opts StartOpts) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
		entries, err := audit.Recent(opts.DB, opts.CompanyID, c.Param("projectID"), limit)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": entries})
	}
}
