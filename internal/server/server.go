// Package server exposes the RFQ workflow over HTTP: a JSON API for
// the CRUD operations plus SSE streams carrying the same full-list
// snapshots the live subscriptions deliver.
package server

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stenvik/anbud/internal/notify"
	"github.com/stenvik/anbud/internal/sharepoint"
	"gorm.io/gorm"
)

// StartOpts holds configuration for the API server.
type StartOpts struct {
	DB        *gorm.DB
	CompanyID string
	Port      int
	Out       io.Writer

	// Ensurer provisions folders best-effort; nil disables provisioning.
	Ensurer sharepoint.FolderEnsurer
	// SharePointRoot is the site-relative root for project folders.
	SharePointRoot string
	// Notifier receives status-change events; nil disables notifications.
	Notifier notify.Notifier
}

// projectRoot derives the folder root for one project.
func (o StartOpts) projectRoot(projectID string) string {
	root := o.SharePointRoot
	if root == "" {
		root = "Projekt"
	}
	return root + "/" + projectID
}

// Start launches the API server. It blocks until ctx is cancelled,
// then shuts down gracefully.
func Start(ctx context.Context, opts StartOpts) error {
	if opts.DB == nil {
		return fmt.Errorf("server: db is required")
	}
	if opts.CompanyID == "" {
		return fmt.Errorf("server: company ID is required")
	}
	if opts.Port <= 0 {
		opts.Port = 8080
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	registerRoutes(router, opts)

	addr := fmt.Sprintf(":%d", opts.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()

	if opts.Out != nil {
		fmt.Fprintf(opts.Out, "API listening at http://localhost:%d\n", opts.Port)
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}
