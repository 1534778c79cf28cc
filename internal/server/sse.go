package server

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stenvik/anbud/internal/models"
	"github.com/stenvik/anbud/internal/paket"
	"github.com/stenvik/anbud/internal/watch"
)

const heartbeatInterval = 15 * time.Second

// handleByggdelStream streams full byggdel-list snapshots over SSE.
// Each event carries the complete current list, mirroring the
// subscription contract the mobile clients get from their snapshot
// listeners.
func handleByggdelStream(opts StartOpts) gin.HandlerFunc {
	return func(c *gin.Context) {
		sseHeaders(c)
		writeSSE(c.Writer, "connected", map[string]string{"type": "connected"})
		c.Writer.Flush()

		includeDeleted := c.Query("include_deleted") == "true"

		snapshots := make(chan []models.Byggdel, 8)
		unsubscribe := watch.Byggdelar(opts.DB, opts.CompanyID, c.Param("projectID"),
			includeDeleted, watch.Options{},
			func(items []models.Byggdel) {
				select {
				case snapshots <- items:
				default:
				}
			}, nil)
		defer unsubscribe()

		streamSnapshots(c, func(w io.Writer) bool {
			select {
			case items := <-snapshots:
				writeSSE(w, "byggdelar", gin.H{"items": items})
				return true
			default:
				return false
			}
		})
	}
}

// handlePaketStream streams full paket-list snapshots over SSE.
func handlePaketStream(opts StartOpts) gin.HandlerFunc {
	return func(c *gin.Context) {
		sseHeaders(c)
		writeSSE(c.Writer, "connected", map[string]string{"type": "connected"})
		c.Writer.Flush()

		filters := paket.ListFilters{
			Section:        c.Query("section"),
			ByggdelID:      c.Query("byggdel_id"),
			IncludeDeleted: c.Query("include_deleted") == "true",
		}

		snapshots := make(chan []models.Paket, 8)
		unsubscribe := watch.Paket(opts.DB, opts.CompanyID, c.Param("projectID"),
			filters, watch.Options{},
			func(items []models.Paket) {
				select {
				case snapshots <- items:
				default:
				}
			}, nil)
		defer unsubscribe()

		streamSnapshots(c, func(w io.Writer) bool {
			select {
			case items := <-snapshots:
				writeSSE(w, "paket", gin.H{"items": items})
				return true
			default:
				return false
			}
		})
	}
}

// streamSnapshots pumps queued snapshots to the client until it goes
// away, with periodic heartbeats so proxies keep the stream open.
func streamSnapshots(c *gin.Context, drain func(io.Writer) bool) {
	ctx := c.Request.Context()
	ticker := time.NewTicker(250 * time.Millisecond)
	heartbeat := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-heartbeat.C:
			writeSSE(c.Writer, "heartbeat", map[string]string{
				"timestamp": time.Now().UTC().Format(time.RFC3339),
			})
			c.Writer.Flush()
		case <-ticker.C:
			wrote := false
			for drain(c.Writer) {
				wrote = true
			}
			if wrote {
				c.Writer.Flush()
			}
		}
	}
}

func sseHeaders(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
}

// writeSSE writes a single SSE event to the writer.
func writeSSE(w io.Writer, event string, data any) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, string(jsonData))
}
