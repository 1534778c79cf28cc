package main

import (
	"fmt"
	"io"
	"time"

	"github.com/stenvik/anbud/internal/models"
	"github.com/stenvik/anbud/internal/paket"
)

// projectOrDefault picks the flag value over the config default.
func projectOrDefault(flag, configured string) string {
	if flag != "" {
		return flag
	}
	return configured
}

// statusGlyph maps a paket status to a one-character marker.
func statusGlyph(status string) string {
	switch status {
	case paket.StatusSkickad:
		return "→"
	case paket.StatusBesvarad:
		return "✓"
	default:
		return "·"
	}
}

// formatStamp renders an optional timestamp for list output.
func formatStamp(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("2006-01-02 15:04")
}

func printByggdelList(out io.Writer, items []models.Byggdel) {
	if len(items) == 0 {
		fmt.Fprintln(out, "No byggdelar.")
		return
	}
	for _, bd := range items {
		marker := " "
		if bd.Deleted {
			marker = "x"
		}
		code := bd.Code
		if code == "" {
			code = "--"
		}
		folder := ""
		if bd.FolderPath != "" {
			folder = "  [" + bd.FolderPath + "]"
		}
		fmt.Fprintf(out, "%s %-10s %-4s %s%s\n", marker, bd.ID, code, bd.Label, folder)
	}
}

func printPaketList(out io.Writer, items []models.Paket) {
	if len(items) == 0 {
		fmt.Fprintln(out, "No paket.")
		return
	}
	for _, p := range items {
		fmt.Fprintf(out, "%s %-11s %-28s %-20s %-11s sent:%-17s answered:%s\n",
			statusGlyph(p.Status), p.ID, truncate(p.ByggdelLabel, 28), truncate(p.SupplierName, 20),
			p.Status, formatStamp(p.SentAt), formatStamp(p.AnsweredAt))
	}
}

// truncate shortens s to max runes, appending an ellipsis when cut.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}
