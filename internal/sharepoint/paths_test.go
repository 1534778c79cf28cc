package sharepoint

import (
	"strings"
	"testing"

	"github.com/stenvik/anbud/internal/models"
)

func TestSanitizeSegment(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"VS/Rör", "VS Rör"},
		{`a\b:c*d?e"f<g>h|i`, "a b c d e f g h i"},
		{"  spaced   out  ", "spaced out"},
		{"plain", "plain"},
		{"", ""},
		{"///", ""},
	}
	for _, tt := range tests {
		got := SanitizeSegment(tt.in)
		if got != tt.want {
			t.Errorf("SanitizeSegment(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestByggdelFolderName(t *testing.T) {
	b := models.Byggdel{Code: "84", Label: "VS/Rör", Category: "Installation"}
	got := ByggdelFolderName(b)

	if got != "84 - VS Rör" {
		t.Errorf("ByggdelFolderName = %q, want %q", got, "84 - VS Rör")
	}
	for _, c := range `\/:*?"<>|` {
		if strings.ContainsRune(got, c) {
			t.Errorf("folder name %q contains unsafe char %c", got, c)
		}
	}
}

func TestByggdelFolderName_NoCode(t *testing.T) {
	b := models.Byggdel{Label: "Målning"}
	if got := ByggdelFolderName(b); got != "Målning" {
		t.Errorf("ByggdelFolderName = %q, want %q", got, "Målning")
	}
}

func TestPaketPath(t *testing.T) {
	b := models.Byggdel{Code: "84", Label: "VS"}
	got := PaketPath("Projekt/husby-12", b, "Rörfirman AB")
	want := "Projekt/husby-12/03 - Inköp och offerter/84 - VS/Rörfirman AB"
	if got != want {
		t.Errorf("PaketPath = %q, want %q", got, want)
	}
}

func TestByggdelPath_SanitizesSupplierToo(t *testing.T) {
	b := models.Byggdel{Code: "55", Label: "El"}
	got := PaketPath("Projekt/p1", b, `El:installatören?`)
	if strings.Contains(got[len("Projekt/p1/"):], ":") || strings.Contains(got, "?") {
		t.Errorf("path %q contains unsafe characters from supplier name", got)
	}
}
