package sharepoint

import (
	"strings"

	"github.com/stenvik/anbud/internal/models"
)

// PurchaseFolder is the fixed project subfolder holding RFQ material.
const PurchaseFolder = "03 - Inköp och offerter"

// unsafe lists the characters SharePoint rejects in path segments.
const unsafe = `\/:*?"<>|`

// SanitizeSegment makes a string usable as a single folder name:
// path-unsafe characters become spaces and whitespace runs collapse.
func SanitizeSegment(s string) string {
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(unsafe, r) {
			b.WriteRune(' ')
		} else {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// ByggdelFolderName derives the folder name for a byggdel, e.g.
// "84 - VS Rör" for code "84" and label "VS/Rör".
func ByggdelFolderName(b models.Byggdel) string {
	name := b.Label
	if b.Code != "" {
		name = b.Code + " - " + b.Label
	}
	return SanitizeSegment(name)
}

// SupplierFolderName derives the folder name for a supplier.
func SupplierFolderName(name string) string {
	return SanitizeSegment(name)
}

// ByggdelPath builds the full folder path for a byggdel under a
// project root, forward-slash separated.
func ByggdelPath(projectRoot string, b models.Byggdel) string {
	return projectRoot + "/" + PurchaseFolder + "/" + ByggdelFolderName(b)
}

// PaketPath builds the full folder path for one supplier's paket under
// its byggdel folder.
func PaketPath(projectRoot string, b models.Byggdel, supplierName string) string {
	return ByggdelPath(projectRoot, b) + "/" + SupplierFolderName(supplierName)
}
