// Package notify bridges RFQ events to chat platforms (Slack, Discord).
// Notifications are outbound-only and best-effort: a failed send is
// logged and swallowed, never surfaced to the workflow that caused it.
package notify

import (
	"context"
	"fmt"
	"log"

	"github.com/stenvik/anbud/internal/models"
	"github.com/stenvik/anbud/internal/paket"
)

// Event is a formatted notification ready for any platform.
type Event struct {
	Title    string
	Body     string
	Severity string // "info", "success", "warning"
	Fields   []Field
}

// Field is a key-value pair displayed alongside an event.
type Field struct {
	Name  string
	Value string
}

// Notifier is the interface platform adapters must satisfy.
type Notifier interface {
	// Send delivers an event to the platform.
	Send(ctx context.Context, evt Event) error

	// Close shuts down the adapter.
	Close() error
}

// Multi fans an event out to several notifiers, absorbing individual
// failures.
type Multi []Notifier

// Send delivers the event to every adapter. Errors are logged, not
// returned.
func (m Multi) Send(ctx context.Context, evt Event) error {
	for _, n := range m {
		if err := n.Send(ctx, evt); err != nil {
			log.Printf("notify: send %q: %v", evt.Title, err)
		}
	}
	return nil
}

// Close closes every adapter.
func (m Multi) Close() error {
	for _, n := range m {
		n.Close()
	}
	return nil
}

// PaketBesvarad formats the event for a package whose status reached
// Besvarad.
func PaketBesvarad(p models.Paket) Event {
	return Event{
		Title:    fmt.Sprintf("Offert besvarad: %s", p.ByggdelLabel),
		Body:     fmt.Sprintf("%s har besvarat förfrågan för %s.", p.SupplierName, p.ByggdelLabel),
		Severity: "success",
		Fields: []Field{
			{Name: "Byggdel", Value: p.ByggdelLabel},
			{Name: "Leverantör", Value: p.SupplierName},
			{Name: "Projekt", Value: p.ProjectID},
		},
	}
}

// PaketSkickad formats the event for a package that was just sent.
func PaketSkickad(p models.Paket) Event {
	return Event{
		Title:    fmt.Sprintf("Förfrågan skickad: %s", p.ByggdelLabel),
		Body:     fmt.Sprintf("Förfrågan skickad till %s för %s.", p.SupplierName, p.ByggdelLabel),
		Severity: "info",
		Fields: []Field{
			{Name: "Byggdel", Value: p.ByggdelLabel},
			{Name: "Leverantör", Value: p.SupplierName},
			{Name: "Projekt", Value: p.ProjectID},
		},
	}
}

// ForStatus returns the event for a status transition, or false when
// the transition is not notified.
func ForStatus(p models.Paket) (Event, bool) {
	switch p.Status {
	case paket.StatusSkickad:
		return PaketSkickad(p), true
	case paket.StatusBesvarad:
		return PaketBesvarad(p), true
	default:
		return Event{}, false
	}
}
