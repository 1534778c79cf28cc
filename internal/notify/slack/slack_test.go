package slack

import (
	"context"
	"errors"
	"testing"

	slackapi "github.com/slack-go/slack"
	"github.com/stenvik/anbud/internal/notify"
)

type mockClient struct {
	err      error
	calls    int
	channels []string
}

func (m *mockClient) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	m.calls++
	m.channels = append(m.channels, channelID)
	if m.err != nil {
		return "", "", m.err
	}
	return channelID, "123.456", nil
}

func TestNew_Validation(t *testing.T) {
	if _, err := New(AdapterOpts{ChannelID: "C1"}); err == nil {
		t.Error("expected error without token or injected client")
	}
	if _, err := New(AdapterOpts{BotToken: "xoxb-x"}); err == nil {
		t.Error("expected error without channel ID")
	}
}

func TestSend(t *testing.T) {
	mock := &mockClient{}
	a, err := New(AdapterOpts{ChannelID: "C1", Client: mock})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	evt := notify.Event{
		Title:    "Förfrågan skickad: 84 - VS",
		Body:     "Förfrågan skickad till Rörfirman AB.",
		Severity: "info",
		Fields:   []notify.Field{{Name: "Projekt", Value: "p1"}},
	}
	if err := a.Send(context.Background(), evt); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if mock.calls != 1 || mock.channels[0] != "C1" {
		t.Errorf("calls = %d, channels = %v", mock.calls, mock.channels)
	}
}

func TestSend_Error(t *testing.T) {
	mock := &mockClient{err: errors.New("channel_not_found")}
	a, err := New(AdapterOpts{ChannelID: "C1", Client: mock})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := a.Send(context.Background(), notify.Event{Title: "t"}); err == nil {
		t.Fatal("expected error from failed post")
	}
}

func TestEventToAttachment(t *testing.T) {
	att := eventToAttachment(notify.Event{
		Title:    "Offert besvarad: 84 - VS",
		Body:     "Rörfirman AB har besvarat förfrågan.",
		Severity: "success",
		Fields: []notify.Field{
			{Name: "Byggdel", Value: "84 - VS"},
			{Name: "Leverantör", Value: "Rörfirman AB"},
		},
	})

	if att.Color != "#36a64f" {
		t.Errorf("Color = %q, want success green", att.Color)
	}
	if len(att.Fields) != 2 || att.Fields[1].Title != "Leverantör" {
		t.Errorf("Fields = %+v", att.Fields)
	}
}

func TestSeverityColor(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"success", "#36a64f"},
		{"warning", "#f2c744"},
		{"info", "#439fe0"},
		{"", "#439fe0"},
	}
	for _, tt := range tests {
		if got := severityColor(tt.in); got != tt.want {
			t.Errorf("severityColor(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
