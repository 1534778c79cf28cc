package discord

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stenvik/anbud/internal/notify"
)

type mockSession struct {
	openErr error
	sendErr error
	opened  bool
	closed  bool
	embeds  []*discordgo.MessageEmbed
}

func (m *mockSession) Open() error {
	if m.openErr != nil {
		return m.openErr
	}
	m.opened = true
	return nil
}

func (m *mockSession) Close() error {
	m.closed = true
	return nil
}

func (m *mockSession) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	if m.sendErr != nil {
		return nil, m.sendErr
	}
	m.embeds = append(m.embeds, embed)
	return &discordgo.Message{}, nil
}

func TestNew_Validation(t *testing.T) {
	if _, err := New(AdapterOpts{ChannelID: "456"}); err == nil {
		t.Error("expected error without token or injected session")
	}
	if _, err := New(AdapterOpts{Session: &mockSession{}}); err == nil {
		t.Error("expected error without channel ID")
	}
}

func TestNew_OpenFailure(t *testing.T) {
	sess := &mockSession{openErr: errors.New("gateway unreachable")}
	if _, err := New(AdapterOpts{ChannelID: "456", Session: sess}); err == nil {
		t.Fatal("expected error from failed open")
	}
}

func TestSend(t *testing.T) {
	sess := &mockSession{}
	a, err := New(AdapterOpts{ChannelID: "456", Session: sess})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !sess.opened {
		t.Fatal("session not opened")
	}

	evt := notify.Event{
		Title:    "Offert besvarad: 84 - VS",
		Body:     "Rörfirman AB har besvarat förfrågan.",
		Severity: "success",
		Fields:   []notify.Field{{Name: "Projekt", Value: "p1"}},
	}
	if err := a.Send(context.Background(), evt); err != nil {
		t.Fatalf("Send: %v", err)
	}

	if len(sess.embeds) != 1 {
		t.Fatalf("embeds = %d, want 1", len(sess.embeds))
	}
	embed := sess.embeds[0]
	if embed.Title != evt.Title || embed.Color != 0x36a64f {
		t.Errorf("embed = %+v", embed)
	}
	if len(embed.Fields) != 1 || embed.Fields[0].Name != "Projekt" {
		t.Errorf("embed fields = %+v", embed.Fields)
	}
}

func TestSend_Error(t *testing.T) {
	sess := &mockSession{sendErr: errors.New("missing permissions")}
	a, err := New(AdapterOpts{ChannelID: "456", Session: sess})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := a.Send(context.Background(), notify.Event{Title: "t"}); err == nil {
		t.Fatal("expected error from failed send")
	}
}

func TestClose_Idempotent(t *testing.T) {
	sess := &mockSession{}
	a, err := New(AdapterOpts{ChannelID: "456", Session: sess})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !sess.closed {
		t.Error("session not closed")
	}

	sess.closed = false
	if err := a.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if sess.closed {
		t.Error("second Close must not hit the session again")
	}
}
