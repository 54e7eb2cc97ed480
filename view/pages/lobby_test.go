package pages

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/mmuslimabdulj/spyroom/internal/domain"
)

func render(t *testing.T, rooms []domain.RoomSummary) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Lobby(rooms).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

func TestLobby_Empty(t *testing.T) {
	out := render(t, nil)
	if !strings.Contains(out, "No rooms yet") {
		t.Errorf("Expected empty state, got %s", out)
	}
	if !strings.HasPrefix(strings.ToLower(out), "<!doctype html>") || !strings.Contains(out, "</html>") {
		t.Error("Expected a full document")
	}
}

func TestLobby_ListsRooms(t *testing.T) {
	out := render(t, []domain.RoomSummary{
		{Code: "ABCD", HostName: "Alice", OnlinePlayers: 3, State: domain.StateActive},
	})

	for _, want := range []string{`data-code="ABCD"`, "hosted by Alice", "3 online", `data-state="active"`} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in %s", want, out)
		}
	}
}

func TestLobby_EscapesHostName(t *testing.T) {
	out := render(t, []domain.RoomSummary{{Code: "ABCD", HostName: `<img src=x onerror="x">`}})

	if strings.Contains(out, "<img") {
		t.Errorf("host name must be escaped: %s", out)
	}
	if !strings.Contains(out, "&lt;img") {
		t.Errorf("Expected escaped markup, got %s", out)
	}
}

func TestLobby_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	if err := Lobby(nil).Render(ctx, &buf); err == nil {
		t.Error("Expected render to stop on a cancelled context")
	}
	if buf.Len() != 0 {
		t.Errorf("Expected nothing written, got %q", buf.String())
	}
}
