package command

import (
	"context"
	"errors"
	"testing"

	"github.com/hammamikhairi/recipebox/internal/logger"
)

type sinkRecorder struct {
	chat   []string
	urgent []string
}

func (s *sinkRecorder) PrintChat(text string)   { s.chat = append(s.chat, text) }
func (s *sinkRecorder) PrintUrgent(text string) { s.urgent = append(s.urgent, text) }

func TestCLINotifier(t *testing.T) {
	sink := &sinkRecorder{}
	n := NewCLINotifier(logger.New(logger.LevelOff, nil), sink)
	ctx := context.Background()

	if err := n.Notify(ctx, "Added Tea."); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if err := n.NotifyUrgent(ctx, "not saved"); err != nil {
		t.Fatalf("notify urgent: %v", err)
	}

	if len(sink.chat) != 1 || sink.chat[0] != "Added Tea." {
		t.Errorf("unexpected chat lines %q", sink.chat)
	}
	if len(sink.urgent) != 1 || sink.urgent[0] != "not saved" {
		t.Errorf("unexpected urgent lines %q", sink.urgent)
	}
}

func TestCLINotifierAfterCancel(t *testing.T) {
	sink := &sinkRecorder{}
	n := NewCLINotifier(logger.New(logger.LevelOff, nil), sink)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := n.Notify(ctx, "Added Tea."); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(sink.chat) != 0 {
		t.Fatalf("notice shown after cancel: %q", sink.chat)
	}

	_ = n.NotifyUrgent(ctx, "not saved")
	if len(sink.urgent) != 1 {
		t.Fatal("urgent warning must still be shown after cancel")
	}
}
