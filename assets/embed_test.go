package assets

import (
	"strings"
	"testing"
)

func TestMessage(t *testing.T) {
	direct := Message(DirectMessage)
	if !strings.HasPrefix(direct, "Hello Aaron.") || strings.HasSuffix(direct, "\n") {
		t.Fatalf("unexpected direct message %q", direct)
	}
	if !strings.HasPrefix(Message(GroupMessage), "Hi guys") {
		t.Fatal("unexpected group message")
	}
	if Message("missing.txt") != "" {
		t.Fatal("unknown name must yield empty text")
	}
}
