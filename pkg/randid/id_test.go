package randid

import (
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	id := Generate(8)
	if len(id) != 8 {
		t.Fatalf("Generate(8) length = %d, want 8", len(id))
	}
	for _, c := range id {
		if !strings.ContainsRune("abcdefghijklmnopqrstuvwxyz0123456789", c) {
			t.Errorf("unexpected character %q in id %q", c, id)
		}
	}
}

func TestClientID(t *testing.T) {
	id := ClientID("mqtt-inspector")
	if !strings.HasPrefix(id, "mqtt-inspector-") {
		t.Fatalf("ClientID = %q, want mqtt-inspector- prefix", id)
	}
	if len(id) != len("mqtt-inspector-")+8 {
		t.Errorf("ClientID length = %d, want %d", len(id), len("mqtt-inspector-")+8)
	}
}
