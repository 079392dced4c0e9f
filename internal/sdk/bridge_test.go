package sdk

import (
	"strings"
	"testing"
)

func TestBridgeScriptEmbedsContext(t *testing.T) {
	script, err := BridgeScript(Context{
		SessionID: "sess-1",
		GameID:    "game-1",
		Locale:    "en",
	})
	if err != nil {
		t.Fatalf("BridgeScript() error = %v", err)
	}

	for _, want := range []string{
		`"session_id":"sess-1"`,
		`"game_id":"game-1"`,
		`"locale":"en"`,
		"window.__KIX_CONTEXT__",
	} {
		if !strings.Contains(script, want) {
			t.Errorf("script missing %q", want)
		}
	}
}

func TestBridgeScriptHandlesAllMessageTypes(t *testing.T) {
	script, err := BridgeScript(Context{})
	if err != nil {
		t.Fatalf("BridgeScript() error = %v", err)
	}

	for _, msg := range []string{MsgStart, MsgPause, MsgResume, MsgDestroy, MsgReady, MsgNoSDK} {
		if !strings.Contains(script, msg) {
			t.Errorf("script does not reference %q", msg)
		}
	}
}
