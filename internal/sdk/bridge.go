// Package sdk renders the bridge script injected into game frames. The
// script runs inside untrusted content: it must tolerate window.GameSDK
// being absent and must never throw on a missing handler.
package sdk

import (
	"encoding/json"
	"fmt"
)

// Message types on the postMessage wire, namespaced to avoid colliding with
// whatever else the embedded page listens for.
const (
	MsgStart   = "kix:start"
	MsgPause   = "kix:pause"
	MsgResume  = "kix:resume"
	MsgDestroy = "kix:destroy"
	MsgReady   = "kix:ready"
	MsgNoSDK   = "kix:no-sdk"
)

// Context is handed to the game via a global before its SDK initializes.
type Context struct {
	SessionID    string          `json:"session_id"`
	GameID       string          `json:"game_id"`
	Locale       string          `json:"locale"`
	FeatureFlags map[string]bool `json:"feature_flags,omitempty"`
}

// BridgeScript renders the bridge with the context embedded as a literal.
func BridgeScript(ctx Context) (string, error) {
	data, err := json.Marshal(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to encode sdk context: %w", err)
	}
	return fmt.Sprintf(bridgeTemplate, data), nil
}

const bridgeTemplate = `(function () {
  window.__KIX_CONTEXT__ = %s;

  // Lifecycle commands from the host. Every handler is optional: probe for
  // a function before calling so a partial SDK never throws.
  window.addEventListener('message', function (event) {
    if (!event.data || !event.data.type) return;
    var sdk = window.GameSDK;
    if (!sdk) return;

    switch (event.data.type) {
      case 'kix:start':
        if (typeof sdk.start === 'function') sdk.start();
        break;
      case 'kix:pause':
        if (typeof sdk.pause === 'function') sdk.pause();
        break;
      case 'kix:resume':
        if (typeof sdk.resume === 'function') sdk.resume();
        break;
      case 'kix:destroy':
        if (typeof sdk.destroy === 'function') sdk.destroy();
        break;
    }
  });

  // Announce to the host once the frame settles. A page without a GameSDK
  // is a normal success: it just does not participate in the lifecycle.
  window.addEventListener('load', function () {
    var sdk = window.GameSDK;
    if (sdk && typeof sdk.init === 'function') {
      sdk.init(window.__KIX_CONTEXT__);
      window.parent.postMessage({ type: 'kix:ready' }, '*');
    } else {
      window.parent.postMessage({ type: 'kix:no-sdk' }, '*');
    }
  });
})();
`
