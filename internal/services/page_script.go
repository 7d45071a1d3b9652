package services

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"chatshell/internal/events"
)

// ChatCSSOverride adapts the hosted page to a frameless desktop window.
const ChatCSSOverride = "#logo { margin-left: 60px; } header { -webkit-user-select: none;  -webkit-app-region: drag; } .activity-icon{ display:none; } .hc-video-call-btn-link { display:none !important; } "

// jsString renders s as a JavaScript string literal.
func jsString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func navigateScript(url string) string {
	return fmt.Sprintf("window.location.replace(%s);", jsString(url))
}

func insertCSSScript(css string) string {
	return fmt.Sprintf(`(function () {
  var id = "chatshell-style";
  var el = document.getElementById(id);
  if (!el) {
    el = document.createElement("style");
    el.id = id;
    (document.head || document.documentElement).appendChild(el);
  }
  el.textContent = %s;
})();`, jsString(css))
}

// MinRenderedZoom is the smallest factor pushed into the page.
const MinRenderedZoom = 0.2

func zoomScript(zoom float64) string {
	if zoom < MinRenderedZoom {
		zoom = MinRenderedZoom
	}
	return fmt.Sprintf(`document.documentElement.style.zoom = %s;`,
		jsString(strconv.FormatFloat(zoom, 'f', -1, 64)))
}

// Selectors for HipChat web client controls, tried in order.
var (
	unreadRoomSelectors = []string{
		".hc-lobby-list .hc-mention",
		".hc-tabs .hc-badge-mention",
		".aui-nav .hc-unread",
		"[data-mention-count]:not([data-mention-count='0'])",
	}
	closeRoomSelectors = []string{
		".hc-tab.hc-tab-active .hc-close",
		".hc-tabs .aui-nav-selected .hc-close-icon",
		"[data-action='close-room']",
	}
)

// clickScript clicks the first element matching one of selectors, or its
// nearest clickable ancestor.
func clickScript(selectors []string) string {
	list, _ := json.Marshal(selectors)
	return fmt.Sprintf(`(function () {
  var selectors = %s;
  for (var i = 0; i < selectors.length; i++) {
    var el = document.querySelector(selectors[i]);
    if (!el) { continue; }
    var target = el.closest ? (el.closest("a,button,[role=button],li") || el) : el;
    target.click();
    return true;
  }
  return false;
})();`, list)
}

// bridgeScript wires the hosted page to the shell. The remote page has no
// Wails runtime, so messages are posted straight to the webview's native
// handler in the runtime's event wire format ("EE" + JSON). Links that
// would open a new window go to the OS browser and the unread count from
// the title is reported back.
func bridgeScript() string {
	return strings.NewReplacer(
		"OPEN_EXTERNAL", jsString(events.PageOpenExternal),
		"MENTIONS", jsString(events.PageMentions),
	).Replace(`(function () {
  if (window.__chatshellBridge) { return; }
  window.__chatshellBridge = true;
  var post = function (name, value) {
    var msg = "EE" + JSON.stringify({ name: name, data: [value] });
    if (window.chrome && window.chrome.webview) {
      window.chrome.webview.postMessage(msg);
      return true;
    }
    var handlers = window.webkit && window.webkit.messageHandlers;
    if (handlers && handlers.external) {
      handlers.external.postMessage(msg);
      return true;
    }
    return false;
  };
  document.addEventListener("click", function (e) {
    var a = e.target && e.target.closest ? e.target.closest("a[target=_blank]") : null;
    if (!a || !a.href) { return; }
    if (post(OPEN_EXTERNAL, a.href)) { e.preventDefault(); }
  }, true);
  var open = window.open;
  window.open = function (url) {
    if (url && post(OPEN_EXTERNAL, new URL(String(url), window.location.href).href)) {
      return null;
    }
    return open.apply(window, arguments);
  };
  var last = -1;
  var report = function () {
    var m = /^\((\d+)\)/.exec(document.title || "");
    var n = m ? parseInt(m[1], 10) : 0;
    if (n !== last && post(MENTIONS, n)) { last = n; }
  };
  new MutationObserver(report).observe(document.head || document.documentElement,
    { childList: true, characterData: true, subtree: true });
  report();
})();`)
}
