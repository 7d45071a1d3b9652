package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"chatshell/internal/events"
)

func TestJSString_Escapes(t *testing.T) {
	assert.Equal(t, `"a\"b"`, jsString(`a"b`))
	assert.Equal(t, `"line\nbreak"`, jsString("line\nbreak"))
}

func TestNavigateScript(t *testing.T) {
	got := navigateScript(`https://x.example.com/chat");alert("`)
	assert.Equal(t, `window.location.replace("https://x.example.com/chat\");alert(\"");`, got)
}

func TestInsertCSSScript(t *testing.T) {
	script := insertCSSScript(ChatCSSOverride)
	assert.Contains(t, script, `"chatshell-style"`)
	assert.Contains(t, script, ".hc-video-call-btn-link { display:none !important; }")
}

func TestZoomScript(t *testing.T) {
	assert.Equal(t, `document.documentElement.style.zoom = "1";`, zoomScript(1.0))
	assert.Equal(t, `document.documentElement.style.zoom = "1.2";`, zoomScript(1.2))
}

func TestBridgeScript_PostsPageChannels(t *testing.T) {
	script := bridgeScript()
	for _, name := range events.PageChannels {
		assert.Contains(t, script, `"`+name+`"`)
	}
	assert.NotContains(t, script, "OPEN_EXTERNAL")
	assert.Contains(t, script, `"EE" + JSON.stringify`)
	assert.Contains(t, script, "window.chrome.webview.postMessage")
	assert.Contains(t, script, "handlers.external.postMessage")
	assert.NotContains(t, script, "window.go.", "the remote page has no generated bindings")
}

func TestClickScript(t *testing.T) {
	script := clickScript([]string{".a", "[data-x='1']"})
	assert.Contains(t, script, `[".a","[data-x='1']"]`)
	assert.Contains(t, script, "target.click()")
}

func TestZoomScript_FloorsRenderedZoom(t *testing.T) {
	assert.Equal(t, zoomScript(MinRenderedZoom), zoomScript(-0.4))
	assert.Equal(t, zoomScript(MinRenderedZoom), zoomScript(0))
}
