//go:build hotkey

package hotkeys

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wailsapp/wails/v2/pkg/logger"
	"golang.design/x/hotkey"
)

func TestParse(t *testing.T) {
	mods, key, err := Parse(" Ctrl+Shift+H ")
	require.NoError(t, err)
	assert.Equal(t, hotkey.KeyH, key)
	assert.Equal(t, []hotkey.Modifier{modifiers["ctrl"], modifiers["shift"]}, mods)

	_, key, err = Parse("alt+f11")
	require.NoError(t, err)
	assert.Equal(t, hotkey.KeyF11, key)
}

func TestParse_Errors(t *testing.T) {
	for _, combo := range []string{"h", "ctrl+", "meta+h", "ctrl+shift+enter"} {
		_, _, err := Parse(combo)
		assert.Error(t, err, combo)
	}
}

func TestService_InvalidCombo(t *testing.T) {
	svc := NewService("hyper+h", func() {}, logger.NewDefaultLogger())
	assert.Error(t, svc.Start(context.Background()))
}
