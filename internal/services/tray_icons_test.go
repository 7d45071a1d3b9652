package services

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pngMagic = []byte{0x89, 'P', 'N', 'G'}
	icoMagic = []byte{0x00, 0x00, 0x01, 0x00}
)

func TestTrayIconPaths(t *testing.T) {
	assert.Equal(t, "images/64x64/hipchat-mono.png", TrayIconPaths("linux").Normal)
	assert.Equal(t, "images/16x16/hipchat-alert.ico", TrayIconPaths("windows").Alert)
	assert.Equal(t, "images/32x32/hipchat-attention@2x.png", TrayIconPaths("darwin").Alert)
	assert.Equal(t, defaultTrayIcons, TrayIconPaths("plan9"))
}

func TestLoadTrayIcons(t *testing.T) {
	cases := map[string][]byte{
		"linux":   pngMagic,
		"darwin":  pngMagic,
		"windows": icoMagic,
		"freebsd": pngMagic,
	}
	for goos, magic := range cases {
		t.Run(goos, func(t *testing.T) {
			icons, err := LoadTrayIcons(goos)
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(icons.Normal, magic))
			assert.True(t, bytes.HasPrefix(icons.Alert, magic))
		})
	}
}

func TestLoadTrayIcons_AlertDiffers(t *testing.T) {
	icons, err := LoadTrayIcons("linux")
	require.NoError(t, err)
	assert.NotEqual(t, icons.Normal, icons.Alert)
}
