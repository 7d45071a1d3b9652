package services

import (
	"github.com/wailsapp/wails/v2/pkg/menu"
	"github.com/wailsapp/wails/v2/pkg/menu/keys"
)

// BuildApplicationMenu builds the application menu for goos.
func BuildApplicationMenu(a *Actions, title, goos string) *menu.Menu {
	isMac := goos == "darwin"
	root := menu.NewMenu()
	if isMac {
		root.Append(menu.AppMenu())
	}

	chat := root.AddSubmenu(title)
	chat.AddText("New Chat", keys.CmdOrCtrl("n"), func(*menu.CallbackData) { a.NewChat() })
	chat.AddText("Invite to Room", nil, func(*menu.CallbackData) { a.InviteToRoom() })
	chat.AddText("Go To Unread Message", keys.CmdOrCtrl("g"), func(*menu.CallbackData) { a.GotoUnread() })
	chat.AddText("Close Room", keys.CmdOrCtrl("w"), func(*menu.CallbackData) { a.CloseRoom() })
	hidden(chat.AddText("Previous Room", keys.CmdOrCtrl("page up"), func(*menu.CallbackData) { a.PreviousRoom() }))
	hidden(chat.AddText("Previous Room", keys.Combo("tab", keys.CmdOrCtrlKey, keys.ShiftKey), func(*menu.CallbackData) { a.PreviousRoom() }))
	hidden(chat.AddText("Next Room", keys.CmdOrCtrl("page down"), func(*menu.CallbackData) { a.NextRoom() }))
	hidden(chat.AddText("Next Room", keys.CmdOrCtrl("tab"), func(*menu.CallbackData) { a.NextRoom() }))
	chat.AddSeparator()
	chat.AddText("Logout", nil, func(*menu.CallbackData) { a.Logout() })
	chat.AddText("Quit", keys.CmdOrCtrl("q"), func(*menu.CallbackData) { a.Quit() })

	// Edit roles are only honoured on macOS; elsewhere the webview handles
	// the clipboard keys itself.
	if isMac {
		root.Append(menu.EditMenu())
	}

	fullscreen := keys.Key("f11")
	if isMac {
		fullscreen = keys.Combo("f", keys.ControlKey, keys.CmdOrCtrlKey)
	}
	view := root.AddSubmenu("View")
	view.AddText("Reload", keys.CmdOrCtrl("r"), func(*menu.CallbackData) { a.Reload() })
	view.AddText("Toggle Full Screen", fullscreen, func(*menu.CallbackData) { a.ToggleFullscreen() })
	view.AddSeparator()
	view.AddText("Zoom In", keys.CmdOrCtrl("="), func(*menu.CallbackData) { a.ZoomIn() })
	view.AddText("Zoom Out", keys.CmdOrCtrl("-"), func(*menu.CallbackData) { a.ZoomOut() })
	view.AddText("Reset Zoom", keys.CmdOrCtrl("0"), func(*menu.CallbackData) { a.ResetZoom() })

	if isMac {
		root.Append(menu.WindowMenu())
	} else {
		window := root.AddSubmenu("Window")
		window.AddText("Minimize", keys.CmdOrCtrl("m"), func(*menu.CallbackData) { a.Minimise() })
		window.AddText("Close", nil, func(*menu.CallbackData) { a.Quit() })
	}

	return root
}

func hidden(item *menu.MenuItem) {
	item.Hidden = true
}
