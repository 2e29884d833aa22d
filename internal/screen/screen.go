// Package screen holds the UI mode state machine: which screen is active and how
// logical key presses move between screens.
package screen

import (
	"fmt"
	"strings"
)

// ID names one screen of the UI.
type ID int

const (
	Home ID = iota
	Menu
	SystemInfo
	Wifi
)

// All lists every screen in declaration order.
var All = []ID{Home, Menu, SystemInfo, Wifi}

var idNames = map[ID]string{
	Home:       "home",
	Menu:       "menu",
	SystemInfo: "system-info",
	Wifi:       "wifi",
}

func (id ID) String() string {
	if name, ok := idNames[id]; ok {
		return name
	}
	return fmt.Sprintf("screen(%d)", int(id))
}

// Valid reports whether id is one of the defined screens.
func (id ID) Valid() bool {
	_, ok := idNames[id]
	return ok
}

// ParseID resolves a screen by its String() name (case-insensitive).
func ParseID(name string) (ID, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for id, n := range idNames {
		if n == name {
			return id, nil
		}
	}
	return Home, fmt.Errorf("unknown screen %q", name)
}

// Key is a logical button, independent of the pin or evdev code it comes from.
type Key int

const (
	Up Key = iota
	Down
	Left
	Right
	Press
	Ok
	Main
	Cancel
)

// Keys lists every logical key in polling order.
var Keys = []Key{Up, Down, Left, Right, Press, Ok, Main, Cancel}

var keyNames = map[Key]string{
	Up:     "up",
	Down:   "down",
	Left:   "left",
	Right:  "right",
	Press:  "press",
	Ok:     "ok",
	Main:   "main",
	Cancel: "cancel",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("key(%d)", int(k))
}

// ParseKey resolves a key by its String() name (case-insensitive).
func ParseKey(name string) (Key, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range keyNames {
		if n == name {
			return k, nil
		}
	}
	return Up, fmt.Errorf("unknown key %q", name)
}
