package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Action is a host command triggered by input
type Action int

const (
	ActionToggleTheme Action = iota
	ActionToggleDebug
	ActionToggleFullscreen
	ActionQuit
)

// InputProvider reports the actions requested since the last update
type InputProvider interface {
	// Update polls the input devices
	Update()

	// Actions returns the actions triggered by the last Update
	Actions() []Action
}

// KeyboardInput maps keys to actions
type KeyboardInput struct {
	actions []Action
}

// NewKeyboardInput creates a keyboard input provider
func NewKeyboardInput() *KeyboardInput {
	return &KeyboardInput{
		actions: make([]Action, 0, 4),
	}
}

// Update polls the keyboard
func (k *KeyboardInput) Update() {
	k.actions = k.actions[:0]

	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		k.actions = append(k.actions, ActionToggleTheme)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		k.actions = append(k.actions, ActionToggleDebug)
	}

	// F11 or Alt+Enter toggles fullscreen
	altPressed := ebiten.IsKeyPressed(ebiten.KeyAlt)
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) || (altPressed && inpututil.IsKeyJustPressed(ebiten.KeyEnter)) {
		k.actions = append(k.actions, ActionToggleFullscreen)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		k.actions = append(k.actions, ActionQuit)
	}
}

// Actions returns the actions triggered by the last Update
func (k *KeyboardInput) Actions() []Action {
	return k.actions
}
