package grove

import "github.com/hajimehoshi/ebiten/v2"

// KeyState maps key codes to pressed state. The host environment writes it
// (asynchronously from the core's point of view); the core only reads the
// current state and never blocks on it. Unknown keys read as released.
type KeyState struct {
	pressed map[int]bool
}

// NewKeyState creates an empty key state.
func NewKeyState() *KeyState {
	return &KeyState{pressed: make(map[int]bool)}
}

// Set records the pressed state for a key code. Called by the host.
func (k *KeyState) Set(code int, down bool) {
	if down {
		k.pressed[code] = true
	} else {
		delete(k.pressed, code)
	}
}

// Pressed reports whether the key code is currently down.
func (k *KeyState) Pressed(code int) bool {
	return k.pressed[code]
}

// Reset releases all keys.
func (k *KeyState) Reset() {
	clear(k.pressed)
}

// PollKeyboard refreshes the key state from ebiten's keyboard. Called once
// per tick by the Run driver; embedders with their own loop can call it
// themselves or write states directly via Set.
func PollKeyboard(k *KeyState) {
	for key := ebiten.Key(0); key <= ebiten.KeyMax; key++ {
		k.Set(int(key), ebiten.IsKeyPressed(key))
	}
}
