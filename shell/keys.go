package shell

// Key identifies a physical key, independent of keyboard layout.
type Key uint32

const (
	KeyUnknown Key = iota
	KeyEscape
	KeySpace
	KeyEnter
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyW
	KeyA
	KeyS
	KeyD
)

var keyNames = map[Key]string{
	KeyUnknown: "Unknown",
	KeyEscape:  "Escape",
	KeySpace:   "Space",
	KeyEnter:   "Enter",
	KeyLeft:    "Left",
	KeyRight:   "Right",
	KeyUp:      "Up",
	KeyDown:    "Down",
	KeyW:       "W",
	KeyA:       "A",
	KeyS:       "S",
	KeyD:       "D",
}

func (k Key) String() string {
	name, ok := keyNames[k]
	if !ok {
		return "Unknown"
	}

	return name
}
