package layer

// Button identifies a pointer button using DOM numbering.
type Button int

const (
	ButtonPrimary   Button = 0
	ButtonAuxiliary Button = 1
	ButtonSecondary Button = 2
)

func (b Button) String() string {
	switch b {
	case ButtonPrimary:
		return "primary"
	case ButtonAuxiliary:
		return "auxiliary"
	case ButtonSecondary:
		return "secondary"
	default:
		return "unknown"
	}
}

// preventable carries the default-action flag shared by cancellable events.
type preventable struct {
	prevented bool
}

// PreventDefault suppresses the host's default action for the event.
func (p *preventable) PreventDefault() { p.prevented = true }

// DefaultPrevented reports whether any layer called PreventDefault.
func (p *preventable) DefaultPrevented() bool { return p.prevented }

// PointerEvent is a pointer down/move/up in client coordinates.
type PointerEvent struct {
	preventable
	ClientX, ClientY float64
	Button           Button
}

// WheelEvent carries the vertical scroll delta in pixels.
type WheelEvent struct {
	preventable
	DeltaY float64
}

// ContextMenuEvent is raised when the host would open a context menu.
type ContextMenuEvent struct {
	preventable
	ClientX, ClientY float64
}
