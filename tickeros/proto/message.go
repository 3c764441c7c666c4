package proto

// Message is one framed UART line travelling from the line receiver to the renderer.
//
// Convention:
// - Payload holds printable bytes without the line terminator.
// - Payload is at least the display window wide (space padded).
// - Default messages share DefaultString and must not be mutated.
type Message struct {
	Payload []byte
	Default bool
}

// Len returns the number of characters in the message.
func (m Message) Len() int { return len(m.Payload) }

func (m Message) String() string { return string(m.Payload) }

// DefaultString is shown at boot and substituted for degenerate lines.
const DefaultString = "Hi, please enter your message. "

// Boot lines transmitted on the UART before any input is read.
const (
	WelcomeLine = "Hi, please enter your message.\r\n"
	NoteLine    = "NOTE: Every message has to have only one system symbol (\\n).\r\n"
)

var defaultPayload = []byte(DefaultString)

// DefaultMessage returns the shared fallback message.
func DefaultMessage() Message {
	return Message{Payload: defaultPayload, Default: true}
}
