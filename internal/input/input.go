// Package input turns a raw terminal byte stream into key events.
package input

import (
	"bufio"
	"sort"
	"time"

	"github.com/tomz197/kurve/internal/loop/config"
)

// Key identifies a logical control. The value doubles as its display name.
type Key string

// Keys recognized by the decoder.
const (
	KeyA          Key = "A"
	KeyD          Key = "D"
	KeyJ          Key = "J"
	KeyL          Key = "L"
	KeyLeftArrow  Key = "L arrow"
	KeyRightArrow Key = "R arrow"
	KeyNum1       Key = "Num 1"
	KeyNum3       Key = "Num 3"
	KeyConfirm    Key = "Enter"
	KeyCancel     Key = "Esc"
	KeyQuit       Key = "Q"
)

// EventType is either a press or a release.
type EventType int

const (
	KeyDown EventType = iota
	KeyUp
)

func (t EventType) String() string {
	if t == KeyUp {
		return "up"
	}
	return "down"
}

// Event is a single key transition.
type Event struct {
	Type EventType
	Key  Key
}

// Down is shorthand for a KeyDown event.
func Down(k Key) Event { return Event{Type: KeyDown, Key: k} }

// Up is shorthand for a KeyUp event.
func Up(k Key) Event { return Event{Type: KeyUp, Key: k} }

// Stream delivers input bytes via a channel and tracks which keys are held.
type Stream struct {
	ch     chan byte
	closed bool
	held   map[Key]time.Time // Release deadline per held key

	// pending holds an escape sequence cut off at the end of the last poll.
	pending []byte
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := newStream()
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

func newStream() *Stream {
	return &Stream{
		ch:   make(chan byte, 128),
		held: make(map[Key]time.Time),
	}
}

// Closed reports whether the underlying reader has ended.
func (s *Stream) Closed() bool {
	return s.closed
}

// Poll drains all available bytes (non-blocking) and returns the key events
// they produce, followed by releases of keys whose hold window ran out.
func (s *Stream) Poll(now time.Time) []Event {
	var buf []byte

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	return s.process(buf, now)
}

// Reset forgets all held keys without emitting releases.
func (s *Stream) Reset() {
	clear(s.held)
}

// process decodes buf into events. An escape sequence cut off at the end of
// buf is kept until the next call; if that call brings no bytes, the lone
// Esc is taken as Cancel.
func (s *Stream) process(buf []byte, now time.Time) []Event {
	var events []Event

	flush := len(buf) == 0
	if len(s.pending) > 0 {
		buf = append(s.pending, buf...)
		s.pending = nil
	}

	for i := 0; i < len(buf); {
		if !flush && partialEscape(buf[i:]) {
			s.pending = append([]byte(nil), buf[i:]...)
			break
		}
		key, n := decodeKey(buf[i:])
		i += n
		if key == "" {
			continue
		}

		if isTap(key) {
			events = append(events, Down(key), Up(key))
			continue
		}

		deadline, held := s.held[key]
		if !held {
			s.held[key] = now.Add(config.FirstHoldWindow)
			events = append(events, Down(key))
			continue
		}
		// Auto-repeat: extend, never shorten, the hold.
		if repeat := now.Add(config.RepeatHoldWindow); repeat.After(deadline) {
			s.held[key] = repeat
		}
	}

	var released []Key
	for key, deadline := range s.held {
		if !now.Before(deadline) {
			released = append(released, key)
		}
	}
	sort.Slice(released, func(i, j int) bool { return released[i] < released[j] })
	for _, key := range released {
		delete(s.held, key)
		events = append(events, Up(key))
	}

	return events
}

// partialEscape reports whether buf is the start of an escape sequence
// whose remaining bytes have not arrived yet.
func partialEscape(buf []byte) bool {
	if buf[0] != '\x1b' {
		return false
	}
	return len(buf) == 1 || (len(buf) == 2 && (buf[1] == '[' || buf[1] == 'O'))
}

// isTap reports keys that are released as soon as they are pressed.
func isTap(k Key) bool {
	return k == KeyConfirm || k == KeyCancel || k == KeyQuit
}

// decodeKey reads one key from the front of buf and reports how many bytes
// it consumed. Unknown input yields an empty key.
func decodeKey(buf []byte) (Key, int) {
	b := buf[0]

	if b == '\x1b' {
		if len(buf) >= 3 && (buf[1] == '[' || buf[1] == 'O') {
			switch buf[2] {
			case 'C': // Right arrow
				return KeyRightArrow, 3
			case 'D': // Left arrow
				return KeyLeftArrow, 3
			case 'q': // Keypad 1 in application mode
				if buf[1] == 'O' {
					return KeyNum1, 3
				}
			case 's': // Keypad 3 in application mode
				if buf[1] == 'O' {
					return KeyNum3, 3
				}
			}
			return "", 3
		}
		return KeyCancel, 1
	}

	switch b {
	case 'a', 'A':
		return KeyA, 1
	case 'd', 'D':
		return KeyD, 1
	case 'j', 'J':
		return KeyJ, 1
	case 'l', 'L':
		return KeyL, 1
	case '1':
		return KeyNum1, 1
	case '3':
		return KeyNum3, 1
	case '\r', '\n':
		return KeyConfirm, 1
	case 'q', 'Q', '\x03':
		return KeyQuit, 1
	}
	return "", 1
}
