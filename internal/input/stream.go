package input

import (
	"bufio"
	"strconv"
	"strings"
	"time"
)

// CellMapper converts 1-based terminal cell coordinates from mouse reports
// into display pixels.
type CellMapper interface {
	CellToDisplay(col, row int) (x, y float64)
}

// halfBlockCells maps each cell to two display pixels stacked vertically.
type halfBlockCells struct{}

func (halfBlockCells) CellToDisplay(col, row int) (float64, float64) {
	return float64(col - 1), float64((row - 1) * 2)
}

// Frame summarizes one drain of the stream.
type Frame struct {
	Quit   bool // q, Q or Ctrl-C was pressed
	Active bool // Any byte arrived
	Closed bool // The reader hit EOF or an error
}

// Stream delivers terminal input bytes via a channel and tracks when each
// key was last seen. Terminals report presses (and auto-repeat) but never
// releases, so a key counts as held until it goes quiet for the hold duration.
type Stream struct {
	ch       chan byte
	hold     time.Duration
	lastSeen map[string]time.Time
	pending  []byte // Incomplete escape sequence carried to the next drain
	closed   bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader, hold time.Duration) *Stream {
	s := &Stream{
		ch:       make(chan byte, 128),
		hold:     hold,
		lastSeen: make(map[string]time.Time),
	}
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

// Apply drains all available bytes (non-blocking), decodes them into snap,
// and releases keys not seen within the hold duration. cells may be nil, in
// which case one cell is two display pixels tall.
func (s *Stream) Apply(snap *Snapshot, now time.Time, cells CellMapper) Frame {
	var frame Frame
	buf := s.pending
	s.pending = nil

drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
			frame.Active = true
		default:
			break drain
		}
	}
	frame.Closed = s.closed

	if cells == nil {
		cells = halfBlockCells{}
	}
	s.decode(buf, snap, now, cells, &frame)

	for key, seen := range s.lastSeen {
		if now.Sub(seen) >= s.hold {
			delete(s.lastSeen, key)
			snap.Release(key)
		}
	}
	return frame
}

// maxPending bounds the carried-over escape sequence. Longer input is not a
// sequence we understand and is dropped.
const maxPending = 32

// carry keeps an incomplete escape sequence for the next drain.
func (s *Stream) carry(seq []byte) {
	if len(seq) > maxPending {
		s.pending = nil
		return
	}
	s.pending = append(s.pending[:0], seq...)
}

// decode walks buf, handling escape sequences for arrows and mouse reports.
// A trailing lone ESC waits one drain for the rest of its sequence; if no
// new bytes arrive it is the Escape key.
func (s *Stream) decode(buf []byte, snap *Snapshot, now time.Time, cells CellMapper, frame *Frame) {
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' {
			if i+1 == len(buf) && frame.Active && !s.closed {
				s.carry(buf[i:])
				return
			}
			if i+1 < len(buf) && buf[i+1] == '[' {
				n, complete := s.decodeCSI(buf[i:], snap, now, cells)
				if !complete {
					s.carry(buf[i:])
					return
				}
				i += n - 1
				continue
			}
		}

		switch b {
		case 'q', 'Q', '\x03':
			frame.Quit = true
		}
		if key := byteKey(b); key != "" {
			s.press(snap, key, now)
		}
	}
}

// decodeCSI decodes one CSI sequence at the start of seq and returns its
// length. complete is false when seq ends mid-sequence.
func (s *Stream) decodeCSI(seq []byte, snap *Snapshot, now time.Time, cells CellMapper) (n int, complete bool) {
	if len(seq) < 3 {
		return 0, false
	}
	switch seq[2] {
	case 'A':
		s.press(snap, KeyArrowUp, now)
		return 3, true
	case 'B':
		s.press(snap, KeyArrowDown, now)
		return 3, true
	case 'C':
		s.press(snap, KeyArrowRight, now)
		return 3, true
	case 'D':
		s.press(snap, KeyArrowLeft, now)
		return 3, true
	case '<':
		// SGR mouse: ESC [ < button ; col ; row (M|m)
		for j := 3; j < len(seq); j++ {
			switch c := seq[j]; {
			case c == 'M' || c == 'm':
				if col, row, ok := parseMouse(string(seq[3:j])); ok {
					snap.MoveTo(cells.CellToDisplay(col, row))
				}
				return j + 1, true
			case c >= '0' && c <= '9', c == ';':
			default:
				// Malformed report: drop the prefix, decode c on its own.
				return j, true
			}
		}
		return 0, false
	}
	// Unknown sequence: skip up to and including its final byte. A control
	// byte ends it early and is decoded on its own.
	for j := 2; j < len(seq); j++ {
		switch c := seq[j]; {
		case c >= 0x40 && c <= 0x7e:
			return j + 1, true
		case c < 0x20 || c > 0x7e:
			return j, true
		}
	}
	return 0, false
}

func parseMouse(params string) (col, row int, ok bool) {
	parts := strings.Split(params, ";")
	if len(parts) != 3 {
		return 0, 0, false
	}
	col, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	row, err = strconv.Atoi(parts[2])
	if err != nil {
		return 0, 0, false
	}
	return col, row, true
}

func (s *Stream) press(snap *Snapshot, key string, now time.Time) {
	s.lastSeen[key] = now
	snap.Press(key)
}

// byteKey maps a single input byte to a key identifier. Letters are
// lower-cased so shifted and unshifted presses hold the same key.
func byteKey(b byte) string {
	switch {
	case b == '\r' || b == '\n':
		return KeyEnter
	case b == '\x1b':
		return KeyEscape
	case b == '\x7f' || b == '\b':
		return "Backspace"
	case b >= 'A' && b <= 'Z':
		return string(rune(b - 'A' + 'a'))
	case b >= ' ' && b <= '~':
		return string(rune(b))
	}
	return ""
}
