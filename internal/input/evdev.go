package input

import "encoding/binary"

// Linux input-event-codes.h
const (
	evSyn = 0x00
	evKey = 0x01
	evRel = 0x02
	evAbs = 0x03

	synReport = 0

	keyEsc       = 1
	keyBackspace = 14
	keyEnter     = 28
	keyF4        = 62
	keyKPEnter   = 96
	keyUp        = 103
	keyPageUp    = 104
	keyLeft      = 105
	keyRight     = 106
	keyDown      = 108
	keyPageDown  = 109
	keySelect    = 0x161
	btnTouch     = 0x14a

	relDial  = 0x07
	relWheel = 0x08

	absX          = 0x00
	absY          = 0x01
	absMTPosition = 0x35
	absMTPosY     = 0x36
)

type rawEvent struct {
	Type  uint16
	Code  uint16
	Value int32
}

// decodeEvents parses a buffer of struct input_event records.
// tvSize is the size of struct timeval on the running architecture.
func decodeEvents(buf []byte, tvSize int) []rawEvent {
	eventSize := tvSize + 2 + 2 + 4
	var out []rawEvent
	for off := 0; off+eventSize <= len(buf); off += eventSize {
		rec := buf[off : off+eventSize]
		out = append(out, rawEvent{
			Type:  binary.LittleEndian.Uint16(rec[tvSize : tvSize+2]),
			Code:  binary.LittleEndian.Uint16(rec[tvSize+2 : tvSize+4]),
			Value: int32(binary.LittleEndian.Uint32(rec[tvSize+4 : tvSize+8])),
		})
	}
	return out
}

// keyFromCode maps a key code and value (1 press, 2 autorepeat) to a Key.
// Autorepeat only counts for movement keys.
func keyFromCode(code uint16, value int32) Key {
	if value != 1 && value != 2 {
		return KeyNone
	}
	var k Key
	switch code {
	case keyUp:
		k = KeyUp
	case keyDown:
		k = KeyDown
	case keyLeft:
		k = KeyLeft
	case keyRight:
		k = KeyRight
	case keyPageUp:
		k = KeyPageUp
	case keyPageDown:
		k = KeyPageDown
	case keyEnter, keyKPEnter, keySelect:
		k = KeyEnter
	case keyEsc, keyBackspace:
		k = KeyBack
	case keyF4:
		k = KeyExit
	default:
		return KeyNone
	}
	if value == 2 {
		switch k {
		case KeyUp, KeyDown, KeyLeft, KeyRight, KeyPageUp, KeyPageDown:
		default:
			return KeyNone
		}
	}
	return k
}

type axisRange struct {
	Min, Max int32
}

// scale maps v from the device range onto [0, size).
func (a axisRange) scale(v int32, size int) int {
	if size <= 0 {
		return 0
	}
	if a.Max <= a.Min {
		return clampInt(int(v), 0, size-1)
	}
	pos := int64(v-a.Min) * int64(size-1) / int64(a.Max-a.Min)
	return clampInt(int(pos), 0, size-1)
}

// tracker turns a stream of raw events from one device into Events.
// A tap is reported on the SYN_REPORT that closes the frame containing BTN_TOUCH down.
type tracker struct {
	rangeX, rangeY axisRange
	width, height  int

	x, y    int
	pending bool
}

func newTracker(width, height int, rx, ry axisRange) *tracker {
	return &tracker{width: width, height: height, rangeX: rx, rangeY: ry}
}

func (t *tracker) feed(ev rawEvent) (Event, bool) {
	switch ev.Type {
	case evKey:
		if ev.Code == btnTouch {
			if ev.Value == 1 {
				t.pending = true
			}
			return Event{}, false
		}
		if k := keyFromCode(ev.Code, ev.Value); k != KeyNone {
			return KeyEvent(k), true
		}
	case evRel:
		// Rotary encoders report one detent per event; the sign is the direction.
		if ev.Code != relDial && ev.Code != relWheel {
			break
		}
		switch {
		case ev.Value < 0:
			return KeyEvent(KeyUp), true
		case ev.Value > 0:
			return KeyEvent(KeyDown), true
		}
	case evAbs:
		switch ev.Code {
		case absX, absMTPosition:
			t.x = t.rangeX.scale(ev.Value, t.width)
		case absY, absMTPosY:
			t.y = t.rangeY.scale(ev.Value, t.height)
		}
	case evSyn:
		if ev.Code == synReport && t.pending {
			t.pending = false
			return TapEvent(t.x, t.y), true
		}
	}
	return Event{}, false
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
