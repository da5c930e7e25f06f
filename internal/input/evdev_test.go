package input

import (
	"encoding/binary"
	"testing"
)

const testTvSize = 16

func encode(events ...rawEvent) []byte {
	eventSize := testTvSize + 8
	buf := make([]byte, 0, len(events)*eventSize)
	for _, ev := range events {
		rec := make([]byte, eventSize)
		binary.LittleEndian.PutUint16(rec[testTvSize:], ev.Type)
		binary.LittleEndian.PutUint16(rec[testTvSize+2:], ev.Code)
		binary.LittleEndian.PutUint32(rec[testTvSize+4:], uint32(ev.Value))
		buf = append(buf, rec...)
	}
	return buf
}

func TestDecodeEvents(t *testing.T) {
	in := []rawEvent{
		{Type: evKey, Code: keyDown, Value: 1},
		{Type: evAbs, Code: absX, Value: -5},
		{Type: evSyn, Code: synReport, Value: 0},
	}
	buf := encode(in...)
	// A trailing partial record is ignored.
	buf = append(buf, 0x01, 0x02)

	got := decodeEvents(buf, testTvSize)
	if len(got) != len(in) {
		t.Fatalf("decoded %d events, want %d", len(got), len(in))
	}
	for i := range in {
		if got[i] != in[i] {
			t.Errorf("event %d = %+v, want %+v", i, got[i], in[i])
		}
	}
}

func TestKeyFromCode(t *testing.T) {
	tests := []struct {
		code  uint16
		value int32
		want  Key
	}{
		{keyUp, 1, KeyUp},
		{keyDown, 2, KeyDown},
		{keyEnter, 1, KeyEnter},
		{keyKPEnter, 1, KeyEnter},
		{keyEnter, 2, KeyNone},
		{keyEsc, 1, KeyBack},
		{keyF4, 1, KeyExit},
		{keyF4, 0, KeyNone},
		{keyPageDown, 1, KeyPageDown},
		{30, 1, KeyNone},
	}
	for _, tt := range tests {
		if got := keyFromCode(tt.code, tt.value); got != tt.want {
			t.Errorf("keyFromCode(%d, %d) = %v, want %v", tt.code, tt.value, got, tt.want)
		}
	}
}

func TestTrackerReportsTapOnSync(t *testing.T) {
	tr := newTracker(800, 480, axisRange{Min: 0, Max: 4095}, axisRange{Min: 0, Max: 4095})

	frame := []rawEvent{
		{Type: evKey, Code: btnTouch, Value: 1},
		{Type: evAbs, Code: absMTPosition, Value: 4095},
		{Type: evAbs, Code: absMTPosY, Value: 0},
	}
	for _, ev := range frame {
		if _, ok := tr.feed(ev); ok {
			t.Fatalf("unexpected event before SYN_REPORT")
		}
	}
	ev, ok := tr.feed(rawEvent{Type: evSyn, Code: synReport})
	if !ok {
		t.Fatalf("expected a tap on SYN_REPORT")
	}
	if ev.Kind != KindTap || ev.X != 799 || ev.Y != 0 {
		t.Errorf("tap = %+v, want (799,0)", ev)
	}

	// Movement while held does not produce further taps.
	tr.feed(rawEvent{Type: evAbs, Code: absX, Value: 100})
	if _, ok := tr.feed(rawEvent{Type: evSyn, Code: synReport}); ok {
		t.Errorf("unexpected tap without a new touch down")
	}
}

func TestTrackerKeys(t *testing.T) {
	tr := newTracker(800, 480, axisRange{}, axisRange{})
	ev, ok := tr.feed(rawEvent{Type: evKey, Code: keyLeft, Value: 1})
	if !ok || ev.Kind != KindKey || ev.Key != KeyLeft {
		t.Errorf("got %+v %v, want left key", ev, ok)
	}
}

func TestTrackerRotaryEncoder(t *testing.T) {
	tests := []struct {
		ev     rawEvent
		want   Key
		wantOK bool
	}{
		{rawEvent{Type: evRel, Code: relDial, Value: -1}, KeyUp, true},
		{rawEvent{Type: evRel, Code: relDial, Value: 1}, KeyDown, true},
		{rawEvent{Type: evRel, Code: relWheel, Value: -2}, KeyUp, true},
		{rawEvent{Type: evRel, Code: relWheel, Value: 3}, KeyDown, true},
		{rawEvent{Type: evRel, Code: relDial, Value: 0}, KeyNone, false},
		// REL_X from a mouse is not navigation.
		{rawEvent{Type: evRel, Code: 0x00, Value: 5}, KeyNone, false},
	}
	tr := newTracker(800, 480, axisRange{}, axisRange{})
	for _, tt := range tests {
		ev, ok := tr.feed(tt.ev)
		if ok != tt.wantOK || (ok && (ev.Kind != KindKey || ev.Key != tt.want)) {
			t.Errorf("feed(%+v) = %+v %v, want %v %v", tt.ev, ev, ok, tt.want, tt.wantOK)
		}
	}
}

func TestAxisRangeScale(t *testing.T) {
	r := axisRange{Min: 100, Max: 1100}
	if got := r.scale(600, 801); got != 400 {
		t.Errorf("scale mid = %d, want 400", got)
	}
	if got := r.scale(0, 800); got != 0 {
		t.Errorf("scale below range = %d, want 0", got)
	}
	if got := (axisRange{}).scale(900, 800); got != 799 {
		t.Errorf("identity scale clamps to %d, want 799", got)
	}
}

func TestParseKey(t *testing.T) {
	for k := KeyUp; k <= KeyExit; k++ {
		got, ok := ParseKey(k.String())
		if !ok || got != k {
			t.Errorf("ParseKey(%q) = %v, %v", k.String(), got, ok)
		}
	}
	aliases := map[string]Key{"PageDown": KeyPageDown, " esc ": KeyBack, "F4": KeyExit, "return": KeyEnter}
	for name, want := range aliases {
		if got, ok := ParseKey(name); !ok || got != want {
			t.Errorf("ParseKey(%q) = %v, %v", name, got, ok)
		}
	}
	if _, ok := ParseKey("jump"); ok {
		t.Error("unknown key parsed")
	}
}
