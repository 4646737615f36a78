package system

import (
	"encoding/binary"
	"reflect"
	"testing"
)

func inputEvent(tvSize int, typ, code uint16, value int32) []byte {
	rec := make([]byte, tvSize+8)
	binary.LittleEndian.PutUint16(rec[tvSize:], typ)
	binary.LittleEndian.PutUint16(rec[tvSize+2:], code)
	binary.LittleEndian.PutUint32(rec[tvSize+4:], uint32(value))
	return rec
}

func TestKeyPresses(t *testing.T) {
	for _, tvSize := range []int{8, 16} {
		var buf []byte
		buf = append(buf, inputEvent(tvSize, evKey, KeyF2, 1)...)
		buf = append(buf, inputEvent(tvSize, evKey, KeyF2, 0)...)
		buf = append(buf, inputEvent(tvSize, evKey, KeyF4, 2)...)
		buf = append(buf, inputEvent(tvSize, 0x00, 0, 0)...)
		buf = append(buf, inputEvent(tvSize, evKey, KeyF4, 1)...)
		buf = append(buf, inputEvent(tvSize, evKey, KeyF2, 1)[:tvSize]...)

		got := keyPresses(buf, tvSize)
		want := []uint16{KeyF2, KeyF4}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("tvSize %d: got %v, want %v", tvSize, got, want)
		}
	}
}

func TestKeyPressesEmpty(t *testing.T) {
	if got := keyPresses(nil, 16); got != nil {
		t.Errorf("got %v", got)
	}
}
