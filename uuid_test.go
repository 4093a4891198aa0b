package carquet

import (
	"bytes"
	"testing"
)

func TestNormalizeUUIDValuesParsesStringForm(t *testing.T) {
	raw := make([]byte, 16)
	for i := range raw {
		raw[i] = byte(i)
	}
	stringForm := []byte("00010203-0405-0607-0809-0a0b0c0d0e0f")

	got, err := normalizeUUIDValues([][]byte{raw, stringForm})
	if err != nil {
		t.Fatal(err)
	}
	values := got.([][]byte)
	if !bytes.Equal(values[0], raw) {
		t.Errorf("16-byte input should pass through unchanged, got %x", values[0])
	}
	if !bytes.Equal(values[1], raw) {
		t.Errorf("string-form UUID should parse to %x, got %x", raw, values[1])
	}
}

func TestNormalizeUUIDValuesRejectsGarbage(t *testing.T) {
	if _, err := normalizeUUIDValues([][]byte{[]byte("not-a-uuid")}); err == nil {
		t.Fatal("expected an error for a malformed UUID string")
	}
}
