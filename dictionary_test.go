package carquet

import (
	"bytes"
	"testing"
)

func TestDictionaryInsertDeduplicates(t *testing.T) {
	d := NewDictionary(Int32, 4)
	a := d.Insert([]byte{1, 0, 0, 0})
	b := d.Insert([]byte{2, 0, 0, 0})
	c := d.Insert([]byte{1, 0, 0, 0})

	if a != c {
		t.Errorf("expected repeated value to reuse index: %d != %d", a, c)
	}
	if a == b {
		t.Errorf("expected distinct values to get distinct indexes")
	}
	if d.Len() != 2 {
		t.Errorf("expected 2 distinct entries, got %d", d.Len())
	}
}

func TestDictionaryIndexReturnsStoredValue(t *testing.T) {
	d := NewDictionary(ByteArray, 0)
	i := d.Insert([]byte("hello"))
	if !bytes.Equal(d.Index(i), []byte("hello")) {
		t.Errorf("Index returned %q, want %q", d.Index(i), "hello")
	}
}

func TestDictionaryBounds(t *testing.T) {
	d := NewDictionary(ByteArray, 0)
	ia := d.Insert([]byte("banana"))
	ib := d.Insert([]byte("apple"))
	ic := d.Insert([]byte("cherry"))

	min, max := d.Bounds([]int32{ia, ib, ic})
	if !bytes.Equal(min, []byte("apple")) {
		t.Errorf("min = %q, want %q", min, "apple")
	}
	if !bytes.Equal(max, []byte("cherry")) {
		t.Errorf("max = %q, want %q", max, "cherry")
	}
}

func TestDictionaryReset(t *testing.T) {
	d := NewDictionary(Int32, 4)
	d.Insert([]byte{1, 0, 0, 0})
	d.Reset()
	if d.Len() != 0 {
		t.Errorf("expected empty dictionary after Reset, got %d entries", d.Len())
	}
	i := d.Insert([]byte{9, 0, 0, 0})
	if i != 0 {
		t.Errorf("expected first index after reset to be 0, got %d", i)
	}
}

func TestDictionaryEstimatedSizeFixedVsVariable(t *testing.T) {
	fixed := NewDictionary(Int32, 4)
	fixed.Insert([]byte{1, 0, 0, 0})
	fixed.Insert([]byte{2, 0, 0, 0})
	if got, want := fixed.EstimatedSize(), 8; got != want {
		t.Errorf("fixed-width estimated size = %d, want %d", got, want)
	}

	variable := NewDictionary(ByteArray, 0)
	variable.Insert([]byte("ab"))
	if got, want := variable.EstimatedSize(), 4+2; got != want {
		t.Errorf("variable-width estimated size = %d, want %d", got, want)
	}
}
