package output

import (
	"encoding/binary"
	"io"
	"os"
	"testing"
)

func TestRawLogRoundTrip(t *testing.T) {
	dir := t.TempDir()
	writer, err := NewRawLogWriter(dir, "test")
	if err != nil {
		t.Fatalf("NewRawLogWriter: %v", err)
	}

	records := [][]byte{
		{0x01, 0x02, 0x03},
		{0xaa, 0xbb},
	}
	for _, rec := range records {
		if err := writer.Record(rec); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := writer.Record([]byte{0xff}); err == nil {
		t.Fatalf("Record after Close should fail")
	}

	f, err := os.Open(writer.Path())
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	defer f.Close()

	magic := make([]byte, len(RawLogMagic))
	if _, err := io.ReadFull(f, magic); err != nil {
		t.Fatalf("read magic: %v", err)
	}
	if string(magic) != RawLogMagic {
		t.Fatalf("magic: got %q", string(magic))
	}

	for i, want := range records {
		var header [12]byte
		if _, err := io.ReadFull(f, header[:]); err != nil {
			t.Fatalf("record %d header: %v", i, err)
		}
		size := binary.LittleEndian.Uint32(header[8:12])
		if int(size) != len(want) {
			t.Fatalf("record %d size: got %d, want %d", i, size, len(want))
		}
		payload := make([]byte, size)
		if _, err := io.ReadFull(f, payload); err != nil {
			t.Fatalf("record %d payload: %v", i, err)
		}
		for j := range want {
			if payload[j] != want[j] {
				t.Fatalf("record %d byte %d: got %#x, want %#x", i, j, payload[j], want[j])
			}
		}
	}
}
