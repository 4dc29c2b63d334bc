package transferbuf

import (
	"io"
	"log/slog"
	"testing"

	"github.com/holmberd/go-transferbuf/internal/testutils"
)

// go test -bench=BenchmarkManager -benchmem .

const benchFrameLen = 7 // CAN payload minus the tail byte.

// BenchmarkManagerReassembleDynamic simulates receiving one multi-frame
// transfer: create, write frame-sized fragments in offset order, read the
// assembled payload back, remove.
func BenchmarkManagerReassembleDynamic(b *testing.B) {
	pool := testutils.NewMockBlockPool(64, 1024)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := NewManager(pool, logger, Config{MaxBufferSize: 512, NumStaticSlots: 0, StaticSlotSize: 0})
	defer m.Reset()

	key := Key{NodeID: 1, TransferType: TransferTypeMessageBroadcast}
	frame := make([]byte, benchFrameLen)
	for i := range frame {
		frame[i] = byte(i)
	}
	out := make([]byte, 512)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		buf, err := m.Create(key)
		if err != nil {
			b.Fatal(err)
		}
		for off := 0; off < 512; off += benchFrameLen {
			if _, err := buf.Write(off, frame); err != nil {
				b.Fatal(err)
			}
		}
		if _, err := buf.Read(0, out); err != nil {
			b.Fatal(err)
		}
		m.Remove(key)
	}
}

// BenchmarkManagerReassembleStatic is the same workload with a static slot,
// measuring the contiguous fast path.
func BenchmarkManagerReassembleStatic(b *testing.B) {
	pool := testutils.NewMockBlockPool(64, 1024)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := NewManager(pool, logger, Config{MaxBufferSize: 512, NumStaticSlots: 1, StaticSlotSize: 512})
	defer m.Reset()

	key := Key{NodeID: 1, TransferType: TransferTypeMessageBroadcast}
	frame := make([]byte, benchFrameLen)
	out := make([]byte, 512)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		buf, err := m.Create(key)
		if err != nil {
			b.Fatal(err)
		}
		for off := 0; off < 512; off += benchFrameLen {
			if _, err := buf.Write(off, frame); err != nil {
				b.Fatal(err)
			}
		}
		if _, err := buf.Read(0, out); err != nil {
			b.Fatal(err)
		}
		m.Remove(key)
	}
}
