// Package stream implements InputStream: a sequential, fixed-size batch
// reader over a flat file of packed little-endian IEEE-754 doubles, with no
// header or framing. Grounded on the original perf_first_pass/
// perf_second_pass batched-read loop (DOUBLE_READ_COUNT_ONCE=100000) and the
// teacher's data.go sequential-read shape.
package stream

import (
	"encoding/binary"
	"io"
	"math"
	"os"

	"github.com/kivppr/distfit/internal/distfit"
)

// InputStream reads a file of packed float64 values in fixed-size batches.
type InputStream struct {
	f         *os.File
	batchSize int
	buf       []byte
	done      bool
}

// DefaultBatchSize matches distfit.DoubleReadCountOnce.
const DefaultBatchSize = distfit.DoubleReadCountOnce

// Open opens path read-only for sequential batch reads.
func Open(path string, batchSize int) (*InputStream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, distfit.WrapIOError(err, "open input file")
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &InputStream{f: f, batchSize: batchSize, buf: make([]byte, batchSize*8)}, nil
}

// Close releases the underlying file handle.
func (s *InputStream) Close() error {
	return s.f.Close()
}

// IsValid reports whether x is a value the pipeline should count: IEEE
// Normal or Zero, excluding subnormals, +/-Inf and NaN.
func IsValid(x float64) bool {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return false
	}
	if x == 0 {
		return true
	}
	exp := (math.Float64bits(x) >> 52) & 0x7FF
	return exp != 0 // exp == 0 means subnormal
}

// NextBatch reads up to batchSize values, returning only the ones that pass
// IsValid. Trailing bytes that don't form a complete 8-byte value are
// ignored. Returns io.EOF (alongside any trailing valid values) once the
// file is exhausted.
func (s *InputStream) NextBatch() ([]float64, error) {
	if s.done {
		return nil, io.EOF
	}

	n, err := io.ReadFull(s.f, s.buf)
	var eof error
	switch {
	case err == nil:
		// full batch read
	case err == io.ErrUnexpectedEOF || err == io.EOF:
		s.done = true
		eof = io.EOF
	default:
		return nil, distfit.WrapIOError(err, "read input file")
	}

	usable := n - (n % 8)
	count := usable / 8
	values := make([]float64, 0, count)
	for i := 0; i < count; i++ {
		bits := binary.LittleEndian.Uint64(s.buf[i*8 : i*8+8])
		x := math.Float64frombits(bits)
		if IsValid(x) {
			values = append(values, x)
		}
	}

	return values, eof
}
