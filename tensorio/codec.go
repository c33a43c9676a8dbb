package tensorio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/katalvlaran/romkit/matrix"
)

// File layout (all integers little-endian):
//
//	single: [magicTensor][record]
//	list:   [magicList][version u16][reserved u16][count u32][record]*count
//	record: [version u16][kind u8][compression u8][rows u32][cols u32]
//	        [rawLen u32][storedLen u32][payload storedLen bytes]
//
// The payload is rows*cols float64 values in row-major order, possibly compressed.
const (
	formatVersion    uint16 = 1
	recordHeaderSize        = 20
	listHeaderSize          = 8
	float64Size             = 8
)

var (
	magicTensor = [4]byte{'R', 'O', 'M', 'T'}
	magicList   = [4]byte{'R', 'O', 'M', 'L'}
)

// Header describes one stored tensor.
type Header struct {
	Version     uint16
	Kind        Kind
	Compression Compression
	Rows        int
	Cols        int
	RawLen      int
	StoredLen   int
}

// Record is one decoded tensor: its header and row-major values.
type Record struct {
	Header
	Values []float64
}

// Artifact is the decoded content of one file.
type Artifact struct {
	List    bool
	Records []Record
}

// encodeRecord appends the record for t to w.
func encodeRecord(w io.Writer, t matrix.Tensor, c Compression) (Header, error) {
	rows, cols := t.Shape()
	data := t.RawData()
	if uint64(rows) > math.MaxUint32 || uint64(cols) > math.MaxUint32 || len(data) > math.MaxUint32/float64Size {
		return Header{}, fmt.Errorf("%dx%d tensor exceeds the 4 GiB record limit: %w", rows, cols, ErrUnsupported)
	}
	raw := make([]byte, len(data)*float64Size)
	for i, v := range data {
		binary.LittleEndian.PutUint64(raw[i*float64Size:], math.Float64bits(v))
	}
	stored, used, err := compress(raw, c)
	if err != nil {
		return Header{}, err
	}

	h := Header{
		Version:     formatVersion,
		Kind:        kindOf(t),
		Compression: used,
		Rows:        rows,
		Cols:        cols,
		RawLen:      len(raw),
		StoredLen:   len(stored),
	}
	var hdr [recordHeaderSize]byte
	binary.LittleEndian.PutUint16(hdr[0:], h.Version)
	hdr[2] = byte(h.Kind)
	hdr[3] = byte(h.Compression)
	binary.LittleEndian.PutUint32(hdr[4:], uint32(h.Rows))
	binary.LittleEndian.PutUint32(hdr[8:], uint32(h.Cols))
	binary.LittleEndian.PutUint32(hdr[12:], uint32(h.RawLen))
	binary.LittleEndian.PutUint32(hdr[16:], uint32(h.StoredLen))
	if _, err = w.Write(hdr[:]); err != nil {
		return Header{}, err
	}
	if _, err = w.Write(stored); err != nil {
		return Header{}, err
	}

	return h, nil
}

// decodeRecord reads one record from r.
func decodeRecord(r *bytes.Reader) (Record, error) {
	var hdr [recordHeaderSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return Record{}, fmt.Errorf("record header: %w: %w", ErrFormat, err)
	}
	h := Header{
		Version:     binary.LittleEndian.Uint16(hdr[0:]),
		Kind:        Kind(hdr[2]),
		Compression: Compression(hdr[3]),
		Rows:        int(binary.LittleEndian.Uint32(hdr[4:])),
		Cols:        int(binary.LittleEndian.Uint32(hdr[8:])),
		RawLen:      int(binary.LittleEndian.Uint32(hdr[12:])),
		StoredLen:   int(binary.LittleEndian.Uint32(hdr[16:])),
	}
	if h.Version != formatVersion {
		return Record{}, fmt.Errorf("version %d: %w", h.Version, ErrUnsupported)
	}
	if h.Kind != KindVector && h.Kind != KindMatrix {
		return Record{}, fmt.Errorf("kind %d: %w", h.Kind, ErrUnsupported)
	}
	if !h.Compression.valid() {
		return Record{}, fmt.Errorf("%s: %w", h.Compression, ErrUnsupported)
	}
	// bound each dimension by the payload before multiplying
	elems := h.RawLen / float64Size
	if h.Rows <= 0 || h.Cols <= 0 || h.Rows > elems || h.Cols > elems/h.Rows ||
		h.RawLen != h.Rows*h.Cols*float64Size {
		return Record{}, fmt.Errorf("shape %dx%d with %d bytes: %w", h.Rows, h.Cols, h.RawLen, ErrFormat)
	}
	if h.StoredLen > r.Len() {
		return Record{}, fmt.Errorf("payload truncated (%d of %d bytes): %w", r.Len(), h.StoredLen, ErrFormat)
	}

	stored := make([]byte, h.StoredLen)
	if _, err := io.ReadFull(r, stored); err != nil {
		return Record{}, fmt.Errorf("payload: %w: %w", ErrFormat, err)
	}
	raw, err := decompress(stored, h.Compression, h.RawLen)
	if err != nil {
		return Record{}, err
	}
	values := make([]float64, h.Rows*h.Cols)
	for i := range values {
		values[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[i*float64Size:]))
	}

	return Record{Header: h, Values: values}, nil
}

// encodeSingle serializes one tensor artifact.
func encodeSingle(t matrix.Tensor, c Compression) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(magicTensor[:])
	if _, err := encodeRecord(&buf, t, c); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// encodeList serializes a count-prefixed list artifact.
func encodeList[T matrix.Tensor](ts []T, c Compression) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(magicList[:])
	var hdr [listHeaderSize]byte
	binary.LittleEndian.PutUint16(hdr[0:], formatVersion)
	binary.LittleEndian.PutUint32(hdr[4:], uint32(len(ts)))
	buf.Write(hdr[:])
	for i, t := range ts {
		if _, err := encodeRecord(&buf, t, c); err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
	}

	return buf.Bytes(), nil
}

// Decode parses an artifact held in memory.
func Decode(data []byte) (*Artifact, error) {
	if len(data) < len(magicTensor) {
		return nil, fmt.Errorf("short file: %w", ErrFormat)
	}
	r := bytes.NewReader(data[len(magicTensor):])
	switch {
	case bytes.Equal(data[:4], magicTensor[:]):
		rec, err := decodeRecord(r)
		if err != nil {
			return nil, err
		}
		if r.Len() != 0 {
			return nil, fmt.Errorf("%d trailing bytes: %w", r.Len(), ErrFormat)
		}

		return &Artifact{Records: []Record{rec}}, nil

	case bytes.Equal(data[:4], magicList[:]):
		var hdr [listHeaderSize]byte
		if _, err := io.ReadFull(r, hdr[:]); err != nil {
			return nil, fmt.Errorf("list header: %w: %w", ErrFormat, err)
		}
		if v := binary.LittleEndian.Uint16(hdr[0:]); v != formatVersion {
			return nil, fmt.Errorf("version %d: %w", v, ErrUnsupported)
		}
		count := int(binary.LittleEndian.Uint32(hdr[4:]))
		// every record needs at least its header
		if count > r.Len()/recordHeaderSize {
			return nil, fmt.Errorf("count %d exceeds payload: %w", count, ErrFormat)
		}
		a := &Artifact{List: true, Records: make([]Record, 0, count)}
		for i := 0; i < count; i++ {
			rec, err := decodeRecord(r)
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}
			a.Records = append(a.Records, rec)
		}
		if r.Len() != 0 {
			return nil, fmt.Errorf("%d trailing bytes: %w", r.Len(), ErrFormat)
		}

		return a, nil

	default:
		return nil, fmt.Errorf("bad magic %q: %w", data[:4], ErrFormat)
	}
}

// fill copies rec into t after checking kind and shape.
func fill(t matrix.Tensor, rec Record) error {
	rows, cols := t.Shape()
	if want := kindOf(t); rec.Kind != want {
		return fmt.Errorf("stored %s, want %s: %w", rec.Kind, want, ErrFormat)
	}
	if rec.Rows != rows || rec.Cols != cols {
		return fmt.Errorf("stored %dx%d, want %dx%d: %w", rec.Rows, rec.Cols, rows, cols, ErrFormat)
	}
	for i, v := range rec.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("value %d: %w", i, matrix.ErrNaNInf)
		}
	}
	copy(t.RawData(), rec.Values)

	return nil
}
