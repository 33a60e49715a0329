package menu

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// Blob layout, all little-endian with 8-byte alignment:
//
//	Config   { menu int64 }
//	Menu     { items int64; count int32; pad int32 }
//	MenuItem { kind int32; pad int32; caption int64; command int64 } * count
//	strings, NUL terminated, each padded to 8 bytes
//
// Offsets are relative to the first byte of the blob. Exit and reload items
// have zero string offsets. A stream is a uint64 length followed by the blob.
const (
	configSize = 8
	menuSize   = 16
	itemSize   = 24
	alignment  = 8

	// MaxBlobSize caps the length prefix accepted by ReadStream.
	MaxBlobSize = 16 << 20
)

var (
	ErrTruncated = errors.New("menu blob truncated")
	ErrMalformed = errors.New("menu blob malformed")
)

var order = binary.LittleEndian

func align(n int) int {
	return (n + alignment - 1) / alignment * alignment
}

// Encode serializes m into a blob.
func Encode(m *Menu) ([]byte, error) {
	items := m.Items
	size := configSize + menuSize + itemSize*len(items)
	for _, it := range items {
		if !it.Kind.valid() {
			return nil, fmt.Errorf("item %q: unknown kind %v", it.Caption, it.Kind)
		}
		if it.Kind == KindExec {
			size += align(len(it.Caption)+1) + align(len(it.Command)+1)
		}
	}
	if len(items) > math.MaxInt32 {
		return nil, fmt.Errorf("too many menu items: %d", len(items))
	}

	buf := make([]byte, size)
	order.PutUint64(buf[0:], configSize)
	itemsOff := configSize + menuSize
	order.PutUint64(buf[configSize:], uint64(itemsOff))
	order.PutUint32(buf[configSize+8:], uint32(len(items)))

	pos := itemsOff + itemSize*len(items)
	putString := func(s string) int {
		off := pos
		copy(buf[pos:], s)
		pos += align(len(s) + 1)
		return off
	}
	for i, it := range items {
		rec := buf[itemsOff+i*itemSize:]
		order.PutUint32(rec[0:], uint32(it.Kind))
		if it.Kind != KindExec {
			continue
		}
		order.PutUint64(rec[8:], uint64(putString(it.Caption)))
		order.PutUint64(rec[16:], uint64(putString(it.Command)))
	}
	return buf, nil
}

// Decode parses a blob produced by Encode. Every offset is bounds checked.
func Decode(blob []byte) (*Menu, error) {
	menuOff, err := readOffset(blob, 0, menuSize)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	itemsOff, err := readOffset(blob, menuOff, 0)
	if err != nil {
		return nil, fmt.Errorf("menu: %w", err)
	}
	count := int32(order.Uint32(blob[menuOff+8:]))
	if count < 0 {
		return nil, fmt.Errorf("%w: negative item count %d", ErrMalformed, count)
	}
	if int64(itemsOff)+int64(count)*itemSize > int64(len(blob)) {
		return nil, fmt.Errorf("%w: %d items at offset %d", ErrTruncated, count, itemsOff)
	}

	m := &Menu{Items: make([]Item, 0, count)}
	for i := 0; i < int(count); i++ {
		rec := itemsOff + i*itemSize
		kind := Kind(int32(order.Uint32(blob[rec:])))
		if !kind.valid() {
			return nil, fmt.Errorf("%w: item %d has unknown kind %d", ErrMalformed, i, int32(kind))
		}
		it := Item{Kind: kind}
		if kind == KindExec {
			if it.Caption, err = readString(blob, rec+8); err != nil {
				return nil, fmt.Errorf("item %d caption: %w", i, err)
			}
			if it.Command, err = readString(blob, rec+16); err != nil {
				return nil, fmt.Errorf("item %d command: %w", i, err)
			}
		}
		m.Items = append(m.Items, it)
	}
	return m, nil
}

// readOffset reads the int64 offset stored at pos and checks that need bytes
// starting there lie inside blob.
func readOffset(blob []byte, pos, need int) (int, error) {
	if pos < 0 || pos+8 > len(blob) {
		return 0, fmt.Errorf("%w: offset field at %d", ErrTruncated, pos)
	}
	off := int64(order.Uint64(blob[pos:]))
	if off < 0 || off > int64(len(blob)) {
		return 0, fmt.Errorf("%w: offset %d outside %d byte blob", ErrMalformed, off, len(blob))
	}
	if off+int64(need) > int64(len(blob)) {
		return 0, fmt.Errorf("%w: record at %d", ErrTruncated, off)
	}
	return int(off), nil
}

func readString(blob []byte, field int) (string, error) {
	off, err := readOffset(blob, field, 0)
	if err != nil {
		return "", err
	}
	end := bytes.IndexByte(blob[off:], 0)
	if end < 0 {
		return "", fmt.Errorf("%w: unterminated string at %d", ErrMalformed, off)
	}
	return string(blob[off : off+end]), nil
}

// WriteStream writes the length-prefixed blob for m to w.
func WriteStream(w io.Writer, m *Menu) error {
	blob, err := Encode(m)
	if err != nil {
		return err
	}
	var prefix [8]byte
	order.PutUint64(prefix[:], uint64(len(blob)))
	if _, err := w.Write(prefix[:]); err != nil {
		return err
	}
	_, err = w.Write(blob)
	return err
}

// ReadStream reads a length-prefixed blob from r and decodes it.
func ReadStream(r io.Reader) (*Menu, error) {
	var prefix [8]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		return nil, fmt.Errorf("%w: size prefix: %v", ErrTruncated, err)
	}
	size := order.Uint64(prefix[:])
	if size > MaxBlobSize {
		return nil, fmt.Errorf("%w: blob size %d exceeds %d", ErrMalformed, size, MaxBlobSize)
	}
	blob := make([]byte, size)
	if _, err := io.ReadFull(r, blob); err != nil {
		return nil, fmt.Errorf("%w: read %d byte blob: %v", ErrTruncated, size, err)
	}
	return Decode(blob)
}
