package container

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"fmt"
	"io"
	"sort"
)

// On-disk layout:
//
//	magic "CVC1" | version byte | root group
//
// A group is: attrs (count, then name/value string pairs), datasets
// (count, then name, flags, payload), child groups (count, then
// name/group pairs), all counts and string lengths as uvarints, all
// sections ordered by name so encoding is deterministic. A compressed
// dataset payload is the gzip of its plain payload, length-prefixed.

const (
	magic         = "CVC1"
	formatVersion = 1

	flagGrowable   = 1 << 0
	flagCompressed = 1 << 1

	// Guards against corrupt length prefixes allocating the world
	maxStringLen = 1 << 20
	maxCount     = 1 << 24
)

func encode(root *Group) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(magic)
	buf.WriteByte(formatVersion)
	if err := encodeGroup(&buf, root); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeGroup(buf *bytes.Buffer, g *Group) error {
	names := make([]string, 0, len(g.attrs))
	for name := range g.attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	writeUvarint(buf, uint64(len(names)))
	for _, name := range names {
		writeString(buf, name)
		writeString(buf, g.attrs[name])
	}

	names = names[:0]
	for name := range g.datasets {
		names = append(names, name)
	}
	sort.Strings(names)
	writeUvarint(buf, uint64(len(names)))
	for _, name := range names {
		writeString(buf, name)
		if err := encodeDataset(buf, g.datasets[name]); err != nil {
			return err
		}
	}

	names = names[:0]
	for name := range g.groups {
		names = append(names, name)
	}
	sort.Strings(names)
	writeUvarint(buf, uint64(len(names)))
	for _, name := range names {
		writeString(buf, name)
		if err := encodeGroup(buf, g.groups[name]); err != nil {
			return err
		}
	}
	return nil
}

func encodeDataset(buf *bytes.Buffer, d *Dataset) error {
	var flags byte
	if d.growable {
		flags |= flagGrowable
	}
	if d.compressed {
		flags |= flagCompressed
	}
	buf.WriteByte(flags)

	var payload bytes.Buffer
	writeUvarint(&payload, uint64(len(d.values)))
	for _, v := range d.values {
		writeString(&payload, v)
	}

	if !d.compressed {
		buf.Write(payload.Bytes())
		return nil
	}

	var gz bytes.Buffer
	zw := gzip.NewWriter(&gz)
	if _, err := zw.Write(payload.Bytes()); err != nil {
		return err
	}
	if err := zw.Close(); err != nil {
		return err
	}
	writeUvarint(buf, uint64(gz.Len()))
	buf.Write(gz.Bytes())
	return nil
}

func decode(raw []byte) (*Group, error) {
	if len(raw) < len(magic)+1 || string(raw[:len(magic)]) != magic {
		return nil, ErrInvalidFormat
	}
	if raw[len(magic)] != formatVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidFormat, raw[len(magic)])
	}

	r := bytes.NewReader(raw[len(magic)+1:])
	root, err := decodeGroup(r)
	if err != nil {
		return nil, err
	}
	if r.Len() != 0 {
		return nil, fmt.Errorf("%w: trailing data", ErrInvalidFormat)
	}
	return root, nil
}

func decodeGroup(r *bytes.Reader) (*Group, error) {
	g := newGroup()

	n, err := readCount(r)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		name, err := readString(r)
		if err != nil {
			return nil, err
		}
		value, err := readString(r)
		if err != nil {
			return nil, err
		}
		g.attrs[name] = value
	}

	n, err = readCount(r)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		name, err := readString(r)
		if err != nil {
			return nil, err
		}
		d, err := decodeDataset(r)
		if err != nil {
			return nil, err
		}
		g.datasets[name] = d
	}

	n, err = readCount(r)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		name, err := readString(r)
		if err != nil {
			return nil, err
		}
		child, err := decodeGroup(r)
		if err != nil {
			return nil, err
		}
		g.groups[name] = child
	}
	return g, nil
}

func decodeDataset(r *bytes.Reader) (*Dataset, error) {
	flags, err := r.ReadByte()
	if err != nil {
		return nil, ErrInvalidFormat
	}
	d := &Dataset{
		growable:   flags&flagGrowable != 0,
		compressed: flags&flagCompressed != 0,
	}

	if d.compressed {
		size, err := readCount(r)
		if err != nil {
			return nil, err
		}
		gz := make([]byte, size)
		if _, err := io.ReadFull(r, gz); err != nil {
			return nil, ErrInvalidFormat
		}
		zr, err := gzip.NewReader(bytes.NewReader(gz))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
		plain, err := io.ReadAll(zr)
		if cerr := zr.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
		d.values, err = readValues(bytes.NewReader(plain))
		return d, err
	}

	d.values, err = readValues(r)
	return d, err
}

func readValues(r *bytes.Reader) ([]string, error) {
	n, err := readCount(r)
	if err != nil {
		return nil, err
	}
	values := make([]string, 0, n)
	for i := 0; i < n; i++ {
		v, err := readString(r)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

func writeUvarint(buf *bytes.Buffer, v uint64) {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], v)
	buf.Write(tmp[:n])
}

func writeString(buf *bytes.Buffer, s string) {
	writeUvarint(buf, uint64(len(s)))
	buf.WriteString(s)
}

func readCount(r *bytes.Reader) (int, error) {
	v, err := binary.ReadUvarint(r)
	if err != nil || v > maxCount {
		return 0, ErrInvalidFormat
	}
	return int(v), nil
}

func readString(r *bytes.Reader) (string, error) {
	v, err := binary.ReadUvarint(r)
	if err != nil || v > maxStringLen {
		return "", ErrInvalidFormat
	}
	b := make([]byte, v)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", ErrInvalidFormat
	}
	return string(b), nil
}
