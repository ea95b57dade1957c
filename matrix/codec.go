// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package matrix

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// headerSize is the byte size of the leading int32 dimension.
const headerSize = 4

// EncodedSize returns the number of bytes Encode writes for an n×n matrix.
func EncodedSize(n int) int64 {
	return headerSize + int64(n)*int64(n)*int64(elemSize)
}

// Decode reads a matrix in the binary format from r into a new matrix backed
// by alloc (HeapAllocator if nil). Row i lands at offset i*PaddedSize(); the
// padding stays zero. A negative dimension or a short read fails with ErrIO.
func Decode(r io.Reader, alloc Allocator) (*Matrix, error) {
	var header [headerSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("%w: reading header: %w", ErrIO, err)
	}
	n := int(int32(binary.LittleEndian.Uint32(header[:])))
	if n < 0 {
		return nil, fmt.Errorf("%w: negative dimension %d in header", ErrIO, n)
	}

	m, err := NewWithAllocator(n, alloc)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, n*elemSize)
	for i := range n {
		if _, err := io.ReadFull(r, buf); err != nil {
			_ = m.Release()
			return nil, fmt.Errorf("%w: reading row %d of %d: %w", ErrIO, i, n, err)
		}
		row := m.Row(i)
		for j := range n {
			row[j] = int32(binary.LittleEndian.Uint32(buf[j*elemSize:]))
		}
	}
	return m, nil
}

// Encode writes m to w in the binary format. Only the logical region is
// written; padding is never persisted.
func Encode(w io.Writer, m *Matrix) error {
	var header [headerSize]byte
	binary.LittleEndian.PutUint32(header[:], uint32(int32(m.size)))
	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("%w: writing header: %w", ErrIO, err)
	}

	buf := make([]byte, m.size*elemSize)
	for i := range m.size {
		for j, v := range m.Row(i)[:m.size] {
			binary.LittleEndian.PutUint32(buf[j*elemSize:], uint32(v))
		}
		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("%w: writing row %d of %d: %w", ErrIO, i, m.size, err)
		}
	}
	return nil
}

// ReadFile decodes the matrix stored at path. The file length is checked
// against the header before anything is allocated, so a truncated file fails
// with ErrIO instead of allocating for a size it cannot fill.
func ReadFile(path string, alloc Allocator) (*Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot open %s: %w", ErrIO, path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: stat %s: %w", ErrIO, path, err)
	}

	br := bufio.NewReaderSize(f, 1<<16)
	header, err := br.Peek(headerSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: reading header: %w", ErrIO, path, err)
	}
	n := int32(binary.LittleEndian.Uint32(header))
	if n >= 0 && info.Mode().IsRegular() && info.Size() < EncodedSize(int(n)) {
		return nil, fmt.Errorf("%w: %s is truncated: %d bytes, want %d for a %dx%d matrix",
			ErrIO, path, info.Size(), EncodedSize(int(n)), n, n)
	}

	m, err := Decode(br, alloc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// WriteFile encodes m to path. The data goes to a temporary file in the same
// directory which is synced and renamed over path only once complete, so a
// failed write never leaves a truncated matrix behind.
func WriteFile(path string, m *Matrix) (err error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: cannot open %s for writing: %w", ErrIO, path, err)
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, removeIfExists(tmp.Name()))
		}
	}()

	bw := bufio.NewWriterSize(tmp, 1<<16)
	if err := Encode(bw, m); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: %s: flush: %w", ErrIO, path, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: %s: chmod: %w", ErrIO, path, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: %s: sync: %w", ErrIO, path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %s: close: %w", ErrIO, path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: %s: rename: %w", ErrIO, path, err)
	}
	return nil
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
