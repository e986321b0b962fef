// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package compress

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Format identifies the container a stream is wrapped in.
type Format int

const (
	None Format = iota
	Gzip
	Zstd
	S2
	LZ4
)

func (f Format) String() string {
	switch f {
	case None:
		return "none"
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	case S2:
		return "s2"
	case LZ4:
		return "lz4"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

var magics = []struct {
	format Format
	magic  []byte
}{
	{Gzip, []byte{0x1f, 0x8b}},
	{Zstd, []byte{0x28, 0xb5, 0x2f, 0xfd}},
	{S2, []byte("\xff\x06\x00\x00S2sTwO")},
	{S2, []byte("\xff\x06\x00\x00sNaPpY")},
	{LZ4, []byte{0x04, 0x22, 0x4d, 0x18}},
}

// magicLen is the number of leading bytes Detect needs to see.
const magicLen = 10

// ErrUnknownFormat is returned for a Format value that has no decoder.
var ErrUnknownFormat = errors.New("compress: unknown format")

// Detect returns the container format of a stream starting with b.
func Detect(b []byte) Format {
	for _, m := range magics {
		if bytes.HasPrefix(b, m.magic) {
			return m.format
		}
	}
	return None
}

// DefaultMaxSize bounds the decompressed size of a stream unless WithMaxSize
// says otherwise.
const DefaultMaxSize = 4 << 30

// ErrTooLarge is returned when a stream decompresses to more than the limit.
var ErrTooLarge = errors.New("compress: decompressed data exceeds size limit")

type config struct {
	maxSize int64
}

// Option configures decompression.
type Option func(*config)

// WithMaxSize limits the decompressed size to n bytes. Zero or a negative n
// removes the limit.
func WithMaxSize(n int64) Option {
	return func(c *config) {
		c.maxSize = n
	}
}

func newConfig(opts []Option) config {
	c := config{maxSize: DefaultMaxSize}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// NewReader returns a seekable reader over the decompressed content of r. An
// uncompressed io.ReadSeeker is returned as is, rewound to its start.
func NewReader(r io.Reader, opts ...Option) (io.ReadSeeker, Format, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		head := make([]byte, magicLen)
		n, err := io.ReadFull(rs, head)
		if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
			return nil, None, fmt.Errorf("error reading magic: %w", err)
		}
		if _, err := rs.Seek(0, io.SeekStart); err != nil {
			return nil, None, fmt.Errorf("error rewinding: %w", err)
		}

		f := Detect(head[:n])
		if f == None {
			return rs, None, nil
		}
		data, err := Decompress(f, rs, opts...)
		if err != nil {
			return nil, f, err
		}
		return bytes.NewReader(data), f, nil
	}

	br := bufio.NewReader(r)
	head, err := br.Peek(magicLen)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, None, fmt.Errorf("error reading magic: %w", err)
	}

	f := Detect(head)
	data, err := Decompress(f, br, opts...)
	if err != nil {
		return nil, f, err
	}
	return bytes.NewReader(data), f, nil
}

// Decompress reads all of r and decodes it as format f.
func Decompress(f Format, r io.Reader, opts ...Option) ([]byte, error) {
	limit := newConfig(opts).maxSize

	switch f {
	case None:
		return readAll(f, r, limit)
	case Gzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("error opening gzip stream: %w", err)
		}
		defer zr.Close()
		return readAll(f, zr, limit)
	case Zstd:
		dec, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, fmt.Errorf("error opening zstd stream: %w", err)
		}
		defer dec.Close()
		return readAll(f, dec, limit)
	case S2:
		return readAll(f, s2.NewReader(r), limit)
	case LZ4:
		return readAll(f, lz4.NewReader(r), limit)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, f)
	}
}

// readAll reads r to the end, failing with ErrTooLarge past limit bytes.
func readAll(f Format, r io.Reader, limit int64) ([]byte, error) {
	if limit > 0 {
		r = io.LimitReader(r, limit+1)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		if f == None {
			return nil, fmt.Errorf("error reading stream: %w", err)
		}
		return nil, fmt.Errorf("error decompressing %v stream: %w", f, err)
	}
	if limit > 0 && int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: %v stream is larger than %d bytes", ErrTooLarge, f, limit)
	}
	return data, nil
}
