// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package edf

import (
	"fmt"
	"io"
	"math"
	"slices"

	"github.com/dustin/go-humanize"
)

type sessionState int

const (
	stateOpen sessionState = iota
	stateHeader
	stateSignals
	stateDecoding // set while records are read, left behind by a failed decode
	stateDone
)

// Session decodes a single EDF/EDF+ stream. The file header, the signal
// headers and the data records must be decoded in that order. A Session is
// not safe for concurrent use.
type Session struct {
	r    io.ReadSeeker
	opts options

	state   sessionState
	hdr     *Header
	raw     []byte // file header followed by the signal header block
	signals []SignalHeader
	layout  recordLayout
	doc     *Document

	numSamples int
}

// Open creates a session reading from r. Nothing is read until one of the
// Decode methods is called.
func Open(r io.ReadSeeker, opts ...Option) (*Session, error) {
	o, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	return &Session{r: r, opts: o}, nil
}

// Decode reads the whole stream and returns the decoded document.
func Decode(r io.ReadSeeker, opts ...Option) (*Document, error) {
	s, err := Open(r, opts...)
	if err != nil {
		return nil, err
	}
	if _, err := s.DecodeHeader(); err != nil {
		return nil, err
	}
	if _, err := s.DecodeSignalHeaders(); err != nil {
		return nil, err
	}
	return s.DecodeRecords()
}

// DecodeHeader reads and parses the 256 byte file header. Decoding the header
// again discards everything decoded before.
func (s *Session) DecodeHeader() (*Header, error) {
	if _, err := s.r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("error seeking to header: %w", err)
	}

	b := make([]byte, fileHeaderSize)
	if _, err := io.ReadFull(s.r, b); err != nil {
		return nil, fmt.Errorf("error reading header: %w", err)
	}

	hdr, err := decodeFileHeader(b, s.opts.strict)
	if err != nil {
		return nil, fmt.Errorf("error parsing header: %w", err)
	}

	if hdr.SignalCount <= 0 || hdr.SignalCount > maxSignals {
		return nil, fmt.Errorf("%w: %d signals", ErrInvalidFormat, hdr.SignalCount)
	}
	if want := fileHeaderSize + hdr.SignalCount*signalHeaderSize; hdr.HeaderBytes != want {
		return nil, fmt.Errorf("%w: header is %d bytes, %d signals need %d",
			ErrInvalidFormat, hdr.HeaderBytes, hdr.SignalCount, want)
	}

	plog.Debugf("decoded header: %d signals, %d data records of %gs", hdr.SignalCount, hdr.DataRecords, hdr.DataRecordDuration)

	s.hdr = hdr
	s.raw = b
	s.signals = nil
	s.doc = nil
	s.state = stateHeader

	return hdr, nil
}

// DecodeSignalHeaders reads the signal header block that follows the file
// header and derives the per-signal sampling metadata.
func (s *Session) DecodeSignalHeaders() ([]SignalHeader, error) {
	if s.state < stateHeader {
		return nil, ErrHeaderNotDecoded
	}

	if _, err := s.r.Seek(fileHeaderSize, io.SeekStart); err != nil {
		return nil, fmt.Errorf("error seeking to signal headers: %w", err)
	}

	b := make([]byte, s.hdr.SignalCount*signalHeaderSize)
	if _, err := io.ReadFull(s.r, b); err != nil {
		return nil, fmt.Errorf("error reading signal headers: %w", err)
	}

	signals, err := decodeSignalHeaders(b, s.hdr.SignalCount, s.opts.strict)
	if err != nil {
		return nil, fmt.Errorf("error parsing signal headers: %w", err)
	}

	numSamples, recordBytes, err := computeSignalMetadata(s.hdr.DataRecordDuration, signals)
	if err != nil {
		return nil, err
	}

	plog.Debugf("decoded %d signal headers: %s samples in %s per data record",
		len(signals), humanize.Comma(int64(numSamples)), humanize.Bytes(uint64(recordBytes)))

	s.raw = append(s.raw[:fileHeaderSize], b...)
	s.signals = signals
	s.layout = newRecordLayout(signals)
	s.numSamples = numSamples
	s.doc = nil
	s.state = stateSignals

	return slices.Clone(signals), nil
}

// DecodeRecords reads every data record and returns the decoded document.
// It may only run once per session; call Reset to decode the records again.
func (s *Session) DecodeRecords() (*Document, error) {
	switch {
	case s.state < stateSignals:
		return nil, ErrSignalsNotDecoded
	case s.state > stateSignals:
		return nil, ErrAlreadyDecoded
	}

	recordBytes := s.layout.size()
	if recordBytes == 0 {
		return nil, fmt.Errorf("%w: data records are empty", ErrInvalidFormat)
	}
	if limit := s.opts.maxRecordSize; limit > 0 && recordBytes > limit {
		return nil, fmt.Errorf("%w: data record is %d bytes, limit is %d", ErrInvalidFormat, recordBytes, limit)
	}

	count, err := s.recordCount(recordBytes)
	if err != nil {
		return nil, err
	}

	s.state = stateDecoding

	b := newDocumentBuilder(*s.hdr, s.signals, s.numSamples, recordBytes, count, s.opts.annotationLabel)
	b.digest.Write(s.raw)

	record := make([]byte, recordBytes)
	for i := 0; i < count; i++ {
		pos := int64(s.hdr.HeaderBytes) + int64(i)*int64(recordBytes)
		if _, err := s.r.Seek(pos, io.SeekStart); err != nil {
			return nil, fmt.Errorf("error seeking to data record %d: %w", i, err)
		}
		if _, err := io.ReadFull(s.r, record); err != nil {
			return nil, fmt.Errorf("error reading data record %d: %w", i, err)
		}

		if err := b.addRecord(record, s.layout, s.opts); err != nil {
			return nil, fmt.Errorf("error decoding data record %d: %w", i, err)
		}
	}

	plog.Debugf("decoded %s data records (%s)", humanize.Comma(int64(count)),
		humanize.Bytes(uint64(count)*uint64(recordBytes)))

	s.doc = b.build()
	s.state = stateDone

	return s.doc, nil
}

// Reset discards decoded data records so DecodeRecords can run again. The
// file and signal headers are kept.
func (s *Session) Reset() {
	s.doc = nil
	if s.state > stateSignals {
		s.state = stateSignals
	}
}

// Header returns the decoded file header, or nil.
func (s *Session) Header() *Header {
	return s.hdr
}

// Document returns the decoded document, or nil if the data records have not
// been decoded.
func (s *Session) Document() *Document {
	return s.doc
}

// recordCount returns the number of data records to read. An unknown count
// (-1) is derived from the stream size, ignoring a trailing partial record.
func (s *Session) recordCount(recordBytes int) (int, error) {
	switch n := s.hdr.DataRecords; {
	case n < -1:
		return 0, fmt.Errorf("%w: %d data records", ErrInvalidFormat, n)
	case n >= 0:
		if int64(n) > (math.MaxInt64-int64(s.hdr.HeaderBytes))/int64(recordBytes) {
			return 0, fmt.Errorf("%w: %d data records of %d bytes overflow the file offset",
				ErrInvalidFormat, n, recordBytes)
		}
		return n, nil
	}

	size, err := s.r.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, fmt.Errorf("error seeking to end of data: %w", err)
	}

	data := size - int64(s.hdr.HeaderBytes)
	if data < 0 {
		return 0, fmt.Errorf("%w: stream is %d bytes, shorter than its header", ErrInvalidFormat, size)
	}

	count := int(data / int64(recordBytes))
	plog.Debugf("number of data records unknown, %d found in stream", count)

	return count, nil
}
