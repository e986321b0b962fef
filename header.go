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
	"math"
	"strconv"
	"strings"
)

const (
	fileHeaderSize   = 256
	signalHeaderSize = 256

	// Largest values the 4 and 8 character count fields can hold as digits.
	maxSignals          = 9999
	maxSamplesPerRecord = 99999999
)

// FieldKind selects how the bytes of a header field are interpreted.
type FieldKind int

const (
	FieldText FieldKind = iota
	FieldNumeric
)

func (k FieldKind) String() string {
	switch k {
	case FieldText:
		return "text"
	case FieldNumeric:
		return "numeric"
	default:
		return fmt.Sprintf("FieldKind(%d)", int(k))
	}
}

// Field describes a fixed width ASCII header field.
type Field struct {
	Name  string
	Width int
	Kind  FieldKind
}

// FileHeaderFields lists the fields of the 256 byte file header in file order.
var FileHeaderFields = []Field{
	{"version", 8, FieldNumeric},
	{"patient_id", 80, FieldText},
	{"record_id", 80, FieldText},
	{"start_date", 8, FieldText},
	{"start_time", 8, FieldText},
	{"number_of_bytes_in_header", 8, FieldNumeric},
	{"reserved", 44, FieldText},
	{"number_of_blocks_in_record", 8, FieldNumeric},
	{"duration_of_data_record", 8, FieldNumeric},
	{"number_of_signals", 4, FieldNumeric},
}

// SignalHeaderFields lists the per-signal fields in file order. Each field is
// stored once per signal before the next field starts.
var SignalHeaderFields = []Field{
	{"label", 16, FieldText},
	{"transducer", 80, FieldText},
	{"physical_dimension", 8, FieldText},
	{"physical_min", 8, FieldNumeric},
	{"physical_max", 8, FieldNumeric},
	{"digital_min", 8, FieldNumeric},
	{"digital_max", 8, FieldNumeric},
	{"prefiltering", 80, FieldText},
	{"number_of_samples", 8, FieldNumeric},
	{"reserved", 32, FieldText},
}

type fieldValue struct {
	text string
	num  float64
}

// decodeField trims the field and, for numeric fields, parses it. A numeric
// field that is not a number yields NaN unless strict is set.
func decodeField(f Field, b []byte, strict bool) (fieldValue, error) {
	text := strings.TrimSpace(string(b))

	switch f.Kind {
	case FieldText:
		return fieldValue{text: text}, nil
	case FieldNumeric:
		num, err := strconv.ParseFloat(text, 64)
		if err != nil {
			if strict {
				return fieldValue{}, fmt.Errorf("%w: %s %q", ErrInvalidField, f.Name, text)
			}
			plog.Warningf("field %s: %q is not a number", f.Name, text)
			num = math.NaN()
		}
		return fieldValue{text: text, num: num}, nil
	default:
		return fieldValue{}, fmt.Errorf("unknown kind %v for field %s", f.Kind, f.Name)
	}
}

// toInt truncates a numeric field to an int. NaN becomes 0 and values outside
// the int range are clamped.
func toInt(f float64) int {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt64:
		return math.MaxInt
	case f <= math.MinInt64:
		return math.MinInt
	}
	return int(f)
}

func (h *Header) assign(name string, v fieldValue) {
	switch name {
	case "version":
		h.Version = v.num
	case "patient_id":
		h.PatientID = v.text
	case "record_id":
		h.RecordingID = v.text
	case "start_date":
		h.StartDate = v.text
	case "start_time":
		h.StartTime = v.text
	case "number_of_bytes_in_header":
		h.HeaderBytes = toInt(v.num)
	case "reserved":
		h.Reserved = v.text
	case "number_of_blocks_in_record":
		h.DataRecords = toInt(v.num)
	case "duration_of_data_record":
		h.DataRecordDuration = v.num
	case "number_of_signals":
		h.SignalCount = toInt(v.num)
	}
}

func (s *SignalHeader) assign(name string, v fieldValue) {
	switch name {
	case "label":
		s.Label = v.text
	case "transducer":
		s.TransducerType = v.text
	case "physical_dimension":
		s.PhysicalDimension = v.text
	case "physical_min":
		s.PhysicalMin = v.num
	case "physical_max":
		s.PhysicalMax = v.num
	case "digital_min":
		s.DigitalMin = v.num
	case "digital_max":
		s.DigitalMax = v.num
	case "prefiltering":
		s.Prefiltering = v.text
	case "number_of_samples":
		s.SamplesPerRecord = toInt(v.num)
	case "reserved":
		s.Reserved = v.text
	}
}

// decodeFileHeader parses the 256 byte file header.
func decodeFileHeader(b []byte, strict bool) (*Header, error) {
	if len(b) != fileHeaderSize {
		return nil, fmt.Errorf("%w: file header is %d bytes, want %d", ErrInvalidFormat, len(b), fileHeaderSize)
	}

	hdr := &Header{}
	off := 0
	for _, f := range FileHeaderFields {
		v, err := decodeField(f, b[off:off+f.Width], strict)
		if err != nil {
			return nil, err
		}
		hdr.assign(f.Name, v)
		off += f.Width
	}

	return hdr, nil
}

// decodeSignalHeaders parses the column-major signal header block: all labels,
// then all transducer types, and so on.
func decodeSignalHeaders(b []byte, signalCount int, strict bool) ([]SignalHeader, error) {
	if signalCount <= 0 {
		return nil, fmt.Errorf("%w: %d signals", ErrInvalidFormat, signalCount)
	}
	if len(b) != signalCount*signalHeaderSize {
		return nil, fmt.Errorf("%w: signal header block is %d bytes, want %d",
			ErrInvalidFormat, len(b), signalCount*signalHeaderSize)
	}

	signals := make([]SignalHeader, signalCount)
	off := 0
	for _, f := range SignalHeaderFields {
		for i := range signals {
			v, err := decodeField(f, b[off:off+f.Width], strict)
			if err != nil {
				return nil, fmt.Errorf("signal %d: %w", i, err)
			}
			signals[i].assign(f.Name, v)
			off += f.Width
		}
	}

	return signals, nil
}
