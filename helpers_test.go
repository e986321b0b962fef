// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package edf_test

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

type testSignal struct {
	label            string
	transducer       string
	dimension        string
	physicalMin      string
	physicalMax      string
	digitalMin       string
	digitalMax       string
	samplesPerRecord int
	samples          [][]int16 // one slice per data record
	tals             []string  // one annotation record per data record
}

type testFile struct {
	version      string
	patientID    string
	recordingID  string
	startDate    string
	startTime    string
	headerBytes  string // computed when empty
	dataRecords  string // len(records) when empty
	duration     string
	signals      []testSignal
	truncateData int // bytes removed from the end of the file
}

func newTestFile() testFile {
	return testFile{
		version:     "0",
		patientID:   "X F 01-JAN-1970 Patient",
		recordingID: "Startdate 12-MAR-24 PSG",
		startDate:   "12.03.24",
		startTime:   "22.15.00",
		duration:    "1",
	}
}

func numericSignal(label string, samplesPerRecord int, records ...[]int16) testSignal {
	return testSignal{
		label:            label,
		transducer:       "AgAgCl electrode",
		dimension:        "uV",
		physicalMin:      "-500",
		physicalMax:      "500",
		digitalMin:       "-32768",
		digitalMax:       "32767",
		samplesPerRecord: samplesPerRecord,
		samples:          records,
	}
}

func annotationSignal(samplesPerRecord int, tals ...string) testSignal {
	return testSignal{
		label:            "EDF Annotations",
		physicalMin:      "-1",
		physicalMax:      "1",
		digitalMin:       "-32768",
		digitalMax:       "32767",
		samplesPerRecord: samplesPerRecord,
		tals:             tals,
	}
}

func (tf testFile) records() int {
	n := 0
	for _, s := range tf.signals {
		n = max(n, len(s.samples), len(s.tals))
	}
	return n
}

// build lays out the file the way an EDF writer does: fixed header, one
// column per signal header field, then the interleaved data records.
func (tf testFile) build(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	field := func(width int, v string) {
		s := fmt.Sprintf("%-*s", width, v)
		require.Len(t, s, width, "field %q too wide", v)
		buf.WriteString(s)
	}

	headerBytes := tf.headerBytes
	if headerBytes == "" {
		headerBytes = fmt.Sprint(256 + 256*len(tf.signals))
	}
	dataRecords := tf.dataRecords
	if dataRecords == "" {
		dataRecords = fmt.Sprint(tf.records())
	}

	field(8, tf.version)
	field(80, tf.patientID)
	field(80, tf.recordingID)
	field(8, tf.startDate)
	field(8, tf.startTime)
	field(8, headerBytes)
	field(44, "")
	field(8, dataRecords)
	field(8, tf.duration)
	field(4, fmt.Sprint(len(tf.signals)))

	for _, s := range tf.signals {
		field(16, s.label)
	}
	for _, s := range tf.signals {
		field(80, s.transducer)
	}
	for _, s := range tf.signals {
		field(8, s.dimension)
	}
	for _, s := range tf.signals {
		field(8, s.physicalMin)
	}
	for _, s := range tf.signals {
		field(8, s.physicalMax)
	}
	for _, s := range tf.signals {
		field(8, s.digitalMin)
	}
	for _, s := range tf.signals {
		field(8, s.digitalMax)
	}
	for range tf.signals {
		field(80, "HP:0.1Hz LP:75Hz")
	}
	for _, s := range tf.signals {
		field(8, fmt.Sprint(s.samplesPerRecord))
	}
	for range tf.signals {
		field(32, "")
	}

	for i := 0; i < tf.records(); i++ {
		for _, s := range tf.signals {
			raw := make([]byte, s.samplesPerRecord*2)
			switch {
			case s.tals != nil:
				require.LessOrEqual(t, len(s.tals[i]), len(raw), "annotation record too long")
				copy(raw, s.tals[i])
			case s.samples != nil:
				require.Len(t, s.samples[i], s.samplesPerRecord)
				for j, v := range s.samples[i] {
					binary.LittleEndian.PutUint16(raw[j*2:], uint16(v))
				}
			}
			buf.Write(raw)
		}
	}

	b := buf.Bytes()
	return b[:len(b)-tf.truncateData]
}

// ramp returns n samples counting up from start.
func ramp(start, n int) []int16 {
	out := make([]int16, n)
	for i := range out {
		out[i] = int16(start + i)
	}
	return out
}

// tal encodes a single time-stamped annotation list.
func tal(onset, duration string, texts ...string) string {
	s := onset
	if duration != "" {
		s += "\x15" + duration
	}
	s += "\x14"
	for _, text := range texts {
		s += text + "\x14"
	}
	return s + "\x00"
}
