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
	"slices"
	"strconv"
	"time"
)

// AnnotationsLabel is the reserved label of the EDF+ annotation channel.
const AnnotationsLabel = "EDF Annotations"

// Header represents the EDF/EDF+ file header.
type Header struct {
	Version            float64 // Version of the data format (usually 0)
	PatientID          string  // Identification of the patient
	RecordingID        string  // Identification of the recording session
	StartDate          string  // Start date of the recording (dd.mm.yy)
	StartTime          string  // Start time of the recording (hh.mm.ss)
	HeaderBytes        int     // Number of bytes in the header
	Reserved           string  // Reserved (EDF+C / EDF+D in EDF+ files)
	DataRecords        int     // Number of data records, -1 if unknown
	DataRecordDuration float64 // Duration of a single data record in seconds
	SignalCount        int     // Number of signals in each data record
}

// StartDateTime combines StartDate and StartTime into a UTC timestamp.
// Two-digit years 85-99 map to 1985-1999 and 00-84 to 2000-2084.
func (h *Header) StartDateTime() (time.Time, error) {
	date, err := time.Parse("02.01.06", h.StartDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("error parsing start date: %w", err)
	}
	clock, err := time.Parse("15.04.05", h.StartTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("error parsing start time: %w", err)
	}

	year, err := strconv.Atoi(h.StartDate[len(h.StartDate)-2:])
	if err != nil {
		return time.Time{}, fmt.Errorf("error parsing start year: %w", err)
	}
	if year >= 85 {
		year += 1900
	} else {
		year += 2000
	}

	return time.Date(year, date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), 0, time.UTC), nil
}

// RecordDuration returns the duration of a single data record.
func (h *Header) RecordDuration() time.Duration {
	return time.Duration(h.DataRecordDuration * float64(time.Second))
}

// SignalHeader represents the characteristics of each signal in the EDF/EDF+ file.
type SignalHeader struct {
	Label             string  // Label of the signal (e.g., EEG Fpz-Cz)
	TransducerType    string  // Type of transducer used
	PhysicalDimension string  // Physical dimension (e.g., uV, mV)
	PhysicalMin       float64 // Minimum physical value
	PhysicalMax       float64 // Maximum physical value
	DigitalMin        float64 // Minimum digital value
	DigitalMax        float64 // Maximum digital value
	Prefiltering      string  // Pre-filtering information
	SamplesPerRecord  int     // Number of samples in each data record for this signal
	Reserved          string  // Reserved for future use

	SampleDuration    float64 // Seconds between two samples
	SampleRate        float64 // Samples per second
	BytesInDataRecord int     // Bytes this signal occupies in each data record
}

// IsAnnotation reports whether the signal is the annotation channel named
// label. An empty label means AnnotationsLabel.
func (s SignalHeader) IsAnnotation(label string) bool {
	if label == "" {
		label = AnnotationsLabel
	}
	return s.Label == label
}

// Annotation is a single entry of a time-stamped annotation list. Start and
// Duration are kept as they appear in the file.
type Annotation struct {
	Start    string
	Duration string
	Value    string
}

// Signal holds the decoded data of one signal. Ordinary signals carry raw
// digital samples, the annotation channel carries annotations.
type Signal struct {
	Header      SignalHeader
	Samples     []int16
	Annotations []Annotation
}

// Document is the fully decoded content of an EDF file. It is immutable once
// returned; slices obtained from it must not be modified.
type Document struct {
	header      Header
	signals     []Signal
	numSamples  int
	recordBytes int
	fingerprint uint64
}

// Header returns the file header.
func (d *Document) Header() Header {
	return d.header
}

// Signals returns the decoded signals in declaration order.
func (d *Document) Signals() []Signal {
	return slices.Clone(d.signals)
}

// Signal returns the first signal with the given label.
func (d *Document) Signal(label string) (Signal, bool) {
	for _, s := range d.signals {
		if s.Header.Label == label {
			return s, true
		}
	}
	return Signal{}, false
}

// Annotations returns the annotations of every annotation channel, in
// channel order.
func (d *Document) Annotations() []Annotation {
	var out []Annotation
	for _, s := range d.signals {
		out = append(out, s.Annotations...)
	}
	return out
}

// NumSamplesInDataRecord is the sum of samples per record over all signals.
func (d *Document) NumSamplesInDataRecord() int {
	return d.numSamples
}

// BytesInDataRecord is the size of a single data record.
func (d *Document) BytesInDataRecord() int {
	return d.recordBytes
}

// Fingerprint is the xxHash64 of all header and data record bytes read.
func (d *Document) Fingerprint() uint64 {
	return d.fingerprint
}
