// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package edf

import "github.com/cespare/xxhash/v2"

// maxPrealloc bounds the samples reserved up front per signal, since the
// record count comes from an untrusted header.
const maxPrealloc = 1 << 20

// documentBuilder accumulates decoded data records. build hands the result
// over as a Document; the builder must not be used afterwards.
type documentBuilder struct {
	header      Header
	signals     []Signal
	numSamples  int
	recordBytes int
	digest      *xxhash.Digest
}

func newDocumentBuilder(hdr Header, headers []SignalHeader, numSamples, recordBytes, records int, annotationLabel string) *documentBuilder {
	signals := make([]Signal, len(headers))
	for i, h := range headers {
		signals[i].Header = h
		if !h.IsAnnotation(annotationLabel) {
			signals[i].Samples = make([]int16, 0, preallocSamples(h.SamplesPerRecord, records))
		}
	}

	return &documentBuilder{
		header:      hdr,
		signals:     signals,
		numSamples:  numSamples,
		recordBytes: recordBytes,
		digest:      xxhash.New(),
	}
}

// addRecord demultiplexes a data record and decodes each signal's bytes.
func (b *documentBuilder) addRecord(record []byte, layout recordLayout, o options) error {
	b.digest.Write(record)

	views, err := layout.demux(record)
	if err != nil {
		return err
	}

	for i, v := range views {
		sig := &b.signals[i]
		if sig.Header.IsAnnotation(o.annotationLabel) {
			sig.Annotations = decodeAnnotations(sig.Annotations, v, o.defaultDuration)
			continue
		}

		sig.Samples, err = decodeSamples(sig.Samples, v, sig.Header.SamplesPerRecord)
		if err != nil {
			return err
		}
	}

	return nil
}

// preallocSamples returns the sample capacity to reserve for a signal,
// bounded by maxPrealloc without overflowing.
func preallocSamples(samplesPerRecord, records int) int {
	if samplesPerRecord <= 0 || records <= 0 {
		return 0
	}
	if records > maxPrealloc/samplesPerRecord {
		return maxPrealloc
	}
	return samplesPerRecord * records
}

func (b *documentBuilder) build() *Document {
	return &Document{
		header:      b.header,
		signals:     b.signals,
		numSamples:  b.numSamples,
		recordBytes: b.recordBytes,
		fingerprint: b.digest.Sum64(),
	}
}
