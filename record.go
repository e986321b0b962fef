// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package edf

import "fmt"

// recordLayout holds the byte range of every signal within a data record.
type recordLayout struct {
	offsets []int // start of each signal, plus the record size as last element
}

func newRecordLayout(signals []SignalHeader) recordLayout {
	offsets := make([]int, 0, len(signals)+1)
	off := 0
	for _, s := range signals {
		offsets = append(offsets, off)
		off += s.BytesInDataRecord
	}
	offsets = append(offsets, off)

	return recordLayout{offsets: offsets}
}

// size returns the number of bytes in a data record.
func (l recordLayout) size() int {
	return l.offsets[len(l.offsets)-1]
}

// view returns the bytes of signal i. The returned slice has its capacity
// clipped so appending to it can never write into the next signal.
func (l recordLayout) view(record []byte, i int) ([]byte, error) {
	if i < 0 || i >= len(l.offsets)-1 {
		return nil, fmt.Errorf("signal index %d out of range", i)
	}
	if len(record) != l.size() {
		return nil, fmt.Errorf("%w: data record is %d bytes, want %d", ErrInvalidFormat, len(record), l.size())
	}

	start, end := l.offsets[i], l.offsets[i+1]
	return record[start:end:end], nil
}

// demux splits a data record into per-signal views in declaration order.
func (l recordLayout) demux(record []byte) ([][]byte, error) {
	views := make([][]byte, len(l.offsets)-1)
	for i := range views {
		v, err := l.view(record, i)
		if err != nil {
			return nil, err
		}
		views[i] = v
	}
	return views, nil
}
