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
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-audio/audio"
)

// decodeSamples appends n little-endian int16 samples read from b to dst.
func decodeSamples(dst []int16, b []byte, n int) ([]int16, error) {
	if len(b) < n*2 {
		return dst, fmt.Errorf("%w: %d bytes cannot hold %d samples", ErrInvalidFormat, len(b), n)
	}

	for i := 0; i < n; i++ {
		dst = append(dst, int16(binary.LittleEndian.Uint16(b[i*2:])))
	}
	return dst, nil
}

// Physical converts the digital samples to physical values using the
// calibration of the signal header.
func (s Signal) Physical() []float64 {
	h := s.Header
	out := make([]float64, len(s.Samples))
	for i, v := range s.Samples {
		out[i] = convertDigitalToPhysical(v, h.DigitalMin, h.DigitalMax, h.PhysicalMin, h.PhysicalMax)
	}
	return out
}

// convertDigitalToPhysical converts a digital value from the data record to a physical value using the calibration factors.
func convertDigitalToPhysical(digital int16, dmin, dmax, pmin, pmax float64) float64 {
	if dmax == dmin {
		return 0 // Avoid division by zero
	}
	return pmin + (float64(digital)-dmin)*(pmax-pmin)/(dmax-dmin)
}

// IntBuffer returns the samples as a mono 16-bit go-audio buffer. The sample
// rate is rounded to the nearest integer.
func (s Signal) IntBuffer() *audio.IntBuffer {
	data := make([]int, len(s.Samples))
	for i, v := range s.Samples {
		data[i] = int(v)
	}

	rate := 0
	if r := s.Header.SampleRate; !math.IsNaN(r) && !math.IsInf(r, 0) {
		rate = int(math.Round(r))
	}

	return &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  rate,
		},
		Data:           data,
		SourceBitDepth: 16,
	}
}
