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

// computeSignalMetadata fills in the derived fields of every signal header and
// returns the number of samples and bytes in one data record.
func computeSignalMetadata(recordDuration float64, signals []SignalHeader) (numSamples, recordBytes int, err error) {
	for i := range signals {
		s := &signals[i]
		if s.SamplesPerRecord < 0 || s.SamplesPerRecord > maxSamplesPerRecord {
			return 0, 0, fmt.Errorf("%w: signal %d (%s) has %d samples per record",
				ErrInvalidFormat, i, s.Label, s.SamplesPerRecord)
		}

		s.SampleDuration = recordDuration / float64(s.SamplesPerRecord)
		s.SampleRate = float64(s.SamplesPerRecord) / recordDuration
		s.BytesInDataRecord = s.SamplesPerRecord * 2

		numSamples += s.SamplesPerRecord
		recordBytes += s.BytesInDataRecord
	}

	return numSamples, recordBytes, nil
}
