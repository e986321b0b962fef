// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package edf

import "errors"

var (
	// ErrInvalidFormat is returned when the header fields describe a layout
	// that cannot be read (no signals, a zero-length record, a header size
	// that disagrees with the signal count).
	ErrInvalidFormat = errors.New("edf: invalid format")

	// ErrInvalidField is returned in strict mode when a numeric field does
	// not contain a number.
	ErrInvalidField = errors.New("edf: invalid numeric field")

	ErrHeaderNotDecoded  = errors.New("edf: file header not decoded")
	ErrSignalsNotDecoded = errors.New("edf: signal headers not decoded")

	// ErrAlreadyDecoded is returned when data records are decoded a second
	// time on a session without calling Reset first.
	ErrAlreadyDecoded = errors.New("edf: data records already decoded")
)
