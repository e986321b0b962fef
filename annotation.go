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
	"bytes"
	"strings"
)

const (
	dc4 = 0x14 // separates annotations within a TAL
	nak = 0x15 // separates onset from duration
)

var talSeparator = []byte{dc4, 0x00}

// split cuts b at every occurrence of sep. Empty pieces between separators are
// kept; an empty remainder after the last separator is not.
func split(b, sep []byte) [][]byte {
	var parts [][]byte
	for {
		i := bytes.Index(b, sep)
		if i < 0 {
			break
		}
		parts = append(parts, b[:i:i])
		b = b[i+len(sep):]
	}
	if len(b) > 0 {
		parts = append(parts, b)
	}
	return parts
}

// decodeAnnotations parses the time-stamped annotation lists of one
// annotation channel record and appends one Annotation per text entry.
func decodeAnnotations(dst []Annotation, b []byte, defaultDuration string) []Annotation {
	for _, tal := range split(b, talSeparator) {
		if bytes.IndexByte(tal, dc4) < 0 {
			continue
		}

		parts := split(tal, []byte{dc4})
		onset := split(parts[0], []byte{nak})

		var start string
		if len(onset) > 0 {
			start = string(onset[0])
		}
		duration := defaultDuration
		if len(onset) > 1 {
			duration = string(onset[1])
		}

		for _, text := range parts[1:] {
			dst = append(dst, Annotation{
				Start:    start,
				Duration: duration,
				Value:    strings.TrimSpace(string(text)),
			})
		}
	}
	return dst
}
