// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

// Package edf decodes European Data Format (EDF/EDF+) recordings.
//
// A Session reads the fixed 256 byte file header, the column-major signal
// header block and then every data record, splitting each record into the
// raw 16-bit samples of ordinary signals and the time-stamped annotation
// lists of the "EDF Annotations" channel:
//
//	doc, err := edf.DecodeFile("night.edf")
//	if err != nil {
//		return err
//	}
//	for _, a := range doc.Annotations() {
//		fmt.Println(a.Start, a.Value)
//	}
//
// Numeric header fields that do not hold a number decode to NaN rather than
// failing, since many recorders write loose headers. Use Strict to reject
// them instead.
package edf
