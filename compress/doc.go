// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

// Package compress detects and unpacks compressed EDF files. EDF archives are
// commonly shipped as gzip, zstd, S2/Snappy or LZ4 streams; the EDF reader
// needs random access, so the content is decompressed into memory.
package compress
