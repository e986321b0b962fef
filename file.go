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
	"errors"
	"fmt"
	"os"

	"github.com/OpenPSG/edfread/compress"
)

// DecodeFile decodes the EDF file at path. Compressed files are unpacked
// first. The file is closed before DecodeFile returns.
func DecodeFile(path string, opts ...Option) (doc *Document, err error) {
	o, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("error closing file: %w", cerr))
		}
	}()

	r, format, err := compress.NewReader(f, compress.WithMaxSize(o.maxFileSize))
	if err != nil {
		return nil, fmt.Errorf("error opening %s: %w", path, err)
	}
	if format != compress.None {
		plog.Debugf("%s is %v compressed", path, format)
	}

	return Decode(r, opts...)
}
