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

	"github.com/OpenPSG/edfread/compress"
)

// DefaultDuration is the duration given to annotations whose onset carries
// no explicit duration: the text of a single NUL byte.
const DefaultDuration = "\x00"

type options struct {
	strict          bool
	defaultDuration string
	annotationLabel string
	maxRecordSize   int
	maxFileSize     int64
}

func defaultOptions() options {
	return options{
		defaultDuration: DefaultDuration,
		annotationLabel: AnnotationsLabel,
		maxFileSize:     compress.DefaultMaxSize,
	}
}

// Option configures a decoding session.
type Option func(*options) error

// Strict makes numeric header fields that do not parse as numbers fail the
// decode with ErrInvalidField. By default such fields decode to NaN.
func Strict() Option {
	return func(o *options) error {
		o.strict = true
		return nil
	}
}

// WithDefaultDuration sets the duration reported for annotations whose onset
// has no duration part.
func WithDefaultDuration(d string) Option {
	return func(o *options) error {
		o.defaultDuration = d
		return nil
	}
}

// WithAnnotationLabel sets the signal label that marks the annotation channel.
func WithAnnotationLabel(label string) Option {
	return func(o *options) error {
		if label == "" {
			return errors.New("annotation label must not be empty")
		}
		o.annotationLabel = label
		return nil
	}
}

// WithMaxRecordSize rejects files whose data records are larger than n bytes.
// Zero disables the limit.
func WithMaxRecordSize(n int) Option {
	return func(o *options) error {
		if n < 0 {
			return fmt.Errorf("max record size must not be negative, got %d", n)
		}
		o.maxRecordSize = n
		return nil
	}
}

// WithMaxFileSize limits how large a compressed file passed to DecodeFile may
// grow when unpacked. Zero removes the limit.
func WithMaxFileSize(n int64) Option {
	return func(o *options) error {
		if n < 0 {
			return fmt.Errorf("max file size must not be negative, got %d", n)
		}
		o.maxFileSize = n
		return nil
	}
}

func applyOptions(opts []Option) (options, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return o, fmt.Errorf("error applying option: %w", err)
		}
	}
	return o, nil
}
