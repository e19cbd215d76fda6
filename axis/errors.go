// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package axis

import (
	"errors"
	"fmt"
)

// ErrInvalidDomain is returned for malformed explicit domain bounds.
var ErrInvalidDomain = errors.New("invalid domain")

// DomainError describes an explicit domain that cannot be used.
type DomainError struct {
	AxisID string
	Reason string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("axis %q: %v: %s", e.AxisID, ErrInvalidDomain, e.Reason)
}

func (e *DomainError) Unwrap() error {
	return ErrInvalidDomain
}

func domainError(id, format string, args ...interface{}) error {
	return &DomainError{AxisID: id, Reason: fmt.Sprintf(format, args...)}
}
