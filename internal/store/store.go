// Package store wraps the database with insert, scoped conditional update
// and parameterized read operations. Conditional updates return the number
// of rows they changed; callers treat zero as "the precondition did not
// hold" without learning which part of the predicate failed.
package store

import "errors"

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)
