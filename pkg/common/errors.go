package common

import (
	"errors"
	"fmt"
)

// ErrContract is the single error family of the engine. Every
// precondition failure wraps it: type mismatch, row-count mismatch,
// non-boolean mask, malformed index or split ranges, out-of-range
// bounds, missing validity buffer on a target that must hold nulls,
// unsupported type for a fixed-width-only operation.
var ErrContract = errors.New("contract violation")

func ContractErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrContract, fmt.Sprintf(format, args...))
}

func IsContract(err error) bool {
	return errors.Is(err, ErrContract)
}
