package copying

import (
	"github.com/daviszhen/tabular/pkg/column"
	"github.com/daviszhen/tabular/pkg/common"
)

func checkRangeArgs(src *column.ColumnView, srcBegin, srcEnd, tgtRows, tgtBegin int) error {
	if srcBegin < 0 || srcBegin > srcEnd || srcEnd > src.Rows() {
		return common.ContractErrorf(
			"source range [%d,%d) out of bounds for %d rows",
			srcBegin, srcEnd, src.Rows())
	}
	if tgtBegin < 0 || tgtBegin+(srcEnd-srcBegin) > tgtRows {
		return common.ContractErrorf(
			"target range [%d,%d) out of bounds for %d rows",
			tgtBegin, tgtBegin+(srcEnd-srcBegin), tgtRows)
	}
	return nil
}

// CopyRangeInPlace overwrites target rows [tgtBegin, tgtBegin+srcEnd-srcBegin)
// with source rows [srcBegin, srcEnd), in the target's own buffers. Both
// columns must be fixed-width and of the same type. Copying null rows
// into a target without a validity buffer is rejected; the caller owns
// mask allocation for in-place writes.
func CopyRangeInPlace(src *column.ColumnView, target *column.MutableColumnView, srcBegin, srcEnd, tgtBegin int, env *Env) error {
	if !src.Typ().Equal(target.Typ()) {
		return common.ContractErrorf(
			"type mismatch: %v vs %v", src.Typ(), target.Typ())
	}
	if !src.Typ().GetInternalType().IsFixedWidth() {
		return common.ContractErrorf(
			"in-place range copy requires a fixed-width type, got %v", src.Typ())
	}
	if err := checkRangeArgs(src, srcBegin, srcEnd, target.Rows(), tgtBegin); err != nil {
		return err
	}
	if src.HasNulls() && !target.Nullable() {
		return common.ContractErrorf(
			"source has nulls but target has no validity buffer")
	}
	return env.run(func() error {
		n := srcEnd - srcBegin
		// copy handles overlap within a shared buffer
		copy(target.View().SliceView(tgtBegin, tgtBegin+n).RawBytes(),
			src.SliceView(srcBegin, srcEnd).RawBytes())
		if target.Nullable() {
			for i := srcBegin; i < srcEnd; i++ {
				target.SetValid(tgtBegin+i-srcBegin, src.RowIsValid(i))
			}
		}
		return nil
	})
}

// CopyRange is the out-of-place form: the result copies target, with
// rows [tgtBegin, tgtBegin+srcEnd-srcBegin) replaced by source rows
// [srcBegin, srcEnd). Variable-width types are supported.
func CopyRange(src *column.ColumnView, target *column.ColumnView, srcBegin, srcEnd, tgtBegin int, env *Env) (*column.Column, error) {
	if !src.Typ().Equal(target.Typ()) {
		return nil, common.ContractErrorf(
			"type mismatch: %v vs %v", src.Typ(), target.Typ())
	}
	if err := checkRangeArgs(src, srcBegin, srcEnd, target.Rows(), tgtBegin); err != nil {
		return nil, err
	}
	var out *column.Column
	err := env.run(func() error {
		out = copyColumn(target, env)
		sub := src.SliceView(srcBegin, srcEnd)
		releaseRange(out, tgtBegin, tgtBegin+sub.Rows())
		opsFor(src.Typ().GetInternalType()).copyRange(sub, 0, sub.Rows(), out, tgtBegin)
		if src.HasNulls() {
			out.AllocMask()
		}
		if out.Nullable() {
			for i := 0; i < sub.Rows(); i++ {
				out.SetNull(tgtBegin+i, !sub.RowIsValid(i))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
