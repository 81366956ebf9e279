package copying

import (
	"github.com/daviszhen/tabular/pkg/column"
	"github.com/daviszhen/tabular/pkg/common"
)

// Shift moves every element of input by offset positions: positive
// offsets shift toward higher indices, negative toward lower. Vacated
// positions take the fill scalar. Fixed-width types only.
func Shift(input *column.ColumnView, offset int, fill *column.Scalar, env *Env) (*column.Column, error) {
	if !input.Typ().GetInternalType().IsFixedWidth() {
		return nil, common.ContractErrorf(
			"shift requires a fixed-width type, got %v", input.Typ())
	}
	if !fill.Typ.Equal(input.Typ()) {
		return nil, common.ContractErrorf(
			"fill type %v does not match input type %v", fill.Typ, input.Typ())
	}

	rows := input.Rows()
	out := column.NewColumn(input.Typ(), rows, env.alloc())
	if input.Nullable() || fill.IsNull {
		out.AllocMask()
	}
	err := env.run(func() error {
		// the window of input rows that survive the shift
		srcBegin, dstBegin := 0, offset
		if offset < 0 {
			srcBegin, dstBegin = -offset, 0
		}
		n := max(rows-max(offset, -offset), 0)
		dstBegin = min(dstBegin, rows)
		srcBegin = min(srcBegin, rows)
		if n > 0 {
			opsFor(input.Typ().GetInternalType()).copyRange(input, srcBegin, srcBegin+n, out, dstBegin)
			if out.Nullable() {
				for i := 0; i < n; i++ {
					out.SetNull(dstBegin+i, !input.RowIsValid(srcBegin+i))
				}
			}
		}
		for i := 0; i < dstBegin; i++ {
			out.SetValue(i, fill)
		}
		for i := dstBegin + n; i < rows; i++ {
			out.SetValue(i, fill)
		}
		return nil
	})
	if err != nil {
		out.Release(env.alloc())
		return nil, err
	}
	return out, nil
}
