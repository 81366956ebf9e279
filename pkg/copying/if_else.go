package copying

import (
	"github.com/daviszhen/tabular/pkg/column"
	"github.com/daviszhen/tabular/pkg/common"
)

// side is one operand of a selection: either a column view or a
// broadcast scalar. value/valid read row i of the operand.
type side struct {
	view *column.ColumnView
	val  *column.Scalar
}

func colSide(v *column.ColumnView) side {
	return side{view: v}
}

func scalarSide(s *column.Scalar) side {
	return side{val: s}
}

func (s side) typ() common.LType {
	if s.view != nil {
		return s.view.Typ()
	}
	return s.val.Typ
}

func (s side) value(i int) *column.Scalar {
	if s.view != nil {
		return s.view.GetValue(i)
	}
	return s.val
}

func (s side) valid(i int) bool {
	if s.view != nil {
		return s.view.RowIsValid(i)
	}
	return !s.val.IsNull
}

func (s side) mayBeNull() bool {
	if s.view != nil {
		return s.view.Nullable()
	}
	return s.val.IsNull
}

// ifElse selects row i of lhs where the boolean mask holds true at i,
// row i of rhs otherwise. A null mask bit selects rhs.
func ifElse(lhs, rhs side, mask *column.ColumnView, env *Env) (*column.Column, error) {
	if !lhs.typ().Equal(rhs.typ()) {
		return nil, common.ContractErrorf(
			"operand type mismatch: %v vs %v", lhs.typ(), rhs.typ())
	}
	if mask.Typ().Id != common.LTID_BOOLEAN {
		return nil, common.ContractErrorf("mask type %v is not boolean", mask.Typ())
	}
	for _, s := range []side{lhs, rhs} {
		if s.view != nil && s.view.Rows() != mask.Rows() {
			return nil, common.ContractErrorf(
				"operand has %d rows, mask has %d", s.view.Rows(), mask.Rows())
		}
	}

	rows := mask.Rows()
	out := column.NewColumn(lhs.typ(), rows, env.alloc())
	if lhs.mayBeNull() || rhs.mayBeNull() {
		out.AllocMask()
	}
	err := env.run(func() error {
		bools := column.ViewSlice[bool](mask)
		for i := 0; i < rows; i++ {
			pick := rhs
			if bools[i] && mask.RowIsValid(i) {
				pick = lhs
			}
			if !pick.valid(i) {
				out.SetNull(i, true)
				storeEmpty(out, i)
				continue
			}
			out.SetValue(i, pick.value(i))
		}
		return nil
	})
	if err != nil {
		out.Release(env.alloc())
		return nil, err
	}
	return out, nil
}

// storeEmpty zeroes the element bytes of a null row so varchar headers
// never point at stale memory.
func storeEmpty(out *column.Column, idx int) {
	if out.Typ().GetInternalType().IsVarchar() {
		column.ColumnSlice[common.String](out)[idx] = common.String{}
	}
}

// CopyIfElse selects between two equally sized columns element-wise.
func CopyIfElse(lhs, rhs *column.ColumnView, mask *column.ColumnView, env *Env) (*column.Column, error) {
	return ifElse(colSide(lhs), colSide(rhs), mask, env)
}

// CopyIfElseScalarLeft broadcasts the left operand.
func CopyIfElseScalarLeft(lhs *column.Scalar, rhs *column.ColumnView, mask *column.ColumnView, env *Env) (*column.Column, error) {
	return ifElse(scalarSide(lhs), colSide(rhs), mask, env)
}

// CopyIfElseScalarRight broadcasts the right operand.
func CopyIfElseScalarRight(lhs *column.ColumnView, rhs *column.Scalar, mask *column.ColumnView, env *Env) (*column.Column, error) {
	return ifElse(colSide(lhs), scalarSide(rhs), mask, env)
}

// CopyIfElseScalars broadcasts both operands; the output length is the
// mask length.
func CopyIfElseScalars(lhs, rhs *column.Scalar, mask *column.ColumnView, env *Env) (*column.Column, error) {
	return ifElse(scalarSide(lhs), scalarSide(rhs), mask, env)
}
