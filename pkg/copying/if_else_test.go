package copying

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daviszhen/tabular/pkg/column"
	"github.com/daviszhen/tabular/pkg/common"
)

func TestCopyIfElse(t *testing.T) {
	lhs := column.NewIntegerColumn([]int32{1, 2, 3})
	rhs := column.NewIntegerColumn([]int32{10, 20, 30})
	mask := column.NewBooleanColumn([]bool{true, false, true}).SetNulls([]int{2})
	defer lhs.Release(nil)
	defer rhs.Release(nil)
	defer mask.Release(nil)

	out, err := CopyIfElse(lhs.View(), rhs.View(), mask.View(), nil)
	require.NoError(t, err)
	defer out.Release(nil)

	// null mask bit selects the right side
	assertI32Rows(t, out.View(), []int32{1, 20, 30}, nil)
}

func TestCopyIfElseNullOperands(t *testing.T) {
	lhs := column.NewIntegerColumn([]int32{1, 2}).SetNulls([]int{0})
	rhs := column.NewIntegerColumn([]int32{10, 20}).SetNulls([]int{1})
	mask := column.NewBooleanColumn([]bool{true, false})
	defer lhs.Release(nil)
	defer rhs.Release(nil)
	defer mask.Release(nil)

	out, err := CopyIfElse(lhs.View(), rhs.View(), mask.View(), nil)
	require.NoError(t, err)
	defer out.Release(nil)

	assertI32Rows(t, out.View(), []int32{0, 0}, []int{0, 1})
}

func TestCopyIfElseScalarLeft(t *testing.T) {
	rhs := column.NewIntegerColumn([]int32{10, 20, 30})
	mask := column.NewBooleanColumn([]bool{true, false, true})
	defer rhs.Release(nil)
	defer mask.Release(nil)

	out, err := CopyIfElseScalarLeft(column.NewIntegerScalar(99), rhs.View(), mask.View(), nil)
	require.NoError(t, err)
	defer out.Release(nil)

	assertI32Rows(t, out.View(), []int32{99, 20, 99}, nil)
}

func TestCopyIfElseScalarRight(t *testing.T) {
	lhs := column.NewIntegerColumn([]int32{1, 2, 3})
	mask := column.NewBooleanColumn([]bool{false, true, false})
	defer lhs.Release(nil)
	defer mask.Release(nil)

	out, err := CopyIfElseScalarRight(lhs.View(), column.NewIntegerScalar(-7), mask.View(), nil)
	require.NoError(t, err)
	defer out.Release(nil)

	assertI32Rows(t, out.View(), []int32{-7, 2, -7}, nil)
}

func TestCopyIfElseScalars(t *testing.T) {
	mask := column.NewBooleanColumn([]bool{true, false, true, false})
	defer mask.Release(nil)

	out, err := CopyIfElseScalars(
		column.NewIntegerScalar(1), column.NewIntegerScalar(2), mask.View(), nil)
	require.NoError(t, err)
	defer out.Release(nil)

	assertI32Rows(t, out.View(), []int32{1, 2, 1, 2}, nil)
}

func TestCopyIfElseNullScalar(t *testing.T) {
	rhs := column.NewIntegerColumn([]int32{10, 20})
	mask := column.NewBooleanColumn([]bool{true, false})
	defer rhs.Release(nil)
	defer mask.Release(nil)

	out, err := CopyIfElseScalarLeft(column.NewNullScalar(common.IntegerType()), rhs.View(), mask.View(), nil)
	require.NoError(t, err)
	defer out.Release(nil)

	assertI32Rows(t, out.View(), []int32{0, 20}, []int{0})
}

func TestCopyIfElseVarchar(t *testing.T) {
	lhs := column.NewVarcharColumn([]string{"l0", "l1"})
	rhs := column.NewVarcharColumn([]string{"r0", "r1"})
	mask := column.NewBooleanColumn([]bool{false, true})
	defer lhs.Release(nil)
	defer rhs.Release(nil)
	defer mask.Release(nil)

	out, err := CopyIfElse(lhs.View(), rhs.View(), mask.View(), nil)
	require.NoError(t, err)
	defer out.Release(nil)

	assert.Equal(t, "r0", out.GetValue(0).Str)
	assert.Equal(t, "l1", out.GetValue(1).Str)
}

func TestCopyIfElseTypeMismatch(t *testing.T) {
	lhs := column.NewIntegerColumn([]int32{1})
	rhs := column.NewBigintColumn([]int64{2})
	mask := column.NewBooleanColumn([]bool{true})
	defer lhs.Release(nil)
	defer rhs.Release(nil)
	defer mask.Release(nil)

	_, err := CopyIfElse(lhs.View(), rhs.View(), mask.View(), nil)
	require.Error(t, err)
	assert.True(t, common.IsContract(err))
}

func TestCopyIfElseMaskNotBoolean(t *testing.T) {
	lhs := column.NewIntegerColumn([]int32{1})
	rhs := column.NewIntegerColumn([]int32{2})
	mask := column.NewIntegerColumn([]int32{1})
	defer lhs.Release(nil)
	defer rhs.Release(nil)
	defer mask.Release(nil)

	_, err := CopyIfElse(lhs.View(), rhs.View(), mask.View(), nil)
	require.Error(t, err)
	assert.True(t, common.IsContract(err))
}

func TestCopyIfElseLengthMismatch(t *testing.T) {
	lhs := column.NewIntegerColumn([]int32{1, 2})
	rhs := column.NewIntegerColumn([]int32{3, 4})
	mask := column.NewBooleanColumn([]bool{true})
	defer lhs.Release(nil)
	defer rhs.Release(nil)
	defer mask.Release(nil)

	_, err := CopyIfElse(lhs.View(), rhs.View(), mask.View(), nil)
	require.Error(t, err)
	assert.True(t, common.IsContract(err))
}
