package copying

import (
	"golang.org/x/sync/errgroup"

	"github.com/daviszhen/tabular/pkg/column"
	"github.com/daviszhen/tabular/pkg/common"
)

// Scatter returns a copy of target where row normalize(map[i]) is
// replaced by row i of src, for every i. Duplicate normalized indices
// leave the result undefined; they are deliberately not validated.
func Scatter(src *column.TableView, scatterMap *column.ColumnView, target *column.TableView, checkBounds bool, env *Env) (*column.Table, error) {
	if src.ColumnCount() != target.ColumnCount() {
		return nil, common.ContractErrorf(
			"source has %d columns, target has %d",
			src.ColumnCount(), target.ColumnCount())
	}
	for i := 0; i < src.ColumnCount(); i++ {
		if !src.Column(i).Typ().Equal(target.Column(i).Typ()) {
			return nil, common.ContractErrorf(
				"column %d type mismatch: %v vs %v",
				i, src.Column(i).Typ(), target.Column(i).Typ())
		}
	}
	rows, err := readMap(scatterMap, target.Rows(), checkBounds)
	if err != nil {
		return nil, err
	}
	if len(rows) > src.Rows() {
		return nil, common.ContractErrorf(
			"map has %d entries, source only %d rows", len(rows), src.Rows())
	}

	outCols := make([]*column.Column, target.ColumnCount())
	err = env.run(func() error {
		g := errgroup.Group{}
		for i := 0; i < target.ColumnCount(); i++ {
			i := i
			g.Go(func() error {
				dst := copyColumn(target.Column(i), env)
				scatterColumn(src.Column(i), rows, dst)
				outCols[i] = dst
				return nil
			})
		}
		return g.Wait()
	})
	if err != nil {
		return nil, err
	}
	return column.NewTable(outCols...)
}

// ScatterScalars is Scatter with one broadcast scalar row: every mapped
// destination row receives the same source values.
func ScatterScalars(src []*column.Scalar, indices *column.ColumnView, target *column.TableView, checkBounds bool, env *Env) (*column.Table, error) {
	if len(src) != target.ColumnCount() {
		return nil, common.ContractErrorf(
			"source row has %d scalars, target has %d columns",
			len(src), target.ColumnCount())
	}
	for i, val := range src {
		if !val.Typ.Equal(target.Column(i).Typ()) {
			return nil, common.ContractErrorf(
				"column %d type mismatch: %v vs %v",
				i, val.Typ, target.Column(i).Typ())
		}
	}
	rows, err := readMap(indices, target.Rows(), checkBounds)
	if err != nil {
		return nil, err
	}

	outCols := make([]*column.Column, target.ColumnCount())
	err = env.run(func() error {
		g := errgroup.Group{}
		for i := 0; i < target.ColumnCount(); i++ {
			i := i
			g.Go(func() error {
				dst := copyColumn(target.Column(i), env)
				scatterScalar(src[i], rows, dst)
				outCols[i] = dst
				return nil
			})
		}
		return g.Wait()
	})
	if err != nil {
		return nil, err
	}
	return column.NewTable(outCols...)
}

// BooleanMaskScatter writes row k of input at the position of the k-th
// true bit of mask (a null mask bit counts as false); every other row
// copies target.
func BooleanMaskScatter(input *column.TableView, target *column.TableView, mask *column.ColumnView, env *Env) (*column.Table, error) {
	rows, err := trueRows(mask, target, input.Rows())
	if err != nil {
		return nil, err
	}
	if input.ColumnCount() != target.ColumnCount() {
		return nil, common.ContractErrorf(
			"input has %d columns, target has %d",
			input.ColumnCount(), target.ColumnCount())
	}
	for i := 0; i < input.ColumnCount(); i++ {
		if !input.Column(i).Typ().Equal(target.Column(i).Typ()) {
			return nil, common.ContractErrorf(
				"column %d type mismatch: %v vs %v",
				i, input.Column(i).Typ(), target.Column(i).Typ())
		}
	}

	outCols := make([]*column.Column, target.ColumnCount())
	err = env.run(func() error {
		g := errgroup.Group{}
		for i := 0; i < target.ColumnCount(); i++ {
			i := i
			g.Go(func() error {
				dst := copyColumn(target.Column(i), env)
				scatterColumn(input.Column(i), rows, dst)
				outCols[i] = dst
				return nil
			})
		}
		return g.Wait()
	})
	if err != nil {
		return nil, err
	}
	return column.NewTable(outCols...)
}

// BooleanMaskScatterScalars broadcasts one scalar row to every true-bit
// position of mask.
func BooleanMaskScatterScalars(input []*column.Scalar, target *column.TableView, mask *column.ColumnView, env *Env) (*column.Table, error) {
	// the broadcast row imposes no limit on the number of true bits
	rows, err := trueRows(mask, target, target.Rows())
	if err != nil {
		return nil, err
	}
	if len(input) != target.ColumnCount() {
		return nil, common.ContractErrorf(
			"input row has %d scalars, target has %d columns",
			len(input), target.ColumnCount())
	}
	for i, val := range input {
		if !val.Typ.Equal(target.Column(i).Typ()) {
			return nil, common.ContractErrorf(
				"column %d type mismatch: %v vs %v",
				i, val.Typ, target.Column(i).Typ())
		}
	}

	outCols := make([]*column.Column, target.ColumnCount())
	err = env.run(func() error {
		g := errgroup.Group{}
		for i := 0; i < target.ColumnCount(); i++ {
			i := i
			g.Go(func() error {
				dst := copyColumn(target.Column(i), env)
				scatterScalar(input[i], rows, dst)
				outCols[i] = dst
				return nil
			})
		}
		return g.Wait()
	})
	if err != nil {
		return nil, err
	}
	return column.NewTable(outCols...)
}

// trueRows validates the boolean mask against target and returns the
// positions of its true bits. maxTrues caps the count; exceeding it is
// a contract violation, not a truncation.
func trueRows(mask *column.ColumnView, target *column.TableView, maxTrues int) ([]int, error) {
	if mask.Typ().Id != common.LTID_BOOLEAN {
		return nil, common.ContractErrorf("mask type %v is not boolean", mask.Typ())
	}
	if mask.Rows() != target.Rows() {
		return nil, common.ContractErrorf(
			"mask has %d rows, target has %d", mask.Rows(), target.Rows())
	}
	bools := column.ViewSlice[bool](mask)
	rows := make([]int, 0, len(bools))
	for i, b := range bools {
		if b && mask.RowIsValid(i) {
			rows = append(rows, i)
		}
	}
	if len(rows) > maxTrues {
		return nil, common.ContractErrorf(
			"mask has %d true bits, input only %d rows", len(rows), maxTrues)
	}
	return rows, nil
}

// scatterScalar broadcasts one scalar to the given dst rows.
func scatterScalar(val *column.Scalar, rows []int, dst *column.Column) {
	releaseRows(dst, rows)
	for _, r := range rows {
		dst.SetValue(r, val)
	}
}

// scatterColumn writes src row i at dst row rows[i], values and
// validity bits both. dst must be an owned copy of the target.
func scatterColumn(src *column.ColumnView, rows []int, dst *column.Column) {
	releaseRows(dst, rows)
	opsFor(src.Typ().GetInternalType()).scatter(src, rows, dst)
	if src.Nullable() {
		dst.AllocMask()
	}
	if dst.Nullable() {
		for i, r := range rows {
			dst.SetNull(r, !src.RowIsValid(i))
		}
	}
}

// copyColumn deep-copies a view into a new owned column.
func copyColumn(src *column.ColumnView, env *Env) *column.Column {
	dst := column.NewColumn(src.Typ(), src.Rows(), env.alloc())
	opsFor(src.Typ().GetInternalType()).copyRange(src, 0, src.Rows(), dst, 0)
	if src.Nullable() {
		dst.AllocMask()
		dst.Mask().CopyRange(src.Mask(), 0, uint64(src.Offset()), uint64(src.Rows()))
	}
	return dst
}
