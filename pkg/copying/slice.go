package copying

import (
	"github.com/daviszhen/tabular/pkg/column"
	"github.com/daviszhen/tabular/pkg/common"
)

func checkSliceIndices(indices []int, size int) error {
	if len(indices)%2 != 0 {
		return common.ContractErrorf(
			"slice wants index pairs, got %d indices", len(indices))
	}
	for i := 0; i < len(indices); i += 2 {
		begin, end := indices[i], indices[i+1]
		if begin < 0 || begin > end || end > size {
			return common.ContractErrorf(
				"slice pair [%d,%d) out of bounds for %d rows", begin, end, size)
		}
	}
	return nil
}

func checkSplitPoints(splits []int, size int) error {
	prev := 0
	for _, s := range splits {
		if s < prev || s > size {
			return common.ContractErrorf(
				"split point %d out of order or beyond %d rows", s, size)
		}
		prev = s
	}
	return nil
}

// SliceColumn carves one view per [begin, end) index pair. The views
// alias the input's buffers; pairs may overlap and need not be sorted.
func SliceColumn(input *column.ColumnView, indices []int) ([]*column.ColumnView, error) {
	if err := checkSliceIndices(indices, input.Rows()); err != nil {
		return nil, err
	}
	out := make([]*column.ColumnView, 0, len(indices)/2)
	for i := 0; i < len(indices); i += 2 {
		out = append(out, input.SliceView(indices[i], indices[i+1]))
	}
	return out, nil
}

// SplitColumn cuts the input at each split point, yielding len(splits)+1
// adjacent views that cover every row exactly once.
func SplitColumn(input *column.ColumnView, splits []int) ([]*column.ColumnView, error) {
	if err := checkSplitPoints(splits, input.Rows()); err != nil {
		return nil, err
	}
	out := make([]*column.ColumnView, 0, len(splits)+1)
	begin := 0
	for _, s := range splits {
		out = append(out, input.SliceView(begin, s))
		begin = s
	}
	out = append(out, input.SliceView(begin, input.Rows()))
	return out, nil
}

// SliceTable applies SliceColumn across all columns, one table view per
// index pair.
func SliceTable(input *column.TableView, indices []int) ([]*column.TableView, error) {
	if err := checkSliceIndices(indices, input.Rows()); err != nil {
		return nil, err
	}
	out := make([]*column.TableView, 0, len(indices)/2)
	for i := 0; i < len(indices); i += 2 {
		cols := make([]*column.ColumnView, input.ColumnCount())
		for c := 0; c < input.ColumnCount(); c++ {
			cols[c] = input.Column(c).SliceView(indices[i], indices[i+1])
		}
		tv, err := column.NewTableView(cols...)
		if err != nil {
			return nil, err
		}
		out = append(out, tv)
	}
	return out, nil
}

// SplitTable applies SplitColumn across all columns.
func SplitTable(input *column.TableView, splits []int) ([]*column.TableView, error) {
	if err := checkSplitPoints(splits, input.Rows()); err != nil {
		return nil, err
	}
	bounds := make([]int, 0, len(splits)+2)
	bounds = append(bounds, 0)
	bounds = append(bounds, splits...)
	bounds = append(bounds, input.Rows())
	out := make([]*column.TableView, 0, len(bounds)-1)
	for i := 0; i+1 < len(bounds); i++ {
		cols := make([]*column.ColumnView, input.ColumnCount())
		for c := 0; c < input.ColumnCount(); c++ {
			cols[c] = input.Column(c).SliceView(bounds[i], bounds[i+1])
		}
		tv, err := column.NewTableView(cols...)
		if err != nil {
			return nil, err
		}
		out = append(out, tv)
	}
	return out, nil
}
