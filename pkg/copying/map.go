package copying

import (
	"github.com/daviszhen/tabular/pkg/column"
	"github.com/daviszhen/tabular/pkg/common"
)

// readMap materializes a gather/scatter map: a non-nullable integral
// column whose values index a row space of extent n. Negative value i
// normalizes to i+n. With checkBounds, the first normalized index
// outside [0, n) raises a contract violation before any output exists;
// without it an out-of-range index stays in the returned slice and the
// downstream access is undefined.
func readMap(m *column.ColumnView, n int, checkBounds bool) ([]int, error) {
	if !m.Typ().IsIntegral() {
		return nil, common.ContractErrorf(
			"map type %v is not integral", m.Typ())
	}
	if m.HasNulls() {
		return nil, common.ContractErrorf("map must be non-nullable")
	}
	rows := make([]int, m.Rows())
	switch m.Typ().GetInternalType() {
	case common.INT8:
		fillMap(column.ViewSlice[int8](m), rows)
	case common.INT16:
		fillMap(column.ViewSlice[int16](m), rows)
	case common.INT32:
		fillMap(column.ViewSlice[int32](m), rows)
	case common.INT64:
		fillMap(column.ViewSlice[int64](m), rows)
	case common.UINT64:
		fillMap(column.ViewSlice[uint64](m), rows)
	default:
		panic("usp")
	}
	for i, r := range rows {
		if r < 0 {
			r += n
			rows[i] = r
		}
		if checkBounds && (r < 0 || r >= n) {
			return nil, common.ContractErrorf(
				"map index %d at position %d out of range [0,%d)", rows[i], i, n)
		}
	}
	return rows, nil
}

func fillMap[T int8 | int16 | int32 | int64 | uint64](src []T, dst []int) {
	for i, v := range src {
		dst[i] = int(v)
	}
}
