package copying

import (
	"golang.org/x/sync/errgroup"

	"github.com/daviszhen/tabular/pkg/column"
)

// Gather builds a new table with len(map) rows; row i of the result is
// row normalize(map[i]) of src, validity bit included. With checkBounds
// every map value is validated against src's row extent before any
// output is produced; without it an out-of-range index is undefined.
func Gather(src *column.TableView, gatherMap *column.ColumnView, checkBounds bool, env *Env) (*column.Table, error) {
	rows, err := readMap(gatherMap, src.Rows(), checkBounds)
	if err != nil {
		return nil, err
	}

	outCols := make([]*column.Column, src.ColumnCount())
	err = env.run(func() error {
		g := errgroup.Group{}
		for i := 0; i < src.ColumnCount(); i++ {
			i := i
			g.Go(func() error {
				outCols[i] = gatherColumn(src.Column(i), rows, env)
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

// GatherColumn is the single-column form of Gather.
func GatherColumn(src *column.ColumnView, gatherMap *column.ColumnView, checkBounds bool, env *Env) (*column.Column, error) {
	rows, err := readMap(gatherMap, src.Rows(), checkBounds)
	if err != nil {
		return nil, err
	}
	var out *column.Column
	err = env.run(func() error {
		out = gatherColumn(src, rows, env)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func gatherColumn(src *column.ColumnView, rows []int, env *Env) *column.Column {
	dst := column.NewColumn(src.Typ(), len(rows), env.alloc())
	opsFor(src.Typ().GetInternalType()).gather(src, rows, dst)
	if src.Nullable() {
		dst.AllocMask()
		for i, r := range rows {
			if !src.RowIsValid(r) {
				dst.SetNull(i, true)
			}
		}
	}
	return dst
}
