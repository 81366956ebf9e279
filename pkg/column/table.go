package column

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/daviszhen/tabular/pkg/common"
	"github.com/daviszhen/tabular/pkg/util"
)

// Table is an ordered sequence of equal-row-count columns.
type Table struct {
	cols []*Column
	rows int
}

func NewTable(cols ...*Column) (*Table, error) {
	rows := 0
	if len(cols) > 0 {
		rows = cols[0].Rows()
	}
	for i, col := range cols {
		if col.Rows() != rows {
			return nil, common.ContractErrorf(
				"column %d has %d rows, want %d", i, col.Rows(), rows)
		}
	}
	return &Table{cols: cols, rows: rows}, nil
}

func (t *Table) ColumnCount() int {
	if t == nil {
		return 0
	}
	return len(t.cols)
}

func (t *Table) Column(i int) *Column {
	return t.cols[i]
}

func (t *Table) Rows() int {
	return t.rows
}

func (t *Table) Types() []common.LType {
	typs := make([]common.LType, len(t.cols))
	for i, col := range t.cols {
		typs[i] = col.Typ()
	}
	return typs
}

func (t *Table) View() *TableView {
	views := make([]*ColumnView, len(t.cols))
	for i, col := range t.cols {
		views[i] = col.View()
	}
	return &TableView{cols: views, rows: t.rows}
}

func (t *Table) Release(alloc util.BytesAllocator) {
	for _, col := range t.cols {
		col.Release(alloc)
	}
	t.cols = nil
	t.rows = 0
}

// TableView is a non-owning row-aligned set of column views.
type TableView struct {
	cols []*ColumnView
	rows int
}

func NewTableView(cols ...*ColumnView) (*TableView, error) {
	rows := 0
	if len(cols) > 0 {
		rows = cols[0].Rows()
	}
	for i, v := range cols {
		if v.Rows() != rows {
			return nil, common.ContractErrorf(
				"column view %d has %d rows, want %d", i, v.Rows(), rows)
		}
	}
	return &TableView{cols: cols, rows: rows}, nil
}

func (tv *TableView) ColumnCount() int {
	if tv == nil {
		return 0
	}
	return len(tv.cols)
}

func (tv *TableView) Column(i int) *ColumnView {
	return tv.cols[i]
}

func (tv *TableView) Rows() int {
	return tv.rows
}

func (tv *TableView) Types() []common.LType {
	typs := make([]common.LType, len(tv.cols))
	for i, v := range tv.cols {
		typs[i] = v.Typ()
	}
	return typs
}

func (tv *TableView) Print() {
	for i := 0; i < tv.Rows(); i++ {
		sb := strings.Builder{}
		for j := 0; j < tv.ColumnCount(); j++ {
			val := tv.cols[j].GetValue(i)
			sb.WriteString(val.String())
			sb.WriteString("\t")
		}
		fmt.Println(sb.String())
	}
}

func (tv *TableView) Print2(rowPrefix string) {
	for i := 0; i < tv.Rows(); i++ {
		fields := make([]zap.Field, 0)
		for j := 0; j < tv.ColumnCount(); j++ {
			val := tv.cols[j].GetValue(i)
			fields = append(fields, zap.String("", val.String()))
		}
		util.Info(rowPrefix, fields...)
	}
}
