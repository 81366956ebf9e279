package common

import (
	"fmt"
	"unsafe"
)

// PhyType is the physical layout of an element: its byte width and
// whether it can be moved by plain byte copy (fixed-width) or needs a
// rebuild of out-of-line payload (varchar).
type PhyType int

const (
	NA      PhyType = 0
	BOOL    PhyType = 1
	INT8    PhyType = 3
	INT16   PhyType = 5
	INT32   PhyType = 7
	UINT64  PhyType = 8
	INT64   PhyType = 9
	FLOAT   PhyType = 11
	DOUBLE  PhyType = 12
	VARCHAR PhyType = 200
	UNKNOWN PhyType = 205
	DATE    PhyType = 207
	DECIMAL PhyType = 209

	INVALID PhyType = 255
)

var pTypeToStr = map[PhyType]string{
	NA:      "NA",
	BOOL:    "BOOL",
	INT8:    "INT8",
	INT16:   "INT16",
	INT32:   "INT32",
	UINT64:  "UINT64",
	INT64:   "INT64",
	FLOAT:   "FLOAT",
	DOUBLE:  "DOUBLE",
	VARCHAR: "VARCHAR",
	UNKNOWN: "UNKNOWN",
	DATE:    "DATE",
	DECIMAL: "DECIMAL",
	INVALID: "INVALID",
}

func (pt PhyType) String() string {
	if s, has := pTypeToStr[pt]; has {
		return s
	}
	panic(fmt.Sprintf("usp %d", pt))
}

var (
	BoolSize    int
	Int8Size    int
	Int16Size   int
	Int32Size   int
	Int64Size   int
	Float32Size int
	DateSize    int
	VarcharSize int
	DecimalSize int
)

func init() {
	b := false
	BoolSize = int(unsafe.Sizeof(b))
	i := int8(0)
	Int8Size = int(unsafe.Sizeof(i))
	Int16Size = Int8Size * 2
	Int32Size = Int8Size * 4
	Int64Size = Int8Size * 8
	f := float32(0)
	Float32Size = int(unsafe.Sizeof(f))
	DateSize = int(unsafe.Sizeof(Date{}))
	VarcharSize = int(unsafe.Sizeof(String{}))
	DecimalSize = int(unsafe.Sizeof(Decimal{}))
}

func (pt PhyType) Size() int {
	switch pt {
	case BOOL:
		return BoolSize
	case INT8:
		return Int8Size
	case INT16:
		return Int16Size
	case INT32:
		return Int32Size
	case INT64:
		return Int64Size
	case UINT64:
		return Int64Size
	case FLOAT:
		return Float32Size
	case DOUBLE:
		return Int64Size
	case VARCHAR:
		return VarcharSize
	case DATE:
		return DateSize
	case DECIMAL:
		return DecimalSize
	case UNKNOWN:
		return 0
	default:
		panic("usp")
	}
}

// IsFixedWidth reports whether elements of this layout are complete in
// their inline bytes, so range copies and packing can move them without
// a per-kind rebuild.
func (pt PhyType) IsFixedWidth() bool {
	return pt >= BOOL && pt <= DOUBLE ||
		pt == DATE ||
		pt == DECIMAL
}

func (pt PhyType) IsVarchar() bool {
	return pt == VARCHAR
}
