package column

import (
	"fmt"

	"github.com/daviszhen/tabular/pkg/common"
	"github.com/daviszhen/tabular/pkg/util"
)

// Scalar is one typed value with its own validity flag, used where an
// operation broadcasts a single row to many destination rows.
type Scalar struct {
	Typ    common.LType
	IsNull bool
	//value
	Bool bool
	I64  int64
	F64  float64
	Str  string
	Dec  common.Decimal
	Date common.Date
}

func NewNullScalar(typ common.LType) *Scalar {
	return &Scalar{Typ: typ, IsNull: true}
}

func NewBooleanScalar(v bool) *Scalar {
	return &Scalar{Typ: common.BooleanType(), Bool: v}
}

func NewTinyintScalar(v int8) *Scalar {
	return &Scalar{Typ: common.TinyintType(), I64: int64(v)}
}

func NewIntegerScalar(v int32) *Scalar {
	return &Scalar{Typ: common.IntegerType(), I64: int64(v)}
}

func NewBigintScalar(v int64) *Scalar {
	return &Scalar{Typ: common.BigintType(), I64: v}
}

func NewUbigintScalar(v uint64) *Scalar {
	return &Scalar{Typ: common.UbigintType(), I64: int64(v)}
}

func NewDoubleScalar(v float64) *Scalar {
	return &Scalar{Typ: common.DoubleType(), F64: v}
}

func NewFloatScalar(v float32) *Scalar {
	return &Scalar{Typ: common.FloatType(), F64: float64(v)}
}

func NewVarcharScalar(s string) *Scalar {
	return &Scalar{Typ: common.VarcharType(), Str: s}
}

func NewDecimalScalar(dec common.Decimal, width, scale int) *Scalar {
	return &Scalar{Typ: common.DecimalType(width, scale), Dec: dec}
}

func NewDateScalar(d common.Date) *Scalar {
	return &Scalar{Typ: common.DateType(), Date: d}
}

func (val Scalar) String() string {
	if val.IsNull {
		return "NULL"
	}
	switch val.Typ.Id {
	case common.LTID_BOOLEAN:
		return fmt.Sprintf("%v", val.Bool)
	case common.LTID_TINYINT, common.LTID_SMALLINT,
		common.LTID_INTEGER, common.LTID_BIGINT, common.LTID_UBIGINT:
		return fmt.Sprintf("%d", val.I64)
	case common.LTID_FLOAT, common.LTID_DOUBLE:
		return fmt.Sprintf("%v", val.F64)
	case common.LTID_VARCHAR:
		return val.Str
	case common.LTID_DECIMAL:
		return val.Dec.String()
	case common.LTID_DATE:
		return fmt.Sprintf("%d-%d-%d", val.Date.Year, val.Date.Month, val.Date.Day)
	default:
		panic("usp")
	}
}

func (val *Scalar) Equal(o *Scalar) bool {
	if !val.Typ.Equal(o.Typ) {
		return false
	}
	if val.IsNull || o.IsNull {
		return val.IsNull == o.IsNull
	}
	switch val.Typ.GetInternalType() {
	case common.BOOL:
		return val.Bool == o.Bool
	case common.INT8, common.INT16, common.INT32, common.INT64, common.UINT64:
		return val.I64 == o.I64
	case common.FLOAT, common.DOUBLE:
		return val.F64 == o.F64
	case common.VARCHAR:
		return val.Str == o.Str
	case common.DECIMAL:
		return val.Dec.Equal(&o.Dec)
	case common.DATE:
		return val.Date.Equal(&o.Date)
	default:
		panic("usp")
	}
}

// storeValue writes val into element idx of data and flips the validity
// bit. The caller guarantees the mask has space when val is null.
func storeValue(typ common.LType, data []byte, mask *util.Bitmap, idx int, val *Scalar) {
	util.AssertFunc(val.Typ.Equal(typ))
	mask.Set(uint64(idx), !val.IsNull)
	if val.IsNull {
		return
	}
	pTyp := typ.GetInternalType()
	switch pTyp {
	case common.BOOL:
		slice := util.ToSlice[bool](data, pTyp.Size())
		slice[idx] = val.Bool
	case common.INT8:
		slice := util.ToSlice[int8](data, pTyp.Size())
		slice[idx] = int8(val.I64)
	case common.INT16:
		slice := util.ToSlice[int16](data, pTyp.Size())
		slice[idx] = int16(val.I64)
	case common.INT32:
		slice := util.ToSlice[int32](data, pTyp.Size())
		slice[idx] = int32(val.I64)
	case common.INT64:
		slice := util.ToSlice[int64](data, pTyp.Size())
		slice[idx] = val.I64
	case common.UINT64:
		slice := util.ToSlice[uint64](data, pTyp.Size())
		slice[idx] = uint64(val.I64)
	case common.FLOAT:
		slice := util.ToSlice[float32](data, pTyp.Size())
		slice[idx] = float32(val.F64)
	case common.DOUBLE:
		slice := util.ToSlice[float64](data, pTyp.Size())
		slice[idx] = val.F64
	case common.DECIMAL:
		slice := util.ToSlice[common.Decimal](data, pTyp.Size())
		slice[idx] = val.Dec
	case common.DATE:
		slice := util.ToSlice[common.Date](data, pTyp.Size())
		slice[idx] = val.Date
	case common.VARCHAR:
		slice := util.ToSlice[common.String](data, pTyp.Size())
		byteSlice := []byte(val.Str)
		dstMem := util.CMalloc(len(byteSlice))
		dst := util.PointerToSlice[byte](dstMem, len(byteSlice))
		copy(dst, byteSlice)
		slice[idx] = common.String{
			Data: dstMem,
			Len:  len(dst),
		}
	default:
		panic("usp")
	}
}

func loadValue(typ common.LType, data []byte, mask *util.Bitmap, idx int) *Scalar {
	if !mask.RowIsValid(uint64(idx)) {
		return NewNullScalar(typ)
	}
	pTyp := typ.GetInternalType()
	ret := &Scalar{Typ: typ}
	switch pTyp {
	case common.BOOL:
		ret.Bool = util.ToSlice[bool](data, pTyp.Size())[idx]
	case common.INT8:
		ret.I64 = int64(util.ToSlice[int8](data, pTyp.Size())[idx])
	case common.INT16:
		ret.I64 = int64(util.ToSlice[int16](data, pTyp.Size())[idx])
	case common.INT32:
		ret.I64 = int64(util.ToSlice[int32](data, pTyp.Size())[idx])
	case common.INT64:
		ret.I64 = util.ToSlice[int64](data, pTyp.Size())[idx]
	case common.UINT64:
		ret.I64 = int64(util.ToSlice[uint64](data, pTyp.Size())[idx])
	case common.FLOAT:
		ret.F64 = float64(util.ToSlice[float32](data, pTyp.Size())[idx])
	case common.DOUBLE:
		ret.F64 = util.ToSlice[float64](data, pTyp.Size())[idx]
	case common.DECIMAL:
		ret.Dec = util.ToSlice[common.Decimal](data, pTyp.Size())[idx]
	case common.DATE:
		ret.Date = util.ToSlice[common.Date](data, pTyp.Size())[idx]
	case common.VARCHAR:
		s := util.ToSlice[common.String](data, pTyp.Size())[idx]
		ret.Str = s.String()
	default:
		panic("usp")
	}
	return ret
}
