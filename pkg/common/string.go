package common

import (
	"unsafe"

	"github.com/daviszhen/tabular/pkg/util"
)

// String is the inline header of a varchar element. The payload bytes
// live out of line; rearrangement rebuilds them through the varlen
// kernel instead of copying the header alone.
type String struct {
	Len  int
	Data unsafe.Pointer
}

func (s *String) DataSlice() []byte {
	return util.PointerToSlice[byte](s.Data, s.Len)
}

func (s *String) DataPtr() unsafe.Pointer {
	return s.Data
}

func (s *String) String() string {
	t := s.DataSlice()
	return string(t)
}
