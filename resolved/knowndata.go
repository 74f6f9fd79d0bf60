package resolved

import (
	"strconv"
	"strings"

	"github.com/thiremani/waveguide/types"
)

// KnownData is a value that can exist at run time.
type KnownData interface {
	String() string
	Type() types.Type
}

type (
	Bool  bool
	Int   int64
	Float float64
	// Array items all have the same type. Arrays are never empty.
	Array []KnownData
)

func (Bool) Type() types.Type  { return types.B }
func (Int) Type() types.Type   { return types.I }
func (Float) Type() types.Type { return types.F }
func (a Array) Type() types.Type {
	return types.Array{Len: len(a), Base: a[0].Type()}
}

func (b Bool) String() string  { return strconv.FormatBool(bool(b)) }
func (i Int) String() string   { return strconv.FormatInt(int64(i), 10) }
func (f Float) String() string { return strconv.FormatFloat(float64(f), 'g', -1, 64) }
func (a Array) String() string {
	parts := make([]string, len(a))
	for i, item := range a {
		parts[i] = item.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
