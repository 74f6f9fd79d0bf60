package resolver

import (
	"strings"

	"github.com/thiremani/waveguide/types"
)

const PREFIX = "$" // separates the function name and each argument type

// Mangle names an instantiation after its function and input types, e.g.
// $scale$Int$[3]Float.
func Mangle(funcName string, args []types.Type) string {
	var b strings.Builder
	b.WriteString(PREFIX + funcName)
	for _, arg := range args {
		b.WriteString(PREFIX + arg.String())
	}
	return b.String()
}
