package types

// builtinTypes are the type names visible in every program.
var builtinTypes = []struct {
	name string
	typ  Type
}{
	{"Int", I},
	{"Float", F},
	{"Bool", B},
	{"Void", V},
	{"Auto", Auto},
	{"DataType", TypeType},
	{"Function", FuncType},
}

var reservedTypeSet = func() map[string]Type {
	m := make(map[string]Type, len(builtinTypes))
	for _, t := range builtinTypes {
		m[t.name] = t.typ
	}
	return m
}()

// ReservedTypeNames returns the builtin type names in declaration order.
func ReservedTypeNames() []string {
	names := make([]string, 0, len(builtinTypes))
	for _, t := range builtinTypes {
		names = append(names, t.name)
	}
	return names
}

// Lookup returns the builtin type called name.
func Lookup(name string) (Type, bool) {
	t, ok := reservedTypeSet[name]
	return t, ok
}
