package typesys

import "strings"

// Base is one of the language's built-in value types.
type Base string

const (
	Void   Base = "void"
	Char   Base = "char"
	UInt   Base = "uint"
	Int    Base = "int"
	Bool   Base = "bool"
	String Base = "string"
)

var builtins = map[string]Base{
	"void":   Void,
	"char":   Char,
	"uint":   UInt,
	"int":    Int,
	"bool":   Bool,
	"string": String,
}

// Lookup resolves a type name against the base type table.
func Lookup(name string) (Base, bool) {
	b, ok := builtins[name]
	return b, ok
}

func IsBuiltinTypeName(name string) bool {
	_, ok := builtins[name]
	return ok
}

// Names lists the base types in declaration order.
func Names() []string {
	return []string{"void", "char", "uint", "int", "bool", "string"}
}

// Descriptor is a base type with a number of unsized array dimensions.
type Descriptor struct {
	Base Base
	Dims int
}

// Equal compares base type and dimension count.
func (d Descriptor) Equal(o Descriptor) bool {
	return d.Base == o.Base && d.Dims == o.Dims
}

func (d Descriptor) IsArray() bool { return d.Dims > 0 }

// Elem drops one array dimension.
func (d Descriptor) Elem() (Descriptor, bool) {
	if d.Dims == 0 {
		return Descriptor{}, false
	}
	return Descriptor{Base: d.Base, Dims: d.Dims - 1}, true
}

func (d Descriptor) String() string {
	return FormatTypeDescriptor(string(d.Base), d.Dims)
}

// FormatTypeDescriptor renders base followed by one "[]" per dimension.
func FormatTypeDescriptor(base string, dims int) string {
	return base + strings.Repeat("[]", dims)
}

// ParseTypeDescriptor is the inverse of FormatTypeDescriptor.
// Only base types from the table are accepted.
func ParseTypeDescriptor(t string) (Descriptor, bool) {
	dims := 0
	for strings.HasSuffix(t, "[]") {
		t = strings.TrimSuffix(t, "[]")
		dims++
	}
	b, ok := Lookup(t)
	if !ok {
		return Descriptor{}, false
	}
	return Descriptor{Base: b, Dims: dims}, true
}
