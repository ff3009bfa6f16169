package typesys

import "testing"

func TestLookup(t *testing.T) {
	for _, name := range Names() {
		b, ok := Lookup(name)
		if !ok || string(b) != name {
			t.Fatalf("Lookup(%q)=(%q,%v)", name, b, ok)
		}
		if !IsBuiltinTypeName(name) {
			t.Fatalf("IsBuiltinTypeName(%q)=false", name)
		}
	}
	for _, name := range []string{"", "float", "Int", "int[]", "any"} {
		if _, ok := Lookup(name); ok {
			t.Fatalf("Lookup(%q) should fail", name)
		}
	}
}

func TestTypeDescriptorParsingAndFormatting(t *testing.T) {
	d, ok := ParseTypeDescriptor("int[][]")
	if !ok || d.Base != Int || d.Dims != 2 {
		t.Fatalf("unexpected parse result: %+v %v", d, ok)
	}
	if got := d.String(); got != "int[][]" {
		t.Fatalf("String=%q", got)
	}
	if got := FormatTypeDescriptor("char", 0); got != "char" {
		t.Fatalf("FormatTypeDescriptor=%q", got)
	}
	if _, ok := ParseTypeDescriptor("thing[]"); ok {
		t.Fatalf("expected unknown base to fail")
	}
	if _, ok := ParseTypeDescriptor("int[3]"); ok {
		t.Fatalf("sized arrays are not part of the grammar")
	}
}

func TestDescriptorEquality(t *testing.T) {
	a := Descriptor{Base: Int, Dims: 1}
	if !a.Equal(Descriptor{Base: Int, Dims: 1}) {
		t.Fatalf("equal descriptors compared unequal")
	}
	if a.Equal(Descriptor{Base: Int}) || a.Equal(Descriptor{Base: UInt, Dims: 1}) {
		t.Fatalf("unequal descriptors compared equal")
	}
	elem, ok := a.Elem()
	if !ok || elem.IsArray() || elem.Base != Int {
		t.Fatalf("Elem=%+v %v", elem, ok)
	}
	if _, ok := elem.Elem(); ok {
		t.Fatalf("scalar has no element type")
	}
}
