// Package table implements a WebAssembly function table: an indexed,
// resizable array of nullable function references.
package table

// Element is one slot of a table: either empty or a function reference by
// index into the module's function index space.
type Element struct {
	Func   uint32
	IsFunc bool
}

// Null is the empty table element.
var Null = Element{}

// FuncElement builds a function-reference element.
func FuncElement(index uint32) Element { return Element{Func: index, IsFunc: true} }

// Table is a resizable vector of Elements, addressed by a 0-based index.
type Table struct {
	elements []Element
}

// New allocates a table with `initial` Null elements.
func New(initial uint32) *Table {
	return &Table{elements: make([]Element, initial)}
}

// Get returns the element at index, or Null if index is out of range --
// indirect-call trapping on an absent callee is the caller's concern, not
// this type's.
func (t *Table) Get(index uint32) Element {
	if int(index) >= len(t.elements) {
		return Null
	}
	return t.elements[index]
}

// Len reports the current number of slots.
func (t *Table) Len() int { return len(t.elements) }

// Init overwrites entries starting at offset with funcIndices, growing the
// table if the segment extends past its current length.
func (t *Table) Init(offset uint32, funcIndices []uint32) {
	for i, fi := range funcIndices {
		idx := int(offset) + i
		for len(t.elements) <= idx {
			t.elements = append(t.elements, Null)
		}
		t.elements[idx] = FuncElement(fi)
	}
}
