package ir

import (
	"github.com/gogpu/spvcross/spv"
)

// ID is an integer handle addressing any entity in a module.
// IDs may appear as operands before their defining instruction; the
// slot exists (empty) as soon as the module bound is known.
type ID uint32

// Instruction records a decoded instruction: its opcode and the
// position of its operand words inside the module's word stream.
// Immutable after parse.
type Instruction struct {
	Op     spv.Op
	Offset uint32 // word offset of the first operand
	Length uint32 // operand word count
}

// Source records the frontend language noted by OpSource.
type Source struct {
	Version uint32
	ES      bool
	Known   bool
}

// Module is one parsed SPIR-V program: the raw words, the decoded
// instruction list, and the ID-addressed object and metadata tables.
type Module struct {
	// Words is the raw word stream, header included.
	Words []uint32

	// Bound is the module-declared ID bound; every ID is < Bound.
	Bound uint32

	// Instructions is the decoded instruction list in stream order.
	Instructions []Instruction

	ids  []variant
	meta []Meta

	// Functions lists OpFunction IDs in declaration order.
	Functions []ID

	// GlobalVariables lists module-scope OpVariable IDs in declaration
	// order. Function-local variables live on their SPIRFunction.
	GlobalVariables []ID

	// AliasedVariables lists variables whose storage may overlap other
	// variables' memory, forcing conservative dependency treatment.
	AliasedVariables []ID

	// EntryPoints maps an OpEntryPoint's function ID to its record.
	// EntryPointOrder preserves declaration order so enumeration is
	// deterministic; maps alone would not be.
	EntryPoints     map[ID]*SPIREntryPoint
	EntryPointOrder []ID

	// Extensions lists declared OpExtension / OpSourceExtension strings.
	Extensions []string

	Source Source
}

// NewModule creates a module sized for the given ID bound.
func NewModule(bound uint32) *Module {
	return &Module{
		Bound:       bound,
		ids:         make([]variant, bound),
		meta:        make([]Meta, bound),
		EntryPoints: make(map[ID]*SPIREntryPoint),
	}
}

// Stream resolves an instruction's operand words, bounds-checked.
// Instructions without operands yield a nil slice and no error.
func (m *Module) Stream(instr Instruction) ([]uint32, error) {
	if instr.Length == 0 {
		return nil, nil
	}
	end := uint64(instr.Offset) + uint64(instr.Length)
	if end > uint64(len(m.Words)) {
		return nil, NewStreamError(ErrFormat, instr.Offset, "instruction operands out of range")
	}
	return m.Words[instr.Offset:end], nil
}

// IncreaseBoundBy extends the ID space by incr slots, growing the
// object and metadata tables, and returns the first new ID.
func (m *Module) IncreaseBoundBy(incr uint32) ID {
	curr := m.Bound
	m.Bound += incr
	m.ids = append(m.ids, make([]variant, incr)...)
	m.meta = append(m.meta, make([]Meta, incr)...)
	return ID(curr)
}

// Meta returns the metadata slot for id, which exists for any in-bound
// ID even before a payload is bound. Returns nil for out-of-range IDs.
func (m *Module) Meta(id ID) *Meta {
	if uint32(id) >= uint32(len(m.meta)) {
		return nil
	}
	return &m.meta[id]
}
