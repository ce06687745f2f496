package ir

import (
	"strconv"

	"github.com/gogpu/spvcross/spv"
)

// Decoration holds the name and decoration state of one ID or one
// struct member. Recognized decorations with arguments are stored in
// named fields; the mask records which decorations are present.
type Decoration struct {
	Name string

	// DecorationFlags has bit d set when decoration d is applied, for
	// d < 64. Extension decorations beyond the mask (NonUniform and
	// friends) live in Extended, keyed by decoration with their
	// argument as value.
	DecorationFlags uint64
	Extended        map[spv.Decoration]uint32

	BuiltIn              spv.BuiltIn
	Builtin              bool
	Location             uint32
	Set                  uint32
	Binding              uint32
	Offset               uint32
	ArrayStride          uint32
	MatrixStride         uint32
	InputAttachmentIndex uint32
	SpecID               uint32
	Alignment            uint32
}

// Meta is the per-ID metadata record: the ID's own decoration state
// plus a parallel per-member table for struct-typed IDs.
type Meta struct {
	Decoration Decoration
	Members    []Decoration
}

// memberAt returns the member decoration slot, growing the table so
// decorations can precede the struct definition in the stream.
func (m *Meta) memberAt(index uint32) *Decoration {
	if uint32(len(m.Members)) <= index {
		grown := make([]Decoration, index+1)
		copy(grown, m.Members)
		m.Members = grown
	}
	return &m.Members[index]
}

func (d *Decoration) apply(decoration spv.Decoration, argument uint32) {
	if decoration >= 64 {
		if d.Extended == nil {
			d.Extended = make(map[spv.Decoration]uint32)
		}
		d.Extended[decoration] = argument
		return
	}
	d.DecorationFlags |= 1 << uint64(decoration)
	switch decoration {
	case spv.DecorationBuiltIn:
		d.Builtin = true
		d.BuiltIn = spv.BuiltIn(argument)
	case spv.DecorationLocation:
		d.Location = argument
	case spv.DecorationDescriptorSet:
		d.Set = argument
	case spv.DecorationBinding:
		d.Binding = argument
	case spv.DecorationOffset:
		d.Offset = argument
	case spv.DecorationArrayStride:
		d.ArrayStride = argument
	case spv.DecorationMatrixStride:
		d.MatrixStride = argument
	case spv.DecorationInputAttachmentIndex:
		d.InputAttachmentIndex = argument
	case spv.DecorationSpecID:
		d.SpecID = argument
	case spv.DecorationAlignment:
		d.Alignment = argument
	}
}

func (d *Decoration) has(decoration spv.Decoration) bool {
	if decoration >= 64 {
		_, ok := d.Extended[decoration]
		return ok
	}
	return d.DecorationFlags&(1<<uint64(decoration)) != 0
}

func (d *Decoration) value(decoration spv.Decoration) uint32 {
	if decoration >= 64 {
		return d.Extended[decoration]
	}
	if d.DecorationFlags&(1<<uint64(decoration)) == 0 {
		return 0
	}
	switch decoration {
	case spv.DecorationBuiltIn:
		return uint32(d.BuiltIn)
	case spv.DecorationLocation:
		return d.Location
	case spv.DecorationDescriptorSet:
		return d.Set
	case spv.DecorationBinding:
		return d.Binding
	case spv.DecorationOffset:
		return d.Offset
	case spv.DecorationArrayStride:
		return d.ArrayStride
	case spv.DecorationMatrixStride:
		return d.MatrixStride
	case spv.DecorationInputAttachmentIndex:
		return d.InputAttachmentIndex
	case spv.DecorationSpecID:
		return d.SpecID
	case spv.DecorationAlignment:
		return d.Alignment
	default:
		return 1
	}
}

func (d *Decoration) remove(decoration spv.Decoration) {
	if decoration >= 64 {
		delete(d.Extended, decoration)
		return
	}
	d.DecorationFlags &^= 1 << uint64(decoration)
	switch decoration {
	case spv.DecorationBuiltIn:
		d.Builtin = false
		d.BuiltIn = 0
	case spv.DecorationLocation:
		d.Location = 0
	case spv.DecorationDescriptorSet:
		d.Set = 0
	case spv.DecorationBinding:
		d.Binding = 0
	case spv.DecorationOffset:
		d.Offset = 0
	case spv.DecorationArrayStride:
		d.ArrayStride = 0
	case spv.DecorationMatrixStride:
		d.MatrixStride = 0
	case spv.DecorationInputAttachmentIndex:
		d.InputAttachmentIndex = 0
	case spv.DecorationSpecID:
		d.SpecID = 0
	case spv.DecorationAlignment:
		d.Alignment = 0
	}
}

// SetName overrides the declared name of an ID. Out-of-range IDs are
// ignored.
func (m *Module) SetName(id ID, name string) {
	if meta := m.Meta(id); meta != nil {
		meta.Decoration.Name = name
	}
}

// Name returns the declared name of an ID, empty when none was set.
func (m *Module) Name(id ID) string {
	if meta := m.Meta(id); meta != nil {
		return meta.Decoration.Name
	}
	return ""
}

// FallbackName returns a non-empty deterministic identifier for an ID,
// used when no name was declared.
func (m *Module) FallbackName(id ID) string {
	return "_" + strconv.FormatUint(uint64(id), 10)
}

// SetDecoration applies a decoration to an ID, effectively injecting
// OpDecorate.
func (m *Module) SetDecoration(id ID, decoration spv.Decoration, argument uint32) {
	if meta := m.Meta(id); meta != nil {
		meta.Decoration.apply(decoration, argument)
	}
}

// HasDecoration reports whether the decoration is applied to the ID.
func (m *Module) HasDecoration(id ID, decoration spv.Decoration) bool {
	if meta := m.Meta(id); meta != nil {
		return meta.Decoration.has(decoration)
	}
	return false
}

// DecorationMask returns the bitmask of decorations applied to an ID.
// Only the first 64 decorations are representable; query extension
// decorations through HasDecoration.
func (m *Module) DecorationMask(id ID) uint64 {
	if meta := m.Meta(id); meta != nil {
		return meta.Decoration.DecorationFlags
	}
	return 0
}

// GetDecoration returns the argument of a decoration applied to an ID,
// zero when absent or the decoration carries no argument.
func (m *Module) GetDecoration(id ID, decoration spv.Decoration) uint32 {
	if meta := m.Meta(id); meta != nil {
		return meta.Decoration.value(decoration)
	}
	return 0
}

// UnsetDecoration removes a decoration from an ID, clearing both the
// mask bit and the stored argument.
func (m *Module) UnsetDecoration(id ID, decoration spv.Decoration) {
	if meta := m.Meta(id); meta != nil {
		meta.Decoration.remove(decoration)
	}
}

// SetMemberName sets the identifier of member index of struct type id.
func (m *Module) SetMemberName(id ID, index uint32, name string) {
	if meta := m.Meta(id); meta != nil {
		meta.memberAt(index).Name = name
	}
}

// MemberName returns the declared member name, empty when none.
func (m *Module) MemberName(id ID, index uint32) string {
	if meta := m.Meta(id); meta != nil && index < uint32(len(meta.Members)) {
		return meta.Members[index].Name
	}
	return ""
}

// FallbackMemberName returns a deterministic member identifier.
func (m *Module) FallbackMemberName(index uint32) string {
	return "_" + strconv.FormatUint(uint64(index), 10)
}

// SetMemberDecoration applies a decoration to a struct member.
func (m *Module) SetMemberDecoration(id ID, index uint32, decoration spv.Decoration, argument uint32) {
	if meta := m.Meta(id); meta != nil {
		meta.memberAt(index).apply(decoration, argument)
	}
}

// MemberDecorationMask returns the decoration bitmask of a member,
// covering the first 64 decorations.
func (m *Module) MemberDecorationMask(id ID, index uint32) uint64 {
	if meta := m.Meta(id); meta != nil && index < uint32(len(meta.Members)) {
		return meta.Members[index].DecorationFlags
	}
	return 0
}

// HasMemberDecoration reports whether the decoration is applied to the
// member.
func (m *Module) HasMemberDecoration(id ID, index uint32, decoration spv.Decoration) bool {
	if meta := m.Meta(id); meta != nil && index < uint32(len(meta.Members)) {
		return meta.Members[index].has(decoration)
	}
	return false
}

// GetMemberDecoration returns the argument of a member decoration.
func (m *Module) GetMemberDecoration(id ID, index uint32, decoration spv.Decoration) uint32 {
	if meta := m.Meta(id); meta != nil && index < uint32(len(meta.Members)) {
		return meta.Members[index].value(decoration)
	}
	return 0
}

// UnsetMemberDecoration removes a decoration from a struct member.
func (m *Module) UnsetMemberDecoration(id ID, index uint32, decoration spv.Decoration) {
	if meta := m.Meta(id); meta != nil && index < uint32(len(meta.Members)) {
		meta.Members[index].remove(decoration)
	}
}
