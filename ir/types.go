package ir

import (
	"github.com/gogpu/spvcross/spv"
)

// BaseType is the fundamental shape of a SPIRType.
type BaseType uint8

const (
	TypeUnknown BaseType = iota
	TypeVoid
	TypeBool
	TypeInt
	TypeUInt
	TypeFloat
	TypeStruct
	TypeImage
	TypeSampledImage
	TypeSampler
	TypeAtomicCounter
)

// ImageType describes an OpTypeImage.
type ImageType struct {
	SampledType ID
	Dim         spv.Dim
	Depth       bool
	Arrayed     bool
	MS          bool

	// Sampled follows SPIR-V: 1 means sampled with a sampler,
	// 2 means read/write without a sampler (storage image).
	Sampled uint32
	Format  uint32
}

// SPIRType describes a type in the module.
//
// For arrays and pointers the parser copies the element/pointee type and
// keeps its Self, so decoration lookups on base_type_id reach through
// type modifications to the underlying struct.
type SPIRType struct {
	Self ID

	BaseType BaseType
	Width    uint32

	// VecSize and Columns are 1 for every well-formed type that is not
	// a vector or matrix; a scalar is a 1x1 type.
	VecSize uint32
	Columns uint32

	// Array holds one entry per dimension, outermost last.
	// ArraySizeLiteral marks entries holding a literal size; entries
	// holding false carry the ID of a (possibly specialization)
	// constant. A literal size of zero is a runtime-sized array.
	Array            []uint32
	ArraySizeLiteral []bool

	Pointer bool
	Storage spv.StorageClass

	MemberTypes []ID

	Image ImageType
}

func (t *SPIRType) object() {}
func (t *SPIRType) self() ID { return t.Self }
func (t *SPIRType) setSelf(id ID) { t.Self = id }
func (t *SPIRType) kindName() string { return "type" }

// SPIRVariable is an OpVariable: storage class, type and initializer,
// plus the dependency bookkeeping the expression cache relies on.
type SPIRVariable struct {
	Self ID

	// TypeID is the pointer type of the variable; the pointee is
	// reached through the type's Self.
	TypeID      ID
	Storage     spv.StorageClass
	Initializer ID

	// Dependees lists expression IDs computed from this variable.
	// A write through the variable invalidates all of them.
	Dependees []ID

	// RemappedVariable marks the variable as implementation-provided;
	// backends suppress its declaration.
	RemappedVariable   bool
	RemappedComponents uint32

	// Flattened marks a block variable rewritten into a plain array.
	Flattened bool
}

func (v *SPIRVariable) object() {}
func (v *SPIRVariable) self() ID { return v.Self }
func (v *SPIRVariable) setSelf(id ID) { v.Self = id }
func (v *SPIRVariable) kindName() string { return "variable" }

// SPIRConstant is an OpConstant* result. Scalar values are stored as
// raw words; composites reference their subconstituent IDs.
type SPIRConstant struct {
	Self ID

	ConstantType ID

	// Value holds the literal words of a scalar constant.
	Value []uint32

	// Subconstants holds the constituents of a composite constant.
	Subconstants []ID

	// Spec marks a specialization constant.
	Spec bool
}

func (c *SPIRConstant) object() {}
func (c *SPIRConstant) self() ID { return c.Self }
func (c *SPIRConstant) setSelf(id ID) { c.Self = id }
func (c *SPIRConstant) kindName() string { return "constant" }

// Scalar returns the constant's value as a 32-bit word, zero if the
// constant carries no literal.
func (c *SPIRConstant) Scalar() uint32 {
	if len(c.Value) == 0 {
		return 0
	}
	return c.Value[0]
}

// Scalar64 returns the constant's value as a 64-bit word.
func (c *SPIRConstant) Scalar64() uint64 {
	switch len(c.Value) {
	case 0:
		return 0
	case 1:
		return uint64(c.Value[0])
	default:
		return uint64(c.Value[0]) | uint64(c.Value[1])<<32
	}
}

// FunctionParameter is a formal parameter of a SPIRFunction.
type FunctionParameter struct {
	Type ID
	ID   ID
}

// SPIRFunction is an OpFunction with its blocks in declaration order.
type SPIRFunction struct {
	Self ID

	ReturnType   ID
	FunctionType ID
	Parameters   []FunctionParameter

	// Blocks lists the function's block IDs in declaration order;
	// EntryBlock is the first.
	Blocks     []ID
	EntryBlock ID

	// LocalVariables lists function-storage OpVariable IDs.
	LocalVariables []ID

	// Pure is set by purity analysis: the function performs no writes
	// outside its own locals and calls only pure functions.
	Pure         bool
	PureAnalyzed bool
}

func (f *SPIRFunction) object() {}
func (f *SPIRFunction) self() ID { return f.Self }
func (f *SPIRFunction) setSelf(id ID) { f.Self = id }
func (f *SPIRFunction) kindName() string { return "function" }

// Terminator is the control transfer ending a block.
type Terminator uint8

const (
	TerminatorUnknown Terminator = iota
	TerminatorDirect             // OpBranch
	TerminatorSelect             // OpBranchConditional
	TerminatorMultiSelect        // OpSwitch
	TerminatorReturn             // OpReturn / OpReturnValue
	TerminatorUnreachable        // OpUnreachable
	TerminatorKill               // OpKill
)

// MergeKind is the structured-merge declaration on a block.
type MergeKind uint8

const (
	MergeNone MergeKind = iota
	MergeLoop
	MergeSelection
)

// SwitchCase is one literal/target pair of an OpSwitch.
type SwitchCase struct {
	Value uint32
	Block ID
}

// ContinueBlockType classifies a loop's continue construct.
type ContinueBlockType uint8

const (
	ContinueNone ContinueBlockType = iota

	// ForLoop is a trivial back-edge: the continue block does nothing
	// but branch back to the loop header.
	ForLoop

	// WhileLoop runs the continuation before the condition check.
	WhileLoop

	// DoWhileLoop checks the condition in the continue block itself.
	DoWhileLoop

	// ComplexLoop requires synthetic state to linearize because the
	// target language lacks multi-level continue.
	ComplexLoop
)

// SPIRBlock is a basic block: its instructions, terminator and any
// structured-merge declarations.
type SPIRBlock struct {
	Self ID

	Terminator Terminator

	// Direct branch target.
	NextBlock ID

	// Conditional branch.
	Condition  ID
	TrueBlock  ID
	FalseBlock ID

	// Switch.
	Selector     ID
	DefaultBlock ID
	Cases        []SwitchCase

	// Return value, zero for plain OpReturn.
	ReturnValue ID

	Merge         MergeKind
	MergeBlock    ID
	ContinueBlock ID

	// Ops lists the block's non-terminator instructions in order.
	Ops []Instruction

	// ComplexContinue is set when restructuring deemed the continue
	// construct too complex for direct emission.
	ComplexContinue bool

	// DisableBlockOptimization suppresses loop-shape detection after a
	// failed restructuring attempt.
	DisableBlockOptimization bool
}

func (b *SPIRBlock) object() {}
func (b *SPIRBlock) self() ID { return b.Self }
func (b *SPIRBlock) setSelf(id ID) { b.Self = id }
func (b *SPIRBlock) kindName() string { return "block" }

// SPIRUndef is an OpUndef placeholder value.
type SPIRUndef struct {
	Self     ID
	BaseType ID
}

func (u *SPIRUndef) object() {}
func (u *SPIRUndef) self() ID { return u.Self }
func (u *SPIRUndef) setSelf(id ID) { u.Self = id }
func (u *SPIRUndef) kindName() string { return "undef" }

// SPIREntryPoint is an OpEntryPoint plus its accumulated execution
// modes. Entry points live outside the ID table: their ID is the entry
// function's ID, which is already bound to a SPIRFunction.
type SPIREntryPoint struct {
	Self  ID
	Name  string
	Model spv.ExecutionModel

	// InterfaceVariables lists the stage Input/Output variables
	// belonging to this entry point's interface.
	InterfaceVariables []ID

	// ModeFlags is a bitmask over the first 64 spv.ExecutionMode
	// values; ModeArgs carries up to three positional arguments for
	// every declared mode, including extension modes beyond the mask.
	ModeFlags uint64
	ModeArgs  map[spv.ExecutionMode][3]uint32

	WorkgroupSize [3]uint32
}

// Resource is one reflected shader resource.
type Resource struct {
	// ID of the OpVariable.
	ID ID

	// TypeID includes arrays and type modifications; BaseTypeID is the
	// dealiased underlying type, suitable for member decoration lookup.
	TypeID     ID
	BaseTypeID ID

	// Name is the resolved display name; never empty (a deterministic
	// fallback derived from the ID is substituted when no OpName was
	// declared).
	Name string
}

// ShaderResources partitions a module's resources by semantic class.
type ShaderResources struct {
	UniformBuffers []Resource
	StorageBuffers []Resource
	StageInputs    []Resource
	StageOutputs   []Resource
	SubpassInputs  []Resource
	StorageImages  []Resource
	SampledImages  []Resource
	AtomicCounters []Resource

	// At most one push constant block is expected, but the slice is
	// kept in case that restriction is ever lifted.
	PushConstantBuffers []Resource
}

// BufferRange records one struct member observed to be accessed.
type BufferRange struct {
	Index  uint32
	Offset uint32
	Range  uint32
}
