// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package parser decodes a SPIR-V word stream into an ir.Module.
//
// Parsing is a single forward pass: each instruction updates the ID
// table, metadata, or the current function/block insertion context.
// Structural violations (truncated instructions, IDs beyond the
// declared bound) abort the parse; no partial module is returned.
package parser

import (
	"github.com/rs/zerolog"

	"github.com/gogpu/spvcross/ir"
	"github.com/gogpu/spvcross/spv"
)

// headerWords is the fixed SPIR-V header size:
// magic, version, generator, bound, schema.
const headerWords = 5

// Parser performs a single pass over a SPIR-V word stream.
type Parser struct {
	module *ir.Module
	log    zerolog.Logger

	currentFunction *ir.SPIRFunction
	currentBlock    *ir.SPIRBlock
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger attaches a logger; parse progress is traced at debug level.
func WithLogger(log zerolog.Logger) Option {
	return func(p *Parser) { p.log = log }
}

// New creates a parser. The zero configuration logs nowhere.
func New(opts ...Option) *Parser {
	p := &Parser{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse decodes words into a module. The word slice is retained by the
// returned module; callers must not mutate it afterwards.
func (p *Parser) Parse(words []uint32) (*ir.Module, error) {
	if len(words) < headerWords {
		return nil, ir.NewError(ir.ErrFormat, "word stream shorter than SPIR-V header")
	}
	if words[0] != spv.MagicNumber {
		return nil, ir.NewError(ir.ErrFormat, "invalid SPIR-V magic number")
	}

	bound := words[3]
	module := ir.NewModule(bound)
	module.Words = words
	p.module = module
	p.currentFunction = nil
	p.currentBlock = nil

	p.log.Debug().
		Uint32("version", words[1]).
		Uint32("bound", bound).
		Msg("parsing SPIR-V module")

	offset := uint32(headerWords)
	for offset < uint32(len(words)) {
		first := words[offset]
		op := spv.Op(first & 0xffff)
		count := first >> 16
		if count == 0 {
			return nil, ir.NewStreamError(ir.ErrFormat, offset, "instruction word count is zero")
		}
		if uint64(offset)+uint64(count) > uint64(len(words)) {
			return nil, ir.NewStreamError(ir.ErrFormat, offset, "instruction length exceeds word stream")
		}

		instr := ir.Instruction{
			Op:     op,
			Offset: offset + 1,
			Length: count - 1,
		}
		module.Instructions = append(module.Instructions, instr)

		if err := p.parseInstruction(instr); err != nil {
			return nil, err
		}
		offset += count
	}

	if p.currentFunction != nil {
		return nil, ir.NewError(ir.ErrFormat, "word stream ended inside a function body")
	}

	p.log.Debug().
		Int("instructions", len(module.Instructions)).
		Int("entry_points", len(module.EntryPointOrder)).
		Msg("parse complete")
	return module, nil
}

// checkID validates an operand ID against the module bound.
func (p *Parser) checkID(id uint32, offset uint32) (ir.ID, error) {
	if id >= p.module.Bound {
		return 0, &ir.Error{
			Kind:    ir.ErrOutOfRangeID,
			Message: "operand ID exceeds module bound",
			ID:      ir.ID(id),
			Offset:  offset,
		}
	}
	return ir.ID(id), nil
}

//nolint:gocognit,gocyclo,cyclop,funlen,maintidx // one case per SPIR-V opcode
func (p *Parser) parseInstruction(instr ir.Instruction) error {
	ops, err := p.module.Stream(instr)
	if err != nil {
		return err
	}
	module := p.module

	switch instr.Op {
	case spv.OpNop, spv.OpLine, spv.OpString, spv.OpSourceContinued,
		spv.OpMemoryModel, spv.OpCapability, spv.OpExtInstImport,
		spv.OpDecorationGroup, spv.OpGroupDecorate, spv.OpGroupMemberDecorate:
		// Carried in the raw stream; nothing to reflect on.

	case spv.OpSource:
		if len(ops) >= 1 {
			lang := spv.SourceLanguage(ops[0])
			module.Source.Known = lang == spv.SourceLanguageGLSL || lang == spv.SourceLanguageESSL
			module.Source.ES = lang == spv.SourceLanguageESSL
			if len(ops) >= 2 {
				module.Source.Version = ops[1]
			}
		}

	case spv.OpExtension, spv.OpSourceExtension:
		ext, _ := decodeString(ops, 0)
		module.Extensions = append(module.Extensions, ext)

	case spv.OpEntryPoint:
		if len(ops) < 3 {
			return ir.NewStreamError(ir.ErrFormat, instr.Offset, "OpEntryPoint requires model, function and name")
		}
		fn, err := p.checkID(ops[1], instr.Offset)
		if err != nil {
			return err
		}
		name, consumed := decodeString(ops, 2)
		entry := &ir.SPIREntryPoint{
			Self:     fn,
			Name:     name,
			Model:    spv.ExecutionModel(ops[0]),
			ModeArgs: make(map[spv.ExecutionMode][3]uint32),
		}
		for _, raw := range ops[2+consumed:] {
			iface, err := p.checkID(raw, instr.Offset)
			if err != nil {
				return err
			}
			entry.InterfaceVariables = append(entry.InterfaceVariables, iface)
		}
		module.EntryPoints[fn] = entry
		module.EntryPointOrder = append(module.EntryPointOrder, fn)
		p.log.Debug().Str("name", name).Stringer("model", entry.Model).Msg("entry point")

	case spv.OpExecutionMode:
		if len(ops) < 2 {
			return ir.NewStreamError(ir.ErrFormat, instr.Offset, "OpExecutionMode requires entry point and mode")
		}
		fn, err := p.checkID(ops[0], instr.Offset)
		if err != nil {
			return err
		}
		entry, ok := module.EntryPoints[fn]
		if !ok {
			return ir.NewIDError(ir.ErrFormat, fn, "OpExecutionMode references unknown entry point")
		}
		mode := spv.ExecutionMode(ops[1])
		var args [3]uint32
		for i := 0; i < 3 && 2+i < len(ops); i++ {
			args[i] = ops[2+i]
		}
		if mode < 64 {
			entry.ModeFlags |= 1 << uint64(mode)
		}
		entry.ModeArgs[mode] = args
		if mode == spv.ExecutionModeLocalSize {
			entry.WorkgroupSize = args
		}

	case spv.OpName:
		if len(ops) < 1 {
			return ir.NewStreamError(ir.ErrFormat, instr.Offset, "OpName requires a target ID")
		}
		id, err := p.checkID(ops[0], instr.Offset)
		if err != nil {
			return err
		}
		name, _ := decodeString(ops, 1)
		module.SetName(id, name)

	case spv.OpMemberName:
		if len(ops) < 2 {
			return ir.NewStreamError(ir.ErrFormat, instr.Offset, "OpMemberName requires type and member index")
		}
		id, err := p.checkID(ops[0], instr.Offset)
		if err != nil {
			return err
		}
		name, _ := decodeString(ops, 2)
		module.SetMemberName(id, ops[1], name)

	case spv.OpDecorate:
		if len(ops) < 2 {
			return ir.NewStreamError(ir.ErrFormat, instr.Offset, "OpDecorate requires target and decoration")
		}
		id, err := p.checkID(ops[0], instr.Offset)
		if err != nil {
			return err
		}
		var argument uint32
		if len(ops) >= 3 {
			argument = ops[2]
		}
		module.SetDecoration(id, spv.Decoration(ops[1]), argument)

	case spv.OpMemberDecorate:
		if len(ops) < 3 {
			return ir.NewStreamError(ir.ErrFormat, instr.Offset, "OpMemberDecorate requires target, member and decoration")
		}
		id, err := p.checkID(ops[0], instr.Offset)
		if err != nil {
			return err
		}
		var argument uint32
		if len(ops) >= 4 {
			argument = ops[3]
		}
		module.SetMemberDecoration(id, ops[1], spv.Decoration(ops[2]), argument)

	case spv.OpTypeVoid:
		return p.setType(ops, instr, func(t *ir.SPIRType) { t.BaseType = ir.TypeVoid })

	case spv.OpTypeBool:
		return p.setType(ops, instr, func(t *ir.SPIRType) {
			t.BaseType = ir.TypeBool
			t.Width = 1
		})

	case spv.OpTypeInt:
		if len(ops) < 3 {
			return ir.NewStreamError(ir.ErrFormat, instr.Offset, "OpTypeInt requires width and signedness")
		}
		return p.setType(ops, instr, func(t *ir.SPIRType) {
			if ops[2] != 0 {
				t.BaseType = ir.TypeInt
			} else {
				t.BaseType = ir.TypeUInt
			}
			t.Width = ops[1]
		})

	case spv.OpTypeFloat:
		if len(ops) < 2 {
			return ir.NewStreamError(ir.ErrFormat, instr.Offset, "OpTypeFloat requires width")
		}
		return p.setType(ops, instr, func(t *ir.SPIRType) {
			t.BaseType = ir.TypeFloat
			t.Width = ops[1]
		})

	case spv.OpTypeVector:
		if len(ops) < 3 {
			return ir.NewStreamError(ir.ErrFormat, instr.Offset, "OpTypeVector requires component type and count")
		}
		base, err := p.getType(ops[1], instr)
		if err != nil {
			return err
		}
		id, err := p.checkID(ops[0], instr.Offset)
		if err != nil {
			return err
		}
		vec := copyType(base)
		vec.VecSize = ops[2]
		return p.setDerived(id, vec, base.Self)

	case spv.OpTypeMatrix:
		if len(ops) < 3 {
			return ir.NewStreamError(ir.ErrFormat, instr.Offset, "OpTypeMatrix requires column type and count")
		}
		base, err := p.getType(ops[1], instr)
		if err != nil {
			return err
		}
		id, err := p.checkID(ops[0], instr.Offset)
		if err != nil {
			return err
		}
		mat := copyType(base)
		mat.Columns = ops[2]
		return p.setDerived(id, mat, base.Self)

	case spv.OpTypeArray:
		if len(ops) < 3 {
			return ir.NewStreamError(ir.ErrFormat, instr.Offset, "OpTypeArray requires element type and length")
		}
		base, err := p.getType(ops[1], instr)
		if err != nil {
			return err
		}
		id, err := p.checkID(ops[0], instr.Offset)
		if err != nil {
			return err
		}
		arr := copyType(base)
		// The length operand is a constant ID; resolve it now when the
		// constant is already known, otherwise record the ID.
		if c, ok := ir.MaybeGet[*ir.SPIRConstant](module, ir.ID(ops[2])); ok && !c.Spec {
			arr.Array = append(arr.Array, c.Scalar())
			arr.ArraySizeLiteral = append(arr.ArraySizeLiteral, true)
		} else {
			arr.Array = append(arr.Array, ops[2])
			arr.ArraySizeLiteral = append(arr.ArraySizeLiteral, false)
		}
		return p.setDerived(id, arr, base.Self)

	case spv.OpTypeRuntimeArray:
		if len(ops) < 2 {
			return ir.NewStreamError(ir.ErrFormat, instr.Offset, "OpTypeRuntimeArray requires element type")
		}
		base, err := p.getType(ops[1], instr)
		if err != nil {
			return err
		}
		id, err := p.checkID(ops[0], instr.Offset)
		if err != nil {
			return err
		}
		arr := copyType(base)
		arr.Array = append(arr.Array, 0)
		arr.ArraySizeLiteral = append(arr.ArraySizeLiteral, true)
		return p.setDerived(id, arr, base.Self)

	case spv.OpTypeStruct:
		if len(ops) < 1 {
			return ir.NewStreamError(ir.ErrFormat, instr.Offset, "OpTypeStruct requires a result ID")
		}
		id, err := p.checkID(ops[0], instr.Offset)
		if err != nil {
			return err
		}
		st := &ir.SPIRType{BaseType: ir.TypeStruct, VecSize: 1, Columns: 1}
		for _, raw := range ops[1:] {
			member, err := p.checkID(raw, instr.Offset)
			if err != nil {
				return err
			}
			st.MemberTypes = append(st.MemberTypes, member)
		}
		_, err = ir.Set(module, id, st)
		return err

	case spv.OpTypeImage:
		if len(ops) < 8 {
			return ir.NewStreamError(ir.ErrFormat, instr.Offset, "OpTypeImage requires eight operands")
		}
		return p.setType(ops, instr, func(t *ir.SPIRType) {
			t.BaseType = ir.TypeImage
			t.Image = ir.ImageType{
				SampledType: ir.ID(ops[1]),
				Dim:         spv.Dim(ops[2]),
				Depth:       ops[3] != 0,
				Arrayed:     ops[4] != 0,
				MS:          ops[5] != 0,
				Sampled:     ops[6],
				Format:      ops[7],
			}
		})

	case spv.OpTypeSampledImage:
		if len(ops) < 2 {
			return ir.NewStreamError(ir.ErrFormat, instr.Offset, "OpTypeSampledImage requires image type")
		}
		base, err := p.getType(ops[1], instr)
		if err != nil {
			return err
		}
		id, err := p.checkID(ops[0], instr.Offset)
		if err != nil {
			return err
		}
		combined := copyType(base)
		combined.BaseType = ir.TypeSampledImage
		return p.setDerived(id, combined, base.Self)

	case spv.OpTypeSampler:
		return p.setType(ops, instr, func(t *ir.SPIRType) { t.BaseType = ir.TypeSampler })

	case spv.OpTypePointer:
		if len(ops) < 3 {
			return ir.NewStreamError(ir.ErrFormat, instr.Offset, "OpTypePointer requires storage class and pointee")
		}
		base, err := p.getType(ops[2], instr)
		if err != nil {
			return err
		}
		id, err := p.checkID(ops[0], instr.Offset)
		if err != nil {
			return err
		}
		ptr := copyType(base)
		ptr.Pointer = true
		ptr.Storage = spv.StorageClass(ops[1])
		return p.setDerived(id, ptr, base.Self)

	case spv.OpTypeFunction:
		// Function types carry no reflectable structure of their own;
		// the SPIRFunction records return and parameter types.
		if len(ops) < 1 {
			return ir.NewStreamError(ir.ErrFormat, instr.Offset, "OpTypeFunction requires a result ID")
		}
		id, err := p.checkID(ops[0], instr.Offset)
		if err != nil {
			return err
		}
		_, err = ir.Set(module, id, &ir.SPIRType{BaseType: ir.TypeUnknown, VecSize: 1, Columns: 1})
		return err

	case spv.OpConstant, spv.OpSpecConstant:
		if len(ops) < 3 {
			return ir.NewStreamError(ir.ErrFormat, instr.Offset, "constant requires type, result and value")
		}
		id, err := p.checkID(ops[1], instr.Offset)
		if err != nil {
			return err
		}
		_, err = ir.Set(module, id, &ir.SPIRConstant{
			ConstantType: ir.ID(ops[0]),
			Value:        append([]uint32(nil), ops[2:]...),
			Spec:         instr.Op == spv.OpSpecConstant,
		})
		return err

	case spv.OpConstantTrue, spv.OpConstantFalse, spv.OpSpecConstantTrue, spv.OpSpecConstantFalse:
		if len(ops) < 2 {
			return ir.NewStreamError(ir.ErrFormat, instr.Offset, "boolean constant requires type and result")
		}
		id, err := p.checkID(ops[1], instr.Offset)
		if err != nil {
			return err
		}
		value := uint32(0)
		if instr.Op == spv.OpConstantTrue || instr.Op == spv.OpSpecConstantTrue {
			value = 1
		}
		_, err = ir.Set(module, id, &ir.SPIRConstant{
			ConstantType: ir.ID(ops[0]),
			Value:        []uint32{value},
			Spec:         instr.Op == spv.OpSpecConstantTrue || instr.Op == spv.OpSpecConstantFalse,
		})
		return err

	case spv.OpConstantComposite, spv.OpSpecConstantComposite:
		if len(ops) < 2 {
			return ir.NewStreamError(ir.ErrFormat, instr.Offset, "composite constant requires type and result")
		}
		id, err := p.checkID(ops[1], instr.Offset)
		if err != nil {
			return err
		}
		c := &ir.SPIRConstant{
			ConstantType: ir.ID(ops[0]),
			Spec:         instr.Op == spv.OpSpecConstantComposite,
		}
		for _, raw := range ops[2:] {
			sub, err := p.checkID(raw, instr.Offset)
			if err != nil {
				return err
			}
			c.Subconstants = append(c.Subconstants, sub)
		}
		_, err = ir.Set(module, id, c)
		return err

	case spv.OpConstantNull:
		if len(ops) < 2 {
			return ir.NewStreamError(ir.ErrFormat, instr.Offset, "OpConstantNull requires type and result")
		}
		id, err := p.checkID(ops[1], instr.Offset)
		if err != nil {
			return err
		}
		_, err = ir.Set(module, id, &ir.SPIRConstant{ConstantType: ir.ID(ops[0]), Value: []uint32{0}})
		return err

	case spv.OpUndef:
		if len(ops) < 2 {
			return ir.NewStreamError(ir.ErrFormat, instr.Offset, "OpUndef requires type and result")
		}
		id, err := p.checkID(ops[1], instr.Offset)
		if err != nil {
			return err
		}
		_, err = ir.Set(module, id, &ir.SPIRUndef{BaseType: ir.ID(ops[0])})
		return err

	case spv.OpVariable:
		if len(ops) < 3 {
			return ir.NewStreamError(ir.ErrFormat, instr.Offset, "OpVariable requires type, result and storage class")
		}
		id, err := p.checkID(ops[1], instr.Offset)
		if err != nil {
			return err
		}
		v := &ir.SPIRVariable{
			TypeID:  ir.ID(ops[0]),
			Storage: spv.StorageClass(ops[2]),
		}
		if len(ops) >= 4 {
			v.Initializer = ir.ID(ops[3])
		}
		if _, err := ir.Set(module, id, v); err != nil {
			return err
		}
		switch {
		case v.Storage == spv.StorageClassFunction:
			if p.currentFunction == nil {
				return ir.NewIDError(ir.ErrFormat, id, "function-storage variable outside a function")
			}
			p.currentFunction.LocalVariables = append(p.currentFunction.LocalVariables, id)
		default:
			module.GlobalVariables = append(module.GlobalVariables, id)
			if p.variableStorageIsAliased(v) {
				module.AliasedVariables = append(module.AliasedVariables, id)
			}
		}

	case spv.OpFunction:
		if len(ops) < 4 {
			return ir.NewStreamError(ir.ErrFormat, instr.Offset, "OpFunction requires type, result, control and function type")
		}
		if p.currentFunction != nil {
			return ir.NewStreamError(ir.ErrFormat, instr.Offset, "nested OpFunction")
		}
		id, err := p.checkID(ops[1], instr.Offset)
		if err != nil {
			return err
		}
		fn, err := ir.Set(module, id, &ir.SPIRFunction{
			ReturnType:   ir.ID(ops[0]),
			FunctionType: ir.ID(ops[3]),
		})
		if err != nil {
			return err
		}
		module.Functions = append(module.Functions, id)
		p.currentFunction = fn

	case spv.OpFunctionParameter:
		if len(ops) < 2 {
			return ir.NewStreamError(ir.ErrFormat, instr.Offset, "OpFunctionParameter requires type and result")
		}
		if p.currentFunction == nil {
			return ir.NewStreamError(ir.ErrFormat, instr.Offset, "OpFunctionParameter outside a function")
		}
		id, err := p.checkID(ops[1], instr.Offset)
		if err != nil {
			return err
		}
		p.currentFunction.Parameters = append(p.currentFunction.Parameters, ir.FunctionParameter{
			Type: ir.ID(ops[0]),
			ID:   id,
		})

	case spv.OpFunctionEnd:
		if p.currentBlock != nil {
			return ir.NewStreamError(ir.ErrFormat, instr.Offset, "OpFunctionEnd inside an unterminated block")
		}
		p.currentFunction = nil

	case spv.OpLabel:
		if p.currentFunction == nil {
			return ir.NewStreamError(ir.ErrFormat, instr.Offset, "OpLabel outside a function")
		}
		if len(ops) < 1 {
			return ir.NewStreamError(ir.ErrFormat, instr.Offset, "OpLabel requires a result ID")
		}
		id, err := p.checkID(ops[0], instr.Offset)
		if err != nil {
			return err
		}
		block, err := ir.Set(module, id, &ir.SPIRBlock{})
		if err != nil {
			return err
		}
		p.currentFunction.Blocks = append(p.currentFunction.Blocks, id)
		if p.currentFunction.EntryBlock == 0 {
			p.currentFunction.EntryBlock = id
		}
		p.currentBlock = block

	case spv.OpLoopMerge:
		if p.currentBlock == nil {
			return ir.NewStreamError(ir.ErrFormat, instr.Offset, "OpLoopMerge outside a block")
		}
		if len(ops) < 2 {
			return ir.NewStreamError(ir.ErrFormat, instr.Offset, "OpLoopMerge requires merge and continue targets")
		}
		p.currentBlock.Merge = ir.MergeLoop
		p.currentBlock.MergeBlock = ir.ID(ops[0])
		p.currentBlock.ContinueBlock = ir.ID(ops[1])

	case spv.OpSelectionMerge:
		if p.currentBlock == nil {
			return ir.NewStreamError(ir.ErrFormat, instr.Offset, "OpSelectionMerge outside a block")
		}
		if len(ops) < 1 {
			return ir.NewStreamError(ir.ErrFormat, instr.Offset, "OpSelectionMerge requires a merge target")
		}
		p.currentBlock.Merge = ir.MergeSelection
		p.currentBlock.MergeBlock = ir.ID(ops[0])

	case spv.OpBranch:
		if len(ops) < 1 {
			return ir.NewStreamError(ir.ErrFormat, instr.Offset, "OpBranch requires a target")
		}
		block, err := p.terminate(instr)
		if err != nil {
			return err
		}
		block.Terminator = ir.TerminatorDirect
		block.NextBlock = ir.ID(ops[0])

	case spv.OpBranchConditional:
		if len(ops) < 3 {
			return ir.NewStreamError(ir.ErrFormat, instr.Offset, "OpBranchConditional requires condition and two targets")
		}
		block, err := p.terminate(instr)
		if err != nil {
			return err
		}
		block.Terminator = ir.TerminatorSelect
		block.Condition = ir.ID(ops[0])
		block.TrueBlock = ir.ID(ops[1])
		block.FalseBlock = ir.ID(ops[2])

	case spv.OpSwitch:
		if len(ops) < 2 {
			return ir.NewStreamError(ir.ErrFormat, instr.Offset, "OpSwitch requires selector and default")
		}
		block, err := p.terminate(instr)
		if err != nil {
			return err
		}
		block.Terminator = ir.TerminatorMultiSelect
		block.Selector = ir.ID(ops[0])
		block.DefaultBlock = ir.ID(ops[1])
		for i := 2; i+1 < len(ops); i += 2 {
			block.Cases = append(block.Cases, ir.SwitchCase{
				Value: ops[i],
				Block: ir.ID(ops[i+1]),
			})
		}

	case spv.OpReturn, spv.OpReturnValue:
		block, err := p.terminate(instr)
		if err != nil {
			return err
		}
		block.Terminator = ir.TerminatorReturn
		if instr.Op == spv.OpReturnValue {
			if len(ops) < 1 {
				return ir.NewStreamError(ir.ErrFormat, instr.Offset, "OpReturnValue requires a value")
			}
			block.ReturnValue = ir.ID(ops[0])
		}

	case spv.OpKill:
		block, err := p.terminate(instr)
		if err != nil {
			return err
		}
		block.Terminator = ir.TerminatorKill

	case spv.OpUnreachable:
		block, err := p.terminate(instr)
		if err != nil {
			return err
		}
		block.Terminator = ir.TerminatorUnreachable

	default:
		if p.currentBlock == nil {
			return ir.NewStreamError(ir.ErrFormat, instr.Offset, "instruction outside a block")
		}
		p.currentBlock.Ops = append(p.currentBlock.Ops, instr)
	}

	return nil
}

// terminate closes the current block and returns it for terminator
// bookkeeping.
func (p *Parser) terminate(instr ir.Instruction) (*ir.SPIRBlock, error) {
	if p.currentBlock == nil {
		return nil, ir.NewStreamError(ir.ErrFormat, instr.Offset, "terminator outside a block")
	}
	block := p.currentBlock
	p.currentBlock = nil
	return block, nil
}

func (p *Parser) setType(ops []uint32, instr ir.Instruction, fill func(*ir.SPIRType)) error {
	if len(ops) < 1 {
		return ir.NewStreamError(ir.ErrFormat, instr.Offset, "type declaration requires a result ID")
	}
	id, err := p.checkID(ops[0], instr.Offset)
	if err != nil {
		return err
	}
	t := &ir.SPIRType{VecSize: 1, Columns: 1}
	fill(t)
	_, err = ir.Set(p.module, id, t)
	return err
}

// setDerived binds a derived type under its own ID while keeping the
// base type's Self, so decoration lookups through the derived type
// reach the underlying declaration. Set stamps Self with the new ID and
// must be undone here.
func (p *Parser) setDerived(id ir.ID, t *ir.SPIRType, self ir.ID) error {
	if _, err := ir.Set(p.module, id, t); err != nil {
		return err
	}
	t.Self = self
	return nil
}

func (p *Parser) getType(raw uint32, instr ir.Instruction) (*ir.SPIRType, error) {
	id, err := p.checkID(raw, instr.Offset)
	if err != nil {
		return nil, err
	}
	t, err := ir.Get[*ir.SPIRType](p.module, id)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// copyType clones a type for a derived declaration (vector, matrix,
// array, pointer), detaching the slice fields from the base.
func copyType(base *ir.SPIRType) *ir.SPIRType {
	clone := *base
	clone.Array = append([]uint32(nil), base.Array...)
	clone.ArraySizeLiteral = append([]bool(nil), base.ArraySizeLiteral...)
	clone.MemberTypes = append([]ir.ID(nil), base.MemberTypes...)
	return &clone
}

// variableStorageIsAliased reports whether a module-scope variable may
// share memory with another binding. Writable storage (SSBO-style
// blocks, storage images, atomic counters) is aliased unless decorated
// Restrict.
func (p *Parser) variableStorageIsAliased(v *ir.SPIRVariable) bool {
	t, ok := ir.MaybeGet[*ir.SPIRType](p.module, v.TypeID)
	if !ok {
		return false
	}
	ssbo := v.Storage == spv.StorageClassStorageBuffer ||
		p.module.HasDecoration(t.Self, spv.DecorationBufferBlock)
	image := t.BaseType == ir.TypeImage && t.Image.Sampled == 2
	counter := v.Storage == spv.StorageClassAtomicCounter

	if p.module.HasDecoration(v.Self, spv.DecorationRestrict) ||
		p.module.HasDecoration(v.Self, spv.DecorationAliased) {
		// Explicit decoration wins either way.
		return p.module.HasDecoration(v.Self, spv.DecorationAliased)
	}
	return ssbo || image || counter
}

// decodeString extracts a nul-terminated UTF-8 literal starting at word
// index start, returning the string and the number of words consumed.
func decodeString(ops []uint32, start int) (string, int) {
	var buf []byte
	for i := start; i < len(ops); i++ {
		w := ops[i]
		for shift := 0; shift < 32; shift += 8 {
			b := byte(w >> shift)
			if b == 0 {
				return string(buf), i - start + 1
			}
			buf = append(buf, b)
		}
	}
	return string(buf), len(ops) - start
}
