// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package spvcross

import (
	"github.com/gogpu/spvcross/ir"
	"github.com/gogpu/spvcross/spv"
)

// GetShaderResources partitions the module's global variables into
// semantic resource classes. Stage inputs and outputs are filtered to
// the current entry point's interface; built-in variables are never
// reported. Results follow variable declaration order.
func (c *Compiler) GetShaderResources() (ir.ShaderResources, error) {
	var res ir.ShaderResources

	for _, id := range c.module.GlobalVariables {
		v, ok := ir.MaybeGet[*ir.SPIRVariable](c.module, id)
		if !ok {
			continue
		}
		t, err := ir.Get[*ir.SPIRType](c.module, v.TypeID)
		if err != nil {
			return ir.ShaderResources{}, err
		}
		if !t.Pointer || c.IsBuiltinVariable(v) {
			continue
		}

		mask := c.module.DecorationMask(t.Self)
		block := mask&(1<<spv.DecorationBlock) != 0
		bufferBlock := mask&(1<<spv.DecorationBufferBlock) != 0

		switch {
		case v.Storage == spv.StorageClassInput:
			active, err := c.InterfaceVariableExistsInEntryPoint(id)
			if err != nil {
				return ir.ShaderResources{}, err
			}
			if active {
				res.StageInputs = append(res.StageInputs, c.variableResource(v, t))
			}

		case v.Storage == spv.StorageClassOutput:
			active, err := c.InterfaceVariableExistsInEntryPoint(id)
			if err != nil {
				return ir.ShaderResources{}, err
			}
			if active {
				res.StageOutputs = append(res.StageOutputs, c.variableResource(v, t))
			}

		case v.Storage == spv.StorageClassUniform && block:
			res.UniformBuffers = append(res.UniformBuffers, c.blockResource(v, t))

		case v.Storage == spv.StorageClassUniform && bufferBlock:
			res.StorageBuffers = append(res.StorageBuffers, c.blockResource(v, t))

		case v.Storage == spv.StorageClassStorageBuffer:
			res.StorageBuffers = append(res.StorageBuffers, c.blockResource(v, t))

		case v.Storage == spv.StorageClassPushConstant:
			res.PushConstantBuffers = append(res.PushConstantBuffers, c.blockResource(v, t))

		case v.Storage == spv.StorageClassAtomicCounter, t.BaseType == ir.TypeAtomicCounter:
			res.AtomicCounters = append(res.AtomicCounters, c.variableResource(v, t))

		case t.BaseType == ir.TypeImage && t.Image.Dim == spv.DimSubpassData:
			res.SubpassInputs = append(res.SubpassInputs, c.variableResource(v, t))

		case t.BaseType == ir.TypeImage && t.Image.Sampled == 2:
			res.StorageImages = append(res.StorageImages, c.variableResource(v, t))

		case t.BaseType == ir.TypeSampledImage,
			t.BaseType == ir.TypeImage && t.Image.Sampled == 1:
			res.SampledImages = append(res.SampledImages, c.variableResource(v, t))
		}
	}
	return res, nil
}

// variableResource names a resource after the variable itself.
func (c *Compiler) variableResource(v *ir.SPIRVariable, t *ir.SPIRType) ir.Resource {
	name := c.module.Name(v.Self)
	if name == "" {
		name = c.module.FallbackName(v.Self)
	}
	return ir.Resource{ID: v.Self, TypeID: v.TypeID, BaseTypeID: t.Self, Name: name}
}

// blockResource names a buffer after its block type, which is where
// front ends put the interesting identifier; the instance name on the
// variable is often empty or compiler-generated.
func (c *Compiler) blockResource(v *ir.SPIRVariable, t *ir.SPIRType) ir.Resource {
	name := c.module.Name(t.Self)
	if name == "" {
		name = c.module.Name(v.Self)
	}
	if name == "" {
		name = c.module.FallbackName(v.Self)
	}
	return ir.Resource{ID: v.Self, TypeID: v.TypeID, BaseTypeID: t.Self, Name: name}
}

// GetActiveBufferRanges reports which members of the buffer variable id
// the current entry point's call graph actually touches. Repeated
// accesses to a member yield one range. Accessing a member is assumed
// to access it whole.
func (c *Compiler) GetActiveBufferRanges(id ir.ID) ([]ir.BufferRange, error) {
	fn, err := ir.Get[*ir.SPIRFunction](c.module, c.entryPoint)
	if err != nil {
		return nil, err
	}
	v, err := ir.Get[*ir.SPIRVariable](c.module, id)
	if err != nil {
		return nil, err
	}
	t, err := ir.Get[*ir.SPIRType](c.module, v.TypeID)
	if err != nil {
		return nil, err
	}
	if t.BaseType != ir.TypeStruct {
		return nil, ir.NewIDError(ir.ErrLayout, id, "active range query on a non-block variable")
	}

	seen := make(map[uint32]struct{})
	var ranges []ir.BufferRange
	var walkErr error

	c.TraverseAllReachableOpcodes(fn, func(op spv.Op, ops []uint32) bool {
		if op != spv.OpAccessChain && op != spv.OpInBoundsAccessChain {
			return true
		}
		if len(ops) < 4 {
			walkErr = ir.NewError(ir.ErrFormat, "access chain is missing its first index")
			return false
		}
		if ir.ID(ops[2]) != id {
			return true
		}
		// A dynamic first index would address the whole block; only
		// constant member selection narrows the range.
		idx, ok := ir.MaybeGet[*ir.SPIRConstant](c.module, ir.ID(ops[3]))
		if !ok {
			return true
		}
		index := idx.Scalar()
		if _, dup := seen[index]; dup {
			return true
		}
		seen[index] = struct{}{}

		offset, err := c.TypeStructMemberOffset(t, index)
		if err != nil {
			walkErr = err
			return false
		}
		var size uint32
		if index+1 < uint32(len(t.MemberTypes)) {
			next, err := c.TypeStructMemberOffset(t, index+1)
			if err != nil {
				walkErr = err
				return false
			}
			size = next - offset
		} else {
			size, err = c.GetDeclaredStructMemberSize(t, index)
			if err != nil {
				walkErr = err
				return false
			}
		}
		ranges = append(ranges, ir.BufferRange{Index: index, Offset: offset, Range: size})
		return true
	})

	if walkErr != nil {
		return nil, walkErr
	}
	return ranges, nil
}
