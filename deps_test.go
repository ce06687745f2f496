// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package spvcross

import (
	"testing"

	"github.com/gogpu/spvcross/spv"
)

// aliasedBuffersWords builds a compute shader with two SSBO-style
// buffer blocks %6 and %7 sharing one BufferBlock struct type. Neither
// carries Restrict, so writes through one are observable through the
// other.
func aliasedBuffersWords() []uint32 {
	return assemble(20,
		op(spv.OpEntryPoint, cat([]uint32{uint32(spv.ExecutionModelGLCompute), 3}, str("main"))...),
		op(spv.OpDecorate, 4, uint32(spv.DecorationBufferBlock)),
		op(spv.OpTypeVoid, 1),
		op(spv.OpTypeFunction, 2, 1),
		op(spv.OpTypeFloat, 9, 32),
		op(spv.OpTypeStruct, 4, 9),
		op(spv.OpTypePointer, 5, uint32(spv.StorageClassUniform), 4),
		op(spv.OpVariable, 5, 6, uint32(spv.StorageClassUniform)),
		op(spv.OpVariable, 5, 7, uint32(spv.StorageClassUniform)),
		op(spv.OpFunction, 1, 3, 0, 2),
		op(spv.OpLabel, 8),
		op(spv.OpReturn),
		op(spv.OpFunctionEnd),
	)
}

// workgroupSharedWords builds a compute shader with one workgroup
// shared variable %6.
func workgroupSharedWords() []uint32 {
	return assemble(20,
		op(spv.OpEntryPoint, cat([]uint32{uint32(spv.ExecutionModelGLCompute), 3}, str("main"))...),
		op(spv.OpTypeVoid, 1),
		op(spv.OpTypeFunction, 2, 1),
		op(spv.OpTypeFloat, 9, 32),
		op(spv.OpTypePointer, 5, uint32(spv.StorageClassWorkgroup), 9),
		op(spv.OpVariable, 5, 6, uint32(spv.StorageClassWorkgroup)),
		op(spv.OpFunction, 1, 3, 0, 2),
		op(spv.OpLabel, 8),
		op(spv.OpReturn),
		op(spv.OpFunctionEnd),
	)
}

func TestRegisterWrite_InvalidatesDependents(t *testing.T) {
	c := mustCompile(t, fragmentShaderWords())

	// Expression 17 was read from the uniform block variable 7.
	c.RegisterRead(17, 7, false)
	// Expression 18 was read from the unrelated input variable 9.
	c.RegisterRead(18, 9, false)

	c.RegisterWrite(7)

	if !c.IsExpressionInvalid(17) {
		t.Error("expression 17 still valid after a write to its source")
	}
	if c.IsExpressionInvalid(18) {
		t.Error("expression 18 invalidated by a write to an unrelated variable")
	}
}

func TestRegisterWrite_AliasedInvalidatesAllAliases(t *testing.T) {
	c := mustCompile(t, aliasedBuffersWords())

	// Expressions cached from both buffer blocks.
	c.RegisterRead(11, 6, false)
	c.RegisterRead(12, 7, false)

	c.RegisterWrite(6)

	if !c.IsExpressionInvalid(11) {
		t.Error("expression 11 still valid after a write to its own buffer")
	}
	if !c.IsExpressionInvalid(12) {
		t.Error("expression 12 survived a write through an aliasing buffer")
	}
}

func TestRegisterRead_ForwardedCreatesNoDependency(t *testing.T) {
	c := mustCompile(t, fragmentShaderWords())

	c.RegisterRead(17, 7, true)
	c.RegisterWrite(7)

	if c.IsExpressionInvalid(17) {
		t.Error("forwarded read was invalidated; it should never be cached")
	}
}

func TestRegisterRead_BackingVariableTracked(t *testing.T) {
	c := mustCompile(t, fragmentShaderWords())

	c.RegisterRead(17, 7, false)

	v := c.MaybeGetBackingVariable(17)
	if v == nil || v.Self != 7 {
		t.Fatalf("MaybeGetBackingVariable(17) = %v, want variable 7", v)
	}
	// A write through the chain expression reaches the variable too.
	c.RegisterRead(19, 7, false)
	c.RegisterWrite(17)
	if !c.IsExpressionInvalid(19) {
		t.Error("write through chain expression did not invalidate sibling read")
	}
}

func TestFlushAllActiveVariables(t *testing.T) {
	c := mustCompile(t, fragmentShaderWords())

	c.RegisterRead(17, 7, false)
	c.RegisterRead(18, 9, false)
	c.FlushAllActiveVariables(nil)

	if !c.IsExpressionInvalid(17) || !c.IsExpressionInvalid(18) {
		t.Error("join-point flush left cached expressions valid")
	}
}

func TestFlushAllAtomicCapableVariables(t *testing.T) {
	// The fragment fixture's uniform block is read-only; atomics cannot
	// target it, so its cached reads survive the atomic flush.
	c := mustCompile(t, fragmentShaderWords())
	c.RegisterRead(17, 7, false)
	c.FlushAllAtomicCapableVariables()
	if c.IsExpressionInvalid(17) {
		t.Error("uniform block read flushed by the atomic flush")
	}

	// SSBO-style blocks are atomic targets and must be flushed.
	c = mustCompile(t, aliasedBuffersWords())
	c.RegisterRead(11, 6, false)
	c.FlushAllAtomicCapableVariables()
	if !c.IsExpressionInvalid(11) {
		t.Error("buffer block read survived the atomic flush")
	}

	// Workgroup memory is an atomic target even though nothing aliases
	// it.
	c = mustCompile(t, workgroupSharedWords())
	c.RegisterRead(11, 6, false)
	c.FlushAllAtomicCapableVariables()
	if !c.IsExpressionInvalid(11) {
		t.Error("workgroup shared read survived the atomic flush")
	}
}

func TestRevalidateExpression(t *testing.T) {
	c := mustCompile(t, fragmentShaderWords())

	c.InvalidateExpression(17)
	if !c.IsExpressionInvalid(17) {
		t.Fatal("InvalidateExpression had no effect")
	}
	c.RevalidateExpression(17)
	if c.IsExpressionInvalid(17) {
		t.Error("RevalidateExpression had no effect")
	}
}

func TestInheritExpressionDependencies(t *testing.T) {
	c := mustCompile(t, fragmentShaderWords())

	c.RegisterRead(17, 7, false)
	c.InheritExpressionDependencies(19, 17)

	c.RegisterWrite(7)
	if !c.IsExpressionInvalid(19) {
		t.Error("derived expression survived a write to the inherited source")
	}
}
