// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package spvcross

import (
	"testing"

	"github.com/gogpu/spvcross/spv"
)

func op(o spv.Op, ops ...uint32) []uint32 {
	out := []uint32{uint32(len(ops)+1)<<16 | uint32(o)}
	return append(out, ops...)
}

func str(s string) []uint32 {
	b := append([]byte(s), 0)
	for len(b)%4 != 0 {
		b = append(b, 0)
	}
	out := make([]uint32, len(b)/4)
	for i := range out {
		out[i] = uint32(b[i*4]) | uint32(b[i*4+1])<<8 | uint32(b[i*4+2])<<16 | uint32(b[i*4+3])<<24
	}
	return out
}

func cat(parts ...[]uint32) []uint32 {
	var out []uint32
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func assemble(bound uint32, instrs ...[]uint32) []uint32 {
	words := []uint32{spv.MagicNumber, 0x00010300, 0, bound, 0}
	for _, i := range instrs {
		words = append(words, i...)
	}
	return words
}

// fragmentShaderWords builds a fragment shader with one uniform block
// (two vec4 members, offsets 0 and 16), one stage input, one stage
// output, and a body that reads member 1 of the block.
//
//	%5  = struct UBO { vec4 @0; vec4 @16 }  (Block, set 0, binding 1)
//	%7  = uniform variable "ubo"
//	%9  = input variable "vColor"
//	%11 = output variable (unnamed)
//	%17 = access chain ubo[1]
func fragmentShaderWords() []uint32 {
	return assemble(20,
		op(spv.OpEntryPoint, cat([]uint32{uint32(spv.ExecutionModelFragment), 12}, str("main"), []uint32{9, 11})...),
		op(spv.OpName, cat([]uint32{5}, str("UBO"))...),
		op(spv.OpName, cat([]uint32{7}, str("ubo"))...),
		op(spv.OpName, cat([]uint32{9}, str("vColor"))...),
		op(spv.OpDecorate, 5, uint32(spv.DecorationBlock)),
		op(spv.OpMemberDecorate, 5, 0, uint32(spv.DecorationOffset), 0),
		op(spv.OpMemberDecorate, 5, 1, uint32(spv.DecorationOffset), 16),
		op(spv.OpDecorate, 7, uint32(spv.DecorationDescriptorSet), 0),
		op(spv.OpDecorate, 7, uint32(spv.DecorationBinding), 1),
		op(spv.OpDecorate, 9, uint32(spv.DecorationLocation), 0),
		op(spv.OpDecorate, 11, uint32(spv.DecorationLocation), 0),
		op(spv.OpTypeVoid, 1),
		op(spv.OpTypeFunction, 2, 1),
		op(spv.OpTypeFloat, 3, 32),
		op(spv.OpTypeVector, 4, 3, 4),
		op(spv.OpTypeStruct, 5, 4, 4),
		op(spv.OpTypePointer, 6, uint32(spv.StorageClassUniform), 5),
		op(spv.OpVariable, 6, 7, uint32(spv.StorageClassUniform)),
		op(spv.OpTypePointer, 8, uint32(spv.StorageClassInput), 4),
		op(spv.OpVariable, 8, 9, uint32(spv.StorageClassInput)),
		op(spv.OpTypePointer, 10, uint32(spv.StorageClassOutput), 4),
		op(spv.OpVariable, 10, 11, uint32(spv.StorageClassOutput)),
		op(spv.OpTypeInt, 14, 32, 0),
		op(spv.OpConstant, 14, 15, 1),
		op(spv.OpTypePointer, 16, uint32(spv.StorageClassUniform), 4),
		op(spv.OpFunction, 1, 12, 0, 2),
		op(spv.OpLabel, 13),
		op(spv.OpAccessChain, 16, 17, 7, 15),
		op(spv.OpReturn),
		op(spv.OpFunctionEnd),
	)
}

// loopShaderWords builds a compute shader with one structured loop
// whose continue block is a trivial back edge:
//
//	%5 header (OpLoopMerge %8 %7), %6 body, %7 continue, %8 merge
func loopShaderWords() []uint32 {
	return assemble(20,
		op(spv.OpEntryPoint, cat([]uint32{uint32(spv.ExecutionModelGLCompute), 3}, str("main"))...),
		op(spv.OpTypeVoid, 1),
		op(spv.OpTypeFunction, 2, 1),
		op(spv.OpTypeBool, 9),
		op(spv.OpUndef, 9, 10),
		op(spv.OpFunction, 1, 3, 0, 2),
		op(spv.OpLabel, 4),
		op(spv.OpBranch, 5),
		op(spv.OpLabel, 5),
		op(spv.OpLoopMerge, 8, 7),
		op(spv.OpBranchConditional, 10, 6, 8),
		op(spv.OpLabel, 6),
		op(spv.OpBranch, 7),
		op(spv.OpLabel, 7),
		op(spv.OpBranch, 5),
		op(spv.OpLabel, 8),
		op(spv.OpReturn),
		op(spv.OpFunctionEnd),
	)
}

// switchShaderWords builds a compute shader with one switch whose
// merge block %8 doubles as the selection merge target.
func switchShaderWords() []uint32 {
	return assemble(20,
		op(spv.OpEntryPoint, cat([]uint32{uint32(spv.ExecutionModelGLCompute), 3}, str("main"))...),
		op(spv.OpTypeVoid, 1),
		op(spv.OpTypeFunction, 2, 1),
		op(spv.OpTypeInt, 9, 32, 1),
		op(spv.OpUndef, 9, 10),
		op(spv.OpFunction, 1, 3, 0, 2),
		op(spv.OpLabel, 4),
		op(spv.OpSelectionMerge, 8),
		op(spv.OpSwitch, 10, 5, 0, 6),
		op(spv.OpLabel, 5),
		op(spv.OpBranch, 8),
		op(spv.OpLabel, 6),
		op(spv.OpBranch, 8),
		op(spv.OpLabel, 8),
		op(spv.OpReturn),
		op(spv.OpFunctionEnd),
	)
}

func mustCompile(t *testing.T, words []uint32) *Compiler {
	t.Helper()
	c, err := NewCompiler(words)
	if err != nil {
		t.Fatalf("NewCompiler() error = %v", err)
	}
	return c
}
