// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package spvcross

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/spvcross/ir"
	"github.com/gogpu/spvcross/spv"
)

func TestGetShaderResources_Fragment(t *testing.T) {
	c := mustCompile(t, fragmentShaderWords())

	res, err := c.GetShaderResources()
	require.NoError(t, err)

	require.Len(t, res.UniformBuffers, 1)
	ubo := res.UniformBuffers[0]
	assert.Equal(t, ir.ID(7), ubo.ID)
	assert.Equal(t, ir.ID(6), ubo.TypeID)
	assert.Equal(t, ir.ID(5), ubo.BaseTypeID)
	// Blocks are named after their type, not the instance variable.
	assert.Equal(t, "UBO", ubo.Name)

	require.Len(t, res.StageInputs, 1)
	assert.Equal(t, "vColor", res.StageInputs[0].Name)

	require.Len(t, res.StageOutputs, 1)
	// The output variable was never named; the fallback is derived
	// from its ID.
	assert.Equal(t, "_11", res.StageOutputs[0].Name)

	assert.Empty(t, res.StorageBuffers)
	assert.Empty(t, res.SampledImages)
	assert.Empty(t, res.StorageImages)
	assert.Empty(t, res.SubpassInputs)
	assert.Empty(t, res.AtomicCounters)
	assert.Empty(t, res.PushConstantBuffers)
}

func TestGetShaderResources_SkipsBuiltins(t *testing.T) {
	c := mustCompile(t, fragmentShaderWords())
	c.SetDecoration(9, spv.DecorationBuiltIn, uint32(spv.BuiltInFragCoord))

	res, err := c.GetShaderResources()
	require.NoError(t, err)
	assert.Empty(t, res.StageInputs, "built-in variables must not be reported")
}

func TestGetShaderResources_EntryPointSwitch(t *testing.T) {
	c := mustCompile(t, twoEntryPointWords())

	res, err := c.GetShaderResources()
	require.NoError(t, err)
	require.Len(t, res.StageInputs, 1)
	assert.Equal(t, ir.ID(9), res.StageInputs[0].ID)

	require.NoError(t, c.SetEntryPoint("B"))
	res, err = c.GetShaderResources()
	require.NoError(t, err)
	require.Len(t, res.StageInputs, 1)
	assert.Equal(t, ir.ID(11), res.StageInputs[0].ID)
}

func TestGetActiveBufferRanges(t *testing.T) {
	c := mustCompile(t, fragmentShaderWords())

	ranges, err := c.GetActiveBufferRanges(7)
	require.NoError(t, err)

	// The body only ever touches member 1; members 0 must not appear.
	require.Len(t, ranges, 1)
	assert.Equal(t, ir.BufferRange{Index: 1, Offset: 16, Range: 16}, ranges[0])
}

func TestGetActiveBufferRanges_Deduplicates(t *testing.T) {
	words := fragmentShaderWords()
	// Append a second access to the same member before the return.
	tail := cat(
		op(spv.OpAccessChain, 16, 18, 7, 15),
		op(spv.OpReturn),
		op(spv.OpFunctionEnd),
	)
	words = append(words[:len(words)-2], tail...)

	c := mustCompile(t, words)
	ranges, err := c.GetActiveBufferRanges(7)
	require.NoError(t, err)
	assert.Len(t, ranges, 1, "repeated accesses to one member must collapse")
}

func TestGetActiveBufferRanges_NonBlock(t *testing.T) {
	c := mustCompile(t, fragmentShaderWords())
	_, err := c.GetActiveBufferRanges(9)
	assert.True(t, ir.IsKind(err, ir.ErrLayout), "expected layout error, got %v", err)
}

// twoEntryPointWords declares two fragment entry points with disjoint
// input interfaces.
func twoEntryPointWords() []uint32 {
	return assemble(20,
		op(spv.OpEntryPoint, cat([]uint32{uint32(spv.ExecutionModelFragment), 12}, str("A"), []uint32{9})...),
		op(spv.OpEntryPoint, cat([]uint32{uint32(spv.ExecutionModelFragment), 13}, str("B"), []uint32{11})...),
		op(spv.OpTypeVoid, 1),
		op(spv.OpTypeFunction, 2, 1),
		op(spv.OpTypeFloat, 3, 32),
		op(spv.OpTypeVector, 4, 3, 4),
		op(spv.OpTypePointer, 8, uint32(spv.StorageClassInput), 4),
		op(spv.OpVariable, 8, 9, uint32(spv.StorageClassInput)),
		op(spv.OpVariable, 8, 11, uint32(spv.StorageClassInput)),
		op(spv.OpFunction, 1, 12, 0, 2),
		op(spv.OpLabel, 14),
		op(spv.OpReturn),
		op(spv.OpFunctionEnd),
		op(spv.OpFunction, 1, 13, 0, 2),
		op(spv.OpLabel, 15),
		op(spv.OpReturn),
		op(spv.OpFunctionEnd),
	)
}
