// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package spvcross

import (
	"testing"

	"github.com/gogpu/spvcross/ir"
	"github.com/gogpu/spvcross/spv"
)

func TestNewCompiler_RejectsMalformedInput(t *testing.T) {
	if _, err := NewCompiler([]uint32{0xdeadbeef}); !ir.IsKind(err, ir.ErrFormat) {
		t.Errorf("NewCompiler() error = %v, want format error", err)
	}
}

func TestCompile_NoBackend(t *testing.T) {
	c := mustCompile(t, fragmentShaderWords())
	if _, err := c.Compile(); !ir.IsKind(err, ir.ErrUnsupported) {
		t.Errorf("Compile() error = %v, want unsupported", err)
	}
}

func TestEntryPoints(t *testing.T) {
	c := mustCompile(t, fragmentShaderWords())

	names := c.GetEntryPoints()
	if len(names) != 1 || names[0] != "main" {
		t.Fatalf("GetEntryPoints() = %v, want [main]", names)
	}

	model, err := c.GetExecutionModel()
	if err != nil {
		t.Fatalf("GetExecutionModel() error = %v", err)
	}
	if model != spv.ExecutionModelFragment {
		t.Errorf("model = %v, want Fragment", model)
	}

	if err := c.SetEntryPoint("missing"); !ir.IsKind(err, ir.ErrUnknownEntryPoint) {
		t.Errorf("SetEntryPoint(missing) error = %v, want unknown entry point", err)
	}
}

func TestExecutionModes(t *testing.T) {
	c := mustCompile(t, loopShaderWords())

	if err := c.SetExecutionMode(spv.ExecutionModeLocalSize, 8, 4, 1); err != nil {
		t.Fatalf("SetExecutionMode() error = %v", err)
	}
	mask, err := c.GetExecutionModeMask()
	if err != nil {
		t.Fatal(err)
	}
	if mask&(1<<uint64(spv.ExecutionModeLocalSize)) == 0 {
		t.Error("LocalSize missing from execution mode mask")
	}
	for i, want := range []uint32{8, 4, 1} {
		got, err := c.GetExecutionModeArgument(spv.ExecutionModeLocalSize, uint32(i))
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("argument %d = %d, want %d", i, got, want)
		}
	}

	entry, err := c.CurrentEntryPoint()
	if err != nil {
		t.Fatal(err)
	}
	if entry.WorkgroupSize != [3]uint32{8, 4, 1} {
		t.Errorf("workgroup size = %v, want [8 4 1]", entry.WorkgroupSize)
	}

	if err := c.UnsetExecutionMode(spv.ExecutionModeLocalSize); err != nil {
		t.Fatal(err)
	}
	mask, _ = c.GetExecutionModeMask()
	if mask&(1<<uint64(spv.ExecutionModeLocalSize)) != 0 {
		t.Error("LocalSize still set after unset")
	}

	// Extension modes beyond the 64-bit mask still round-trip their
	// arguments.
	const highMode = spv.ExecutionMode(4446)
	if err := c.SetExecutionMode(highMode, 2); err != nil {
		t.Fatal(err)
	}
	got, err := c.GetExecutionModeArgument(highMode, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got != 2 {
		t.Errorf("high mode argument = %d, want 2", got)
	}
	if err := c.UnsetExecutionMode(highMode); err != nil {
		t.Fatal(err)
	}
	if got, _ := c.GetExecutionModeArgument(highMode, 0); got != 0 {
		t.Errorf("high mode argument after unset = %d, want 0", got)
	}
}

func TestDecorationSurface(t *testing.T) {
	c := mustCompile(t, fragmentShaderWords())

	if got := c.GetDecoration(7, spv.DecorationBinding); got != 1 {
		t.Errorf("Binding = %d, want 1", got)
	}
	c.SetDecoration(7, spv.DecorationBinding, 4)
	if got := c.GetDecoration(7, spv.DecorationBinding); got != 4 {
		t.Errorf("Binding after override = %d, want 4", got)
	}
	c.UnsetDecoration(7, spv.DecorationBinding)
	if c.HasDecoration(7, spv.DecorationBinding) {
		t.Error("Binding still present after unset")
	}

	if got := c.GetMemberDecoration(5, 1, spv.DecorationOffset); got != 16 {
		t.Errorf("member offset = %d, want 16", got)
	}
}

func TestToName(t *testing.T) {
	c := mustCompile(t, fragmentShaderWords())

	if got := c.ToName(7, false); got != "ubo" {
		t.Errorf("ToName(7) = %q, want ubo", got)
	}
	if got := c.ToName(11, false); got != "_11" {
		t.Errorf("ToName(unnamed) = %q, want _11", got)
	}
}

func TestToName_StructAlias(t *testing.T) {
	c := mustCompile(t, fragmentShaderWords())

	// Synthesize a second struct with the same shape as UBO and cache
	// the original; the clone must resolve to the cached name.
	clone := c.IncreaseBoundBy(1)
	if _, err := ir.Set(c.Module(), clone, &ir.SPIRType{
		BaseType:    ir.TypeStruct,
		MemberTypes: []ir.ID{4, 4},
	}); err != nil {
		t.Fatal(err)
	}
	c.SetName(clone, "UBO_copy")
	c.CacheGlobalStruct(5)

	if got := c.ToName(clone, true); got != "UBO" {
		t.Errorf("ToName(clone, allowAlias) = %q, want UBO", got)
	}
	if got := c.ToName(clone, false); got != "UBO_copy" {
		t.Errorf("ToName(clone, no alias) = %q, want UBO_copy", got)
	}
}

func TestUpdateNameCache(t *testing.T) {
	c := mustCompile(t, fragmentShaderWords())
	cache := make(map[string]struct{})

	if got := c.UpdateNameCache(cache, "color"); got != "color" {
		t.Errorf("first = %q, want color", got)
	}
	if got := c.UpdateNameCache(cache, "color"); got != "color_1" {
		t.Errorf("second = %q, want color_1", got)
	}
	if got := c.UpdateNameCache(cache, "color"); got != "color_2" {
		t.Errorf("third = %q, want color_2", got)
	}
	if got := c.UpdateNameCache(cache, ""); got != "" {
		t.Errorf("empty = %q, want empty", got)
	}
}

func TestIsImmutable(t *testing.T) {
	c := mustCompile(t, fragmentShaderWords())

	tests := []struct {
		id   ir.ID
		want bool
	}{
		{9, true},   // input variable
		{11, false}, // output variable
		{7, false},  // uniform block variable
		{15, true},  // constant
	}
	for _, tt := range tests {
		if got := c.IsImmutable(tt.id); got != tt.want {
			t.Errorf("IsImmutable(%d) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestExpressionType(t *testing.T) {
	c := mustCompile(t, fragmentShaderWords())

	typ, err := c.ExpressionType(15)
	if err != nil {
		t.Fatalf("ExpressionType(constant) error = %v", err)
	}
	if typ.BaseType != ir.TypeUInt {
		t.Errorf("constant type = %v, want uint", typ.BaseType)
	}

	if _, err := c.ExpressionType(17); !ir.IsKind(err, ir.ErrTypeMismatch) {
		t.Errorf("ExpressionType(untracked) error = %v, want type mismatch", err)
	}
}

func TestRemappedVariableState(t *testing.T) {
	c := mustCompile(t, fragmentShaderWords())

	if err := c.SetRemappedVariableState(9, true); err != nil {
		t.Fatal(err)
	}
	got, err := c.GetRemappedVariableState(9)
	if err != nil || !got {
		t.Errorf("GetRemappedVariableState = %v, %v, want true", got, err)
	}

	if err := c.SetSubpassInputRemappedComponents(9, 3); err != nil {
		t.Fatal(err)
	}
	n, err := c.GetSubpassInputRemappedComponents(9)
	if err != nil || n != 3 {
		t.Errorf("GetSubpassInputRemappedComponents = %d, %v, want 3", n, err)
	}

	if err := c.SetRemappedVariableState(5, true); !ir.IsKind(err, ir.ErrTypeMismatch) {
		t.Errorf("SetRemappedVariableState(type ID) error = %v, want type mismatch", err)
	}
}

func TestFlattenInterfaceBlock(t *testing.T) {
	c := mustCompile(t, fragmentShaderWords())

	if err := c.FlattenInterfaceBlock(7); err != nil {
		t.Fatalf("FlattenInterfaceBlock() error = %v", err)
	}

	v, err := ir.Get[*ir.SPIRVariable](c.Module(), 7)
	if err != nil {
		t.Fatal(err)
	}
	if !v.Flattened {
		t.Error("variable not marked flattened")
	}
	if v.Storage != spv.StorageClassUniformConstant {
		t.Errorf("storage = %v, want UniformConstant", v.Storage)
	}
	// The variable adopts the block's name.
	if got := c.GetName(7); got != "UBO" {
		t.Errorf("name = %q, want UBO", got)
	}

	flat, err := ir.Get[*ir.SPIRType](c.Module(), v.TypeID)
	if err != nil {
		t.Fatal(err)
	}
	if len(flat.Array) != 1 || flat.Array[0] != 2 || !flat.ArraySizeLiteral[0] {
		t.Errorf("flattened type array = %v, want one literal dimension of 2", flat.Array)
	}
}

func TestFlattenInterfaceBlock_Rejections(t *testing.T) {
	c := mustCompile(t, fragmentShaderWords())

	// Stage input: not a block struct.
	if err := c.FlattenInterfaceBlock(9); !ir.IsKind(err, ir.ErrUnsupported) {
		t.Errorf("FlattenInterfaceBlock(input) error = %v, want unsupported", err)
	}
}

func TestIncreaseBoundBy(t *testing.T) {
	c := mustCompile(t, fragmentShaderWords())
	before := c.Module().Bound

	first := c.IncreaseBoundBy(2)
	if uint32(first) != before {
		t.Errorf("first new ID = %d, want %d", first, before)
	}
	if c.Module().Bound != before+2 {
		t.Errorf("bound = %d, want %d", c.Module().Bound, before+2)
	}
}

func TestForceRecompile(t *testing.T) {
	c := mustCompile(t, fragmentShaderWords())
	if c.ForceRecompile() {
		t.Error("ForceRecompile true on a fresh compiler")
	}
	c.SetForceRecompile(true)
	if !c.ForceRecompile() {
		t.Error("SetForceRecompile had no effect")
	}
}
