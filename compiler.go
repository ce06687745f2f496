// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package spvcross reconstructs a typed, ID-addressed program graph
// from a SPIR-V word stream and exposes the reflection, control-flow
// and dependency analyses that code-generating backends build on.
//
// A Compiler owns one parsed module. It is not safe for concurrent
// mutation; reflection results are deterministic for a fixed input and
// a fixed current entry point.
//
// Example:
//
//	c, err := spvcross.NewCompiler(words)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, err := c.GetShaderResources()
package spvcross

import (
	"github.com/rs/zerolog"

	"github.com/gogpu/spvcross/ir"
	"github.com/gogpu/spvcross/parser"
	"github.com/gogpu/spvcross/spv"
)

// Compiler owns a parsed module and the analyses over it. Backends
// embed Compiler and override Compile.
type Compiler struct {
	module *ir.Module
	log    zerolog.Logger

	// entryPoint is the current entry point's function ID; zero when
	// the module declares none.
	entryPoint ir.ID

	// Block classification sets, membership-tested by hash, populated
	// per function after parse. See cfg.go.
	loopBlocks              map[ir.ID]struct{}
	continueBlocks          map[ir.ID]struct{}
	loopMergeTargets        map[ir.ID]struct{}
	selectionMergeTargets   map[ir.ID]struct{}
	multiselectMergeTargets map[ir.ID]struct{}

	// continueToHeader maps a continue block to its loop header.
	continueToHeader map[ir.ID]ir.ID

	// Dependency tracking. See deps.go.
	invalidExpressions map[ir.ID]struct{}
	expressionBases    map[ir.ID]ir.ID

	// globalStructCache is insertion-ordered so alias choice between
	// logically equivalent structs is reproducible across runs.
	globalStructCache []ir.ID

	forceRecompile bool
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithLogger attaches a logger; analyses trace at debug level.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Compiler) { c.log = log }
}

// NewCompiler parses a SPIR-V word stream and prepares the analyses.
// The first entry point declared in the module becomes current.
func NewCompiler(words []uint32, opts ...Option) (*Compiler, error) {
	c := &Compiler{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(c)
	}

	module, err := parser.New(parser.WithLogger(c.log)).Parse(words)
	if err != nil {
		return nil, err
	}
	c.module = module

	if len(module.EntryPointOrder) > 0 {
		c.entryPoint = module.EntryPointOrder[0]
	}

	c.invalidExpressions = make(map[ir.ID]struct{})
	c.expressionBases = make(map[ir.ID]ir.ID)
	c.classifyBlocks()
	return c, nil
}

// Module exposes the underlying IR for backends and tooling.
func (c *Compiler) Module() *ir.Module {
	return c.module
}

// Compile disassembles the module into target-language source.
// This layer has no target language; backends embed Compiler and
// override this method.
func (c *Compiler) Compile() (string, error) {
	return "", ir.NewError(ir.ErrUnsupported, "no backend bound to this compiler")
}

// ForceRecompile requests another emission pass; backends set this when
// restructuring changed the IR mid-emit.
func (c *Compiler) ForceRecompile() bool     { return c.forceRecompile }
func (c *Compiler) SetForceRecompile(v bool) { c.forceRecompile = v }

// IncreaseBoundBy extends the ID space, returning the first new ID.
// Backends use this to synthesize helper IDs.
func (c *Compiler) IncreaseBoundBy(incr uint32) ir.ID {
	return c.module.IncreaseBoundBy(incr)
}

// GetName returns the declared name of an ID, empty when none.
func (c *Compiler) GetName(id ir.ID) string { return c.module.Name(id) }

// SetName overrides the declared name of an ID. Names beginning with
// underscores are reserved by the implementation.
func (c *Compiler) SetName(id ir.ID, name string) { c.module.SetName(id, name) }

// GetFallbackName returns the deterministic identifier used when an ID
// has no declared name.
func (c *Compiler) GetFallbackName(id ir.ID) string { return c.module.FallbackName(id) }

// GetFallbackMemberName returns the deterministic identifier for an
// unnamed struct member.
func (c *Compiler) GetFallbackMemberName(index uint32) string {
	return c.module.FallbackMemberName(index)
}

// SetDecoration applies a decoration to an ID.
func (c *Compiler) SetDecoration(id ir.ID, decoration spv.Decoration, argument uint32) {
	c.module.SetDecoration(id, decoration, argument)
}

// GetDecoration returns the argument of a decoration on an ID, zero
// when absent.
func (c *Compiler) GetDecoration(id ir.ID, decoration spv.Decoration) uint32 {
	return c.module.GetDecoration(id, decoration)
}

// GetDecorationMask returns the decoration bitmask of an ID.
func (c *Compiler) GetDecorationMask(id ir.ID) uint64 {
	return c.module.DecorationMask(id)
}

// HasDecoration reports whether a decoration is applied to an ID.
func (c *Compiler) HasDecoration(id ir.ID, decoration spv.Decoration) bool {
	return c.module.HasDecoration(id, decoration)
}

// UnsetDecoration removes a decoration from an ID.
func (c *Compiler) UnsetDecoration(id ir.ID, decoration spv.Decoration) {
	c.module.UnsetDecoration(id, decoration)
}

// GetMemberName returns the declared name of a struct member.
func (c *Compiler) GetMemberName(id ir.ID, index uint32) string {
	return c.module.MemberName(id, index)
}

// SetMemberName sets the identifier of a struct member.
func (c *Compiler) SetMemberName(id ir.ID, index uint32, name string) {
	c.module.SetMemberName(id, index, name)
}

// SetMemberDecoration applies a decoration to a struct member.
func (c *Compiler) SetMemberDecoration(id ir.ID, index uint32, decoration spv.Decoration, argument uint32) {
	c.module.SetMemberDecoration(id, index, decoration, argument)
}

// GetMemberDecoration returns the argument of a member decoration.
func (c *Compiler) GetMemberDecoration(id ir.ID, index uint32, decoration spv.Decoration) uint32 {
	return c.module.GetMemberDecoration(id, index, decoration)
}

// GetMemberDecorationMask returns the decoration bitmask of a member.
func (c *Compiler) GetMemberDecorationMask(id ir.ID, index uint32) uint64 {
	return c.module.MemberDecorationMask(id, index)
}

// UnsetMemberDecoration removes a decoration from a struct member.
func (c *Compiler) UnsetMemberDecoration(id ir.ID, index uint32, decoration spv.Decoration) {
	c.module.UnsetMemberDecoration(id, index, decoration)
}

// GetType returns the SPIRType bound to id.
func (c *Compiler) GetType(id ir.ID) (*ir.SPIRType, error) {
	return ir.Get[*ir.SPIRType](c.module, id)
}

// GetStorageClass returns the storage class of an OpVariable.
func (c *Compiler) GetStorageClass(id ir.ID) (spv.StorageClass, error) {
	v, err := ir.Get[*ir.SPIRVariable](c.module, id)
	if err != nil {
		return 0, err
	}
	return v.Storage, nil
}

// SetRemappedVariableState marks a variable as implementation-provided
// so a backend will not emit a declaration for it.
func (c *Compiler) SetRemappedVariableState(id ir.ID, remap bool) error {
	v, err := ir.Get[*ir.SPIRVariable](c.module, id)
	if err != nil {
		return err
	}
	v.RemappedVariable = remap
	return nil
}

// GetRemappedVariableState reports whether a variable is remapped.
func (c *Compiler) GetRemappedVariableState(id ir.ID) (bool, error) {
	v, err := ir.Get[*ir.SPIRVariable](c.module, id)
	if err != nil {
		return false, err
	}
	return v.RemappedVariable, nil
}

// SetSubpassInputRemappedComponents records the component count of a
// remapped subpass input; the backing type of subpass inputs is opaque
// so the count cannot be inferred.
func (c *Compiler) SetSubpassInputRemappedComponents(id ir.ID, components uint32) error {
	v, err := ir.Get[*ir.SPIRVariable](c.module, id)
	if err != nil {
		return err
	}
	v.RemappedComponents = components
	return nil
}

// GetSubpassInputRemappedComponents returns the recorded component
// count of a remapped subpass input.
func (c *Compiler) GetSubpassInputRemappedComponents(id ir.ID) (uint32, error) {
	v, err := ir.Get[*ir.SPIRVariable](c.module, id)
	if err != nil {
		return 0, err
	}
	return v.RemappedComponents, nil
}
