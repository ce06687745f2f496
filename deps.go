// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package spvcross

import (
	"github.com/gogpu/spvcross/ir"
	"github.com/gogpu/spvcross/spv"
)

// RegisterRead records expr as derived from the variable backing chain.
// Forwarded reads are consumed exactly once and never cached, so they
// create no durable dependency.
func (c *Compiler) RegisterRead(expr, chain ir.ID, forwarded bool) {
	v := c.MaybeGetBackingVariable(chain)
	if v == nil {
		return
	}
	c.expressionBases[expr] = v.Self
	if !forwarded {
		v.Dependees = append(v.Dependees, expr)
	}
}

// RegisterWrite invalidates every cached expression dependent on the
// variable backing chain. A write through an aliased binding can be
// observed through every other alias, so those dependents are flushed
// too.
func (c *Compiler) RegisterWrite(chain ir.ID) {
	v := c.MaybeGetBackingVariable(chain)
	if v == nil {
		return
	}
	c.flushDependees(v)
	if c.VariableStorageIsAliased(v) {
		c.FlushAllAliasedVariables()
	}
}

// flushDependees moves every expression derived from v into the
// invalid set and drops the dependency list.
func (c *Compiler) flushDependees(v *ir.SPIRVariable) {
	for _, expr := range v.Dependees {
		c.invalidExpressions[expr] = struct{}{}
	}
	v.Dependees = v.Dependees[:0]
}

// FlushAllActiveVariables invalidates cached expressions for every
// variable live at a control-flow join. Cached values are only valid
// along the straight-line path they were computed on. Locals and
// parameters of fn are included when fn is non-nil.
func (c *Compiler) FlushAllActiveVariables(fn *ir.SPIRFunction) {
	if fn != nil {
		for _, id := range fn.LocalVariables {
			if v, ok := ir.MaybeGet[*ir.SPIRVariable](c.module, id); ok {
				c.flushDependees(v)
			}
		}
		for _, param := range fn.Parameters {
			if v, ok := ir.MaybeGet[*ir.SPIRVariable](c.module, param.ID); ok {
				c.flushDependees(v)
			}
		}
	}
	for _, id := range c.module.GlobalVariables {
		if v, ok := ir.MaybeGet[*ir.SPIRVariable](c.module, id); ok {
			c.flushDependees(v)
		}
	}
	c.FlushAllAliasedVariables()
}

// FlushAllAtomicCapableVariables invalidates every global that could be
// the target of an atomic. Atomics may be mutated concurrently and are
// never cacheable across a control-flow or call boundary.
func (c *Compiler) FlushAllAtomicCapableVariables() {
	for _, id := range c.module.GlobalVariables {
		v, ok := ir.MaybeGet[*ir.SPIRVariable](c.module, id)
		if ok && c.variableIsAtomicCapable(v) {
			c.flushDependees(v)
		}
	}
	c.FlushAllAliasedVariables()
}

// variableIsAtomicCapable reports whether atomics can target v: shared
// workgroup memory, SSBO-style blocks, storage images and atomic
// counters. Read-only storage never needs an atomic flush.
func (c *Compiler) variableIsAtomicCapable(v *ir.SPIRVariable) bool {
	switch v.Storage {
	case spv.StorageClassWorkgroup, spv.StorageClassStorageBuffer, spv.StorageClassAtomicCounter:
		return true
	}
	t, ok := ir.MaybeGet[*ir.SPIRType](c.module, v.TypeID)
	if !ok {
		return false
	}
	if c.module.HasDecoration(t.Self, spv.DecorationBufferBlock) {
		return true
	}
	return t.BaseType == ir.TypeAtomicCounter ||
		(t.BaseType == ir.TypeImage && t.Image.Sampled == 2)
}

// FlushAllAliasedVariables invalidates dependents of every variable in
// the module's aliasing relation.
func (c *Compiler) FlushAllAliasedVariables() {
	for _, id := range c.module.AliasedVariables {
		if v, ok := ir.MaybeGet[*ir.SPIRVariable](c.module, id); ok {
			c.flushDependees(v)
		}
	}
}

// IsExpressionInvalid reports whether expr must be recomputed before
// reuse.
func (c *Compiler) IsExpressionInvalid(expr ir.ID) bool {
	_, ok := c.invalidExpressions[expr]
	return ok
}

// InvalidateExpression forces expr out of the reusable set.
func (c *Compiler) InvalidateExpression(expr ir.ID) {
	c.invalidExpressions[expr] = struct{}{}
}

// RevalidateExpression marks expr as recomputed and reusable again.
func (c *Compiler) RevalidateExpression(expr ir.ID) {
	delete(c.invalidExpressions, expr)
}

// InheritExpressionDependencies makes dst depend on everything src
// depends on, so invalidating src's sources also invalidates dst.
func (c *Compiler) InheritExpressionDependencies(dst, src ir.ID) {
	base, ok := c.expressionBases[src]
	if !ok {
		return
	}
	c.expressionBases[dst] = base
	if v, ok := ir.MaybeGet[*ir.SPIRVariable](c.module, base); ok {
		v.Dependees = append(v.Dependees, dst)
	}
}

// RegisterGlobalReadDependenciesBlock makes id depend on every
// non-local variable the block loads from, directly or through calls.
// Mutable global state read inside a called function invalidates the
// call result just like a direct read would.
func (c *Compiler) RegisterGlobalReadDependenciesBlock(block *ir.SPIRBlock, id ir.ID) {
	for _, instr := range block.Ops {
		ops, err := c.module.Stream(instr)
		if err != nil {
			continue
		}
		switch instr.Op {
		case spv.OpFunctionCall:
			if len(ops) < 3 {
				continue
			}
			if callee, ok := ir.MaybeGet[*ir.SPIRFunction](c.module, ir.ID(ops[2])); ok {
				c.RegisterGlobalReadDependencies(callee, id)
			}

		case spv.OpLoad, spv.OpImageRead:
			if len(ops) < 3 {
				continue
			}
			v := c.MaybeGetBackingVariable(ir.ID(ops[2]))
			if v == nil || v.Storage == spv.StorageClassFunction {
				continue
			}
			t, ok := ir.MaybeGet[*ir.SPIRType](c.module, v.TypeID)
			if !ok {
				continue
			}
			// Subpass inputs are immutable for the frame; reads from
			// them never go stale.
			if t.BaseType == ir.TypeImage && t.Image.Dim == spv.DimSubpassData {
				continue
			}
			v.Dependees = append(v.Dependees, id)
		}
	}
}

// RegisterGlobalReadDependencies applies the block-level registration
// to every block of fn.
func (c *Compiler) RegisterGlobalReadDependencies(fn *ir.SPIRFunction, id ir.ID) {
	for _, bid := range fn.Blocks {
		if block, ok := ir.MaybeGet[*ir.SPIRBlock](c.module, bid); ok {
			c.RegisterGlobalReadDependenciesBlock(block, id)
		}
	}
}
