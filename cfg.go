// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package spvcross

import (
	"github.com/gogpu/spvcross/ir"
	"github.com/gogpu/spvcross/spv"
)

// LoopMethod selects a loop-shape detection strategy for
// BlockIsLoopCandidate.
type LoopMethod uint8

const (
	// MergeToSelect matches a loop header that immediately branches on
	// its condition, with the false edge leaving the loop.
	MergeToSelect LoopMethod = iota

	// MergeToDirect matches an empty loop header that only declares
	// the merge targets and branches to a condition block.
	MergeToDirect
)

// classifyBlocks derives the block classification sets from every
// function's merge declarations. Membership is hash-tested; nothing
// here produces observable ordering.
func (c *Compiler) classifyBlocks() {
	c.loopBlocks = make(map[ir.ID]struct{})
	c.continueBlocks = make(map[ir.ID]struct{})
	c.loopMergeTargets = make(map[ir.ID]struct{})
	c.selectionMergeTargets = make(map[ir.ID]struct{})
	c.multiselectMergeTargets = make(map[ir.ID]struct{})
	c.continueToHeader = make(map[ir.ID]ir.ID)

	for _, fid := range c.module.Functions {
		fn, ok := ir.MaybeGet[*ir.SPIRFunction](c.module, fid)
		if !ok {
			continue
		}
		for _, bid := range fn.Blocks {
			block, ok := ir.MaybeGet[*ir.SPIRBlock](c.module, bid)
			if !ok {
				continue
			}
			switch block.Merge {
			case ir.MergeLoop:
				c.loopBlocks[bid] = struct{}{}
				c.loopMergeTargets[block.MergeBlock] = struct{}{}
				c.continueBlocks[block.ContinueBlock] = struct{}{}
				c.continueToHeader[block.ContinueBlock] = bid
			case ir.MergeSelection:
				c.selectionMergeTargets[block.MergeBlock] = struct{}{}
				// A switch merge is also registered separately so
				// break/conditional classification can tell the two
				// apart.
				if block.Terminator == ir.TerminatorMultiSelect {
					c.multiselectMergeTargets[block.MergeBlock] = struct{}{}
				}
			}
		}
	}
}

// IsContinue reports whether a branch to next re-enters a loop's
// continue construct.
func (c *Compiler) IsContinue(next ir.ID) bool {
	_, ok := c.continueBlocks[next]
	return ok
}

// IsBreak reports whether a branch to next leaves a loop or a switch.
// Loop break and switch break share the same structural shape.
func (c *Compiler) IsBreak(next ir.ID) bool {
	if _, ok := c.loopMergeTargets[next]; ok {
		return true
	}
	_, ok := c.multiselectMergeTargets[next]
	return ok
}

// IsConditional reports whether a branch to next reconverges a plain
// selection. A switch merge never counts: switch break wins.
func (c *Compiler) IsConditional(next ir.ID) bool {
	if _, ok := c.multiselectMergeTargets[next]; ok {
		return false
	}
	_, ok := c.selectionMergeTargets[next]
	return ok
}

// IsLoopHeader reports whether the block declares a loop merge.
func (c *Compiler) IsLoopHeader(block ir.ID) bool {
	_, ok := c.loopBlocks[block]
	return ok
}

// ContinueBlockType classifies a loop's continue construct. The result
// decides how a backend can express the loop without goto.
func (c *Compiler) ContinueBlockType(block *ir.SPIRBlock) ir.ContinueBlockType {
	if block.ComplexContinue {
		return ir.ComplexLoop
	}

	// Older producers emit the loop header as its own continue target;
	// condition and continuation share one block.
	if block.Merge == ir.MergeLoop {
		return ir.WhileLoop
	}

	headerID, ok := c.continueToHeader[block.Self]
	if !ok {
		return ir.ContinueNone
	}
	header, ok := ir.MaybeGet[*ir.SPIRBlock](c.module, headerID)
	if !ok {
		return ir.ComplexLoop
	}

	// A continue block that does nothing but branch back to the header
	// degenerates into a for-loop increment slot.
	if block.Terminator == ir.TerminatorDirect && block.NextBlock == headerID && len(block.Ops) == 0 {
		return ir.ForLoop
	}

	// The condition check living in the continue block itself makes a
	// do-while: one edge re-enters the header, the other leaves
	// through the loop merge.
	if block.Merge == ir.MergeNone && block.Terminator == ir.TerminatorSelect {
		backEdge := block.TrueBlock == headerID && block.FalseBlock == header.MergeBlock
		inverted := block.FalseBlock == headerID && block.TrueBlock == header.MergeBlock
		if backEdge || inverted {
			return ir.DoWhileLoop
		}
	}

	// Continuation work before re-entering the header: while-shaped as
	// long as control gets back without further branching.
	if block.Terminator == ir.TerminatorDirect && block.NextBlock == headerID {
		return ir.WhileLoop
	}

	return ir.ComplexLoop
}

// BlockIsLoopCandidate reports whether a loop header matches the shape
// a backend can lower with the given method.
func (c *Compiler) BlockIsLoopCandidate(block *ir.SPIRBlock, method LoopMethod) bool {
	// Tried and failed before; don't fight the restructurer.
	if block.DisableBlockOptimization || block.ComplexContinue {
		return false
	}

	switch method {
	case MergeToSelect:
		return block.Terminator == ir.TerminatorSelect &&
			block.Merge == ir.MergeLoop &&
			block.TrueBlock != block.MergeBlock &&
			block.TrueBlock != block.Self &&
			block.FalseBlock == block.MergeBlock

	case MergeToDirect:
		if block.Terminator != ir.TerminatorDirect || block.Merge != ir.MergeLoop || len(block.Ops) != 0 {
			return false
		}
		child, ok := ir.MaybeGet[*ir.SPIRBlock](c.module, block.NextBlock)
		if !ok {
			return false
		}
		return child.Terminator == ir.TerminatorSelect &&
			child.Merge == ir.MergeNone &&
			child.FalseBlock == block.MergeBlock &&
			child.TrueBlock != block.MergeBlock &&
			child.TrueBlock != block.Self

	default:
		return false
	}
}

// ExecutionIsBranchless reports whether control flows from from to to
// through direct branches only.
func (c *Compiler) ExecutionIsBranchless(from, to *ir.SPIRBlock) bool {
	start := from
	for {
		if start.Self == to.Self {
			return true
		}
		if start.Terminator != ir.TerminatorDirect || start.Merge != ir.MergeNone {
			return false
		}
		next, ok := ir.MaybeGet[*ir.SPIRBlock](c.module, start.NextBlock)
		if !ok {
			return false
		}
		start = next
	}
}

// ExecutionIsNoop reports whether the range from from to to produces
// no observable work, enabling safe elision when restructuring.
func (c *Compiler) ExecutionIsNoop(from, to *ir.SPIRBlock) bool {
	if !c.ExecutionIsBranchless(from, to) {
		return false
	}
	start := from
	for {
		if start.Self == to.Self {
			return true
		}
		if len(start.Ops) != 0 {
			return false
		}
		next, ok := ir.MaybeGet[*ir.SPIRBlock](c.module, start.NextBlock)
		if !ok {
			return false
		}
		start = next
	}
}

// BlockIsOutsideFlowControlFromBlock reports whether to is reached
// after every structured construct open in from has reconverged.
func (c *Compiler) BlockIsOutsideFlowControlFromBlock(from, to *ir.SPIRBlock) bool {
	start := from
	visited := make(map[ir.ID]struct{})
	for {
		if start.Self == to.Self {
			return true
		}
		if _, seen := visited[start.Self]; seen {
			return false
		}
		visited[start.Self] = struct{}{}

		var next ir.ID
		switch {
		case start.Merge != ir.MergeNone:
			next = start.MergeBlock
		case start.Terminator == ir.TerminatorDirect:
			next = start.NextBlock
		default:
			return false
		}
		block, ok := ir.MaybeGet[*ir.SPIRBlock](c.module, next)
		if !ok {
			return false
		}
		start = block
	}
}

// BlockIsPure reports whether a block performs no writes outside
// function-local storage and calls only pure functions.
func (c *Compiler) BlockIsPure(block *ir.SPIRBlock) bool {
	for _, instr := range block.Ops {
		ops, err := c.module.Stream(instr)
		if err != nil {
			return false
		}
		switch instr.Op {
		case spv.OpFunctionCall:
			if len(ops) < 3 {
				return false
			}
			callee, ok := ir.MaybeGet[*ir.SPIRFunction](c.module, ir.ID(ops[2]))
			if !ok || !c.FunctionIsPure(callee) {
				return false
			}

		case spv.OpCopyMemory, spv.OpStore:
			if len(ops) < 1 {
				return false
			}
			if v := c.MaybeGetBackingVariable(ir.ID(ops[0])); v != nil && v.Storage != spv.StorageClassFunction {
				return false
			}

		case spv.OpImageWrite,
			spv.OpAtomicStore, spv.OpAtomicExchange, spv.OpAtomicCompareExchange,
			spv.OpAtomicIIncrement, spv.OpAtomicIDecrement,
			spv.OpAtomicIAdd, spv.OpAtomicISub,
			spv.OpAtomicSMin, spv.OpAtomicUMin,
			spv.OpAtomicSMax, spv.OpAtomicUMax,
			spv.OpAtomicAnd, spv.OpAtomicOr, spv.OpAtomicXor,
			spv.OpControlBarrier, spv.OpMemoryBarrier,
			spv.OpEmitVertex, spv.OpEndPrimitive:
			return false
		}
	}
	return true
}

// FunctionIsPure reports whether every block of the function is pure.
// Pure call results can be reused instead of re-invoking the function.
func (c *Compiler) FunctionIsPure(fn *ir.SPIRFunction) bool {
	if fn.PureAnalyzed {
		return fn.Pure
	}
	// Mark before descending so call cycles resolve conservatively.
	fn.PureAnalyzed = true
	fn.Pure = false

	for _, bid := range fn.Blocks {
		block, ok := ir.MaybeGet[*ir.SPIRBlock](c.module, bid)
		if !ok || !c.BlockIsPure(block) {
			return false
		}
		if block.Terminator == ir.TerminatorKill {
			return false
		}
	}
	fn.Pure = true
	return true
}
