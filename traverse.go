// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package spvcross

import (
	"github.com/gogpu/spvcross/ir"
	"github.com/gogpu/spvcross/spv"
)

// OpcodeHandler inspects one instruction during a reachability walk.
// Returning false stops the walk. ops excludes the leading word-count
// and opcode word.
type OpcodeHandler func(op spv.Op, ops []uint32) bool

// TraverseAllReachableOpcodesBlock walks every instruction of a block,
// descending into called functions. The walk follows declaration
// order; it does not follow branch edges.
func (c *Compiler) TraverseAllReachableOpcodesBlock(block *ir.SPIRBlock, handler OpcodeHandler) bool {
	for _, instr := range block.Ops {
		ops, err := c.module.Stream(instr)
		if err != nil {
			return false
		}
		if !handler(instr.Op, ops) {
			return false
		}
		if instr.Op == spv.OpFunctionCall {
			if len(ops) < 3 {
				return false
			}
			callee, ok := ir.MaybeGet[*ir.SPIRFunction](c.module, ir.ID(ops[2]))
			if !ok {
				return false
			}
			if !c.TraverseAllReachableOpcodes(callee, handler) {
				return false
			}
		}
	}
	return true
}

// TraverseAllReachableOpcodes walks every instruction reachable from
// fn's blocks, descending into called functions.
func (c *Compiler) TraverseAllReachableOpcodes(fn *ir.SPIRFunction, handler OpcodeHandler) bool {
	for _, bid := range fn.Blocks {
		block, ok := ir.MaybeGet[*ir.SPIRBlock](c.module, bid)
		if !ok {
			return false
		}
		if !c.TraverseAllReachableOpcodesBlock(block, handler) {
			return false
		}
	}
	return true
}
