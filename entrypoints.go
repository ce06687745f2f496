// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package spvcross

import (
	"github.com/gogpu/spvcross/ir"
	"github.com/gogpu/spvcross/spv"
)

// GetEntryPoints enumerates entry point names in declaration order.
func (c *Compiler) GetEntryPoints() []string {
	names := make([]string, 0, len(c.module.EntryPointOrder))
	for _, id := range c.module.EntryPointOrder {
		names = append(names, c.module.EntryPoints[id].Name)
	}
	return names
}

// GetEntryPoint returns the entry point record for a name, allowing
// callers to poke around its interface and modes.
func (c *Compiler) GetEntryPoint(name string) (*ir.SPIREntryPoint, error) {
	for _, id := range c.module.EntryPointOrder {
		if entry := c.module.EntryPoints[id]; entry.Name == name {
			return entry, nil
		}
	}
	return nil, ir.NewError(ir.ErrUnknownEntryPoint, "entry point "+name+" does not exist")
}

// SetEntryPoint makes the named entry point current. Reflection and
// interface queries are defined relative to the current entry point.
func (c *Compiler) SetEntryPoint(name string) error {
	entry, err := c.GetEntryPoint(name)
	if err != nil {
		return err
	}
	c.entryPoint = entry.Self
	return nil
}

// CurrentEntryPoint returns the current entry point record; parsing a
// module with no OpEntryPoint is tolerated until this is called.
func (c *Compiler) CurrentEntryPoint() (*ir.SPIREntryPoint, error) {
	entry, ok := c.module.EntryPoints[c.entryPoint]
	if !ok {
		return nil, ir.NewError(ir.ErrUnknownEntryPoint, "module declares no entry point")
	}
	return entry, nil
}

// GetExecutionModel returns the current entry point's execution model.
func (c *Compiler) GetExecutionModel() (spv.ExecutionModel, error) {
	entry, err := c.CurrentEntryPoint()
	if err != nil {
		return 0, err
	}
	return entry.Model, nil
}

// GetExecutionModeMask returns the bitmask of execution modes declared
// on the current entry point. Only the first 64 modes are
// representable; query higher-valued extension modes through
// GetExecutionModeArgument.
func (c *Compiler) GetExecutionModeMask() (uint64, error) {
	entry, err := c.CurrentEntryPoint()
	if err != nil {
		return 0, err
	}
	return entry.ModeFlags, nil
}

// SetExecutionMode declares or overrides an execution mode with up to
// three positional arguments, effectively injecting OpExecutionMode.
func (c *Compiler) SetExecutionMode(mode spv.ExecutionMode, args ...uint32) error {
	entry, err := c.CurrentEntryPoint()
	if err != nil {
		return err
	}
	var packed [3]uint32
	for i := 0; i < len(args) && i < 3; i++ {
		packed[i] = args[i]
	}
	if mode < 64 {
		entry.ModeFlags |= 1 << uint64(mode)
	}
	entry.ModeArgs[mode] = packed
	if mode == spv.ExecutionModeLocalSize {
		entry.WorkgroupSize = packed
	}
	return nil
}

// UnsetExecutionMode removes an execution mode from the current entry
// point.
func (c *Compiler) UnsetExecutionMode(mode spv.ExecutionMode) error {
	entry, err := c.CurrentEntryPoint()
	if err != nil {
		return err
	}
	if mode < 64 {
		entry.ModeFlags &^= 1 << uint64(mode)
	}
	delete(entry.ModeArgs, mode)
	if mode == spv.ExecutionModeLocalSize {
		entry.WorkgroupSize = [3]uint32{}
	}
	return nil
}

// GetExecutionModeArgument returns one argument of an execution mode.
// For LocalSize the index selects the dimension (X=0, Y=1, Z=2); modes
// without arguments yield zero.
func (c *Compiler) GetExecutionModeArgument(mode spv.ExecutionMode, index uint32) (uint32, error) {
	entry, err := c.CurrentEntryPoint()
	if err != nil {
		return 0, err
	}
	packed, ok := entry.ModeArgs[mode]
	if !ok || index >= 3 {
		return 0, nil
	}
	return packed[index], nil
}

// InterfaceVariableExistsInEntryPoint reports whether an Input or
// Output variable belongs to the current entry point's interface.
func (c *Compiler) InterfaceVariableExistsInEntryPoint(id ir.ID) (bool, error) {
	entry, err := c.CurrentEntryPoint()
	if err != nil {
		return false, err
	}
	for _, iface := range entry.InterfaceVariables {
		if iface == id {
			return true, nil
		}
	}
	return false, nil
}
