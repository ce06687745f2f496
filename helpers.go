// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package spvcross

import (
	"strconv"

	"github.com/gogpu/spvcross/ir"
	"github.com/gogpu/spvcross/spv"
)

// IsScalar reports whether the type is a non-aggregate scalar.
func (c *Compiler) IsScalar(t *ir.SPIRType) bool {
	return t.VecSize <= 1 && t.Columns <= 1 &&
		t.BaseType != ir.TypeStruct && t.BaseType != ir.TypeUnknown
}

// IsVector reports whether the type is a vector.
func (c *Compiler) IsVector(t *ir.SPIRType) bool {
	return t.VecSize > 1 && t.Columns <= 1
}

// IsMatrix reports whether the type is a matrix.
func (c *Compiler) IsMatrix(t *ir.SPIRType) bool {
	return t.VecSize > 1 && t.Columns > 1
}

// IsBuiltinVariable reports whether a variable is built-in, either
// directly or through a struct type with a built-in member.
func (c *Compiler) IsBuiltinVariable(v *ir.SPIRVariable) bool {
	if meta := c.module.Meta(v.Self); meta != nil && meta.Decoration.Builtin {
		return true
	}
	// A struct with one built-in member makes the whole variable
	// built-in (gl_PerVertex style blocks).
	t, ok := ir.MaybeGet[*ir.SPIRType](c.module, v.TypeID)
	if !ok {
		return false
	}
	meta := c.module.Meta(t.Self)
	if meta == nil {
		return false
	}
	for i := range meta.Members {
		if meta.Members[i].Builtin {
			return true
		}
	}
	return false
}

// IsMemberBuiltin reports whether member index of a struct type is a
// built-in, and which one.
func (c *Compiler) IsMemberBuiltin(t *ir.SPIRType, index uint32) (spv.BuiltIn, bool) {
	meta := c.module.Meta(t.Self)
	if meta == nil || index >= uint32(len(meta.Members)) {
		return 0, false
	}
	d := &meta.Members[index]
	return d.BuiltIn, d.Builtin
}

// IsImmutable reports whether an ID can never be written through:
// constants, undefs, and variables in read-only storage classes.
func (c *Compiler) IsImmutable(id ir.ID) bool {
	if v, ok := ir.MaybeGet[*ir.SPIRVariable](c.module, id); ok {
		return v.Storage == spv.StorageClassInput ||
			v.Storage == spv.StorageClassUniformConstant ||
			v.Storage == spv.StorageClassPushConstant
	}
	if _, ok := ir.MaybeGet[*ir.SPIRConstant](c.module, id); ok {
		return true
	}
	if _, ok := ir.MaybeGet[*ir.SPIRUndef](c.module, id); ok {
		return true
	}
	return false
}

// ExpressionIsLValue reports whether an ID denotes writable storage.
func (c *Compiler) ExpressionIsLValue(id ir.ID) bool {
	if _, ok := ir.MaybeGet[*ir.SPIRVariable](c.module, id); ok {
		return !c.IsImmutable(id)
	}
	return false
}

// ExpressionType returns the type of an ID usable as an expression:
// the pointee type for variables, the declared type for constants and
// undefs.
func (c *Compiler) ExpressionType(id ir.ID) (*ir.SPIRType, error) {
	if v, ok := ir.MaybeGet[*ir.SPIRVariable](c.module, id); ok {
		return ir.Get[*ir.SPIRType](c.module, v.TypeID)
	}
	if k, ok := ir.MaybeGet[*ir.SPIRConstant](c.module, id); ok {
		return ir.Get[*ir.SPIRType](c.module, k.ConstantType)
	}
	if u, ok := ir.MaybeGet[*ir.SPIRUndef](c.module, id); ok {
		return ir.Get[*ir.SPIRType](c.module, u.BaseType)
	}
	return nil, ir.NewIDError(ir.ErrTypeMismatch, id, "ID has no expression type")
}

// MaybeGetBackingVariable resolves the variable backing an access
// chain: the ID itself when it is a variable, otherwise the variable a
// tracked chain expression was loaded from.
func (c *Compiler) MaybeGetBackingVariable(chain ir.ID) *ir.SPIRVariable {
	if v, ok := ir.MaybeGet[*ir.SPIRVariable](c.module, chain); ok {
		return v
	}
	if base, ok := c.expressionBases[chain]; ok {
		if v, ok := ir.MaybeGet[*ir.SPIRVariable](c.module, base); ok {
			return v
		}
	}
	return nil
}

// VariableStorageIsAliased reports whether writes through the variable
// may be observed through another binding.
func (c *Compiler) VariableStorageIsAliased(v *ir.SPIRVariable) bool {
	for _, id := range c.module.AliasedVariables {
		if id == v.Self {
			return true
		}
	}
	return false
}

// ToName resolves the display name of an ID: the declared name, or the
// deterministic fallback. With allowAlias, struct types resolve through
// the global struct cache so equivalent structs share one emitted name.
func (c *Compiler) ToName(id ir.ID, allowAlias bool) string {
	if allowAlias {
		if t, ok := ir.MaybeGet[*ir.SPIRType](c.module, id); ok && t.BaseType == ir.TypeStruct {
			if alias, ok := c.FindLogicallyEquivalentStruct(t); ok && alias != id {
				return c.ToName(alias, false)
			}
		}
	}
	if name := c.module.Name(id); name != "" {
		return name
	}
	return c.module.FallbackName(id)
}

// CacheGlobalStruct records a struct type as emitted so later
// logically equivalent structs alias it. Insertion order is preserved;
// alias choice must not depend on map iteration order.
func (c *Compiler) CacheGlobalStruct(id ir.ID) {
	for _, cached := range c.globalStructCache {
		if cached == id {
			return
		}
	}
	c.globalStructCache = append(c.globalStructCache, id)
}

// FindLogicallyEquivalentStruct scans the global struct cache in
// insertion order for a struct equivalent to t.
func (c *Compiler) FindLogicallyEquivalentStruct(t *ir.SPIRType) (ir.ID, bool) {
	for _, cached := range c.globalStructCache {
		other, ok := ir.MaybeGet[*ir.SPIRType](c.module, cached)
		if !ok {
			continue
		}
		if c.TypesAreLogicallyEquivalent(t, other) {
			return cached, true
		}
	}
	return 0, false
}

// TypesAreLogicallyEquivalent reports whether two types have the same
// shape member-by-member, ignoring their IDs and names.
func (c *Compiler) TypesAreLogicallyEquivalent(a, b *ir.SPIRType) bool {
	if a.BaseType != b.BaseType || a.Width != b.Width ||
		a.VecSize != b.VecSize || a.Columns != b.Columns {
		return false
	}
	if len(a.Array) != len(b.Array) || len(a.MemberTypes) != len(b.MemberTypes) {
		return false
	}
	for i := range a.Array {
		if a.Array[i] != b.Array[i] || a.ArraySizeLiteral[i] != b.ArraySizeLiteral[i] {
			return false
		}
	}
	for i := range a.MemberTypes {
		ma, oka := ir.MaybeGet[*ir.SPIRType](c.module, a.MemberTypes[i])
		mb, okb := ir.MaybeGet[*ir.SPIRType](c.module, b.MemberTypes[i])
		if !oka || !okb {
			return a.MemberTypes[i] == b.MemberTypes[i]
		}
		if !c.TypesAreLogicallyEquivalent(ma, mb) {
			return false
		}
	}
	return true
}

// UpdateNameCache makes name unique within cache by suffixing a
// counter, records the result, and returns it. Empty names pass
// through untouched.
func (c *Compiler) UpdateNameCache(cache map[string]struct{}, name string) string {
	if name == "" {
		return name
	}
	if _, taken := cache[name]; !taken {
		cache[name] = struct{}{}
		return name
	}
	for i := 1; ; i++ {
		candidate := name + "_" + strconv.Itoa(i)
		if _, taken := cache[candidate]; !taken {
			cache[candidate] = struct{}{}
			return candidate
		}
	}
}

// FlattenInterfaceBlock rewrites a uniform block variable whose members
// all share one non-composite type into a plain array of that type, for
// targets without interface blocks. The variable adopts the block name.
func (c *Compiler) FlattenInterfaceBlock(id ir.ID) error {
	v, err := ir.Get[*ir.SPIRVariable](c.module, id)
	if err != nil {
		return err
	}
	t, err := ir.Get[*ir.SPIRType](c.module, v.TypeID)
	if err != nil {
		return err
	}
	if len(t.Array) != 0 {
		return ir.NewIDError(ir.ErrUnsupported, id, "cannot flatten an array of blocks")
	}
	if t.BaseType != ir.TypeStruct {
		return ir.NewIDError(ir.ErrUnsupported, id, "variable type is not a struct")
	}
	if !c.module.HasDecoration(t.Self, spv.DecorationBlock) {
		return ir.NewIDError(ir.ErrUnsupported, id, "struct is not a block")
	}
	if len(t.MemberTypes) == 0 {
		return ir.NewIDError(ir.ErrUnsupported, id, "block has no members")
	}

	first := t.MemberTypes[0]
	for _, m := range t.MemberTypes {
		if m != first {
			return ir.NewIDError(ir.ErrUnsupported, id, "block member types differ")
		}
	}
	mtype, err := ir.Get[*ir.SPIRType](c.module, first)
	if err != nil {
		return err
	}
	if len(mtype.Array) != 0 {
		return ir.NewIDError(ir.ErrUnsupported, id, "block member type cannot be an array")
	}
	if mtype.BaseType == ir.TypeStruct {
		return ir.NewIDError(ir.ErrUnsupported, id, "block member type cannot be a struct")
	}

	// The flattened uniform keeps the externally visible block name.
	c.module.SetName(v.Self, c.module.Name(t.Self))

	mtype.Array = []uint32{uint32(len(t.MemberTypes))}
	mtype.ArraySizeLiteral = []bool{true}

	v.TypeID = first
	if v.Storage == spv.StorageClassUniform {
		v.Storage = spv.StorageClassUniformConstant
	}
	v.Flattened = true
	return nil
}
