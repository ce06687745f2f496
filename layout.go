// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package spvcross

import (
	"fmt"

	"github.com/gogpu/spvcross/ir"
	"github.com/gogpu/spvcross/spv"
)

// GetDeclaredStructSize returns the byte size a buffer declaration of t
// occupies. The size runs to the end of the last member; trailing
// padding to the struct's alignment is not included.
func (c *Compiler) GetDeclaredStructSize(t *ir.SPIRType) (uint32, error) {
	if t.BaseType != ir.TypeStruct {
		return 0, ir.NewIDError(ir.ErrLayout, t.Self, "size query on a non-struct type")
	}
	if len(t.MemberTypes) == 0 {
		return 0, nil
	}
	last := uint32(len(t.MemberTypes) - 1)
	offset, err := c.TypeStructMemberOffset(t, last)
	if err != nil {
		return 0, err
	}
	size, err := c.GetDeclaredStructMemberSize(t, last)
	if err != nil {
		return 0, err
	}
	return offset + size, nil
}

// GetDeclaredStructMemberSize returns the byte size of one member of a
// buffer struct. A runtime-sized array member reports size zero.
func (c *Compiler) GetDeclaredStructMemberSize(t *ir.SPIRType, index uint32) (uint32, error) {
	member, err := c.memberType(t, index)
	if err != nil {
		return 0, err
	}

	switch member.BaseType {
	case ir.TypeUnknown, ir.TypeVoid, ir.TypeBool,
		ir.TypeAtomicCounter, ir.TypeImage, ir.TypeSampledImage, ir.TypeSampler:
		return 0, ir.NewIDError(ir.ErrLayout, member.Self, "size query on a type with opaque size")
	}

	if len(member.Array) != 0 {
		count := member.Array[len(member.Array)-1]
		if count == 0 && member.ArraySizeLiteral[len(member.Array)-1] {
			// Runtime-sized tail: extent is known only at runtime.
			return 0, nil
		}
		stride, err := c.TypeStructMemberArrayStride(t, index)
		if err != nil {
			return 0, err
		}
		return stride * count, nil
	}

	if member.BaseType == ir.TypeStruct {
		return c.GetDeclaredStructSize(member)
	}

	componentSize := member.Width / 8
	if member.Columns <= 1 {
		return member.VecSize * componentSize, nil
	}

	// Matrices are sized by stride times the count of stride-major
	// units: rows for row-major, columns otherwise.
	stride, err := c.TypeStructMemberMatrixStride(t, index)
	if err != nil {
		return 0, err
	}
	if c.module.HasMemberDecoration(t.Self, index, spv.DecorationRowMajor) {
		return stride * member.VecSize, nil
	}
	return stride * member.Columns, nil
}

// TypeStructMemberOffset returns the byte offset of one member of a
// buffer struct. An explicit Offset decoration wins; otherwise offsets
// accumulate under natural alignment from the last explicit one.
func (c *Compiler) TypeStructMemberOffset(t *ir.SPIRType, index uint32) (uint32, error) {
	if index >= uint32(len(t.MemberTypes)) {
		return 0, ir.NewIDError(ir.ErrLayout, t.Self,
			fmt.Sprintf("member index %d out of range", index))
	}
	if c.module.HasMemberDecoration(t.Self, index, spv.DecorationOffset) {
		return c.module.GetMemberDecoration(t.Self, index, spv.DecorationOffset), nil
	}

	var offset uint32
	for i := uint32(0); i <= index; i++ {
		member, err := c.memberType(t, i)
		if err != nil {
			return 0, err
		}
		if c.module.HasMemberDecoration(t.Self, i, spv.DecorationOffset) {
			offset = c.module.GetMemberDecoration(t.Self, i, spv.DecorationOffset)
		} else {
			align, err := c.naturalAlignment(member)
			if err != nil {
				return 0, ir.NewIDError(ir.ErrLayout, t.Self,
					fmt.Sprintf("cannot derive offset of member %d: %v", i, err))
			}
			offset = alignTo(offset, align)
		}
		if i == index {
			return offset, nil
		}

		size, err := c.GetDeclaredStructMemberSize(t, i)
		if err != nil {
			return 0, err
		}
		if size == 0 && len(member.Array) != 0 {
			return 0, ir.NewIDError(ir.ErrLayout, t.Self,
				fmt.Sprintf("runtime-sized array at member %d blocks later offsets", i))
		}
		offset += size
	}
	return offset, nil
}

// TypeStructMemberArrayStride returns the declared ArrayStride of an
// array member. The decoration lives on the array type, not on the
// containing struct's member.
func (c *Compiler) TypeStructMemberArrayStride(t *ir.SPIRType, index uint32) (uint32, error) {
	if index >= uint32(len(t.MemberTypes)) {
		return 0, ir.NewIDError(ir.ErrLayout, t.Self,
			fmt.Sprintf("member index %d out of range", index))
	}
	arrayTypeID := t.MemberTypes[index]
	if c.module.HasDecoration(arrayTypeID, spv.DecorationArrayStride) {
		return c.module.GetDecoration(arrayTypeID, spv.DecorationArrayStride), nil
	}

	// No explicit stride: fall back to the element's natural size
	// rounded to a 16 byte slot.
	member, err := c.memberType(t, index)
	if err != nil {
		return 0, err
	}
	element := *member
	element.Array = nil
	element.ArraySizeLiteral = nil
	size, err := c.naturalSize(&element)
	if err != nil {
		return 0, ir.NewIDError(ir.ErrLayout, t.Self,
			fmt.Sprintf("cannot derive array stride of member %d: %v", index, err))
	}
	return alignTo(size, 16), nil
}

// TypeStructMemberMatrixStride returns the declared MatrixStride of a
// matrix member, falling back to the natural column/row vector slot.
func (c *Compiler) TypeStructMemberMatrixStride(t *ir.SPIRType, index uint32) (uint32, error) {
	if index >= uint32(len(t.MemberTypes)) {
		return 0, ir.NewIDError(ir.ErrLayout, t.Self,
			fmt.Sprintf("member index %d out of range", index))
	}
	if c.module.HasMemberDecoration(t.Self, index, spv.DecorationMatrixStride) {
		return c.module.GetMemberDecoration(t.Self, index, spv.DecorationMatrixStride), nil
	}
	member, err := c.memberType(t, index)
	if err != nil {
		return 0, err
	}
	if member.Columns <= 1 {
		return 0, ir.NewIDError(ir.ErrLayout, t.Self,
			fmt.Sprintf("matrix stride query on non-matrix member %d", index))
	}
	componentSize := member.Width / 8
	return alignTo(member.VecSize*componentSize, vectorAlignment(member.VecSize, componentSize)), nil
}

func (c *Compiler) memberType(t *ir.SPIRType, index uint32) (*ir.SPIRType, error) {
	if t.BaseType != ir.TypeStruct {
		return nil, ir.NewIDError(ir.ErrLayout, t.Self, "member query on a non-struct type")
	}
	if index >= uint32(len(t.MemberTypes)) {
		return nil, ir.NewIDError(ir.ErrLayout, t.Self,
			fmt.Sprintf("member index %d out of range", index))
	}
	return ir.Get[*ir.SPIRType](c.module, t.MemberTypes[index])
}

// naturalAlignment returns the alignment a member assumes when no
// explicit Offset decoration pins it down. Vectors round up to the
// power-of-two slot covering them; arrays, structs and matrices take
// 16 byte slots.
func (c *Compiler) naturalAlignment(t *ir.SPIRType) (uint32, error) {
	switch t.BaseType {
	case ir.TypeUnknown, ir.TypeVoid, ir.TypeBool,
		ir.TypeAtomicCounter, ir.TypeImage, ir.TypeSampledImage, ir.TypeSampler:
		return 0, fmt.Errorf("type has no buffer alignment")
	}
	if len(t.Array) != 0 || t.BaseType == ir.TypeStruct || t.Columns > 1 {
		return 16, nil
	}
	return vectorAlignment(t.VecSize, t.Width/8), nil
}

// naturalSize returns the unpadded size of a non-array member under
// natural layout.
func (c *Compiler) naturalSize(t *ir.SPIRType) (uint32, error) {
	switch t.BaseType {
	case ir.TypeUnknown, ir.TypeVoid, ir.TypeBool,
		ir.TypeAtomicCounter, ir.TypeImage, ir.TypeSampledImage, ir.TypeSampler:
		return 0, fmt.Errorf("type has no buffer size")
	}
	if t.BaseType == ir.TypeStruct {
		return c.GetDeclaredStructSize(t)
	}
	componentSize := t.Width / 8
	if t.Columns > 1 {
		return t.Columns * alignTo(t.VecSize*componentSize, 16), nil
	}
	return t.VecSize * componentSize, nil
}

func vectorAlignment(vecSize, componentSize uint32) uint32 {
	switch vecSize {
	case 1:
		return componentSize
	case 2:
		return 2 * componentSize
	default:
		// vec3 rounds up to the vec4 slot.
		return 4 * componentSize
	}
}

func alignTo(offset, align uint32) uint32 {
	if align == 0 {
		return offset
	}
	return (offset + align - 1) / align * align
}
