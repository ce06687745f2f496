// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ir

import (
	"testing"

	"github.com/gogpu/spvcross/spv"
)

func TestDecoration_RoundTrip(t *testing.T) {
	m := NewModule(10)

	m.SetDecoration(4, spv.DecorationBinding, 7)
	if got := m.GetDecoration(4, spv.DecorationBinding); got != 7 {
		t.Errorf("GetDecoration = %d, want 7", got)
	}
	if !m.HasDecoration(4, spv.DecorationBinding) {
		t.Error("HasDecoration = false after set")
	}
	if mask := m.DecorationMask(4); mask&(1<<spv.DecorationBinding) == 0 {
		t.Errorf("mask = %#x, want Binding bit set", mask)
	}

	m.UnsetDecoration(4, spv.DecorationBinding)
	if m.HasDecoration(4, spv.DecorationBinding) {
		t.Error("HasDecoration = true after unset")
	}
	if got := m.GetDecoration(4, spv.DecorationBinding); got != 0 {
		t.Errorf("GetDecoration after unset = %d, want 0", got)
	}
}

func TestDecoration_FlagOnly(t *testing.T) {
	m := NewModule(10)
	m.SetDecoration(2, spv.DecorationBlock, 0)
	if !m.HasDecoration(2, spv.DecorationBlock) {
		t.Error("Block decoration not recorded")
	}
	if m.HasDecoration(2, spv.DecorationBufferBlock) {
		t.Error("unrelated decoration reported present")
	}
}

func TestDecoration_BeyondMaskRange(t *testing.T) {
	// Extension decorations such as NonUniform (5300) do not fit the
	// 64-bit mask and must still round-trip.
	const nonUniform = spv.Decoration(5300)

	m := NewModule(10)
	m.SetDecoration(4, nonUniform, 0)
	if !m.HasDecoration(4, nonUniform) {
		t.Error("HasDecoration = false for decoration beyond the mask")
	}
	m.UnsetDecoration(4, nonUniform)
	if m.HasDecoration(4, nonUniform) {
		t.Error("HasDecoration = true after unset")
	}

	m.SetMemberDecoration(4, 1, nonUniform, 9)
	if !m.HasMemberDecoration(4, 1, nonUniform) {
		t.Error("HasMemberDecoration = false for decoration beyond the mask")
	}
	if got := m.GetMemberDecoration(4, 1, nonUniform); got != 9 {
		t.Errorf("GetMemberDecoration = %d, want 9", got)
	}
	if m.HasMemberDecoration(4, 0, nonUniform) {
		t.Error("sibling member reported decorated")
	}
}

func TestName_RoundTrip(t *testing.T) {
	m := NewModule(10)
	if got := m.Name(3); got != "" {
		t.Errorf("Name(unset) = %q, want empty", got)
	}
	m.SetName(3, "position")
	if got := m.Name(3); got != "position" {
		t.Errorf("Name = %q, want position", got)
	}
	if got := m.FallbackName(3); got == "" {
		t.Error("FallbackName = empty, want deterministic identifier")
	}
	if m.FallbackName(3) != m.FallbackName(3) {
		t.Error("FallbackName not stable across calls")
	}
	if m.FallbackName(3) == m.FallbackName(4) {
		t.Error("FallbackName identical for distinct IDs")
	}
}

func TestMemberDecoration_RoundTrip(t *testing.T) {
	m := NewModule(10)

	m.SetMemberDecoration(5, 2, spv.DecorationOffset, 32)
	if got := m.GetMemberDecoration(5, 2, spv.DecorationOffset); got != 32 {
		t.Errorf("member offset = %d, want 32", got)
	}
	if !m.HasMemberDecoration(5, 2, spv.DecorationOffset) {
		t.Error("HasMemberDecoration = false after set")
	}
	// Sibling members are untouched.
	if m.HasMemberDecoration(5, 1, spv.DecorationOffset) {
		t.Error("decoration leaked to another member")
	}

	m.UnsetMemberDecoration(5, 2, spv.DecorationOffset)
	if m.HasMemberDecoration(5, 2, spv.DecorationOffset) {
		t.Error("HasMemberDecoration = true after unset")
	}
}

func TestMemberName(t *testing.T) {
	m := NewModule(10)
	m.SetMemberName(5, 3, "mvp")
	if got := m.MemberName(5, 3); got != "mvp" {
		t.Errorf("MemberName = %q, want mvp", got)
	}
	if got := m.MemberName(5, 0); got != "" {
		t.Errorf("MemberName(unset) = %q, want empty", got)
	}
	if got := m.FallbackMemberName(3); got == "" {
		t.Error("FallbackMemberName = empty, want deterministic identifier")
	}
}

func TestMeta_OutOfRange(t *testing.T) {
	m := NewModule(4)
	if m.Meta(9) != nil {
		t.Error("Meta(out of range) != nil")
	}
	// Setters on out-of-range IDs are silently ignored rather than
	// growing the table.
	m.SetName(9, "ghost")
	if got := m.Name(9); got != "" {
		t.Errorf("Name(out of range) = %q, want empty", got)
	}
}
