// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package spv

import "strconv"

var storageClassNames = map[StorageClass]string{
	StorageClassUniformConstant: "UniformConstant",
	StorageClassInput:           "Input",
	StorageClassUniform:         "Uniform",
	StorageClassOutput:          "Output",
	StorageClassWorkgroup:       "Workgroup",
	StorageClassCrossWorkgroup:  "CrossWorkgroup",
	StorageClassPrivate:         "Private",
	StorageClassFunction:        "Function",
	StorageClassGeneric:         "Generic",
	StorageClassPushConstant:    "PushConstant",
	StorageClassAtomicCounter:   "AtomicCounter",
	StorageClassImage:           "Image",
	StorageClassStorageBuffer:   "StorageBuffer",
}

// String returns the SPIR-V assembly name of the storage class.
func (s StorageClass) String() string {
	if name, ok := storageClassNames[s]; ok {
		return name
	}
	return "StorageClass(" + strconv.FormatUint(uint64(s), 10) + ")"
}

var executionModelNames = map[ExecutionModel]string{
	ExecutionModelVertex:                 "Vertex",
	ExecutionModelTessellationControl:    "TessellationControl",
	ExecutionModelTessellationEvaluation: "TessellationEvaluation",
	ExecutionModelGeometry:               "Geometry",
	ExecutionModelFragment:               "Fragment",
	ExecutionModelGLCompute:              "GLCompute",
	ExecutionModelKernel:                 "Kernel",
}

// String returns the SPIR-V assembly name of the execution model.
func (m ExecutionModel) String() string {
	if name, ok := executionModelNames[m]; ok {
		return name
	}
	return "ExecutionModel(" + strconv.FormatUint(uint64(m), 10) + ")"
}

var decorationNames = map[Decoration]string{
	DecorationRelaxedPrecision:     "RelaxedPrecision",
	DecorationSpecID:               "SpecId",
	DecorationBlock:                "Block",
	DecorationBufferBlock:          "BufferBlock",
	DecorationRowMajor:             "RowMajor",
	DecorationColMajor:             "ColMajor",
	DecorationArrayStride:          "ArrayStride",
	DecorationMatrixStride:         "MatrixStride",
	DecorationBuiltIn:              "BuiltIn",
	DecorationNoPerspective:        "NoPerspective",
	DecorationFlat:                 "Flat",
	DecorationPatch:                "Patch",
	DecorationCentroid:             "Centroid",
	DecorationSample:               "Sample",
	DecorationInvariant:            "Invariant",
	DecorationRestrict:             "Restrict",
	DecorationAliased:              "Aliased",
	DecorationVolatile:             "Volatile",
	DecorationCoherent:             "Coherent",
	DecorationNonWritable:          "NonWritable",
	DecorationNonReadable:          "NonReadable",
	DecorationUniform:              "Uniform",
	DecorationLocation:             "Location",
	DecorationComponent:            "Component",
	DecorationIndex:                "Index",
	DecorationBinding:              "Binding",
	DecorationDescriptorSet:        "DescriptorSet",
	DecorationOffset:               "Offset",
	DecorationNoContraction:        "NoContraction",
	DecorationInputAttachmentIndex: "InputAttachmentIndex",
	DecorationAlignment:            "Alignment",
}

// String returns the SPIR-V assembly name of the decoration.
func (d Decoration) String() string {
	if name, ok := decorationNames[d]; ok {
		return name
	}
	return "Decoration(" + strconv.FormatUint(uint64(d), 10) + ")"
}
