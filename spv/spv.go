// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package spv defines SPIR-V binary format constants: opcodes,
// decorations, storage classes, execution models and modes.
//
// The values follow the SPIR-V specification. Only the subset needed
// for parsing and reflection is named; unknown values still round-trip
// through the numeric types.
package spv

// MagicNumber identifies a SPIR-V binary module (first header word).
const MagicNumber = 0x07230203

// Op is a SPIR-V opcode, stored in the low 16 bits of an
// instruction's first word.
type Op uint16

// Opcodes used by the parser and the reflection traversals.
const (
	OpNop                   Op = 0
	OpUndef                 Op = 1
	OpSourceContinued       Op = 2
	OpSource                Op = 3
	OpSourceExtension       Op = 4
	OpName                  Op = 5
	OpMemberName            Op = 6
	OpString                Op = 7
	OpLine                  Op = 8
	OpExtension             Op = 10
	OpExtInstImport         Op = 11
	OpExtInst               Op = 12
	OpMemoryModel           Op = 14
	OpEntryPoint            Op = 15
	OpExecutionMode         Op = 16
	OpCapability            Op = 17
	OpTypeVoid              Op = 19
	OpTypeBool              Op = 20
	OpTypeInt               Op = 21
	OpTypeFloat             Op = 22
	OpTypeVector            Op = 23
	OpTypeMatrix            Op = 24
	OpTypeImage             Op = 25
	OpTypeSampler           Op = 26
	OpTypeSampledImage      Op = 27
	OpTypeArray             Op = 28
	OpTypeRuntimeArray      Op = 29
	OpTypeStruct            Op = 30
	OpTypeOpaque            Op = 31
	OpTypePointer           Op = 32
	OpTypeFunction          Op = 33
	OpConstantTrue          Op = 41
	OpConstantFalse         Op = 42
	OpConstant              Op = 43
	OpConstantComposite     Op = 44
	OpConstantSampler       Op = 45
	OpConstantNull          Op = 46
	OpSpecConstantTrue      Op = 48
	OpSpecConstantFalse     Op = 49
	OpSpecConstant          Op = 50
	OpSpecConstantComposite Op = 51
	OpSpecConstantOp        Op = 52
	OpFunction              Op = 54
	OpFunctionParameter     Op = 55
	OpFunctionEnd           Op = 56
	OpFunctionCall          Op = 57
	OpVariable              Op = 59
	OpImageTexelPointer     Op = 60
	OpLoad                  Op = 61
	OpStore                 Op = 62
	OpCopyMemory            Op = 63
	OpCopyMemorySized       Op = 64
	OpAccessChain           Op = 65
	OpInBoundsAccessChain   Op = 66
	OpPtrAccessChain        Op = 67
	OpArrayLength           Op = 68
	OpDecorate              Op = 71
	OpMemberDecorate        Op = 72
	OpDecorationGroup       Op = 73
	OpGroupDecorate         Op = 74
	OpGroupMemberDecorate   Op = 75
	OpVectorShuffle         Op = 79
	OpCompositeConstruct    Op = 80
	OpCompositeExtract      Op = 81
	OpCompositeInsert       Op = 82
	OpCopyObject            Op = 83
	OpSampledImage          Op = 86
	OpImageRead             Op = 98
	OpImageWrite            Op = 99
	OpEmitVertex            Op = 218
	OpEndPrimitive          Op = 219
	OpControlBarrier        Op = 224
	OpMemoryBarrier         Op = 225
	OpAtomicLoad            Op = 227
	OpAtomicStore           Op = 228
	OpAtomicExchange        Op = 229
	OpAtomicCompareExchange Op = 230
	OpAtomicIIncrement      Op = 232
	OpAtomicIDecrement      Op = 233
	OpAtomicIAdd            Op = 234
	OpAtomicISub            Op = 235
	OpAtomicSMin            Op = 236
	OpAtomicUMin            Op = 237
	OpAtomicSMax            Op = 238
	OpAtomicUMax            Op = 239
	OpAtomicAnd             Op = 240
	OpAtomicOr              Op = 241
	OpAtomicXor             Op = 242
	OpPhi                   Op = 245
	OpLoopMerge             Op = 246
	OpSelectionMerge        Op = 247
	OpLabel                 Op = 248
	OpBranch                Op = 249
	OpBranchConditional     Op = 250
	OpSwitch                Op = 251
	OpKill                  Op = 252
	OpReturn                Op = 253
	OpReturnValue           Op = 254
	OpUnreachable           Op = 255
)

// StorageClass identifies where an OpVariable's memory lives.
type StorageClass uint32

const (
	StorageClassUniformConstant StorageClass = 0
	StorageClassInput           StorageClass = 1
	StorageClassUniform         StorageClass = 2
	StorageClassOutput          StorageClass = 3
	StorageClassWorkgroup       StorageClass = 4
	StorageClassCrossWorkgroup  StorageClass = 5
	StorageClassPrivate         StorageClass = 6
	StorageClassFunction        StorageClass = 7
	StorageClassGeneric         StorageClass = 8
	StorageClassPushConstant    StorageClass = 9
	StorageClassAtomicCounter   StorageClass = 10
	StorageClassImage           StorageClass = 11
	StorageClassStorageBuffer   StorageClass = 12
)

// Decoration is an attribute attached to an ID or struct member.
type Decoration uint32

const (
	DecorationRelaxedPrecision     Decoration = 0
	DecorationSpecID               Decoration = 1
	DecorationBlock                Decoration = 2
	DecorationBufferBlock          Decoration = 3
	DecorationRowMajor             Decoration = 4
	DecorationColMajor             Decoration = 5
	DecorationArrayStride          Decoration = 6
	DecorationMatrixStride         Decoration = 7
	DecorationBuiltIn              Decoration = 11
	DecorationNoPerspective        Decoration = 13
	DecorationFlat                 Decoration = 14
	DecorationPatch                Decoration = 15
	DecorationCentroid             Decoration = 16
	DecorationSample               Decoration = 17
	DecorationInvariant            Decoration = 18
	DecorationRestrict             Decoration = 19
	DecorationAliased              Decoration = 20
	DecorationVolatile             Decoration = 21
	DecorationCoherent             Decoration = 23
	DecorationNonWritable          Decoration = 24
	DecorationNonReadable          Decoration = 25
	DecorationUniform              Decoration = 26
	DecorationLocation             Decoration = 30
	DecorationComponent            Decoration = 31
	DecorationIndex                Decoration = 32
	DecorationBinding              Decoration = 33
	DecorationDescriptorSet        Decoration = 34
	DecorationOffset               Decoration = 35
	DecorationXfbBuffer            Decoration = 36
	DecorationXfbStride            Decoration = 37
	DecorationNoContraction        Decoration = 42
	DecorationInputAttachmentIndex Decoration = 43
	DecorationAlignment            Decoration = 44
)

// ExecutionModel identifies the pipeline stage of an entry point.
type ExecutionModel uint32

const (
	ExecutionModelVertex                 ExecutionModel = 0
	ExecutionModelTessellationControl    ExecutionModel = 1
	ExecutionModelTessellationEvaluation ExecutionModel = 2
	ExecutionModelGeometry               ExecutionModel = 3
	ExecutionModelFragment               ExecutionModel = 4
	ExecutionModelGLCompute              ExecutionModel = 5
	ExecutionModelKernel                 ExecutionModel = 6
)

// ExecutionMode is an OpExecutionMode attribute of an entry point.
type ExecutionMode uint32

const (
	ExecutionModeInvocations         ExecutionMode = 0
	ExecutionModeSpacingEqual        ExecutionMode = 1
	ExecutionModePixelCenterInteger  ExecutionMode = 6
	ExecutionModeOriginUpperLeft     ExecutionMode = 7
	ExecutionModeOriginLowerLeft     ExecutionMode = 8
	ExecutionModeEarlyFragmentTests  ExecutionMode = 9
	ExecutionModeDepthReplacing      ExecutionMode = 12
	ExecutionModeDepthGreater        ExecutionMode = 14
	ExecutionModeDepthLess           ExecutionMode = 15
	ExecutionModeDepthUnchanged      ExecutionMode = 16
	ExecutionModeLocalSize           ExecutionMode = 17
	ExecutionModeLocalSizeHint       ExecutionMode = 18
	ExecutionModeTriangles           ExecutionMode = 22
	ExecutionModeQuads               ExecutionMode = 24
	ExecutionModeIsolines            ExecutionMode = 25
	ExecutionModeOutputVertices      ExecutionMode = 26
	ExecutionModeOutputPoints        ExecutionMode = 27
	ExecutionModeOutputLineStrip     ExecutionMode = 28
	ExecutionModeOutputTriangleStrip ExecutionMode = 29
)

// BuiltIn identifies implementation-provided variables.
type BuiltIn uint32

const (
	BuiltInPosition             BuiltIn = 0
	BuiltInPointSize            BuiltIn = 1
	BuiltInClipDistance         BuiltIn = 3
	BuiltInVertexID             BuiltIn = 4
	BuiltInInstanceID           BuiltIn = 5
	BuiltInPrimitiveID          BuiltIn = 6
	BuiltInInvocationID         BuiltIn = 7
	BuiltInLayer                BuiltIn = 8
	BuiltInFragCoord            BuiltIn = 14
	BuiltInPointCoord           BuiltIn = 15
	BuiltInFrontFacing          BuiltIn = 16
	BuiltInSampleID             BuiltIn = 17
	BuiltInSampleMask           BuiltIn = 19
	BuiltInFragDepth            BuiltIn = 22
	BuiltInNumWorkgroups        BuiltIn = 24
	BuiltInWorkgroupSize        BuiltIn = 25
	BuiltInWorkgroupID          BuiltIn = 26
	BuiltInLocalInvocationID    BuiltIn = 27
	BuiltInGlobalInvocationID   BuiltIn = 28
	BuiltInLocalInvocationIndex BuiltIn = 29
	BuiltInVertexIndex          BuiltIn = 42
	BuiltInInstanceIndex        BuiltIn = 43
)

// Dim is an image dimensionality.
type Dim uint32

const (
	Dim1D          Dim = 0
	Dim2D          Dim = 1
	Dim3D          Dim = 2
	DimCube        Dim = 3
	DimRect        Dim = 4
	DimBuffer      Dim = 5
	DimSubpassData Dim = 6
)

// SourceLanguage identifies the frontend language recorded by OpSource.
type SourceLanguage uint32

const (
	SourceLanguageUnknown SourceLanguage = 0
	SourceLanguageESSL    SourceLanguage = 1
	SourceLanguageGLSL    SourceLanguage = 2
	SourceLanguageOpenCLC SourceLanguage = 3
	SourceLanguageHLSL    SourceLanguage = 5
)
