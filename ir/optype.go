package ir

// OpType is an enum with the closed vocabulary of operations this library understands.
//
// The legalization patterns only ever need to recognize a handful of operation kinds;
// everything else a producing frontend may emit is represented as OpTypeOther, which no
// pattern matches. This keeps matching a simple switch and guarantees the "no-match falls
// through safely" contract.
type OpType int

//go:generate go tool enumer -type=OpType -trimprefix=OpType -output=gen_optype_enumer.go optype.go

const (
	OpTypeInvalid OpType = iota
	OpTypeParameter
	OpTypeConstant
	OpTypeReduceWindow
	OpTypeDiv
	OpTypeTranspose
	OpTypeReshape
	OpTypeBroadcastInDim
	OpTypeAdd
	OpTypeMul
	OpTypeMax
	OpTypeAveragePool2D
	OpTypeMaxPool2D

	// OpTypeOther stands in for any operation kind outside the supported vocabulary.
	// Other nodes are valid producers/consumers but no rewrite pattern applies to them.
	OpTypeOther
)
