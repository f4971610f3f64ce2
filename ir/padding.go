package ir

// Padding is the pooling padding mode carried by AveragePool2D and MaxPool2D nodes.
//
// PaddingValid applies no padding, the output spatial size shrinks by the window overhang.
// PaddingSame pads the input so the output spatial size equals ceil(input/stride).
type Padding int

//go:generate go tool enumer -type=Padding -trimprefix=Padding -transform=upper -output=gen_padding_enumer.go padding.go

const (
	PaddingValid Padding = iota
	PaddingSame
)
