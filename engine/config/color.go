package config

import "cogentcore.org/core/colors/cam/cie"

// HexToLinear converts a 0xRRGGBB sRGB color to linear RGB in [0, 1].
//
// Parameters:
//   - hex: the packed color
//
// Returns:
//   - [3]float32: linear red, green, blue
func HexToLinear(hex uint32) [3]float32 {
	r, g, b := cie.SRGBToLinear(
		float32((hex>>16)&0xff)/255,
		float32((hex>>8)&0xff)/255,
		float32(hex&0xff)/255,
	)
	return [3]float32{r, g, b}
}
