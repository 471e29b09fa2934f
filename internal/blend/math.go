package blend

// div255Round divides x by 255 and rounds to nearest without a division.
//
// Formula: t = x + 128; (t + (t >> 8)) >> 8
//
// Exact for every x in [0, 255*255], which covers a*(255-m) + b*m for any
// bytes a, b and m.
func div255Round(x uint16) uint8 {
	t := uint32(x) + 128
	return uint8((t + (t >> 8)) >> 8)
}
