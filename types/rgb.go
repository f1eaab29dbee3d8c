package types

// RGB is a 24-bit color, serialized on the wire as a big-endian unsigned
// integer (0xRRGGBB), per spec.md §8's boundary behaviors. Ported from
// teloxide-core's Rgb type.
type RGB struct {
	R, G, B uint8
}

// Uint24 packs the color into the big-endian 24-bit form the API expects.
func (c RGB) Uint24() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// RGBFromUint24 unpacks a big-endian 24-bit color.
func RGBFromUint24(v uint32) RGB {
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
}

func (c RGB) MarshalJSON() ([]byte, error) {
	return marshalUint32(c.Uint24())
}

func (c *RGB) UnmarshalJSON(data []byte) error {
	v, err := unmarshalUint32(data)
	if err != nil {
		return err
	}
	*c = RGBFromUint24(v)
	return nil
}

// ARGB is a 32-bit color with an alpha channel, serialized as a big-endian
// unsigned integer (0xAARRGGBB).
type ARGB struct {
	A, R, G, B uint8
}

func (c ARGB) Uint32() uint32 {
	return uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

func ARGBFromUint32(v uint32) ARGB {
	return ARGB{A: uint8(v >> 24), R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
}

func (c ARGB) MarshalJSON() ([]byte, error) {
	return marshalUint32(c.Uint32())
}

func (c *ARGB) UnmarshalJSON(data []byte) error {
	v, err := unmarshalUint32(data)
	if err != nil {
		return err
	}
	*c = ARGBFromUint32(v)
	return nil
}
