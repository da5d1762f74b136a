package prototype

// NameToUint64 packs a contract name (a-z, 1-5, '.') into 64 bits,
// five bits per character for the first twelve and four for the thirteenth.
func NameToUint64(s string) uint64 {
	var value uint64
	for i := 0; i <= 12; i++ {
		var c uint64
		if i < len(s) {
			c = uint64(charToSymbol(s[i]))
		}
		if i < 12 {
			c &= 0x1f
			c <<= uint(64 - 5*(i+1))
		} else {
			c &= 0x0f
		}
		value |= c
	}
	return value
}

func charToSymbol(c byte) byte {
	switch {
	case c >= 'a' && c <= 'z':
		return c - 'a' + 6
	case c >= '1' && c <= '5':
		return c - '1' + 1
	}
	return 0
}
