package frontend

// Host keys, laid out as the logical keypad:
//
//	1 2 3 4      1 2 3 C
//	Q W E R  ->  4 5 6 D
//	A S D F      7 8 9 E
//	Z X C V      A 0 B F
var (
	hostRows = [4]string{"1234", "qwer", "asdf", "zxcv"}
	padRows  = [4][4]uint8{
		{0x1, 0x2, 0x3, 0xc},
		{0x4, 0x5, 0x6, 0xd},
		{0x7, 0x8, 0x9, 0xe},
		{0xa, 0x0, 0xb, 0xf},
	}
)

var keyMap = map[rune]uint8{}

func init() {
	for row, keys := range hostRows {
		for col, host := range keys {
			keyMap[host] = padRows[row][col]
		}
	}
}

// KeyOf returns the logical key for a host character.
// Letters are matched without regard to case.
func KeyOf(host rune) (key uint8, ok bool) {
	if host >= 'A' && host <= 'Z' {
		host += 'a' - 'A'
	}
	key, ok = keyMap[host]
	return
}
