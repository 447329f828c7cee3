package n85

// Alphabet lists the 85 symbols in digit order: every printable ASCII byte
// from '(' to '}' except the backslash.
const Alphabet = "()*+,-./0123456789:;<=>?@ABCDEFGHIJKLMNOPQRSTUVWXYZ[]^_`abcdefghijklmnopqrstuvwxyz{|}"

const (
	firstChar = '('
	skipChar  = '\\'
	lastChar  = '}'
)

// toChar maps a digit in [0, 85) to its symbol.
func toChar(d byte) byte {
	c := firstChar + d
	if c >= skipChar {
		c++
	}
	return c
}

// toDigit is the inverse of toChar. c must satisfy isValid.
func toDigit(c byte) byte {
	d := c - firstChar
	if c >= skipChar {
		d--
	}
	return d
}

func isValid(c byte) bool {
	return c >= firstChar && c <= lastChar && c != skipChar
}
