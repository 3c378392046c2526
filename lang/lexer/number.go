package lexer

import (
	"errors"
	"strconv"
	"strings"

	"github.com/fy-lang/funcy/lang/token"
)

// scanNumber scans an integer literal: optional 0b/0o/0x base prefix, a
// digit run (with underscore separators), and rejects a leading zero in
// decimal literals unless the literal is exactly "0".
func (l *Lexer) scanNumber(startPos token.Position, startOff int) token.Token {
	base := 10
	baseName := "decimal"

	if l.cur == '0' {
		switch lower(rune(l.peekByte())) {
		case 'b':
			l.advance()
			l.advance()
			base, baseName = 2, "binary"
		case 'o':
			l.advance()
			l.advance()
			base, baseName = 8, "octal"
		case 'x':
			l.advance()
			l.advance()
			base, baseName = 16, "hexadecimal"
		}
	}

	digitsOff := l.off
	sawDigit, sawUnderscore, invalidOff := l.scanDigitRun(base)
	digits := string(l.src[digitsOff:l.off])

	if !sawDigit {
		l.errorAt(startPos, "%s literal has no digits", baseName)
	}
	if invalidOff >= 0 {
		l.errorAt(startPos, "invalid digit %q in %s literal", l.src[invalidOff], baseName)
	}
	if sawUnderscore {
		if i := invalidSeparator(digits); i >= 0 {
			l.errorAt(startPos, "'_' must separate successive digits")
		}
	}
	if base == 10 && len(digits) > 1 && digits[0] == '0' {
		l.errorAt(startPos, "decimal literal has a leading zero")
	}

	if isLetter(l.cur) {
		suffixStart := l.off
		for isLetter(l.cur) || isDigit(l.cur) {
			l.advance()
		}
		l.errorAt(startPos, "invalid character %q following number literal", l.src[suffixStart])
	}

	v := token.Value{IntVal: parseIntLiteral(digits, base, func(msg string) { l.errorAt(startPos, "%s", msg) })}
	return token.Token{Kind: token.LITERAL_INT, Span: token.NewSpan(startPos, l.here()), Value: v}
}

// scanDigitRun consumes a run of digits valid in base, plus '_' separators,
// returning whether any digit was seen, whether any underscore was seen,
// and the offset of the first out-of-base digit (base <= 10 only), or -1.
func (l *Lexer) scanDigitRun(base int) (sawDigit, sawUnderscore bool, invalidOff int) {
	invalidOff = -1
	if base <= 10 {
		max := rune('0' + base)
		for isDecimal(l.cur) || l.cur == '_' {
			if l.cur == '_' {
				sawUnderscore = true
			} else {
				sawDigit = true
				if l.cur >= max && invalidOff < 0 {
					invalidOff = l.off
				}
			}
			l.advance()
		}
		return
	}
	for isHex(l.cur) || l.cur == '_' {
		if l.cur == '_' {
			sawUnderscore = true
		} else {
			sawDigit = true
		}
		l.advance()
	}
	return
}

// invalidSeparator returns the index of the first illegally-placed '_' in
// digits (leading, trailing, or adjacent to another '_'), or -1.
func invalidSeparator(digits string) int {
	if len(digits) == 0 {
		return -1
	}
	if digits[0] == '_' {
		return 0
	}
	if digits[len(digits)-1] == '_' {
		return len(digits) - 1
	}
	for i := 1; i < len(digits); i++ {
		if digits[i] == '_' && digits[i-1] == '_' {
			return i
		}
	}
	return -1
}

func parseIntLiteral(digits string, base int, reportErr func(string)) int64 {
	clean := strings.ReplaceAll(digits, "_", "")
	if clean == "" {
		return 0
	}
	v, err := strconv.ParseInt(clean, base, 64)
	if err != nil && errors.Is(err, strconv.ErrRange) {
		reportErr("integer literal value out of range")
	}
	return v
}
