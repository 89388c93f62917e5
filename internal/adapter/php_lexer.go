package adapter

import (
	"errors"
	"fmt"
	"strings"

	m "csrules.dev/pkg/csrules/internal/model"
)

// ErrUnterminated is returned when a comment, string or heredoc runs to the
// end of the file.
var ErrUnterminated = errors.New("unterminated construct")

var phpKeywords = map[string]struct{}{
	"abstract": {}, "and": {}, "array": {}, "as": {}, "break": {}, "callable": {},
	"case": {}, "catch": {}, "class": {}, "clone": {}, "const": {}, "continue": {},
	"declare": {}, "default": {}, "die": {}, "do": {}, "echo": {}, "else": {},
	"elseif": {}, "empty": {}, "enddeclare": {}, "endfor": {}, "endforeach": {},
	"endif": {}, "endswitch": {}, "endwhile": {}, "eval": {}, "exit": {},
	"extends": {}, "final": {}, "finally": {}, "fn": {}, "for": {}, "foreach": {},
	"function": {}, "global": {}, "goto": {}, "if": {}, "implements": {},
	"include": {}, "include_once": {}, "instanceof": {}, "insteadof": {},
	"interface": {}, "isset": {}, "list": {}, "match": {}, "namespace": {},
	"new": {}, "or": {}, "print": {}, "private": {}, "protected": {}, "public": {},
	"readonly": {}, "require": {}, "require_once": {}, "return": {}, "static": {},
	"switch": {}, "throw": {}, "trait": {}, "try": {}, "unset": {}, "use": {},
	"var": {}, "while": {}, "xor": {}, "yield": {},
}

var (
	threeCharOperators = []string{"<=>", "===", "!==", "**=", "...", "<<=", ">>=", "??=", "?->"}
	twoCharOperators   = []string{
		"++", "--", "->", "=>", "::", "==", "!=", "<>", "<=", ">=", "&&", "||", "??",
		"+=", "-=", "*=", "/=", ".=", "%=", "&=", "|=", "^=", "<<", ">>", "**",
	}
)

// phpLexer splits PHP source into tokens whose concatenation is the source.
type phpLexer struct {
	src    string
	pos    int
	tokens []m.Token
}

func newPHPLexer(src string) *phpLexer {
	return &phpLexer{src: src}
}

func (l *phpLexer) run() ([]m.Token, error) {
	for l.pos < len(l.src) {
		l.lexInlineHTML()

		if l.pos >= len(l.src) {
			break
		}

		if err := l.lexCode(); err != nil {
			return nil, err
		}
	}

	return l.tokens, nil
}

func (l *phpLexer) emit(kind m.Kind, text string) {
	if text == "" {
		return
	}

	l.tokens = append(l.tokens, m.Token{Kind: kind, Text: text})
}

func (l *phpLexer) hasPrefix(s string) bool {
	return strings.HasPrefix(l.src[l.pos:], s)
}

func (l *phpLexer) peek(offset int) byte {
	if l.pos+offset >= len(l.src) {
		return 0
	}

	return l.src[l.pos+offset]
}

// lexInlineHTML consumes text up to and including the next open tag.
func (l *phpLexer) lexInlineHTML() {
	start := l.pos

	for l.pos < len(l.src) {
		idx := strings.Index(l.src[l.pos:], "<?")
		if idx < 0 {
			l.pos = len(l.src)
			break
		}

		l.pos += idx

		if l.hasPrefix("<?=") {
			l.emit(m.KindInlineHTML, l.src[start:l.pos])
			l.emit(m.KindOpenTag, "<?=")
			l.pos += 3

			return
		}

		if len(l.src)-l.pos >= 5 && strings.EqualFold(l.src[l.pos:l.pos+5], "<?php") {
			next := l.peek(5)
			if next == 0 || isSpace(next) {
				l.emit(m.KindInlineHTML, l.src[start:l.pos])

				end := l.pos + 5

				switch {
				case strings.HasPrefix(l.src[end:], "\r\n"):
					end += 2
				case next != 0:
					end++
				}

				l.emit(m.KindOpenTag, l.src[l.pos:end])
				l.pos = end

				return
			}
		}

		l.pos += 2
	}

	l.emit(m.KindInlineHTML, l.src[start:l.pos])
}

// lexCode consumes PHP tokens until a close tag or the end of input.
func (l *phpLexer) lexCode() error {
	for l.pos < len(l.src) {
		if l.hasPrefix("?>") {
			l.lexCloseTag()
			return nil
		}

		if err := l.lexToken(); err != nil {
			return err
		}
	}

	return nil
}

func (l *phpLexer) lexCloseTag() {
	end := l.pos + 2

	switch {
	case strings.HasPrefix(l.src[end:], "\r\n"):
		end += 2
	case strings.HasPrefix(l.src[end:], "\n"):
		end++
	}

	l.emit(m.KindCloseTag, l.src[l.pos:end])
	l.pos = end
}

// lexToken consumes exactly one token of PHP code.
//
//nolint:cyclop // Dispatch requires one case per token class
func (l *phpLexer) lexToken() error {
	c := l.src[l.pos]

	switch {
	case isSpace(c):
		l.lexWhitespace()
	case l.hasPrefix("#["):
		l.emit(m.KindPunct, "#[")
		l.pos += 2
	case c == '#' || l.hasPrefix("//"):
		l.lexLineComment()
	case l.hasPrefix("/*"):
		return l.lexBlockComment()
	case c == '$' && isNameStart(l.peek(1)):
		l.lexVariable()
	case isNameStart(c) || (c == '\\' && isNameStart(l.peek(1))):
		l.lexName()
	case isDigit(c) || (c == '.' && isDigit(l.peek(1))):
		l.lexNumber()
	case c == '\'':
		return l.lexSingleQuoted()
	case c == '"':
		return l.lexDoubleQuoted()
	case c == '`':
		return l.lexInterpolated("`")
	case l.hasPrefix("<<<") && l.heredocLabelAt(l.pos) != "":
		return l.lexHeredoc()
	default:
		l.lexOperator()
	}

	return nil
}

func (l *phpLexer) lexWhitespace() {
	start := l.pos
	for l.pos < len(l.src) && isSpace(l.src[l.pos]) {
		l.pos++
	}

	l.emit(m.KindWhitespace, l.src[start:l.pos])
}

func (l *phpLexer) lexLineComment() {
	start := l.pos

	for l.pos < len(l.src) {
		if l.src[l.pos] == '\n' || l.src[l.pos] == '\r' || l.hasPrefix("?>") {
			break
		}
		l.pos++
	}

	l.emit(m.KindComment, l.src[start:l.pos])
}

func (l *phpLexer) lexBlockComment() error {
	start := l.pos

	end := strings.Index(l.src[l.pos+2:], "*/")
	if end < 0 {
		return fmt.Errorf("%w: comment at offset %d", ErrUnterminated, start)
	}

	l.pos += 2 + end + 2
	text := l.src[start:l.pos]

	kind := m.KindComment
	if len(text) > 4 && strings.HasPrefix(text, "/**") && isSpace(text[3]) {
		kind = m.KindDocComment
	}

	l.emit(kind, text)

	return nil
}

func (l *phpLexer) lexVariable() {
	start := l.pos
	l.pos++ // $
	l.pos += nameLength(l.src[l.pos:])
	l.emit(m.KindVariable, l.src[start:l.pos])
}

func (l *phpLexer) lexName() {
	start := l.pos

	if l.src[l.pos] == '\\' {
		l.pos++
	}

	l.pos += nameLength(l.src[l.pos:])

	for l.pos+1 < len(l.src) && l.src[l.pos] == '\\' && isNameStart(l.src[l.pos+1]) {
		l.pos++
		l.pos += nameLength(l.src[l.pos:])
	}

	text := l.src[start:l.pos]

	kind := m.KindIdentifier
	if _, ok := phpKeywords[strings.ToLower(text)]; ok && !l.afterMemberAccess() {
		kind = m.KindKeyword
	}

	l.emit(kind, text)
}

// afterMemberAccess reports whether the previous meaningful token makes the
// next name a member or declaration name rather than a keyword.
func (l *phpLexer) afterMemberAccess() bool {
	for i := len(l.tokens) - 1; i >= 0; i-- {
		tok := l.tokens[i]
		if !tok.IsMeaningful() {
			continue
		}

		return tok.Equals("->") || tok.Equals("?->") || tok.Equals("::") ||
			tok.IsKeyword("function") || tok.IsKeyword("const")
	}

	return false
}

func (l *phpLexer) lexNumber() {
	start := l.pos

	if l.src[l.pos] == '0' && strings.ContainsRune("xXbBoO", rune(l.peek(1))) {
		l.pos += 2
		for l.pos < len(l.src) && (isHexDigit(l.src[l.pos]) || l.src[l.pos] == '_') {
			l.pos++
		}

		l.emit(m.KindNumber, l.src[start:l.pos])

		return
	}

	l.consumeDigits()

	if l.pos < len(l.src) && l.src[l.pos] == '.' && isDigit(l.peek(1)) {
		l.pos++
		l.consumeDigits()
	}

	if l.pos < len(l.src) && (l.src[l.pos] == 'e' || l.src[l.pos] == 'E') {
		off := 1
		if l.peek(1) == '+' || l.peek(1) == '-' {
			off = 2
		}

		if isDigit(l.peek(off)) {
			l.pos += off
			l.consumeDigits()
		}
	}

	l.emit(m.KindNumber, l.src[start:l.pos])
}

func (l *phpLexer) consumeDigits() {
	for l.pos < len(l.src) && (isDigit(l.src[l.pos]) || l.src[l.pos] == '_') {
		l.pos++
	}
}

func (l *phpLexer) lexSingleQuoted() error {
	start := l.pos
	l.pos++

	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case '\\':
			l.pos += 2
		case '\'':
			l.pos++
			l.emit(m.KindConstantString, l.src[start:l.pos])

			return nil
		default:
			l.pos++
		}
	}

	return fmt.Errorf("%w: string at offset %d", ErrUnterminated, start)
}

// lexDoubleQuoted emits a constant string when the literal has no
// interpolation, and the split interpolated form otherwise.
func (l *phpLexer) lexDoubleQuoted() error {
	start := l.pos
	interpolated := false

	for i := l.pos + 1; i < len(l.src); i++ {
		switch c := l.src[i]; {
		case c == '\\':
			i++
		case c == '"':
			if !interpolated {
				l.pos = i + 1
				l.emit(m.KindConstantString, l.src[start:l.pos])

				return nil
			}

			return l.lexInterpolated(`"`)
		case c == '$' && i+1 < len(l.src) && (isNameStart(l.src[i+1]) || l.src[i+1] == '{'):
			interpolated = true
		case c == '{' && i+1 < len(l.src) && l.src[i+1] == '$':
			interpolated = true
		}
	}

	return fmt.Errorf("%w: string at offset %d", ErrUnterminated, start)
}

// lexInterpolated lexes a quoted string with embedded variables, delimited by
// the given quote character.
func (l *phpLexer) lexInterpolated(quote string) error {
	start := l.pos
	l.emit(m.KindQuote, quote)
	l.pos++

	for {
		done, err := l.lexStringPart(func() bool { return l.hasPrefix(quote) })
		if err != nil {
			return err
		}

		if done {
			break
		}

		if l.pos >= len(l.src) {
			return fmt.Errorf("%w: string at offset %d", ErrUnterminated, start)
		}
	}

	l.emit(m.KindQuote, quote)
	l.pos += len(quote)

	return nil
}

// lexStringPart lexes one fragment or interpolation of a string body. It
// reports done when atEnd matches at the current position.
func (l *phpLexer) lexStringPart(atEnd func() bool) (bool, error) {
	start := l.pos

	for l.pos < len(l.src) {
		if atEnd() {
			l.emit(m.KindEncapsedString, l.src[start:l.pos])
			return true, nil
		}

		c := l.src[l.pos]

		switch {
		case c == '\\':
			l.pos = min(l.pos+2, len(l.src))
			continue
		case c == '$' && isNameStart(l.peek(1)):
			l.emit(m.KindEncapsedString, l.src[start:l.pos])
			l.lexSimpleInterpolation()

			return false, nil
		case c == '{' && l.peek(1) == '$':
			l.emit(m.KindEncapsedString, l.src[start:l.pos])
			l.emit(m.KindCurlyOpen, "{")
			l.pos++

			return false, l.lexEmbedded()
		case c == '$' && l.peek(1) == '{':
			l.emit(m.KindEncapsedString, l.src[start:l.pos])
			l.emit(m.KindDollarOpenCurly, "${")
			l.pos += 2

			if n := nameLength(l.src[l.pos:]); n > 0 {
				if next := l.peek(n); next == '}' || next == '[' {
					l.emit(m.KindStringVarname, l.src[l.pos:l.pos+n])
					l.pos += n
				}
			}

			return false, l.lexEmbedded()
		}

		l.pos++
	}

	l.emit(m.KindEncapsedString, l.src[start:l.pos])

	return false, nil
}

// lexSimpleInterpolation handles `$var`, `$var[offset]` and `$var->prop`.
func (l *phpLexer) lexSimpleInterpolation() {
	l.lexVariable()

	switch {
	case l.hasPrefix("["):
		end := strings.IndexByte(l.src[l.pos:], ']')
		if end < 0 {
			return
		}

		l.emit(m.KindPunct, "[")
		l.pos++

		switch c := l.src[l.pos]; {
		case c == '$' && isNameStart(l.peek(1)):
			l.lexVariable()
		case c == '-' || isDigit(c):
			if c == '-' {
				l.emit(m.KindOperator, "-")
				l.pos++
			}

			start := l.pos
			for l.pos < len(l.src) && isNameChar(l.src[l.pos]) {
				l.pos++
			}

			l.emit(m.KindNumber, l.src[start:l.pos])
		case isNameStart(c):
			n := nameLength(l.src[l.pos:])
			l.emit(m.KindIdentifier, l.src[l.pos:l.pos+n])
			l.pos += n
		}

		if l.hasPrefix("]") {
			l.emit(m.KindPunct, "]")
			l.pos++
		}
	case (l.hasPrefix("->") && isNameStart(l.peek(2))) || (l.hasPrefix("?->") && isNameStart(l.peek(3))):
		op := "->"
		if l.src[l.pos] == '?' {
			op = "?->"
		}

		l.emit(m.KindOperator, op)
		l.pos += len(op)

		n := nameLength(l.src[l.pos:])
		l.emit(m.KindIdentifier, l.src[l.pos:l.pos+n])
		l.pos += n
	}
}

// lexEmbedded lexes code inside `{$...}` or `${...}` up to and including the
// closing brace.
func (l *phpLexer) lexEmbedded() error {
	start := l.pos
	depth := 0

	for l.pos < len(l.src) {
		if l.src[l.pos] == '}' && depth == 0 {
			l.emit(m.KindPunct, "}")
			l.pos++

			return nil
		}

		if err := l.lexToken(); err != nil {
			return err
		}

		last := l.tokens[len(l.tokens)-1]

		switch {
		case last.IsCurlyOpener():
			depth++
		case last.Equals("}"):
			depth--
		}
	}

	return fmt.Errorf("%w: interpolation at offset %d", ErrUnterminated, start)
}

// heredocLabelAt returns the label of a heredoc/nowdoc opener at offset i, or
// "" when the text is not one.
func (l *phpLexer) heredocLabelAt(i int) string {
	j := i + 3
	for j < len(l.src) && (l.src[j] == ' ' || l.src[j] == '\t') {
		j++
	}

	quote := byte(0)
	if j < len(l.src) && (l.src[j] == '\'' || l.src[j] == '"') {
		quote = l.src[j]
		j++
	}

	n := nameLength(l.src[j:])
	if n == 0 {
		return ""
	}

	label := l.src[j : j+n]
	j += n

	if quote != 0 {
		if j >= len(l.src) || l.src[j] != quote {
			return ""
		}
		j++
	}

	if j >= len(l.src) || (l.src[j] != '\n' && l.src[j] != '\r') {
		return ""
	}

	return label
}

func (l *phpLexer) lexHeredoc() error {
	start := l.pos
	label := l.heredocLabelAt(l.pos)
	nowdoc := strings.Contains(l.src[l.pos:l.pos+strings.Index(l.src[l.pos:], label)], "'")

	end := l.pos + strings.IndexAny(l.src[l.pos:], "\r\n")
	if strings.HasPrefix(l.src[end:], "\r\n") {
		end += 2
	} else {
		end++
	}

	l.emit(m.KindStartHeredoc, l.src[l.pos:end])
	l.pos = end

	if nowdoc {
		bodyStart := l.pos
		for l.pos < len(l.src) && !l.closingLabelAt(label) {
			l.pos++
		}

		if l.pos >= len(l.src) {
			return fmt.Errorf("%w: nowdoc at offset %d", ErrUnterminated, start)
		}

		l.emit(m.KindEncapsedString, l.src[bodyStart:l.pos])
	} else {
		for !l.closingLabelAt(label) {
			if l.pos >= len(l.src) {
				return fmt.Errorf("%w: heredoc at offset %d", ErrUnterminated, start)
			}

			if _, err := l.lexStringPart(func() bool { return l.closingLabelAt(label) }); err != nil {
				return err
			}
		}
	}

	labelEnd := l.pos
	for l.src[labelEnd] == ' ' || l.src[labelEnd] == '\t' {
		labelEnd++
	}

	labelEnd += len(label)
	l.emit(m.KindEndHeredoc, l.src[l.pos:labelEnd])
	l.pos = labelEnd

	return nil
}

// closingLabelAt reports whether the current position starts a line holding
// the closing heredoc label.
func (l *phpLexer) closingLabelAt(label string) bool {
	if l.pos >= len(l.src) || (l.pos > 0 && l.src[l.pos-1] != '\n') {
		return false
	}

	j := l.pos
	for j < len(l.src) && (l.src[j] == ' ' || l.src[j] == '\t') {
		j++
	}

	if !strings.HasPrefix(l.src[j:], label) {
		return false
	}

	j += len(label)

	return j >= len(l.src) || !isNameChar(l.src[j])
}

func (l *phpLexer) lexOperator() {
	for _, op := range threeCharOperators {
		if l.hasPrefix(op) {
			l.emit(m.KindOperator, op)
			l.pos += len(op)

			return
		}
	}

	for _, op := range twoCharOperators {
		if l.hasPrefix(op) {
			l.emit(m.KindOperator, op)
			l.pos += len(op)

			return
		}
	}

	c := l.src[l.pos : l.pos+1]

	kind := m.KindOperator
	if strings.Contains("()[]{};,", c) {
		kind = m.KindPunct
	}

	l.emit(kind, c)
	l.pos++
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F') || c == 'o' || c == 'O'
}

func isNameStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isNameChar(c byte) bool {
	return isNameStart(c) || isDigit(c)
}

func nameLength(s string) int {
	if s == "" || !isNameStart(s[0]) {
		return 0
	}

	n := 1
	for n < len(s) && isNameChar(s[n]) {
		n++
	}

	return n
}
