package parse

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/tanema/semc/src/ast"
	"github.com/tanema/semc/src/lerrors"
)

var escapeCodes = map[rune]rune{
	'a':  '\x07', // bell
	'b':  '\x08', // backspace
	'f':  '\x0C', // form feed
	'n':  '\n',   // newline
	'r':  '\r',   // carriage return
	't':  '\t',   // tab
	'v':  '\x0B', // vertical tab
	'0':  '\x00', // null
	'\\': '\\',   // backslach
	'"':  '"',    // quote
	'\'': '\'',   // apostrophe
}

type lexer struct {
	filename string
	rdr      *bufio.Reader
	peeked   []*token
	ast.LineInfo
}

func newLexer(filename string, src io.Reader) *lexer {
	return &lexer{
		filename: filename,
		LineInfo: ast.LineInfo{Line: 1},
		rdr:      bufio.NewReaderSize(src, 4096),
		peeked:   []*token{},
	}
}

func (lex *lexer) errf(msg string, data ...any) error {
	return lex.err(fmt.Errorf(msg, data...))
}

func (lex *lexer) err(err error) error {
	if errors.Is(err, io.EOF) {
		return err
	}
	return &lerrors.Error{
		Filename: lex.filename,
		Kind:     lerrors.LexerErr,
		Line:     lex.Line,
		Column:   lex.Column,
		Err:      err,
	}
}

func (lex *lexer) peek() rune {
	chs, _ := lex.rdr.Peek(utf8.UTFMax)
	if len(chs) == 0 {
		return 0
	}
	ch, _ := utf8.DecodeRune(chs)
	return ch
}

func (lex *lexer) next() (rune, error) {
	ch, _, err := lex.rdr.ReadRune()
	if err != nil {
		return ch, lex.err(err)
	}
	if ch == '\n' {
		lex.Line++
		lex.Column = 0
		return ch, nil
	}
	lex.Column++
	return ch, nil
}

func (lex *lexer) skipWhitespace() error {
	for {
		if ch := lex.peek(); ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' {
			if _, err := lex.next(); err != nil {
				return err
			}
			continue
		}
		return nil
	}
}

func (lex *lexer) tokenVal(tk tokenType) (*token, error) {
	return &token{Kind: tk, LineInfo: ast.LineInfo{Line: lex.Line, Column: lex.Column - int64(len(tk)) + 1}}, nil
}

func (lex *lexer) takeTokenVal(tk tokenType) (*token, error) {
	if _, err := lex.next(); err != nil {
		return nil, err
	}
	return lex.tokenVal(tk)
}

// allow for FIFO stack.
func (lex *lexer) back(tk *token) {
	lex.peeked = append(lex.peeked, tk)
}

// Peek returns the next token without consuming it. At the end of the source
// an EOS token is returned.
func (lex *lexer) Peek() (*token, error) {
	if len(lex.peeked) == 0 {
		tk, err := lex.Next()
		if err != nil && !errors.Is(err, io.EOF) {
			return &token{Kind: tokenEOS}, err
		} else if err != nil && errors.Is(err, io.EOF) {
			return &token{Kind: tokenEOS, LineInfo: lex.LineInfo}, nil
		}
		lex.peeked = append(lex.peeked, tk)
	}
	return lex.peeked[len(lex.peeked)-1], nil
}

// Next consumes the next token. io.EOF is returned at the end of the source.
func (lex *lexer) Next() (*token, error) {
	if len(lex.peeked) != 0 {
		top := lex.peeked[len(lex.peeked)-1]
		lex.peeked = lex.peeked[:len(lex.peeked)-1]
		return top, nil
	}
	for {
		if err := lex.skipWhitespace(); err != nil {
			return nil, err
		}
		ch, err := lex.next()
		if err != nil {
			return nil, err
		}
		if ch == '/' && (lex.peek() == '/' || lex.peek() == '*') {
			if err := lex.skipComment(); err != nil {
				return nil, err
			}
			continue
		}
		return lex.token(ch)
	}
}

func (lex *lexer) token(ch rune) (*token, error) {
	peekCh := lex.peek()
	switch {
	case ch == '=' && peekCh == '=':
		return lex.takeTokenVal(tokenEq)
	case ch == '=':
		return lex.tokenVal(tokenAssign)
	case ch == '!' && peekCh == '=':
		return lex.takeTokenVal(tokenNe)
	case ch == '!':
		return lex.tokenVal(tokenNot)
	case ch == '<' && peekCh == '=':
		return lex.takeTokenVal(tokenLe)
	case ch == '<':
		return lex.tokenVal(tokenLt)
	case ch == '>' && peekCh == '=':
		return lex.takeTokenVal(tokenGe)
	case ch == '>':
		return lex.tokenVal(tokenGt)
	case ch == '&' && peekCh == '&':
		return lex.takeTokenVal(tokenAnd)
	case ch == '&':
		return lex.tokenVal(tokenBitwiseAnd)
	case ch == '|' && peekCh == '|':
		return lex.takeTokenVal(tokenOr)
	case ch == '|':
		return lex.tokenVal(tokenBitwiseOr)
	case ch == '+':
		return lex.tokenVal(tokenAdd)
	case ch == '-':
		return lex.tokenVal(tokenMinus)
	case ch == '*':
		return lex.tokenVal(tokenMultiply)
	case ch == '/':
		return lex.tokenVal(tokenDivide)
	case ch == '%':
		return lex.tokenVal(tokenModulo)
	case ch == ',':
		return lex.tokenVal(tokenComma)
	case ch == ';':
		return lex.tokenVal(tokenSemiColon)
	case ch == '(':
		return lex.tokenVal(tokenOpenParen)
	case ch == ')':
		return lex.tokenVal(tokenCloseParen)
	case ch == '{':
		return lex.tokenVal(tokenOpenCurly)
	case ch == '}':
		return lex.tokenVal(tokenCloseCurly)
	case ch == '"' || ch == '\'':
		return lex.parseString(ch)
	case unicode.IsDigit(ch) || (ch == '.' && unicode.IsDigit(peekCh)):
		return lex.parseNumber(ch)
	case unicode.IsLetter(ch) || ch == '_':
		return lex.parseIdentifier(ch)
	}
	return nil, lex.errf("unexpected character %v", string(ch))
}

func (lex *lexer) skipComment() error {
	ch, err := lex.next()
	if err != nil {
		return err
	}
	if ch == '/' {
		for {
			if ch, err := lex.next(); errors.Is(err, io.EOF) || ch == '\n' {
				return nil
			} else if err != nil {
				return err
			}
		}
	}
	linfo := lex.LineInfo
	for {
		ch, err := lex.next()
		if errors.Is(err, io.EOF) {
			return &lerrors.Error{
				Filename: lex.filename,
				Kind:     lerrors.LexerErr,
				Line:     linfo.Line,
				Column:   linfo.Column - 1,
				Err:      errors.New("unterminated comment"),
			}
		} else if err != nil {
			return err
		} else if ch == '*' && lex.peek() == '/' {
			_, err := lex.next()
			return err
		}
	}
}

func (lex *lexer) parseIdentifier(start rune) (*token, error) {
	linfo := lex.LineInfo
	var ident bytes.Buffer
	ident.WriteRune(start)
	for {
		if peekCh := lex.peek(); unicode.IsLetter(peekCh) || unicode.IsDigit(peekCh) || peekCh == '_' {
			ch, err := lex.next()
			if err != nil {
				return nil, err
			}
			ident.WriteRune(ch)
		} else {
			break
		}
	}

	strVal := ident.String()
	if kw, ok := keywords[strVal]; ok {
		return lex.tokenVal(kw)
	}
	return &token{
		Kind:      tokenIdentifier,
		StringVal: strVal,
		LineInfo:  linfo,
	}, nil
}

func (lex *lexer) parseString(delimiter rune) (*token, error) {
	linfo := lex.LineInfo
	var str bytes.Buffer
	for {
		ch, err := lex.next()
		if errors.Is(err, io.EOF) || ch == '\n' {
			return nil, &lerrors.Error{
				Filename: lex.filename,
				Kind:     lerrors.LexerErr,
				Line:     linfo.Line,
				Column:   linfo.Column,
				Err:      errors.New("unterminated string"),
			}
		} else if err != nil {
			return nil, err
		}

		switch ch {
		case '\\':
			ch, err := lex.next()
			if err != nil {
				return nil, err
			} else if esc, ok := escapeCodes[ch]; ok {
				str.WriteRune(esc)
			} else {
				return nil, lex.errf("unexpected escape code \\%s", string(ch))
			}
		case delimiter:
			return &token{
				Kind:      tokenString,
				StringVal: str.String(),
				LineInfo:  linfo,
			}, nil
		default:
			str.WriteRune(ch)
		}
	}
}

func (lex *lexer) parseNumber(start rune) (*token, error) {
	linfo := lex.LineInfo
	var number bytes.Buffer
	isFloat := start == '.'
	number.WriteRune(start)

	if err := lex.consumeDigits(&number); err != nil {
		return nil, err
	}
	if !isFloat && lex.peek() == '.' {
		isFloat = true
		if err := lex.writeNext(&number); err != nil {
			return nil, err
		} else if err := lex.consumeDigits(&number); err != nil {
			return nil, err
		}
	}
	if peekCh := lex.peek(); peekCh == 'e' || peekCh == 'E' {
		isFloat = true
		if err := lex.parseExponent(&number); err != nil {
			return nil, err
		}
	}

	if isFloat {
		fval, err := strconv.ParseFloat(number.String(), 64)
		if err != nil {
			return nil, lex.err(fmt.Errorf("parse float: %w", errors.Unwrap(err)))
		}
		return &token{Kind: tokenFloat, FloatVal: fval, LineInfo: linfo}, nil
	}

	ivalue, err := strconv.ParseInt(number.String(), 10, 64)
	if err != nil {
		return nil, lex.err(fmt.Errorf("parse int: %w", errors.Unwrap(err)))
	}
	return &token{Kind: tokenInteger, IntVal: ivalue, LineInfo: linfo}, nil
}

func (lex *lexer) consumeDigits(number *bytes.Buffer) error {
	for unicode.IsDigit(lex.peek()) {
		if err := lex.writeNext(number); err != nil {
			return err
		}
	}
	return nil
}

func (lex *lexer) parseExponent(number *bytes.Buffer) error {
	if err := lex.writeNext(number); err != nil {
		return err
	}
	if ch := lex.peek(); ch == '-' || ch == '+' {
		if err := lex.writeNext(number); err != nil {
			return err
		}
	}
	if !unicode.IsDigit(lex.peek()) {
		return lex.errf("malformed number near %v", number.String())
	}
	return lex.consumeDigits(number)
}

func (lex *lexer) writeNext(number *bytes.Buffer) error {
	ch, err := lex.next()
	if err != nil {
		return err
	}
	number.WriteRune(ch)
	return nil
}
