package lexer

import (
	"bufio"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"

	"cool-frontend/utils"
)

// MaxStringLength is the longest string constant COOL accepts.
const MaxStringLength = 1024

// Lexer performs lexical analysis on an input stream.
type Lexer struct {
	reader *bufio.Reader
	line   int
	column int
	char   rune

	// Keywords are case-insensitive.
	fold cases.Caser

	errs   *utils.ErrorLog
	logger *slog.Logger
}

// NewLexer creates a new Lexer from an io.Reader. Errors go to errs,
// token traces to logger at debug level.
func NewLexer(reader io.Reader, errs *utils.ErrorLog, logger *slog.Logger) *Lexer {
	if logger == nil {
		logger = utils.Discard()
	}
	if errs == nil {
		errs = utils.NewErrorLog(logger)
	}
	l := &Lexer{
		reader: bufio.NewReader(reader),
		line:   1,
		column: 0,
		fold:   cases.Fold(),
		errs:   errs,
		logger: logger,
	}
	l.readChar()
	return l
}

// error reports a lexical error at the current position.
func (l *Lexer) error(line, column int, msg string) {
	l.errs.Report("Lexer", line, column, msg)
}

// readChar reads the next rune from the input.
func (l *Lexer) readChar() {
	if l.char == '\n' {
		l.line++
		l.column = 0
	}
	var err error
	l.char, _, err = l.reader.ReadRune()
	if err != nil {
		l.char = 0
	}
	l.column++
}

// peekChar returns the next rune without consuming it.
func (l *Lexer) peekChar() rune {
	char, _, err := l.reader.ReadRune()
	if err != nil {
		return 0
	}
	l.reader.UnreadRune()
	return char
}

func (l *Lexer) skipWhiteSpace() {
	for unicode.IsSpace(l.char) {
		l.readChar()
	}
}

func (l *Lexer) readNumber() string {
	var sb strings.Builder
	for unicode.IsDigit(l.char) {
		sb.WriteRune(l.char)
		l.readChar()
	}
	return sb.String()
}

func isIdentifierStart(char rune) bool {
	return unicode.IsLetter(char)
}

func isIdentifierPart(char rune) bool {
	return isIdentifierStart(char) || unicode.IsDigit(char) || char == '_'
}

func (l *Lexer) readIdentifier() string {
	var sb strings.Builder
	for isIdentifierPart(l.char) {
		sb.WriteRune(l.char)
		l.readChar()
	}
	return sb.String()
}

// readString consumes a string literal and returns its value, or an
// error message. An unterminated literal stops at the end of the line.
func (l *Lexer) readString() (string, string) {
	var sb strings.Builder
	l.readChar() // opening quote
	for l.char != '"' {
		switch l.char {
		case 0:
			return "", "EOF in string constant"
		case '\n':
			return "", "Unterminated string constant"
		case '\\':
			l.readChar()
			switch l.char {
			case 'b':
				sb.WriteRune('\b')
			case 't':
				sb.WriteRune('\t')
			case 'n':
				sb.WriteRune('\n')
			case 'f':
				sb.WriteRune('\f')
			case 0:
				return "", "EOF in string constant"
			default:
				sb.WriteRune(l.char)
			}
		default:
			sb.WriteRune(l.char)
		}
		l.readChar()
	}
	l.readChar() // closing quote
	if sb.Len() > MaxStringLength {
		return "", "String constant too long"
	}
	return sb.String(), ""
}

// single maps one-character tokens to their types.
var single = map[rune]TokenType{
	'(': LPAREN, ')': RPAREN, '{': LBRACE, '}': RBRACE, ';': SEMI, ':': COLON,
	',': COMMA, '+': PLUS, '*': TIMES, '-': MINUS, '/': DIVIDE, '~': NEG, '.': DOT, '@': AT,
}

// NextToken returns the next token from the input.
func (l *Lexer) NextToken() Token {
	l.skipWhiteSpace()
	tok := Token{Line: l.line, Column: l.column}
	defer func() {
		l.logger.Debug("token", "type", tok.Type.String(), "literal", tok.Literal, "line", tok.Line, "col", tok.Column)
	}()

	if typ, ok := single[l.char]; ok {
		tok.Type = typ
		tok.Literal = string(l.char)
		l.readChar()
		return tok
	}

	switch {
	case l.char == 0:
		tok.Type = EOF
	case l.char == '=':
		if l.peekChar() == '>' {
			tok.Type, tok.Literal = DARROW, "=>"
			l.readChar()
		} else {
			tok.Type, tok.Literal = EQ, "="
		}
		l.readChar()
	case l.char == '<':
		switch l.peekChar() {
		case '-':
			tok.Type, tok.Literal = ASSIGN, "<-"
			l.readChar()
		case '=':
			tok.Type, tok.Literal = LE, "<="
			l.readChar()
		default:
			tok.Type, tok.Literal = LT, "<"
		}
		l.readChar()
	case l.char == '"':
		str, msg := l.readString()
		if msg != "" {
			tok.Type, tok.Literal = ERROR, msg
			l.error(tok.Line, tok.Column, msg)
		} else {
			tok.Type, tok.Literal = STR_CONST, str
		}
	case unicode.IsDigit(l.char):
		num := l.readNumber()
		if _, err := strconv.Atoi(num); err != nil {
			tok.Type, tok.Literal = ERROR, "Number out of range"
			l.error(tok.Line, tok.Column, tok.Literal)
		} else {
			tok.Type, tok.Literal = INT_CONST, num
		}
	case isIdentifierStart(l.char):
		tok.Literal = l.readIdentifier()
		tok.Type = l.classify(tok.Literal)
	default:
		tok.Type = ERROR
		tok.Literal = "Unexpected character: " + string(l.char)
		l.error(tok.Line, tok.Column, tok.Literal)
		l.readChar()
	}
	return tok
}

// classify returns the token type of an identifier-shaped word. true and
// false must start with a lowercase letter; other keywords ignore case.
func (l *Lexer) classify(word string) TokenType {
	folded := l.fold.String(word)
	if typ, ok := keywords[folded]; ok {
		return typ
	}
	first := []rune(word)[0]
	if (folded == "true" || folded == "false") && unicode.IsLower(first) {
		return BOOL_CONST
	}
	if unicode.IsUpper(first) {
		return TYPEID
	}
	return OBJECTID
}
