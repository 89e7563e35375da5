package lexer

// TokenType represents the type of a lexical token.
type TokenType int

const (
	EOF TokenType = iota
	ERROR

	CLASS
	INHERITS
	ISVOID
	IF
	ELSE
	FI
	THEN
	LET
	IN
	WHILE
	CASE
	ESAC
	LOOP
	POOL
	NEW
	OF
	NOT

	STR_CONST
	BOOL_CONST
	INT_CONST

	TYPEID
	OBJECTID

	ASSIGN // <-
	DARROW // =>
	LT     // <
	LE     // <=
	EQ     // =
	PLUS   // +
	MINUS  // -
	TIMES  // *
	DIVIDE // /
	LPAREN // (
	RPAREN // )
	LBRACE // {
	RBRACE // }
	SEMI   // ;
	COLON  // :
	COMMA  // ,
	DOT    // .
	AT     // @
	NEG    // ~
)

var tokenNames = [...]string{
	"EOF", "ERROR", "CLASS", "INHERITS", "ISVOID", "IF", "ELSE", "FI", "THEN", "LET", "IN", "WHILE",
	"CASE", "ESAC", "LOOP", "POOL", "NEW", "OF", "NOT", "STR_CONST", "BOOL_CONST", "INT_CONST",
	"TYPEID", "OBJECTID", "ASSIGN", "DARROW", "LT", "LE", "EQ", "PLUS", "MINUS", "TIMES",
	"DIVIDE", "LPAREN", "RPAREN", "LBRACE", "RBRACE", "SEMI", "COLON", "COMMA", "DOT", "AT", "NEG",
}

func (tt TokenType) String() string {
	if tt < 0 || int(tt) >= len(tokenNames) {
		return "UNKNOWN"
	}
	return tokenNames[tt]
}

// Token represents a lexical token.
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

var keywords = map[string]TokenType{
	"class":    CLASS,
	"if":       IF,
	"fi":       FI,
	"else":     ELSE,
	"then":     THEN,
	"case":     CASE,
	"esac":     ESAC,
	"while":    WHILE,
	"loop":     LOOP,
	"pool":     POOL,
	"of":       OF,
	"let":      LET,
	"in":       IN,
	"inherits": INHERITS,
	"isvoid":   ISVOID,
	"new":      NEW,
	"not":      NOT,
}
