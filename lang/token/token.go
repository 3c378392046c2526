package token

// Kind is the tag of a lexical token. The set is closed: every kind the
// lexer can produce is enumerated here.
type Kind int8

//nolint:revive
const (
	ILLEGAL Kind = iota
	EOF
	ERROR // carries a diagnostic message in Token.StrVal

	IDENTIFIER
	LITERAL_INT // carries a decoded value in Token.IntVal
	LITERAL_CHR // carries the decoded contents (of any length; the visitor checks for one character) in Token.StrVal
	LITERAL_STR // carries the decoded contents in Token.StrVal

	// keywords, alphabetically
	BREAK
	CONTINUE
	ELSE
	FALSE
	FUNC
	IF
	INCLUDE
	LET
	MUT
	RETURN
	TRUE
	WHILE

	// punctuation
	BANG          // !
	BANG_EQ       // !=
	PERCENT       // %
	PERCENT_EQ    // %=
	AMP           // &
	AMP_AMP       // &&
	AMP_EQ        // &=
	LPAREN        // (
	RPAREN        // )
	STAR          // *
	STAR_EQ       // *=
	PLUS          // +
	PLUS_EQ       // +=
	COMMA         // ,
	MINUS         // -
	MINUS_EQ      // -=
	SLASH         // /
	SLASH_EQ      // /=
	SEMI          // ;
	LT            // <
	LT_EQ         // <=
	EQ            // =
	EQ_EQ         // ==
	GT            // >
	GT_EQ         // >=
	LBRACE        // {
	PIPE          // |
	PIPE_EQ       // |=
	PIPE_PIPE     // ||
	RBRACE        // }
	DOLLAR_LPAREN // $( -- only while parsing the standard-library module

	maxKind
)

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown token"
}

// GoString is like String but quotes punctuation/keyword lexemes, suitable
// for use in "expected X, found Y" diagnostics.
func (k Kind) GoString() string {
	if k >= BREAK {
		return "'" + kindNames[k] + "'"
	}
	return kindNames[k]
}

var kindNames = [...]string{
	ILLEGAL:       "illegal token",
	EOF:           "end of file",
	ERROR:         "error",
	IDENTIFIER:    "identifier",
	LITERAL_INT:   "int literal",
	LITERAL_CHR:   "char literal",
	LITERAL_STR:   "string literal",
	BREAK:         "break",
	CONTINUE:      "continue",
	ELSE:          "else",
	FALSE:         "false",
	FUNC:          "func",
	IF:            "if",
	INCLUDE:       "include",
	LET:           "let",
	MUT:           "mut",
	RETURN:        "return",
	TRUE:          "true",
	WHILE:         "while",
	BANG:          "!",
	BANG_EQ:       "!=",
	PERCENT:       "%",
	PERCENT_EQ:    "%=",
	AMP:           "&",
	AMP_AMP:       "&&",
	AMP_EQ:        "&=",
	LPAREN:        "(",
	RPAREN:        ")",
	STAR:          "*",
	STAR_EQ:       "*=",
	PLUS:          "+",
	PLUS_EQ:       "+=",
	COMMA:         ",",
	MINUS:         "-",
	MINUS_EQ:      "-=",
	SLASH:         "/",
	SLASH_EQ:      "/=",
	SEMI:          ";",
	LT:            "<",
	LT_EQ:         "<=",
	EQ:            "=",
	EQ_EQ:         "==",
	GT:            ">",
	GT_EQ:         ">=",
	LBRACE:        "{",
	PIPE:          "|",
	PIPE_EQ:       "|=",
	PIPE_PIPE:     "||",
	RBRACE:        "}",
	DOLLAR_LPAREN: "$(",
}

// keywords maps keyword lexemes to their Kind. Looked up only for
// identifiers longer than zero characters that aren't already known to be
// punctuation.
var keywords = map[string]Kind{
	"break":    BREAK,
	"continue": CONTINUE,
	"else":     ELSE,
	"false":    FALSE,
	"func":     FUNC,
	"if":       IF,
	"include":  INCLUDE,
	"let":      LET,
	"mut":      MUT,
	"return":   RETURN,
	"true":     TRUE,
	"while":    WHILE,
}

// LookupIdent returns KEYWORD for lit if it names a keyword, else IDENTIFIER.
func LookupIdent(lit string) Kind {
	if k, ok := keywords[lit]; ok {
		return k
	}
	return IDENTIFIER
}

// puncts lists every punctuation lexeme, longest first within a shared
// prefix, so the lexer can longest-match against it.
var puncts = []struct {
	lit  string
	kind Kind
}{
	{"!=", BANG_EQ},
	{"!", BANG},
	{"%=", PERCENT_EQ},
	{"%", PERCENT},
	{"&&", AMP_AMP},
	{"&=", AMP_EQ},
	{"&", AMP},
	{"(", LPAREN},
	{")", RPAREN},
	{"*=", STAR_EQ},
	{"*", STAR},
	{"+=", PLUS_EQ},
	{"+", PLUS},
	{",", COMMA},
	{"-=", MINUS_EQ},
	{"-", MINUS},
	{"/=", SLASH_EQ},
	{"/", SLASH},
	{";", SEMI},
	{"<=", LT_EQ},
	{"<", LT},
	{"==", EQ_EQ},
	{"=", EQ},
	{">=", GT_EQ},
	{">", GT},
	{"{", LBRACE},
	{"||", PIPE_PIPE},
	{"|=", PIPE_EQ},
	{"|", PIPE},
	{"}", RBRACE},
	{"$(", DOLLAR_LPAREN},
}

// Punctuation returns the ordered list of recognized punctuation lexemes
// and their kind, longest lexemes sharing a prefix listed first. stdlib
// controls whether "$(" is included, since it is only a valid token while
// lexing the standard-library module.
func Punctuation(stdlib bool) []struct {
	Lit  string
	Kind Kind
} {
	out := make([]struct {
		Lit  string
		Kind Kind
	}, 0, len(puncts))
	for _, p := range puncts {
		if p.kind == DOLLAR_LPAREN && !stdlib {
			continue
		}
		out = append(out, struct {
			Lit  string
			Kind Kind
		}{p.lit, p.kind})
	}
	return out
}

// Value carries the payload of a token (for LITERAL_INT, IDENTIFIER,
// LITERAL_CHR/LITERAL_STR and ERROR).
type Value struct {
	IntVal int64
	StrVal string
}

// Token is a single lexical token with its span.
type Token struct {
	Kind  Kind
	Span  Span
	Value Value
}

// Lit returns the literal/display text of the token, preferring the
// decoded payload over the kind's generic name where one exists.
func (t Token) Lit() string {
	switch t.Kind {
	case IDENTIFIER, ERROR:
		return t.Value.StrVal
	case LITERAL_INT:
		return t.Kind.String()
	case LITERAL_CHR, LITERAL_STR:
		return t.Kind.String()
	default:
		return t.Kind.GoString()
	}
}
