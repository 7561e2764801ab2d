package filterexpr

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// filterLexer defines the token types of a filter expression.
var filterLexer = lexer.MustSimple([]lexer.SimpleRule{
	// Keywords (before identifiers)
	{Name: "Keyword", Pattern: `(?i)\b(?:AND|TRUE|FALSE)\b`},

	// Literals (hex before numbers, floats before integers)
	{Name: "Hex", Pattern: `0[xX][0-9a-fA-F]*`},
	{Name: "Float", Pattern: `[-+]?\d+\.\d+(?:[eE][-+]?\d+)?`},
	{Name: "Int", Pattern: `[-+]?\d+`},
	{Name: "String", Pattern: `'(?:[^']|'')*'`},

	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Equal", Pattern: `=`},

	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
})

// rawExpr is the parse tree of `col = lit AND col = lit ...`.
type rawExpr struct {
	Pos   lexer.Position
	Terms []*rawTerm `parser:"@@ ( 'AND' @@ )*"`
}

type rawTerm struct {
	Pos    lexer.Position
	Column string    `parser:"@Ident '='"`
	Value  *rawValue `parser:"@@"`
}

// rawValue keeps literals as source text; conversion happens after parsing.
type rawValue struct {
	Pos    lexer.Position
	Bool   *string `parser:"  @('TRUE' | 'FALSE')"`
	Hex    *string `parser:"| @Hex"`
	Float  *string `parser:"| @Float"`
	Int    *string `parser:"| @Int"`
	String *string `parser:"| @String"`
}

var parser = participle.MustBuild[rawExpr](
	participle.Lexer(filterLexer),
	participle.Elide("Whitespace"),
	participle.CaseInsensitive("Keyword"),
)
