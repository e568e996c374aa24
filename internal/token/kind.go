package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// Cleared marks a token removed in place; dropped on serialization.
	Cleared
	// InlineHTML is text outside of PHP tags.
	InlineHTML
	// OpenTag is '<?php' plus at most one trailing whitespace character.
	OpenTag
	// OpenTagWithEcho is '<?='.
	OpenTagWithEcho
	// CloseTag is '?>' plus at most one trailing newline.
	CloseTag
	// Whitespace is a maximal run of spaces, tabs and line breaks.
	Whitespace
	// Comment is a '//', '#' or '/* */' comment.
	Comment
	// DocComment is a '/** */' comment.
	DocComment
	// Ident represents a bare name (function, class, constant, type).
	Ident
	// Variable represents '$name'.
	Variable
	// IntLit represents an integer literal.
	IntLit
	// FloatLit represents a floating point literal.
	FloatLit
	// StringLit represents a quoted string literal (single, double or backtick).
	StringLit
	// Heredoc represents a complete heredoc or nowdoc literal.
	Heredoc
	// Cast represents a type cast such as '(int)'.
	Cast

	kwBegin
	KwAbstract     // abstract
	KwArray        // array
	KwAs           // as
	KwBreak        // break
	KwCallable     // callable
	KwCase         // case
	KwCatch        // catch
	KwClass        // class
	KwClone        // clone
	KwConst        // const
	KwContinue     // continue
	KwDeclare      // declare
	KwDefault      // default
	KwDo           // do
	KwEcho         // echo
	KwElse         // else
	KwElseif       // elseif
	KwEmpty        // empty
	KwEnddeclare   // enddeclare
	KwEndfor       // endfor
	KwEndforeach   // endforeach
	KwEndif        // endif
	KwEndswitch    // endswitch
	KwEndwhile     // endwhile
	KwEnum         // enum
	KwEval         // eval
	KwExit         // exit, die
	KwExtends      // extends
	KwFinal        // final
	KwFinally      // finally
	KwFn           // fn
	KwFor          // for
	KwForeach      // foreach
	KwFunction     // function
	KwGlobal       // global
	KwGoto         // goto
	KwHaltCompiler // __halt_compiler
	KwIf           // if
	KwImplements   // implements
	KwInclude      // include, include_once
	KwInstanceof   // instanceof
	KwInsteadof    // insteadof
	KwInterface    // interface
	KwIsset        // isset
	KwList         // list
	KwLogicalOp    // and, or, xor
	KwMagicConst   // __CLASS__, __DIR__, ...
	KwMatch        // match
	KwNamespace    // namespace
	KwNew          // new
	KwPrint        // print
	KwPrivate      // private
	KwProtected    // protected
	KwPublic       // public
	KwReadonly     // readonly
	KwRequire      // require, require_once
	KwReturn       // return
	KwStatic       // static
	KwSwitch       // switch
	KwThrow        // throw
	KwTrait        // trait
	KwTry          // try
	KwUnset        // unset
	KwUse          // use
	KwVar          // var
	KwWhile        // while
	KwYield        // yield
	kwEnd

	// LParen represents '('.
	LParen
	// RParen represents ')'.
	RParen
	// LBrace represents '{'.
	LBrace
	// RBrace represents '}'.
	RBrace
	// LBracket represents '['.
	LBracket
	// RBracket represents ']'.
	RBracket
	// AttributeOpen represents '#['.
	AttributeOpen
	// Semicolon represents ';'.
	Semicolon
	// Comma represents ','.
	Comma
	// Colon represents ':'.
	Colon
	// DoubleColon represents '::'.
	DoubleColon
	// ObjectOperator represents '->'.
	ObjectOperator
	// NullsafeObjectOperator represents '?->'.
	NullsafeObjectOperator
	// DoubleArrow represents '=>'.
	DoubleArrow
	// NsSeparator represents '\'.
	NsSeparator
	// Ellipsis represents '...'.
	Ellipsis
	// Amp represents '&'.
	Amp
	// Pipe represents '|'.
	Pipe
	// Question represents '?'.
	Question
	// Assign represents '='.
	Assign
	// Dollar represents a lone '$' (variable-variable prefix).
	Dollar
	// Other is the catch-all for every remaining operator.
	Other
)

var kindNames = [...]string{
	Invalid:                "Invalid",
	Cleared:                "Cleared",
	InlineHTML:             "InlineHTML",
	OpenTag:                "OpenTag",
	OpenTagWithEcho:        "OpenTagWithEcho",
	CloseTag:               "CloseTag",
	Whitespace:             "Whitespace",
	Comment:                "Comment",
	DocComment:             "DocComment",
	Ident:                  "Ident",
	Variable:               "Variable",
	IntLit:                 "IntLit",
	FloatLit:               "FloatLit",
	StringLit:              "StringLit",
	Heredoc:                "Heredoc",
	Cast:                   "Cast",
	LParen:                 "LParen",
	RParen:                 "RParen",
	LBrace:                 "LBrace",
	RBrace:                 "RBrace",
	LBracket:               "LBracket",
	RBracket:               "RBracket",
	AttributeOpen:          "AttributeOpen",
	Semicolon:              "Semicolon",
	Comma:                  "Comma",
	Colon:                  "Colon",
	DoubleColon:            "DoubleColon",
	ObjectOperator:         "ObjectOperator",
	NullsafeObjectOperator: "NullsafeObjectOperator",
	DoubleArrow:            "DoubleArrow",
	NsSeparator:            "NsSeparator",
	Ellipsis:               "Ellipsis",
	Amp:                    "Amp",
	Pipe:                   "Pipe",
	Question:               "Question",
	Assign:                 "Assign",
	Dollar:                 "Dollar",
	Other:                  "Other",
}

// String returns the name of the kind; keywords render as Kw + spelling.
func (k Kind) String() string {
	if k.IsKeyword() {
		if spelling, ok := keywordSpelling[k]; ok {
			return "Kw(" + spelling + ")"
		}
		return "Kw"
	}
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Unknown"
}

// IsKeyword reports whether k is one of the reserved-word kinds.
func (k Kind) IsKeyword() bool {
	return k > kwBegin && k < kwEnd
}
