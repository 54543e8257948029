package diag

import (
	"fmt"
)

// Code is a compact, stable identifier for a diagnostic kind.
// Codes are banded by phase: 1000s lexer, 2000s grammar, 3000s argument
// handling, 4000s interpreter.
type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002

	// Grammar
	SynInfo               Code = 2000
	SynExpected           Code = 2001
	SynUnbalanced         Code = 2002
	SynUnexpected         Code = 2003
	SynStatementDelimiter Code = 2004
	SynStartStatement     Code = 2005
	SynBadMethod          Code = 2006
	SynTrailingText       Code = 2007
	SynFileName           Code = 2008
	SynImportItem         Code = 2009
	SynFnName             Code = 2010
	SynFnParams           Code = 2011
	SynFnBody             Code = 2012

	// Method arguments
	ArgCountMismatch Code = 3001
	ArgBadEscape     Code = 3002
	ArgUnbalanced    Code = 3003

	// Interpretation
	InterpInfo              Code = 4000
	InterpNoSuchMethod      Code = 4001
	InterpNoSuchTemplate    Code = 4002
	InterpTemplateArity     Code = 4003
	InterpTemplateRecursion Code = 4004
	InterpImportCycle       Code = 4005
	InterpImportFailed      Code = 4006
	InterpCodeNotPresent    Code = 4007
	InterpUppercaseMethod   Code = 4008
	InterpDispatch          Code = 4009
)

var codeDescription = map[Code]string{
	UnknownCode: "unknown error",

	LexInfo:               "lexical info",
	LexUnknownChar:        "unknown character",
	LexUnterminatedString: "unterminated string literal",

	SynInfo:               "syntax info",
	SynExpected:           "unexpected token",
	SynUnbalanced:         "unbalanced delimiter",
	SynUnexpected:         "unexpected construct",
	SynStatementDelimiter: "expected '(' for methods or '{' for children",
	SynStartStatement:     "expected an entity name",
	SynBadMethod:          "expected a method name",
	SynTrailingText:       "text after root statement",
	SynFileName:           "expected a file path after 'use'",
	SynImportItem:         "bad import item",
	SynFnName:             "expected a template name after 'fn'",
	SynFnParams:           "bad template parameter list",
	SynFnBody:             "bad template body",

	ArgCountMismatch: "argument count mismatch",
	ArgBadEscape:     "bad escape sequence",
	ArgUnbalanced:    "unbalanced delimiter in arguments",

	InterpInfo:              "interpreter info",
	InterpNoSuchMethod:      "no such method",
	InterpNoSuchTemplate:    "no such template",
	InterpTemplateArity:     "wrong number of template arguments",
	InterpTemplateRecursion: "template recursion limit exceeded",
	InterpImportCycle:       "import cycle",
	InterpImportFailed:      "import failed",
	InterpCodeNotPresent:    "code handle not registered",
	InterpUppercaseMethod:   "method name starts with an uppercase letter",
	InterpDispatch:          "method dispatch failed",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("ARG%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("INT%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
