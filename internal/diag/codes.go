package diag

import (
	"fmt"
)

// Code is a compact, stable identifier for one diagnostic kind.
type Code uint16

const (
	UnknownCode Code = 0

	// Lexical (1000-1999)
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBadNumber          Code = 1003
	LexBadDedent          Code = 1004

	// Syntax (2000-2999)
	SynUnexpectedToken   Code = 2001
	SynExpectColon       Code = 2002
	SynExpectIdentifier  Code = 2003
	SynUnclosedParen     Code = 2004
	SynBadComparison     Code = 2005
	SynBadParamList      Code = 2006
	SynDecoratorOrphan   Code = 2007
	SynTryWithoutHandler Code = 2008
	SynExpectIndent      Code = 2009
	SynExpectExpression  Code = 2010

	// Lint rules (4000-4999)
	LintLineTooLong        Code = 4001
	LintBadFunctionName    Code = 4002
	LintBadClassName       Code = 4003
	LintBadVariableName    Code = 4004
	LintMultipleImports    Code = 4010
	LintOperatorSpacing    Code = 4011
	LintCommaSpacing       Code = 4012
	LintParenSpacing       Code = 4013
	LintBadIndentWidth     Code = 4014
	LintMixedIndent        Code = 4015
	LintTabIndent          Code = 4016
	LintTrailingWhitespace Code = 4017
	LintUnusedImport       Code = 4020
	LintUnusedVariable     Code = 4021
	LintUnusedFunction     Code = 4022
	LintUnusedMember       Code = 4023
	LintInternal           Code = 4099

	// Driver and observability (9000-9999)
	IOLoadFileError Code = 9001
	ObsTimings      Code = 9100
)

var codeDescription = map[Code]string{
	UnknownCode:            "unknown diagnostic",
	LexUnknownChar:         "unrecognized character",
	LexUnterminatedString:  "unterminated string literal",
	LexBadNumber:           "malformed numeric literal",
	LexBadDedent:           "dedent does not match any outer indentation level",
	SynUnexpectedToken:     "unexpected token",
	SynExpectColon:         "expected ':'",
	SynExpectIdentifier:    "expected identifier",
	SynUnclosedParen:       "unmatched bracket",
	SynBadComparison:       "invalid comparison operator",
	SynBadParamList:        "malformed parameter list",
	SynDecoratorOrphan:     "decorator must be followed by a function or class definition",
	SynTryWithoutHandler:   "try statement has no except or finally clause",
	SynExpectIndent:        "expected an indented block",
	SynExpectExpression:    "expected expression",
	LintLineTooLong:        "line too long",
	LintBadFunctionName:    "function name does not follow snake_case",
	LintBadClassName:       "class name does not follow PascalCase",
	LintBadVariableName:    "variable name does not follow snake_case",
	LintMultipleImports:    "multiple modules imported on one line",
	LintOperatorSpacing:    "operator spacing",
	LintCommaSpacing:       "comma spacing",
	LintParenSpacing:       "whitespace inside parentheses",
	LintBadIndentWidth:     "inconsistent indentation width",
	LintMixedIndent:        "mixed tabs and spaces in indentation",
	LintTabIndent:          "tab used for indentation",
	LintTrailingWhitespace: "trailing whitespace",
	LintUnusedImport:       "unused import",
	LintUnusedVariable:     "unused variable",
	LintUnusedFunction:     "unused function",
	LintUnusedMember:       "unused class member",
	LintInternal:           "internal rule fault",
	IOLoadFileError:        "failed to read source file",
	ObsTimings:             "pipeline timings",
}

// Category returns the suggested category tag for the code.
func (c Code) Category() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 3000:
		return "syntax"
	case c == LintLineTooLong:
		return "length"
	case c == LintBadFunctionName || c == LintBadClassName || c == LintBadVariableName:
		return "naming"
	case c >= LintUnusedImport && c <= LintUnusedMember:
		return "unused"
	case c == LintInternal:
		return "internal"
	case ic >= 4000 && ic < 5000:
		return "style"
	case c == IOLoadFileError:
		return "io"
	case c == ObsTimings:
		return "timings"
	}
	return "unknown"
}

// ID returns the stable string form, e.g. "SYN2002" or "PLY4001".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("PLY%04d", ic)
	case ic >= 9000 && ic < 10000:
		return fmt.Sprintf("DRV%04d", ic)
	}
	return "E0000"
}

// Title returns a short human description of the code.
func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
