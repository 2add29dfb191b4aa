package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// I/O
	IOSourceUnreadable Code = 1001

	// Preprocessor
	PrepInfo             Code = 2000
	PrepIncludeNotFound  Code = 2001
	PrepIncludeDepth     Code = 2002
	PrepIncludeCycle     Code = 2003
	PrepMacroDepth       Code = 2004
	PrepMacroRedefined   Code = 2005
	PrepUnknownDirective Code = 2006
	PrepBadDirective     Code = 2007
	PrepUndefUnknown     Code = 2008

	// Lexical
	LexInfo                     Code = 3000
	LexUnknownChar              Code = 3001
	LexUnterminatedString       Code = 3002
	LexUnterminatedBlockComment Code = 3003
	LexBadNumber                Code = 3004

	// Syntax
	SynInfo               Code = 4000
	SynUnexpectedToken    Code = 4001
	SynUnexpectedTopLevel Code = 4002
	SynExpectIdentifier   Code = 4003
	SynExpectSemicolon    Code = 4004
	SynExpectExpression   Code = 4005
	SynExpectType         Code = 4006
	SynExpectLBrace       Code = 4007
	SynExpectRBrace       Code = 4008
	SynExpectLParen       Code = 4009
	SynExpectRParen       Code = 4010
	SynExpectMember       Code = 4011
	SynExpectStatement    Code = 4012
	SynExpectColon        Code = 4013
	SynForMissingIn       Code = 4014
	SynModifierNotAllowed Code = 4015
	SynEventOutsideBody   Code = 4016
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	IOSourceUnreadable:          "Source file unreadable",
	PrepInfo:                    "Preprocessor information",
	PrepIncludeNotFound:         "Included file not found",
	PrepIncludeDepth:            "Include depth limit exceeded",
	PrepIncludeCycle:            "Include cycle detected",
	PrepMacroDepth:              "Macro recursion limit exceeded",
	PrepMacroRedefined:          "Macro redefined",
	PrepUnknownDirective:        "Unknown preprocessor directive",
	PrepBadDirective:            "Malformed preprocessor directive",
	PrepUndefUnknown:            "Undefining unknown macro",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Bad number",
	SynInfo:                     "Syntax information",
	SynUnexpectedToken:          "Unexpected token",
	SynUnexpectedTopLevel:       "Unexpected top-level construct",
	SynExpectIdentifier:         "Expect identifier",
	SynExpectSemicolon:          "Expect semicolon",
	SynExpectExpression:         "Expect expression",
	SynExpectType:               "Expect type",
	SynExpectLBrace:             "Expect '{'",
	SynExpectRBrace:             "Expect '}'",
	SynExpectLParen:             "Expect '('",
	SynExpectRParen:             "Expect ')'",
	SynExpectMember:             "Expect contract member",
	SynExpectStatement:          "Expect statement",
	SynExpectColon:              "Expect colon",
	SynForMissingIn:             "Missing 'in' in for loop",
	SynModifierNotAllowed:       "Modifier not allowed here",
	SynEventOutsideBody:         "Event declaration outside contract body",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("PRE%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("SYN%04d", ic)
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
