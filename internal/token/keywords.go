package token

var keywords = map[string]Kind{
	"contract": KwContract,
	"let":      KwLet,
	"const":    KwConst,
	"fn":       KwFn,
	"event":    KwEvent,
	"emit":     KwEmit,
	"if":       KwIf,
	"else":     KwElse,
	"while":    KwWhile,
	"for":      KwFor,
	"in":       KwIn,
	"break":    KwBreak,
	"continue": KwContinue,
	"return":   KwReturn,
	"pub":      KwPub,
	"payable":  KwPayable,
	"view":     KwView,
	"map":      KwMap,
	"true":     KwTrue,
	"false":    KwFalse,
}

// LookupKeyword returns the keyword kind for an identifier spelling.
// Keywords are case-sensitive; only lowercase spellings are recognized.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
