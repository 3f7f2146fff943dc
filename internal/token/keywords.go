package token

var keywords = map[string]Kind{
	"def":      KwDef,
	"class":    KwClass,
	"if":       KwIf,
	"elif":     KwElif,
	"else":     KwElse,
	"while":    KwWhile,
	"for":      KwFor,
	"in":       KwIn,
	"try":      KwTry,
	"except":   KwExcept,
	"finally":  KwFinally,
	"with":     KwWith,
	"as":       KwAs,
	"import":   KwImport,
	"from":     KwFrom,
	"return":   KwReturn,
	"pass":     KwPass,
	"break":    KwBreak,
	"continue": KwContinue,
	"lambda":   KwLambda,
	"not":      KwNot,
	"and":      KwAnd,
	"or":       KwOr,
	"is":       KwIs,
	"None":     KwNone,
	"True":     KwTrue,
	"False":    KwFalse,
	"global":   KwGlobal,
	"nonlocal": KwNonlocal,
	"del":      KwDel,
	"raise":    KwRaise,
	"yield":    KwYield,
	"assert":   KwAssert,
	"async":    KwAsync,
	"await":    KwAwait,
}

// LookupKeyword resolves an identifier's text to its keyword kind, or Ident.
func LookupKeyword(text string) Kind {
	if k, ok := keywords[text]; ok {
		return k
	}
	return Ident
}
