package lisp

// Well-known symbol names, spec.md §6.
const (
	SymNil             = "nil"
	SymT               = "t"
	SymRest            = "&rest"
	SymOptional        = "&optional"
	SymLambda          = "lambda"
	SymMacro           = "macro"
	SymQuote           = "quote"
	SymQuasiQuote      = "quasi-quote"
	SymUnquote         = "unquote"
	SymUnquoteSplicing = "unquote-splicing"
	SymCat             = "cat"
	SymList            = "list"
	SymStreamName      = "*stream-name*"
	SymStreamLine      = "*stream-line*"
)
