package driver

import (
	"pylens/internal/config"
	"pylens/internal/diag"
	"pylens/internal/lexer"
	"pylens/internal/source"
	"pylens/internal/token"
)

// TokenizeResult is the output of the standalone tokenize path.
type TokenizeResult struct {
	FileID  source.FileID
	Tokens  []token.Token
	Indents []token.IndentRecord
	Bag     *diag.Bag
}

// TokenizeFile lexes one already-loaded file without parsing it. Lexical
// recovery diagnostics land in the returned bag.
func TokenizeFile(fileSet *source.FileSet, id source.FileID, cfg config.Config) *TokenizeResult {
	file := fileSet.Get(id)
	bag := diag.NewBag(cfg.Rules.MaxDiagnostics)
	toks, indents := lexer.Tokenize(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	return &TokenizeResult{
		FileID:  id,
		Tokens:  toks,
		Indents: indents,
		Bag:     bag,
	}
}
