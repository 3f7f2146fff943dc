package rules

// SyntaxValidity forwards the recovery diagnostics collected during
// lexing and parsing into the rule output, keeping severity, code, and
// span intact. Running it as a rule means one collector owns the final
// sort, dedup, and cap for the whole file.
type SyntaxValidity struct{}

func (SyntaxValidity) Name() string     { return "syntax-validity" }
func (SyntaxValidity) Category() string { return "syntax" }

func (SyntaxValidity) Check(ctx *Context) {
	for _, d := range ctx.SyntaxDiags {
		ctx.Reporter.Report(d.Code, d.Severity, d.Primary, d.Message, d.Notes)
	}
}
