package rules

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"pylens/internal/diag"
	"pylens/internal/symbols"
)

// NamingConvention enforces snake_case for functions, methods, variables,
// parameters and members, and PascalCase for classes. A module-level name
// assigned a literal exactly once may instead be SCREAMING_SNAKE_CASE.
// Each convention can be replaced by a regular expression in the config.
type NamingConvention struct{}

func (NamingConvention) Name() string     { return "naming-convention" }
func (NamingConvention) Category() string { return "naming" }

func (NamingConvention) Check(ctx *Context) {
	overrides := compileOverrides(ctx)
	ctx.Scopes.Module.Walk(func(s *symbols.Scope) {
		for _, sym := range s.Order {
			checkName(ctx, s, sym, overrides)
		}
	})
}

func compileOverrides(ctx *Context) map[string]*regexp.Regexp {
	if len(ctx.Config.Rules.Naming) == 0 {
		return nil
	}
	out := make(map[string]*regexp.Regexp, len(ctx.Config.Rules.Naming))
	for kind, pattern := range ctx.Config.Rules.Naming {
		re, err := regexp.Compile(pattern)
		if err != nil {
			// An unparsable override falls back to the builtin check.
			continue
		}
		out[kind] = re
	}
	return out
}

func checkName(ctx *Context, scope *symbols.Scope, sym *symbols.Symbol, overrides map[string]*regexp.Regexp) {
	name := sym.Name
	if name == "" || isDunder(name) {
		return
	}
	switch sym.Kind {
	case symbols.SymFunction:
		if !matches(overrides, "function", name, isSnakeCase) {
			ctx.warn(diag.LintBadFunctionName, sym.Decl,
				fmt.Sprintf("function name %q should be snake_case", name))
		}
	case symbols.SymMethod:
		if !matches(overrides, "method", name, isSnakeCase) {
			ctx.warn(diag.LintBadFunctionName, sym.Decl,
				fmt.Sprintf("method name %q should be snake_case", name))
		}
	case symbols.SymClass:
		if !matches(overrides, "class", name, isPascalCase) {
			ctx.warn(diag.LintBadClassName, sym.Decl,
				fmt.Sprintf("class name %q should be PascalCase", name))
		}
	case symbols.SymParameter:
		if !matches(overrides, "parameter", name, isSnakeCase) {
			ctx.warn(diag.LintBadVariableName, sym.Decl,
				fmt.Sprintf("parameter name %q should be snake_case", name))
		}
	case symbols.SymVariable, symbols.SymMember:
		if scope.Kind == symbols.ScopeModule && sym.ConstValue {
			// A one-shot literal at module level is a constant and may
			// use either convention.
			if matches(overrides, "constant", name, isScreamingCase) {
				return
			}
		}
		if !matches(overrides, "variable", name, isSnakeCase) {
			ctx.warn(diag.LintBadVariableName, sym.Decl,
				fmt.Sprintf("variable name %q should be snake_case", name))
		}
	}
	// Imports keep whatever name the imported module uses.
}

func matches(overrides map[string]*regexp.Regexp, kind, name string, builtin func(string) bool) bool {
	if re, ok := overrides[kind]; ok {
		return re.MatchString(name)
	}
	return builtin(name)
}

func isDunder(name string) bool {
	return strings.HasPrefix(name, "__") && strings.HasSuffix(name, "__")
}

// isSnakeCase accepts lowercase names with digits and underscores.
func isSnakeCase(name string) bool {
	for _, r := range name {
		if unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

// isPascalCase requires an uppercase first letter and forbids underscores.
func isPascalCase(name string) bool {
	first := true
	for _, r := range name {
		if first {
			if !unicode.IsUpper(r) {
				return false
			}
			first = false
			continue
		}
		if r == '_' {
			return false
		}
	}
	return !first
}

// isScreamingCase accepts uppercase names with digits and underscores.
func isScreamingCase(name string) bool {
	hasUpper := false
	for _, r := range name {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			hasUpper = true
		}
	}
	return hasUpper
}
