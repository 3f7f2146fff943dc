package token

import "testing"

func TestLookupKeyword(t *testing.T) {
	cases := []struct {
		text string
		want Kind
	}{
		{"def", KwDef},
		{"class", KwClass},
		{"import", KwImport},
		{"None", KwNone},
		{"none", Ident}, // keywords are case-sensitive
		{"defx", Ident},
		{"", Ident},
	}
	for _, tc := range cases {
		if got := LookupKeyword(tc.text); got != tc.want {
			t.Errorf("LookupKeyword(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestTokenClassification(t *testing.T) {
	if !(Token{Kind: KwDef}).IsKeyword() {
		t.Error("def should be a keyword")
	}
	if (Token{Kind: Ident}).IsKeyword() {
		t.Error("Ident is not a keyword")
	}
	if !(Token{Kind: StringLit}).IsLiteral() {
		t.Error("StringLit should be a literal")
	}
	if !(Token{Kind: KwNone}).IsLiteral() {
		t.Error("None should count as a literal")
	}
	if !(Token{Kind: PlusAssign}).IsAssignOp() {
		t.Error("+= should be an assignment operator")
	}
	if (Token{Kind: EqEq}).IsAssignOp() {
		t.Error("== is not an assignment operator")
	}
	if !(Token{Kind: EqEq}).IsBinaryOp() {
		t.Error("== should be a binary operator")
	}
}

func TestKindString(t *testing.T) {
	if Newline.String() != "Newline" {
		t.Errorf("Newline.String() = %q", Newline.String())
	}
	if Plus.String() != "+" {
		t.Errorf("Plus.String() = %q", Plus.String())
	}
}
