package token

// IndentRecord describes the leading whitespace of one physical line.
// The lexer measures; judging correctness is the style rule's job.
type IndentRecord struct {
	Line   uint32 // 1-based physical line number
	Spaces uint32 // count of leading space bytes
	Tabs   uint32 // count of leading tab bytes
	Mixed  bool   // both tabs and spaces appear in the leading run
	Width  uint32 // computed indentation width (tab advances to a multiple of 8)
	Blank  bool   // the line holds nothing but whitespace or a comment
}

// TabWidth is the column width a tab advances to, matching the CPython
// tokenizer's convention.
const TabWidth = 8
