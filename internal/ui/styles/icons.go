package styles

// Icons holds the symbols used in the list table and picker.
type Icons struct {
	Current   string
	Dirty     string
	Clean     string
	ArrowUp   string
	ArrowDown string
	Rebase    string
}

// Unicode symbols, the default.
var unicodeIcons = Icons{
	Current:   "▶",
	Dirty:     "●",
	Clean:     "✓",
	ArrowUp:   "↑",
	ArrowDown: "↓",
	Rebase:    "⟳",
}

// ASCII symbols for terminals without unicode fonts.
var asciiIcons = Icons{
	Current:   ">",
	Dirty:     "*",
	Clean:     "-",
	ArrowUp:   "^",
	ArrowDown: "v",
	Rebase:    "R",
}

// IconSet returns the ASCII set when ascii is true, else the unicode set.
func IconSet(ascii bool) Icons {
	if ascii {
		return asciiIcons
	}
	return unicodeIcons
}
