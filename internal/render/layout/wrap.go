package layout

import (
	"image"
	"strings"
	"unicode"
	"unicode/utf8"
)

// WrapAndClip lays text out inside r: greedy word wrap to the region width,
// then stacked top-down until the next line would cross the bottom edge.
// Text that does not fit is dropped. Embedded newlines start a new line.
func WrapAndClip(text string, r Region) []Line {
	return place(wrapText(text, r.Columns()), r)
}

// WrapAndClipList is WrapAndClip for list content: every item is wrapped on
// its own so a long item never runs into the next one.
func WrapAndClipList(items []string, r Region) []Line {
	cols := r.Columns()
	var rows []string
	for _, item := range items {
		rows = append(rows, wrapText(item, cols)...)
	}
	return place(rows, r)
}

func place(rows []string, r Region) []Line {
	fit := min(len(rows), r.Rows())
	if fit <= 0 {
		return nil
	}
	rect := r.Rect.Canon()
	lines := make([]Line, 0, fit)
	for i := 0; i < fit; i++ {
		lines = append(lines, Line{
			Text:   rows[i],
			Origin: image.Pt(rect.Min.X, rect.Min.Y+(i+1)*r.Style.GlyphHeight),
		})
	}
	return lines
}

// wrapText breaks text into rows of at most cols runes.
func wrapText(text string, cols int) []string {
	if cols <= 0 || text == "" {
		return nil
	}
	var rows []string
	for _, paragraph := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		rows = append(rows, wrapParagraph(paragraph, cols)...)
	}
	return rows
}

// wrapParagraph keeps the whitespace between words that end up on the same
// row, counting every whitespace rune as one blank column. Whitespace at a
// row break is dropped.
func wrapParagraph(paragraph string, cols int) []string {
	var (
		rows    []string
		current strings.Builder
		used    int
	)
	flush := func() {
		if used > 0 {
			rows = append(rows, current.String())
			current.Reset()
			used = 0
		}
	}
	for _, tok := range tokenize(paragraph) {
		n := utf8.RuneCountInString(tok.word)
		switch {
		case used > 0 && used+tok.gap+n <= cols:
			current.WriteString(strings.Repeat(" ", tok.gap))
			current.WriteString(tok.word)
			used += tok.gap + n
		case n <= cols:
			flush()
			current.WriteString(tok.word)
			used = n
		default:
			flush()
			chunks := splitRunes(tok.word, cols)
			rows = append(rows, chunks[:len(chunks)-1]...)
			last := chunks[len(chunks)-1]
			current.WriteString(last)
			used = utf8.RuneCountInString(last)
		}
	}
	flush()
	return rows
}

type token struct {
	gap  int
	word string
}

// tokenize splits s into words, each with the count of whitespace runes
// before it.
func tokenize(s string) []token {
	var (
		tokens []token
		gap    int
		word   strings.Builder
	)
	for _, r := range s {
		if unicode.IsSpace(r) {
			if word.Len() > 0 {
				tokens = append(tokens, token{gap: gap, word: word.String()})
				word.Reset()
				gap = 0
			}
			gap++
			continue
		}
		word.WriteRune(r)
	}
	if word.Len() > 0 {
		tokens = append(tokens, token{gap: gap, word: word.String()})
	}
	return tokens
}

// splitRunes hard-splits word into chunks of cols runes; the last chunk may
// be shorter.
func splitRunes(word string, cols int) []string {
	var chunks []string
	runes := []rune(word)
	for len(runes) > cols {
		chunks = append(chunks, string(runes[:cols]))
		runes = runes[cols:]
	}
	return append(chunks, string(runes))
}

func runeCount(s string) int { return utf8.RuneCountInString(s) }
