// Package markdown renders the Markdown subset that article bodies are
// written in. This is deliberately not CommonMark: no nested lists, no
// reference links, naive tables. Stored content was authored against these
// exact rules, so the renderer must reproduce them rather than a general
// Markdown grammar.
//
// Rendering happens at display time, never at write time, so a rule change
// applies retroactively to everything already stored.
package markdown

import (
	"regexp"
	"strings"
)

var (
	inlineCodeRe = regexp.MustCompile("`([^`]+)`")
	boldItalicRe = regexp.MustCompile(`\*\*\*(.+?)\*\*\*`)
	boldRe       = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicRe     = regexp.MustCompile(`\*([^*]+)\*`)
	linkRe       = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	orderedRe    = regexp.MustCompile(`^\d+\. (.*)$`)
	ruleRe       = regexp.MustCompile(`^(?:-{3,}|\*{3,}|_{3,})$`)
	tableSepRe   = regexp.MustCompile(`^:?-+:?$`)
	fenceLangRe  = regexp.MustCompile(`^\w*$`)
)

type lineKind int

const (
	kindBlank lineKind = iota
	kindHeading
	kindQuote
	kindRule
	kindBullet
	kindNumbered
	kindTableRow
	kindCode
	kindText
)

type parsedLine struct {
	kind  lineKind
	level int      // heading level
	text  string   // heading/quote/list/paragraph text
	cells []string // table row cells
	sep   bool     // table separator row
	lang  string   // fenced block language hint
	code  string   // fenced block body, verbatim
}

// Render converts Markdown to HTML. Angle brackets are escaped before any
// other processing, so raw HTML in the source can never inject tags.
func Render(md string) string {
	escaped := escapeAngles(md)
	lines := tokenize(escaped)
	return assemble(lines)
}

func escapeAngles(s string) string {
	s = strings.ReplaceAll(s, "<", "&lt;")
	return strings.ReplaceAll(s, ">", "&gt;")
}

// tokenize classifies every source line. Fenced code blocks are consumed
// first, before any other rule can touch their contents.
func tokenize(src string) []parsedLine {
	raw := strings.Split(src, "\n")
	var out []parsedLine

	for i := 0; i < len(raw); i++ {
		line := raw[i]

		if lang, ok := fenceOpen(line); ok {
			var body []string
			closed := false
			for j := i + 1; j < len(raw); j++ {
				if strings.HasPrefix(strings.TrimSpace(raw[j]), "```") {
					i = j
					closed = true
					break
				}
				body = append(body, raw[j])
			}
			if !closed {
				i = len(raw) - 1
			}
			out = append(out, parsedLine{
				kind: kindCode,
				lang: lang,
				code: strings.Join(body, "\n"),
			})
			continue
		}

		out = append(out, classify(line))
	}
	return out
}

// fenceOpen reports whether a line opens a fenced code block, and with which
// language hint.
func fenceOpen(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "```") {
		return "", false
	}
	lang := strings.TrimPrefix(trimmed, "```")
	if !fenceLangRe.MatchString(lang) {
		return "", false
	}
	return lang, true
}

func classify(line string) parsedLine {
	trimmed := strings.TrimSpace(line)

	switch {
	case trimmed == "":
		return parsedLine{kind: kindBlank}
	case strings.HasPrefix(line, "### "):
		return parsedLine{kind: kindHeading, level: 3, text: strings.TrimPrefix(line, "### ")}
	case strings.HasPrefix(line, "## "):
		return parsedLine{kind: kindHeading, level: 2, text: strings.TrimPrefix(line, "## ")}
	case strings.HasPrefix(line, "# "):
		return parsedLine{kind: kindHeading, level: 1, text: strings.TrimPrefix(line, "# ")}
	case strings.HasPrefix(line, "&gt; "):
		return parsedLine{kind: kindQuote, text: strings.TrimPrefix(line, "&gt; ")}
	case ruleRe.MatchString(trimmed):
		return parsedLine{kind: kindRule}
	case strings.HasPrefix(line, "* "):
		return parsedLine{kind: kindBullet, text: strings.TrimPrefix(line, "* ")}
	case strings.HasPrefix(line, "- "):
		return parsedLine{kind: kindBullet, text: strings.TrimPrefix(line, "- ")}
	}

	if m := orderedRe.FindStringSubmatch(line); m != nil {
		return parsedLine{kind: kindNumbered, text: m[1]}
	}

	if cells, sep, ok := tableRow(trimmed); ok {
		return parsedLine{kind: kindTableRow, cells: cells, sep: sep}
	}

	return parsedLine{kind: kindText, text: line}
}

// tableRow parses a |-delimited row. A row whose every cell is only dashes
// and colons is the header separator.
func tableRow(trimmed string) ([]string, bool, bool) {
	if len(trimmed) < 2 || !strings.HasPrefix(trimmed, "|") || !strings.HasSuffix(trimmed, "|") {
		return nil, false, false
	}
	inner := trimmed[1 : len(trimmed)-1]
	parts := strings.Split(inner, "|")
	cells := make([]string, len(parts))
	sep := true
	for i, p := range parts {
		cells[i] = strings.TrimSpace(p)
		if !tableSepRe.MatchString(cells[i]) {
			sep = false
		}
	}
	return cells, sep, true
}

// assemble merges classified lines into block elements. Consecutive list
// items share one list, consecutive quote lines one blockquote, consecutive
// table rows one table; text runs become paragraphs.
func assemble(lines []parsedLine) string {
	var blocks []string

	for i := 0; i < len(lines); i++ {
		switch line := lines[i]; line.kind {
		case kindBlank:
			// separators only

		case kindHeading:
			tag := [...]string{"", "h1", "h2", "h3"}[line.level]
			blocks = append(blocks, "<"+tag+">"+inline(line.text)+"</"+tag+">")

		case kindRule:
			blocks = append(blocks, "<hr>")

		case kindCode:
			blocks = append(blocks, codeBlock(line))

		case kindQuote:
			var parts []string
			for ; i < len(lines) && lines[i].kind == kindQuote; i++ {
				parts = append(parts, inline(lines[i].text))
			}
			i--
			blocks = append(blocks, "<blockquote>"+strings.Join(parts, "<br>")+"</blockquote>")

		case kindBullet, kindNumbered:
			kind := line.kind
			tag := "ul"
			if kind == kindNumbered {
				tag = "ol"
			}
			var items []string
			for ; i < len(lines) && lines[i].kind == kind; i++ {
				items = append(items, "<li>"+inline(lines[i].text)+"</li>")
			}
			i--
			blocks = append(blocks, "<"+tag+">"+strings.Join(items, "")+"</"+tag+">")

		case kindTableRow:
			var rows []parsedLine
			for ; i < len(lines) && lines[i].kind == kindTableRow; i++ {
				rows = append(rows, lines[i])
			}
			i--
			blocks = append(blocks, table(rows))

		case kindText:
			var parts []string
			for ; i < len(lines) && lines[i].kind == kindText; i++ {
				parts = append(parts, inline(lines[i].text))
			}
			i--
			if p := paragraph(parts); p != "" {
				blocks = append(blocks, p)
			}
		}
	}

	return strings.Join(blocks, "\n")
}

func codeBlock(line parsedLine) string {
	open := "<code>"
	if line.lang != "" {
		open = `<code class="language-` + line.lang + `">`
	}
	body := line.code
	if body != "" {
		body += "\n"
	}
	return "<pre>" + open + body + "</code></pre>"
}

func table(rows []parsedLine) string {
	// A separator directly under the first row promotes it to a header row
	header := len(rows) > 1 && rows[1].sep

	var b strings.Builder
	b.WriteString("<table>")
	for idx, row := range rows {
		if row.sep {
			continue
		}
		cellTag := "td"
		if header && idx == 0 {
			cellTag = "th"
		}
		b.WriteString("<tr>")
		for _, cell := range row.cells {
			b.WriteString("<" + cellTag + ">" + inline(cell) + "</" + cellTag + ">")
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</table>")
	return b.String()
}

// paragraph joins the lines of one text run with <br>. A run that renders to
// nothing, or to a lone break, is collapsed away.
func paragraph(parts []string) string {
	joined := strings.Join(parts, "<br>")
	if joined == "" || joined == "<br>" {
		return ""
	}
	return "<p>" + joined + "</p>"
}

// inline applies span-level rewrites: code spans first so their contents are
// claimed before emphasis runs, then emphasis longest-match-first so
// ***x*** is not eaten by the bold rule, then links.
func inline(s string) string {
	s = inlineCodeRe.ReplaceAllString(s, "<code>$1</code>")
	s = boldItalicRe.ReplaceAllString(s, "<strong><em>$1</em></strong>")
	s = boldRe.ReplaceAllString(s, "<strong>$1</strong>")
	s = italicRe.ReplaceAllString(s, "<em>$1</em>")
	s = linkRe.ReplaceAllString(s, `<a href="$2" target="_blank" rel="noopener noreferrer">$1</a>`)
	return s
}
