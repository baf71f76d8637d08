package deckfile

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/phanxgames/lectern"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Blocks converts a markdown slide body to content blocks. Headings,
// paragraphs, list items, code and quotes become one block each; inline
// markup is flattened to plain text.
func Blocks(src []byte) []lectern.Block {
	if len(strings.TrimSpace(string(src))) == 0 {
		return nil
	}
	doc := markdown.Parser().Parse(text.NewReader(src))

	var blocks []lectern.Block
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Heading:
			blocks = append(blocks, lectern.Block{Kind: lectern.BlockHeading, Level: n.Level, Text: inlineText(n, src)})
			return ast.WalkSkipChildren, nil
		case *ast.FencedCodeBlock:
			blocks = append(blocks, lectern.Block{Kind: lectern.BlockCode, Text: codeText(n, src)})
			return ast.WalkSkipChildren, nil
		case *ast.CodeBlock:
			blocks = append(blocks, lectern.Block{Kind: lectern.BlockCode, Text: codeText(n, src)})
			return ast.WalkSkipChildren, nil
		case *ast.Blockquote:
			var parts []string
			for c := n.FirstChild(); c != nil; c = c.NextSibling() {
				if t := inlineText(c, src); t != "" {
					parts = append(parts, t)
				}
			}
			blocks = append(blocks, lectern.Block{Kind: lectern.BlockQuote, Text: strings.Join(parts, " ")})
			return ast.WalkSkipChildren, nil
		case *ast.Paragraph, *ast.TextBlock:
			t := inlineText(n, src)
			if t == "" {
				return ast.WalkSkipChildren, nil
			}
			if _, ok := n.Parent().(*ast.ListItem); ok {
				blocks = append(blocks, lectern.Block{Kind: lectern.BlockBullet, Level: listDepth(n), Text: t})
			} else {
				blocks = append(blocks, lectern.Block{Kind: lectern.BlockParagraph, Text: t})
			}
			return ast.WalkSkipChildren, nil
		case *ast.ThematicBreak, *ast.HTMLBlock:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return blocks
}

// listDepth counts the lists enclosing n.
func listDepth(n ast.Node) int {
	depth := 0
	for p := n.Parent(); p != nil; p = p.Parent() {
		if _, ok := p.(*ast.List); ok {
			depth++
		}
	}
	return depth
}

func inlineText(n ast.Node, src []byte) string {
	var b strings.Builder
	writeInline(&b, n, src)
	return strings.TrimSpace(b.String())
}

func writeInline(b *strings.Builder, n ast.Node, src []byte) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *ast.Text:
			b.Write(c.Segment.Value(src))
			if c.SoftLineBreak() || c.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(c.Value)
		case *ast.AutoLink:
			b.Write(c.Label(src))
		default:
			writeInline(b, c, src)
		}
	}
}

func codeText(n ast.Node, src []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(src))
	}
	return strings.TrimRight(b.String(), "\n")
}
