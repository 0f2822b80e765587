package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"newsapi/pkg/newsclient"
)

// truncate shortens s to limit characters, marking the cut with "...".
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	r := []rune(s)
	return string(r[:limit-3]) + "..."
}

// printListTable prints a page in human-readable table format
func printListTable(w io.Writer, p *newsclient.Page) {
	if len(p.Items) == 0 {
		fmt.Fprintln(w, "No news to display.")
		return
	}

	fmt.Fprintf(w, "Page %d of %d (%d items, %d per page)\n\n", p.Page, p.TotalPages, p.Total, p.PageSize)
	fmt.Fprintf(w, "%-6s %-50s %-24s %-16s %s\n", "ID", "TITLE", "AUTHOR", "CATEGORY", "CREATED")
	fmt.Fprintln(w, strings.Repeat("-", 116))
	for _, n := range p.Items {
		fmt.Fprintf(w, "%-6d %-50s %-24s %-16s %s\n",
			n.ID,
			truncate(n.Title, 50),
			truncate(n.Author, 24),
			truncate(n.Category, 16),
			n.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
}

// printListJSON prints a page with its pagination metadata
func printListJSON(w io.Writer, p *newsclient.Page) error {
	items := p.Items
	if items == nil {
		items = []newsclient.News{}
	}
	data, err := json.MarshalIndent(map[string]any{
		"items":      items,
		"total":      p.Total,
		"page":       p.Page,
		"pageSize":   p.PageSize,
		"totalPages": p.TotalPages,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

// printListCompact prints one line per item
func printListCompact(w io.Writer, items []newsclient.News) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No news to display.")
		return
	}
	for _, n := range items {
		fmt.Fprintf(w, "%d %s (%s)\n", n.ID, n.Title, n.Author)
	}
}

func printNews(w io.Writer, n *newsclient.News) {
	fmt.Fprintf(w, "  ID: %d\n", n.ID)
	fmt.Fprintf(w, "  Title: %s\n", n.Title)
	fmt.Fprintf(w, "  Author: %s\n", n.Author)
	fmt.Fprintf(w, "  Category: %s\n", n.Category)
	fmt.Fprintf(w, "  Created: %s\n", n.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(w, "  Updated: %s\n", n.UpdatedAt.Format("2006-01-02 15:04"))
	fmt.Fprintln(w)
	fmt.Fprintln(w, n.Content)
}
