package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/itchan-dev/simpleboard/client/internal/store"
	"github.com/itchan-dev/simpleboard/shared/domain"
	"github.com/itchan-dev/simpleboard/shared/validation"
)

const previewLen = 80

// render prints the board. Hidden categories are listed for admins only.
func render(w io.Writer, st *store.Store, showHidden bool) {
	board, _ := st.Board()
	fmt.Fprintf(w, "# %s (%s)\n", board.Title, board.Id)
	if board.Description != nil && *board.Description != "" {
		fmt.Fprintln(w, *board.Description)
	}

	categories := st.VisibleCategories()
	if showHidden {
		categories = st.Categories()
	}
	for _, c := range categories {
		hidden := ""
		if c.IsHidden {
			hidden = " hidden"
		}
		fmt.Fprintf(w, "\n## %s [%s %s%s]\n", c.Name, c.Id, c.Color, hidden)
		renderItems(w, st.ItemsInCategory(c.Id))
	}

	if unfiled := st.UnfiledItems(); len(unfiled) > 0 {
		fmt.Fprintln(w, "\n## Unfiled")
		renderItems(w, unfiled)
	}
}

func renderItems(w io.Writer, items []domain.ContentItem) {
	if len(items) == 0 {
		fmt.Fprintln(w, "  (empty)")
		return
	}
	for _, it := range items {
		fmt.Fprintf(w, "  %s\n", describeItem(it))
	}
}

func describeItem(it domain.ContentItem) string {
	var body string
	switch it.Type {
	case domain.ContentLink:
		body = deref(it.LinkUrl)
	case domain.ContentImage:
		body = deref(it.ImageUrl)
	case domain.ContentFile:
		body = fmt.Sprintf("%s (%.1f MB) %s", deref(it.FileName), validation.FormatSizeMB(derefSize(it.FileSize)), deref(it.FileUrl))
	default:
		body = preview(it.Content)
	}
	if it.Title != nil && *it.Title != "" {
		body = *it.Title + ": " + body
	}
	if it.Type != domain.ContentText && it.Content != "" {
		body += " - " + preview(it.Content)
	}

	meta := fmt.Sprintf("%d likes, %s", it.LikeCount, age(it.UpdatedAt))
	if it.AuthorName != nil && *it.AuthorName != "" {
		meta = "by " + *it.AuthorName + ", " + meta
	}
	return fmt.Sprintf("[%s] %s: %s (%s)", it.Id, it.Type, body, meta)
}

func preview(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if len([]rune(s)) > previewLen {
		return string([]rune(s)[:previewLen-1]) + "…"
	}
	return s
}

func age(t time.Time) string {
	if t.IsZero() {
		return "just now"
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefSize(n *int64) int64 {
	if n == nil {
		return 0
	}
	return *n
}
