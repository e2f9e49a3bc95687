package changelog

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

type categoryStyle struct {
	Color *color.Color
	Icon  string
}

var categoryStyles = map[Category]categoryStyle{
	CategoryFeature:       {Color: color.New(color.FgGreen, color.Bold), Icon: "✓"},
	CategoryConfiguration: {Color: color.New(color.FgBlue, color.Bold), Icon: "~"},
	CategoryFix:           {Color: color.New(color.FgYellow, color.Bold), Icon: "⚡"},
	CategoryOther:         {Color: color.New(color.FgHiBlack, color.Bold), Icon: "•"},
}

// FormatOptions controls terminal output
type FormatOptions struct {
	Plain bool // no colors or icons
}

// FormatTerminal writes the document sections with per-category styling
func FormatTerminal(doc *Document, w io.Writer, opts FormatOptions) error {
	header := fmt.Sprintf("%s (by %s)", doc.Repo, doc.Owner)
	if opts.Plain {
		if _, err := fmt.Fprintln(w, header); err != nil {
			return err
		}
	} else {
		if _, err := color.New(color.Bold, color.Underline).Fprintln(w, header); err != nil {
			return err
		}
	}

	sections := doc.Sections()
	if len(sections) == 0 {
		_, err := fmt.Fprintln(w, "\nNo changes to report")
		return err
	}

	for _, section := range sections {
		if err := writeSection(section, w, opts); err != nil {
			return fmt.Errorf("writing section %s: %w", section.Title, err)
		}
	}

	if !doc.IncludeOther && len(doc.Groups.Other) > 0 {
		_, err := fmt.Fprintf(w, "\n(%d uncategorised commit(s) not rendered)\n", len(doc.Groups.Other))
		return err
	}
	return nil
}

func writeSection(section *Section, w io.Writer, opts FormatOptions) error {
	title := fmt.Sprintf("%s (%d)", section.Title, len(section.Lines))

	if opts.Plain {
		if _, err := fmt.Fprintf(w, "\n%s\n", title); err != nil {
			return err
		}
	} else {
		style := categoryStyles[section.Category]
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		if _, err := style.Color.Fprintf(w, "%s %s\n", style.Icon, title); err != nil {
			return err
		}
	}

	for _, line := range section.Lines {
		if _, err := fmt.Fprintf(w, "  %s\n", line); err != nil {
			return err
		}
	}
	return nil
}
