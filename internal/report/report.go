// Package report renders verification reports for humans and machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/almartin82/sdschooldata/internal/surface"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

// Write renders reports to w in the given format.
func Write(w io.Writer, format string, reports []*surface.Report, color bool) error {
	switch format {
	case FormatText, "":
		for _, r := range reports {
			WriteText(w, r, color)
		}
		return nil
	case FormatJSON:
		return WriteJSON(w, reports)
	}
	return fmt.Errorf("unknown format %q (want %s or %s)", format, FormatText, FormatJSON)
}

// WriteText prints one table per module. A load failure is a single row.
func WriteText(w io.Writer, r *surface.Report, color bool) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	if color {
		t.SetStyle(table.StyleColoredBright)
	} else {
		t.SetStyle(table.StyleRounded)
	}
	t.Style().Title.Align = text.AlignLeft
	t.Style().Format.Footer = text.FormatDefault
	t.SetTitle("%s (%s loader)", r.Module, r.Loader)
	t.AppendHeader(table.Row{"Symbol", "Kind", "Predicate", "Type", "Status", "Detail"})

	if r.LoadErr != nil {
		t.AppendRow(table.Row{"*", "-", "-", "-", status(false, color), r.LoadErr.Error()})
	} else {
		for _, res := range r.Results {
			t.AppendRow(table.Row{
				res.Descriptor.Name,
				res.Descriptor.Kind,
				predicateName(res.Descriptor.Predicate),
				symbolType(res.Symbol),
				status(res.Passed(), color),
				detail(res),
			})
		}
	}

	passed, failed := r.Counts()
	if r.LoadErr != nil {
		passed, failed = 0, 1
	}
	t.AppendFooter(table.Row{"", "", "", "", fmt.Sprintf("%d passed", passed), fmt.Sprintf("%d failed", failed)})
	t.Render()
}

type jsonReport struct {
	Module  string       `json:"module"`
	Loader  string       `json:"loader"`
	Passed  bool         `json:"passed"`
	LoadErr string       `json:"load_error,omitempty"`
	Results []jsonResult `json:"results,omitempty"`
}

type jsonResult struct {
	Name      string       `json:"name"`
	Kind      surface.Kind `json:"kind"`
	Predicate string       `json:"predicate,omitempty"`
	Type      string       `json:"type,omitempty"`
	Location  string       `json:"location,omitempty"`
	Passed    bool         `json:"passed"`
	Error     string       `json:"error,omitempty"`
}

// WriteJSON writes all reports as one indented JSON array. Results are
// omitted for modules that failed to load.
func WriteJSON(w io.Writer, reports []*surface.Report) error {
	out := make([]jsonReport, 0, len(reports))
	for _, r := range reports {
		jr := jsonReport{Module: r.Module, Loader: r.Loader, Passed: r.Passed()}
		if r.LoadErr != nil {
			jr.LoadErr = r.LoadErr.Error()
			out = append(out, jr)
			continue
		}
		for _, res := range r.Results {
			item := jsonResult{
				Name:      res.Descriptor.Name,
				Kind:      res.Descriptor.Kind,
				Predicate: predicateName(res.Descriptor.Predicate),
				Type:      symbolType(res.Symbol),
				Location:  location(res.Symbol),
				Passed:    res.Passed(),
			}
			if res.Err != nil {
				item.Error = res.Err.Error()
			}
			jr.Results = append(jr.Results, item)
		}
		out = append(out, jr)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func status(ok, color bool) string {
	s := "PASS"
	c := text.FgGreen
	if !ok {
		s = "FAIL"
		c = text.FgRed
	}
	if color {
		return c.Sprint(s)
	}
	return s
}

func detail(res surface.Result) string {
	if res.Err != nil {
		return res.Err.Error()
	}
	return location(res.Symbol)
}

func predicateName(p *surface.Predicate) string {
	if p == nil {
		return ""
	}
	return p.Name
}

func symbolType(s *surface.Symbol) string {
	if s == nil {
		return ""
	}
	return s.Type
}

func location(s *surface.Symbol) string {
	if s == nil || s.Location.FilePath == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d:%d", s.Location.FilePath, s.Location.Line, s.Location.Character)
}
