package style

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/arthur-debert/jungle/pkg/types"
	"github.com/charmbracelet/lipgloss"
	"github.com/docker/go-units"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"
)

// Renderer writes results in one format
type Renderer struct {
	w      io.Writer
	format Format
	lg     *lipgloss.Renderer
}

// NewRenderer creates a renderer writing to w. format must be resolved,
// FormatAuto renders as plain text.
func NewRenderer(w io.Writer, format Format) *Renderer {
	lg := lipgloss.NewRenderer(w)
	if format != FormatTerminal {
		lg.SetColorProfile(termenv.Ascii)
	}
	return &Renderer{w: w, format: format, lg: lg}
}

// Format returns the renderer's format
func (r *Renderer) Format() Format { return r.format }

// Styled renders text with the named style
func (r *Renderer) Styled(name, text string) string {
	return GetStyle(name).Renderer(r.lg).Render(text)
}

// Data renders v as JSON or YAML. It reports false for text formats.
func (r *Renderer) Data(v interface{}) (bool, error) {
	switch r.format {
	case FormatJSON:
		enc := json.NewEncoder(r.w)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(r.w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return true, err
		}
		return true, enc.Close()
	}
	return false, nil
}

// List renders the versions of a jungle, newest last
func (r *Renderer) List(result *types.ListResult) error {
	if handled, err := r.Data(result); handled {
		return err
	}
	if len(result.Versions) == 0 {
		_, err := fmt.Fprintln(r.w, r.Styled("Muted", "no versions in "+result.Parent))
		return err
	}

	width := 0
	for _, v := range result.Versions {
		width = max(width, len(v.Directory))
	}

	for _, v := range result.Versions {
		marker := " "
		name := fmt.Sprintf("%-*s", width, v.Directory)
		if v.Current {
			marker = r.Styled("Current", "*")
			name = r.Styled("Current", name)
		} else {
			name = r.Styled("Version", name)
		}

		var tags string
		if v.Current {
			tags += " " + r.Styled("Current", "current")
		}
		if v.Head {
			tags += " " + r.Styled("Head", "head")
		}
		if v.Version != v.Directory {
			tags += " " + r.Styled("Muted", "("+v.Version+")")
		}

		if _, err := fmt.Fprintf(r.w, "%s %s%s\n", marker, name, tags); err != nil {
			return err
		}
	}
	return nil
}

// Prune renders what a prune run removed or would remove
func (r *Renderer) Prune(result *types.PruneResult) error {
	if handled, err := r.Data(result); handled {
		return err
	}

	verb := "removed"
	if result.DryRun {
		verb = "would remove"
	}
	if len(result.Removed) == 0 && len(result.Failed) == 0 {
		_, err := fmt.Fprintln(r.w, r.Styled("Muted", "nothing to prune"))
		return err
	}

	for _, pv := range result.Removed {
		line := fmt.Sprintf("%s %s", verb, r.Styled("Version", pv.Directory))
		if pv.Size > 0 {
			line += " " + r.Styled("Muted", "("+units.HumanSize(float64(pv.Size))+")")
		}
		if _, err := fmt.Fprintln(r.w, line); err != nil {
			return err
		}
	}
	for _, pv := range result.Failed {
		line := fmt.Sprintf("%s %s: %s", r.Styled("Error", "failed"), pv.Directory, pv.Error)
		if _, err := fmt.Fprintln(r.w, line); err != nil {
			return err
		}
	}
	if result.Reclaimed > 0 {
		_, err := fmt.Fprintf(r.w, "%s %s\n", verb, r.Styled("Success", units.HumanSize(float64(result.Reclaimed))))
		return err
	}
	return nil
}

// Error formats an error message for stderr
func (r *Renderer) Error(err error) string {
	return r.Styled("Error", "Error:") + " " + err.Error()
}
