// Package template implements {{placeholder}} substitution for the HTML
// fragment templates. Values are inserted verbatim, without escaping; keys
// missing from the value map leave their placeholders untouched so that
// callers can layer substitution passes.
package template

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Render replaces every occurrence of {{key}} in tmpl with the mapped value,
// for each key in values. Replacement is global and case-sensitive.
func Render(tmpl string, values map[string]string) string {
	for key, value := range values {
		tmpl = strings.ReplaceAll(tmpl, Placeholder(key), value)
	}
	return tmpl
}

// Placeholder returns the {{key}} token for a template key.
func Placeholder(key string) string {
	return "{{" + key + "}}"
}

// Set holds the raw fragment templates used by the renderer.
type Set struct {
	BaseCard     string
	ScheduleCard string
	PlaylistCard string
	SeriesModal  string
	Notice       string
}

// LoadSet reads the fragment templates from dir.
func LoadSet(dir string) (*Set, error) {
	set := &Set{}
	files := []struct {
		name string
		dst  *string
	}{
		{"baseCard.html", &set.BaseCard},
		{"cardEpisodeSchedule.html", &set.ScheduleCard},
		{"playlist.html", &set.PlaylistCard},
		{"modalSerie.html", &set.SeriesModal},
		{"modal.html", &set.Notice},
	}

	for _, f := range files {
		data, err := os.ReadFile(filepath.Join(dir, f.name))
		if err != nil {
			return nil, errors.Wrapf(err, "failed to load template %s", f.name)
		}
		*f.dst = string(data)
	}

	return set, nil
}
