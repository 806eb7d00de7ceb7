// Package loader parses a flat-text taxonomy listing into entries.
// The expected format is one category per line, "<id> - <breadcrumb>",
// with breadcrumb segments separated by " > ". The loader never does I/O;
// fetching the raw text belongs to the source collaborators.
package loader

import (
	"bufio"
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/silver-fir/taxon/internal/model"
)

// ErrEmptySource is returned when the raw text yields no entries at all,
// the one malformed-input case worth surfacing, since it usually means the
// wrong resource was fetched.
var ErrEmptySource = errors.New("loader: no taxonomy entries in source text")

var lineRe = regexp.MustCompile(`^(\d+)\s*-\s*(.+)$`)

const segmentSep = " > "

// Parse extracts taxonomy entries from raw text. Lines that are empty,
// comments (leading '#'), or that do not match "<id> - <breadcrumb>" are
// skipped silently; source files routinely carry headers and notes.
// When the same id appears on multiple lines, the last line wins: the
// earlier entry is replaced in place, keeping its original position.
func Parse(raw string) ([]model.Entry, error) {
	var entries []model.Entry
	byID := make(map[int]int) // id → index into entries

	sc := bufio.NewScanner(strings.NewReader(raw))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		m := lineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		id, err := strconv.Atoi(m[1])
		if err != nil || id <= 0 {
			continue
		}
		path := splitBreadcrumb(m[2])
		if len(path) == 0 {
			continue
		}

		entry := model.Entry{ID: id, Path: path}
		if i, ok := byID[id]; ok {
			entries[i] = entry
			continue
		}
		byID[id] = len(entries)
		entries = append(entries, entry)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		return nil, ErrEmptySource
	}
	return entries, nil
}

// splitBreadcrumb splits on " > ", trims each segment, and drops empties.
func splitBreadcrumb(crumb string) []string {
	var path []string
	for _, seg := range strings.Split(crumb, segmentSep) {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		path = append(path, seg)
	}
	return path
}
