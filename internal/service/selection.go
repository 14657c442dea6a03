// SPDX-License-Identifier: MPL-2.0

package service

import (
	"slices"
	"strings"
)

// Selection is the ordered, duplicate-free set of services chosen for one run.
// A Selection built through NewSelection or ParseSelection is never empty.
type Selection struct {
	ids []ID
}

// NewSelection builds a Selection preserving the order of first occurrence.
func NewSelection(ids ...ID) (Selection, error) {
	out := make([]ID, 0, len(ids))
	for _, id := range ids {
		if valid, errs := id.IsValid(); !valid {
			return Selection{}, errs[0]
		}
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	if len(out) == 0 {
		return Selection{}, ErrEmptySelection
	}
	return Selection{ids: out}, nil
}

// ParseSelection parses raw identifiers (any case). Comma separated values
// inside a single element are split, so both ["hts,hcs"] and ["hts", "hcs"]
// are accepted.
func ParseSelection(raw []string) (Selection, error) {
	var ids []ID
	for _, r := range raw {
		for part := range strings.SplitSeq(r, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			id, err := Parse(part)
			if err != nil {
				return Selection{}, err
			}
			ids = append(ids, id)
		}
	}
	return NewSelection(ids...)
}

// IDs returns a copy of the selected identifiers in selection order.
func (s Selection) IDs() []ID {
	return slices.Clone(s.ids)
}

// Len returns the number of selected services.
func (s Selection) Len() int { return len(s.ids) }

// IsEmpty reports whether the selection holds no services. Only the zero
// value can be empty.
func (s Selection) IsEmpty() bool { return len(s.ids) == 0 }

// Strings returns the canonical identifiers as strings.
func (s Selection) Strings() []string {
	out := make([]string, len(s.ids))
	for i, id := range s.ids {
		out[i] = string(id)
	}
	return out
}
