package domain

import (
	"slices"
	"strings"
)

// FilterCriteria is the combined filter of the quotation list. It is an
// immutable value: every With* method returns a modified copy and the
// receiver is never touched, so two criteria can be compared with Equal to
// decide whether a re-query is needed.
type FilterCriteria struct {
	keyword    string
	stateCodes []Status // sorted, no duplicates
	projectID  string
	supplierID string
}

// NewFilterCriteria builds criteria from raw parts. Empty ids mean "no
// selection".
func NewFilterCriteria(keyword string, states []Status, projectID, supplierID string) FilterCriteria {
	return FilterCriteria{
		keyword:    keyword,
		stateCodes: normalizeStates(states),
		projectID:  strings.TrimSpace(projectID),
		supplierID: strings.TrimSpace(supplierID),
	}
}

// Keyword is the free-text filter.
func (c FilterCriteria) Keyword() string { return c.keyword }

// StateCodes returns a copy of the selected state set in sorted order.
func (c FilterCriteria) StateCodes() []Status {
	return slices.Clone(c.stateCodes)
}

// ProjectID returns the selected project, if any.
func (c FilterCriteria) ProjectID() (string, bool) {
	return c.projectID, c.projectID != ""
}

// SupplierID returns the selected supplier, if any.
func (c FilterCriteria) SupplierID() (string, bool) {
	return c.supplierID, c.supplierID != ""
}

// IsEmpty reports whether no filter is applied at all.
func (c FilterCriteria) IsEmpty() bool {
	return strings.TrimSpace(c.keyword) == "" && len(c.stateCodes) == 0 && c.projectID == "" && c.supplierID == ""
}

// WithKeyword replaces the free-text filter.
func (c FilterCriteria) WithKeyword(keyword string) FilterCriteria {
	c.stateCodes = slices.Clone(c.stateCodes)
	c.keyword = keyword
	return c
}

// WithStateCodes replaces the state selection wholesale.
func (c FilterCriteria) WithStateCodes(states []Status) FilterCriteria {
	c.stateCodes = normalizeStates(states)
	return c
}

// WithProjectID replaces the project selection; "" clears it.
func (c FilterCriteria) WithProjectID(id string) FilterCriteria {
	c.stateCodes = slices.Clone(c.stateCodes)
	c.projectID = strings.TrimSpace(id)
	return c
}

// WithSupplierID replaces the supplier selection; "" clears it.
func (c FilterCriteria) WithSupplierID(id string) FilterCriteria {
	c.stateCodes = slices.Clone(c.stateCodes)
	c.supplierID = strings.TrimSpace(id)
	return c
}

// Equal compares two criteria structurally.
func (c FilterCriteria) Equal(other FilterCriteria) bool {
	return c.keyword == other.keyword &&
		c.projectID == other.projectID &&
		c.supplierID == other.supplierID &&
		slices.Equal(c.stateCodes, other.stateCodes)
}

// String renders a compact description used in logs and the header bar.
func (c FilterCriteria) String() string {
	var parts []string
	if kw := strings.TrimSpace(c.keyword); kw != "" {
		parts = append(parts, "keyword="+kw)
	}
	if len(c.stateCodes) > 0 {
		codes := make([]string, len(c.stateCodes))
		for i, s := range c.stateCodes {
			codes[i] = string(s)
		}
		parts = append(parts, "states="+strings.Join(codes, ","))
	}
	if c.projectID != "" {
		parts = append(parts, "project="+c.projectID)
	}
	if c.supplierID != "" {
		parts = append(parts, "supplier="+c.supplierID)
	}
	if len(parts) == 0 {
		return "all"
	}
	return strings.Join(parts, " ")
}

func normalizeStates(states []Status) []Status {
	if len(states) == 0 {
		return nil
	}
	out := make([]Status, 0, len(states))
	for _, s := range states {
		if s == StatusUnknown {
			continue
		}
		out = append(out, s)
	}
	slices.Sort(out)
	out = slices.Compact(out)
	if len(out) == 0 {
		return nil
	}
	return out
}
