package domain

import "strings"

// Status is the review state of a quotation or RFQ.
type Status string

const (
	StatusUnknown   Status = ""
	StatusSubmitted Status = "SUBMITTED"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
)

// statusOrder is the fixed enumeration offered by the state selector.
var statusOrder = []Status{StatusSubmitted, StatusApproved, StatusRejected}

var statusLabels = map[Status]string{
	StatusSubmitted: "Đã gửi",
	StatusApproved:  "Đã duyệt",
	StatusRejected:  "Từ chối",
}

// AllStatuses returns the enumeration in display order.
func AllStatuses() []Status {
	return append([]Status(nil), statusOrder...)
}

// ParseStatus normalises and validates an incoming status code.
func ParseStatus(raw string) (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(raw)))
	if status == StatusUnknown {
		return StatusUnknown, invalidStatusError("blank")
	}
	if err := status.Validate(); err != nil {
		return StatusUnknown, invalidStatusError(raw)
	}
	return status, nil
}

// Validate ensures the status is one of the known codes.
func (s Status) Validate() error {
	if _, ok := statusLabels[s]; !ok {
		return invalidStatusError(string(s))
	}
	return nil
}

// Label is the display label; unknown codes render as themselves.
func (s Status) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// IsFinal reports whether the quotation has been decided.
func (s Status) IsFinal() bool {
	return s == StatusApproved || s == StatusRejected
}

// StatusOptions projects the whole enumeration into selector options.
func StatusOptions() []ReferenceOption {
	opts := make([]ReferenceOption, 0, len(statusOrder))
	for _, s := range statusOrder {
		opts = append(opts, ReferenceOption{ID: string(s), Label: s.Label()})
	}
	return opts
}

// MatchStatusOptions filters the enumeration by a case-insensitive substring
// of the label. An empty keyword returns every option.
func MatchStatusOptions(keyword string) []ReferenceOption {
	needle := strings.ToLower(strings.TrimSpace(keyword))
	all := StatusOptions()
	if needle == "" {
		return all
	}
	matched := make([]ReferenceOption, 0, len(all))
	for _, opt := range all {
		if strings.Contains(strings.ToLower(opt.Label), needle) {
			matched = append(matched, opt)
		}
	}
	return matched
}
