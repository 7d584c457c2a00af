package domain

import (
	"fmt"

	appErrors "quotedesk/internal/errors"
)

func invalidStatusError(status string) error {
	return appErrors.New(appErrors.CodeInvalidStatus, fmt.Sprintf("invalid quotation status: %s", status), nil)
}

func invalidQuotationError(reason string, err error) error {
	return appErrors.New(appErrors.CodeInvalidQuotation, reason, err)
}
