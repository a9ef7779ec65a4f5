package payment

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dapurlink/backoffice/internal/api"
)

const reportPath = "/payments/grouped/sessions/details"

// Service reads the grouped payment report. There is nothing to write:
// transactions are produced by the POS, never by the back office.
type Service struct {
	api api.Caller
}

func NewService(caller api.Caller) *Service {
	return &Service{api: caller}
}

// Report fetches the nested session report and flattens it to one record
// per payment.
func (s *Service) Report(ctx context.Context) ([]Transaction, error) {
	raw, err := s.api.Get(ctx, reportPath, nil)
	if err != nil {
		return nil, err
	}

	items, _, err := api.ListPayload(raw)
	if err != nil {
		return nil, fmt.Errorf("fetching payment report: %w", err)
	}

	var sessions []wireSession
	if err := json.Unmarshal(items, &sessions); err != nil {
		return nil, fmt.Errorf("decoding payment report: %w", err)
	}

	return Flatten(sessions), nil
}
