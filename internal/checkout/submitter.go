package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/deisishop/storefront/pkg/logger"
	"github.com/deisishop/storefront/pkg/money"
)

const BuyEndpoint = "/buy/"

// LineItem is the cart-derived input to a submission: a product id and how
// many units of it are being bought.
type LineItem struct {
	ProductID int64
	Quantity  int
}

// Submitter sends purchase requests to the upstream shop and classifies the
// result. It never touches the cart itself; clearing on success is the
// caller's responsibility.
type Submitter struct {
	httpClient *http.Client
	baseURL    string
	logg       *logger.Logger
}

// Option configures optional submitter behavior.
type Option func(*Submitter)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Submitter) {
		if client != nil {
			s.httpClient = client
		}
	}
}

// WithLogger attaches the structured logger.
func WithLogger(logg *logger.Logger) Option {
	return func(s *Submitter) {
		s.logg = logg
	}
}

// NewSubmitter builds the checkout submitter for the given shop base URL.
func NewSubmitter(baseURL string, opts ...Option) (*Submitter, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		return nil, fmt.Errorf("shop base URL is required")
	}

	submitter := &Submitter{
		baseURL:    trimmed,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(submitter)
		}
	}

	if submitter.httpClient == nil {
		submitter.httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	return submitter, nil
}

type buyRequest struct {
	Products []int64 `json:"products"`
	Name     string  `json:"name"`
	Student  bool    `json:"student"`
	// Coupon is always serialized, even when empty, so the upstream never has
	// to distinguish "no discount" from "field omitted".
	Coupon string `json:"coupon"`
}

// Submit validates the order, posts it to the shop, and classifies the
// response. Validation failures short-circuit before any network call.
func (s *Submitter) Submit(ctx context.Context, items []LineItem, name string, student bool, coupon string) Outcome {
	name = strings.TrimSpace(name)
	coupon = strings.TrimSpace(coupon)

	if len(items) == 0 {
		return Outcome{Status: StatusValidationFailed, Message: MsgEmptyCart}
	}
	if name == "" {
		return Outcome{Status: StatusValidationFailed, Message: MsgMissingName}
	}

	payload := buyRequest{
		Products: expandProductIDs(items),
		Name:     name,
		Student:  student,
		Coupon:   coupon,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		s.warn(ctx, "checkout.marshal_failed", err)
		return Outcome{Status: StatusTransportFailure, Message: MsgTransportFailure}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(s.baseURL, "/")+BuyEndpoint, bytes.NewReader(body))
	if err != nil {
		s.warn(ctx, "checkout.build_request_failed", err)
		return Outcome{Status: StatusTransportFailure, Message: MsgTransportFailure}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.warn(ctx, "checkout.transport_failed", err)
		return Outcome{Status: StatusTransportFailure, Message: MsgTransportFailure}
	}
	defer func() { _ = resp.Body.Close() }()

	// The body is parsed whatever the status; a parse failure just means an
	// empty structure, never an error surfaced to the buyer.
	var data map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		data = map[string]any{}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return Outcome{
			Status:    StatusSuccess,
			Reference: stringValue(data["reference"], money.NoAmount),
			TotalCost: money.FormatOrDash(numberValue(data["totalCost"])),
			Message:   stringValue(data["message"], MsgSuccessDefault),
		}
	}

	message := stringValue(data["error"], "")
	if message == "" {
		message = fmt.Sprintf("Erro inesperado (%d)", resp.StatusCode)
	}
	return Outcome{Status: StatusRejected, Message: message}
}

// expandProductIDs flattens cart lines into the wire format: each product id
// repeated once per unit bought.
func expandProductIDs(items []LineItem) []int64 {
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		for i := 0; i < item.Quantity; i++ {
			ids = append(ids, item.ProductID)
		}
	}
	return ids
}

func stringValue(raw any, fallback string) string {
	switch value := raw.(type) {
	case string:
		if value != "" {
			return value
		}
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	}
	return fallback
}

func numberValue(raw any) *float64 {
	switch value := raw.(type) {
	case float64:
		return &value
	case string:
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return &parsed
		}
	}
	return nil
}

func (s *Submitter) warn(ctx context.Context, msg string, err error) {
	if s.logg == nil {
		return
	}
	s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), msg)
}
