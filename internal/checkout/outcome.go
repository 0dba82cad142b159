package checkout

// OutcomeStatus classifies the result of one checkout submission.
type OutcomeStatus string

const (
	StatusSuccess          OutcomeStatus = "success"
	StatusRejected         OutcomeStatus = "rejected"
	StatusValidationFailed OutcomeStatus = "validation_failed"
	StatusTransportFailure OutcomeStatus = "transport_failure"
)

// Outcome is the classified result of a checkout submission. Exactly one
// outcome is produced per Submit call.
type Outcome struct {
	Status    OutcomeStatus `json:"status"`
	Reference string        `json:"reference,omitempty"`
	TotalCost string        `json:"total_cost,omitempty"`
	Message   string        `json:"message"`
}

// User-facing messages, kept in the shop's language.
const (
	MsgEmptyCart        = "O cesto está vazio."
	MsgMissingName      = "Por favor, indique o seu nome."
	MsgSuccessDefault   = "Pedido efetuado com sucesso."
	MsgTransportFailure = "Falha na ligação. Tenta novamente."
)
