package models

// Request bodies. Amounts travel as 2-decimal monetary strings; the handler
// sanitizes them before the core re-validates.

type OpenAccountRequest struct {
	ID             string `json:"id" validate:"required,len=10,numeric"`
	OwnerName      string `json:"owner_name" validate:"required"`
	InitialBalance string `json:"initial_balance" validate:"required"`
	Kind           string `json:"kind" validate:"required,oneof=savings checking"`
}

type AmountRequest struct {
	AccountID string `json:"account_id" validate:"required,len=10,numeric"`
	Amount    string `json:"amount" validate:"required"`
}

type TransferRequest struct {
	FromAccountID string `json:"from_account_id" validate:"required,len=10,numeric"`
	ToAccountID   string `json:"to_account_id" validate:"required,len=10,numeric"`
	Amount        string `json:"amount" validate:"required"`
}

type InterestRequest struct {
	AccountID string `json:"account_id" validate:"required,len=10,numeric"`
}

type AccountResponse struct {
	ID        string `json:"id"`
	OwnerName string `json:"owner_name"`
	Balance   string `json:"balance"`
	Kind      string `json:"kind"`
}

type AccountListResponse struct {
	Accounts []AccountResponse `json:"accounts"`
	Total    int               `json:"total"`
}

type OperationResponse struct {
	Message   string `json:"message"`
	AccountID string `json:"account_id"`
	Balance   string `json:"balance"`
}

type InterestResponse struct {
	Message   string `json:"message"`
	AccountID string `json:"account_id"`
	Earned    string `json:"earned"`
	Balance   string `json:"balance"`
}

type TransferResponse struct {
	Message            string `json:"message"`
	FromAccountID      string `json:"from_account_id"`
	ToAccountID        string `json:"to_account_id"`
	SourceBalance      string `json:"source_balance"`
	DestinationBalance string `json:"destination_balance"`
}

type HistoryEntry struct {
	Timestamp string `json:"timestamp"`
	Kind      string `json:"kind"`
	Amount    string `json:"amount"`
}

type HistoryResponse struct {
	AccountID string         `json:"account_id"`
	Entries   []HistoryEntry `json:"entries"`
	Total     int            `json:"total"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
