package types

// TradeResult is the outcome of an on-chain trade executed by a gateway.
type TradeResult struct {
	Success         bool   `json:"success"`
	TransactionHash string `json:"transaction_hash,omitempty"`
	AmountReceived  string `json:"amount_received,omitempty"`
	Error           string `json:"error,omitempty"`
}

// Balance is a wallet balance for one asset.
type Balance struct {
	Asset     string `json:"asset"`
	Amount    string `json:"balance"`
	Formatted string `json:"formatted_balance"`
}

// TransferResult is the outcome of an asset transfer.
type TransferResult struct {
	Success         bool   `json:"success"`
	TransactionHash string `json:"transaction_hash,omitempty"`
	Error           string `json:"error,omitempty"`
}

// Message is the payload delivered to a decision consumer. Delivery is
// fire-and-forget; consumers must not be able to fail the pipeline.
type Message struct {
	Text   string `json:"text"`
	Source string `json:"source"`
	Data   any    `json:"data,omitempty"`
}
