package dto

// OperationResult is the envelope returned by money-moving operation
// endpoints: a flag plus a human-readable message.
type OperationResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
