package domain

// Report summarizes a flow for hosts that run in batch mode.
type Report struct {
	Message     string      `json:"message"`
	BotIdentity BotIdentity `json:"bot_identity"`
	StepsCount  int         `json:"steps_count"`
	StepsIDs    []string    `json:"steps_ids"`
}

// Preview is the test-mode answer for a single step ID.
type Preview struct {
	Found        bool      `json:"found"`
	MatchType    MatchKind `json:"match_type,omitempty"`
	Payload      any       `json:"preview,omitempty"`
	Message      string    `json:"message,omitempty"`
	AvailableIDs []string  `json:"available_ids,omitzero"`
}

// ItemResult is the outcome of one item of a batch execution.
// Exactly one of Report, Preview or Error is set.
type ItemResult struct {
	Item    int      `json:"item"`
	Report  *Report  `json:"report,omitempty"`
	Preview *Preview `json:"preview,omitempty"`
	Error   string   `json:"error,omitempty"`
}
