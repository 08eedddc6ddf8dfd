package conversation

import "time"

// ResponseType tags which tier produced a reply.
type ResponseType string

const (
	ResponseTemplate  ResponseType = "template"
	ResponseGenerated ResponseType = "generated"
	ResponseFallback  ResponseType = "fallback"
)

// Message is a single inbound customer utterance.
type Message struct {
	Text       string    `json:"text"`
	SessionID  string    `json:"sessionId"`
	ReceivedAt time.Time `json:"receivedAt"`
}

// Analysis is the one-shot NLP result for a message.
type Analysis struct {
	Intent           string         `json:"intent"`
	IntentConfidence float64        `json:"intentConfidence"`
	Sentiment        string         `json:"sentiment"`
	SentimentScore   float64        `json:"sentimentScore"`
	Entities         map[string]any `json:"entities"`
	Timestamp        time.Time      `json:"timestamp"`
}

// ResponseResult is the agent reply handed back to the caller.
type ResponseResult struct {
	Text       string       `json:"text"`
	Type       ResponseType `json:"type"`
	Confidence float64      `json:"confidence"`
}

// Record persists a completed interaction for review and retraining.
// Outcome and NeedsReview are filled in later by the review workflow.
type Record struct {
	ID            int64          `json:"id"`
	SessionID     string         `json:"sessionId"`
	Transcript    string         `json:"transcript"`
	Intent        string         `json:"intent"`
	Entities      map[string]any `json:"entities"`
	Sentiment     string         `json:"sentiment"`
	AgentResponse string         `json:"agentResponse"`
	Timestamp     time.Time      `json:"timestamp"`
	Outcome       *string        `json:"outcome,omitempty"`
	Duration      *float64       `json:"duration,omitempty"`
	NeedsReview   bool           `json:"needsReview"`
}

// TrainingExample is a labeled utterance collected for future retraining.
// It carries no reference back to the conversation it came from.
type TrainingExample struct {
	ID        int64          `json:"id"`
	Text      string         `json:"text"`
	Intent    string         `json:"intent"`
	Entities  map[string]any `json:"entities,omitempty"`
	Sentiment string         `json:"sentiment,omitempty"`
	Source    string         `json:"source"`
	CreatedAt time.Time      `json:"createdAt"`
}
