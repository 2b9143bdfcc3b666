package models

import "time"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ConversationTimeLayout stamps saved conversations
const ConversationTimeLayout = "2006-01-02 15:04:05"

// ChatMessage is one role-tagged turn of a conversation
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// SavedConversation is a transcript the user chose to keep
type SavedConversation struct {
	Timestamp    string        `json:"timestamp"`
	Conversation []ChatMessage `json:"conversation"`
}

// Export is the downloadable bundle of a session
type Export struct {
	HealthProfile   HealthProfile       `json:"health_profile"`
	ChatHistory     []SavedConversation `json:"chat_history"`
	ExportTimestamp time.Time           `json:"export_timestamp"`
}

// DietAnalysis buckets a list of foods against a profile
type DietAnalysis struct {
	CompatibleFoods  []string `json:"compatible_foods"`
	RestrictedFoods  []string `json:"restricted_foods"`
	AllergenWarnings []string `json:"allergen_warnings"`
	Recommendations  []string `json:"recommendations"`
}
