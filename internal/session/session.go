package session

import (
	"context"
	"sync"
	"time"

	"github.com/pageza/healthara/backend/internal/models"
	"github.com/pageza/healthara/backend/internal/service"
	"github.com/pageza/healthara/backend/internal/types"
)

// Session is one user's working context: the loaded profile, the running
// conversation and the conversations saved so far. All methods take the
// session lock, so one interaction finishes before the next starts.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu           sync.Mutex
	profile      *service.ProfileStore
	chat         service.ChatClient
	conversation []models.ChatMessage
	history      []models.SavedConversation
}

func newSession(id string, profile *service.ProfileStore, chat service.ChatClient, now time.Time) *Session {
	return &Session{
		ID:           id,
		CreatedAt:    now,
		profile:      profile,
		chat:         chat,
		conversation: []models.ChatMessage{},
		history:      []models.SavedConversation{},
	}
}

// Ask records the query, asks the model with the personalized prompt and
// records the answer. When the model fails the query stays in the
// conversation and no answer is added.
func (s *Session) Ask(ctx context.Context, query string, onDelta func(string)) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.conversation = append(s.conversation, models.ChatMessage{Role: models.RoleUser, Content: query})

	prompt := service.BuildNutritionPrompt(s.profile.Profile(), query)
	answer, err := s.chat.StreamChat(ctx, service.ChatRequest{SystemPrompt: prompt, UserMessage: query}, onDelta)
	if err != nil {
		return "", err
	}

	s.conversation = append(s.conversation, models.ChatMessage{Role: models.RoleAssistant, Content: answer})
	return answer, nil
}

// Conversation returns a copy of the running conversation
func (s *Session) Conversation() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.ChatMessage{}, s.conversation...)
}

func (s *Session) ClearConversation() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversation = []models.ChatMessage{}
}

// SaveConversation copies the running conversation into the history.
// It reports false when there was nothing to save.
func (s *Session) SaveConversation(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.conversation) == 0 {
		return false
	}
	s.history = append(s.history, models.SavedConversation{
		Timestamp:    now.Format(models.ConversationTimeLayout),
		Conversation: append([]models.ChatMessage{}, s.conversation...),
	})
	return true
}

func (s *Session) History() []models.SavedConversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyHistory(s.history)
}

// RecentHistory returns the last n saved conversations, oldest first
func (s *Session) RecentHistory(n int) []models.SavedConversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n < 0 {
		n = 0
	}
	start := len(s.history) - n
	if start < 0 {
		start = 0
	}
	return copyHistory(s.history[start:])
}

// Export bundles the profile with every saved conversation
func (s *Session) Export(now time.Time) models.Export {
	s.mu.Lock()
	defer s.mu.Unlock()
	return service.BuildExport(s.profile.Profile(), s.history, now)
}

func (s *Session) Profile() *models.HealthProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile.Profile()
}

func (s *Session) Summary() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile.Summary()
}

func (s *Session) UpdatePersonalInfo(ctx context.Context, u types.PersonalInfoUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile.UpdatePersonalInfo(ctx, u)
}

func (s *Session) UpdateMedicalHistory(ctx context.Context, u types.MedicalHistoryUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile.UpdateMedicalHistory(ctx, u)
}

func (s *Session) UpdateHealthGoals(ctx context.Context, u types.HealthGoalsUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile.UpdateHealthGoals(ctx, u)
}

func (s *Session) UpdateDietPreferences(ctx context.Context, u types.DietPreferencesUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile.UpdateDietPreferences(ctx, u)
}

func copyHistory(in []models.SavedConversation) []models.SavedConversation {
	out := make([]models.SavedConversation, len(in))
	for i, saved := range in {
		out[i] = models.SavedConversation{
			Timestamp:    saved.Timestamp,
			Conversation: append([]models.ChatMessage{}, saved.Conversation...),
		}
	}
	return out
}
