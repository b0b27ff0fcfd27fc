// internal/bot/session.go
package bot

import (
	"sync"

	"github.com/Nikkeen22/fitness-bot/internal/gpt"
	"github.com/Nikkeen22/fitness-bot/internal/models"
)

// Conversation states. A user is in at most one state at a time; any command
// resets it.
const (
	// Onboarding survey, in order.
	StateGoal       = "onboarding_goal"
	StateGender     = "onboarding_gender"
	StateParams     = "onboarding_params"
	StateBodyType   = "onboarding_body_type"
	StateActivity   = "onboarding_activity"
	StateConditions = "onboarding_conditions"
	StateFrequency  = "onboarding_frequency"
	StateDuration   = "onboarding_duration"
	StateFoodPrefs  = "onboarding_food_prefs"

	// Calorie calculator, a short survey independent of the onboarding one.
	StateCalcGender   = "calc_gender"
	StateCalcParams   = "calc_params"
	StateCalcActivity = "calc_activity"
	StateCalcGoal     = "calc_goal"

	StateMealLog           = "meal_log"
	StateReminderBreakfast = "reminder_breakfast"
	StateReminderLunch     = "reminder_lunch"
	StateReminderDinner    = "reminder_dinner"
	StateChat              = "ai_chat"
	StateFoodProducts      = "food_products"

	StateChallengeTitle    = "challenge_title"
	StateChallengeDesc     = "challenge_desc"
	StateChallengeDuration = "challenge_duration"
	StateDuelOpponent      = "duel_opponent"
	StateDuelDescription   = "duel_description"
	StateAwaitProofVideo   = "await_proof_video"
	StateAwaitResultPhoto  = "await_result_photo"
	StateFeedbackComment   = "feedback_comment"
)

// maxChatHistory bounds the rolling free-chat window.
const maxChatHistory = 4

// Session holds per-user conversation state. Everything here is transient
// and lost on restart; anything durable goes through the store.
type Session struct {
	State   string
	Answers models.OnboardingAnswers

	Reminders models.MealReminder

	ChatHistory []gpt.ChatTurn

	PendingMeal *gpt.MealAnalysis
	MealText    string

	ChallengeTitle string
	ChallengeDesc  string

	DuelOpponent      string
	TargetDuelID      int64
	TargetChallengeID int64
	FeedbackRating    int
}

// PushChatTurn appends a turn and trims the history window from the front.
func (s *Session) PushChatTurn(author, text string) {
	s.ChatHistory = append(s.ChatHistory, gpt.ChatTurn{Author: author, Text: text})
	if len(s.ChatHistory) > maxChatHistory {
		s.ChatHistory = s.ChatHistory[len(s.ChatHistory)-maxChatHistory:]
	}
}

type SessionStore struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[int64]*Session)}
}

// Get returns the user's session, or nil if none exists.
func (st *SessionStore) Get(userID int64) *Session {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.sessions[userID]
}

// Begin replaces any existing session with a fresh one in the given state.
func (st *SessionStore) Begin(userID int64, state string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	s := &Session{State: state}
	st.sessions[userID] = s
	return s
}

// Clear drops the user's session.
func (st *SessionStore) Clear(userID int64) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, userID)
}
