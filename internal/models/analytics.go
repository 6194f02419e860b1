package models

import "time"

// ── Per-topic aggregation ─────────────────────────────

// TopicSummary is the per-topic entry in the analytics map.
type TopicSummary struct {
	AverageScore     float64 `json:"average_score"`
	Attempts         int     `json:"attempts"`
	IncorrectAnswers int     `json:"incorrect_answers"`
}

type SubTopicBreakdown struct {
	SubTopic     string  `json:"sub_topic"`
	AverageScore float64 `json:"average_score"`
	Correct      int     `json:"correct"`
	Total        int     `json:"total"`
}

type WeakTopic struct {
	Topic        string              `json:"topic"`
	AverageScore float64             `json:"average_score"`
	SubTopics    []SubTopicBreakdown `json:"sub_topics,omitempty"`
	Reason       string              `json:"reason"`
}

type StrongTopic struct {
	Topic        string  `json:"topic"`
	AverageScore float64 `json:"average_score"`
	Message      string  `json:"message"`
}

// ── History projection ────────────────────────────────

type HistoryEntry struct {
	ID             int64     `json:"id"`
	QuizID         int64     `json:"quiz_id"`
	Topic          string    `json:"topic"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	DateTaken      time.Time `json:"date_taken"`
}

type OverallScore struct {
	TotalScore     int     `json:"total_score"`
	TotalQuestions int     `json:"total_questions"`
	Percentage     float64 `json:"percentage"`
}

// AnalyticsResponse is the full payload for GET /analytics/me.
type AnalyticsResponse struct {
	Message      string                  `json:"message,omitempty"`
	Analytics    map[string]TopicSummary `json:"analytics"`
	WeakTopics   []WeakTopic             `json:"weak_topics"`
	StrongTopics []StrongTopic           `json:"strong_topics"`
	QuizHistory  []HistoryEntry          `json:"quiz_history"`
	OverallScore OverallScore            `json:"overall_score"`
}

// ── Attempt review ────────────────────────────────────

// AttemptResults is the per-attempt review payload: every quiz question with
// the correctness key, explanation, and the user's submitted answer.
type AttemptResults struct {
	Score          int              `json:"score"`
	TotalQuestions int              `json:"total_questions"`
	Topic          string           `json:"topic"`
	Questions      []QuestionResult `json:"questions"`
	DateTaken      time.Time        `json:"date_taken"`
}

type QuestionResult struct {
	QuestionText  string   `json:"question_text"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation,omitempty"`
	UserAnswer    *string  `json:"user_answer"`
	IsCorrect     bool     `json:"is_correct"`
}

// ── Activity log ──────────────────────────────────────

type UserActivity struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	ActivityType string    `json:"activity_type"`
	QuizID       *int64    `json:"quiz_id,omitempty"`
	Score        *int      `json:"score,omitempty"`
	Detail       string    `json:"detail,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type ActivityListResponse struct {
	Activity []UserActivity `json:"activity"`
	Total    int            `json:"total"`
}
