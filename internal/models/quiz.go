package models

import "time"

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

var ValidDifficulties = map[Difficulty]bool{
	DifficultyEasy:   true,
	DifficultyMedium: true,
	DifficultyHard:   true,
}

// ── Core Structs ───────────────────────────────────────

type Quiz struct {
	ID         int64      `json:"id"`
	Topic      string     `json:"topic"`
	Difficulty Difficulty `json:"difficulty"`
	Questions  []Question `json:"questions"`
	CreatedBy  int64      `json:"created_by"`
	CreatedAt  time.Time  `json:"created_at"`
}

type Question struct {
	ID            int64    `json:"id"`
	QuizID        int64    `json:"quiz_id"`
	QuestionText  string   `json:"question_text"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation,omitempty"`
	SubTopic      string   `json:"sub_topic,omitempty"`
}

// QuizSummary omits questions for list views.
type QuizSummary struct {
	ID         int64      `json:"id"`
	Topic      string     `json:"topic"`
	Difficulty Difficulty `json:"difficulty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// ── Request Types ─────────────────────────────────────

type GenerateQuizRequest struct {
	Topic        string     `json:"topic"`
	Difficulty   Difficulty `json:"difficulty"`
	NumQuestions int        `json:"num_questions"`
}

type SubmitQuizRequest struct {
	QuizID  int64             `json:"quiz_id"`
	Answers []SubmittedAnswer `json:"answers"`
}

type SubmittedAnswer struct {
	QuestionID int64  `json:"question_id"`
	Answer     string `json:"answer"`
}

// ── Response Types ────────────────────────────────────

type QuizListResponse struct {
	Quizzes []QuizSummary `json:"quizzes"`
	Total   int           `json:"total"`
}

// ── Progress Types ────────────────────────────────────

// QuizProgress is a resumable checkpoint for a quiz a user has started but
// not yet submitted. One row per (user, quiz); overwritten on every save.
type QuizProgress struct {
	ID                   int64            `json:"id"`
	UserID               int64            `json:"user_id"`
	QuizID               int64            `json:"quiz_id"`
	CurrentQuestionIndex int              `json:"current_question_index"`
	Answers              []ProgressAnswer `json:"answers"`
	TimeSpentSeconds     int              `json:"time_spent_seconds"`
	Status               string           `json:"status"`
	UpdatedAt            time.Time        `json:"updated_at"`
}

type ProgressAnswer struct {
	QuestionID int64  `json:"question_id"`
	Answer     string `json:"answer"`
}

type SaveProgressRequest struct {
	CurrentQuestionIndex int              `json:"current_question_index"`
	Answers              []ProgressAnswer `json:"answers"`
	TimeSpentSeconds     int              `json:"time_spent_seconds"`
	Status               string           `json:"status"`
}
