package models

import "time"

// QuizAttempt is one completed, server-graded submission of a quiz.
// Attempts are created atomically and never updated afterwards.
type QuizAttempt struct {
	ID             int64          `json:"id"`
	UserID         int64          `json:"user_id"`
	QuizID         int64          `json:"quiz_id"`
	Score          int            `json:"score"`
	TotalQuestions int            `json:"total_questions"`
	Answers        []AnswerRecord `json:"answers"`
	DateTaken      time.Time      `json:"date_taken"`
}

// AnswerRecord captures one graded answer. UserAnswer is nil when the
// question was left unanswered. SubTopic is copied from the question at
// submission time so analytics survive later quiz deletion.
type AnswerRecord struct {
	QuestionID int64   `json:"question_id"`
	UserAnswer *string `json:"user_answer"`
	IsCorrect  bool    `json:"is_correct"`
	SubTopic   string  `json:"sub_topic,omitempty"`
}

// AttemptWithTopic is an attempt joined with its quiz's topic and
// difficulty. Topic and QuizDifficulty are nil when the referenced quiz has
// been deleted; every consumer must branch on that before using them.
type AttemptWithTopic struct {
	ID             int64
	QuizID         int64
	Score          int
	TotalQuestions int
	DateTaken      time.Time
	Topic          *string
	QuizDifficulty *string
	Answers        []AnswerRecord
}

// Orphaned reports whether the attempt's quiz no longer exists.
func (a AttemptWithTopic) Orphaned() bool {
	return a.Topic == nil
}
