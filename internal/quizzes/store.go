package quizzes

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"

	"github.com/391rajan/Quiz/internal/generator"
	"github.com/391rajan/Quiz/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// ── Quiz Storage ────────────────────────────────────────

// SaveGeneratedQuiz persists a quiz and its questions in one transaction.
func (s *Store) SaveGeneratedQuiz(ctx context.Context, topic string, difficulty models.Difficulty, createdBy int64, generated []generator.GeneratedQuestion) (*models.Quiz, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	quiz := models.Quiz{
		Topic:      topic,
		Difficulty: difficulty,
		CreatedBy:  createdBy,
	}

	err = tx.QueryRow(
		`INSERT INTO quizzes (topic, difficulty, created_by)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		topic, difficulty, createdBy,
	).Scan(&quiz.ID, &quiz.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert quiz: %w", err)
	}

	for i, gq := range generated {
		var question models.Question
		err := tx.QueryRow(
			`INSERT INTO questions (quiz_id, position, question_text, options, correct_answer, explanation, sub_topic)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 RETURNING id`,
			quiz.ID, i, gq.QuestionText, pq.Array(gq.Options), gq.CorrectAnswer, gq.Explanation, gq.SubTopic,
		).Scan(&question.ID)
		if err != nil {
			return nil, fmt.Errorf("insert question: %w", err)
		}

		question.QuizID = quiz.ID
		question.QuestionText = gq.QuestionText
		question.Options = gq.Options
		question.CorrectAnswer = gq.CorrectAnswer
		question.Explanation = gq.Explanation
		question.SubTopic = gq.SubTopic
		quiz.Questions = append(quiz.Questions, question)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit quiz: %w", err)
	}
	return &quiz, nil
}

func (s *Store) GetQuiz(quizID int64) (*models.Quiz, error) {
	var quiz models.Quiz
	err := s.db.QueryRow(
		`SELECT id, topic, difficulty, created_by, created_at FROM quizzes WHERE id = $1`,
		quizID,
	).Scan(&quiz.ID, &quiz.Topic, &quiz.Difficulty, &quiz.CreatedBy, &quiz.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("get quiz: %w", err)
	}

	questions, err := s.getQuestions(quizID)
	if err != nil {
		return nil, err
	}
	quiz.Questions = questions

	return &quiz, nil
}

func (s *Store) getQuestions(quizID int64) ([]models.Question, error) {
	rows, err := s.db.Query(
		`SELECT id, quiz_id, question_text, options, correct_answer, explanation, sub_topic
		 FROM questions WHERE quiz_id = $1 ORDER BY position`,
		quizID,
	)
	if err != nil {
		return nil, fmt.Errorf("get questions: %w", err)
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		var q models.Question
		var explanation, subTopic sql.NullString
		if err := rows.Scan(&q.ID, &q.QuizID, &q.QuestionText, pq.Array(&q.Options),
			&q.CorrectAnswer, &explanation, &subTopic); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		q.Explanation = explanation.String
		q.SubTopic = subTopic.String
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

func (s *Store) ListQuizzes() ([]models.QuizSummary, error) {
	rows, err := s.db.Query(
		`SELECT id, topic, difficulty, created_at FROM quizzes ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	defer rows.Close()

	var quizzes []models.QuizSummary
	for rows.Next() {
		var q models.QuizSummary
		if err := rows.Scan(&q.ID, &q.Topic, &q.Difficulty, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan quiz summary: %w", err)
		}
		quizzes = append(quizzes, q)
	}
	return quizzes, rows.Err()
}

// ── Attempt Storage ─────────────────────────────────────

// SaveAttempt persists a graded attempt and its answer records in one
// transaction, then clears any saved progress for the quiz.
func (s *Store) SaveAttempt(ctx context.Context, attempt *models.QuizAttempt) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRow(
		`INSERT INTO quiz_attempts (user_id, quiz_id, score, total_questions)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, date_taken`,
		attempt.UserID, attempt.QuizID, attempt.Score, attempt.TotalQuestions,
	).Scan(&attempt.ID, &attempt.DateTaken)
	if err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}

	for _, a := range attempt.Answers {
		_, err := tx.Exec(
			`INSERT INTO attempt_answers (attempt_id, question_id, user_answer, is_correct, sub_topic)
			 VALUES ($1, $2, $3, $4, $5)`,
			attempt.ID, a.QuestionID, a.UserAnswer, a.IsCorrect, a.SubTopic,
		)
		if err != nil {
			return fmt.Errorf("insert attempt answer: %w", err)
		}
	}

	_, err = tx.Exec(
		`DELETE FROM quiz_progress WHERE user_id = $1 AND quiz_id = $2`,
		attempt.UserID, attempt.QuizID,
	)
	if err != nil {
		return fmt.Errorf("clear progress: %w", err)
	}

	return tx.Commit()
}

func (s *Store) RecordActivity(userID int64, activityType string, quizID *int64, score *int) error {
	_, err := s.db.Exec(
		`INSERT INTO user_activity (user_id, activity_type, quiz_id, score) VALUES ($1, $2, $3, $4)`,
		userID, activityType, quizID, score,
	)
	return err
}

// ── Progress Storage ────────────────────────────────────

func (s *Store) SaveProgress(userID, quizID int64, req models.SaveProgressRequest) (*models.QuizProgress, error) {
	answersJSON, err := json.Marshal(req.Answers)
	if err != nil {
		return nil, fmt.Errorf("marshal progress answers: %w", err)
	}

	progress := models.QuizProgress{
		UserID:               userID,
		QuizID:               quizID,
		CurrentQuestionIndex: req.CurrentQuestionIndex,
		Answers:              req.Answers,
		TimeSpentSeconds:     req.TimeSpentSeconds,
		Status:               req.Status,
	}

	err = s.db.QueryRow(
		`INSERT INTO quiz_progress (user_id, quiz_id, current_question_index, answers, time_spent_seconds, status, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, NOW())
		 ON CONFLICT (user_id, quiz_id) DO UPDATE
		 SET current_question_index = EXCLUDED.current_question_index,
		     answers = EXCLUDED.answers,
		     time_spent_seconds = EXCLUDED.time_spent_seconds,
		     status = EXCLUDED.status,
		     updated_at = NOW()
		 RETURNING id, updated_at`,
		userID, quizID, req.CurrentQuestionIndex, answersJSON, req.TimeSpentSeconds, req.Status,
	).Scan(&progress.ID, &progress.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("save progress: %w", err)
	}

	return &progress, nil
}

func (s *Store) GetProgress(userID, quizID int64) (*models.QuizProgress, error) {
	var progress models.QuizProgress
	var answersJSON []byte

	err := s.db.QueryRow(
		`SELECT id, user_id, quiz_id, current_question_index, answers, time_spent_seconds, status, updated_at
		 FROM quiz_progress WHERE user_id = $1 AND quiz_id = $2`,
		userID, quizID,
	).Scan(&progress.ID, &progress.UserID, &progress.QuizID, &progress.CurrentQuestionIndex,
		&answersJSON, &progress.TimeSpentSeconds, &progress.Status, &progress.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(answersJSON, &progress.Answers); err != nil {
		return nil, fmt.Errorf("unmarshal progress answers: %w", err)
	}

	return &progress, nil
}
