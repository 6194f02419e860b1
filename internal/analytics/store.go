package analytics

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/391rajan/Quiz/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// FindAttemptsForUser returns all of a user's attempts with the quiz topic
// and difficulty joined in. Topic is NULL for attempts whose quiz has been
// deleted; callers decide what to do with those.
func (s *Store) FindAttemptsForUser(userID int64) ([]models.AttemptWithTopic, error) {
	rows, err := s.db.Query(
		`SELECT a.id, a.quiz_id, a.score, a.total_questions, a.date_taken, q.topic, q.difficulty
		 FROM quiz_attempts a
		 LEFT JOIN quizzes q ON q.id = a.quiz_id
		 WHERE a.user_id = $1
		 ORDER BY a.date_taken DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("find attempts: %w", err)
	}
	defer rows.Close()

	var attempts []models.AttemptWithTopic
	byID := make(map[int64]int)
	for rows.Next() {
		var a models.AttemptWithTopic
		if err := rows.Scan(&a.ID, &a.QuizID, &a.Score, &a.TotalQuestions,
			&a.DateTaken, &a.Topic, &a.QuizDifficulty); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		byID[a.ID] = len(attempts)
		attempts = append(attempts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(attempts) == 0 {
		return attempts, nil
	}

	ids := make([]int64, 0, len(attempts))
	for _, a := range attempts {
		ids = append(ids, a.ID)
	}

	answerRows, err := s.db.Query(
		`SELECT attempt_id, question_id, user_answer, is_correct, sub_topic
		 FROM attempt_answers WHERE attempt_id = ANY($1) ORDER BY id`,
		pq.Array(ids),
	)
	if err != nil {
		return nil, fmt.Errorf("find attempt answers: %w", err)
	}
	defer answerRows.Close()

	for answerRows.Next() {
		var attemptID int64
		var record models.AnswerRecord
		var subTopic sql.NullString
		if err := answerRows.Scan(&attemptID, &record.QuestionID, &record.UserAnswer,
			&record.IsCorrect, &subTopic); err != nil {
			return nil, fmt.Errorf("scan attempt answer: %w", err)
		}
		record.SubTopic = subTopic.String
		if idx, ok := byID[attemptID]; ok {
			attempts[idx].Answers = append(attempts[idx].Answers, record)
		}
	}

	return attempts, answerRows.Err()
}

// GetAttempt loads one attempt with its answer records.
func (s *Store) GetAttempt(attemptID int64) (*models.QuizAttempt, error) {
	var attempt models.QuizAttempt
	err := s.db.QueryRow(
		`SELECT id, user_id, quiz_id, score, total_questions, date_taken
		 FROM quiz_attempts WHERE id = $1`,
		attemptID,
	).Scan(&attempt.ID, &attempt.UserID, &attempt.QuizID, &attempt.Score,
		&attempt.TotalQuestions, &attempt.DateTaken)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(
		`SELECT question_id, user_answer, is_correct, sub_topic
		 FROM attempt_answers WHERE attempt_id = $1 ORDER BY id`,
		attemptID,
	)
	if err != nil {
		return nil, fmt.Errorf("get attempt answers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var record models.AnswerRecord
		var subTopic sql.NullString
		if err := rows.Scan(&record.QuestionID, &record.UserAnswer, &record.IsCorrect, &subTopic); err != nil {
			return nil, fmt.Errorf("scan attempt answer: %w", err)
		}
		record.SubTopic = subTopic.String
		attempt.Answers = append(attempt.Answers, record)
	}

	return &attempt, rows.Err()
}

// GetQuizWithQuestions loads a quiz's topic and full question list for the
// per-attempt results view.
func (s *Store) GetQuizWithQuestions(quizID int64) (string, []models.Question, error) {
	var topic string
	err := s.db.QueryRow(`SELECT topic FROM quizzes WHERE id = $1`, quizID).Scan(&topic)
	if err != nil {
		return "", nil, err
	}

	rows, err := s.db.Query(
		`SELECT id, quiz_id, question_text, options, correct_answer, explanation, sub_topic
		 FROM questions WHERE quiz_id = $1 ORDER BY position`,
		quizID,
	)
	if err != nil {
		return "", nil, fmt.Errorf("get quiz questions: %w", err)
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		var q models.Question
		var explanation, subTopic sql.NullString
		if err := rows.Scan(&q.ID, &q.QuizID, &q.QuestionText, pq.Array(&q.Options),
			&q.CorrectAnswer, &explanation, &subTopic); err != nil {
			return "", nil, fmt.Errorf("scan question: %w", err)
		}
		q.Explanation = explanation.String
		q.SubTopic = subTopic.String
		questions = append(questions, q)
	}

	return topic, questions, rows.Err()
}

// ListActivity returns a user's most recent activity entries.
func (s *Store) ListActivity(userID int64, limit int) ([]models.UserActivity, error) {
	rows, err := s.db.Query(
		`SELECT id, user_id, activity_type, quiz_id, score, detail, created_at
		 FROM user_activity WHERE user_id = $1
		 ORDER BY created_at DESC LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	defer rows.Close()

	var activity []models.UserActivity
	for rows.Next() {
		var a models.UserActivity
		var detail sql.NullString
		if err := rows.Scan(&a.ID, &a.UserID, &a.ActivityType, &a.QuizID, &a.Score, &detail, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		a.Detail = detail.String
		activity = append(activity, a)
	}
	return activity, rows.Err()
}
