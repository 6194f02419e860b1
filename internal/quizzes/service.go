package quizzes

import (
	"context"
	"fmt"
	"log"

	"github.com/391rajan/Quiz/internal/generator"
	"github.com/391rajan/Quiz/internal/models"
)

type Service struct {
	store *Store
	gen   *generator.Generator
}

func NewService(store *Store, gen *generator.Generator) *Service {
	return &Service{store: store, gen: gen}
}

// GenerateQuiz asks the LLM for questions and persists the result.
func (s *Service) GenerateQuiz(ctx context.Context, userID int64, req models.GenerateQuizRequest) (*models.Quiz, error) {
	generated, llmResp, err := s.gen.GenerateQuiz(ctx, req.Topic, req.Difficulty, req.NumQuestions)
	if err != nil {
		return nil, err
	}

	if llmResp != nil {
		log.Printf("[quizzes] generated %d questions for topic %q (%d prompt tokens, %d output tokens)",
			len(generated), req.Topic, llmResp.PromptTokens, llmResp.OutputTokens)
	}

	quiz, err := s.store.SaveGeneratedQuiz(ctx, req.Topic, req.Difficulty, userID, generated)
	if err != nil {
		return nil, fmt.Errorf("save quiz: %w", err)
	}

	return quiz, nil
}

func (s *Service) GetQuiz(quizID int64) (*models.Quiz, error) {
	return s.store.GetQuiz(quizID)
}

func (s *Service) ListQuizzes() ([]models.QuizSummary, error) {
	return s.store.ListQuizzes()
}

// SubmitQuiz grades a submission against the stored quiz and records the
// attempt. Grading is always server-side; the client never reports a score.
func (s *Service) SubmitQuiz(ctx context.Context, userID int64, req models.SubmitQuizRequest) (*models.QuizAttempt, error) {
	quiz, err := s.store.GetQuiz(req.QuizID)
	if err != nil {
		return nil, err
	}

	score, records := GradeSubmission(quiz.Questions, req.Answers)

	attempt := &models.QuizAttempt{
		UserID:         userID,
		QuizID:         quiz.ID,
		Score:          score,
		TotalQuestions: len(quiz.Questions),
		Answers:        records,
	}

	if err := s.store.SaveAttempt(ctx, attempt); err != nil {
		return nil, err
	}

	// Activity is best-effort; the submission must not fail on it.
	if err := s.store.RecordActivity(userID, "quiz_complete", &quiz.ID, &score); err != nil {
		log.Printf("WARN: failed to record quiz activity: %v", err)
	}

	return attempt, nil
}

func (s *Service) SaveProgress(userID, quizID int64, req models.SaveProgressRequest) (*models.QuizProgress, error) {
	if _, err := s.store.GetQuiz(quizID); err != nil {
		return nil, err
	}
	return s.store.SaveProgress(userID, quizID, req)
}

func (s *Service) GetProgress(userID, quizID int64) (*models.QuizProgress, error) {
	return s.store.GetProgress(userID, quizID)
}
