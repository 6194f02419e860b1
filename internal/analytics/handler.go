package analytics

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/391rajan/Quiz/internal/models"
)

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// getUserID extracts the authenticated user ID from the request context.
func getUserID(r *http.Request) (int64, bool) {
	uid, ok := r.Context().Value("user_id").(int64)
	return uid, ok
}

// GetUserAnalytics aggregates the caller's attempt history into per-topic
// statistics, weak/strong classifications, and a scored history.
func (h *Handler) GetUserAnalytics(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	attempts, err := h.store.FindAttemptsForUser(userID)
	if err != nil {
		log.Printf("[analytics] FindAttemptsForUser error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load analytics"})
		return
	}

	writeJSON(w, http.StatusOK, BuildAnalytics(attempts))
}

// GetQuizResults returns the full review for one attempt: every quiz
// question with the correct answer, explanation, and the user's answer.
func (h *Handler) GetQuizResults(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	attemptID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid attempt ID"})
		return
	}

	attempt, err := h.store.GetAttempt(attemptID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Quiz attempt not found"})
		return
	}

	if attempt.UserID != userID {
		writeJSON(w, http.StatusForbidden, models.ErrorResponse{Error: "Not authorized to view this attempt"})
		return
	}

	topic, questions, err := h.store.GetQuizWithQuestions(attempt.QuizID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "The quiz for this attempt no longer exists"})
			return
		}
		log.Printf("[analytics] GetQuizWithQuestions error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load quiz results"})
		return
	}

	answerByQuestion := make(map[int64]models.AnswerRecord, len(attempt.Answers))
	for _, a := range attempt.Answers {
		answerByQuestion[a.QuestionID] = a
	}

	results := models.AttemptResults{
		Score:          attempt.Score,
		TotalQuestions: attempt.TotalQuestions,
		Topic:          topic,
		DateTaken:      attempt.DateTaken,
	}
	for _, q := range questions {
		qr := models.QuestionResult{
			QuestionText:  q.QuestionText,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
		}
		if record, found := answerByQuestion[q.ID]; found {
			qr.UserAnswer = record.UserAnswer
			qr.IsCorrect = record.IsCorrect
		}
		results.Questions = append(results.Questions, qr)
	}

	writeJSON(w, http.StatusOK, results)
}

// GetUserActivity returns the caller's recent activity log entries.
func (h *Handler) GetUserActivity(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	limit := intQueryParam(r.URL.Query(), "limit", 20)
	if limit > 100 {
		limit = 100
	}

	activity, err := h.store.ListActivity(userID, limit)
	if err != nil {
		log.Printf("[analytics] ListActivity error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load activity"})
		return
	}

	if activity == nil {
		activity = []models.UserActivity{}
	}
	writeJSON(w, http.StatusOK, models.ActivityListResponse{Activity: activity, Total: len(activity)})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func intQueryParam(query url.Values, key string, defaultVal int) int {
	s := query.Get(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return defaultVal
	}
	return v
}
