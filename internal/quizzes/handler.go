package quizzes

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/391rajan/Quiz/internal/models"
)

const maxQuestionsPerQuiz = 20

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// getUserID extracts the authenticated user ID from the request context.
func getUserID(r *http.Request) (int64, bool) {
	uid, ok := r.Context().Value("user_id").(int64)
	return uid, ok
}

func (h *Handler) GenerateQuiz(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.GenerateQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if req.Topic == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "topic is required"})
		return
	}

	if !models.ValidDifficulties[req.Difficulty] {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "difficulty must be 'easy', 'medium', or 'hard'"})
		return
	}

	if req.NumQuestions <= 0 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "num_questions must be a positive integer"})
		return
	}
	if req.NumQuestions > maxQuestionsPerQuiz {
		req.NumQuestions = maxQuestionsPerQuiz
	}

	quiz, err := h.service.GenerateQuiz(r.Context(), userID, req)
	if err != nil {
		log.Printf("[quizzes] GenerateQuiz error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to generate quiz"})
		return
	}

	writeJSON(w, http.StatusCreated, quiz)
}

func (h *Handler) ListQuizzes(w http.ResponseWriter, r *http.Request) {
	quizzes, err := h.service.ListQuizzes()
	if err != nil {
		log.Printf("[quizzes] ListQuizzes error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list quizzes"})
		return
	}

	if quizzes == nil {
		quizzes = []models.QuizSummary{}
	}
	writeJSON(w, http.StatusOK, models.QuizListResponse{Quizzes: quizzes, Total: len(quizzes)})
}

func (h *Handler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid quiz ID"})
		return
	}

	quiz, err := h.service.GetQuiz(id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Quiz not found"})
		return
	}

	writeJSON(w, http.StatusOK, quiz)
}

func (h *Handler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.SubmitQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if req.QuizID <= 0 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "quiz_id is required"})
		return
	}

	attempt, err := h.service.SubmitQuiz(r.Context(), userID, req)
	if err != nil {
		if isNotFound(err) {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Quiz not found"})
			return
		}
		log.Printf("[quizzes] SubmitQuiz error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to submit quiz"})
		return
	}

	writeJSON(w, http.StatusCreated, attempt)
}

// ── Progress Handlers ───────────────────────────────────

func (h *Handler) SaveProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	quizID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid quiz ID"})
		return
	}

	var req models.SaveProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if req.Status == "" {
		req.Status = "in-progress"
	}

	progress, err := h.service.SaveProgress(userID, quizID, req)
	if err != nil {
		if isNotFound(err) {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Quiz not found"})
			return
		}
		log.Printf("[quizzes] SaveProgress error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to save progress"})
		return
	}

	writeJSON(w, http.StatusOK, progress)
}

func (h *Handler) GetProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	quizID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid quiz ID"})
		return
	}

	progress, err := h.service.GetProgress(userID, quizID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "No saved progress for this quiz"})
		return
	}

	writeJSON(w, http.StatusOK, progress)
}

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
