package admin

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/391rajan/Quiz/internal/models"
)

type Handler struct {
	db *sql.DB
}

func NewHandler(db *sql.DB) *Handler {
	return &Handler{db: db}
}

func (h *Handler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(
		`SELECT id, username, email, is_admin, subscription_plan, subscription_status,
		        subscription_date, created_at, updated_at
		 FROM users ORDER BY created_at DESC`,
	)
	if err != nil {
		log.Printf("[admin] GetAllUsers error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list users"})
		return
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.IsAdmin,
			&u.SubscriptionPlan, &u.SubscriptionStatus, &u.SubscriptionDate,
			&u.CreatedAt, &u.UpdatedAt); err != nil {
			log.Printf("[admin] scan user error: %v", err)
			writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list users"})
			return
		}
		users = append(users, u)
	}

	writeJSON(w, http.StatusOK, users)
}

func (h *Handler) GetAllQuizzes(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(
		`SELECT id, topic, difficulty, created_at FROM quizzes ORDER BY created_at DESC`,
	)
	if err != nil {
		log.Printf("[admin] GetAllQuizzes error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list quizzes"})
		return
	}
	defer rows.Close()

	quizzes := []models.QuizSummary{}
	for rows.Next() {
		var q models.QuizSummary
		if err := rows.Scan(&q.ID, &q.Topic, &q.Difficulty, &q.CreatedAt); err != nil {
			log.Printf("[admin] scan quiz error: %v", err)
			writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list quizzes"})
			return
		}
		quizzes = append(quizzes, q)
	}

	writeJSON(w, http.StatusOK, quizzes)
}

func (h *Handler) PromoteUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid user ID"})
		return
	}

	var user models.User
	err = h.db.QueryRow(
		`UPDATE users SET is_admin = TRUE, updated_at = NOW()
		 WHERE id = $1
		 RETURNING id, username, email, is_admin, subscription_plan, subscription_status,
		           subscription_date, created_at, updated_at`,
		id,
	).Scan(&user.ID, &user.Username, &user.Email, &user.IsAdmin,
		&user.SubscriptionPlan, &user.SubscriptionStatus, &user.SubscriptionDate,
		&user.CreatedAt, &user.UpdatedAt)

	if err == sql.ErrNoRows {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "User not found"})
		return
	}
	if err != nil {
		log.Printf("[admin] PromoteUser error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to promote user"})
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// DeleteQuiz removes a quiz and its questions. Attempts at the quiz are kept
// and become orphans, which analytics silently skips.
func (h *Handler) DeleteQuiz(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid quiz ID"})
		return
	}

	result, err := h.db.Exec(`DELETE FROM quizzes WHERE id = $1`, id)
	if err != nil {
		log.Printf("[admin] DeleteQuiz error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to delete quiz"})
		return
	}

	if n, _ := result.RowsAffected(); n == 0 {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Quiz not found"})
		return
	}

	writeJSON(w, http.StatusOK, models.MessageResponse{Message: "Quiz removed successfully"})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
