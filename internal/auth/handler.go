package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"

	"github.com/391rajan/Quiz/internal/models"
)

// resetTokenTTL bounds how long a password reset token stays valid.
const resetTokenTTL = 10 * time.Minute

type Handler struct {
	db     *sql.DB
	secret []byte
}

func NewHandler(db *sql.DB, secret []byte) *Handler {
	return &Handler{db: db, secret: secret}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.Username = strings.TrimSpace(req.Username)

	if req.Email == "" || req.Username == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Username, email, and password are required"})
		return
	}

	if len(req.Password) < 8 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Password must be at least 8 characters"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		return
	}

	var user models.User
	err = h.db.QueryRow(
		`INSERT INTO users (username, email, password, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, username, email, is_admin, subscription_plan, subscription_status, created_at, updated_at`,
		req.Username, req.Email, string(hashedPassword), time.Now(), time.Now(),
	).Scan(&user.ID, &user.Username, &user.Email, &user.IsAdmin,
		&user.SubscriptionPlan, &user.SubscriptionStatus, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if strings.Contains(err.Error(), "users_email_key") {
			writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "An account with this email already exists"})
			return
		}
		if strings.Contains(err.Error(), "users_username_key") {
			writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "This username is already taken"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to create account"})
		return
	}

	token, err := h.generateToken(user.ID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to generate token"})
		return
	}

	writeJSON(w, http.StatusCreated, models.AuthResponse{Token: token, User: user})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	if req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Email and password are required"})
		return
	}

	var user models.User
	var hashedPassword string
	err := h.db.QueryRow(
		`SELECT id, username, email, password, is_admin, subscription_plan, subscription_status,
		        subscription_date, created_at, updated_at
		 FROM users WHERE email = $1`,
		req.Email,
	).Scan(&user.ID, &user.Username, &user.Email, &hashedPassword, &user.IsAdmin,
		&user.SubscriptionPlan, &user.SubscriptionStatus, &user.SubscriptionDate,
		&user.CreatedAt, &user.UpdatedAt)

	if err == sql.ErrNoRows {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Invalid email or password"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(req.Password)); err != nil {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Invalid email or password"})
		return
	}

	// Login activity is best-effort; the login itself must not fail on it.
	if _, err := h.db.Exec(
		`INSERT INTO user_activity (user_id, activity_type) VALUES ($1, 'login')`, user.ID,
	); err != nil {
		log.Printf("WARN: failed to record login activity: %v", err)
	}

	token, err := h.generateToken(user.ID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to generate token"})
		return
	}

	writeJSON(w, http.StatusOK, models.AuthResponse{Token: token, User: user})
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(int64)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var user models.User
	err := h.db.QueryRow(
		`SELECT id, username, email, is_admin, subscription_plan, subscription_status,
		        subscription_date, created_at, updated_at
		 FROM users WHERE id = $1`,
		userID,
	).Scan(&user.ID, &user.Username, &user.Email, &user.IsAdmin,
		&user.SubscriptionPlan, &user.SubscriptionStatus, &user.SubscriptionDate,
		&user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "User not found"})
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// ── Password Reset ──────────────────────────────────────

func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Email is required"})
		return
	}

	rawToken, err := generateResetToken()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		return
	}

	// Only the hash is stored; the raw token goes back to the caller.
	tokenHash := hashResetToken(rawToken)
	expires := time.Now().Add(resetTokenTTL)

	result, err := h.db.Exec(
		`UPDATE users SET reset_password_token = $1, reset_password_expires = $2, updated_at = NOW()
		 WHERE email = $3`,
		tokenHash, expires, req.Email,
	)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		return
	}

	if n, _ := result.RowsAffected(); n == 0 {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "No account with this email"})
		return
	}

	writeJSON(w, http.StatusOK, models.ForgotPasswordResponse{
		Message:    "Password reset token issued. It expires in 10 minutes.",
		ResetToken: rawToken,
	})
}

func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	rawToken := mux.Vars(r)["token"]

	var req models.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if len(req.Password) < 8 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Password must be at least 8 characters"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		return
	}

	result, err := h.db.Exec(
		`UPDATE users
		 SET password = $1, reset_password_token = NULL, reset_password_expires = NULL, updated_at = NOW()
		 WHERE reset_password_token = $2 AND reset_password_expires > NOW()`,
		string(hashedPassword), hashResetToken(rawToken),
	)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		return
	}

	if n, _ := result.RowsAffected(); n == 0 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid or expired reset token"})
		return
	}

	writeJSON(w, http.StatusOK, models.MessageResponse{Message: "Password has been reset"})
}

func generateResetToken() (string, error) {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func hashResetToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func (h *Handler) generateToken(userID int64) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(72 * time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.secret)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
