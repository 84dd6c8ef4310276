package main

import (
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

// tokenTTL is how long issued JWTs stay valid.
const tokenTTL = 24 * time.Hour

// dummyHash is a pre-computed bcrypt hash used when a login email isn't found.
// Running bcrypt against it (instead of returning early) keeps response time
// constant, preventing timing-based account enumeration.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy"), bcrypt.DefaultCost)

// register creates a user with a bcrypt-hashed password and their initial
// body metrics. POST /api/auth/register (public).
// Metric ranges match what the calorie computation considers plausible:
// age 1-120, height 100-250 cm, weight 30-300 kg.
func (h *Handler) register(c *gin.Context) {
	var body registerRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(strings.TrimSpace(body.Name)) < 2 {
		apiError(c, http.StatusBadRequest, "name must be at least 2 characters")
		return
	}
	if _, err := mail.ParseAddress(body.Email); err != nil {
		apiError(c, http.StatusBadRequest, "invalid email")
		return
	}
	if len(body.Password) < 6 {
		apiError(c, http.StatusBadRequest, "password must be at least 6 characters")
		return
	}
	if body.Age < 1 || body.Age > 120 {
		apiError(c, http.StatusBadRequest, "age must be between 1 and 120")
		return
	}
	if body.HeightCM < 100 || body.HeightCM > 250 {
		apiError(c, http.StatusBadRequest, "height must be between 100 and 250 cm")
		return
	}
	if body.WeightKG < 30 || body.WeightKG > 300 {
		apiError(c, http.StatusBadRequest, "weight must be between 30 and 300 kg")
		return
	}

	// Check for an existing account first so the client gets a clear message
	// instead of a constraint-violation 500.
	var existingID int
	err := h.db.QueryRow(c, "SELECT id FROM users WHERE email = $1", body.Email).Scan(&existingID)
	if err == nil {
		apiError(c, http.StatusBadRequest, "a user with this email already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to hash password")
		return
	}

	var userID int
	err = h.db.QueryRow(c,
		`INSERT INTO users (name, email, password, age, height, weight)
		 VALUES (@name, @email, @password, @age, @height, @weight)
		 RETURNING id`,
		pgx.NamedArgs{
			"name": strings.TrimSpace(body.Name), "email": body.Email,
			"password": string(hash), "age": body.Age,
			"height": body.HeightCM, "weight": body.WeightKG,
		}).Scan(&userID)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to create user")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user_id": userID})
}

// login verifies email/password and returns a signed JWT.
// POST /api/auth/login (public).
func (h *Handler) login(c *gin.Context) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Email == "" || body.Password == "" {
		apiError(c, http.StatusBadRequest, "email and password are required")
		return
	}

	u, lookupErr := queryOne[user](h.db, c,
		"SELECT * FROM users WHERE email = @email",
		pgx.NamedArgs{"email": body.Email})

	// Always run bcrypt to keep response time constant regardless of whether
	// the email was found — prevents timing-based account enumeration.
	hashToCheck := string(dummyHash)
	if lookupErr == nil {
		hashToCheck = u.Password
	}
	compareErr := bcrypt.CompareHashAndPassword([]byte(hashToCheck), []byte(body.Password))

	if lookupErr != nil || compareErr != nil {
		apiError(c, http.StatusUnauthorized, "invalid email or password")
		return
	}

	token, err := h.signToken(u)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to sign token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  gin.H{"id": u.ID, "email": u.Email, "name": u.Name},
	})
}

// signToken issues an HS256 JWT carrying the user's id and email.
func (h *Handler) signToken(u user) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": u.ID,
		"email":   u.Email,
		"jti":     uuid.NewString(),
		"iat":     now.Unix(),
		"exp":     now.Add(tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.jwtSecret)
}

// authMiddleware validates the Bearer JWT and sets user_id on the context.
func (h *Handler) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			apiError(c, http.StatusUnauthorized, "missing or invalid authorization header")
			c.Abort()
			return
		}
		tokenStr := strings.TrimPrefix(header, "Bearer ")

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return h.jwtSecret, nil
		})
		if err != nil || !token.Valid {
			apiError(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		// Numeric JSON claims decode as float64.
		userID, ok := claims["user_id"].(float64)
		if !ok {
			apiError(c, http.StatusUnauthorized, "invalid token claims")
			c.Abort()
			return
		}

		c.Set("user_id", int(userID))
		c.Next()
	}
}
