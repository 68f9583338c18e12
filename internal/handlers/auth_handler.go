package handlers

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barberpro/internal/config"
	"github.com/BruksfildServices01/barberpro/internal/httperr"
	"github.com/BruksfildServices01/barberpro/internal/models"
	"github.com/BruksfildServices01/barberpro/internal/validators"
)

type AuthHandler struct {
	db          *gorm.DB
	config      *config.Config
	log         zerolog.Logger
	emailDomain validators.EmailDomainCheck
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, log zerolog.Logger, check validators.EmailDomainCheck) *AuthHandler {
	if check == nil {
		check = validators.IsEmailDomainValid
	}
	return &AuthHandler{db: db, config: cfg, log: log, emailDomain: check}
}

// --------- Requests ---------

type RegisterRequest struct {
	FullName string `json:"full_name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone" binding:"max=20"`
}

type AdminRegisterRequest struct {
	RegisterRequest
	InviteCode string `json:"invite_code" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}
	h.createAccount(c, req, models.RoleClient)
}

// RegisterAdmin cria uma conta do painel. Exige ADMIN_INVITE_CODE configurado.
func (h *AuthHandler) RegisterAdmin(c *gin.Context) {
	var req AdminRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	code := h.config.AdminInviteCode
	if code == "" || subtle.ConstantTimeCompare([]byte(code), []byte(req.InviteCode)) != 1 {
		httperr.Forbidden(c, "invalid_invite_code", "Código de convite inválido.")
		return
	}

	h.createAccount(c, req.RegisterRequest, models.RoleBarber)
}

func (h *AuthHandler) createAccount(c *gin.Context, req RegisterRequest, role string) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !h.emailDomain(email) {
		httperr.BadRequest(c, "invalid_email_domain", "O domínio do e-mail informado não parece ser válido.")
		return
	}

	var count int64
	h.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		httperr.Conflict(c, "email_already_registered", "Este e-mail já está cadastrado.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Erro ao criar conta.")
		return
	}

	user := models.User{
		FullName:     strings.TrimSpace(req.FullName),
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        strings.TrimSpace(req.Phone),
		Role:         role,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&user).Error; err != nil {
		if httperr.IsConflict(err) {
			httperr.Conflict(c, "email_already_registered", "Este e-mail já está cadastrado.")
			return
		}
		h.log.Error().Err(err).Msg("create user")
		httperr.Internal(c, "failed_to_create_user", "Erro ao criar conta.")
		return
	}

	token, err := h.generateToken(&user)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Erro ao criar sessão.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":  user,
		"token": token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).
		Where("email = ?", email).
		First(&user).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "E-mail ou senha inválidos.")
			return
		}
		h.log.Error().Err(err).Msg("login lookup")
		httperr.Internal(c, "internal_error", "Erro interno.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "E-mail ou senha inválidos.")
		return
	}

	token, err := h.generateToken(&user)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Erro ao criar sessão.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  user,
		"token": token,
	})
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.ID.String(),
		"role": user.Role,
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
