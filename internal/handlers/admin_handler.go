package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"malaria-intake/internal/middleware"
	"malaria-intake/internal/models"
	"malaria-intake/internal/store"
	"malaria-intake/pkg/logger"
	"malaria-intake/pkg/utils"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// AdminHandler é a API somente-leitura do painel. Não existe edição nem exclusão.
type AdminHandler struct {
	store        store.SubmissionStore
	jwtSecret    string
	tokenTTL     time.Duration
	email        string
	passwordHash string
}

func NewAdminHandler(s store.SubmissionStore, jwtSecret string, tokenTTL time.Duration, email, passwordHash string) *AdminHandler {
	return &AdminHandler{
		store:        s,
		jwtSecret:    jwtSecret,
		tokenTTL:     tokenTTL,
		email:        email,
		passwordHash: passwordHash,
	}
}

func (h *AdminHandler) configured() bool {
	return h.jwtSecret != "" && h.email != "" && h.passwordHash != ""
}

// Login troca e-mail/senha do admin por um JWT
func (h *AdminHandler) Login(c *gin.Context) {
	if !h.configured() {
		utils.Fail(c, http.StatusServiceUnavailable, "Painel administrativo não configurado")
		return
	}

	var input models.AdminLoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Input inválido")
		return
	}

	if !strings.EqualFold(input.Email, h.email) || !utils.CheckPassword(input.Password, h.passwordHash) {
		utils.Fail(c, http.StatusUnauthorized, "E-mail ou senha incorretos")
		return
	}

	token, err := utils.GenerateToken(h.jwtSecret, h.email, middleware.RoleAdmin, h.tokenTTL)
	if err != nil {
		logger.WithError(err).Error("failed to generate admin token")
		utils.Fail(c, http.StatusInternalServerError, "Falha ao gerar token")
		return
	}

	utils.Ok(c, http.StatusOK, "Login realizado", gin.H{
		"token":      token,
		"expires_in": int64(h.tokenTTL.Seconds()),
	})
}

// ListSubmissions lista os cadastros mais recentes (?limit=, padrão 50, máx 200)
func (h *AdminHandler) ListSubmissions(c *gin.Context) {
	limit := utils.ParseLimit(c.Query("limit"), defaultListLimit, maxListLimit)

	subs, err := h.store.List(c.Request.Context(), limit)
	if err != nil {
		logger.WithError(err).Error("failed to list submissions")
		utils.Fail(c, http.StatusInternalServerError, "Erro ao buscar cadastros")
		return
	}

	utils.Ok(c, http.StatusOK, "Cadastros", gin.H{
		"collection": h.store.CollectionPath(),
		"count":      len(subs),
		"items":      subs,
	})
}

// GetSubmission busca um cadastro pelo uid (= chave do documento)
func (h *AdminHandler) GetSubmission(c *gin.Context) {
	uid := c.Param("id")

	sub, err := h.store.Get(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.Fail(c, http.StatusNotFound, "Cadastro não encontrado")
			return
		}
		logger.WithError(err).WithField("uid", uid).Error("failed to get submission")
		utils.Fail(c, http.StatusInternalServerError, "Erro ao buscar cadastro")
		return
	}

	utils.Ok(c, http.StatusOK, "Cadastro", sub)
}
