package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"malaria-intake/internal/assistant"
	"malaria-intake/pkg/logger"
	"malaria-intake/pkg/utils"
)

const maxPromptBody = 64 << 10

type geminiRequest struct {
	Prompt string `json:"prompt"`
}

// GeminiHandler repassa o prompt para o Gemini sem expor a chave ao navegador
type GeminiHandler struct {
	generator assistant.TextGenerator
}

// NewGeminiHandler: generator nil = GEMINI_API_KEY não configurada
func NewGeminiHandler(generator assistant.TextGenerator) *GeminiHandler {
	return &GeminiHandler{generator: generator}
}

func (h *GeminiHandler) Proxy(c *gin.Context) {
	// 1. Só POST (o preflight OPTIONS já foi respondido pelo CORSMiddleware)
	if c.Request.Method != http.MethodPost {
		utils.Fail(c, http.StatusMethodNotAllowed, "Método não permitido. Use POST.")
		return
	}

	if h.generator == nil {
		logger.Log.Error("GEMINI_API_KEY missing")
		utils.Fail(c, http.StatusInternalServerError, "Chave de API do Gemini não configurada no servidor.")
		return
	}

	// 2. Prompt
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxPromptBody)
	var input geminiRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Corpo da requisição inválido (JSON mal-formado).")
		return
	}

	prompt := strings.TrimSpace(input.Prompt)
	if prompt == "" {
		utils.Fail(c, http.StatusBadRequest, "O campo \"prompt\" é obrigatório e não pode ser vazio.")
		return
	}

	// 3. Chamada à API
	text, err := h.generator.Generate(c.Request.Context(), prompt)
	if err != nil {
		if errors.Is(err, assistant.ErrEmptyResponse) {
			logger.WithError(err).Warn("gemini returned no text")
			utils.Fail(c, http.StatusInternalServerError, "A IA não retornou um texto válido.")
			return
		}
		logger.WithError(err).Error("gemini request failed")
		utils.Fail(c, http.StatusBadGateway, "Erro ao comunicar com a API Gemini.")
		return
	}

	utils.Ok(c, http.StatusOK, "OK", gin.H{"text": text})
}
