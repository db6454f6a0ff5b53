package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"malaria-intake/internal/models"
	"malaria-intake/internal/notify"
	"malaria-intake/internal/store"
	"malaria-intake/pkg/logger"
	"malaria-intake/pkg/utils"
)

const (
	maxFormMemory    = 8 << 20
	notifyTimeout    = 10 * time.Second
	defaultSubmitter = "Participante"
)

// FormHandler atende o formulário: GET /, POST /submit_form e GET /success
type FormHandler struct {
	store    store.SubmissionStore
	ids      utils.IDGenerator
	notifier notify.Notifier

	pending sync.WaitGroup
}

// NewFormHandler: notifier pode ser nil (sem notificações)
func NewFormHandler(s store.SubmissionStore, ids utils.IDGenerator, notifier notify.Notifier) *FormHandler {
	return &FormHandler{store: s, ids: ids, notifier: notifier}
}

// Home renderiza o formulário com o e-mail vazio e editável
func (h *FormHandler) Home(c *gin.Context) {
	c.HTML(http.StatusOK, "form.html", gin.H{
		"EmailValue": "",
	})
}

// SubmitForm monta o registro, grava com o uid como chave e redireciona pra /success
func (h *FormHandler) SubmitForm(c *gin.Context) {
	// 1. Parse do form (urlencoded ou multipart)
	if err := c.Request.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		logger.WithError(err).Warn("invalid form body")
		c.String(http.StatusBadRequest, "Formulário inválido.")
		return
	}

	// 2. Monta o registro
	sub := models.NewSubmissionFromForm(c.Request.PostForm, h.ids.NewID())

	// 3. Grava (uma chamada só, sem retry)
	if err := h.store.Save(c.Request.Context(), sub); err != nil {
		logger.WithError(err).WithFields(map[string]interface{}{
			"uid":        sub.UID,
			"collection": h.store.CollectionPath(),
		}).Error("failed to save submission")
		c.String(http.StatusInternalServerError, "Erro interno ao salvar os dados. Tente novamente mais tarde.")
		return
	}

	logger.WithFields(map[string]interface{}{
		"uid":        sub.UID,
		"collection": h.store.CollectionPath(),
	}).Info("submission saved")

	h.notifyAsync(sub)

	// 4. Redireciona com o nome na query
	c.Redirect(http.StatusFound, "/success?"+url.Values{"name": {sub.NomeCompleto}}.Encode())
}

// Success é a página de confirmação, sem efeitos colaterais
func (h *FormHandler) Success(c *gin.Context) {
	c.HTML(http.StatusOK, "success.html", gin.H{
		"Name":           c.DefaultQuery("name", defaultSubmitter),
		"CollectionPath": h.store.CollectionPath(),
	})
}

// notifyAsync não bloqueia o redirect; falha de notificação só vai pro log
func (h *FormHandler) notifyAsync(sub *models.Submission) {
	if h.notifier == nil {
		return
	}

	h.pending.Add(1)
	go func() {
		defer h.pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := h.notifier.NotifySubmission(ctx, sub); err != nil {
			logger.WithError(err).WithField("uid", sub.UID).Warn("submission notification failed")
		}
	}()
}

// Wait bloqueia até as notificações em andamento terminarem; chamar antes de fechar os notifiers
func (h *FormHandler) Wait() {
	h.pending.Wait()
}
