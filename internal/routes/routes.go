package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"malaria-intake/internal/config"
	"malaria-intake/internal/handlers"
	"malaria-intake/internal/middleware"
	"malaria-intake/internal/templates"
)

type Handlers struct {
	Form   *handlers.FormHandler
	Admin  *handlers.AdminHandler
	Gemini *handlers.GeminiHandler
}

// NewRouter monta o engine com middlewares globais, templates e rotas
func NewRouter(cfg *config.Config, h Handlers) (*gin.Engine, error) {
	tmpl, err := templates.Load()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	r := gin.New()
	// Sem proxy confiável o ClientIP é o RemoteAddr; o limiter por IP depende disso
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigin))
	r.SetHTMLTemplate(tmpl)

	SetupRoutes(r, cfg, h)
	return r, nil
}

func SetupRoutes(r *gin.Engine, cfg *config.Config, h Handlers) {
	// Um balde por IP, compartilhado pelas rotas que escrevem ou custam caro
	limiter := middleware.RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst)

	// Formulário
	r.GET("/", h.Form.Home)
	r.POST("/submit_form", limiter, h.Form.SubmitForm)
	r.GET("/success", h.Form.Success)

	r.GET("/ping", handlers.Ping)

	api := r.Group("/api/v1")
	{
		api.Any("/gemini", limiter, h.Gemini.Proxy)

		admin := api.Group("/admin")
		{
			admin.POST("/login", limiter, h.Admin.Login)

			protected := admin.Group("/")
			protected.Use(middleware.AuthMiddleware(cfg.JWTSecret), middleware.AdminOnly())
			{
				protected.GET("/submissions", h.Admin.ListSubmissions)
				protected.GET("/submissions/:id", h.Admin.GetSubmission)
			}
		}
	}
}
