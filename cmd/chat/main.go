package main

import (
	adminhandler "sagradago/internal/admin/handler"
	adminservice "sagradago/internal/admin/service"
	chathandler "sagradago/internal/chat/handler"
	chatservice "sagradago/internal/chat/service"
	"sagradago/pkg/app"
	"sagradago/pkg/client"
	"sagradago/pkg/config"
	"sagradago/pkg/contracts"

	"github.com/julienschmidt/httprouter"
)

const ServiceName = "chat"

// routes bundles the assistant relay and the admin invite endpoint
// behind one router; both are thin proxies to external platforms.
type routes struct {
	handlers []contracts.Handler
}

func (r *routes) RegisterRoutes(router *httprouter.Router) {
	for _, h := range r.handlers {
		h.RegisterRoutes(router)
	}
}

func main() {
	cfg := config.Load(ServiceName)

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}
	cfg.LogConfiguration()

	cfg.Log.Info("Starting Chat service")

	if cfg.GeminiAPIKey == "" {
		cfg.Log.Fatal("Gemini API key is required for the chat service")
	}
	if cfg.AuthBaseURL == "" || cfg.AuthServiceKey == "" {
		cfg.Log.Fatal("Auth platform base URL and service key are required for the chat service")
	}

	gemini := client.NewGeminiClient(cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.GeminiModel)
	chatService := chatservice.NewChatService(gemini, cfg)

	authAdmin := client.NewAuthAdminClient(cfg.AuthBaseURL, cfg.AuthServiceKey)
	adminService := adminservice.NewAdminService(authAdmin, cfg)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(nil, &routes{handlers: []contracts.Handler{
		chathandler.NewChatHandler(chatService, cfg.Log),
		adminhandler.NewAdminHandler(adminService, cfg.Log),
	}})
	serverApp.Run()
}
