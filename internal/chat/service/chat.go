package service

import (
	"context"

	"sagradago/pkg/client"
	"sagradago/pkg/config"
	apperrors "sagradago/pkg/errors"
	"sagradago/pkg/model"
	"sagradago/pkg/sanitizer"
)

// systemPrompt anchors the assistant to the parish and the app's
// features. Sent as the first user turn; the API treats it as context.
const systemPrompt = `You are a helpful virtual assistant for Sagrada Familia Parish Church, located at Sagrada Familia Parish, Sanctuary of the Holy Face of Manoppello, Manila, Philippines.
You are an expert in both church-related matters in the Philippines and the SagradaGo Parish Information System. In SagradaGo, users can:
- Book sacrament services (Wedding, Baptism, Confession, Anointing of the Sick, First Communion, and Burial) via the "Book a Service" feature.
- View upcoming church events on the "Events" page.
- Volunteer for church activities.
- Donate to support the church.
Only respond to questions related to the church or the SagradaGo system.
If the user asks about anything unrelated (e.g., random topics, general knowledge, or other locations), politely reply that you can only assist with Sagrada Familia Parish and its services.`

const fallbackReply = "Sorry, no response from Gemini."

// Generator is the slice of the Gemini client the service needs.
type Generator interface {
	GenerateContent(ctx context.Context, contents []client.GeminiContent) (string, error)
}

type ChatService interface {
	Ask(ctx context.Context, req *model.ChatRequest) (*model.ChatReply, error)
}

type chatService struct {
	generator Generator
	cfg       *config.Config
}

func NewChatService(generator Generator, cfg *config.Config) ChatService {
	return &chatService{
		generator: generator,
		cfg:       cfg,
	}
}

// Ask relays one user message plus prior turns to the model and returns
// its reply. The system prompt is always prepended so the assistant
// stays scoped to parish matters regardless of history.
func (s *chatService) Ask(ctx context.Context, req *model.ChatRequest) (*model.ChatReply, error) {
	if req == nil {
		return nil, apperrors.InvalidInput("Message is required")
	}

	message := sanitizer.TrimAndNormalize(req.Message)
	if message == "" {
		return nil, apperrors.InvalidInput("Message is required")
	}

	contents := make([]client.GeminiContent, 0, len(req.History)+2)
	contents = append(contents, client.GeminiContent{
		Role:  "user",
		Parts: []client.GeminiPart{{Text: systemPrompt}},
	})
	for _, turn := range req.History {
		if turn.Role != "user" && turn.Role != "model" {
			continue
		}
		contents = append(contents, client.GeminiContent{
			Role:  turn.Role,
			Parts: []client.GeminiPart{{Text: turn.Text}},
		})
	}
	contents = append(contents, client.GeminiContent{
		Role:  "user",
		Parts: []client.GeminiPart{{Text: message}},
	})

	reply, err := s.generator.GenerateContent(ctx, contents)
	if err != nil {
		s.cfg.Log.Error("Gemini request failed", "error", err)
		return nil, apperrors.Unavailable("The parish assistant")
	}
	if reply == "" {
		reply = fallbackReply
	}

	return &model.ChatReply{Reply: reply}, nil
}
