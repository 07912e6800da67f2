package gpt

import (
	"DentEase/entity"
	"DentEase/internal/lib/sl"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// historyLimit is how many of the latest messages go into the prompt.
const historyLimit = 10

// Responder drafts replies to patients while no operator is online.
type Responder struct {
	client *openai.Client
	model  string
	clinic string
	log    *slog.Logger
}

func NewResponder(apiKey, model, clinic string, logger *slog.Logger) *Responder {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &Responder{
		client: openai.NewClient(apiKey),
		model:  model,
		clinic: clinic,
		log:    logger.With(sl.Module("gpt-responder")),
	}
}

// Reply returns the assistant's answer to the conversation so far.
func (r *Responder) Reply(ctx context.Context, history []entity.Message, services []entity.Service) (string, error) {
	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       r.model,
		Messages:    buildPrompt(r.clinic, history, services),
		MaxTokens:   300,
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}
	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	r.log.With(
		slog.Int("history", len(history)),
		slog.Int("tokens", resp.Usage.TotalTokens),
	).Debug("auto reply drafted")
	return answer, nil
}

func buildPrompt(clinic string, history []entity.Message, services []entity.Service) []openai.ChatCompletionMessage {
	var system strings.Builder
	fmt.Fprintf(&system, "You are the front desk assistant of %s, a dental clinic. ", clinic)
	system.WriteString("The clinic staff is offline right now. Answer briefly and politely, ")
	system.WriteString("never give a diagnosis, and tell the patient that staff will follow up.")
	if active := activeServices(services); len(active) > 0 {
		system.WriteString("\n\nServices offered:\n")
		for _, s := range active {
			fmt.Fprintf(&system, "- %s: PHP %.2f", s.Name, s.Price)
			if s.Description != "" {
				fmt.Fprintf(&system, " (%s)", s.Description)
			}
			system.WriteString("\n")
		}
	}

	messages := []openai.ChatCompletionMessage{{
		Role:    openai.ChatMessageRoleSystem,
		Content: strings.TrimSpace(system.String()),
	}}
	if len(history) > historyLimit {
		history = history[len(history)-historyLimit:]
	}
	for _, m := range history {
		if strings.TrimSpace(m.Text) == "" {
			continue
		}
		role := openai.ChatMessageRoleUser
		if m.SenderType == entity.SenderAdmin {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: m.Text})
	}
	return messages
}

func activeServices(services []entity.Service) []entity.Service {
	out := make([]entity.Service, 0, len(services))
	for _, s := range services {
		if s.IsActive {
			out = append(out, s)
		}
	}
	return out
}
