package gpt

import (
	"DentEase/entity"
	"fmt"
	"strings"
	"testing"

	"github.com/sashabaranov/go-openai"
)

func TestBuildPromptRolesAndServices(t *testing.T) {
	history := []entity.Message{
		{Text: "Hi, how much is cleaning?", SenderType: entity.SenderUser},
		{Text: "It is 800 pesos.", SenderType: entity.SenderAdmin},
		{Text: "   ", SenderType: entity.SenderUser},
		{Text: "Can I book tomorrow?", SenderType: entity.SenderUser},
	}
	services := []entity.Service{
		{Name: "Cleaning", Price: 800, IsActive: true},
		{Name: "Retired", Price: 10, IsActive: false},
	}

	msgs := buildPrompt("DentEase", history, services)

	if len(msgs) != 4 {
		t.Fatalf("expected system + 3 messages, got %d", len(msgs))
	}
	if msgs[0].Role != openai.ChatMessageRoleSystem || !strings.Contains(msgs[0].Content, "DentEase") {
		t.Fatalf("unexpected system message %+v", msgs[0])
	}
	if !strings.Contains(msgs[0].Content, "Cleaning: PHP 800.00") || strings.Contains(msgs[0].Content, "Retired") {
		t.Fatalf("service list wrong: %q", msgs[0].Content)
	}
	if msgs[2].Role != openai.ChatMessageRoleAssistant || msgs[3].Content != "Can I book tomorrow?" {
		t.Fatalf("unexpected roles %+v", msgs[1:])
	}
}

func TestBuildPromptKeepsLatestHistory(t *testing.T) {
	var history []entity.Message
	for i := 0; i < 15; i++ {
		history = append(history, entity.Message{Text: fmt.Sprintf("m%d", i), SenderType: entity.SenderUser})
	}
	msgs := buildPrompt("DentEase", history, nil)
	if len(msgs) != historyLimit+1 {
		t.Fatalf("expected %d messages, got %d", historyLimit+1, len(msgs))
	}
	if msgs[1].Content != "m5" || msgs[len(msgs)-1].Content != "m14" {
		t.Fatalf("expected m5..m14, got %s..%s", msgs[1].Content, msgs[len(msgs)-1].Content)
	}
}
