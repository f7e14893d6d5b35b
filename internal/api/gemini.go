package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"todopix/internal/models"

	"google.golang.org/genai"
)

// AnalyzeRequest is the payload for POST /todos/analyze.
type AnalyzeRequest struct {
	Question string               `json:"question"`
	History  []models.ChatMessage `json:"history"`
}

// AnalyzeHandler sends the current items and the caller's question to
// Gemini and returns the model's answer.
func (h *Handlers) AnalyzeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeError(w, http.StatusBadRequest, "question required")
		return
	}

	answer, err := AnalyzeItems(r.Context(), h.store.List(), req.Question, req.History)
	if err != nil {
		log.Printf("analyzing items: %v", err)
		writeError(w, http.StatusBadGateway, "analysis unavailable")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"answer": answer})
}

// AnalyzeItems sends the item list and a question to the Gemini API and
// returns the response text.
func AnalyzeItems(ctx context.Context, items []models.Item, question string, history []models.ChatMessage) (string, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return "", fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create Gemini client: %w", err)
	}

	// Build context from the to-do list
	var listContext strings.Builder
	listContext.WriteString("You are a helpful assistant analyzing a user's to-do list. ")
	listContext.WriteString("Here are the current items:\n\n")
	for _, item := range items {
		listContext.WriteString(fmt.Sprintf("- %s", item.Text))
		if item.Image != nil {
			listContext.WriteString(" (has photo)")
		}
		listContext.WriteString("\n")
	}
	if len(items) == 0 {
		listContext.WriteString("(the list is empty)\n")
	}

	// Convert history
	var chatHistory []*genai.Content
	for _, msg := range history {
		role := "user"
		if msg.Role == "model" {
			role = "model"
		}
		chatHistory = append(chatHistory, &genai.Content{
			Role: role,
			Parts: []*genai.Part{
				{Text: msg.Content},
			},
		})
	}

	chat, err := client.Chats.Create(ctx, "gemini-2.5-flash", &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{
				{Text: listContext.String()},
			},
		},
	}, chatHistory)
	if err != nil {
		return "", fmt.Errorf("failed to create chat session: %w", err)
	}

	resp, err := chat.SendMessage(ctx, genai.Part{Text: question})
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from Gemini")
	}

	part := resp.Candidates[0].Content.Parts[0]
	if part.Text != "" {
		return part.Text, nil
	}

	return "", fmt.Errorf("empty response from Gemini")
}
