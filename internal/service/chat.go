package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pageza/menuqr/backend/internal/models"
	"github.com/pageza/menuqr/backend/internal/policy"
	"github.com/pageza/menuqr/backend/internal/provider"
	"github.com/pageza/menuqr/backend/internal/repository"
	"github.com/pageza/menuqr/backend/internal/types"
	"github.com/pageza/menuqr/backend/internal/validation"
)

const (
	chatHistoryTurns = 10
	chatMaxTokens    = 500
)

const chatGuidelines = `Guidelines:
- Help guests explore the menu and answer questions about dishes, ingredients and prices.
- Recommend dishes that fit what the guest asks for, such as spice level, diet or budget.
- Only mention dishes listed above, using their exact names and prices.
- If something is not on the menu, say so politely and suggest the closest alternative.
- For allergens or dietary details, share what the descriptions suggest and advise confirming with staff.
- Keep answers to two to four sentences unless the guest asks for more detail.
- All prices are in AED.`

// ChatService answers customer questions about a restaurant's current menu.
type ChatService struct {
	repo     repository.Repository
	provider provider.TextProvider
	log      *logrus.Entry
}

func NewChatService(repo repository.Repository, p provider.TextProvider, log *logrus.Entry) *ChatService {
	return &ChatService{repo: repo, provider: p, log: log}
}

func (s *ChatService) Reply(ctx context.Context, restaurantID uint, req types.ChatRequest) (*types.ChatResponse, error) {
	if err := validation.Validate(req); err != nil {
		return nil, err
	}

	restaurant, err := s.repo.GetRestaurantByID(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if restaurant == nil {
		return nil, errRestaurantNotFound
	}
	menus, err := s.repo.ListMenusByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	history := req.History
	if len(history) > chatHistoryTurns {
		history = history[len(history)-chatHistoryTurns:]
	}
	messages := make([]provider.Message, 0, len(history)+1)
	for _, turn := range history {
		messages = append(messages, provider.Message{Role: provider.Role(turn.Role), Content: turn.Content})
	}
	messages = append(messages, provider.Message{Role: provider.RoleUser, Content: req.Message})

	reply, err := s.provider.Complete(ctx, provider.Request{
		System:    chatSystemPrompt(*restaurant, menus),
		Messages:  messages,
		MaxTokens: chatMaxTokens,
	})
	if err != nil {
		s.log.WithError(err).WithField("restaurant_id", restaurantID).Warn("chat completion failed")
		return nil, err
	}
	return &types.ChatResponse{Reply: strings.TrimSpace(reply)}, nil
}

func chatSystemPrompt(r models.Restaurant, menus []models.MenuWithItems) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a friendly menu assistant for %q", r.Name)
	if r.CuisineType != nil && *r.CuisineType != "" {
		fmt.Fprintf(&b, ", a %s restaurant", *r.CuisineType)
	}
	if r.Address != nil && *r.Address != "" {
		fmt.Fprintf(&b, " located at %s", *r.Address)
	}
	b.WriteString(".\n")
	if r.Description != nil && *r.Description != "" {
		fmt.Fprintf(&b, "About the restaurant: %s\n", *r.Description)
	}

	b.WriteString("\nCurrent menu:\n")
	if menuText := policy.ChatContext(menus); menuText != "" {
		b.WriteString(menuText)
	} else {
		b.WriteString("(no dishes are currently available)")
	}
	b.WriteString("\n\n")
	b.WriteString(chatGuidelines)
	return b.String()
}
