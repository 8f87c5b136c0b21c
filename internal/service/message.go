package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Skotchmaster/cellar_society/internal/domain"
	"github.com/Skotchmaster/cellar_society/internal/models"
	"github.com/Skotchmaster/cellar_society/pkg/events"
)

type MessageService struct {
	Deps
}

func (s *MessageService) Post(ctx context.Context, customerID uint, sender domain.SenderRole, body string) (*models.Message, error) {
	if !sender.Valid() {
		return nil, fmt.Errorf("%w: unknown sender %q", domain.ErrValidation, sender)
	}
	text, err := domain.NormalizeMessageBody(body)
	if err != nil {
		return nil, err
	}

	m := &models.Message{CustomerID: customerID, SenderType: sender, Body: text}
	if err := s.Repo.CreateMessage(ctx, m); err != nil {
		return nil, err
	}

	s.Metrics.MessagePosted(string(sender))
	s.publish(ctx, events.TopicMessages, strconv.FormatUint(uint64(customerID), 10), events.MessageEvent{
		Type:       events.MessagePosted,
		MessageID:  m.ID,
		CustomerID: customerID,
		Sender:     string(sender),
		Timestamp:  s.now(),
	})
	return m, nil
}

// MarkThreadRead acknowledges everything the other party wrote in the thread.
func (s *MessageService) MarkThreadRead(ctx context.Context, customerID uint, viewer domain.SenderRole) (int64, error) {
	if !viewer.Valid() {
		return 0, fmt.Errorf("%w: unknown viewer %q", domain.ErrValidation, viewer)
	}
	return s.Repo.MarkRead(ctx, customerID, viewer.Other())
}

// UnreadCount is what forRole has not yet seen in the thread.
func (s *MessageService) UnreadCount(ctx context.Context, customerID uint, forRole domain.SenderRole) (int64, error) {
	if !forRole.Valid() {
		return 0, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, forRole)
	}
	return s.Repo.CountUnread(ctx, customerID, forRole.Other())
}

func (s *MessageService) Thread(ctx context.Context, customerID uint) ([]models.Message, error) {
	return s.Repo.Thread(ctx, customerID)
}

// OpenThread is a view of the thread by viewer: it acknowledges the other
// party's messages first, then lists the whole thread.
func (s *MessageService) OpenThread(ctx context.Context, customerID uint, viewer domain.SenderRole) ([]models.Message, error) {
	if _, err := s.MarkThreadRead(ctx, customerID, viewer); err != nil {
		return nil, err
	}
	return s.Repo.Thread(ctx, customerID)
}

func (s *MessageService) Conversations(ctx context.Context) ([]models.Conversation, error) {
	return s.Repo.Conversations(ctx)
}

func (s *MessageService) TotalUnreadForAdmin(ctx context.Context) (int64, error) {
	return s.Repo.CountUnreadAll(ctx, domain.SenderCustomer)
}
