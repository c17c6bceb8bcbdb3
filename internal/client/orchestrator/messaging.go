package orchestrator

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/teachreach/marketplace/internal/client/model"
)

// SendMessage sends a client message to the support recipient.
func (o *Orchestrator) SendMessage(ctx context.Context, text, attachment string) (model.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" && attachment == "" {
		return model.Message{}, o.invalid("message is empty")
	}
	cur, err := o.current()
	if err != nil {
		return model.Message{}, err
	}
	if cur.IsAdmin() {
		return model.Message{}, o.invalid("admin messages need an explicit recipient")
	}

	var sent model.Message
	err = o.write(ctx, func(ctx context.Context, cur model.Identity) error {
		rc, err := o.supportRecipient(ctx)
		if err != nil {
			return fmt.Errorf("resolve support recipient: %w", err)
		}
		sent, err = o.appendMessage(ctx, cur, rc.ID, text, attachment)
		return err
	})
	return sent, err
}

// AdminSendMessage sends an admin message to receiverID.
func (o *Orchestrator) AdminSendMessage(ctx context.Context, receiverID, text, attachment string) (model.Message, error) {
	if _, err := o.currentAdmin(); err != nil {
		return model.Message{}, err
	}
	text = strings.TrimSpace(text)
	if receiverID == "" {
		return model.Message{}, o.invalid("receiver is required")
	}
	if text == "" && attachment == "" {
		return model.Message{}, o.invalid("message is empty")
	}

	var sent model.Message
	err := o.write(ctx, func(ctx context.Context, cur model.Identity) error {
		var err error
		sent, err = o.appendMessage(ctx, cur, receiverID, text, attachment)
		return err
	})
	return sent, err
}

func (o *Orchestrator) appendMessage(ctx context.Context, from model.Identity, to, text, attachment string) (model.Message, error) {
	m := model.Message{
		ID:         uuid.NewString(),
		SenderID:   from.ID,
		SenderName: from.Name,
		ReceiverID: to,
		Text:       text,
		Attachment: attachment,
		Timestamp:  o.now(),
	}
	if err := o.state.AppendMessage(ctx, m); err != nil {
		return model.Message{}, err
	}
	return m, nil
}

// MarkAsRead marks the thread from senderID to the current identity as read
// and returns how many messages changed.
func (o *Orchestrator) MarkAsRead(ctx context.Context, senderID string) (int, error) {
	cur, err := o.current()
	if err != nil {
		return 0, err
	}
	return o.state.MarkRead(ctx, senderID, cur.ID)
}
