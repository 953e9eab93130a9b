// FILE: internal/service/consumer_service.go
package service

import (
	"context"
	"encoding/json"

	"funeral-docs-be/internal/pkg/logger"
	"funeral-docs-be/internal/pkg/mailer"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const MailTopic = "mail.password_reset"

type passwordResetMail struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Token    string `json:"token"`
}

// IMailQueue hands mails to the background consumer so requests never wait
// on SMTP.
type IMailQueue interface {
	QueuePasswordReset(ctx context.Context, email, fullName, token string) error
}

type mailQueue struct {
	pubSub *gochannel.GoChannel
}

func NewMailQueue(pubSub *gochannel.GoChannel) IMailQueue {
	return &mailQueue{pubSub: pubSub}
}

func (q *mailQueue) QueuePasswordReset(_ context.Context, email, fullName, token string) error {
	payload, err := json.Marshal(passwordResetMail{Email: email, FullName: fullName, Token: token})
	if err != nil {
		return err
	}
	return q.pubSub.Publish(MailTopic, message.NewMessage(watermill.NewUUID(), payload))
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	mailer    mailer.IEmailService
	logger    logger.ILogger
}

func NewConsumerService(pubSub *gochannel.GoChannel, topicName string, mailer mailer.IEmailService, log logger.ILogger) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		mailer:    mailer,
		logger:    log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

// processMessage always acks. Mail failures are logged and dropped; there
// is no retry.
func (cs *consumerService) processMessage(msg *message.Message) {
	defer msg.Ack()

	var payload passwordResetMail
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("MAIL_QUEUE", "Invalid mail message", map[string]interface{}{"error": err.Error()})
		return
	}

	if err := cs.mailer.SendPasswordReset(payload.Email, payload.FullName, payload.Token); err != nil {
		cs.logger.Warn("MAIL_QUEUE", "Password reset mail not delivered", map[string]interface{}{
			"to":    payload.Email,
			"error": err.Error(),
		})
	}
}
