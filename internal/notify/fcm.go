package notify

import (
	"context"
	"fmt"

	"firebase.google.com/go/messaging"

	"malaria-intake/internal/models"
	"malaria-intake/pkg/logger"
)

type messageSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// FCMNotifier publica num tópico do Firebase Cloud Messaging (o painel assina o tópico)
type FCMNotifier struct {
	client messageSender
	topic  string
}

func NewFCMNotifier(client *messaging.Client, topic string) *FCMNotifier {
	return &FCMNotifier{client: client, topic: topic}
}

func (n *FCMNotifier) NotifySubmission(ctx context.Context, sub *models.Submission) error {
	msgID, err := n.client.Send(ctx, buildFCMMessage(n.topic, sub))
	if err != nil {
		return fmt.Errorf("fcm send to topic %s: %w", n.topic, err)
	}

	logger.WithField("message_id", msgID).WithField("uid", sub.UID).Debug("FCM notification sent")
	return nil
}

// Sem dados pessoais no push: só uid e tipo de malária
func buildFCMMessage(topic string, sub *models.Submission) *messaging.Message {
	return &messaging.Message{
		Topic: topic,
		Notification: &messaging.Notification{
			Title: "Novo cadastro de malária",
			Body:  fmt.Sprintf("Cadastro %s recebido", sub.UID),
		},
		Data: map[string]string{
			"uid":         sub.UID,
			"tipoMalaria": sub.TipoMalaria,
			"type":        "submission_created",
		},
	}
}
