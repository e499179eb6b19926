package mail

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/rabbitmq/amqp091-go"

	"github.com/GregMSThompson/finance-dashboard/internal/dto"
	"github.com/GregMSThompson/finance-dashboard/internal/errs"
	"github.com/GregMSThompson/finance-dashboard/pkg/helpers"
	"github.com/GregMSThompson/finance-dashboard/pkg/logger"
)

type fakeChannel struct {
	exchange, key string
	msg           amqp091.Publishing
	err           error
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error {
	f.exchange = exchange
	f.key = key
	f.msg = msg
	return f.err
}

func (f *fakeChannel) Close() error { return nil }

func TestSendPublishesPersistentJSON(t *testing.T) {
	ch := &fakeChannel{}
	p := &Publisher{channel: ch, exchangeName: "notifications", queueName: "email"}

	if err := p.Send(helpers.TestCtx(), "ana@example.com", "Budget alert", "<p>Food at 90%</p>"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ch.exchange != "notifications" || ch.key != "email" {
		t.Fatalf("routing mismatch: %s/%s", ch.exchange, ch.key)
	}
	if ch.msg.DeliveryMode != amqp091.Persistent || ch.msg.ContentType != "application/json" {
		t.Fatalf("publishing mismatch: %+v", ch.msg)
	}
	var body dto.EmailMessage
	if err := json.Unmarshal(ch.msg.Body, &body); err != nil {
		t.Fatalf("body is not json: %v", err)
	}
	if body.To != "ana@example.com" || body.Subject != "Budget alert" {
		t.Fatalf("body mismatch: %+v", body)
	}
}

func TestSendWrapsPublishFailure(t *testing.T) {
	p := &Publisher{channel: &fakeChannel{err: errors.New("channel closed")}}

	err := p.Send(helpers.TestCtx(), "a@b.c", "s", "h")

	var extErr *errs.ExternalServiceError
	if !errors.As(err, &extErr) || extErr.Service != "mail" {
		t.Fatalf("expected mail ExternalServiceError, got %v", err)
	}
}

func TestLogSenderReportsNotSent(t *testing.T) {
	s := LogSender{Log: slog.New(logger.NewTestHandler(slog.LevelInfo))}
	if err := s.Send(context.Background(), "a@b.c", "s", "h"); err == nil {
		t.Fatalf("expected LogSender to report the email as not sent")
	}
}
