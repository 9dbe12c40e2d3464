package notify

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"mime"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/sunvista/solar-site/internal/config"
	"github.com/sunvista/solar-site/internal/roi"
	"github.com/sunvista/solar-site/internal/types"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var testSite = config.Site{
	Name:          "SunVista Solar Design",
	BaseURL:       "https://sunvista.example/",
	SalesInbox:    "sales@sunvista.example",
	LeadMagnetURL: "https://sunvista.example/guide.pdf",
}

func TestLogNotifier_Logs(t *testing.T) {
	var buf bytes.Buffer
	n := LogNotifier{Logger: slog.New(slog.NewJSONHandler(&buf, nil))}

	err := n.Send(context.Background(), Message{To: "a@example.com", Subject: "hello", Body: "body"})
	require.NoError(t, err)
	require.Contains(t, buf.String(), `"to":"a@example.com"`)
	require.Contains(t, buf.String(), `"subject":"hello"`)
}

func TestNew_PicksImplementation(t *testing.T) {
	_, isLog := New(config.Notify{}, nil).(LogNotifier)
	require.True(t, isLog)

	_, isSMTP := New(config.Notify{SMTPHost: "smtp.example", SMTPPort: 587, From: "x@example.com"}, nil).(*SMTPNotifier)
	require.True(t, isSMTP)
}

func TestSMTPNotifier_Send(t *testing.T) {
	n := NewSMTPNotifier(config.Notify{From: "no-reply@sunvista.example", SMTPHost: "smtp.example", SMTPPort: 2525})
	n.now = func() time.Time { return time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC) }

	var gotAddr string
	var gotTo []string
	var gotMsg string
	n.sendMail = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr = addr
		gotTo = to
		gotMsg = string(msg)
		return nil
	}

	err := n.Send(context.Background(), Message{To: "a@example.com", ReplyTo: "b@example.com", Subject: "Hi", Body: "one\ntwo"})
	require.NoError(t, err)
	require.Equal(t, "smtp.example:2525", gotAddr)
	require.Equal(t, []string{"a@example.com"}, gotTo)
	require.Contains(t, gotMsg, "Reply-To: b@example.com\r\n")
	require.Contains(t, gotMsg, "Subject: Hi\r\n")
	require.True(t, strings.HasSuffix(gotMsg, "\r\n\r\none\r\ntwo"))
}

func TestSMTPNotifier_EncodesNonASCIISubject(t *testing.T) {
	n := NewSMTPNotifier(config.Notify{From: "x@example.com", SMTPHost: "smtp.example", SMTPPort: 25})
	var gotMsg string
	n.sendMail = func(_ string, _ smtp.Auth, _ string, _ []string, msg []byte) error {
		gotMsg = string(msg)
		return nil
	}

	err := n.Send(context.Background(), Message{To: "a@example.com", Subject: "New contact from José Núñez", Body: "hola"})
	require.NoError(t, err)
	require.Contains(t, gotMsg, "Subject: =?utf-8?q?")
	require.NotContains(t, gotMsg, "José")

	header, _, _ := strings.Cut(gotMsg, "\r\n\r\n")
	for _, line := range strings.Split(header, "\r\n") {
		if subject, ok := strings.CutPrefix(line, "Subject: "); ok {
			decoded, err := new(mime.WordDecoder).DecodeHeader(subject)
			require.NoError(t, err)
			require.Equal(t, "New contact from José Núñez", decoded)
		}
	}
}

func TestSMTPNotifier_RejectsHeaderInjection(t *testing.T) {
	n := NewSMTPNotifier(config.Notify{From: "x@example.com", SMTPHost: "smtp.example", SMTPPort: 25})
	n.sendMail = func(string, smtp.Auth, string, []string, []byte) error {
		t.Fatal("should not send")
		return nil
	}

	err := n.Send(context.Background(), Message{To: "a@example.com", Subject: "Hi\r\nBcc: evil@example.com"})
	require.Error(t, err)
}

func TestSMTPNotifier_WrapsError(t *testing.T) {
	n := NewSMTPNotifier(config.Notify{From: "x@example.com", SMTPHost: "smtp.example", SMTPPort: 25})
	boom := errors.New("connection refused")
	n.sendMail = func(string, smtp.Auth, string, []string, []byte) error { return boom }

	err := n.Send(context.Background(), Message{To: "a@example.com", Subject: "Hi"})
	require.ErrorIs(t, err, boom)
}

func TestROIReport(t *testing.T) {
	est, err := roi.EstimateSavings(150, "85001")
	require.NoError(t, err)

	msg := ROIReport(testSite, types.ROIReportRequest{Name: "Ada", Email: "ada@example.com"}, est)
	require.Equal(t, "ada@example.com", msg.To)
	require.Equal(t, testSite.SalesInbox, msg.ReplyTo)
	require.Contains(t, msg.Body, "Hi Ada,")
	require.Contains(t, msg.Body, "Annual savings: $1,800.00")
	require.Contains(t, msg.Body, "Payback period: 7.7 years")
	require.Contains(t, msg.Body, "https://sunvista.example/design-request")
}

func TestContactNotification_SkipsEmptyFields(t *testing.T) {
	msg := ContactNotification(testSite, types.ContactRequest{Name: "Ada", Email: "ada@example.com", Message: "Need panels"})
	require.Equal(t, testSite.SalesInbox, msg.To)
	require.Equal(t, "ada@example.com", msg.ReplyTo)
	require.NotContains(t, msg.Body, "Phone:")
	require.Contains(t, msg.Body, "Need panels")
}

func TestWelcome_LeadMagnet(t *testing.T) {
	msg := Welcome(testSite, types.SubscribeRequest{Email: "a@example.com", LeadMagnet: "buyers-guide"})
	require.Contains(t, msg.Body, testSite.LeadMagnetURL)

	msg = Welcome(testSite, types.SubscribeRequest{Email: "a@example.com"})
	require.NotContains(t, msg.Body, testSite.LeadMagnetURL)
}

func TestMoney(t *testing.T) {
	require.Equal(t, "$0.00", money(0))
	require.Equal(t, "$999.50", money(999.5))
	require.Equal(t, "$1,800.00", money(1800))
	require.Equal(t, "$1,234,567.89", money(1234567.891))
	require.Equal(t, "-$12,000.00", money(-12000))
}
