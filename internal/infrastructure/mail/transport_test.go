package mail

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/ec5/ec5-api/internal/config"
	"github.com/ec5/ec5-api/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewTransport_SelectsDriver(t *testing.T) {
	base := config.MailConfig{From: "noreply@example.com", MailgunDomain: "mg.example.com", MailgunAPIKey: "key"}

	cases := map[string]interface{}{
		config.MailDriverSMTP:    &smtpTransport{},
		config.MailDriverMailgun: &mailgunTransport{},
		config.MailDriverLog:     &logTransport{},
	}
	for driver, want := range cases {
		cfg := base
		cfg.Driver = driver
		tr, err := NewTransport(cfg, logger.Nop())
		require.NoError(t, err, driver)
		assert.IsType(t, want, tr, driver)
	}
}

func TestNewTransport_UnknownDriver(t *testing.T) {
	_, err := NewTransport(config.MailConfig{Driver: "fax"}, logger.Nop())
	assert.ErrorContains(t, err, "unknown mail driver")
}

func TestLogTransport_WritesInfo(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	tr, err := NewTransport(config.MailConfig{Driver: config.MailDriverLog, From: "noreply@example.com"},
		logger.New(zap.New(core), nil))
	require.NoError(t, err)

	require.NoError(t, tr.Send(context.Background(), Message{To: []string{"a@example.com"}, Subject: "Hi"}))

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "Hi", logs.All()[0].ContextMap()["subject"])
}

func TestBuildMIME(t *testing.T) {
	raw := string(buildMIME("noreply@example.com", Message{
		To:      []string{"a@example.com", "b@example.com"},
		Subject: "Project imported",
		Text:    "plain",
		HTML:    "<p>html</p>",
	}))

	assert.Contains(t, raw, "To: a@example.com, b@example.com\r\n")
	assert.Contains(t, raw, "Content-Type: text/html; charset=UTF-8\r\n\r\n<p>html</p>")
	assert.NotContains(t, raw, "plain")
}

func TestSMTPTransport_NoRecipients(t *testing.T) {
	err := newSMTPTransport(config.MailConfig{}).Send(context.Background(), Message{Subject: "x"})
	assert.ErrorContains(t, err, "no recipients")
}

func TestMailgunTransport_PostsMessage(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.True(t, strings.HasSuffix(r.URL.Path, "/mg.example.com/messages"), r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"Queued. Thank you.","id":"<1@mg.example.com>"}`))
	}))
	defer srv.Close()

	tr := newMailgunTransport(config.MailConfig{
		From:           "noreply@example.com",
		MailgunDomain:  "mg.example.com",
		MailgunAPIKey:  "key",
		MailgunAPIBase: srv.URL + "/v3",
	})

	err := tr.Send(context.Background(), Message{To: []string{"a@example.com"}, Subject: "Hi", Text: "hello"})
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}
