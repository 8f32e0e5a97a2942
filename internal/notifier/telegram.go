package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/phuslu/log"

	"StockPortfolio/internal/display"
	"StockPortfolio/internal/model"
)

const defaultAPIBase = "https://api.telegram.org"

// TelegramNotifier sends messages via the Telegram Bot API.
type TelegramNotifier struct {
	BotToken   string
	ChatID     string
	Client     *http.Client
	APIBase    string
	MaxRetries int
	Formatter  *display.Formatter
	// PollTimeout is the getUpdates long-poll timeout in seconds.
	PollTimeout int
	// PollRetry is the pause after a failed getUpdates call.
	PollRetry time.Duration

	mu          sync.Mutex
	lastSummary string
	failing     bool
}

// NewTelegramNotifier creates a notifier with optional proxy support.
func NewTelegramNotifier(botToken, chatID, proxyURL string, f *display.Formatter) *TelegramNotifier {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &TelegramNotifier{
		BotToken: botToken,
		ChatID:   chatID,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		APIBase:     defaultAPIBase,
		MaxRetries:  3,
		Formatter:   f,
		PollTimeout: 30,
		PollRetry:   5 * time.Second,
	}
}

// Present sends the portfolio summary when it changed since the last message,
// and a failure alert once per run of consecutive failures.
func (t *TelegramNotifier) Present(ctx context.Context, out model.Outcome) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch o := out.(type) {
	case *model.FetchSuccess:
		t.failing = false
		text := FormatSummary(t.Formatter.Build(o.Snapshot, o.Aliases), len(o.Snapshot.Stocks))
		if text == t.lastSummary {
			return
		}
		if err := t.SendWithRetry(ctx, text, t.MaxRetries); err != nil {
			log.Error().Err(err).Str("request", o.RequestID).Msg("send portfolio summary")
			return
		}
		t.lastSummary = text
	case *model.FetchFailure:
		if t.failing {
			return
		}
		t.failing = true
		if err := t.SendWithRetry(ctx, FormatFailure(o.Message), t.MaxRetries); err != nil {
			log.Error().Err(err).Str("request", o.RequestID).Msg("send failure alert")
		}
	}
}

// Send sends a message to the configured chat.
func (t *TelegramNotifier) Send(ctx context.Context, text string) error {
	apiURL := fmt.Sprintf("%s/bot%s/sendMessage", t.APIBase, t.BotToken)
	payload := map[string]string{
		"chat_id":    t.ChatID,
		"text":       text,
		"parse_mode": "HTML",
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := t.Client.Do(req)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("telegram API error: status %d, body: %s", resp.StatusCode, string(respBody))
	}
	return nil
}

// SendWithRetry sends a message with exponential backoff retry.
func (t *TelegramNotifier) SendWithRetry(ctx context.Context, text string, maxRetries int) error {
	var lastErr error
	for i := 0; i <= maxRetries; i++ {
		if err := t.Send(ctx, text); err != nil {
			lastErr = err
			if i == maxRetries {
				break
			}
			backoff := time.Duration(1<<uint(i)) * time.Second
			log.Warn().Err(err).Int("attempt", i+1).Int("of", maxRetries+1).Dur("backoff", backoff).Msg("telegram send failed")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
				continue
			}
		}
		return nil
	}
	return fmt.Errorf("all %d retries exhausted: %w", maxRetries+1, lastErr)
}
