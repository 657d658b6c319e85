package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// DefaultAPIURL is the Telegram Bot API endpoint.
const DefaultAPIURL = "https://api.telegram.org"

// maxMessageLen is the Telegram limit for one text message.
const maxMessageLen = 4096

// truncateReserve leaves room for the ellipsis and closing tags.
const truncateReserve = 32

var htmlTag = regexp.MustCompile(`<(/?)([a-zA-Z]+)[^>]*>`)

// TelegramNotifier sends messages via the Telegram Bot API.
type TelegramNotifier struct {
	BotToken string
	ChatID   string
	BaseURL  string
	Client   *http.Client

	// retryUnit scales the backoff between attempts.
	retryUnit time.Duration
}

// NewTelegramNotifier creates a notifier with optional proxy support.
func NewTelegramNotifier(botToken, chatID, proxyURL string) *TelegramNotifier {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		} else {
			log.Printf("[WARN] ignoring invalid proxy %q: %v", proxyURL, err)
		}
	}
	return &TelegramNotifier{
		BotToken: botToken,
		ChatID:   chatID,
		BaseURL:  DefaultAPIURL,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		retryUnit: time.Second,
	}
}

func (t *TelegramNotifier) endpoint(method string) string {
	base := t.BaseURL
	if base == "" {
		base = DefaultAPIURL
	}
	return fmt.Sprintf("%s/bot%s/%s", base, t.BotToken, method)
}

// truncateHTML shortens text to at most limit runes without leaving a
// partial tag or entity, and closes any tags the cut left open.
func truncateHTML(text string, limit int) string {
	r := []rune(text)
	if len(r) <= limit {
		return text
	}
	cut := string(r[:limit-truncateReserve])
	if i := strings.LastIndexByte(cut, '<'); i > strings.LastIndexByte(cut, '>') {
		cut = cut[:i]
	}
	if i := strings.LastIndexByte(cut, '&'); i > strings.LastIndexByte(cut, ';') {
		cut = cut[:i]
	}

	var open []string
	for _, m := range htmlTag.FindAllStringSubmatch(cut, -1) {
		if m[1] == "/" {
			if n := len(open); n > 0 && open[n-1] == m[2] {
				open = open[:n-1]
			}
			continue
		}
		open = append(open, m[2])
	}

	var b strings.Builder
	b.WriteString(cut)
	b.WriteString("…")
	for i := len(open) - 1; i >= 0; i-- {
		b.WriteString("</" + open[i] + ">")
	}
	return b.String()
}

// Send sends a message to the configured chat. Messages over the Telegram
// limit are truncated on a tag boundary.
func (t *TelegramNotifier) Send(ctx context.Context, text string) error {
	text = truncateHTML(text, maxMessageLen)
	payload := map[string]string{
		"chat_id":    t.ChatID,
		"text":       text,
		"parse_mode": "HTML",
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint("sendMessage"), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.Client.Do(req)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("telegram API error: status %d, body: %s", resp.StatusCode, string(respBody))
	}
	return nil
}

// SendWithRetry sends a message with exponential backoff retry.
func (t *TelegramNotifier) SendWithRetry(ctx context.Context, text string, maxRetries int) error {
	unit := t.retryUnit
	if unit <= 0 {
		unit = time.Second
	}
	var lastErr error
	for i := 0; i <= maxRetries; i++ {
		err := t.Send(ctx, text)
		if err == nil {
			return nil
		}
		lastErr = err
		if i == maxRetries {
			break
		}
		backoff := time.Duration(1<<uint(i)) * unit
		log.Printf("[WARN] Telegram send failed (attempt %d/%d): %v, retrying in %v", i+1, maxRetries+1, err, backoff)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
	return fmt.Errorf("all %d retries exhausted: %w", maxRetries+1, lastErr)
}
