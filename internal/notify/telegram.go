// Package notify delivers reports to chat channels.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/hr-predictor/internal/datasource"
)

// MaxMessageLength is the Telegram limit for one message, in characters
const MaxMessageLength = 4096

// DefaultTelegramAPIURL is the public Bot API endpoint
const DefaultTelegramAPIURL = "https://api.telegram.org"

// TelegramSender posts reports through the Telegram Bot API
type TelegramSender struct {
	httpClient *datasource.RateLimitedHTTPClient
	apiURL     string
	botToken   string
	chatID     string
	logger     *logrus.Entry
}

// TelegramConfig configures a TelegramSender
type TelegramConfig struct {
	APIURL   string
	BotToken string
	ChatID   string
}

type sendMessageRequest struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// NewTelegramSender creates a sender
func NewTelegramSender(httpClient *datasource.RateLimitedHTTPClient, cfg TelegramConfig, logger *logrus.Logger) *TelegramSender {
	apiURL := strings.TrimRight(cfg.APIURL, "/")
	if apiURL == "" {
		apiURL = DefaultTelegramAPIURL
	}
	return &TelegramSender{
		httpClient: httpClient,
		apiURL:     apiURL,
		botToken:   cfg.BotToken,
		chatID:     cfg.ChatID,
		logger:     logger.WithField("component", datasource.SourceTelegram),
	}
}

// Name returns the channel name
func (s *TelegramSender) Name() string {
	return datasource.SourceTelegram
}

// Send delivers text, split into as many messages as the length limit needs.
// It stops at the first part that fails and returns the number of parts sent.
func (s *TelegramSender) Send(ctx context.Context, text string) (int, error) {
	if s.botToken == "" || s.chatID == "" {
		return 0, datasource.NewDataSourceError(datasource.SourceTelegram, datasource.ErrCodeAuthenticationFailed, "bot token and chat id are required", nil)
	}

	parts := Split(text, MaxMessageLength)
	for i, part := range parts {
		if err := s.sendPart(ctx, part); err != nil {
			return i, fmt.Errorf("part %d of %d: %w", i+1, len(parts), err)
		}
		s.logger.WithField("part", i+1).WithField("parts", len(parts)).Debug("Sent message part")
	}
	return len(parts), nil
}

func (s *TelegramSender) sendPart(ctx context.Context, text string) error {
	body, err := json.Marshal(sendMessageRequest{ChatID: s.chatID, Text: text, DisableWebPagePreview: true})
	if err != nil {
		return datasource.NewDataSourceError(datasource.SourceTelegram, datasource.ErrCodeInvalidData, "failed to encode message", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", s.apiURL, s.botToken)
	resp, err := s.httpClient.Post(ctx, url, "application/json", bytes.NewReader(body))
	if err != nil {
		return datasource.NewDataSourceError(datasource.SourceTelegram, datasource.ErrCodeNetworkError, "request failed", s.redact(err))
	}
	defer resp.Body.Close()

	if err := datasource.CheckStatus(datasource.SourceTelegram, resp); err != nil {
		return err
	}

	var out sendMessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return datasource.NewDataSourceError(datasource.SourceTelegram, datasource.ErrCodeInvalidData, "failed to parse response", err)
	}
	if !out.OK {
		return datasource.NewDataSourceError(datasource.SourceTelegram, datasource.ErrCodeUnknown, out.Description, nil)
	}
	return nil
}

// redact strips the bot token, which is part of every request URL
func (s *TelegramSender) redact(err error) error {
	return errors.New(strings.ReplaceAll(err.Error(), s.botToken, "<redacted>"))
}

// Split breaks text into parts of at most limit characters, preferring to cut
// after a newline. Lines longer than the limit are cut mid-line.
func Split(text string, limit int) []string {
	if limit <= 0 {
		return []string{text}
	}

	var parts []string
	runes := []rune(text)
	for len(runes) > limit {
		cut := limit
		for i := limit; i > 0; i-- {
			if runes[i-1] == '\n' {
				cut = i
				break
			}
		}
		parts = append(parts, string(runes[:cut]))
		runes = runes[cut:]
	}
	if len(runes) > 0 || len(parts) == 0 {
		parts = append(parts, string(runes))
	}
	return parts
}
