package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultTelegramAPI = "https://api.telegram.org"

// TelegramService handles sending notifications to Telegram.
type TelegramService struct {
	botToken    string
	adminChatID string
	apiBase     string
	client      *http.Client
	log         *zap.Logger
}

// NewTelegramService creates a new TelegramService.
func NewTelegramService(botToken, adminChatID string, log *zap.Logger) *TelegramService {
	if log == nil {
		log = zap.NewNop()
	}
	return &TelegramService{
		botToken:    botToken,
		adminChatID: adminChatID,
		apiBase:     defaultTelegramAPI,
		client:      &http.Client{Timeout: 10 * time.Second},
		log:         log,
	}
}

// WithAPIBase points the service at another Bot API host.
func (s *TelegramService) WithAPIBase(base string) *TelegramService {
	s.apiBase = strings.TrimRight(base, "/")
	return s
}

type telegramMessage struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// SendMessage sends a message to specified chat.
func (s *TelegramService) SendMessage(chatID, text string) error {
	if s.botToken == "" {
		s.log.Debug("telegram bot token not configured")
		return nil
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", s.apiBase, s.botToken)

	msg := telegramMessage{
		ChatID:    chatID,
		Text:      text,
		ParseMode: "HTML",
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	resp, err := s.client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		s.log.Warn("telegram send failed", zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.log.Warn("telegram unexpected status", zap.Int("status", resp.StatusCode))
		return fmt.Errorf("telegram returned status %d", resp.StatusCode)
	}

	return nil
}

// SendToAdmin sends a message to the admin chat.
func (s *TelegramService) SendToAdmin(text string) error {
	if s.adminChatID == "" {
		s.log.Debug("telegram admin chat not configured")
		return nil
	}
	return s.SendMessage(s.adminChatID, text)
}

// AppointmentNotification contains appointment request data for the admin chat.
type AppointmentNotification struct {
	PatientName   string
	Phone         string
	Email         string
	ServiceName   string
	DoctorName    string
	PreferredDate string
	PreferredTime string
	Message       string
}

// NotifyNewAppointment tells the admins about a request from the public form.
func (s *TelegramService) NotifyNewAppointment(n AppointmentNotification) error {
	if s.adminChatID == "" {
		return nil
	}

	var b strings.Builder
	b.WriteString("<b>🩺 NEW APPOINTMENT REQUEST</b>\n")
	writeLine(&b, "👤 Patient", n.PatientName)
	writeLine(&b, "📞 Phone", n.Phone)
	writeLine(&b, "✉️ Email", n.Email)
	writeLine(&b, "🔬 Service", n.ServiceName)
	writeLine(&b, "👨‍⚕️ Doctor", n.DoctorName)
	writeLine(&b, "📅 Date", strings.TrimSpace(n.PreferredDate+" "+n.PreferredTime))
	writeLine(&b, "📝 Message", n.Message)
	b.WriteString("━━━━━━━━━━━━━━━━━━")

	return s.SendToAdmin(b.String())
}

// ContactNotification contains a contact form submission.
type ContactNotification struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

// NotifyContactMessage forwards a contact form submission to the admins.
func (s *TelegramService) NotifyContactMessage(n ContactNotification) error {
	if s.adminChatID == "" {
		return nil
	}

	var b strings.Builder
	b.WriteString("<b>📨 NEW CONTACT MESSAGE</b>\n")
	writeLine(&b, "👤 Name", n.Name)
	writeLine(&b, "✉️ Email", n.Email)
	writeLine(&b, "📞 Phone", n.Phone)
	writeLine(&b, "📌 Subject", n.Subject)
	writeLine(&b, "📝 Message", n.Message)
	b.WriteString("━━━━━━━━━━━━━━━━━━")

	return s.SendToAdmin(b.String())
}

// writeLine skips empty values; user text is escaped for HTML parse mode.
func writeLine(b *strings.Builder, label, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	fmt.Fprintf(b, "<b>%s:</b> %s\n", label, html.EscapeString(value))
}
