package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTelegramNoopWhenUnconfigured(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	svc := NewTelegramService("", "", nil).WithAPIBase(srv.URL)
	require.NoError(t, svc.NotifyNewAppointment(AppointmentNotification{PatientName: "A"}))
	require.NoError(t, svc.NotifyContactMessage(ContactNotification{Name: "B"}))
	assert.False(t, called)
}

func TestNotifyNewAppointmentEscapesUserText(t *testing.T) {
	var got telegramMessage
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	svc := NewTelegramService("token", "42", nil).WithAPIBase(srv.URL)
	err := svc.NotifyNewAppointment(AppointmentNotification{
		PatientName: "<script>",
		Phone:       "+91 90000 00000",
	})
	require.NoError(t, err)

	assert.Equal(t, "/bottoken/sendMessage", path)
	assert.Equal(t, "42", got.ChatID)
	assert.Equal(t, "HTML", got.ParseMode)
	assert.Contains(t, got.Text, "&lt;script&gt;")
	assert.Contains(t, got.Text, "+91 90000 00000")
	assert.NotContains(t, got.Text, "Email")
}

func TestSendMessageReportsUnexpectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	svc := NewTelegramService("token", "42", nil).WithAPIBase(srv.URL)
	assert.Error(t, svc.SendToAdmin("hello"))
}
