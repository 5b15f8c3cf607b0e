package ui

import (
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/gen2brain/beeep"

	"github.com/webcpu/ClaudeCodeUsage-sub006/internal/i18n"
	"github.com/webcpu/ClaudeCodeUsage-sub006/internal/monitor"
	"github.com/webcpu/ClaudeCodeUsage-sub006/internal/theme"
)

type Notification struct {
	Message   string
	CreatedAt time.Time
}

// NotificationManager shows transient in-app banners and, when enabled,
// forwards quota warnings to the desktop notification service.
type NotificationManager struct {
	enabled bool
	bell    bool

	active *Notification

	// warnedBlock remembers which block already produced a quota warning
	// so one session never alerts twice.
	warnedBlock string
}

func NewNotificationManager(enabled, bell bool) *NotificationManager {
	return &NotificationManager{enabled: enabled, bell: bell}
}

// SetMessage shows a transient informational notification.
func (nm *NotificationManager) SetMessage(msg string) {
	nm.active = &Notification{
		Message:   msg,
		CreatedAt: time.Now(),
	}
}

// Active returns the current notification if it has not expired.
func (nm *NotificationManager) Active() *Notification {
	if nm.active == nil {
		return nil
	}
	if time.Since(nm.active.CreatedAt) > 5*time.Second {
		return nil
	}
	return nm.active
}

// Expire clears expired notifications. Call from Update(), not View().
func (nm *NotificationManager) Expire() {
	if nm.active != nil && time.Since(nm.active.CreatedAt) > 5*time.Second {
		nm.active = nil
	}
}

// CheckTokenLimit raises a warning when the active block's projected
// usage crosses the effective token limit.
func (nm *NotificationManager) CheckTokenLimit(snap *monitor.Snapshot, limit int) {
	if !nm.enabled || limit <= 0 {
		return
	}
	active := snap.ActiveBlock()
	if active == nil || active.Projection.Tokens <= limit {
		return
	}
	if nm.warnedBlock == active.ID {
		return
	}
	nm.warnedBlock = active.ID

	msg := i18n.T("limit_exceeded")
	nm.SetMessage(msg)
	_ = beeep.Notify("Claude Usage", msg, "")
}

func (nm *NotificationManager) RenderBanner(width int) string {
	n := nm.Active()
	if n == nil {
		return ""
	}

	style := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Padding(0, 1).
		Foreground(theme.ColorMauve)

	bellChar := ""
	if nm.bell {
		bellChar = "\a"
	}

	return bellChar + style.Render(n.Message)
}
