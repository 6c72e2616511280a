package alarm

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"sync"
)

type Notification struct {
	Title string
	Body  string
}

type Notifier interface {
	Send(Notification) error
}

type NoopNotifier struct{}

func (NoopNotifier) Send(Notification) error { return nil }

// ExecNotifier shells out to notify-send on Linux and osascript on macOS.
type ExecNotifier struct {
	GOOS     string
	LookPath func(string) (string, error)
	Run      func(name string, args ...string) error
}

func NewExecNotifier() ExecNotifier {
	return ExecNotifier{
		GOOS:     runtime.GOOS,
		LookPath: exec.LookPath,
		Run:      startDetached,
	}
}

// startDetached starts the command and reaps it in the background so the
// caller never waits on the notifier process.
func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

func (n ExecNotifier) binary() string {
	switch n.GOOS {
	case "linux":
		return "notify-send"
	case "darwin":
		return "osascript"
	default:
		return ""
	}
}

// Available reports whether the platform notifier binary is installed.
func (n ExecNotifier) Available() bool {
	bin := n.binary()
	if bin == "" || n.LookPath == nil {
		return false
	}
	_, err := n.LookPath(bin)
	return err == nil
}

func (n ExecNotifier) Send(msg Notification) error {
	switch bin := n.binary(); bin {
	case "notify-send":
		return n.Run(bin, msg.Title, msg.Body)
	case "osascript":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(msg.Body), escapeAppleScript(msg.Title))
		return n.Run(bin, "-e", script)
	default:
		return nil
	}
}

func escapeAppleScript(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

type Permission string

const (
	PermissionDefault Permission = "default"
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
)

// Notifications gates a Notifier behind a permission state that is decided
// once and then kept for the life of the process.
type Notifications struct {
	mu         sync.Mutex
	notifier   Notifier
	enabled    bool
	permission Permission
}

func NewNotifications(notifier Notifier, enabled bool) *Notifications {
	if notifier == nil {
		notifier = NoopNotifier{}
	}
	return &Notifications{notifier: notifier, enabled: enabled, permission: PermissionDefault}
}

// RequestPermission resolves a default permission to granted or denied. A
// decided permission is returned unchanged.
func (n *Notifications) RequestPermission() Permission {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.permission != PermissionDefault {
		return n.permission
	}
	n.permission = PermissionGranted
	if !n.enabled {
		n.permission = PermissionDenied
	} else if a, ok := n.notifier.(interface{ Available() bool }); ok && !a.Available() {
		n.permission = PermissionDenied
	}
	return n.permission
}

func (n *Notifications) Permission() Permission {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.permission
}

// Notify sends msg when permission is granted. It reports whether a
// notification was attempted.
func (n *Notifications) Notify(msg Notification) (bool, error) {
	if n.Permission() != PermissionGranted {
		return false, nil
	}
	if err := n.notifier.Send(msg); err != nil {
		return true, fmt.Errorf("alarm: send notification: %w", err)
	}
	return true, nil
}
