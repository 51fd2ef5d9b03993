// Package notify sends desktop notifications when a session has been cut
package notify

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/gen2brain/beeep"

	"github.com/ayoisaiah/setsplit/internal/cut"
)

// Notifier reports finished cutting runs on the desktop.
type Notifier struct {
	send    func(title, message, icon string) error
	logger  *slog.Logger
	icon    string
	enabled bool
}

// New returns a Notifier. A disabled notifier does nothing. The icon is
// looked up under the application's data directory.
func New(enabled bool, appDir string, logger *slog.Logger) *Notifier {
	// empty if the icon is not installed
	icon, _ := xdg.SearchDataFile(filepath.Join(appDir, "icon.png"))

	return &Notifier{
		send: func(title, message, icon string) error {
			return beeep.Notify(title, message, icon)
		},
		logger:  logger,
		icon:    icon,
		enabled: enabled,
	}
}

// SessionCut summarises rep in a notification.
func (n *Notifier) SessionCut(rep *cut.Report) {
	if !n.enabled || rep == nil {
		return
	}

	title, msg := message(rep)

	err := n.send(title, msg, n.icon)
	if err != nil {
		n.logger.Warn("unable to display notification", slog.Any("error", err))
	}
}

func message(rep *cut.Report) (title, msg string) {
	failed := len(rep.Failed())

	if failed == 0 {
		return rep.Session + " is ready",
			fmt.Sprintf("%d tracks were cut", rep.Succeeded())
	}

	return rep.Session + " finished with errors",
		fmt.Sprintf("%d tracks were cut, %d failed", rep.Succeeded(), failed)
}
