package telegram

import (
	"fmt"

	"github.com/ykvlv/lesson-reminder/internal/domain"
)

// Startup confirmation texts; %[1]s is the environment name, %[2]s the schedule summary.
const (
	startupDirectFmt = "✅ Bot activated on %[1]s! Reminder scheduled for %[2]s."
	startupGroupFmt  = "✅ Group reminder bot active on %[1]s! Messages scheduled for %[2]s."
)

// StartupText builds the confirmation sent to a recipient when the process starts.
func StartupText(kind domain.RecipientKind, envName, schedule string) string {
	format := startupDirectFmt
	if kind == domain.RecipientGroup {
		format = startupGroupFmt
	}
	return fmt.Sprintf(format, envName, schedule)
}
