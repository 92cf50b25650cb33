package telegram

import "fmt"

const (
	msgWelcome = `👋 *Welcome to Kick-Bot!*

I can help you manage your group by removing inactive members.
Type /help to see available commands.`

	msgHelp = `*📚 Kick-Bot Help*

*Commands:*
• /start - Start the bot
• /help - Show this help message
• /removeinactive [time] - Remove inactive members

*Time format examples:*
• 30s - 30 seconds
• 10m - 10 minutes
• 6h - 6 hours
• 7d - 7 days

*Note:* The bot needs to be an admin with 'Ban Users' permission to work properly.`

	msgGroupOnly = "This command can only be used in groups."

	msgUsage = "Please specify a time period.\n" +
		"Example: `/removeinactive 7d` to remove members inactive for 7 days."

	msgBadWindow = "Invalid time format. Use format like:\n" +
		"• 30s (seconds)\n" +
		"• 10m (minutes)\n" +
		"• 6h (hours)\n" +
		"• 7d (days)"

	msgActorNotPermitted = "You need to be an admin with 'Ban Users' permission to use this command."
	msgBotNotPermitted   = "I need 'Ban Users' permission to remove inactive members."

	msgSearching  = "Searching for inactive members..."
	msgNoInactive = "No inactive members found."
	msgRemoving   = "Removing inactive members..."
	msgCancelled  = "Operation cancelled."

	alertNoPermission = "You don't have permission to do this."
	alertProposalGone = "This proposal is no longer active."
)

func confirmText(candidates int, window string) string {
	return fmt.Sprintf("Found %d members inactive for more than %s.\n\nDo you want to remove them?", candidates, window)
}

func summaryText(removed, skipped, failed int) string {
	text := "Operation completed.\n\n"
	text += fmt.Sprintf("• Removed: %d members\n", removed)
	if skipped > 0 {
		text += fmt.Sprintf("• Skipped (admins): %d members\n", skipped)
	}
	if failed > 0 {
		text += fmt.Sprintf("• Failed: %d members\n", failed)
	}
	return text
}
