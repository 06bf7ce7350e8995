// Package telegram provides Telegram Bot API integration for delivering
// upcoming-deadline digests.
//
// The package supports sending formatted digest messages and attaching the
// generated .ics document via the Bot API using simple HTTP requests. No
// external dependencies required - uses only the standard library.
//
// Authentication requires a bot token (from @BotFather) and chat ID.
package telegram
