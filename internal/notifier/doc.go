// Package notifier provides notification interfaces and implementations for
// announcing newly posted assignments.
//
// The notifier package supports posting announcements to various platforms
// including Twitter. It handles OAuth authentication, rate limiting, and message
// formatting for different notification channels.
package notifier
