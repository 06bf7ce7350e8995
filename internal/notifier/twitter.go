package notifier

import (
	"fmt"
	"os"
	"time"

	"github.com/dghubble/go-twitter/twitter" //nolint:staticcheck // Using stable v1.1 API
	"github.com/dghubble/oauth1"

	"ilearnics/internal/assignment"
)

// TwitterNotifier posts new-assignment announcements to Twitter
type TwitterNotifier struct {
	client *twitter.Client
}

// NewTwitterNotifier creates a new Twitter notifier using environment variables
// Required environment variables:
// - TWITTER_API_KEY
// - TWITTER_API_SECRET
// - TWITTER_ACCESS_TOKEN
// - TWITTER_ACCESS_SECRET
func NewTwitterNotifier() (*TwitterNotifier, error) {
	apiKey := os.Getenv("TWITTER_API_KEY")
	apiSecret := os.Getenv("TWITTER_API_SECRET")
	accessToken := os.Getenv("TWITTER_ACCESS_TOKEN")
	accessSecret := os.Getenv("TWITTER_ACCESS_SECRET")

	if apiKey == "" || apiSecret == "" || accessToken == "" || accessSecret == "" {
		return nil, fmt.Errorf("missing required Twitter credentials in environment variables")
	}

	config := oauth1.NewConfig(apiKey, apiSecret)
	token := oauth1.NewToken(accessToken, accessSecret)
	httpClient := config.Client(oauth1.NoContext, token)
	client := twitter.NewClient(httpClient)

	return &TwitterNotifier{client: client}, nil
}

// Notify posts one announcement per assignment
func (n *TwitterNotifier) Notify(records []*assignment.Record) error {
	for i, rec := range records {
		post := formatAnnouncement(rec)

		_, _, err := n.client.Statuses.Update(post, nil)
		if err != nil {
			return fmt.Errorf("failed to post announcement for %s: %w", rec.UID, err)
		}

		// Rate limiting: wait between posts
		if i < len(records)-1 {
			time.Sleep(2 * time.Second)
		}
	}

	return nil
}

// formatAnnouncement formats an assignment as a post
func formatAnnouncement(rec *assignment.Record) string {
	post := "📢 New assignment posted!\n\n"
	if rec.Course != "" {
		post += fmt.Sprintf("📚 %s\n", rec.Course)
	}
	post += fmt.Sprintf("📝 %s\n", rec.Title)

	if !rec.DueAt.IsZero() {
		post += fmt.Sprintf("⏰ Due %s\n", rec.DueAt.Format("2006-01-02 15:04"))
	}

	post += fmt.Sprintf("\n🔗 %s", rec.URL)

	// Twitter limit is 280 characters
	if len(post) > 280 {
		// Truncate and add ellipsis
		post = post[:277] + "..."
	}

	return post
}
