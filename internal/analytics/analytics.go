package analytics

import (
	"fmt"
	"strings"
	"time"

	"chat-keeper/internal/query"
)

// topChatLimit bounds the most-recently-active list in the report.
const topChatLimit = 5

// ActivityReport summarizes archive activity for the daily admin report.
type ActivityReport struct {
	Date          string
	TotalChats    int
	TotalMessages int
	TotalSizeMB   float64
	PrivateChats  int
	GroupChats    int
	ActiveToday   int
	TopChats      []query.ChatSummary
}

// BuildActivityReport combines the aggregate stats with the chat list, which
// is expected sorted by last activity descending as ListChats returns it.
func BuildActivityReport(stats query.Stats, chats []query.ChatSummary, now time.Time) *ActivityReport {
	r := &ActivityReport{
		Date:          now.Format("2006-01-02"),
		TotalChats:    stats.TotalChats,
		TotalMessages: stats.TotalMessages,
		TotalSizeMB:   stats.TotalSizeMB,
		PrivateChats:  stats.PrivateChats,
		GroupChats:    stats.GroupChats,
	}

	y, m, d := now.Date()
	for _, c := range chats {
		ts, err := time.Parse(time.RFC3339, c.LastTime)
		if err != nil {
			continue
		}
		cy, cm, cd := ts.In(now.Location()).Date()
		if cy == y && cm == m && cd == d {
			r.ActiveToday++
		}
	}

	n := len(chats)
	if n > topChatLimit {
		n = topChatLimit
	}
	r.TopChats = chats[:n]
	return r
}

// Summary renders the report as a plain-text message.
func (r *ActivityReport) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Chat archive report for %s\n\n", r.Date)
	fmt.Fprintf(&b, "Chats: %d (%d private, %d group)\n", r.TotalChats, r.PrivateChats, r.GroupChats)
	fmt.Fprintf(&b, "Messages: %d\n", r.TotalMessages)
	fmt.Fprintf(&b, "Storage: %.2f MB\n", r.TotalSizeMB)
	fmt.Fprintf(&b, "Active today: %d\n", r.ActiveToday)

	if len(r.TopChats) > 0 {
		b.WriteString("\nMost recent activity:\n")
		for _, c := range r.TopChats {
			fmt.Fprintf(&b, "- %s (%s): %d messages\n", c.ChatID, c.Type, c.MessageCount)
		}
	}
	return b.String()
}
