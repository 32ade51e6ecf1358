package output

import (
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/yourusername/calgrid/internal/schedule"
)

const tableTimeFormat = "2006-01-02 15:04"

// PrintItemsTable prints the collection's rows in a table format
func PrintItemsTable(items []schedule.Item) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Pos", "Kind", "Title", "Start", "End", "Key")

	for i, item := range items {
		table.Append(
			fmt.Sprintf("%d", i),
			itemKind(item),
			truncate(itemTitle(item), 30),
			formatItemTime(item.Start(), item),
			formatItemTime(item.End(), item),
			truncate(item.Key(), 20),
		)
	}

	table.Render()
}

// PrintItemDetail prints detailed information about a single row
func PrintItemDetail(position int, item schedule.Item) {
	fmt.Printf("Position: %d\n", position)
	fmt.Printf("Kind: %s\n", itemKind(item))
	fmt.Printf("Key: %s\n", item.Key())
	if title := itemTitle(item); title != "" {
		fmt.Printf("Title: %s\n", title)
	}
	fmt.Printf("Start: %s\n", item.Start().Format(time.RFC3339))
	fmt.Printf("End: %s\n", item.End().Format(time.RFC3339))
	fmt.Printf("Start Split: %v\n", schedule.IsStartSplit(item))
	fmt.Printf("End Split: %v\n", schedule.IsEndSplit(item))
	if origin := item.Origin(); origin != nil {
		fmt.Printf("Origin: %s .. %s\n",
			origin.Start().Format(time.RFC3339), origin.End().Format(time.RFC3339))
	}
}

func itemKind(item schedule.Item) string {
	switch {
	case item.IsDateLabel():
		return "label"
	case item.IsCurrentTime():
		return "now"
	case item.IsFillItem():
		return "fill"
	default:
		return "event"
	}
}

func formatItemTime(t time.Time, item schedule.Item) string {
	if item.IsDateLabel() {
		return t.Format("2006-01-02")
	}
	return t.Format(tableTimeFormat)
}

// Helper functions

func truncate(s string, maxLen int) string {
	if maxLen <= 3 {
		if len(s) <= maxLen {
			return s
		}
		return s[:maxLen]
	}
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
