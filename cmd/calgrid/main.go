package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/yourusername/calgrid/internal/collection"
	"github.com/yourusername/calgrid/internal/config"
	"github.com/yourusername/calgrid/internal/ics"
	"github.com/yourusername/calgrid/internal/layout"
	"github.com/yourusername/calgrid/internal/logging"
	"github.com/yourusername/calgrid/internal/output"
	"github.com/yourusername/calgrid/internal/schedule"
	"github.com/yourusername/calgrid/internal/state"
)

var (
	configPath string
	icsPath    string
	jsonOutput bool
	noColor    bool
	debugMode  bool

	renderASCII   bool
	renderUnicode bool
	renderWidth   int
	renderHeight  int

	resizeStart bool
	addFill     bool

	// Color functions
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	keyColor     = color.New(color.FgYellow)
)

// session wires the collection, layout and persisted viewport together for
// one CLI invocation. Schedule items themselves are not persisted; they come
// from the config seeds and optional --ics imports.
type session struct {
	cfg   *config.Config
	coll  *collection.Collection
	lay   *layout.Layout
	store *state.RuntimeState
}

func newSession() (*session, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	coll := collection.New(nil)
	items, err := cfg.BuildItems()
	if err != nil {
		return nil, err
	}
	if icsPath != "" {
		imported, err := ics.ImportFile(icsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to import %s: %w", icsPath, err)
		}
		items = append(items, imported...)
	}
	items = append(items, schedule.Now())
	coll.AddItems(items...)

	// Guarantee at least the current week's columns exist.
	if first := coll.FirstDateLabel(); first != nil {
		coll.AddFollowingDateLabels(cfg.Settings.DaysCount)
		coll.AddPreviousDateLabels(cfg.Settings.DaysCount)
	}

	lay := layout.New(cfg.ToGridConfig(), collection.NewLookup(coll), nil)

	store, err := state.LoadState()
	if err != nil {
		return nil, err
	}
	if viewport, ok := store.GetViewport(); ok {
		lay.RestoreState(viewport)
	}
	lay.LayoutAll()

	return &session{cfg: cfg, coll: coll, lay: lay, store: store}, nil
}

// saveViewport persists the current viewport for the next invocation
func (s *session) saveViewport() error {
	s.store.SetViewport(s.lay.SaveState())
	return s.store.Save()
}

// allItems snapshots the collection rows in order
func (s *session) allItems() []schedule.Item {
	items := make([]schedule.Item, 0, s.coll.Len())
	for i := 0; i < s.coll.Len(); i++ {
		items = append(items, s.coll.Item(i))
	}
	return items
}

// findByKey returns the first row position holding an item with the key
func (s *session) findByKey(key string) (int, error) {
	positions := s.coll.PositionsByKey(key)
	if len(positions) == 0 {
		return 0, fmt.Errorf("no item with key %q", key)
	}
	return positions[0], nil
}

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "calgrid",
	Short: "Calgrid - scrollable weekly calendar grid",
	Long: `Calgrid lays schedule items out on a scrollable weekly calendar grid.

Items are seeded from the config file or imported from iCalendar files;
the viewport (scroll position and visible week) persists across runs.`,
	Version: "0.1.0",
}

// renderCmd lays out and draws the visible week
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the visible week",
	Long:  `Lays out the schedule and renders the visible window as a character grid.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			printError(err.Error())
			return err
		}

		if jsonOutput {
			return printJSON(visibleRowsJSON(s))
		}

		output.PrintGrid(s.lay, s.coll, getRenderOptions())
		if err := s.saveViewport(); err != nil {
			printError(fmt.Sprintf("Failed to save viewport: %v", err))
			return err
		}
		return nil
	},
}

// itemsCmd lists the collection rows
var itemsCmd = &cobra.Command{
	Use:   "items",
	Short: "List schedule rows",
	Long:  `Lists every row of the schedule collection, including date labels and split fragments.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			printError(err.Error())
			return err
		}
		if jsonOutput {
			return printJSON(itemsJSON(s.allItems()))
		}
		output.PrintItemsTable(s.allItems())
		return nil
	},
}

// addCmd adds an item and shows the resulting rows
var addCmd = &cobra.Command{
	Use:   "add <title> <start> <end>",
	Short: "Add a schedule item",
	Long: `Adds a schedule item and lists the resulting rows. Items spanning
midnight are split into per-day fragments. Times are RFC3339 or
"2006-01-02 15:04" in local time.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		start, err := parseTime(args[1])
		if err != nil {
			printError(fmt.Sprintf("Invalid start: %v", err))
			return err
		}
		end, err := parseTime(args[2])
		if err != nil {
			printError(fmt.Sprintf("Invalid end: %v", err))
			return err
		}
		if end.Before(start) {
			err := fmt.Errorf("end %s before start %s", args[2], args[1])
			printError(err.Error())
			return err
		}

		s, err := newSession()
		if err != nil {
			printError(err.Error())
			return err
		}

		var item schedule.Item
		if addFill {
			item = schedule.NewFillEvent(args[0], start, end)
		} else {
			item = schedule.NewEvent(args[0], start, end)
		}
		s.coll.AddItems(item)

		if jsonOutput {
			return printJSON(itemsJSON(s.allItems()))
		}
		printSuccess(fmt.Sprintf("Added %q (%s)", args[0], item.Key()))
		output.PrintItemsTable(s.allItems())
		return nil
	},
}

// moveCmd moves an item to a new interval
var moveCmd = &cobra.Command{
	Use:   "move <key> <start> <end>",
	Short: "Move an item to a new interval",
	Long: `Moves the item with the given key to a new interval, re-splitting
midnight crossings and reporting the resulting rows.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		start, err := parseTime(args[1])
		if err != nil {
			printError(fmt.Sprintf("Invalid start: %v", err))
			return err
		}
		end, err := parseTime(args[2])
		if err != nil {
			printError(fmt.Sprintf("Invalid end: %v", err))
			return err
		}

		s, err := newSession()
		if err != nil {
			printError(err.Error())
			return err
		}
		pos, err := s.findByKey(args[0])
		if err != nil {
			printError(err.Error())
			return err
		}
		s.coll.UpdateItem(pos, start, end)

		if jsonOutput {
			return printJSON(itemsJSON(s.allItems()))
		}
		printSuccess(fmt.Sprintf("Moved %s", args[0]))
		output.PrintItemsTable(s.allItems())
		return nil
	},
}

// resizeCmd adjusts one edge of an item
var resizeCmd = &cobra.Command{
	Use:   "resize <key> <time>",
	Short: "Resize an item",
	Long: `Moves the end of the item with the given key to the new time (or the
start, with --start). The opposite edge stays fixed.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		edge, err := parseTime(args[1])
		if err != nil {
			printError(fmt.Sprintf("Invalid time: %v", err))
			return err
		}

		s, err := newSession()
		if err != nil {
			printError(err.Error())
			return err
		}
		pos, err := s.findByKey(args[0])
		if err != nil {
			printError(err.Error())
			return err
		}

		item := s.coll.Item(pos)
		origin := item.Origin()
		if origin == nil {
			origin = item
		}
		start, end := origin.Start(), origin.End()
		if resizeStart {
			if edge.After(end) {
				edge = end
			}
			start = edge
		} else {
			if edge.Before(start) {
				edge = start
			}
			end = edge
		}
		s.coll.UpdateItem(pos, start, end)

		if jsonOutput {
			return printJSON(itemsJSON(s.allItems()))
		}
		printSuccess(fmt.Sprintf("Resized %s", args[0]))
		output.PrintItemsTable(s.allItems())
		return nil
	},
}

// deleteCmd removes an item and all its fragments
var deleteCmd = &cobra.Command{
	Use:   "delete <key>",
	Short: "Delete an item",
	Long:  `Removes the item with the given key, including every split fragment.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			printError(err.Error())
			return err
		}
		pos, err := s.findByKey(args[0])
		if err != nil {
			printError(err.Error())
			return err
		}
		s.coll.DeleteItems(pos)

		if jsonOutput {
			return printJSON(itemsJSON(s.allItems()))
		}
		printSuccess(fmt.Sprintf("Deleted %s", args[0]))
		output.PrintItemsTable(s.allItems())
		return nil
	},
}

// todayCmd jumps the viewport to today's column
var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Jump to today",
	Long:  `Scrolls the viewport so today's column is at the left edge and renders it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			printError(err.Error())
			return err
		}

		pos := s.coll.DateLabelPosition(time.Now())
		if pos == nil {
			err := fmt.Errorf("today is outside the loaded date range")
			printError(err.Error())
			return err
		}
		s.lay.ScrollToDate(*pos)

		if jsonOutput {
			return printJSON(visibleRowsJSON(s))
		}
		output.PrintGrid(s.lay, s.coll, getRenderOptions())
		if err := s.saveViewport(); err != nil {
			printError(fmt.Sprintf("Failed to save viewport: %v", err))
			return err
		}
		return nil
	},
}

// importCmd imports an iCalendar file and lists the merged rows
var importCmd = &cobra.Command{
	Use:   "import <file.ics>",
	Short: "Import an iCalendar file",
	Long: `Imports VEVENTs from an .ics file into the schedule for this
invocation and lists the merged rows. All-day events become fill items.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		icsPath = args[0]
		s, err := newSession()
		if err != nil {
			printError(err.Error())
			return err
		}
		if jsonOutput {
			return printJSON(itemsJSON(s.allItems()))
		}
		printSuccess(fmt.Sprintf("Imported %s", args[0]))
		output.PrintItemsTable(s.allItems())
		return nil
	},
}

// stateCmd groups viewport state commands
var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Manage persisted viewport state",
}

var stateShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show persisted viewport state",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := state.LoadState()
		if err != nil {
			printError(err.Error())
			return err
		}
		if jsonOutput {
			return printJSON(store)
		}
		viewport, ok := store.GetViewport()
		if !ok {
			fmt.Println("No viewport saved")
			return nil
		}
		keyColor.Print("First visible: ")
		fmt.Println(viewport.FirstVisible)
		keyColor.Print("Last visible: ")
		fmt.Println(viewport.LastVisible)
		keyColor.Print("Vertical scroll: ")
		fmt.Printf("%.1f\n", viewport.VerticalScroll)
		if viewport.FirstVisibleUnix != 0 {
			keyColor.Print("First visible date: ")
			fmt.Println(time.Unix(viewport.FirstVisibleUnix, 0).Format("2006-01-02"))
		}
		return nil
	},
}

var stateResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset persisted viewport state",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := state.LoadState()
		if err != nil {
			printError(err.Error())
			return err
		}
		if err := store.Reset(); err != nil {
			printError(fmt.Sprintf("Failed to reset state: %v", err))
			return err
		}
		printSuccess("Viewport state reset")
		return nil
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")

	// Add top-level commands
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(itemsCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(resizeCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(todayCmd)
	rootCmd.AddCommand(importCmd)

	rootCmd.AddCommand(stateCmd)
	stateCmd.AddCommand(stateShowCmd)
	stateCmd.AddCommand(stateResetCmd)

	// Render flags
	renderCmd.Flags().StringVar(&icsPath, "ics", "", "Merge items from an .ics file")
	renderCmd.Flags().BoolVar(&renderASCII, "ascii", false, "Force ASCII mode (no Unicode)")
	renderCmd.Flags().BoolVar(&renderUnicode, "unicode", false, "Force Unicode mode")
	renderCmd.Flags().IntVar(&renderWidth, "width", 0, "Override terminal width")
	renderCmd.Flags().IntVar(&renderHeight, "height", 0, "Override terminal height")
	todayCmd.Flags().BoolVar(&renderASCII, "ascii", false, "Force ASCII mode (no Unicode)")
	todayCmd.Flags().IntVar(&renderWidth, "width", 0, "Override terminal width")
	todayCmd.Flags().IntVar(&renderHeight, "height", 0, "Override terminal height")

	addCmd.Flags().BoolVar(&addFill, "fill", false, "Add as a full-column fill item")
	resizeCmd.Flags().BoolVar(&resizeStart, "start", false, "Move the start edge instead of the end")

	cobra.OnInitialize(func() {
		if noColor {
			color.NoColor = true
		}
		logging.SetDebug(debugMode)
	})
}

func main() {
	// Initialize logging
	logging.Init()
	defer logging.Close()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// Helper functions

func printJSON(data interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func printError(msg string) {
	if noColor {
		fmt.Fprintln(os.Stderr, "Error:", msg)
	} else {
		errorColor.Fprint(os.Stderr, "✗ Error: ")
		fmt.Fprintln(os.Stderr, msg)
	}
}

func printSuccess(msg string) {
	if noColor {
		fmt.Println(msg)
	} else {
		successColor.Print("✓ ")
		fmt.Println(msg)
	}
}

// parseTime accepts RFC3339 or a local "2006-01-02 15:04" timestamp
func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02 15:04", s, time.Local)
}

func getRenderOptions() output.RenderOptions {
	opts := output.DefaultRenderOptions()
	if renderASCII {
		opts.UseUnicode = false
	}
	if renderUnicode {
		opts.UseUnicode = true
	}
	if renderWidth > 0 {
		opts.MaxWidth = renderWidth
	}
	if renderHeight > 0 {
		opts.MaxHeight = renderHeight
	}
	return opts
}

type itemJSON struct {
	Position int    `json:"position"`
	Kind     string `json:"kind"`
	Key      string `json:"key"`
	Title    string `json:"title,omitempty"`
	Start    string `json:"start"`
	End      string `json:"end"`
}

func itemsJSON(items []schedule.Item) []itemJSON {
	out := make([]itemJSON, 0, len(items))
	for i, item := range items {
		kind := "event"
		var title string
		switch it := item.(type) {
		case schedule.DateLabel:
			kind = "label"
		case schedule.CurrentTime:
			kind = "now"
		case schedule.Event:
			title = it.Title()
			if it.IsFillItem() {
				kind = "fill"
			}
		}
		out = append(out, itemJSON{
			Position: i,
			Kind:     kind,
			Key:      item.Key(),
			Title:    title,
			Start:    item.Start().Format(time.RFC3339),
			End:      item.End().Format(time.RFC3339),
		})
	}
	return out
}

type rowJSON struct {
	Position  int     `json:"position"`
	Kind      string  `json:"kind"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	SubColumn int     `json:"subColumn"`
	SubCount  int     `json:"subCount"`
}

func visibleRowsJSON(s *session) []rowJSON {
	positions := s.lay.VisiblePositions()
	out := make([]rowJSON, 0, len(positions))
	for _, pos := range positions {
		g, ok := s.lay.Row(pos)
		if !ok {
			continue
		}
		out = append(out, rowJSON{
			Position:  pos,
			Kind:      g.Kind.String(),
			X:         g.Rect.X,
			Y:         g.Rect.Y,
			Width:     g.Rect.Width,
			Height:    g.Rect.Height,
			SubColumn: g.SubColumnPosition,
			SubCount:  g.SubColumnCount,
		})
	}
	return out
}
