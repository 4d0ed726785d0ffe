package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/stripsim/internal/storage"
)

var (
	flagHistoryFrontend string
	flagHistoryLimit    int
	flagHistoryStats    bool
	flagHistoryClear    bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded sessions",
	Long: `Display the most recent simulator sessions with their peak speed and
how often the recommended speed was exceeded.

Examples:
  stripsim history
  stripsim history --frontend ssh --limit 50
  stripsim history --stats
  stripsim history --clear --frontend trace`,
	Run: runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&flagHistoryFrontend, "frontend", "", "Only sessions from this frontend (tui, window, ssh)")
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Number of sessions to show")
	historyCmd.Flags().BoolVar(&flagHistoryStats, "stats", false, "Show totals per frontend")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete recorded sessions")
}

func runHistory(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening sessions database: %v", err)
	}
	defer store.Close()

	switch {
	case flagHistoryClear:
		clearHistory(store)
	case flagHistoryStats:
		printStats(store)
	default:
		printSessions(store)
	}
}

func clearHistory(store *storage.Store) {
	n, err := store.ClearSessions(flagHistoryFrontend)
	if err != nil {
		store.Close()
		fail("clearing sessions: %v", err)
	}
	fmt.Printf("Deleted %d sessions.\n", n)
}

func printSessions(store *storage.Store) {
	sessions, err := store.RecentSessions(flagHistoryFrontend, flagHistoryLimit)
	if err != nil {
		store.Close()
		fail("retrieving sessions: %v", err)
	}

	fmt.Println("Recent Sessions")
	fmt.Println()

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Println("Run 'stripsim window' or 'stripsim run' to start one.")
		return
	}

	fmt.Printf("  %-16s  %-8s  %-10s  %-6s  %-9s  %-8s  %-4s  %s\n",
		"Started", "Frontend", "User", "Hz", "Duration", "MaxSpeed", "Gate", "Exceeded/Ignored")
	fmt.Printf("  %-16s  %-8s  %-10s  %-6s  %-9s  %-8s  %-4s  %s\n",
		"-------", "--------", "----", "--", "--------", "--------", "----", "----------------")

	for _, s := range sessions {
		gate := "no"
		if s.GatePassed {
			gate = "yes"
		}
		user := s.User
		if user == "" {
			user = "-"
		}
		fmt.Printf("  %-16s  %-8s  %-10s  %-6d  %-9s  %-8d  %-4s  %d/%d\n",
			s.StartedAt.Format("2006-01-02 15:04"),
			s.Frontend,
			user,
			s.RefreshRate,
			s.Duration().Round(time.Second).String(),
			s.MaxSpeed,
			gate,
			s.ExceedEpisodes,
			s.Ignores,
		)
	}
}

func printStats(store *storage.Store) {
	stats, err := store.Stats()
	if err != nil {
		store.Close()
		fail("retrieving stats: %v", err)
	}
	if len(stats) == 0 {
		fmt.Println("No sessions recorded yet.")
		return
	}

	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Printf("  %-8s  %-8s  %-8s  %-8s  %s\n", "Frontend", "Sessions", "MaxSpeed", "Exceeded", "Last")
	fmt.Printf("  %-8s  %-8s  %-8s  %-8s  %s\n", "--------", "--------", "--------", "--------", "----")
	for _, name := range names {
		st := stats[name]
		fmt.Printf("  %-8s  %-8d  %-8d  %-8d  %s\n",
			st.Frontend, st.Sessions, st.MaxSpeed, st.ExceedEpisodes, st.LastStarted.Format("2006-01-02 15:04"))
	}
}
