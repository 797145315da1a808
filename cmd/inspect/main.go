package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/danielpatrickdp/utility-advisor/internal/journal"
	"github.com/danielpatrickdp/utility-advisor/internal/world"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to decisions.db")
	last := flag.Int("last", 20, "show N most recent transitions")
	entity := flag.String("entity", "", "show a single entity's transition history")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db path/to/decisions.db [--last N] [--entity id] [--json]")
		os.Exit(2)
	}

	rec, err := journal.Open(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer rec.Close()

	var entries []journal.Entry
	if *entity != "" {
		entries, err = rec.EntityHistory(world.EntityID(*entity), *last)
	} else {
		entries, err = rec.Entries(*last)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "no transitions found")
		os.Exit(0)
	}

	if *jsonOut {
		if err := printJSON(entries); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}
	printTable(entries)
}

// #endregion main

// #region output

type entryRow struct {
	RunID     string  `json:"run_id"`
	Cycle     int     `json:"cycle"`
	Entity    string  `json:"entity"`
	Action    string  `json:"action"`
	Identity  string  `json:"identity"`
	Score     float32 `json:"score"`
	Desync    bool    `json:"desync,omitempty"`
	CreatedAt string  `json:"created_at"`
}

func toRow(e journal.Entry) entryRow {
	return entryRow{
		RunID:     e.RunID,
		Cycle:     e.Cycle,
		Entity:    string(e.Entity),
		Action:    string(e.Action),
		Identity:  e.Identity,
		Score:     e.Score,
		Desync:    e.Desync,
		CreatedAt: e.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

func printTable(entries []journal.Entry) {
	fmt.Printf("%-8s  %5s  %-8s  %-10s  %-24s  %8s  %s\n",
		"Run", "Cycle", "Entity", "Action", "Identity", "Score", "Time")
	fmt.Printf("%-8s+-%5s+-%-8s+-%-10s+-%-24s+-%8s+-%s\n",
		"--------", "-----", "--------", "----------", "------------------------", "--------", "--------------------")

	counts := make(map[string]int)
	desyncs := 0
	for _, e := range entries {
		r := toRow(e)
		counts[r.Action]++
		if r.Desync {
			desyncs++
		}
		fmt.Printf("%-8s  %5d  %-8s  %-10s  %-24s  %8.2f  %s\n",
			shortID(r.RunID), r.Cycle, shortID(r.Entity), r.Action, r.Identity, r.Score, r.CreatedAt)
	}

	fmt.Printf("\nActions: %d adopt, %d refresh, %d replace, %d no_op\n",
		counts["adopt"], counts["refresh"], counts["replace"], counts["no_op"])
	if desyncs > 0 {
		fmt.Printf("Desyncs: %d\n", desyncs)
	}
}

func printJSON(entries []journal.Entry) error {
	rows := make([]entryRow, len(entries))
	for i, e := range entries {
		rows[i] = toRow(e)
	}
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// #endregion output
