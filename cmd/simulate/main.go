package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/danielpatrickdp/utility-advisor/internal/advisor"
	"github.com/danielpatrickdp/utility-advisor/internal/behaviors"
	"github.com/danielpatrickdp/utility-advisor/internal/journal"
	"github.com/danielpatrickdp/utility-advisor/internal/world"
)

// #region main

func main() {
	cycles := flag.Int("cycles", 30, "number of pipeline cycles to run")
	enemies := flag.Int("enemies", 4, "number of enemies to spawn")
	dbPath := flag.String("db", envOr("ADVISOR_DB", ""), "journal decisions to this SQLite file (optional)")
	bonus := flag.Float64("bonus", -1, "override the default consistency bonus (negative keeps the default)")
	trace := flag.Bool("trace", false, "print every transition as it happens")
	flag.Parse()

	if *cycles <= 0 || *enemies <= 0 {
		fmt.Fprintln(os.Stderr, "usage: simulate [--cycles N] [--enemies N] [--db path] [--bonus N] [--trace]")
		os.Exit(2)
	}

	cfg := behaviors.DefaultDemoConfig()
	if *bonus >= 0 {
		cfg.ConsistencyBonus = float32(*bonus)
	}

	var sink advisor.Sink
	counts := make(map[advisor.Action]int)
	tally := advisor.SinkFunc(func(cycle int, entity world.EntityID, t advisor.Transition) {
		counts[t.Action]++
		if *trace && t.Action != advisor.ActionNone {
			fmt.Printf("cycle %3d  %-8s  %-8s  %s\n", cycle, shortID(string(entity)), t.Action, t.Identity)
		}
	})
	sink = tally

	if *dbPath != "" {
		rec, err := journal.Open(*dbPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open journal: %v\n", err)
			os.Exit(1)
		}
		defer rec.Close()
		fmt.Printf("Journaling run %s to %s\n", rec.RunID(), *dbPath)
		sink = advisor.SinkFunc(func(cycle int, entity world.EntityID, t advisor.Transition) {
			rec.Record(cycle, entity, t)
			tally(cycle, entity, t)
		})
	}

	w := world.New()
	player := behaviors.SpawnPlayer(w, 0, 0)
	for i := 0; i < *enemies; i++ {
		x := float32(3 + i*4)
		health := float32(2 + i*2)
		behaviors.SpawnEnemy(w, cfg, x, float32(i), health)
	}

	p := behaviors.BuildPipeline(w, cfg, sink)

	// The player drifts along +X so enemies drop in and out of sight.
	p.AddAct(func(w *world.World, cycle int) {
		if pos, ok := behaviors.GetPosition(player); ok {
			pos.X += 0.3
		}
	})

	p.Run(*cycles)

	printWorld(w, player)
	fmt.Printf("\nTransitions over %d cycles: %d adopt, %d refresh, %d replace, %d no_op\n",
		*cycles,
		counts[advisor.ActionAdopt], counts[advisor.ActionRefresh],
		counts[advisor.ActionReplace], counts[advisor.ActionNone])
}

// #endregion main

// #region output

func printWorld(w *world.World, player *world.Entity) {
	fmt.Printf("\n%-8s  %8s  %8s  %8s  %s\n", "Entity", "X", "Y", "Health", "Behavior")
	fmt.Printf("%-8s+-%8s+-%8s+-%8s+-%s\n",
		"--------", "--------", "--------", "--------", "------------------------")

	w.Each(func(e *world.Entity) {
		pos, ok := behaviors.GetPosition(e)
		if !ok {
			return
		}
		if e.ID() == player.ID() {
			fmt.Printf("%-8s  %8.2f  %8.2f  %8s  %s\n", "player", pos.X, pos.Y, "—", "—")
			return
		}
		health := "—"
		if h, ok := behaviors.GetHealth(e); ok {
			health = fmt.Sprintf("%.1f", h.Current)
		}
		behavior := "—"
		acc := behaviors.ViewEnemyRecords(e.Slots())
		if kind, ok := acc.Active(); ok {
			behavior = kind.String()
		}
		fmt.Printf("%-8s  %8.2f  %8.2f  %8s  %s\n", shortID(string(e.ID())), pos.X, pos.Y, health, behavior)
	})
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// #endregion output
