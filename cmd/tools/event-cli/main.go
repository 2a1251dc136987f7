package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/annel0/voxel-world/internal/eventbus"
)

const timeFormat = "15:04:05.000"

func main() {
	var (
		natsURL = flag.String("nats", "nats://127.0.0.1:4222", "NATS server URL")
		stream  = flag.String("stream", "WORLD", "JetStream stream name")
		types   = flag.String("types", "", "Event types filter (comma-separated): block_added, block_removed, sector_changed, ...")
		sources = flag.String("sources", "", "Session IDs filter (comma-separated)")
		limit   = flag.Int("limit", 0, "Stop after N events (0 – follow forever)")
	)
	flag.Parse()

	bus, err := eventbus.NewJetStreamBus(*natsURL, *stream, 24*time.Hour)
	if err != nil {
		log.Fatalf("❌ Failed to connect to JetStream: %v", err)
	}
	defer bus.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	seen := make(chan struct{}, 64)
	filter := eventbus.Filter{Types: parseStringList(*types), Sources: parseStringList(*sources)}
	sub, err := bus.Subscribe(ctx, filter, func(_ context.Context, ev *eventbus.Envelope) {
		printEvent(ev)
		select {
		case seen <- struct{}{}:
		default:
		}
	})
	if err != nil {
		log.Fatalf("❌ Subscribe failed: %v", err)
	}
	defer sub.Unsubscribe()

	fmt.Printf("📡 Listening on %s (stream %s)\n", *natsURL, *stream)
	count := 0
	for {
		select {
		case <-ctx.Done():
			fmt.Printf("👋 %d events\n", count)
			return
		case <-seen:
			count++
			if *limit > 0 && count >= *limit {
				fmt.Printf("👋 %d events\n", count)
				return
			}
		}
	}
}

// printEvent печатает событие одной строкой
func printEvent(ev *eventbus.Envelope) {
	ts := ev.Timestamp.Local().Format(timeFormat)
	if ev.EventType == "sector_changed" {
		var p eventbus.SectorPayload
		if err := ev.Decode(&p); err == nil {
			fmt.Printf("%s 🧭 %-14s session=%s sector=(%d,%d)\n", ts, ev.EventType, shortID(ev.Source), p.X, p.Z)
			return
		}
	} else {
		var p eventbus.BlockPayload
		if err := ev.Decode(&p); err == nil {
			fmt.Printf("%s 🧱 %-14s session=%s (%d,%d,%d) %s %s\n", ts, ev.EventType, shortID(ev.Source), p.X, p.Y, p.Z, p.Block, p.Action)
			return
		}
	}
	fmt.Printf("%s ❓ %-14s session=%s %s\n", ts, ev.EventType, shortID(ev.Source), ev.Payload)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func parseStringList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
