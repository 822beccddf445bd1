package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"cardempire/internal/autopilot"
	"cardempire/internal/config"
	"cardempire/internal/game"
	"cardempire/internal/store"
	"cardempire/internal/telemetry"

	"github.com/dustin/go-humanize"
)

func main() {
	days := flag.Int("days", 30, "days to simulate")
	trade := flag.Bool("trade", true, "buy and fulfill greedily")
	reserve := flag.Int("reserve", 500, "cash the autopilot never spends")
	difficulty := flag.String("difficulty", "", "balance preset (default|casual|hard); empty reads the environment")
	saveDir := flag.String("save-dir", "", "write the final game to <save-dir>/<slot>.json")
	slot := flag.String("slot", "headless", "save slot name")
	asJSON := flag.Bool("json", false, "print the summary as JSON")
	quiet := flag.Bool("quiet", false, "only print the summary")
	flag.Parse()

	if err := config.LoadDotEnv(); err != nil {
		log.Fatalf("load .env: %v", err)
	}
	balance := config.FromEnv()
	if *difficulty != "" {
		p, ok := config.Preset(*difficulty)
		if !ok {
			log.Fatalf("unknown difficulty %q", *difficulty)
		}
		balance = p
	}
	if err := balance.Validate(); err != nil {
		log.Fatalf("balance: %v", err)
	}

	events := telemetry.NewMemoryRepository()
	g := game.New(game.Options{Logger: log.Default(), Recorder: events, Balance: balance})

	st := autopilot.DefaultStrategy()
	st.Trade = *trade
	st.Reserve = *reserve

	sum := autopilot.Run(g, *days, st, func(g *game.Game) {
		if *quiet {
			return
		}
		fmt.Printf("Day %d  %s  cash $%s  rep %s\n",
			g.Day(), g.Market().Season, humanize.Comma(int64(g.Cash())), g.ReputationStars())
	})

	if *saveDir != "" {
		s, err := store.NewFileStore(*saveDir)
		if err != nil {
			log.Fatal(err)
		}
		if err := g.SaveTo(context.Background(), s, *slot); err != nil {
			log.Fatal(err)
		}
	}

	stats, err := statsFor(events)
	if err != nil {
		log.Fatal(err)
	}
	b := g.Analytics()

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(map[string]any{
			"summary":      sum,
			"analytics":    b,
			"telemetry":    stats,
			"achievements": g.UnlockedAchievements(),
			"activity":     g.Activity(),
		})
		return
	}

	fmt.Println()
	fmt.Println("Recent activity:")
	for _, line := range g.Activity() {
		fmt.Println("  " + line)
	}
	fmt.Println()
	fmt.Printf("Days %d-%d   cash $%s -> $%s\n", sum.StartDay, sum.EndDay,
		humanize.Comma(int64(sum.StartCash)), humanize.Comma(int64(sum.EndCash)))
	fmt.Printf("Bought %d  fulfilled %d  sold %d lots  answered %d events\n",
		sum.Purchases, sum.Fulfilled, sum.Sold, sum.Choices)
	fmt.Printf("Revenue $%s  purchases $%s  profit $%s\n",
		humanize.Comma(int64(b.TotalRevenue)), humanize.Comma(int64(b.TotalPurchases)), humanize.Comma(int64(b.TotalProfit())))
	fmt.Printf("Success rate %.1f%%  avg margin %.1f%%  7-day avg $%s\n",
		b.SuccessRate()*100, b.AverageProfitMargin(), humanize.Commaf(b.RecentDailyAverage()))
	fmt.Printf("Cards sold %d  expired %d  orders expired %d\n", b.CardsSold, b.CardsExpired, b.OrdersExpired)
	for _, a := range g.UnlockedAchievements() {
		fmt.Printf("  * %s (day %d)\n", a.Name, a.UnlockedDay)
	}
}

func statsFor(repo telemetry.Repository) (telemetry.Stats, error) {
	events, err := repo.GetEvents(0, nil)
	if err != nil {
		return telemetry.Stats{}, err
	}
	return telemetry.CalculateStats(events, 0)
}
