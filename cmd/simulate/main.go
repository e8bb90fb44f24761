// Command simulate drives the rating pipeline in-process with synthetic
// game results and prints the resulting rankings. Useful for eyeballing
// rating drift and convergence without standing up the HTTP service.
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/tanayv/lila/internal/adapters/repository"
	"github.com/tanayv/lila/internal/domain/rating"
	"github.com/tanayv/lila/internal/domain/updater"
	"github.com/tanayv/lila/pkg/logger"
)

func main() {
	games := flag.Int("games", 1000, "number of games to simulate")
	players := flag.Int("players", 20, "number of players")
	seed := flag.Int64("seed", 42, "random seed")
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	_ = logger.SetLevelString("warn")

	ctx := context.Background()
	rng := rand.New(rand.NewSource(*seed))

	store := repository.NewMemStore()
	u := updater.New()

	// Hidden per-player strengths drive outcomes so rankings should
	// roughly recover them.
	strengths := make([]float64, *players)
	for i := range strengths {
		strengths[i] = rng.NormFloat64()
	}

	variants := []rating.Variant{
		rating.VariantStandard,
		rating.VariantStandard,
		rating.VariantStandard,
		rating.VariantChess960,
		rating.VariantAtomic,
	}
	speeds := []rating.Speed{
		rating.SpeedBullet,
		rating.SpeedBlitz,
		rating.SpeedRapid,
	}

	played := 0
	for i := 0; i < *games; i++ {
		wi := rng.Intn(*players)
		bi := rng.Intn(*players)
		if wi == bi {
			continue
		}

		whiteID := fmt.Sprintf("player-%02d", wi)
		blackID := fmt.Sprintf("player-%02d", bi)
		whiteRec, _ := store.GetOrCreate(ctx, whiteID)
		blackRec, _ := store.GetOrCreate(ctx, blackID)

		g := updater.Game{
			ID:          uuid.NewString(),
			Variant:     variants[rng.Intn(len(variants))],
			Speed:       speeds[rng.Intn(len(speeds))],
			Outcome:     outcome(rng, strengths[wi], strengths[bi]),
			Rated:       true,
			Finished:    true,
			Accountable: true,
			PlayedAt:    time.Now().UTC(),
		}

		update, err := u.Process(ctx, g,
			updater.Player{ID: whiteID, Perfs: whiteRec.Perfs},
			updater.Player{ID: blackID, Perfs: blackRec.Perfs},
		)
		if err != nil || update == nil {
			continue
		}

		whiteRec.Perfs = update.White
		blackRec.Perfs = update.Black
		_ = store.Put(ctx, whiteRec)
		_ = store.Put(ctx, blackRec)
		played++
	}

	fmt.Printf("simulated %d rated games between %d players\n\n", played, *players)
	for _, c := range []rating.Category{rating.CategoryBlitz, rating.CategoryStandard} {
		entries, err := store.TopN(ctx, c, 10)
		if err != nil {
			continue
		}
		fmt.Printf("top %s:\n", c)
		for _, e := range entries {
			fmt.Printf("  %2d. %-12s %4d (%d games)\n", e.Rank, e.PlayerID, e.Rating, e.Games)
		}
		fmt.Println()
	}
}

// outcome samples a result from the two hidden strengths.
func outcome(rng *rand.Rand, white, black float64) rating.Outcome {
	const drawRate = 0.1
	if rng.Float64() < drawRate {
		return rating.OutcomeDraw
	}
	// Logistic win probability on the strength gap.
	p := 1 / (1 + math.Exp(-(white - black)))
	if rng.Float64() < p {
		return rating.OutcomeWhiteWins
	}
	return rating.OutcomeBlackWins
}
