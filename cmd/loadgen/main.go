package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/dasabz/simex/internal/domain"
	"github.com/dasabz/simex/internal/engine"
)

// Drives the matching engine in-process with randomized order flow and
// reports throughput. Amends and cancels target previously submitted
// client order ids, so a share of them hit already-filled orders and
// come back rejected — that path is part of the load.
func main() {
	totalOrders := flag.Int("orders", 500000, "number of orders to submit")
	priceLevels := flag.Int("price-levels", 200, "unique price levels around the mid")
	basePrice := flag.Float64("base-price", 100.0, "mid price used for randomization")
	tick := flag.Float64("tick", 0.5, "tick size for limit prices")
	symbol := flag.String("symbol", "SIM", "symbol to trade")
	amendEvery := flag.Int("amend-every", 10, "amend a random earlier order every N submissions (0 disables)")
	cancelEvery := flag.Int("cancel-every", 25, "cancel a random earlier order every N submissions (0 disables)")
	snapshotEvery := flag.Int("snapshot-every", 0, "apply a market-data snapshot every N submissions (0 disables)")
	seed := flag.Int64("seed", time.Now().UnixNano(), "seed for deterministic random streams")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	eng := engine.New(logger)

	sides := make([]domain.Side, *totalOrders)
	var trades, amends, cancels, rejects int

	start := time.Now()
	for i := 0; i < *totalOrders; i++ {
		order := nextRandomOrder(rng, i, *symbol, *basePrice, *priceLevels, *tick)
		sides[i] = order.Side

		status, fills := eng.EnterNew(order)
		trades += len(fills)
		if status == domain.OrderStatusRejected {
			rejects++
		}

		if *amendEvery > 0 && i > 0 && i%*amendEvery == 0 {
			target := rng.Intn(i)
			status, fills := eng.EnterAmend(domain.AmendRequest{
				Side:              sides[target],
				Quantity:          rng.Int63n(400) + 100,
				Price:             randomPrice(rng, sides[target], *basePrice, *priceLevels, *tick),
				OrigClientOrderID: "lg-" + strconv.Itoa(target),
			})
			trades += len(fills)
			switch status {
			case domain.OrderStatusAmended:
				amends++
			case domain.OrderStatusRejected:
				rejects++
			}
		}

		if *cancelEvery > 0 && i > 0 && i%*cancelEvery == 0 {
			target := rng.Intn(i)
			status := eng.EnterCancel(domain.CancelRequest{
				Side:              sides[target],
				OrigClientOrderID: "lg-" + strconv.Itoa(target),
			})
			switch status {
			case domain.OrderStatusCancelled:
				cancels++
			case domain.OrderStatusRejected:
				rejects++
			}
		}

		if *snapshotEvery > 0 && i > 0 && i%*snapshotEvery == 0 {
			fills, err := eng.ApplySnapshot(randomSnapshot(rng, *symbol, *basePrice, *tick))
			if err != nil {
				fmt.Fprintf(os.Stderr, "snapshot failed: %v\n", err)
				os.Exit(1)
			}
			trades += len(fills)
		}
	}
	elapsed := time.Since(start)

	ordersPerSec := float64(*totalOrders) / elapsed.Seconds()
	fmt.Printf("submitted %d orders in %s (%.0f orders/s)\n", *totalOrders, elapsed.Truncate(time.Millisecond), ordersPerSec)
	fmt.Printf("trades=%d amends=%d cancels=%d rejects=%d\n", trades, amends, cancels, rejects)

	if top, err := eng.TopOfBook(*symbol); err == nil {
		fmt.Printf("final top of book: bid %v x %v / ask %v x %v\n",
			top.BidQuantity, top.BidPrice, top.AskQuantity, top.AskPrice)
	}
}

func nextRandomOrder(rng *rand.Rand, id int, symbol string, mid float64, width int, tick float64) *domain.Order {
	side := domain.SideBuy
	if rng.Intn(2) == 1 {
		side = domain.SideSell
	}
	qty := rng.Int63n(500) + 1
	return domain.NewOrder(symbol, side, qty, randomPrice(rng, side, mid, width, tick), "lg-"+strconv.Itoa(id))
}

// randomPrice keeps buys at or below the mid and sells at or above it,
// so crossing stays occasional rather than constant.
func randomPrice(rng *rand.Rand, side domain.Side, mid float64, width int, tick float64) float64 {
	offset := float64(rng.Intn(width)) * tick
	if side == domain.SideBuy {
		price := mid - offset + tick
		if price < tick {
			price = tick
		}
		return price
	}
	return mid + offset - tick
}

// randomSnapshot builds a well-formed depth-10 snapshot around the mid:
// bids at indices 0..4 (best last), asks at 5..9 (best first).
func randomSnapshot(rng *rand.Rand, symbol string, mid float64, tick float64) domain.MarketSnapshot {
	prices := make([]float64, domain.SnapshotDepth)
	quantities := make([]int64, domain.SnapshotDepth)
	for i := 0; i <= domain.SnapshotBestBidIndex; i++ {
		prices[i] = mid - float64(domain.SnapshotBestBidIndex-i+1)*tick
		quantities[i] = rng.Int63n(2000) + 100
	}
	for i := domain.SnapshotBestAskIndex; i < domain.SnapshotDepth; i++ {
		prices[i] = mid + float64(i-domain.SnapshotBestAskIndex+1)*tick
		quantities[i] = rng.Int63n(2000) + 100
	}
	return domain.MarketSnapshot{Symbol: symbol, Prices: prices, Quantities: quantities}
}
