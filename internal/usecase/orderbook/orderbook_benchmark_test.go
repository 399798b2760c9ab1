package orderbook

import (
	"testing"

	"github.com/H-A-R-S-H-K/Scaler-HFT-2027/pkg/clock"
)

func BenchmarkBook_RestLimitOrders(b *testing.B) {
	book := NewBook(clock.NewManual(1))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		// Spread orders across 1000 bid levels.
		price := 100.0 + float64(i%1000)*0.01
		book.AddOrder(limit(uint64(i+1), true, price, 10))
	}
}

func BenchmarkBook_MatchAgainstDeepLevel(b *testing.B) {
	book := NewBook(clock.NewManual(1))
	for i := 0; i < 10_000; i++ {
		book.AddOrder(limit(uint64(i+1), false, 100.0, 1))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		// Market ids live in a separate range so refills never collide.
		book.AddOrder(market(1<<40|uint64(i), true, 1))
		if book.RestingOrders() == 0 {
			b.StopTimer()
			for j := 0; j < 10_000; j++ {
				book.AddOrder(limit(uint64(i+1)*1_000_000+uint64(j), false, 100.0, 1))
			}
			b.StartTimer()
		}
	}
}

func BenchmarkBook_CancelReplace(b *testing.B) {
	book := NewBook(clock.NewManual(1))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		id := uint64(i + 1)
		book.AddOrder(limit(id, true, 99.0+float64(i%100)*0.01, 10))
		book.CancelOrder(id)
	}
}

func BenchmarkBook_Snapshot(b *testing.B) {
	book := NewBook(clock.NewManual(1))
	for i := 0; i < 1_000; i++ {
		book.AddOrder(limit(uint64(i+1), i%2 == 0, 100.0+float64(i)*0.01, 10))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		book.Snapshot(50)
	}
}
