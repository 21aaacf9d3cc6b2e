package library

import (
	"fmt"
	"testing"
	"time"

	"pgregory.net/rapid"
)

// ============================================================================
// Property-Based Tests for Catalog Invariants
// ============================================================================

// TestProperty_CirculationKeepsCountsConsistent drives a random sequence of
// checkouts and returns and checks that quantities never go negative, that
// copies on the shelf plus outstanding loans stay constant per book, and
// that transaction IDs run 1..n.
func TestProperty_CirculationKeepsCountsConsistent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		clock := NewFixedClock(epoch)
		mgr, err := NewManager(WithClock(clock))
		if err != nil {
			t.Fatalf("new manager: %v", err)
		}

		numBooks := rapid.IntRange(1, 4).Draw(t, "numBooks")
		stock := make(map[string]int)
		for i := 0; i < numBooks; i++ {
			isbn := fmt.Sprintf("ISBN%d", i)
			qty := rapid.IntRange(0, 3).Draw(t, "qty-"+isbn)
			stock[isbn] = qty
			if err := mgr.AddBook(admin, Book{Title: isbn, ISBN: isbn, Quantity: qty}); err != nil {
				t.Fatalf("add book: %v", err)
			}
		}
		if err := mgr.AddPatron(admin, reader); err != nil {
			t.Fatalf("add patron: %v", err)
		}

		steps := rapid.IntRange(1, 30).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			clock.Advance(time.Duration(rapid.IntRange(0, 72).Draw(t, "hours")) * time.Hour)
			if rapid.Bool().Draw(t, "checkout") {
				isbn := fmt.Sprintf("ISBN%d", rapid.IntRange(0, numBooks-1).Draw(t, "book"))
				before, _ := mgr.FindBook(isbn)
				_, err := mgr.CheckoutBook(librarian, isbn, reader.ID)
				after, _ := mgr.FindBook(isbn)
				switch {
				case before.Quantity == 0 && err == nil:
					t.Fatalf("checkout of %s succeeded with no copies", isbn)
				case before.Quantity > 0 && (err != nil || after.Quantity != before.Quantity-1):
					t.Fatalf("checkout of %s: err=%v qty %d -> %d", isbn, err, before.Quantity, after.Quantity)
				}
			} else {
				report, _ := mgr.GenerateReport(admin)
				if len(report.Transactions) == 0 {
					continue
				}
				id := rapid.IntRange(1, len(report.Transactions)).Draw(t, "tx")
				_, _ = mgr.ReturnBook(librarian, id)
			}
		}

		report, err := mgr.GenerateReport(admin)
		if err != nil {
			t.Fatalf("report: %v", err)
		}
		out := make(map[string]int)
		for i, tx := range report.Transactions {
			if tx.ID != i+1 {
				t.Fatalf("transaction %d has id %d", i, tx.ID)
			}
			if !tx.DueDate.Equal(DueDate(tx.CheckoutDate)) {
				t.Fatalf("transaction %d due %v, checked out %v", tx.ID, tx.DueDate, tx.CheckoutDate)
			}
			if tx.Outstanding() {
				out[tx.ISBN]++
			} else if tx.Fine != CalculateFine(tx.DueDate, *tx.ReturnDate) {
				t.Fatalf("transaction %d fine %v", tx.ID, tx.Fine)
			}
		}
		for _, b := range report.Books {
			if b.Quantity < 0 {
				t.Fatalf("book %s has negative quantity %d", b.ISBN, b.Quantity)
			}
			if b.Quantity+out[b.ISBN] != stock[b.ISBN] {
				t.Fatalf("book %s: %d on shelf + %d out != %d stocked", b.ISBN, b.Quantity, out[b.ISBN], stock[b.ISBN])
			}
		}
	})
}

// TestProperty_FineIsHalfPerWholeLateDay checks the fine rule over arbitrary
// return offsets relative to the due date.
func TestProperty_FineIsHalfPerWholeLateDay(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		due := DueDate(epoch)
		offset := time.Duration(rapid.Int64Range(-30*24*3600, 60*24*3600).Draw(t, "offsetSeconds")) * time.Second
		fine := CalculateFine(due, due.Add(offset))

		if offset <= 0 {
			if fine != 0 {
				t.Fatalf("early return at %v fined %v", offset, fine)
			}
			return
		}
		days := int(offset / (24 * time.Hour))
		if fine != float64(days)*FinePerDay {
			t.Fatalf("offset %v: fine %v, want %v", offset, fine, float64(days)*FinePerDay)
		}
	})
}
