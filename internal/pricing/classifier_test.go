package pricing

import (
	"encoding/json"
	"fmt"
	"reflect"
	"testing"
	"time"

	"price-display-api/internal/models"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func priced(store string, price float64, updated time.Time) models.Offer {
	return models.Offer{
		Store:       store,
		Price:       models.Price{Value: price, Valid: true},
		LastUpdated: updated.Format(time.RFC3339),
	}
}

func unpriced(store string) models.Offer {
	return models.Offer{Store: store}
}

func stores(offers []models.Offer) []string {
	names := make([]string, 0, len(offers))
	for _, o := range offers {
		names = append(names, o.Store)
	}
	return names
}

func TestClassifyFreshVsStale(t *testing.T) {
	offers := []models.Offer{
		priced("X", 100, testNow.Add(-1*time.Hour)),
		priced("Y", 90, testNow.Add(-30*24*time.Hour)),
	}

	cls := Classify(offers, testNow, 24*time.Hour)

	if got := stores(cls.Fresh); !reflect.DeepEqual(got, []string{"X"}) {
		t.Errorf("fresh = %v, want [X]", got)
	}
	if got := stores(cls.Stale); !reflect.DeepEqual(got, []string{"Y"}) {
		t.Errorf("stale = %v, want [Y]", got)
	}
	if cls.Best == nil || cls.Best.Store != "X" {
		t.Errorf("best = %v, want X", cls.Best)
	}
}

func TestClassifyUnpricedOnly(t *testing.T) {
	cls := Classify([]models.Offer{unpriced("Z")}, testNow, 24*time.Hour)

	if len(cls.Fresh) != 0 || len(cls.Stale) != 0 {
		t.Errorf("expected empty fresh/stale, got %v / %v", cls.Fresh, cls.Stale)
	}
	if got := stores(cls.Unpriced); !reflect.DeepEqual(got, []string{"Z"}) {
		t.Errorf("unpriced = %v, want [Z]", got)
	}
	if cls.Best != nil {
		t.Errorf("best = %v, want nil", cls.Best)
	}
}

func TestClassifyTieBreakIsInputOrder(t *testing.T) {
	offers := []models.Offer{
		priced("A", 50, testNow.Add(-10*time.Minute)),
		priced("B", 50, testNow.Add(-5*time.Minute)),
	}

	cls := Classify(offers, testNow, 24*time.Hour)

	if got := stores(cls.Fresh); !reflect.DeepEqual(got, []string{"A", "B"}) {
		t.Errorf("fresh = %v, want [A B]", got)
	}
	if cls.Best == nil || cls.Best.Store != "A" {
		t.Errorf("best = %v, want A (first of the tied offers)", cls.Best)
	}
}

func TestClassifyEmptyInput(t *testing.T) {
	cls := Classify(nil, testNow, 24*time.Hour)

	if cls.Total() != 0 {
		t.Errorf("expected all buckets empty, got %d offers", cls.Total())
	}
	if cls.Best != nil {
		t.Errorf("best = %v, want nil", cls.Best)
	}
}

func TestClassifyMissingTimestampIsStale(t *testing.T) {
	offers := []models.Offer{
		{Store: "NoDate", Price: models.Price{Value: 75, Valid: true}},
	}

	cls := Classify(offers, testNow, 24*time.Hour)

	if got := stores(cls.Stale); !reflect.DeepEqual(got, []string{"NoDate"}) {
		t.Errorf("stale = %v, want [NoDate]", got)
	}
	if cls.Best != nil {
		t.Errorf("best = %v, want nil (no fresh offers)", cls.Best)
	}
}

func TestClassifyUnparseableTimestampIsStale(t *testing.T) {
	offers := []models.Offer{
		{Store: "BadDate", Price: models.Price{Value: 75, Valid: true}, LastUpdated: "yesterday-ish"},
	}

	cls := Classify(offers, testNow, 24*time.Hour)

	if got := stores(cls.Stale); !reflect.DeepEqual(got, []string{"BadDate"}) {
		t.Errorf("stale = %v, want [BadDate]", got)
	}
}

func TestClassifyNegativeAndZeroPricesAreValid(t *testing.T) {
	offers := []models.Offer{
		priced("Zero", 0, testNow.Add(-time.Hour)),
		priced("Negative", -10, testNow.Add(-time.Hour)),
	}

	cls := Classify(offers, testNow, 24*time.Hour)

	if got := stores(cls.Fresh); !reflect.DeepEqual(got, []string{"Negative", "Zero"}) {
		t.Errorf("fresh = %v, want [Negative Zero]", got)
	}
	if cls.Best == nil || cls.Best.Store != "Negative" {
		t.Errorf("best = %v, want Negative", cls.Best)
	}
}

func TestClassifySortsAscendingWithinBuckets(t *testing.T) {
	offers := []models.Offer{
		priced("F3", 300, testNow.Add(-time.Hour)),
		priced("S2", 250, testNow.Add(-72*time.Hour)),
		priced("F1", 100, testNow.Add(-2*time.Hour)),
		priced("S1", 150, testNow.Add(-48*time.Hour)),
		priced("F2", 200, testNow.Add(-3*time.Hour)),
	}

	cls := Classify(offers, testNow, 24*time.Hour)

	if got := stores(cls.Fresh); !reflect.DeepEqual(got, []string{"F1", "F2", "F3"}) {
		t.Errorf("fresh = %v, want [F1 F2 F3]", got)
	}
	if got := stores(cls.Stale); !reflect.DeepEqual(got, []string{"S1", "S2"}) {
		t.Errorf("stale = %v, want [S1 S2]", got)
	}
}

func TestClassifyPartitionsExactly(t *testing.T) {
	offers := []models.Offer{
		priced("A", 10, testNow.Add(-time.Hour)),
		unpriced("B"),
		priced("C", 5, testNow.Add(-100*time.Hour)),
		{Store: "D", Price: models.Price{Value: 20, Valid: true}, LastUpdated: "???"},
		unpriced("E"),
	}

	cls := Classify(offers, testNow, 24*time.Hour)

	if cls.Total() != len(offers) {
		t.Fatalf("partition lost or duplicated offers: %d in, %d out", len(offers), cls.Total())
	}

	seen := map[string]int{}
	for _, o := range append(append(append([]models.Offer{}, cls.Fresh...), cls.Stale...), cls.Unpriced...) {
		seen[o.Store]++
	}
	for _, o := range offers {
		if seen[o.Store] != 1 {
			t.Errorf("offer %s appears %d times across buckets, want exactly 1", o.Store, seen[o.Store])
		}
	}
}

// A feed null price must land in the unpriced bucket after decoding,
// never as a valid $0 offer that would undercut every real price.
func TestClassifyNullPriceFromFeedIsUnpriced(t *testing.T) {
	payload := fmt.Sprintf(`[
		{"store": "Real", "price": 100, "lastUpdated": %q},
		{"store": "Null", "price": null, "lastUpdated": %q}
	]`, testNow.Add(-time.Hour).Format(time.RFC3339), testNow.Add(-time.Hour).Format(time.RFC3339))

	var offers []models.Offer
	if err := json.Unmarshal([]byte(payload), &offers); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if offers[1].Priced() {
		t.Fatalf("null price decoded as priced: %+v", offers[1].Price)
	}

	cls := Classify(offers, testNow, 24*time.Hour)

	if got := stores(cls.Unpriced); !reflect.DeepEqual(got, []string{"Null"}) {
		t.Errorf("unpriced = %v, want [Null]", got)
	}
	if cls.Best == nil || cls.Best.Store != "Real" {
		t.Errorf("best = %v, want Real (null offer must not win at $0)", cls.Best)
	}
}

func TestClassifyWindowIsConfigurable(t *testing.T) {
	offers := []models.Offer{
		priced("A", 100, testNow.Add(-3*time.Hour)),
	}

	if cls := Classify(offers, testNow, 2*time.Hour); len(cls.Fresh) != 0 {
		t.Errorf("3h-old offer fresh under 2h window")
	}
	if cls := Classify(offers, testNow, 24*time.Hour); len(cls.Fresh) != 1 {
		t.Errorf("3h-old offer not fresh under 24h window")
	}
	if cls := Classify(offers, testNow, 7*24*time.Hour); len(cls.Fresh) != 1 {
		t.Errorf("3h-old offer not fresh under 7d window")
	}
}

func TestClassifyIsIdempotent(t *testing.T) {
	offers := []models.Offer{
		priced("A", 10, testNow.Add(-time.Hour)),
		priced("B", 5, testNow.Add(-100*time.Hour)),
		unpriced("C"),
	}

	first := Classify(offers, testNow, 24*time.Hour)
	second := Classify(offers, testNow, 24*time.Hour)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated classification differs:\n%v\n%v", first, second)
	}
}

func TestClassifyDoesNotMutateInput(t *testing.T) {
	offers := []models.Offer{
		priced("B", 200, testNow.Add(-time.Hour)),
		priced("A", 100, testNow.Add(-time.Hour)),
	}
	snapshot := make([]models.Offer, len(offers))
	copy(snapshot, offers)

	Classify(offers, testNow, 24*time.Hour)

	if !reflect.DeepEqual(offers, snapshot) {
		t.Errorf("input slice mutated: %v", offers)
	}
}
