package analytics

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/shoplytics/shoplytics/internal/models"
)

// RFMRecord is the per-customer recency/frequency/monetary scorecard.
// Scores are quantile-based (5 bins when the data supports it); the segment
// label is a fixed threshold function of the summed score.
type RFMRecord struct {
	UserID    string  `json:"user_id"`
	Recency   int     `json:"recency"` // days since last purchase at the evaluation instant
	Frequency int     `json:"frequency"`
	Monetary  float64 `json:"monetary"`
	RScore    int     `json:"r_score"`
	FScore    int     `json:"f_score"`
	MScore    int     `json:"m_score"`
	Score     int     `json:"rfm_score"`
	Segment   string  `json:"segment"`
}

// RFM segment thresholds on the summed score (range 3..15).
func rfmSegment(score int) string {
	switch {
	case score >= 13:
		return "Champions"
	case score >= 10:
		return "Loyal Customers"
	case score >= 8:
		return "At Risk"
	case score >= 6:
		return "Can't Lose"
	default:
		return "Lost"
	}
}

// ComputeRFM scores every user with at least one purchase event. Users with
// no purchases are excluded; an event log with no purchases at all yields an
// empty slice, not an error. Results are ordered by user ID.
func ComputeRFM(events []models.Event, evalTime time.Time) []RFMRecord {
	type agg struct {
		last     time.Time
		count    int
		monetary float64
	}
	byUser := make(map[string]*agg)
	for _, ev := range events {
		if ev.Type != models.EventPurchase {
			continue
		}
		a := byUser[ev.UserID]
		if a == nil {
			a = &agg{}
			byUser[ev.UserID] = a
		}
		if ev.Timestamp.After(a.last) {
			a.last = ev.Timestamp
		}
		a.count++
		a.monetary += ev.Price * float64(ev.Quantity)
	}
	if len(byUser) == 0 {
		return nil
	}

	records := make([]RFMRecord, 0, len(byUser))
	for userID, a := range byUser {
		records = append(records, RFMRecord{
			UserID:    userID,
			Recency:   int(evalTime.Sub(a.last).Hours() / 24),
			Frequency: a.count,
			Monetary:  a.monetary,
		})
	}
	sort.Slice(records, func(i, j int) bool { return records[i].UserID < records[j].UserID })

	recency := make([]float64, len(records))
	frequency := make([]float64, len(records))
	monetary := make([]float64, len(records))
	for i, rec := range records {
		recency[i] = float64(rec.Recency)
		frequency[i] = float64(rec.Frequency)
		monetary[i] = rec.Monetary
	}

	// Recency is scored inverted: the most recent buyers get the top score.
	rScores := quantileScores(recency, 5, true)
	fScores := quantileScores(frequency, 5, false)
	mScores := quantileScores(monetary, 5, false)

	for i := range records {
		records[i].RScore = rScores[i]
		records[i].FScore = fScores[i]
		records[i].MScore = mScores[i]
		records[i].Score = rScores[i] + fScores[i] + mScores[i]
		records[i].Segment = rfmSegment(records[i].Score)
	}
	return records
}

// quantileScores bins values into up to q equal-population bins and returns
// a 1-based score per value. Duplicate bin edges are dropped, so
// low-cardinality input degrades to fewer bins instead of failing; with d
// distinct values the scores form an order-preserving subset of 1..q.
// When inverted, the lowest bin receives the highest score.
func quantileScores(values []float64, q int, inverted bool) []int {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	edges := make([]float64, 0, q-1)
	for i := 1; i < q; i++ {
		e := stat.Quantile(float64(i)/float64(q), stat.LinInterp, sorted, nil)
		if len(edges) == 0 || e > edges[len(edges)-1] {
			edges = append(edges, e)
		}
	}
	bins := len(edges) + 1

	scores := make([]int, len(values))
	for i, v := range values {
		bin := bins - 1
		for j, e := range edges {
			if v <= e {
				bin = j
				break
			}
		}
		if inverted {
			scores[i] = bins - bin
		} else {
			scores[i] = bin + 1
		}
	}
	return scores
}
