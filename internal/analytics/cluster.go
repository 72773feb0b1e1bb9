package analytics

import (
	"math"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/shoplytics/shoplytics/internal/models"
)

// BehavioralProfile aggregates one user's engagement and spend features plus
// the k-means cluster assignment. Cluster is -1 (and Segment empty) when the
// population is too small to cluster.
type BehavioralProfile struct {
	UserID           string  `json:"user_id"`
	Sessions         int     `json:"sessions"`
	Events           int     `json:"events"`
	ProductsViewed   int     `json:"products_viewed"`
	CategoriesViewed int     `json:"categories_viewed"`
	PurchaseCount    int     `json:"purchase_count"`
	TotalSpent       float64 `json:"total_spent"`
	Cluster          int     `json:"cluster"`
	Segment          string  `json:"segment"`
}

// numClusters is fixed: the behavioral model names exactly four segments.
const numClusters = 4

// clusterNames maps cluster index → descriptive label. The mapping is stable
// for a fixed seed because initialization and tie-breaking are deterministic,
// but the index→behavior correspondence is best-effort, not semantic.
var clusterNames = [numClusters]string{
	"Casual Browsers",
	"Active Shoppers",
	"High-Value Customers",
	"Occasional Buyers",
}

const (
	kmeansRestarts = 10
	kmeansMaxIter  = 300
)

// ComputeBehavioralClusters builds one feature vector per user appearing in
// the event log, standardizes each feature to zero mean and unit variance,
// and partitions users into four clusters by k-means (10 restarts, lowest
// inertia kept). Fewer users than clusters degrades to unclustered profiles.
// Results are ordered by user ID; a fixed seed reproduces assignments.
func ComputeBehavioralClusters(events []models.Event, seed uint64) []BehavioralProfile {
	profiles := buildProfiles(events)
	if len(profiles) == 0 {
		return nil
	}
	if len(profiles) < numClusters {
		return profiles
	}

	features := make([][]float64, len(profiles))
	for i, p := range profiles {
		features[i] = []float64{
			float64(p.Sessions),
			float64(p.Events),
			float64(p.ProductsViewed),
			float64(p.CategoriesViewed),
			float64(p.PurchaseCount),
			p.TotalSpent,
		}
	}
	standardize(features)

	r := rand.New(rand.NewPCG(seed, seed))
	assignments, _ := kmeans(features, numClusters, kmeansRestarts, kmeansMaxIter, r)
	for i := range profiles {
		profiles[i].Cluster = assignments[i]
		profiles[i].Segment = clusterNames[assignments[i]]
	}
	return profiles
}

// buildProfiles aggregates raw per-user features, sorted by user ID.
func buildProfiles(events []models.Event) []BehavioralProfile {
	type agg struct {
		sessions   map[string]bool
		products   map[string]bool
		categories map[string]bool
		events     int
		purchases  int
		spent      float64
	}
	byUser := make(map[string]*agg)
	for _, ev := range events {
		a := byUser[ev.UserID]
		if a == nil {
			a = &agg{
				sessions:   map[string]bool{},
				products:   map[string]bool{},
				categories: map[string]bool{},
			}
			byUser[ev.UserID] = a
		}
		a.events++
		a.sessions[ev.SessionID] = true
		if ev.HasProduct() {
			a.products[ev.ProductID] = true
			a.categories[ev.Category] = true
		}
		if ev.Type == models.EventPurchase {
			a.purchases++
			a.spent += ev.Price * float64(ev.Quantity)
		}
	}

	profiles := make([]BehavioralProfile, 0, len(byUser))
	for userID, a := range byUser {
		profiles = append(profiles, BehavioralProfile{
			UserID:           userID,
			Sessions:         len(a.sessions),
			Events:           a.events,
			ProductsViewed:   len(a.products),
			CategoriesViewed: len(a.categories),
			PurchaseCount:    a.purchases,
			TotalSpent:       a.spent,
			Cluster:          -1,
		})
	}
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].UserID < profiles[j].UserID })
	return profiles
}

// standardize scales each feature column to zero mean and unit variance in
// place. A constant column is left at zero rather than dividing by zero.
func standardize(features [][]float64) {
	if len(features) == 0 {
		return
	}
	dims := len(features[0])
	col := make([]float64, len(features))
	for d := 0; d < dims; d++ {
		for i := range features {
			col[i] = features[i][d]
		}
		mean := stat.Mean(col, nil)
		std := math.Sqrt(stat.PopVariance(col, nil))
		for i := range features {
			if std == 0 {
				features[i][d] = 0
			} else {
				features[i][d] = (features[i][d] - mean) / std
			}
		}
	}
}

// kmeans runs Lloyd's algorithm with multiple random-point initializations
// and keeps the assignment with the lowest inertia. Ties in distance break
// toward the lower cluster index, which keeps runs deterministic for a fixed
// random source.
func kmeans(points [][]float64, k, restarts, maxIter int, r *rand.Rand) ([]int, float64) {
	best := make([]int, len(points))
	bestInertia := math.Inf(1)

	for restart := 0; restart < restarts; restart++ {
		centroids := initialCentroids(points, k, r)
		assign := make([]int, len(points))

		for iter := 0; iter < maxIter; iter++ {
			changed := false
			for i, p := range points {
				c := nearestCentroid(p, centroids)
				if c != assign[i] {
					assign[i] = c
					changed = true
				}
			}
			recomputeCentroids(points, assign, centroids)
			if !changed && iter > 0 {
				break
			}
		}

		inertia := 0.0
		for i, p := range points {
			inertia += squaredDistance(p, centroids[assign[i]])
		}
		if inertia < bestInertia {
			bestInertia = inertia
			copy(best, assign)
		}
	}
	return best, bestInertia
}

// initialCentroids picks k distinct points as starting centroids.
func initialCentroids(points [][]float64, k int, r *rand.Rand) [][]float64 {
	idx := make([]int, len(points))
	for i := range idx {
		idx[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + r.IntN(len(idx)-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	centroids := make([][]float64, k)
	for i := 0; i < k; i++ {
		c := make([]float64, len(points[idx[i]]))
		copy(c, points[idx[i]])
		centroids[i] = c
	}
	return centroids
}

func nearestCentroid(p []float64, centroids [][]float64) int {
	bestIdx, bestDist := 0, math.Inf(1)
	for c, centroid := range centroids {
		if d := squaredDistance(p, centroid); d < bestDist {
			bestIdx, bestDist = c, d
		}
	}
	return bestIdx
}

// recomputeCentroids moves each centroid to the mean of its members. An
// empty cluster keeps its previous centroid.
func recomputeCentroids(points [][]float64, assign []int, centroids [][]float64) {
	counts := make([]int, len(centroids))
	sums := make([][]float64, len(centroids))
	for c := range sums {
		sums[c] = make([]float64, len(centroids[c]))
	}
	for i, p := range points {
		counts[assign[i]]++
		for d, v := range p {
			sums[assign[i]][d] += v
		}
	}
	for c := range centroids {
		if counts[c] == 0 {
			continue
		}
		for d := range centroids[c] {
			centroids[c][d] = sums[c][d] / float64(counts[c])
		}
	}
}

func squaredDistance(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
