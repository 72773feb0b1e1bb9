package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shoplytics/shoplytics/internal/analytics"
	"github.com/shoplytics/shoplytics/internal/datastore"
	"github.com/shoplytics/shoplytics/internal/models"
)

// RegisterMetricRoutes registers the serving-path endpoints of the metric
// engine. Every endpoint accepts an optional from/to RFC3339 window
// (half-open [from,to)) and computes over the filtered event log. Windows
// with no data return explicitly empty results, never errors.
//
// GET /metrics/summary      — headline KPIs
// GET /metrics/funnel       — session conversion funnel
// GET /metrics/rfm          — per-customer RFM scorecards
// GET /metrics/clusters     — behavioral k-means profiles
// GET /metrics/event-types  — event type distribution
// GET /metrics/categories   — product views per category
// GET /metrics/timeseries   — daily event counts
// GET /metrics/segments     — event volume per generator segment
func RegisterMetricRoutes(r gin.IRoutes, st *datastore.Store) {
	r.GET("/metrics/summary", func(c *gin.Context) {
		events, _, ok := windowedEvents(c, st)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, analytics.ComputeSummary(events))
	})

	r.GET("/metrics/funnel", func(c *gin.Context) {
		events, _, ok := windowedEvents(c, st)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, analytics.ComputeFunnel(events))
	})

	r.GET("/metrics/rfm", func(c *gin.Context) {
		events, to, ok := windowedEvents(c, st)
		if !ok {
			return
		}
		// Recency is measured against the window end when given, so a
		// historical window scores as of that moment.
		evalTime := to
		if evalTime.IsZero() {
			evalTime = time.Now().UTC()
		}
		records := analytics.ComputeRFM(events, evalTime)
		if records == nil {
			records = []analytics.RFMRecord{}
		}
		c.JSON(http.StatusOK, gin.H{"customers": records})
	})

	r.GET("/metrics/clusters", func(c *gin.Context) {
		events, _, ok := windowedEvents(c, st)
		if !ok {
			return
		}
		seed := uint64(0)
		if ds := st.Current(); ds != nil {
			seed = ds.Seed
		}
		profiles := analytics.ComputeBehavioralClusters(events, seed)
		if profiles == nil {
			profiles = []analytics.BehavioralProfile{}
		}
		c.JSON(http.StatusOK, gin.H{"profiles": profiles})
	})

	r.GET("/metrics/event-types", func(c *gin.Context) {
		events, _, ok := windowedEvents(c, st)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"counts": orEmptyTypes(analytics.EventTypeCounts(events))})
	})

	r.GET("/metrics/categories", func(c *gin.Context) {
		events, _, ok := windowedEvents(c, st)
		if !ok {
			return
		}
		counts := analytics.ViewsByCategory(events)
		if counts == nil {
			counts = []analytics.CategoryCount{}
		}
		c.JSON(http.StatusOK, gin.H{"categories": counts})
	})

	r.GET("/metrics/timeseries", func(c *gin.Context) {
		events, _, ok := windowedEvents(c, st)
		if !ok {
			return
		}
		days := analytics.DailyEventCounts(events)
		if days == nil {
			days = []analytics.DailyCount{}
		}
		c.JSON(http.StatusOK, gin.H{"days": days})
	})

	r.GET("/metrics/segments", func(c *gin.Context) {
		events, _, ok := windowedEvents(c, st)
		if !ok {
			return
		}
		var users []models.User
		if ds := st.Current(); ds != nil {
			users = ds.Users
		}
		counts := analytics.SegmentActivity(events, users)
		if counts == nil {
			counts = []analytics.SegmentCount{}
		}
		c.JSON(http.StatusOK, gin.H{"segments": counts})
	})
}

func orEmptyTypes(counts []analytics.TypeCount) []analytics.TypeCount {
	if counts == nil {
		return []analytics.TypeCount{}
	}
	return counts
}
