package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shoplytics/shoplytics/internal/datastore"
	"github.com/shoplytics/shoplytics/internal/models"
)

// RegisterDatasetRoutes exposes the three generated record streams to the
// presentation layer.
//
// GET /datasets           — bundle metadata (run id, seed, record counts)
// GET /datasets/users     — user population
// GET /datasets/products  — product catalog
// GET /datasets/events    — event log, optionally windowed by from/to
func RegisterDatasetRoutes(r gin.IRoutes, st *datastore.Store) {
	r.GET("/datasets", func(c *gin.Context) {
		ds := st.Current()
		if ds == nil {
			c.JSON(http.StatusOK, gin.H{"run_id": "", "users": 0, "products": 0, "events": 0})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"run_id":   ds.RunID,
			"seed":     ds.Seed,
			"users":    len(ds.Users),
			"products": len(ds.Products),
			"events":   len(ds.Events),
		})
	})

	r.GET("/datasets/users", func(c *gin.Context) {
		users := []models.User{}
		if ds := st.Current(); ds != nil {
			users = ds.Users
		}
		c.JSON(http.StatusOK, gin.H{"users": users})
	})

	r.GET("/datasets/products", func(c *gin.Context) {
		products := []models.Product{}
		if ds := st.Current(); ds != nil {
			products = ds.Products
		}
		c.JSON(http.StatusOK, gin.H{"products": products})
	})

	r.GET("/datasets/events", func(c *gin.Context) {
		events, _, ok := windowedEvents(c, st)
		if !ok {
			return
		}
		if events == nil {
			events = []models.Event{}
		}
		c.JSON(http.StatusOK, gin.H{"events": events})
	})
}
