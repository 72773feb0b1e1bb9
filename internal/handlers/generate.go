package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shoplytics/shoplytics/internal/datastore"
	"github.com/shoplytics/shoplytics/internal/generator"
	"github.com/shoplytics/shoplytics/internal/models"
)

// GenerateRequest is the POST /generate payload. Omitted fields keep the
// boot-time configuration.
type GenerateRequest struct {
	Seed     *uint64 `json:"seed,omitempty"`
	NumUsers *int    `json:"num_users,omitempty"`
	NumDays  *int    `json:"num_days,omitempty"`
}

// RegisterGenerateRoutes registers the regeneration endpoint.
//
// POST /generate
// - Re-runs the full generation pipeline and swaps the served dataset
// - Persists the CSV bundle when a data directory is configured
// - Invalid parameters are rejected up front; nothing is swapped on failure
func RegisterGenerateRoutes(r gin.IRoutes, st *datastore.Store, base generator.Config, dataDir string) {
	r.POST("/generate", func(c *gin.Context) {
		cfg := base
		if c.Request.ContentLength != 0 {
			var req GenerateRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON payload"})
				return
			}
			if req.Seed != nil {
				cfg.Seed = *req.Seed
			}
			if req.NumUsers != nil {
				cfg.NumUsers = *req.NumUsers
			}
			if req.NumDays != nil {
				cfg.Days = *req.NumDays
			}
		}

		ds, err := generator.Generate(cfg)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if dataDir != "" {
			if err := datastore.WriteBundle(dataDir, ds); err != nil {
				// The in-memory dataset is still good; report but serve it.
				log.Printf("persist bundle: %v", err)
			}
		}
		st.Replace(ds)

		c.JSON(http.StatusCreated, datasetInfo(ds))
	})
}

func datasetInfo(ds *models.Dataset) gin.H {
	return gin.H{
		"run_id":   ds.RunID,
		"seed":     ds.Seed,
		"users":    len(ds.Users),
		"products": len(ds.Products),
		"events":   len(ds.Events),
	}
}
