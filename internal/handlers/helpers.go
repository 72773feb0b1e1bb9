package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shoplytics/shoplytics/internal/analytics"
	"github.com/shoplytics/shoplytics/internal/datastore"
	"github.com/shoplytics/shoplytics/internal/models"
)

// windowedEvents resolves the current dataset and applies the optional
// half-open [from,to) window from the query string. It writes the error
// response itself and reports ok=false when the request is malformed.
// A nil or empty dataset degrades to an empty slice, never an error.
func windowedEvents(c *gin.Context, st *datastore.Store) (events []models.Event, to time.Time, ok bool) {
	from, to, ok := parseWindow(c)
	if !ok {
		return nil, time.Time{}, false
	}
	ds := st.Current()
	if ds == nil {
		return nil, to, true
	}
	return analytics.FilterWindow(ds.Events, from, to), to, true
}

// parseWindow reads optional from/to RFC3339 query params and validates the
// window. Missing bounds are open.
func parseWindow(c *gin.Context) (from, to time.Time, ok bool) {
	var err error
	if v := c.Query("from"); v != "" {
		if from, err = time.Parse(time.RFC3339, v); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from must be RFC3339"})
			return time.Time{}, time.Time{}, false
		}
		from = from.UTC()
	}
	if v := c.Query("to"); v != "" {
		if to, err = time.Parse(time.RFC3339, v); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "to must be RFC3339"})
			return time.Time{}, time.Time{}, false
		}
		to = to.UTC()
	}
	if !from.IsZero() && !to.IsZero() && !from.Before(to) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from must be < to"})
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}
