package fixtures

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// manualAddReq is a manually entered fixture. All four core fields are
// required up front; this never reaches the AI boundary.
type manualAddReq struct {
	Opponent string `json:"opponent" binding:"required"`
	Date     string `json:"date" binding:"required"`
	Time     string `json:"time" binding:"required"`
	Venue    string `json:"venue" binding:"required"`
	HomeTeam string `json:"home_team"`
	MatchURL string `json:"match_url"`
}

// RegisterRoutes mounts the session match state operations.
// fallbackTeam fills home_team for manually added fixtures.
func RegisterRoutes(r *gin.Engine, store *Store, fallbackTeam string) {
	api := r.Group("/api")
	{
		api.GET("/matches", func(c *gin.Context) {
			c.JSON(http.StatusOK, store.List())
		})

		api.GET("/sources", func(c *gin.Context) {
			c.JSON(http.StatusOK, store.Sources())
		})

		api.POST("/matches", func(c *gin.Context) {
			var req manualAddReq
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "opponent, date, time and venue are required"})
				return
			}
			matches := Normalize([]RawMatch{{
				Date:     req.Date,
				Time:     req.Time,
				HomeTeam: req.HomeTeam,
				Opponent: req.Opponent,
				Venue:    req.Venue,
				MatchURL: req.MatchURL,
			}}, NormalizeOptions{FallbackTeam: fallbackTeam})
			store.Append(ExtractionResult{Matches: matches})
			c.JSON(http.StatusCreated, matches[0])
		})

		api.PATCH("/matches/:id", func(c *gin.Context) {
			var patch MatchPatch
			if err := c.BindJSON(&patch); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "bad json"})
				return
			}
			m, ok := store.Update(c.Param("id"), patch)
			if !ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
				return
			}
			c.JSON(http.StatusOK, m)
		})

		api.DELETE("/matches/:id", func(c *gin.Context) {
			if !store.Delete(c.Param("id")) {
				c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
				return
			}
			c.Status(http.StatusNoContent)
		})

		// Delete all matches
		api.DELETE("/matches", func(c *gin.Context) {
			store.Clear()
			c.Status(http.StatusNoContent)
		})
	}
}
