package extract

import (
	"encoding/base64"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/nrao/cricsync/internal/config"
	"github.com/nrao/cricsync/internal/fixtures"
	"github.com/nrao/cricsync/internal/gemini"
)

const noMatchGuidance = "No matches found between today and Sunday. You can add the match manually instead."

// LogBuffer holds the progress lines of the current flow. Append-only for
// the duration of one flow; handlers clear it before starting a new one.
type LogBuffer struct {
	mu    sync.Mutex
	lines []string
}

func (b *LogBuffer) Append(line string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = append(b.lines, line)
}

func (b *LogBuffer) Lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

func (b *LogBuffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = nil
}

type textReq struct {
	Text string `json:"text"`
}

type imageReq struct {
	// Image is base64-encoded image bytes, as captured by the UI.
	Image    string `json:"image"`
	MimeType string `json:"mime_type"`
}

// RegisterRoutes mounts the extraction flows. Extracted matches are
// appended to the session store; partial logs stay readable after a
// failure for diagnostics.
func RegisterRoutes(r *gin.Engine, svc *Service, store *fixtures.Store, logs *LogBuffer, team config.Team) {
	api := r.Group("/api")
	{
		api.POST("/extract/search", func(c *gin.Context) {
			var q SearchQuery
			if err := c.BindJSON(&q); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "bad json"})
				return
			}
			applyTeamDefaults(&q, team)
			if err := q.Validate(); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			logs.Clear()
			res, err := svc.Search(c.Request.Context(), q, logs.Append)
			if err != nil {
				c.JSON(http.StatusBadGateway, gin.H{"error": gemini.UserMessage(err), "logs": logs.Lines()})
				return
			}
			store.Append(res)
			guidance := ""
			if len(res.Matches) == 0 {
				guidance = noMatchGuidance
			}
			c.JSON(http.StatusOK, gin.H{
				"matches":  res.Matches,
				"sources":  res.Sources,
				"guidance": guidance,
				"logs":     logs.Lines(),
			})
		})

		api.POST("/extract/text", func(c *gin.Context) {
			var req textReq
			if err := c.BindJSON(&req); err != nil || strings.TrimSpace(req.Text) == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
				return
			}
			logs.Clear()
			res, err := svc.Text(c.Request.Context(), req.Text, logs.Append)
			if err != nil {
				c.JSON(http.StatusBadGateway, gin.H{"error": gemini.UserMessage(err), "logs": logs.Lines()})
				return
			}
			store.Append(res)
			c.JSON(http.StatusOK, gin.H{"matches": res.Matches, "sources": res.Sources, "logs": logs.Lines()})
		})

		api.POST("/extract/image", func(c *gin.Context) {
			var req imageReq
			if err := c.BindJSON(&req); err != nil || req.Image == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "image is required"})
				return
			}
			data, err := base64.StdEncoding.DecodeString(req.Image)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "image must be base64 encoded"})
				return
			}
			logs.Clear()
			res, err := svc.Image(c.Request.Context(), data, req.MimeType, logs.Append)
			if err != nil {
				c.JSON(http.StatusBadGateway, gin.H{"error": gemini.UserMessage(err), "logs": logs.Lines()})
				return
			}
			store.Append(res)
			c.JSON(http.StatusOK, gin.H{"matches": res.Matches, "sources": res.Sources, "logs": logs.Lines()})
		})

		// Deterministic import: CSV/XLSX straight through the normalizer,
		// no collaborator call.
		api.POST("/extract/import", func(c *gin.Context) {
			if err := c.Request.ParseMultipartForm(12 << 20); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "multipart too large"})
				return
			}
			fh, err := c.FormFile("file")
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "missing file"})
				return
			}
			raw, err := fixtures.ParseImport(fh)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			matches := fixtures.Normalize(raw, fixtures.NormalizeOptions{
				Location:     team.Location,
				FallbackTeam: team.Name,
			})
			store.Append(fixtures.ExtractionResult{Matches: matches})
			c.JSON(http.StatusOK, gin.H{"imported": len(matches), "matches": matches})
		})

		api.GET("/logs", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"logs": logs.Lines()})
		})
	}
}

// applyTeamDefaults fills blank detail-search fields from the configured
// profile so a bare request searches for the user's own team.
func applyTeamDefaults(q *SearchQuery, team config.Team) {
	if q.SearchType == "" {
		q.SearchType = "details"
	}
	if q.SearchType != "details" {
		return
	}
	if q.TeamName == "" {
		q.TeamName = team.Name
	}
	if q.Location == "" {
		q.Location = team.Location
	}
	if q.CaptainName == "" {
		q.CaptainName = team.Captain
	}
}
