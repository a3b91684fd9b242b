package compose

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nrao/cricsync/internal/config"
	"github.com/nrao/cricsync/internal/fixtures"
	"github.com/nrao/cricsync/internal/gemini"
	"github.com/nrao/cricsync/internal/history"
)

const posterRetryHint = "The model returned no image this time. Try generating the poster again."

type whatsappReq struct {
	Notes string `json:"notes"`
	Options
}

// RegisterRoutes mounts content generation, the share shortcut, and the
// generated-content history.
func RegisterRoutes(r *gin.Engine, comp *Composer, store *fixtures.Store, hist *history.Repo, defaults config.Defaults, log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}

	record := func(kind, content string) {
		if content == "" {
			return
		}
		if err := hist.Add(kind, content); err != nil {
			log.Warn("record history", zap.Error(err))
		}
	}

	mergeDefaults := func(o Options) Options {
		if o.Fees == "" {
			o.Fees = defaults.Fees
		}
		if o.PayTo == "" {
			o.PayTo = defaults.PayTo
		}
		if o.BallColor == "" {
			o.BallColor = defaults.BallColor
		}
		if o.Header == "" {
			o.Header = defaults.Header
		}
		return o
	}

	api := r.Group("/api")
	{
		api.POST("/generate/whatsapp", func(c *gin.Context) {
			var req whatsappReq
			if err := c.BindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "bad json"})
				return
			}
			msg, err := comp.WhatsApp(c.Request.Context(), store.List(), req.Notes, mergeDefaults(req.Options))
			if err != nil {
				c.JSON(http.StatusBadGateway, gin.H{"error": gemini.UserMessage(err)})
				return
			}
			if msg == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "no match selected"})
				return
			}
			record("whatsapp", msg)
			c.JSON(http.StatusOK, gin.H{"message": msg})
		})

		api.POST("/generate/instagram", func(c *gin.Context) {
			var opts InstagramOptions
			if err := c.BindJSON(&opts); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "bad json"})
				return
			}
			if opts.Type != "caption" && opts.Type != "story" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "type must be caption or story"})
				return
			}
			switch opts.Vibe {
			case "hype", "serious", "fun":
			case "":
				opts.Vibe = "hype"
			default:
				c.JSON(http.StatusBadRequest, gin.H{"error": "vibe must be hype, serious or fun"})
				return
			}
			msg, err := comp.Instagram(c.Request.Context(), store.List(), opts)
			if err != nil {
				c.JSON(http.StatusBadGateway, gin.H{"error": gemini.UserMessage(err)})
				return
			}
			if msg == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "no match selected"})
				return
			}
			record("instagram", msg)
			c.JSON(http.StatusOK, gin.H{"message": msg})
		})

		api.POST("/generate/poster", func(c *gin.Context) {
			if len(store.Selected()) == 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "no match selected"})
				return
			}
			img, err := comp.Poster(c.Request.Context(), store.List())
			if err != nil {
				c.JSON(http.StatusBadGateway, gin.H{"error": gemini.UserMessage(err)})
				return
			}
			if img == "" {
				// Empty is not an error; the caller shows a retry hint.
				c.JSON(http.StatusOK, gin.H{"image": "", "hint": posterRetryHint})
				return
			}
			c.JSON(http.StatusOK, gin.H{"image": img})
		})

		// Share one match: force a singleton selection and immediately
		// compose its availability message.
		api.POST("/matches/:id/share", func(c *gin.Context) {
			m, ok := store.Share(c.Param("id"))
			if !ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
				return
			}
			msg, err := comp.WhatsApp(c.Request.Context(), []fixtures.Match{m}, "", mergeDefaults(Options{}))
			if err != nil {
				c.JSON(http.StatusBadGateway, gin.H{"error": gemini.UserMessage(err)})
				return
			}
			record("whatsapp", msg)
			c.JSON(http.StatusOK, gin.H{"match": m, "message": msg})
		})

		api.GET("/history", func(c *gin.Context) {
			entries, err := hist.List(0)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, entries)
		})

		api.DELETE("/history", func(c *gin.Context) {
			if err := hist.Clear(); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			c.Status(http.StatusNoContent)
		})
	}
}
