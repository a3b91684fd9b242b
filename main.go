package main

import (
	"context"
	"embed"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nrao/cricsync/internal/compose"
	"github.com/nrao/cricsync/internal/config"
	dbpkg "github.com/nrao/cricsync/internal/db"
	"github.com/nrao/cricsync/internal/extract"
	"github.com/nrao/cricsync/internal/fixtures"
	"github.com/nrao/cricsync/internal/gemini"
	"github.com/nrao/cricsync/internal/history"
)

//go:embed web/*
var webFS embed.FS

var (
	flagConfig string
	flagAddr   string
	flagAPIKey string
	flagDebug  bool
)

var rootCmd = &cobra.Command{
	Use:   "cricsync",
	Short: "Fixture scout and match-day content generator for a cricket team",
	Long: `CricSync pulls your team's upcoming fixtures from a web search, a
screenshot or pasted text, lets you review them, and generates shareable
match-day content (WhatsApp availability messages, Instagram captions and
posters).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func init() {
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "path to settings.yaml (default .cricsync/settings.yaml)")
	rootCmd.Flags().StringVar(&flagAddr, "addr", "", "listen address (overrides settings)")
	rootCmd.Flags().StringVar(&flagAPIKey, "api-key", "", "Gemini API key (or GEMINI_API_KEY env)")
	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "log extraction flow lines")
}

func run() error {
	logger, err := newLogger(flagDebug)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	if err := config.EnsureConfigExists(); err != nil {
		return err
	}
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagAddr != "" {
		cfg.Server.Addr = flagAddr
	}

	apiKey := flagAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("API key required: use --api-key flag or GEMINI_API_KEY environment variable")
	}

	ai, err := gemini.New(context.Background(), apiKey)
	if err != nil {
		return err
	}

	gdb, err := dbpkg.Open(cfg.Server.DBPath)
	if err != nil {
		return err
	}
	if err := dbpkg.AutoMigrate(gdb, &history.Entry{}); err != nil {
		return err
	}

	store := fixtures.NewStore()
	logs := &extract.LogBuffer{}
	svc := extract.NewService(ai, cfg.Models, logger)
	comp := compose.NewComposer(ai, cfg.Models)
	hist := history.NewRepo(gdb)

	r := gin.Default()
	// Trust only loopback unless overridden (comma-separated CIDRs/IPs)
	tp := strings.Split(envOr("TRUSTED_PROXIES", "127.0.0.1,::1"), ",")
	for i := range tp {
		tp[i] = strings.TrimSpace(tp[i])
	}
	if err := r.SetTrustedProxies(tp); err != nil {
		return fmt.Errorf("trusted proxies: %w", err)
	}

	fixtures.RegisterRoutes(r, store, cfg.Team.Name)
	extract.RegisterRoutes(r, svc, store, logs, cfg.Team)
	compose.RegisterRoutes(r, comp, store, hist, cfg.Defaults, logger)

	r.GET("/", func(c *gin.Context) {
		f, err := webFS.ReadFile("web/index.html")
		if err != nil {
			c.String(http.StatusInternalServerError, "missing index")
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", f)
	})

	logger.Info("listening", zap.String("addr", cfg.Server.Addr))
	return r.Run(cfg.Server.Addr)
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
