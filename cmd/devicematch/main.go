// Package main is the devicematch CLI entry point.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/activlink/devicematch/internal/catalog"
	"github.com/activlink/devicematch/internal/cli"
	"github.com/activlink/devicematch/internal/config"
	"github.com/activlink/devicematch/internal/embedding"
	"github.com/activlink/devicematch/internal/match"
	"github.com/activlink/devicematch/internal/models"
	"github.com/activlink/devicematch/internal/server"
	"github.com/activlink/devicematch/internal/titles"
	"github.com/activlink/devicematch/pkg/utils"
	"go.uber.org/zap"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/devicematch/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists
// it is used. Returns the config and the path that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	// Secrets (API_TOKEN, OPENAI_API_KEY, MONGO_URI) may live in a .env file.
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "match":
		runMatch()
	case "categories":
		runCategories()
	case "status":
		runStatus()
	case "embed":
		runEmbed()
	case "version", "--version", "-v":
		fmt.Printf("devicematch version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	if cfg.Auth.APIToken == "" {
		logger.Fatal("API_TOKEN not set in .env or environment")
	}

	embedder, err := embedding.NewOpenAIEmbedder(cfg.Embedding.APIKey, cfg.Embedding.Model, cfg.Embedding.Dimensions)
	if err != nil {
		logger.Fatal("Failed to create embedder", zap.Error(err))
	}
	defer embedder.Close()

	cat, err := catalog.Load(cfg.Catalog.EmbeddingsPath)
	if err != nil {
		logger.Fatal("Failed to load catalog", zap.Error(err))
	}
	if cat.Len() == 0 {
		logger.Warn("catalog is empty; match requests will fail until embeddings are generated")
	}
	logger.Info("catalog loaded",
		zap.String("path", cfg.Catalog.EmbeddingsPath),
		zap.Int("categories", cat.Len()),
		zap.Int("dimensions", cat.Dimensions()))

	store := titles.NewMongoStore(cfg.Titles.URI, cfg.Titles.Database, cfg.Titles.Collection)
	defer store.Close(context.Background())
	if cfg.Titles.URI == "" {
		logger.Warn("MONGO_URI not set; locale titles will be absent from responses")
	}

	matcher := match.NewMatcher(embedder, cat)
	resolver := titles.NewResolver(store, logger)

	srv := server.NewServer(matcher, resolver, cat, cfg, logger)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

func runMatch() {
	fs := flag.NewFlagSet("match", flag.ExitOnError)
	serverURL := fs.String("server", "http://localhost:8080", "server URL")
	localeTag := fs.String("locale", "", "preferred locale for the title, e.g. en_GB")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: devicematch match [flags] <query>")
		os.Exit(1)
	}
	query := cli.BuildQuery(fs.Args())
	if query == "" {
		fmt.Println("Usage: devicematch match [flags] <query>")
		os.Exit(1)
	}

	format := cli.OutputText
	switch *outputFormat {
	case "json":
		format = cli.OutputJSON
	case "text":
		format = cli.OutputText
	default:
		fmt.Printf("Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}

	resp, err := matchViaHTTP(*serverURL, os.Getenv("API_TOKEN"), &models.MatchRequest{Query: query, Locale: *localeTag})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Match failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteMatchResult(os.Stdout, resp, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func matchViaHTTP(serverURL, token string, req *models.MatchRequest) (*models.MatchResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	httpReq, err := http.NewRequest(http.MethodPost, serverURL+"/api/v1/match", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var out models.MatchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &out, nil
}

func runCategories() {
	fs := flag.NewFlagSet("categories", flag.ExitOnError)
	serverURL := fs.String("server", "http://localhost:8080", "server URL")
	_ = fs.Parse(os.Args[2:])

	req, err := http.NewRequest(http.MethodGet, *serverURL+"/api/v1/categories", nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Request failed: %v\n", err)
		os.Exit(1)
	}
	req.Header.Set("Authorization", "Bearer "+os.Getenv("API_TOKEN"))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Request failed: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		fmt.Fprintf(os.Stderr, "List failed (%d): %s\n", resp.StatusCode, string(b))
		os.Exit(1)
	}
	var out struct {
		Categories []string `json:"categories"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		fmt.Fprintf(os.Stderr, "Parse failed: %v\n", err)
		os.Exit(1)
	}
	for _, c := range out.Categories {
		fmt.Println(c)
	}
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	serverURL := fs.String("server", "http://localhost:8080", "server URL")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	req, err := http.NewRequest(http.MethodGet, *serverURL+"/api/v1/status", nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Request failed: %v\n", err)
		os.Exit(1)
	}
	req.Header.Set("Authorization", "Bearer "+os.Getenv("API_TOKEN"))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Status failed: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		fmt.Fprintf(os.Stderr, "Status failed (%d): %s\n", resp.StatusCode, string(b))
		os.Exit(1)
	}
	var status struct {
		Categories           int    `json:"categories"`
		EmbeddingDimensions  int    `json:"embedding_dimensions"`
		EmbeddingModel       string `json:"embedding_model"`
		TitleStoreConfigured bool   `json:"title_store_configured"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		fmt.Fprintf(os.Stderr, "Parse failed: %v\n", err)
		os.Exit(1)
	}

	switch *outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(status); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
	case "text":
		fmt.Printf("categories:             %d\n", status.Categories)
		fmt.Printf("embedding_dimensions:   %d\n", status.EmbeddingDimensions)
		fmt.Printf("embedding_model:        %s\n", status.EmbeddingModel)
		fmt.Printf("title_store_configured: %t\n", status.TitleStoreConfigured)
	default:
		fmt.Fprintf(os.Stderr, "Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}
}

// embedBatchSize caps how many category names go into one embeddings request.
const embedBatchSize = 100

func runEmbed() {
	fs := flag.NewFlagSet("embed", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	_ = fs.Parse(os.Args[2:])

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	names, err := catalog.LoadNames(cfg.Catalog.CategoriesPath)
	if err != nil {
		fmt.Printf("Failed to load categories: %v\n", err)
		os.Exit(1)
	}
	if len(names) == 0 {
		fmt.Println("Categories file is empty; nothing to embed")
		os.Exit(1)
	}

	embedder, err := embedding.NewOpenAIEmbedder(cfg.Embedding.APIKey, cfg.Embedding.Model, cfg.Embedding.Dimensions)
	if err != nil {
		fmt.Printf("Failed to create embedder: %v\n", err)
		os.Exit(1)
	}
	defer embedder.Close()

	ctx := context.Background()
	vectors := make([][]float32, 0, len(names))
	for i := 0; i < len(names); i += embedBatchSize {
		end := i + embedBatchSize
		if end > len(names) {
			end = len(names)
		}
		fmt.Printf("Embedding categories %d-%d of %d...\n", i+1, end, len(names))
		batch, err := embedder.EmbedBatch(ctx, names[i:end])
		if err != nil {
			fmt.Printf("Embedding failed at batch %d: %v\n", i, err)
			os.Exit(1)
		}
		vectors = append(vectors, batch...)
	}

	cat, err := catalog.New(names, vectors)
	if err != nil {
		fmt.Printf("Catalog validation failed: %v\n", err)
		os.Exit(1)
	}
	if err := cat.Save(cfg.Catalog.EmbeddingsPath); err != nil {
		fmt.Printf("Failed to save embeddings: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Saved %d category embeddings (%d dimensions) to %s\n",
		cat.Len(), cat.Dimensions(), cfg.Catalog.EmbeddingsPath)
}

func printUsage() {
	fmt.Println(`devicematch - Match free-text queries to device categories

Usage:
  devicematch server [flags]            Start the HTTP server
  devicematch match [flags] <query>     Match a query to a category
  devicematch categories [flags]        List catalog categories
  devicematch status [flags]            Show catalog/store status
  devicematch embed [flags]             Generate catalog embeddings
  devicematch version                   Show version
  devicematch help                      Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/devicematch/config.yaml)
  --debug            Enable debug logging

Match Flags:
  --server string    Server URL (default: http://localhost:8080)
  --locale string    Preferred locale for the title, e.g. en_GB
  --output string    Output format: text or json (default: text)

Embed Flags:
  --config string    Config file path (categories_path read, embeddings_path written)

Environment:
  API_TOKEN          Bearer token required by the API (also read from .env)
  OPENAI_API_KEY     Embedding provider key (required for server and embed)
  MONGO_URI          Title store address (optional; titles absent without it)
  MONGO_DB_NAME      Title store database (default: Activlink)
  MONGO_COLLECTION   Title store collection (default: Category)

Examples:
  devicematch embed
  devicematch server
  devicematch match "55 inch smart tv"
  devicematch match --locale fr_FR --output json "machine a laver"
  devicematch categories
  devicematch status`)
}
