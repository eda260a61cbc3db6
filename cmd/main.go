package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"url-shortener/internal/api"
	"url-shortener/internal/cache"
	"url-shortener/internal/config"
	"url-shortener/internal/entity"
	"url-shortener/internal/events"
	"url-shortener/internal/repository"
	"url-shortener/internal/service"
	"url-shortener/internal/sharding"
	"url-shortener/internal/shortid"

	"github.com/rs/zerolog"
)

var logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

const usage = `url-shortener shards short URLs across MySQL databases.

Usage:
  url-shortener serve          start the HTTP API
  url-shortener insert <url>   shorten a URL and print its ID
  url-shortener get <id>       print the URL stored under an ID
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		logger.Fatal().Err(err).Msg("url-shortener failed")
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("url-shortener", flag.ContinueOnError)
	fs.Usage = func() { fmt.Fprint(fs.Output(), usage) }
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errors.New("missing command")
	}

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "serve", "insert", "get":
	default:
		fs.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
	if cmd != "serve" && len(rest) != 1 {
		fs.Usage()
		return fmt.Errorf("%s takes exactly one argument", cmd)
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	dbShards, err := repository.OpenShards(ctx, cfg.ShardDSNs)
	if err != nil {
		return err
	}
	router, err := sharding.NewShardRouter(dbShards, cfg.VirtualNodes)
	if err != nil {
		for _, db := range dbShards {
			db.Close()
		}
		return err
	}
	logger.Debug().Int("shards", router.ShardCount()).Int("virtual_nodes", cfg.VirtualNodes).Msg("shard router ready")
	urlRepo := repository.NewURLRepository(router)
	defer closeShards(urlRepo)

	ids, err := shortid.NewGenerator(cfg.IDLength)
	if err != nil {
		return err
	}

	if cmd == "serve" {
		return serve(ctx, cfg, urlRepo, ids)
	}
	svc := service.NewURLService(urlRepo, nil, events.NopPublisher{}, ids, cfg.BaseURL, cfg.MaxIDAttempts)
	return runCommand(ctx, cmd, rest[0], urlRepo, svc, out)
}

type schemaStore interface {
	EnsureSchema(ctx context.Context) error
}

type urlService interface {
	Shorten(ctx context.Context, rawURL string) (*entity.ShortURL, error)
	Resolve(ctx context.Context, urlID string) (string, error)
}

// runCommand executes insert or get against already opened shards and prints the result.
// Both create url_table first so a fresh shard works without a prior serve.
func runCommand(ctx context.Context, cmd, arg string, store schemaStore, svc urlService, out io.Writer) error {
	if err := store.EnsureSchema(ctx); err != nil {
		return err
	}

	switch cmd {
	case "insert":
		shortURL, err := svc.Shorten(ctx, arg)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Inserted URL '%s' into shard %d\n", shortURL.URL, shortURL.Shard+1)
		fmt.Fprintf(out, "URL ID: %s\n", shortURL.URLID)
	case "get":
		url, err := svc.Resolve(ctx, arg)
		if errors.Is(err, repository.ErrNotFound) {
			fmt.Fprintln(out, "URL not found")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Retrieved URL: %s\n", url)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}

func closeShards(c io.Closer) {
	if err := c.Close(); err != nil {
		logger.Error().Err(err).Msg("Error closing shards")
	}
}

func serve(ctx context.Context, cfg *config.Config, urlRepo *repository.URLRepository, ids *shortid.Generator) error {
	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET is required to serve")
	}
	if err := urlRepo.EnsureSchema(ctx); err != nil {
		return err
	}

	redisClient := cache.NewRedisClient(cfg.RedisAddr)
	defer redisClient.Close()
	urlCache := cache.NewURLCache(redisClient, cfg.CacheTTL)

	publisher := events.NewKafkaPublisher(config.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaTopic))
	defer publisher.Close()

	urlService := service.NewURLService(urlRepo, urlCache, publisher, ids, cfg.BaseURL, cfg.MaxIDAttempts)
	e := api.NewServer(api.NewURLHandler(urlService), []byte(cfg.JWTSecret))

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.HTTPAddr).Msg("starting http server")
		errCh <- e.Start(cfg.HTTPAddr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info().Msg("shutting down http server")
	return e.Shutdown(shutdownCtx)
}
