package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"github.com/niksmo/fashion-store/config"
	"github.com/niksmo/fashion-store/internal/app"
	"github.com/niksmo/fashion-store/pkg/sigctx"
)

const closeTimeout = 5 * time.Second

func main() {
	_ = godotenv.Load()

	sigCtx, closeApp := sigctx.NotifyContext()
	defer closeApp()

	cfg := config.Load()
	cfg.Print()

	storefront := app.New(sigCtx, cfg)

	storefront.Run(closeApp)

	<-sigCtx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	storefront.Close(ctx)
}
