package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/catalogix/catalogd/config"
	"github.com/catalogix/catalogd/internal/app"
	"github.com/catalogix/catalogd/internal/catalogapi"
	"github.com/catalogix/catalogd/internal/webserver"
)

var (
	h        = flag.Bool("h", false, "help usage")
	showVer  = flag.Bool("v", false, "show version")
	confFile = flag.String("c", "catalogd.yml", "config file")
	initDb   = flag.Bool("initdb", false, "drop and recreate the database schema, then exit")
)

var (
	BuildVersion = "dev"
	ReleaseDate  = ""
)

func printVersion() {
	fmt.Printf("catalogd %s %s\n", BuildVersion, ReleaseDate)
}

func main() {
	flag.Parse()
	if *h {
		flag.Usage()
		os.Exit(0)
	}
	if *showVer {
		printVersion()
		os.Exit(0)
	}

	cfg := config.LoadConfig(*confFile)

	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if *initDb {
		application.InitDb()
		zap.S().Info("database schema recreated")
		return
	}

	ws := webserver.New(cfg)
	catalogapi.Register(ws, application.DB())

	errchan := make(chan error, 1)
	go func() {
		errchan <- ws.Listen()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errchan:
		zap.S().Errorf("web server stopped: %v", err)
	case sig := <-quit:
		zap.S().Infof("received signal %s, shutting down", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := ws.Shutdown(ctx); err != nil {
			zap.S().Errorf("web server shutdown failed: %v", err)
		}
	}
}
