package main

import (
	"context"
	"net/http"
	"os"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/tanayv/lila/internal/adapters/http/api"
	app "github.com/tanayv/lila/internal/app"
	"github.com/tanayv/lila/internal/config"
)

func TestMainWiring(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When loading configuration from the environment", func() {
			_ = os.Setenv("LILA_ADDR", ":8080")
			_ = os.Setenv("LILA_QUEUE_SIZE", "1000")
			_ = os.Setenv("LILA_WORKER_COUNT", "4")
			defer func() {
				_ = os.Unsetenv("LILA_ADDR")
				_ = os.Unsetenv("LILA_QUEUE_SIZE")
				_ = os.Unsetenv("LILA_WORKER_COUNT")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.QueueSize, convey.ShouldEqual, 1000)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 4)
			})
		})

		convey.Convey("When assembling the service and routes", func() {
			// Created but not started; Start is covered by the app tests.
			svc := app.New(
				app.WithWorkerCount(2),
				app.WithQueueSize(100),
			)
			convey.So(svc, convey.ShouldNotBeNil)

			server := api.NewServer(svc, svc)
			convey.So(server, convey.ShouldNotBeNil)

			mux := http.NewServeMux()
			server.Register(context.Background(), mux)
		})

		convey.Convey("When configuration is invalid", func() {
			_ = os.Setenv("LILA_ADDR", "")
			defer func() { _ = os.Unsetenv("LILA_ADDR") }()

			convey.Convey("Then loading should fail", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}
