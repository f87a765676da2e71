// FILE: example/fasthttp/main.go
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/lixenwraith/linelog"
	"github.com/lixenwraith/linelog/compat"
)

func main() {
	logger, err := linelog.NewBuilder().
		Path("/var/log/fasthttp/server.log").
		Header("fasthttp server").
		LineLimit(5000).
		Build()
	if err != nil {
		panic(err)
	}
	defer logger.Close()

	// Create fasthttp adapter with custom severity detection
	fasthttpAdapter := compat.NewFastHTTPAdapter(
		logger,
		compat.WithSeverityDetector(customSeverityDetector),
	)

	server := &fasthttp.Server{
		Handler: requestHandler,
		Logger:  fasthttpAdapter,

		Name:         "MyServer",
		Concurrency:  fasthttp.DefaultConcurrency,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	fmt.Println("Starting server on :8080")
	if err := server.ListenAndServe(":8080"); err != nil {
		panic(err)
	}
}

func requestHandler(ctx *fasthttp.RequestCtx) {
	ctx.SetContentType("text/plain")
	fmt.Fprintf(ctx, "Hello, world! Path: %s\n", ctx.Path())
}

func customSeverityDetector(msg string) linelog.Severity {
	if strings.Contains(msg, "connection cannot be served") {
		return linelog.SeverityWarning
	}
	if strings.Contains(msg, "error when serving connection") {
		return linelog.SeverityError
	}
	return compat.DetectSeverity(msg)
}
