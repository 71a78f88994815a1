// Command requestctl lets operators inspect customization requests and drive
// their workflow against the service's MongoDB.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"customize-svc/internal/app"
	"customize-svc/internal/config"
	"customize-svc/internal/i18n"
)

func main() {
	lang := flag.String("lang", "", "message locale (en, vi)")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()
	if flag.NArg() < 2 {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Load()
	i18n.Init(cfg.DefaultLocale)
	ctx := context.Background()
	if *lang != "" {
		ctx = i18n.WithLocale(ctx, *lang)
	}

	bootCtx, cancelBoot := context.WithTimeout(ctx, 30*time.Second)
	a, err := app.New(bootCtx, cfg)
	cancelBoot()
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}

	cmdCtx, cancel := context.WithTimeout(ctx, time.Minute)
	err = dispatch(cmdCtx, a.Events, a.Tours, os.Stdout, flag.Arg(0), flag.Arg(1), flag.Args()[2:])
	cancel()
	a.Close(context.Background())

	if err != nil {
		log.Printf("ERROR %s %s: %v", flag.Arg(0), flag.Arg(1), err)
		report(ctx, os.Stderr, err)
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
