// cmd/preflight/main.go
package main

import (
	"fmt"
	"os"
	"strings"
)

func main() {
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	db := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	redisURL := strings.TrimSpace(os.Getenv("REDIS_URL"))
	brokers := strings.TrimSpace(os.Getenv("KAFKA_BROKERS"))
	regions := strings.TrimSpace(os.Getenv("REGIONS"))
	smtpHost := strings.TrimSpace(os.Getenv("SMTP_HOST"))
	smtpFrom := strings.TrimSpace(os.Getenv("SMTP_FROM"))

	if db == "" {
		fail("DATABASE_URL is empty (every process needs the store).")
	}
	ok("DATABASE_URL present")

	if redisURL == "" {
		warn("REDIS_URL empty — pusher/worker will use redis://localhost:6379/0.")
	} else {
		ok("REDIS_URL=" + redisURL)
	}

	if brokers == "" {
		warn("KAFKA_BROKERS empty — worker/notifier will use localhost:9092.")
	} else {
		ok("KAFKA_BROKERS=" + brokers)
	}

	if regions == "" {
		warn("REGIONS empty — default region set will be used.")
	} else if strings.Contains(regions, " ") {
		warn("REGIONS contains spaces; use comma-separated with no spaces, e.g. india,usa")
	} else {
		ok("REGIONS=" + regions)
	}

	if smtpHost == "" || smtpFrom == "" {
		warn("SMTP_HOST/SMTP_FROM empty — EMAIL integrations will fail at send time.")
	} else {
		ok("SMTP configured")
	}

	ok("preflight passed")
}
