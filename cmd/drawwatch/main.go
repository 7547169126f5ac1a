package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/nats-io/nats.go"
)

// event mirrors the envelope published by the refresher.
type event struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"`
}

type drawPayload struct {
	Date       time.Time `json:"date"`
	Main       []int     `json:"main"`
	Powerball  int       `json:"powerball"`
	Multiplier int       `json:"multiplier"`
}

type jackpotPayload struct {
	Annuity string `json:"annuity"`
	Cash    string `json:"cash"`
}

func main() {
	var (
		natsURL = flag.String("nats-url", "", "NATS server URL (default: NATS_URL env or local)")
		subject = flag.String("subject", "powerpick.>", "subject to subscribe to")
		logPath = flag.String("log", "", "append events to this file as well")
	)
	flag.Parse()

	url := *natsURL
	if url == "" {
		url = os.Getenv("NATS_URL")
	}
	if url == "" {
		url = nats.DefaultURL
	}

	var out io.Writer = os.Stdout
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		defer f.Close()
		out = io.MultiWriter(os.Stdout, f)
	}

	nc, err := nats.Connect(url)
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}
	defer nc.Close()

	fmt.Printf("Subscribed to subject: %s\n", *subject)

	_, err = nc.Subscribe(*subject, func(msg *nats.Msg) {
		fmt.Fprintf(out, "%s\n", render(msg))
	})
	if err != nil {
		log.Fatalf("Failed to subscribe: %v", err)
	}

	select {} // Block forever
}

func render(msg *nats.Msg) string {
	var ev event
	if err := json.Unmarshal(msg.Data, &ev); err != nil {
		return fmt.Sprintf("[%s] %s", msg.Subject, string(msg.Data))
	}
	at := time.Unix(ev.Timestamp, 0).UTC().Format(time.RFC3339)

	switch ev.Type {
	case "draw.added":
		var d drawPayload
		if err := json.Unmarshal(ev.Data, &d); err == nil {
			return fmt.Sprintf("%s draw %s: main %v pb %d multiplier %d",
				at, d.Date.Format("2006-01-02"), d.Main, d.Powerball, d.Multiplier)
		}
	case "jackpot.updated":
		var j jackpotPayload
		if err := json.Unmarshal(ev.Data, &j); err == nil {
			return fmt.Sprintf("%s jackpot: annuity $%s cash $%s", at, j.Annuity, j.Cash)
		}
	}
	return fmt.Sprintf("%s [%s] %s", at, ev.Type, string(ev.Data))
}
