package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/lovoo/goka"
	"github.com/niksmo/fashion-store/config"
	"github.com/niksmo/fashion-store/internal/app"
	"github.com/niksmo/fashion-store/pkg/sigctx"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

const (
	partitions        = 3
	replicationFactor = 3
	delete            = "delete"
	compact           = "compact"
)

func main() {
	_ = godotenv.Load()

	sigCtx, closeApp := sigctx.NotifyContext()
	defer closeApp()

	cfg := config.Load()
	if !cfg.Broker.Enabled() {
		printFail(errors.New("broker.seed_brokers is empty"))
		return
	}

	cl, err := createClient(cfg)
	if err != nil {
		printFail(err)
		return
	}
	defer cl.Close()

	eventsTopic := cfg.Broker.OrderEventsTopic
	trackingTable := toGroupTable(cfg.Broker.OrderTrackingGroup)

	printStart(eventsTopic, trackingTable)
	defer printComplete(time.Now())

	// order events stream
	if err := makeTopics(sigCtx, cl, delete, eventsTopic); err != nil {
		printFail(err)
		return
	}

	// tracker group table
	if err := makeTopics(sigCtx, cl, compact, trackingTable); err != nil {
		printFail(err)
		return
	}
}

func createClient(cfg config.Config) (*kadm.Client, error) {
	sec, err := app.BrokerSecurity(cfg)
	if err != nil {
		return nil, err
	}

	opts := append(
		[]kgo.Opt{kgo.SeedBrokers(cfg.Broker.SeedBrokers...)},
		sec.ClientOpts()...,
	)
	return kadm.NewOptClient(opts...)
}

func makeTopics(
	ctx context.Context, cl *kadm.Client, cleanupPolicy string, topics ...string,
) error {
	var (
		minISR = "1"
	)

	config := map[string]*string{
		"cleanup.policy":      &cleanupPolicy,
		"min.insync.replicas": &minISR,
	}

	responses, err := cl.CreateTopics(
		ctx,
		partitions,
		replicationFactor,
		config,
		topics...,
	)
	if err != nil {
		return err
	}

	var errs []error
	for _, res := range responses.Sorted() {
		err := res.Err
		if err != nil {
			if errors.Is(res.Err, kerr.TopicAlreadyExists) {
				fmt.Printf("topic: %q already exists\n", res.Topic)
			} else {
				errs = append(errs, err)
			}
			continue
		}
		fmt.Printf("topic: %q successfully created\n", res.Topic)
	}

	return errors.Join(errs...)
}

func printStart(topics ...string) {
	fmt.Println("initializing topics...")
	for _, t := range topics {
		fmt.Printf("\t- %q\n", t)
	}
	fmt.Println()
}

func printComplete(start time.Time) {
	fmt.Printf("\ncomplete in %s\n", time.Since(start))
}

func printFail(err error) {
	fmt.Printf("failed to create topics: \n%s\n", err)
}

// toGroupTable matches the table topic goka derives for a group.
func toGroupTable(group string) string {
	return string(goka.GroupTable(goka.Group(group)))
}
