package app

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"service-rider-dispatch/internal/config"
	"service-rider-dispatch/internal/lease"
	"service-rider-dispatch/internal/logx"
	"service-rider-dispatch/internal/service/dispatch"
	"service-rider-dispatch/internal/service/orders"
	"service-rider-dispatch/internal/transport/kafka"
)

const leasePrefix = "service-rider-dispatch:"

// redisCloser releases the lease client. It is a no-op without Redis.
type redisCloser func() error

type leaseOut struct {
	dig.Out

	Locker lease.Locker
	Closer redisCloser
}

func provideLease(ctx context.Context, cfg *config.Config, logger logx.Logger) (leaseOut, error) {
	if !cfg.Redis.Enabled() {
		logger.Info("redis not configured, sweep runs without a lease")
		return leaseOut{Locker: lease.Nop{}, Closer: func() error { return nil }}, nil
	}
	client, err := lease.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return leaseOut{}, err
	}
	return leaseOut{
		Locker: lease.NewRedis(client, leasePrefix, logger),
		Closer: client.Close,
	}, nil
}

type sweepLoopIn struct {
	dig.In

	Config  *config.Config
	Service *dispatch.Service
	Locker  lease.Locker
	Skipped prometheus.Counter `name:"dispatch_sweep_skipped_total"`
	Logger  logx.Logger
}

func provideSweepLoop(in sweepLoopIn) *sweepLoop {
	return newSweepLoop(in.Service, in.Locker, in.Config.Dispatch.SweepInterval, in.Skipped, in.Logger)
}

func registerWorker(container *dig.Container) error {
	return provideAll(container,
		provideLease,
		provideSweepLoop,
		func(svc *dispatch.Service, logger logx.Logger) *orders.Processor {
			return orders.NewProcessor(svc, logger)
		},
		func(p *orders.Processor) kafka.HandleFunc {
			return makeOrdersKafka(p)
		},
		func(cfg *config.Config, logger logx.Logger, h kafka.HandleFunc) (*kafka.Consumer, error) {
			c, err := kafka.NewConsumer(logger, cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.OrdersTopic, h)
			if err != nil {
				return nil, fmt.Errorf("kafka consumer: %w", err)
			}
			return c, nil
		},
	)
}
