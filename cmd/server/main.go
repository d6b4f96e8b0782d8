package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/datatrails/go-datatrails-common/logger"
	"google.golang.org/grpc"

	"heaptree/api/grpcserver"
	"heaptree/config"
	"heaptree/infra/kafka"
	"heaptree/infra/outbox"
	"heaptree/infra/sequence"
	"heaptree/jobs/broadcaster"
	"heaptree/service"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "heaptree server: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load("server", args)
	if err != nil {
		return err
	}

	// ---------------- Logger ----------------

	logger.New(cfg.Log.Level)
	defer logger.OnExit()
	log := logger.Sugar.WithServiceName(cfg.Log.ServiceName)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ---------------- Outbox ----------------

	var (
		ob  *outbox.Outbox
		seq *sequence.Sequencer
	)
	if cfg.Outbox.Dir != "" {
		ob, err = outbox.Open(cfg.Outbox.Dir)
		if err != nil {
			return fmt.Errorf("outbox: %w", err)
		}
		defer ob.Close()

		last, err := ob.LastSeq()
		if err != nil {
			return fmt.Errorf("outbox last seq: %w", err)
		}
		seq = sequence.New(last)
		log.Infof("outbox %s opened, numbering resumes after seq=%d", cfg.Outbox.Dir, seq.Current())
	}

	// ---------------- Service ----------------

	svc := service.NewSortService(cfg.Tree, ob, seq, log)

	// ---------------- Broadcaster ----------------

	if cfg.Kafka.Enabled() {
		pub, err := kafka.NewPublisher(cfg.Kafka)
		if err != nil {
			return fmt.Errorf("kafka: %w", err)
		}
		bc := broadcaster.New(ob, pub, cfg.Broadcaster, log)
		defer bc.Close()
		go bc.Run(ctx)
	}

	// ---------------- gRPC ----------------

	lis, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Server.Addr, err)
	}

	grpcSrv := grpc.NewServer()
	grpcserver.Register(grpcSrv, grpcserver.NewServer(svc, log))

	go func() {
		<-ctx.Done()
		log.Infof("shutting down")
		grpcSrv.GracefulStop()
	}()

	log.Infof("heaptree serving %s on %s", grpcserver.ServiceName, lis.Addr())
	if err := grpcSrv.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("grpc serve: %w", err)
	}
	if seq != nil {
		log.Infof("stopped after seq=%d", seq.Current())
	}
	return nil
}
