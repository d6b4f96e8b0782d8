// Command heapsort reads integer keys until a sentinel, builds a
// heap-ordered tree from them and prints the keys back in ascending order.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/datatrails/go-datatrails-common/logger"

	"heaptree/config"
	"heaptree/domain/sortedlist"
	"heaptree/infra/kafka"
	"heaptree/infra/outbox"
	"heaptree/infra/sequence"
	"heaptree/ingest"
	"heaptree/jobs/broadcaster"
	"heaptree/service"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "heapsort: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	var (
		in       string
		sentinel int64
		dump     bool
		desc     bool
	)
	cfg, err := config.Load("heapsort", args, func(fs *flag.FlagSet) {
		fs.StringVar(&in, "in", "", "read keys from file instead of stdin")
		fs.Int64Var(&sentinel, "sentinel", ingest.DefaultSentinel, "key that ends input")
		fs.BoolVar(&dump, "dump", true, "print the tree before draining")
		fs.BoolVar(&desc, "desc", false, "also print the keys in descending order")
	})
	if err != nil {
		return err
	}

	logger.New(cfg.Log.Level)
	defer logger.OnExit()
	log := logger.Sugar.WithServiceName("heapsort")

	src := stdin
	if in != "" {
		f, err := os.Open(in)
		if err != nil {
			return err
		}
		defer f.Close()
		src = f
	}

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
			return err
		}
		seq = sequence.New(last)
	}

	svc := service.NewSortService(cfg.Tree, ob, seq, log)

	n, err := ingest.ReadKeys(src, sentinel, func(key int64) error {
		if err := svc.Insert(key); err != nil {
			return err
		}
		log.Infof("inserted %d height=%d", key, svc.Stats().Height)
		return nil
	})
	if err != nil {
		return err
	}
	log.Infof("read %d keys", n)

	if dump {
		if err := svc.Dump(stdout); err != nil {
			return err
		}
		fmt.Fprintln(stdout)
	}

	ctx := context.Background()
	down := sortedlist.New()
	res, err := svc.Drain(ctx, func(v int64) error {
		if desc {
			down.Insert(v)
		}
		_, err := fmt.Fprintf(stdout, "Extracting %d\n", v)
		return err
	})
	if err != nil {
		return err
	}
	if desc {
		fmt.Fprintf(stdout, "Descending: %s\n", down)
	}

	if seq != nil {
		log.Infof("run %s recorded up to seq=%d", res.RunID, seq.Current())
	}
	if !cfg.Kafka.Enabled() {
		return nil
	}
	pub, err := kafka.NewPublisher(cfg.Kafka)
	if err != nil {
		return err
	}
	bc := broadcaster.New(ob, pub, cfg.Broadcaster, log)
	defer bc.Close()
	acked, err := bc.ReplayOnce(ctx)
	if err != nil {
		return err
	}
	log.Infof("run %s published %d of %d values", res.RunID, acked, res.Count)
	return nil
}
