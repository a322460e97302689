package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/saeidalz13/battleship-tcp/client"
	mc "github.com/saeidalz13/battleship-tcp/models/connection"
)

const dialTimeout = 5 * time.Second

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s <server-address>\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "  server-address is host or host:port (default port %s)\n", client.DefaultServerPort)
}

func main() {
	if len(os.Args) != 2 {
		usage()
		os.Exit(1)
	}

	addr, err := client.NormalizeAddress(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		usage()
		os.Exit(1)
	}

	conn, err := net.DialTimeout("tcp", addr, dialTimeout)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to connect:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := client.Run(ctx, mc.NewStreamConn(conn), os.Stdin, os.Stdout); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
