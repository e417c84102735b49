package probe

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/imamik/opsretry/internal/util/retry"
)

// PortOperation is the retry profile name used by TCP probes.
const PortOperation = "tcp.probe"

// DialTimeout bounds a single connection attempt.
const DialTimeout = 2 * time.Second

// ErrUnreachable is returned when no connection succeeded.
var ErrUnreachable = errors.New("unreachable")

// Port dials address (host:port) until a TCP connection succeeds.
//
// Refused connections, timeouts and failed lookups are retried. An address
// without a port fails at once.
func (p *Prober) Port(ctx context.Context, address string) (Result, error) {
	profile, h := p.profile(PortOperation)

	err := retry.Exec(ctx, PortOperation, func(ctx context.Context) error {
		return dial(ctx, address)
	}, []retry.Kind{dialError}, profile.MaxAttempts, h)

	res := Result{URL: address}
	if err != nil {
		return res, fmt.Errorf("%w: %s: %w", ErrUnreachable, address, err)
	}

	res.OK = true
	p.logger.Info("port open", "address", address)
	return res, nil
}

// PortAll dials every address concurrently.
func (p *Prober) PortAll(ctx context.Context, addresses []string) ([]Result, error) {
	return p.all(ctx, addresses, p.Port)
}

func dial(ctx context.Context, address string) error {
	d := net.Dialer{Timeout: DialTimeout}
	conn, err := d.DialContext(ctx, "tcp", address)
	if err != nil {
		return err
	}
	return conn.Close()
}

// dialError matches failed connection attempts, except malformed addresses.
func dialError(err error) bool {
	var opErr *net.OpError
	if !errors.As(err, &opErr) || opErr.Op != "dial" {
		return false
	}
	var addrErr *net.AddrError
	return !errors.As(err, &addrErr)
}
