package telemetry

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"sync"
	"time"

	"github.com/miekg/dns"
)

// resolver optionally pre-resolves the collector host before a send. With a
// one-shot delivery and no retries, a host that does not resolve is a send
// that cannot succeed; failing fast here skips the POST entirely.
type resolver struct {
	servers []string
	timeout time.Duration
}

func newResolver(servers []string, timeout time.Duration) *resolver {
	if timeout <= 0 {
		timeout = 800 * time.Millisecond
	}
	return &resolver{servers: servers, timeout: timeout}
}

// canReach reports whether the endpoint's host resolves to at least one
// address. Literal IP hosts resolve trivially.
func (r *resolver) canReach(endpoint string) bool {
	u, err := url.Parse(endpoint)
	if err != nil {
		return false
	}
	host := u.Hostname()
	if host == "" {
		return false
	}
	if net.ParseIP(host) != nil {
		return true
	}

	ips, err := r.resolve(host)
	return err == nil && len(ips) > 0
}

// resolve queries every configured server concurrently plus the system
// resolver, returning the first non-empty answer.
func (r *resolver) resolve(host string) ([]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	type result struct {
		ips []string
		err error
	}
	ch := make(chan result, 1)
	var wg sync.WaitGroup

	for _, srv := range r.servers {
		s := srv
		wg.Add(1)
		go func() {
			defer wg.Done()
			ips, err := resolveUDP(ctx, host, s)
			select {
			case ch <- result{ips, err}:
			default:
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		netIPs, err := net.DefaultResolver.LookupIP(ctx, "ip", host)
		ips := make([]string, 0, len(netIPs))
		for _, ip := range netIPs {
			ips = append(ips, ip.String())
		}
		select {
		case ch <- result{ips, err}:
		default:
		}
	}()

	var firstErr error
	attempts := 1 + len(r.servers)
	for i := 0; i < attempts; i++ {
		select {
		case res := <-ch:
			if res.err == nil && len(res.ips) > 0 {
				return res.ips, nil
			}
			if firstErr == nil {
				firstErr = res.err
			}
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	wg.Wait()
	if firstErr == nil {
		firstErr = fmt.Errorf("no dns result for %s", host)
	}
	return nil, firstErr
}

func resolveUDP(ctx context.Context, host, server string) ([]string, error) {
	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(host), dns.TypeA)
	c := &dns.Client{Net: "udp", Timeout: 800 * time.Millisecond}
	r, _, err := c.ExchangeContext(ctx, m, server)
	if err != nil || r == nil || r.Rcode != dns.RcodeSuccess {
		return nil, fmt.Errorf("udp dns failed: %v", err)
	}
	ips := make([]string, 0, len(r.Answer))
	for _, ans := range r.Answer {
		if a, ok := ans.(*dns.A); ok {
			ips = append(ips, a.A.String())
		}
	}
	return ips, nil
}
