package telemetry

import (
	"time"

	"github.com/eryajf/promwrite"
	"go.uber.org/zap"
)

const (
	// defaultEndpoint is the fixed collector the client reports to. It
	// accepts the Prometheus text exposition format on its import path.
	defaultEndpoint = "https://telemetry.nikiz.dev/api/v1/import/prometheus"

	// defaultTimeout bounds the single delivery attempt.
	defaultTimeout = 1 * time.Second
)

// Options configures a Client. The zero value of every field falls back to
// a default, so callers normally start from DefaultOptions and override
// what they need.
type Options struct {
	// Endpoint is the collector URL the batch is POSTed to.
	Endpoint string

	// Timeout bounds the delivery attempt.
	Timeout time.Duration

	// RemoteWriteURL switches delivery to Prometheus remote write when
	// non-empty; the fixed exposition endpoint is not contacted.
	RemoteWriteURL string

	// DNSServers enables a pre-send resolution check of the collector
	// host against the given servers, e.g. ["1.1.1.1:53"].
	DNSServers []string

	// DNSTimeout bounds the resolution check.
	DNSTimeout time.Duration

	// IdentifierProbe overrides the platform machine-id probe.
	IdentifierProbe IdentifierProbe

	// Optional logger
	Logger *zap.Logger
}

// DefaultOptions returns the production configuration.
func DefaultOptions() Options {
	return Options{
		Endpoint: defaultEndpoint,
		Timeout:  defaultTimeout,
	}
}

// Client accumulates counter samples decorated with host labels and ships
// them in one compressed batch. A Client is owned by a single caller per
// process run; it performs no locking and keeps no state across runs.
type Client struct {
	labels   labelSet
	registry *registry
	tx       *transmitter
	remote   *promwrite.Client
	resolver *resolver
	opts     Options
	logger   *zap.Logger
}

// New creates a client with the default collector endpoint. Host probes
// populate the default labels first; caller labels are applied last and
// override defaults on name collision.
func New(labels map[string]string) *Client {
	return NewWithOptions(labels, DefaultOptions())
}

// NewWithOptions creates a client with explicit options.
func NewWithOptions(labels map[string]string, opts Options) *Client {
	if opts.Endpoint == "" {
		opts.Endpoint = defaultEndpoint
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}

	c := &Client{
		registry: newRegistry(),
		tx:       newTransmitter(opts.Endpoint, opts.Timeout, opts.Logger),
		opts:     opts,
		logger:   opts.Logger,
	}
	if opts.RemoteWriteURL != "" {
		c.remote = promwrite.NewClient(opts.RemoteWriteURL)
	}
	if len(opts.DNSServers) > 0 {
		c.resolver = newResolver(opts.DNSServers, opts.DNSTimeout)
	}

	c.applyDefaultLabels()
	c.AddLabelList(labels)
	return c
}

// applyDefaultLabels runs the environment probes and seeds the label store.
// Every probe degrades to a documented fallback value; construction never
// fails.
func (c *Client) applyDefaultLabels() {
	family := osFamily()
	machine := machineType()
	releaseName, releaseVersion := osRelease(osReleasePath)

	probe := c.opts.IdentifierProbe
	if probe == nil {
		probe = selectIdentifierProbe(family)
	}

	c.labels.add("os", family)
	c.labels.add("os_release_name", releaseName)
	c.labels.add("os_release_version", releaseVersion)
	c.labels.add("machine", machine)
	c.labels.add("machine_id", hashMachineID(probe.Probe()))
	c.labels.add("dockerized", containerStatus(procSchedPath))
	c.labels.add("official_image", officialImage())
	c.labels.add("arch", classifyArch(machine))

	if c.logger != nil {
		c.logger.Debug("Seeded default telemetry labels",
			zap.String("os", family),
			zap.String("machine", machine))
	}
}

// AddLabel sets a label for subsequent samples. A repeated name supersedes
// the earlier value.
func (c *Client) AddLabel(name, value string) {
	c.labels.add(name, value)
}

// AddLabelList sets every label of the mapping.
func (c *Client) AddLabelList(labels map[string]string) {
	c.labels.addAll(labels)
}

// UpdateLabels replaces the named labels and leaves unrelated ones
// untouched.
func (c *Client) UpdateLabels(labels map[string]string) {
	c.labels.update(labels)
}

// ResetLabels removes all labels, defaults included.
func (c *Client) ResetLabels() {
	c.labels.reset()
}

// GetLabels returns the effective name to value mapping.
func (c *Client) GetLabels() map[string]string {
	return c.labels.effective()
}

// Add records a counter sample carrying the labels in effect right now.
// Repeated names accumulate separate samples, not a running total.
func (c *Client) Add(name string, value float64) {
	c.registry.add(name, value, c.labels.snapshot())
}

// Send serializes and clears every accumulated sample, then performs a
// single delivery attempt. The registry is drained whether or not delivery
// succeeds; there are no retries. The error return is reserved for
// compression failures, every network fault folds into a false result.
func (c *Client) Send() (bool, error) {
	collections := c.registry.drain()

	if c.resolver != nil {
		target := c.opts.Endpoint
		if c.remote != nil {
			target = c.opts.RemoteWriteURL
		}
		if !c.resolver.canReach(target) {
			if c.logger != nil {
				c.logger.Debug("Collector host did not resolve, skipping send")
			}
			return false, nil
		}
	}

	if c.remote != nil {
		return c.sendRemoteWrite(collections), nil
	}
	return c.tx.process([]byte(renderExposition(collections)))
}
