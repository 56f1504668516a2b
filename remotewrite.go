package telemetry

import (
	"context"
	"time"

	"github.com/eryajf/promwrite"
	"go.uber.org/zap"
)

// convertToTimeSeries converts drained collections to promwrite time
// series, one series per recorded sample, preserving each sample's own
// label snapshot.
func convertToTimeSeries(collections []collection, now time.Time) []promwrite.TimeSeries {
	var result []promwrite.TimeSeries
	for _, col := range collections {
		for _, s := range col.samples {
			labels := make([]promwrite.Label, 0, 1+len(s.Labels))
			labels = append(labels, promwrite.Label{Name: "__name__", Value: col.name})
			for _, l := range s.Labels {
				labels = append(labels, promwrite.Label{Name: l.Name, Value: l.Value})
			}
			result = append(result, promwrite.TimeSeries{
				Labels: labels,
				Sample: promwrite.Sample{
					Time:  now,
					Value: s.Value,
				},
			})
		}
	}
	return result
}

// sendRemoteWrite delivers the batch over Prometheus remote write. Write
// errors fold into a false result like any other delivery fault.
func (c *Client) sendRemoteWrite(collections []collection) bool {
	ctx, cancel := context.WithTimeout(context.Background(), c.opts.Timeout)
	defer cancel()

	req := &promwrite.WriteRequest{
		TimeSeries: convertToTimeSeries(collections, time.Now()),
	}
	if _, err := c.remote.Write(ctx, req); err != nil {
		if c.logger != nil {
			c.logger.Debug("Remote write delivery failed", zap.Error(err))
		}
		return false
	}
	return true
}
