package telemetry

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/klauspost/compress/zlib"
	"go.uber.org/zap"
)

// compressionLevel is the fixed zlib level for outgoing batches.
const compressionLevel = 6

// transmitter compresses a serialized batch and performs a single POST to
// the collector endpoint. It is injected with its destination so tests can
// point it at a local server.
type transmitter struct {
	endpoint string
	client   *http.Client
	logger   *zap.Logger
}

func newTransmitter(endpoint string, timeout time.Duration, logger *zap.Logger) *transmitter {
	return &transmitter{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

// process delivers the batch. The error return is reserved for compression
// failures; network faults and non-empty responses fold into a false
// result, so telemetry delivery never disrupts the caller.
func (t *transmitter) process(body []byte) (bool, error) {
	compressed, err := compress(body)
	if err != nil {
		return false, err
	}

	req, err := http.NewRequest(http.MethodPost, t.endpoint, bytes.NewReader(compressed))
	if err != nil {
		if t.logger != nil {
			t.logger.Warn("Failed to build telemetry request", zap.Error(err))
		}
		return false, nil
	}
	req.Header.Set("Content-Encoding", "deflate")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.client.Do(req)
	if err != nil {
		if t.logger != nil {
			t.logger.Debug("Telemetry delivery failed", zap.Error(err))
		}
		return false, nil
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		if t.logger != nil {
			t.logger.Debug("Failed to read collector response", zap.Error(err))
		}
		return false, nil
	}

	// The collector acknowledges ingestion with an empty body; anything
	// else is an error payload.
	if len(respBody) != 0 {
		if t.logger != nil {
			t.logger.Debug("Collector rejected batch",
				zap.Int("status", resp.StatusCode),
				zap.ByteString("body", respBody))
		}
		return false, nil
	}
	return true, nil
}

// compress deflates the batch at the fixed level.
func compress(body []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, compressionLevel)
	if err != nil {
		return nil, fmt.Errorf("creating zlib writer: %w", err)
	}
	if _, err := w.Write(body); err != nil {
		return nil, fmt.Errorf("compressing batch: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("flushing compressed batch: %w", err)
	}
	return buf.Bytes(), nil
}
