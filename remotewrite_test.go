package telemetry

import (
	"testing"
	"time"

	"github.com/eryajf/promwrite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertToTimeSeries(t *testing.T) {
	now := time.Now()
	collections := []collection{
		{name: "m", samples: []Sample{
			{Value: 1, Labels: []Label{{"env", "prod"}}},
			{Value: 2, Labels: []Label{{"env", "staging"}}},
		}},
		{name: "n", samples: []Sample{
			{Value: 7},
		}},
	}

	series := convertToTimeSeries(collections, now)
	require.Len(t, series, 3)

	assert.Equal(t, []promwrite.Label{
		{Name: "__name__", Value: "m"},
		{Name: "env", Value: "prod"},
	}, series[0].Labels)
	assert.Equal(t, 1.0, series[0].Sample.Value)
	assert.Equal(t, now, series[0].Sample.Time)

	assert.Equal(t, "staging", series[1].Labels[1].Value)
	assert.Equal(t, 2.0, series[1].Sample.Value)

	assert.Equal(t, []promwrite.Label{{Name: "__name__", Value: "n"}}, series[2].Labels)
	assert.Equal(t, 7.0, series[2].Sample.Value)
}

func TestConvertToTimeSeriesEmpty(t *testing.T) {
	assert.Empty(t, convertToTimeSeries(nil, time.Now()))
}

func TestRemoteWriteFaultFoldsIntoFalse(t *testing.T) {
	c := NewWithOptions(nil, Options{
		RemoteWriteURL:  "http://127.0.0.1:1/api/v1/write",
		Timeout:         100 * time.Millisecond,
		IdentifierProbe: fakeProbe{id: "test-machine"},
	})
	c.Add("m", 1)

	ok, err := c.Send()

	require.NoError(t, err)
	assert.False(t, ok)
}
