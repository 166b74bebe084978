package aws

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	inputs []*cloudwatch.PutMetricDataInput
}

func (f *fakePutter) PutMetricData(_ context.Context, in *cloudwatch.PutMetricDataInput, _ ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error) {
	f.inputs = append(f.inputs, in)
	return &cloudwatch.PutMetricDataOutput{}, nil
}

func TestMetricsClient_DisabledIsNoop(t *testing.T) {
	fake := &fakePutter{}
	m := &MetricsClient{client: fake, namespace: "Test"}

	require.NoError(t, m.RecordCount(context.Background(), MetricOrdersCreated, nil))
	assert.False(t, m.IsEnabled())
	assert.Empty(t, fake.inputs)
}

func TestMetricsClient_RecordLatency(t *testing.T) {
	fake := &fakePutter{}
	m := &MetricsClient{client: fake, namespace: "Test", enabled: true}

	err := m.RecordLatency(context.Background(), MetricCheckoutLatency, 1500*time.Millisecond, map[string]string{"Service": "storefront"})
	require.NoError(t, err)

	require.Len(t, fake.inputs, 1)
	datum := fake.inputs[0].MetricData[0]
	assert.Equal(t, "Test", *fake.inputs[0].Namespace)
	assert.Equal(t, MetricCheckoutLatency, *datum.MetricName)
	assert.Equal(t, 1500.0, *datum.Value)
	assert.Equal(t, types.StandardUnitMilliseconds, datum.Unit)
	require.Len(t, datum.Dimensions, 1)
	assert.Equal(t, "storefront", *datum.Dimensions[0].Value)
}
