package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"tour-workers/internal/models"

	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sns.PublishOutput), args.Error(1)
}

const topicARN = "arn:aws:sns:us-east-1:123456789012:trip-preferences"

func TestSNSSink_Record(t *testing.T) {
	pub := &mockPublisher{}
	pub.On("Publish", mock.Anything, mock.MatchedBy(func(in *sns.PublishInput) bool {
		if *in.TopicArn != topicARN {
			return false
		}
		var rec models.PreferenceRecord
		if err := json.Unmarshal([]byte(*in.Message), &rec); err != nil {
			return false
		}
		attr, ok := in.MessageAttributes["durationBucket"]
		return ok && *attr.StringValue == "4-7" && rec.BudgetMax == 2000
	})).Return(&sns.PublishOutput{}, nil).Once()

	require.NoError(t, NewSNSSink(pub, topicARN).Record(context.Background(), testRecord()))
	pub.AssertExpectations(t)
}

func TestSNSSink_OmitsEmptyBucketAttribute(t *testing.T) {
	pub := &mockPublisher{}
	pub.On("Publish", mock.Anything, mock.MatchedBy(func(in *sns.PublishInput) bool {
		return len(in.MessageAttributes) == 0
	})).Return(&sns.PublishOutput{}, nil).Once()

	rec := testRecord()
	rec.DurationBucket = ""
	require.NoError(t, NewSNSSink(pub, topicARN).Record(context.Background(), rec))
	pub.AssertExpectations(t)
}

func TestSNSSink_PublishError(t *testing.T) {
	pub := &mockPublisher{}
	pub.On("Publish", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("throttled"))

	err := NewSNSSink(pub, topicARN).Record(context.Background(), testRecord())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttled")
}
