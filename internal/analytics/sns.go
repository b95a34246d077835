package analytics

import (
	"context"
	"encoding/json"
	"fmt"

	"tour-workers/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
)

// Publisher is the subset of the SNS client the sink uses.
type Publisher interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSSink publishes each record as a JSON message. The duration bucket is
// copied into a message attribute so subscribers can filter on it.
type SNSSink struct {
	publisher Publisher
	topicARN  string
}

func NewSNSSink(publisher Publisher, topicARN string) *SNSSink {
	return &SNSSink{publisher: publisher, topicARN: topicARN}
}

func (s *SNSSink) Name() string { return "sns" }

func (s *SNSSink) Record(ctx context.Context, rec models.PreferenceRecord) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal preference record: %w", err)
	}

	input := &sns.PublishInput{
		TopicArn: aws.String(s.topicARN),
		Message:  aws.String(string(body)),
		Subject:  aws.String("trip-preferences-submitted"),
	}
	if rec.DurationBucket != "" {
		input.MessageAttributes = map[string]types.MessageAttributeValue{
			"durationBucket": {
				DataType:    aws.String("String"),
				StringValue: aws.String(rec.DurationBucket),
			},
		}
	}

	if _, err := s.publisher.Publish(ctx, input); err != nil {
		return fmt.Errorf("publish preference record: %w", err)
	}
	return nil
}
