package sns

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// SNS caps subjects at 100 characters.
const maxSubject = 100

// AlertPublisher publishes operator alerts to an SNS topic.
type AlertPublisher struct {
	client   *sns.Client
	topicARN string
}

func NewAlertPublisher(awsCfg aws.Config, topicARN string) *AlertPublisher {
	return &AlertPublisher{client: sns.NewFromConfig(awsCfg), topicARN: topicARN}
}

func (p *AlertPublisher) Publish(ctx context.Context, subject, message string) error {
	_, err := p.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(p.topicARN),
		Subject:  aws.String(truncate("[ec5] "+subject, maxSubject)),
		Message:  aws.String(message),
	})
	if err != nil {
		return fmt.Errorf("sns publish: %w", err)
	}
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
