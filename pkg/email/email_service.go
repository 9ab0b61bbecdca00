package email

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// ServiceInterface defines the contract for outbound notification email.
type ServiceInterface interface {
	SendRiderApproved(ctx context.Context, to string) error
}

// SESService sends notifications through Amazon SES.
type SESService struct {
	client *sesv2.Client
	sender string
}

// NewSESService builds an SES client from the default AWS credential chain.
func NewSESService(ctx context.Context, region, sender string) (*SESService, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("email.NewSESService: %w", err)
	}
	return &SESService{
		client: sesv2.NewFromConfig(cfg),
		sender: sender,
	}, nil
}

// SendRiderApproved tells an applicant their rider account is active.
func (s *SESService) SendRiderApproved(ctx context.Context, to string) error {
	subject := "Your rider application has been approved"
	body := "Congratulations! Your rider application has been approved and your account is now active. You can start accepting deliveries."

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(s.sender),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(body)},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("email.SendRiderApproved: %w", err)
	}
	return nil
}

// NoopService discards notifications. Used when SES is not configured,
// e.g. local development.
type NoopService struct{}

func (NoopService) SendRiderApproved(ctx context.Context, to string) error { return nil }
