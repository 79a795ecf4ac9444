package awsclient

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// Directory enumerates EC2 instances by tag key.
type Directory struct {
	api     *ec2.Client
	timeout time.Duration
}

func NewDirectory(cfg aws.Config, timeout time.Duration) *Directory {
	return &Directory{
		api:     ec2.NewFromConfig(cfg),
		timeout: timeout,
	}
}

// ListInstances returns the IDs of all instances carrying the tag key, in
// the order EC2 returns them.
func (d *Directory) ListInstances(ctx context.Context, tagKey string) ([]string, error) {
	ctx, cancel := opContext(ctx, d.timeout)
	defer cancel()

	input := &ec2.DescribeInstancesInput{
		Filters: []ec2types.Filter{
			{
				Name:   aws.String("tag-key"),
				Values: []string{tagKey},
			},
		},
	}

	var ids []string
	paginator := ec2.NewDescribeInstancesPaginator(d.api, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("describe instances: %w", err)
		}
		for _, reservation := range page.Reservations {
			for _, instance := range reservation.Instances {
				if instance.InstanceId != nil {
					ids = append(ids, *instance.InstanceId)
				}
			}
		}
	}

	return ids, nil
}
