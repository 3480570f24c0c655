package service

import (
	"context"

	"github.com/uptrace/bun"
	"github.com/wazohub/memberpay/db/models"
	"github.com/wazohub/memberpay/gateway"
	"github.com/wazohub/memberpay/rabbitmq"
	"github.com/ziflex/lecho/v3"
)

type MemberPayService struct {
	Config         *Config
	DB             *bun.DB
	Gateways       map[string]gateway.PaymentGateway
	Logger         *lecho.Logger
	PaymentPubSub  *Pubsub
	RabbitMQClient rabbitmq.Client
}

// Caller is the authenticated identity a request acts under. It is passed
// explicitly instead of being read from ambient session state.
type Caller struct {
	MemberID int64
	IsAdmin  bool
}

func (svc *MemberPayService) FindMember(ctx context.Context, memberId int64) (*models.Member, error) {
	var member models.Member
	err := svc.DB.NewSelect().Model(&member).Where("id = ?", memberId).Limit(1).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (svc *MemberPayService) FindMembershipType(ctx context.Context, id int64) (*models.MembershipType, error) {
	var membershipType models.MembershipType
	err := svc.DB.NewSelect().Model(&membershipType).Where("id = ?", id).Limit(1).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &membershipType, nil
}

func (svc *MemberPayService) FindMembershipTypes(ctx context.Context) ([]models.MembershipType, error) {
	membershipTypes := []models.MembershipType{}
	err := svc.DB.NewSelect().Model(&membershipTypes).OrderExpr("id ASC").Scan(ctx)
	return membershipTypes, err
}
