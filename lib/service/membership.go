package service

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/wazohub/memberpay/common"
)

// ActivateMembership marks the member active and recomputes the expiry from
// the membership type's duration. Re-running it recomputes the same or a
// later expiry, so it is idempotent in effect; the reconciliation layer still
// invokes it at most once per completed payment so one transaction can not
// extend a membership twice.
func (svc *MemberPayService) ActivateMembership(ctx context.Context, memberId, membershipTypeId int64) error {
	member, err := svc.FindMember(ctx, memberId)
	if err != nil {
		return err
	}
	membershipType, err := svc.FindMembershipType(ctx, membershipTypeId)
	if err != nil {
		return err
	}

	expiry, err := computeExpiry(time.Now(), membershipType.Duration, membershipType.DurationUnit)
	if err != nil {
		return err
	}

	member.Status = common.MemberStatusActive
	member.MembershipTypeID = membershipType.ID
	member.ExpiryDate = expiry
	_, err = svc.DB.NewUpdate().Model(member).WherePK().Exec(ctx)
	if err != nil {
		return err
	}
	svc.Logger.Infof("Activated membership: member_id:%v membership_type:%s expiry:%v", member.ID, membershipType.Name, member.ExpiryDate.Time)
	return nil
}

// computeExpiry returns a zero NullTime for lifetime memberships.
func computeExpiry(from time.Time, duration int, unit string) (bun.NullTime, error) {
	switch unit {
	case common.DurationUnitLifetime:
		return bun.NullTime{}, nil
	case common.DurationUnitDays:
		return bun.NullTime{Time: from.AddDate(0, 0, duration)}, nil
	case common.DurationUnitMonths:
		return bun.NullTime{Time: from.AddDate(0, duration, 0)}, nil
	case common.DurationUnitYears:
		return bun.NullTime{Time: from.AddDate(duration, 0, 0)}, nil
	default:
		return bun.NullTime{}, fmt.Errorf("unknown duration unit %q", unit)
	}
}
