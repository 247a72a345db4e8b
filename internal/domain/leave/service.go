package leave

import (
	"context"

	"github.com/staffdesk/ems-backend-go/internal/domain/user"
)

type Service interface {
	Apply(ctx context.Context, actor user.Actor, req ApplyLeaveRequest) (LeaveResponse, error)
	Resolve(ctx context.Context, actor user.Actor, leaveID string, req ResolveLeaveRequest) (LeaveResponse, error)
	ListMine(ctx context.Context, actor user.Actor, filter Filter) ([]LeaveResponse, error)
	ListAll(ctx context.Context, actor user.Actor, filter Filter) ([]LeaveResponse, error)
	Statistics(ctx context.Context, actor user.Actor) (Stats, error)
}
