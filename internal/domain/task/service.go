package task

import (
	"context"

	"github.com/staffdesk/ems-backend-go/internal/domain/user"
)

type Service interface {
	Create(ctx context.Context, actor user.Actor, req CreateTaskRequest) (TaskResponse, error)
	Get(ctx context.Context, actor user.Actor, taskID string) (TaskResponse, error)
	List(ctx context.Context, actor user.Actor, filter ListFilter) ([]TaskResponse, error)
	Update(ctx context.Context, actor user.Actor, taskID string, req UpdateTaskRequest) (TaskResponse, error)
	Delete(ctx context.Context, actor user.Actor, taskID string) error
	AddComment(ctx context.Context, actor user.Actor, taskID string, req AddCommentRequest) (CommentResponse, error)
	Statistics(ctx context.Context, actor user.Actor) (Stats, error)
}
