package feedback

import (
	"DentEase/entity"
	"DentEase/impl/core"
	"context"
)

type Core interface {
	ListFeedback(ctx context.Context, rating int) (*core.FeedbackList, error)
	ReplyFeedback(ctx context.Context, id, text string) (*entity.AdminReply, error)
}
