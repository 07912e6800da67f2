package core

import (
	"DentEase/entity"
	"context"
	"log/slog"
	"math"
	"strings"
)

type FeedbackList struct {
	Items   []entity.Feedback `json:"items"`
	Count   int               `json:"count"`
	Average float64           `json:"average"`
}

// ListFeedback returns entries newest first; rating 1..5 keeps only that
// rating. The average always covers every entry.
func (c *Core) ListFeedback(ctx context.Context, rating int) (*FeedbackList, error) {
	all, err := c.repo.AllFeedback(ctx)
	if err != nil {
		return nil, err
	}
	list := &FeedbackList{Items: make([]entity.Feedback, 0, len(all)), Count: len(all)}
	sum := 0
	for _, f := range all {
		sum += f.OverallSatisfaction
		if rating >= 1 && rating <= 5 && f.OverallSatisfaction != rating {
			continue
		}
		list.Items = append(list.Items, f)
	}
	if len(all) > 0 {
		list.Average = math.Round(float64(sum)/float64(len(all))*10) / 10
	}
	return list, nil
}

func (c *Core) ReplyFeedback(ctx context.Context, id, text string) (*entity.AdminReply, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, entity.ErrEmptyMessage
	}
	reply := entity.AdminReply{
		Text:      text,
		Author:    c.OperatorName(),
		CreatedAt: c.now().UTC(),
	}
	if err := c.repo.AppendReply(ctx, id, reply); err != nil {
		return nil, err
	}
	c.log.Info("feedback reply added", slog.String("feedback", id))
	return &reply, nil
}
