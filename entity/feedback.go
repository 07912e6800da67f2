package entity

import "time"

type Feedback struct {
	ID                  string       `json:"id" bson:"_id" validate:"required"`
	UserEmail           string       `json:"userEmail" bson:"user_email"`
	OverallSatisfaction int          `json:"overallSatisfaction" bson:"overall_satisfaction" validate:"min=1,max=5"`
	OpenFeedback        string       `json:"openFeedback" bson:"open_feedback"`
	CompletedAt         time.Time    `json:"completedAt" bson:"completed_at"`
	AdminReplies        []AdminReply `json:"adminReplies" bson:"admin_replies"`
}

// AdminReply is appended to a feedback entry and never edited afterwards.
type AdminReply struct {
	Text      string    `json:"text" bson:"text"`
	Author    string    `json:"author" bson:"author"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}
