package models

import "time"

// Comment is a course review posted to the community feed.
type Comment struct {
	ID         string         `json:"id"`
	CourseID   string         `json:"courseId"`
	UserID     string         `json:"userId"`
	UserName   string         `json:"userName"`
	UserAvatar string         `json:"userAvatar"`
	Text       string         `json:"text"`
	Rating     int            `json:"rating"` // 0 means no rating
	CreatedAt  time.Time      `json:"createdAt"`
	Replies    []CommentReply `json:"replies"`
}

type CommentReply struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	UserName   string    `json:"userName"`
	UserAvatar string    `json:"userAvatar"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"createdAt"`
}

type CommentInput struct {
	Text   string `json:"text" validate:"required,max=2000"`
	Rating int    `json:"rating" validate:"gte=0,lte=5"`
}

type ReplyInput struct {
	Text string `json:"text" validate:"required,max=2000"`
}

// AverageRating ignores unrated comments. It returns 0 when none is rated.
func AverageRating(comments []Comment) float64 {
	var sum, n int
	for _, c := range comments {
		if c.Rating > 0 {
			sum += c.Rating
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}
