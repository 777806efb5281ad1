package store

import (
	"context"
	"sort"
	"studyhub/backend/models"
)

// GetComments returns every comment in posting order, or none when the
// record is unreadable.
func (s *Store) GetComments(ctx context.Context) []models.Comment {
	comments, err := s.LoadComments(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to read comments")
		return []models.Comment{}
	}
	return comments
}

func (s *Store) LoadComments(ctx context.Context) ([]models.Comment, error) {
	var comments []models.Comment
	if err := s.get(ctx, KeyComments, &comments); err != nil && !isNotFound(err) {
		return nil, err
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	return comments, nil
}

func (s *Store) CourseComments(ctx context.Context, courseID string) []models.Comment {
	result := []models.Comment{}
	for _, c := range s.GetComments(ctx) {
		if c.CourseID == courseID {
			result = append(result, c)
		}
	}
	return result
}

// Feed returns the newest comments across all courses. A limit <= 0
// returns all.
func (s *Store) Feed(ctx context.Context, limit int) []models.Comment {
	comments := s.GetComments(ctx)
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].CreatedAt.After(comments[j].CreatedAt)
	})
	if limit > 0 && len(comments) > limit {
		comments = comments[:limit]
	}
	return comments
}

// AddComment posts a comment on an existing course as userID.
func (s *Store) AddComment(ctx context.Context, userID, courseID string, in models.CommentInput) (*models.Comment, error) {
	if err := s.validateStruct(in); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	courses, err := s.LoadCourses(ctx)
	if err != nil {
		return nil, err
	}
	if models.FindCourse(courses, courseID) == nil {
		return nil, ErrCourseNotFound
	}
	author, err := s.author(ctx, userID)
	if err != nil {
		return nil, err
	}
	comments, err := s.LoadComments(ctx)
	if err != nil {
		return nil, err
	}

	comment := models.Comment{
		ID:         s.newID(),
		CourseID:   courseID,
		UserID:     author.ID,
		UserName:   author.Name,
		UserAvatar: author.Avatar,
		Text:       in.Text,
		Rating:     in.Rating,
		CreatedAt:  s.now().UTC(),
		Replies:    []models.CommentReply{},
	}
	if err := s.put(ctx, KeyComments, append(comments, comment)); err != nil {
		return nil, err
	}
	s.notifier.Notify()
	return &comment, nil
}

func (s *Store) ReplyToComment(ctx context.Context, userID, commentID string, in models.ReplyInput) (*models.CommentReply, error) {
	if err := s.validateStruct(in); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	comments, err := s.LoadComments(ctx)
	if err != nil {
		return nil, err
	}
	i := -1
	for j := range comments {
		if comments[j].ID == commentID {
			i = j
			break
		}
	}
	if i < 0 {
		return nil, ErrCommentNotFound
	}
	author, err := s.author(ctx, userID)
	if err != nil {
		return nil, err
	}

	reply := models.CommentReply{
		ID:         s.newID(),
		UserID:     author.ID,
		UserName:   author.Name,
		UserAvatar: author.Avatar,
		Text:       in.Text,
		CreatedAt:  s.now().UTC(),
	}
	comments[i].Replies = append(comments[i].Replies, reply)
	if err := s.put(ctx, KeyComments, comments); err != nil {
		return nil, err
	}
	s.notifier.Notify()
	return &reply, nil
}

// author loads the posting user. Callers hold s.mu.
func (s *Store) author(ctx context.Context, userID string) (*models.User, error) {
	users, err := s.LoadUsers(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOfUser(users, userID)
	if i < 0 {
		return nil, ErrUserNotFound
	}
	return &users[i], nil
}
