package handlers

import (
	"context"

	"github.com/anonto42/pixgram/backend/internal/models"
	"github.com/anonto42/pixgram/backend/internal/repositories"
)

// enricher attaches authors, counts and recent comments to listings. Each
// call issues a fixed number of batch queries however many items it gets.
type enricher struct {
	users    repositories.UserRepository
	likes    repositories.LikeRepository
	comments repositories.CommentRepository
}

func newEnricher(users repositories.UserRepository, likes repositories.LikeRepository, comments repositories.CommentRepository) *enricher {
	return &enricher{users: users, likes: likes, comments: comments}
}

// posts enriches a listing; likedByMe is filled in when viewerID is set.
func (e *enricher) posts(ctx context.Context, viewerID string, posts []models.Post) ([]models.PostWithDetails, error) {
	details := make([]models.PostWithDetails, 0, len(posts))
	if len(posts) == 0 {
		return details, nil
	}

	postIDs := make([]uint, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	likeCounts, err := e.likes.GetLikesCountByPostIDs(ctx, postIDs)
	if err != nil {
		return nil, err
	}
	commentCounts, err := e.comments.GetCommentsCountByPostIDs(ctx, postIDs)
	if err != nil {
		return nil, err
	}
	recent, err := e.comments.GetRecentCommentsByPostIDs(ctx, postIDs, recentCommentsShown)
	if err != nil {
		return nil, err
	}
	liked, err := e.likes.GetLikedPostIDs(ctx, viewerID, postIDs)
	if err != nil {
		return nil, err
	}

	userIDs := make([]string, 0, len(posts))
	for _, p := range posts {
		userIDs = append(userIDs, p.UserID)
	}
	for _, comments := range recent {
		for _, cm := range comments {
			userIDs = append(userIDs, cm.UserID)
		}
	}
	users, err := e.users.GetUsersByIDs(ctx, uniqueStrings(userIDs))
	if err != nil {
		return nil, err
	}

	for _, p := range posts {
		details = append(details, models.PostWithDetails{
			Post:         p,
			User:         compactUser(users, p.UserID),
			LikeCount:    likeCounts[p.ID],
			CommentCount: commentCounts[p.ID],
			LikedByMe:    liked[p.ID],
			Comments:     withUsers(recent[p.ID], users),
		})
	}
	return details, nil
}

func (e *enricher) post(ctx context.Context, viewerID string, post models.Post) (*models.PostWithDetails, error) {
	details, err := e.posts(ctx, viewerID, []models.Post{post})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

func (e *enricher) commentList(ctx context.Context, comments []models.Comment) ([]models.CommentWithUser, error) {
	userIDs := make([]string, len(comments))
	for i, cm := range comments {
		userIDs[i] = cm.UserID
	}
	users, err := e.users.GetUsersByIDs(ctx, uniqueStrings(userIDs))
	if err != nil {
		return nil, err
	}
	return withUsers(comments, users), nil
}

func (e *enricher) stories(ctx context.Context, stories []models.Story) ([]models.StoryWithUser, error) {
	userIDs := make([]string, len(stories))
	for i, s := range stories {
		userIDs[i] = s.UserID
	}
	users, err := e.users.GetUsersByIDs(ctx, uniqueStrings(userIDs))
	if err != nil {
		return nil, err
	}

	result := make([]models.StoryWithUser, len(stories))
	for i, s := range stories {
		result[i] = models.StoryWithUser{Story: s, User: compactUser(users, s.UserID)}
	}
	return result, nil
}

func withUsers(comments []models.Comment, users map[string]models.User) []models.CommentWithUser {
	result := make([]models.CommentWithUser, len(comments))
	for i, cm := range comments {
		result[i] = models.CommentWithUser{Comment: cm, User: compactUser(users, cm.UserID)}
	}
	return result
}

// compactUser falls back to a bare ID when the author row is gone.
func compactUser(users map[string]models.User, id string) models.UserCompact {
	if u, ok := users[id]; ok {
		return u.ToCompact()
	}
	return models.UserCompact{ID: id}
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	unique := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		unique = append(unique, v)
	}
	return unique
}
