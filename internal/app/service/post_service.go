package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"campus_connect/internal/common"
	"campus_connect/internal/domain/model"
	"campus_connect/internal/domain/repository"
	"campus_connect/internal/domain/roles"
	"campus_connect/internal/moderation"
	"campus_connect/internal/platform/cache"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

type PostService struct {
	postRepo  repository.PostRepository
	appRepo   repository.JobApplicationRepository
	validator moderation.Validator
	emailRule roles.EmailRule
	feedCache *cache.JSONCache
}

func NewPostService(
	postRepo repository.PostRepository,
	appRepo repository.JobApplicationRepository,
	validator moderation.Validator,
	emailRule roles.EmailRule,
	feedCache *cache.JSONCache,
) *PostService {
	return &PostService{
		postRepo:  postRepo,
		appRepo:   appRepo,
		validator: validator,
		emailRule: emailRule,
		feedCache: feedCache,
	}
}

type CreatePostRequest struct {
	Title         string               `json:"title"`
	Content       string               `json:"content"`
	Type          model.PostType       `json:"type"`
	Image         *string              `json:"image,omitempty"`
	Images        []string             `json:"images,omitempty"`
	Attachments   []model.Attachment   `json:"attachments,omitempty"`
	ExternalLinks []model.ExternalLink `json:"external_links,omitempty"`
	CompanyName   *string              `json:"company_name,omitempty"`
	Location      *string              `json:"location,omitempty"`
	ExternalLink  *string              `json:"external_link,omitempty"`
	Salary        *string              `json:"salary,omitempty"`
	EventDate     *time.Time           `json:"event_date,omitempty"`
}

// moderationFields builds the per-field scan list: title and content
// always, company name and location only for job posts.
func moderationFields(title, content string, postType model.PostType, companyName, location *string) []moderation.Field {
	fields := []moderation.Field{
		{Label: "Title", Text: title},
		{Label: "Content", Text: content},
	}
	if postType == model.PostJob {
		if companyName != nil {
			fields = append(fields, moderation.Field{Label: "Company Name", Text: *companyName})
		}
		if location != nil {
			fields = append(fields, moderation.Field{Label: "Location", Text: *location})
		}
	}
	return fields
}

// CreatePost moderates the submission, checks authorization for the post
// type and persists it. Both authorization mechanisms are in play here:
// club updates need the fine-grained CREATE_CLUB_POST action, while job
// and event posts use the coarse role gate.
func (s *PostService) CreatePost(ctx context.Context, author *model.User, req CreatePostRequest) (*model.Post, error) {
	if req.Title == "" || req.Content == "" {
		return nil, fmt.Errorf("title and content are required: %w", common.ErrBadRequest)
	}
	if req.Type == "" {
		req.Type = model.PostGeneral
	}
	if !model.KnownPostType(req.Type) {
		return nil, fmt.Errorf("unknown post type %q: %w", req.Type, common.ErrBadRequest)
	}

	if err := moderation.CheckFields(s.validator,
		moderationFields(req.Title, req.Content, req.Type, req.CompanyName, req.Location)...); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), common.ErrValidation)
	}

	snapshot := author.Snapshot()
	if req.Type == model.PostClubUpdate && !roles.Permissions(snapshot).Has(roles.ActionCreateClubPost) {
		return nil, fmt.Errorf("only club members can post club updates: %w", common.ErrForbidden)
	}
	if req.Type == model.PostJob || req.Type == model.PostEvent {
		resolved := s.emailRule.Resolve(snapshot)
		if !roles.HasRole(resolved, roles.RoleAlumni, roles.RoleAdmin) {
			return nil, fmt.Errorf("only alumni can post %ss: %w",
				strings.ToLower(string(req.Type)), common.ErrForbidden)
		}
	}

	post := &model.Post{
		ID:            uuid.NewString(),
		Title:         req.Title,
		Content:       req.Content,
		Type:          req.Type,
		Image:         req.Image,
		Images:        req.Images,
		Attachments:   req.Attachments,
		ExternalLinks: req.ExternalLinks,
		AuthorID:      author.ID,
		ClubName:      author.ClubName,
	}
	// Unique enough for shareable URLs without a retry loop.
	post.Slug = slug.Make(req.Title) + "-" + post.ID[:8]

	if req.Type == model.PostJob {
		post.CompanyName = req.CompanyName
		post.Salary = req.Salary
	}
	if req.Type == model.PostJob || req.Type == model.PostEvent {
		post.Location = req.Location
		post.ExternalLink = req.ExternalLink
	}
	if req.Type == model.PostEvent {
		post.EventDate = req.EventDate
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.invalidateFeed(ctx)
	return post, nil
}

func (s *PostService) GetPost(ctx context.Context, id string) (*model.Post, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return post, nil
}

func feedKey(postType model.PostType) string {
	return "feed:posts:" + string(postType)
}

func (s *PostService) invalidateFeed(ctx context.Context) {
	keys := []string{feedKey("")}
	for _, t := range []model.PostType{
		model.PostGeneral, model.PostClubUpdate, model.PostJob,
		model.PostResource, model.PostEvent, model.PostExperience,
	} {
		keys = append(keys, feedKey(t))
	}
	if err := s.feedCache.Invalidate(ctx, keys...); err != nil {
		log.Printf("feed cache invalidation failed: %v", err)
	}
}

// ListPosts serves the feed, newest first, through the cache.
func (s *PostService) ListPosts(ctx context.Context, postType model.PostType) ([]model.Post, error) {
	if postType != "" && !model.KnownPostType(postType) {
		return nil, fmt.Errorf("unknown post type %q: %w", postType, common.ErrBadRequest)
	}

	var cached []model.Post
	hit, err := s.feedCache.Get(ctx, feedKey(postType), &cached)
	if err != nil {
		log.Printf("feed cache read failed: %v", err)
	}
	if hit {
		return cached, nil
	}

	posts, err := s.postRepo.List(ctx, postType)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	if err := s.feedCache.Set(ctx, feedKey(postType), posts); err != nil {
		log.Printf("feed cache write failed: %v", err)
	}
	return posts, nil
}

type UpdatePostRequest struct {
	Title         *string               `json:"title,omitempty"`
	Content       *string               `json:"content,omitempty"`
	Image         *string               `json:"image,omitempty"`
	Images        *[]string             `json:"images,omitempty"`
	Attachments   *[]model.Attachment   `json:"attachments,omitempty"`
	ExternalLinks *[]model.ExternalLink `json:"external_links,omitempty"`
	CompanyName   *string               `json:"company_name,omitempty"`
	Location      *string               `json:"location,omitempty"`
	ExternalLink  *string               `json:"external_link,omitempty"`
	Salary        *string               `json:"salary,omitempty"`
	EventDate     *time.Time            `json:"event_date,omitempty"`
}

// canMutatePost: author or admin.
func canMutatePost(post *model.Post, actor *model.User) bool {
	if post.AuthorID == actor.ID {
		return true
	}
	return roles.Permissions(actor.Snapshot()).Has(roles.ActionModerateContent)
}

func (s *PostService) UpdatePost(ctx context.Context, actor *model.User, id string, req UpdatePostRequest) (*model.Post, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canMutatePost(post, actor) {
		return nil, fmt.Errorf("unauthorized to update this post: %w", common.ErrForbidden)
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.Image != nil {
		post.Image = req.Image
	}
	if req.Images != nil {
		post.Images = *req.Images
	}
	if req.Attachments != nil {
		post.Attachments = *req.Attachments
	}
	if req.ExternalLinks != nil {
		post.ExternalLinks = *req.ExternalLinks
	}
	if req.CompanyName != nil {
		post.CompanyName = req.CompanyName
	}
	if req.Location != nil {
		post.Location = req.Location
	}
	if req.ExternalLink != nil {
		post.ExternalLink = req.ExternalLink
	}
	if req.Salary != nil {
		post.Salary = req.Salary
	}
	if req.EventDate != nil {
		post.EventDate = req.EventDate
	}

	// Re-moderate the post as it will now read.
	if err := moderation.CheckFields(s.validator,
		moderationFields(post.Title, post.Content, post.Type, post.CompanyName, post.Location)...); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), common.ErrValidation)
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	s.invalidateFeed(ctx)
	return post, nil
}

func (s *PostService) DeletePost(ctx context.Context, actor *model.User, id string) error {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !canMutatePost(post, actor) {
		return fmt.Errorf("unauthorized to delete this post: %w", common.ErrForbidden)
	}

	if err := s.postRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	s.invalidateFeed(ctx)
	return nil
}

// ToggleLike adds or removes the actor's like.
func (s *PostService) ToggleLike(ctx context.Context, actor *model.User, id string) (*model.Post, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	found := false
	likes := make([]string, 0, len(post.LikeUserIDs))
	for _, uid := range post.LikeUserIDs {
		if uid == actor.ID {
			found = true
			continue
		}
		likes = append(likes, uid)
	}
	if !found {
		likes = append(likes, actor.ID)
	}
	post.LikeUserIDs = likes

	if err := s.postRepo.SetLikes(ctx, id, likes); err != nil {
		return nil, fmt.Errorf("failed to update likes: %w", err)
	}

	s.invalidateFeed(ctx)
	return post, nil
}

type AddCommentRequest struct {
	Text string `json:"text"`
}

func (s *PostService) AddComment(ctx context.Context, actor *model.User, postID string, req AddCommentRequest) (*model.Comment, error) {
	if req.Text == "" {
		return nil, fmt.Errorf("comment text is required: %w", common.ErrBadRequest)
	}

	if err := moderation.CheckFields(s.validator,
		moderation.Field{Label: "Comment", Text: req.Text}); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), common.ErrValidation)
	}

	if _, err := s.postRepo.FindByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		ID:     uuid.NewString(),
		PostID: postID,
		UserID: actor.ID,
		Text:   req.Text,
	}
	if err := s.postRepo.AddComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}
	return comment, nil
}

type ApplyToJobRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Batch      string `json:"batch"`
	Phone      string `json:"phone"`
	ResumeURL  string `json:"resume_url"`
	Message    string `json:"message,omitempty"`
}

func (s *PostService) ApplyToJob(ctx context.Context, actor *model.User, postID string, req ApplyToJobRequest) (*model.JobApplication, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.Type != model.PostJob {
		return nil, fmt.Errorf("applications are only accepted on job posts: %w", common.ErrBadRequest)
	}
	if req.Name == "" || req.Email == "" || req.Department == "" || req.Batch == "" ||
		req.Phone == "" || req.ResumeURL == "" {
		return nil, fmt.Errorf("missing required application fields: %w", common.ErrBadRequest)
	}

	if err := moderation.CheckFields(s.validator,
		moderation.Field{Label: "Message", Text: req.Message}); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), common.ErrValidation)
	}

	exists, err := s.appRepo.ExistsForStudent(ctx, postID, actor.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("already applied to this job: %w", common.ErrConflict)
	}

	app := &model.JobApplication{
		ID:         uuid.NewString(),
		JobID:      postID,
		StudentID:  actor.ID,
		AlumniID:   post.AuthorID,
		Name:       req.Name,
		Email:      req.Email,
		Department: req.Department,
		Batch:      req.Batch,
		Phone:      req.Phone,
		ResumeURL:  req.ResumeURL,
		Message:    req.Message,
	}
	if err := s.appRepo.Create(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

// ListJobApplications is restricted to the job's author and admins.
func (s *PostService) ListJobApplications(ctx context.Context, actor *model.User, postID string) ([]model.JobApplication, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.Type != model.PostJob {
		return nil, fmt.Errorf("post has no applications: %w", common.ErrBadRequest)
	}
	if !canMutatePost(post, actor) {
		return nil, fmt.Errorf("unauthorized to view applications: %w", common.ErrForbidden)
	}
	return s.appRepo.ListByJob(ctx, postID)
}
