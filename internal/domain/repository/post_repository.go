package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"campus_connect/internal/common"
	"campus_connect/internal/domain/model"
)

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id string) (*model.Post, error)
	List(ctx context.Context, postType model.PostType) ([]model.Post, error)
	Update(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, id string) error
	SetLikes(ctx context.Context, id string, likeUserIDs []string) error
	AddComment(ctx context.Context, comment *model.Comment) error
	ListComments(ctx context.Context, postID string) ([]model.Comment, error)
}

type pgPostRepository struct {
	db *sql.DB
}

func NewPgPostRepository(db *sql.DB) PostRepository {
	return &pgPostRepository{db: db}
}

// Multi-valued fields (images, attachments, external links, likes) live in
// JSONB columns; only comments get their own table.
const postColumns = `p.id, p.slug, p.title, p.content, p.type, p.image, p.images,
	p.attachments, p.external_links, p.author_id, p.club_name, p.company_name,
	p.location, p.external_link, p.salary, p.event_date, p.likes,
	p.created_at, p.updated_at, u.name, u.role`

func scanPost(row interface{ Scan(...interface{}) error }) (*model.Post, error) {
	post := &model.Post{}
	var images, attachments, links, likes []byte
	err := row.Scan(
		&post.ID, &post.Slug, &post.Title, &post.Content, &post.Type,
		&post.Image, &images, &attachments, &links, &post.AuthorID,
		&post.ClubName, &post.CompanyName, &post.Location, &post.ExternalLink,
		&post.Salary, &post.EventDate, &likes,
		&post.CreatedAt, &post.UpdatedAt, &post.AuthorName, &post.AuthorRole,
	)
	if err != nil {
		return nil, err
	}
	// JSONB columns default to '[]'; unmarshal failures mean a bad write
	// and should surface.
	if err := json.Unmarshal(images, &post.Images); err != nil {
		return nil, fmt.Errorf("decode images: %w", err)
	}
	if err := json.Unmarshal(attachments, &post.Attachments); err != nil {
		return nil, fmt.Errorf("decode attachments: %w", err)
	}
	if err := json.Unmarshal(links, &post.ExternalLinks); err != nil {
		return nil, fmt.Errorf("decode external links: %w", err)
	}
	if err := json.Unmarshal(likes, &post.LikeUserIDs); err != nil {
		return nil, fmt.Errorf("decode likes: %w", err)
	}
	return post, nil
}

func marshalPostJSON(post *model.Post) (images, attachments, links, likes []byte, err error) {
	if post.Images == nil {
		post.Images = []string{}
	}
	if post.Attachments == nil {
		post.Attachments = []model.Attachment{}
	}
	if post.ExternalLinks == nil {
		post.ExternalLinks = []model.ExternalLink{}
	}
	if post.LikeUserIDs == nil {
		post.LikeUserIDs = []string{}
	}
	if images, err = json.Marshal(post.Images); err != nil {
		return
	}
	if attachments, err = json.Marshal(post.Attachments); err != nil {
		return
	}
	if links, err = json.Marshal(post.ExternalLinks); err != nil {
		return
	}
	likes, err = json.Marshal(post.LikeUserIDs)
	return
}

func (r *pgPostRepository) Create(ctx context.Context, post *model.Post) error {
	images, attachments, links, likes, err := marshalPostJSON(post)
	if err != nil {
		return fmt.Errorf("pgPostRepository.Create marshal: %w", err)
	}
	query := `INSERT INTO posts (id, slug, title, content, type, image, images,
	          attachments, external_links, author_id, club_name, company_name,
	          location, external_link, salary, event_date, likes)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err = r.db.ExecContext(ctx, query,
		post.ID, post.Slug, post.Title, post.Content, post.Type, post.Image,
		images, attachments, links, post.AuthorID, post.ClubName,
		post.CompanyName, post.Location, post.ExternalLink, post.Salary,
		post.EventDate, likes,
	)
	if err != nil {
		return fmt.Errorf("pgPostRepository.Create: %w", err)
	}
	return nil
}

func (r *pgPostRepository) FindByID(ctx context.Context, id string) (*model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts p JOIN users u ON u.id = p.author_id
	          WHERE p.id = $1`
	post, err := scanPost(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgPostRepository.FindByID: %w", err)
	}
	comments, err := r.ListComments(ctx, id)
	if err != nil {
		return nil, err
	}
	post.Comments = comments
	return post, nil
}

func (r *pgPostRepository) List(ctx context.Context, postType model.PostType) ([]model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts p JOIN users u ON u.id = p.author_id`
	args := []interface{}{}
	if postType != "" {
		query += ` WHERE p.type = $1`
		args = append(args, postType)
	}
	query += ` ORDER BY p.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgPostRepository.List: %w", err)
	}
	defer rows.Close()

	var posts []model.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("pgPostRepository.List scan: %w", err)
		}
		posts = append(posts, *post)
	}
	return posts, rows.Err()
}

func (r *pgPostRepository) Update(ctx context.Context, post *model.Post) error {
	images, attachments, links, likes, err := marshalPostJSON(post)
	if err != nil {
		return fmt.Errorf("pgPostRepository.Update marshal: %w", err)
	}
	query := `UPDATE posts SET title = $2, content = $3, type = $4, image = $5,
	          images = $6, attachments = $7, external_links = $8, company_name = $9,
	          location = $10, external_link = $11, salary = $12, event_date = $13,
	          likes = $14, updated_at = NOW()
	          WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query,
		post.ID, post.Title, post.Content, post.Type, post.Image, images,
		attachments, links, post.CompanyName, post.Location, post.ExternalLink,
		post.Salary, post.EventDate, likes,
	)
	if err != nil {
		return fmt.Errorf("pgPostRepository.Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgPostRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgPostRepository.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgPostRepository) SetLikes(ctx context.Context, id string, likeUserIDs []string) error {
	if likeUserIDs == nil {
		likeUserIDs = []string{}
	}
	likes, err := json.Marshal(likeUserIDs)
	if err != nil {
		return fmt.Errorf("pgPostRepository.SetLikes marshal: %w", err)
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE posts SET likes = $2, updated_at = NOW() WHERE id = $1`, id, likes)
	if err != nil {
		return fmt.Errorf("pgPostRepository.SetLikes: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgPostRepository) AddComment(ctx context.Context, comment *model.Comment) error {
	query := `INSERT INTO post_comments (id, post_id, user_id, text)
	          VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query,
		comment.ID, comment.PostID, comment.UserID, comment.Text)
	if err != nil {
		return fmt.Errorf("pgPostRepository.AddComment: %w", err)
	}
	return nil
}

func (r *pgPostRepository) ListComments(ctx context.Context, postID string) ([]model.Comment, error) {
	query := `SELECT id, post_id, user_id, text, created_at FROM post_comments
	          WHERE post_id = $1 ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("pgPostRepository.ListComments: %w", err)
	}
	defer rows.Close()

	var comments []model.Comment
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.UserID, &c.Text, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("pgPostRepository.ListComments scan: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
