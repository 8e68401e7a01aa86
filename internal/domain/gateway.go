package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Attachment is one binary part of a multipart submission, in the order the
// serializer assigned.
type Attachment struct {
	Name        string
	ContentType string
	Data        []byte
}

// Submission is the finished two-part payload for one save: the JSON document
// and the ordered attachment list.
type Submission struct {
	ProductID ID
	Type      ProductType
	Document  []byte
	Files     []Attachment
}

// ProductSummary is the read-only row shape for the admin product table.
type ProductSummary struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	SKU         string   `json:"sku"`
	ProductCode string   `json:"productCode"`
	Slug        string   `json:"slug"`
	Thumbnail   string   `json:"thumbnail"`
	CategoryIDs []string `json:"categoryIds"`
}

// SubmissionBuilder validates a tree and produces the outbound submission.
// It must never mutate the tree it reads.
type SubmissionBuilder func(*Product) (*Submission, error)

// CatalogGateway is the REST backend collaborator: it fetches the hydrated
// tree for an edit session and sends the finished submission back.
type CatalogGateway interface {
	FetchProduct(ctx context.Context, id string) (*Product, error)
	ListProducts(ctx context.Context, page, limit int) ([]ProductSummary, int, error)
	SubmitProduct(ctx context.Context, sub *Submission) error
	DeleteProduct(ctx context.Context, id string) error
}

// Draft is an autosaved snapshot of an edit session, so an interrupted edit
// can be resumed. Pending image files are not part of the snapshot.
type Draft struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID string    `gorm:"size:140;uniqueIndex"`
	Type      string    `gorm:"size:20"`
	Snapshot  []byte    `gorm:"type:jsonb"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type DraftRepo interface {
	Save(ctx context.Context, d *Draft) error
	FindByProduct(ctx context.Context, productID string) (*Draft, error)
	Delete(ctx context.Context, productID string) error
}
