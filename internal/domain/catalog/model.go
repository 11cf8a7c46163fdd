package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Category is a node in the category tree. Parent links form a forest;
// the service rejects updates that would introduce a cycle.
type Category struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	Name        string     `db:"name" json:"name"`
	Slug        string     `db:"slug" json:"slug"`
	Description string     `db:"description" json:"description,omitempty"`
	Image       string     `db:"image" json:"image,omitempty"`
	ParentID    *uuid.UUID `db:"parent_id" json:"parentId,omitempty"`
	IsActive    bool       `db:"is_active" json:"isActive"`
	SortOrder   int        `db:"sort_order" json:"sortOrder"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updatedAt"`
}

// Product maps to the products table.
type Product struct {
	ID                   uuid.UUID  `db:"id" json:"id"`
	Name                 string     `db:"name" json:"name"`
	Slug                 string     `db:"slug" json:"slug"`
	Description          string     `db:"description" json:"description"`
	ShortDescription     string     `db:"short_description" json:"shortDescription,omitempty"`
	Brand                string     `db:"brand" json:"brand"`
	CategoryID           uuid.UUID  `db:"category_id" json:"categoryId"`
	SubcategoryID        *uuid.UUID `db:"subcategory_id" json:"subcategoryId,omitempty"`
	Images               []string   `db:"images" json:"images"`
	Price                float64    `db:"price" json:"price"`
	ComparePrice         *float64   `db:"compare_price" json:"comparePrice,omitempty"`
	SKU                  string     `db:"sku" json:"sku"`
	Barcode              string     `db:"barcode" json:"barcode,omitempty"`
	StockQuantity        int        `db:"stock_quantity" json:"stockQuantity"`
	LowStockThreshold    int        `db:"low_stock_threshold" json:"lowStockThreshold"`
	ActiveIngredient     string     `db:"active_ingredient" json:"activeIngredient,omitempty"`
	Strength             string     `db:"strength" json:"strength,omitempty"`
	DosageForm           string     `db:"dosage_form" json:"dosageForm,omitempty"`
	PrescriptionRequired bool       `db:"prescription_required" json:"prescriptionRequired"`
	ControlledSubstance  bool       `db:"controlled_substance" json:"controlledSubstance"`
	ExpiryDate           *time.Time `db:"expiry_date" json:"expiryDate,omitempty"`
	StorageConditions    string     `db:"storage_conditions" json:"storageConditions,omitempty"`
	SideEffects          []string   `db:"side_effects" json:"sideEffects,omitempty"`
	Contraindications    []string   `db:"contraindications" json:"contraindications,omitempty"`
	DrugInteractions     []string   `db:"drug_interactions" json:"drugInteractions,omitempty"`
	PregnancyCategory    string     `db:"pregnancy_category" json:"pregnancyCategory,omitempty"`
	IsActive             bool       `db:"is_active" json:"isActive"`
	IsFeatured           bool       `db:"is_featured" json:"isFeatured"`
	IsOnSale             bool       `db:"is_on_sale" json:"isOnSale"`
	SalePercentage       float64    `db:"sale_percentage" json:"salePercentage"`
	AverageRating        float64    `db:"average_rating" json:"averageRating"`
	TotalReviews         int        `db:"total_reviews" json:"totalReviews"`
	Tags                 []string   `db:"tags" json:"tags,omitempty"`
	CreatedAt            time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt            time.Time  `db:"updated_at" json:"updatedAt"`
}

// SalePrice returns the effective price after any active sale discount.
func (p *Product) SalePrice() float64 {
	if p.IsOnSale && p.SalePercentage > 0 {
		return p.Price * (1 - p.SalePercentage/100)
	}
	return p.Price
}

// InStock reports whether at least qty units are available.
func (p *Product) InStock(qty int) bool {
	return p.StockQuantity >= qty
}

// Filter narrows product listings. Zero values mean "no constraint".
type Filter struct {
	Category             string     // category slug or id, as received from the client
	CategoryID           *uuid.UUID // resolved by the service before hitting the repo
	Brand                string
	MinPrice             *float64
	MaxPrice             *float64
	InStock              bool
	PrescriptionRequired *bool
	OnSale               bool
	Featured             bool
	Search               string
	SortBy               string // price, name, rating, createdAt
	SortOrder            string // asc, desc
	IncludeInactive      bool   // admin listings only
}
