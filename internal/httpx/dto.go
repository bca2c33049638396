package httpx

import (
	"time"

	"github.com/ariefcatur/go-storefront.git/internal/store"
)

type productJSON struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description"`
	PriceCents   int       `json:"price_cents"`
	Inventory    int       `json:"inventory"`
	CollectionID string    `json:"collection_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toProductJSON(p store.Product) productJSON {
	return productJSON{
		ID:           p.ID,
		Title:        p.Title,
		Slug:         p.Slug,
		Description:  p.Description,
		PriceCents:   p.PriceCents,
		Inventory:    p.Inventory,
		CollectionID: p.CollectionID,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

type collectionJSON struct {
	ID                string  `json:"id"`
	Title             string  `json:"title"`
	FeaturedProductID *string `json:"featured_product_id"`
	ProductsCount     int     `json:"products_count"`
}

func toCollectionJSON(c store.Collection) collectionJSON {
	return collectionJSON{
		ID:                c.ID,
		Title:             c.Title,
		FeaturedProductID: c.FeaturedProductID,
		ProductsCount:     c.ProductsCount,
	}
}

type productSummaryJSON struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	PriceCents int    `json:"price_cents"`
}

type cartItemJSON struct {
	ID         string             `json:"id"`
	Product    productSummaryJSON `json:"product"`
	Qty        int                `json:"qty"`
	TotalCents int                `json:"total_cents"`
}

type cartJSON struct {
	ID         string         `json:"id"`
	CreatedAt  time.Time      `json:"created_at"`
	Items      []cartItemJSON `json:"items"`
	TotalCents int            `json:"total_cents"`
}

func toCartJSON(c store.Cart) cartJSON {
	out := cartJSON{ID: c.ID, CreatedAt: c.CreatedAt, Items: []cartItemJSON{}}
	for _, it := range c.Items {
		out.Items = append(out.Items, cartItemJSON{
			ID: it.ID,
			Product: productSummaryJSON{
				ID:         it.Product.ID,
				Title:      it.Product.Title,
				PriceCents: it.Product.PriceCents,
			},
			Qty:        it.Qty,
			TotalCents: it.Qty * it.Product.PriceCents,
		})
	}
	out.TotalCents = c.TotalCents()
	return out
}

type orderItemJSON struct {
	ID         string             `json:"id"`
	Product    productSummaryJSON `json:"product"`
	Qty        int                `json:"qty"`
	PriceCents int                `json:"price_cents"` // snapshot
}

type orderJSON struct {
	ID            string          `json:"id"`
	CustomerID    string          `json:"customer_id"`
	PlacedAt      time.Time       `json:"placed_at"`
	PaymentStatus string          `json:"payment_status"`
	TotalCents    int             `json:"total_cents"`
	Items         []orderItemJSON `json:"items,omitempty"`
}

func toOrderJSON(o store.Order) orderJSON {
	out := orderJSON{
		ID:            o.ID,
		CustomerID:    o.CustomerID,
		PlacedAt:      o.PlacedAt,
		PaymentStatus: string(o.PaymentStatus),
		TotalCents:    o.TotalCents,
	}
	for _, it := range o.Items {
		out.Items = append(out.Items, orderItemJSON{
			ID: it.ID,
			Product: productSummaryJSON{
				ID:         it.Product.ID,
				Title:      it.Product.Title,
				PriceCents: it.Product.PriceCents,
			},
			Qty:        it.Qty,
			PriceCents: it.PriceCents,
		})
	}
	return out
}

type customerJSON struct {
	ID         string     `json:"id"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone"`
	BirthDate  *time.Time `json:"birth_date"`
	Membership string     `json:"membership"`
}

func toCustomerJSON(c store.Customer) customerJSON {
	return customerJSON{
		ID:         c.ID,
		FirstName:  c.FirstName,
		LastName:   c.LastName,
		Email:      c.Email,
		Phone:      c.Phone,
		BirthDate:  c.BirthDate,
		Membership: string(c.Membership),
	}
}

type reviewJSON struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
}

func toReviewJSON(rv store.Review) reviewJSON {
	return reviewJSON{
		ID:          rv.ID,
		ProductID:   rv.ProductID,
		Name:        rv.Name,
		Description: rv.Description,
		Date:        rv.Date,
	}
}

type tagJSON struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type taggedItemJSON struct {
	ID       string `json:"id"`
	TagID    string `json:"tag_id"`
	Label    string `json:"label"`
	Kind     string `json:"kind"`
	TargetID string `json:"target_id"`
}

type likedItemJSON struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	Kind     string `json:"kind"`
	TargetID string `json:"target_id"`
}
