package store

import "time"

type Product struct {
	ID           string
	Title        string
	Slug         string
	Description  string
	PriceCents   int
	Inventory    int
	CollectionID string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Collection struct {
	ID                string
	Title             string
	FeaturedProductID *string
	ProductsCount     int // diisi saat list, bukan kolom
}

type Promotion struct {
	ID          string
	Description string
	Discount    float64
}

type Membership string

const (
	MembershipBronze Membership = "BRONZE"
	MembershipSilver Membership = "SILVER"
	MembershipGold   Membership = "GOLD"
)

func (m Membership) Valid() bool {
	switch m {
	case MembershipBronze, MembershipSilver, MembershipGold:
		return true
	}
	return false
}

type Customer struct {
	ID         string
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	BirthDate  *time.Time
	Membership Membership
}

type Address struct {
	ID         string
	CustomerID string
	Street     string
	City       string
	Zip        *string
}

type Cart struct {
	ID        string
	CreatedAt time.Time
	Items     []CartItem
}

// TotalCents menjumlahkan qty * harga produk saat ini.
func (c Cart) TotalCents() int {
	total := 0
	for _, it := range c.Items {
		total += it.Qty * it.Product.PriceCents
	}
	return total
}

type CartItem struct {
	ID        string
	CartID    string
	ProductID string
	Qty       int
	Product   ProductSummary
}

// ProductSummary: ringkasan produk untuk nested cart/order item.
type ProductSummary struct {
	ID         string
	Title      string
	PriceCents int
}

type Order struct {
	ID            string
	CustomerID    string
	PlacedAt      time.Time
	PaymentStatus PaymentStatus
	TotalCents    int
	Items         []OrderItem
}

type OrderItem struct {
	ID         string
	OrderID    string
	ProductID  string
	Qty        int
	PriceCents int // snapshot harga saat checkout
	Product    ProductSummary
}

type Review struct {
	ID          string
	ProductID   string
	Name        string
	Description string
	Date        time.Time
}

type Tag struct {
	ID    string
	Label string
}

type TaggedItem struct {
	ID       string
	TagID    string
	Kind     RefKind
	TargetID string
	Label    string // diisi saat list (join ke tags)
}

type LikedItem struct {
	ID       string
	UserID   string
	Kind     RefKind
	TargetID string
}
