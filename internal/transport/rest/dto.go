package rest

import (
	"time"

	"github.com/google/uuid"

	accountdomain "github.com/voltshop/storefront-api/internal/domains/accounts/domain"
	catalogdomain "github.com/voltshop/storefront-api/internal/domains/catalog/domain"
	orderdomain "github.com/voltshop/storefront-api/internal/domains/orders/domain"
	reportingports "github.com/voltshop/storefront-api/internal/domains/reporting/ports"
)

// Wire types mirror the storefront client's JSON contract. The password hash
// never leaves the accounts package boundary.

type accountResponse struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	IsAdmin bool      `json:"isAdmin"`
	Token   string    `json:"token,omitempty"`
}

func fromAccount(account *accountdomain.Account, token string) accountResponse {
	return accountResponse{
		ID:      account.ID,
		Name:    account.Name,
		Email:   account.Email,
		IsAdmin: account.Admin,
		Token:   token,
	}
}

func fromAccountList(accounts []*accountdomain.Account) []accountResponse {
	out := make([]accountResponse, 0, len(accounts))
	for _, account := range accounts {
		out = append(out, fromAccount(account, ""))
	}
	return out
}

type specsPayload struct {
	Processor  string `json:"processor"`
	RAM        string `json:"ram"`
	ScreenSize string `json:"screenSize"`
	Battery    string `json:"battery"`
}

type reviewResponse struct {
	ID        uuid.UUID `json:"id"`
	AccountID uuid.UUID `json:"accountId"`
	Name      string    `json:"name"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

type productResponse struct {
	ID           uuid.UUID        `json:"id"`
	Name         string           `json:"name"`
	Image        string           `json:"image"`
	Gallery      []string         `json:"gallery"`
	Brand        string           `json:"brand"`
	Category     string           `json:"category"`
	Description  string           `json:"description"`
	Specs        specsPayload     `json:"specs"`
	Rating       float64          `json:"rating"`
	NumReviews   int              `json:"numReviews"`
	Price        float64          `json:"price"`
	CountInStock int              `json:"countInStock"`
	Featured     bool             `json:"featured"`
	Reviews      []reviewResponse `json:"reviews"`
	CreatedAt    time.Time        `json:"createdAt"`
}

func fromProduct(product *catalogdomain.Product) productResponse {
	reviews := make([]reviewResponse, 0, len(product.Reviews))
	for _, review := range product.Reviews {
		reviews = append(reviews, reviewResponse{
			ID:        review.ID,
			AccountID: review.AccountID,
			Name:      review.Name,
			Rating:    review.Rating,
			Comment:   review.Comment,
			CreatedAt: review.CreatedAt,
		})
	}
	return productResponse{
		ID:           product.ID,
		Name:         product.Name,
		Image:        product.Image,
		Gallery:      product.Gallery,
		Brand:        product.Brand,
		Category:     product.Category,
		Description:  product.Description,
		Specs: specsPayload{
			Processor:  product.Specs.Processor,
			RAM:        product.Specs.RAM,
			ScreenSize: product.Specs.ScreenSize,
			Battery:    product.Specs.Battery,
		},
		Rating:       product.Rating,
		NumReviews:   product.NumReviews,
		Price:        product.Price,
		CountInStock: product.CountInStock,
		Featured:     product.Featured,
		Reviews:      reviews,
		CreatedAt:    product.CreatedAt,
	}
}

func fromProductList(products []*catalogdomain.Product) []productResponse {
	out := make([]productResponse, 0, len(products))
	for _, product := range products {
		out = append(out, fromProduct(product))
	}
	return out
}

type productPageResponse struct {
	Products []productResponse `json:"products"`
	Page     int               `json:"page"`
	Pages    int               `json:"pages"`
}

type homepageResponse struct {
	NewArrivals []productResponse `json:"newArrivals"`
	BestSellers []productResponse `json:"bestSellers"`
	Featured    []productResponse `json:"featured"`
}

type shippingAddressPayload struct {
	Address    string `json:"address"`
	Town       string `json:"town"`
	County     string `json:"county"`
	PostalCode string `json:"postalCode"`
	Phone      string `json:"phone"`
}

type orderItemResponse struct {
	ProductID uuid.UUID `json:"productId"`
	Name      string    `json:"name"`
	Image     string    `json:"image"`
	Price     float64   `json:"price"`
	Qty       int       `json:"qty"`
}

type paymentResultResponse struct {
	Reference    string `json:"reference,omitempty"`
	Status       string `json:"status,omitempty"`
	EmailAddress string `json:"emailAddress,omitempty"`
	CompletedAt  string `json:"completedAt,omitempty"`
}

type purchaserResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name,omitempty"`
	Email string    `json:"email,omitempty"`
}

type orderResponse struct {
	ID              uuid.UUID              `json:"id"`
	Purchaser       purchaserResponse      `json:"purchaser"`
	Items           []orderItemResponse    `json:"items"`
	ShippingAddress shippingAddressPayload `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod"`
	PaymentResult   paymentResultResponse  `json:"paymentResult"`
	ItemsTotal      float64                `json:"itemsTotal"`
	ShippingFee     float64                `json:"shippingFee"`
	Tax             float64                `json:"tax"`
	GrandTotal      float64                `json:"grandTotal"`
	IsPaid          bool                   `json:"isPaid"`
	PaidAt          *time.Time             `json:"paidAt,omitempty"`
	IsDelivered     bool                   `json:"isDelivered"`
	DeliveredAt     *time.Time             `json:"deliveredAt,omitempty"`
	CreatedAt       time.Time              `json:"createdAt"`
}

func fromOrder(order *orderdomain.Order, purchaser purchaserResponse) orderResponse {
	items := make([]orderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, orderItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Image:     item.Image,
			Price:     item.Price,
			Qty:       item.Qty,
		})
	}
	return orderResponse{
		ID:        order.ID,
		Purchaser: purchaser,
		Items:     items,
		ShippingAddress: shippingAddressPayload{
			Address:    order.ShippingAddress.Address,
			Town:       order.ShippingAddress.Town,
			County:     order.ShippingAddress.County,
			PostalCode: order.ShippingAddress.PostalCode,
			Phone:      order.ShippingAddress.Phone,
		},
		PaymentMethod: order.PaymentMethod,
		PaymentResult: paymentResultResponse{
			Reference:    order.PaymentResult.Reference,
			Status:       order.PaymentResult.Status,
			EmailAddress: order.PaymentResult.EmailAddress,
			CompletedAt:  order.PaymentResult.CompletedAt,
		},
		ItemsTotal:  order.ItemsTotal,
		ShippingFee: order.ShippingFee,
		Tax:         order.Tax,
		GrandTotal:  order.GrandTotal,
		IsPaid:      order.Paid,
		PaidAt:      optionalTime(order.PaidAt),
		IsDelivered: order.Delivered,
		DeliveredAt: optionalTime(order.DeliveredAt),
		CreatedAt:   order.CreatedAt,
	}
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

type dashboardResponse struct {
	Summary struct {
		TotalOrders      int     `json:"totalOrders"`
		TotalRevenue     float64 `json:"totalRevenue"`
		DeliveredOrders  int     `json:"deliveredOrders"`
		DeliveredRevenue float64 `json:"deliveredRevenue"`
		PendingOrders    int     `json:"pendingOrders"`
		PendingRevenue   float64 `json:"pendingRevenue"`
		CancelledOrders  int     `json:"cancelledOrders"`
		CancelledRevenue float64 `json:"cancelledRevenue"`
	} `json:"summary"`
	Revenue []monthlyPointResponse `json:"revenue"`
	Orders  []recentOrderResponse  `json:"orders"`
}

type monthlyPointResponse struct {
	Year    int     `json:"year"`
	Month   int     `json:"month"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

type recentOrderResponse struct {
	OrderID       uuid.UUID `json:"orderId"`
	PurchaserName string    `json:"purchaserName"`
	GrandTotal    float64   `json:"grandTotal"`
	IsPaid        bool      `json:"isPaid"`
	IsDelivered   bool      `json:"isDelivered"`
	CreatedAt     time.Time `json:"createdAt"`
}

func fromDashboard(dashboard *reportingports.Dashboard) dashboardResponse {
	var out dashboardResponse
	out.Summary.TotalOrders = dashboard.Summary.TotalOrders
	out.Summary.TotalRevenue = dashboard.Summary.TotalRevenue
	out.Summary.DeliveredOrders = dashboard.Summary.DeliveredOrders
	out.Summary.DeliveredRevenue = dashboard.Summary.DeliveredRevenue
	out.Summary.PendingOrders = dashboard.Summary.PendingOrders
	out.Summary.PendingRevenue = dashboard.Summary.PendingRevenue
	out.Summary.CancelledOrders = dashboard.Summary.UnpaidOrders
	out.Summary.CancelledRevenue = dashboard.Summary.UnpaidRevenue
	out.Revenue = make([]monthlyPointResponse, 0, len(dashboard.Monthly))
	for _, point := range dashboard.Monthly {
		out.Revenue = append(out.Revenue, monthlyPointResponse{
			Year:    point.Year,
			Month:   int(point.Month),
			Orders:  point.Orders,
			Revenue: point.Revenue,
		})
	}
	out.Orders = make([]recentOrderResponse, 0, len(dashboard.Recent))
	for _, row := range dashboard.Recent {
		out.Orders = append(out.Orders, recentOrderResponse{
			OrderID:       row.OrderID,
			PurchaserName: row.PurchaserName,
			GrandTotal:    row.GrandTotal,
			IsPaid:        row.Paid,
			IsDelivered:   row.Delivered,
			CreatedAt:     row.CreatedAt,
		})
	}
	return out
}
