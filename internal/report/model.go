package report

import (
	"time"

	"github.com/shopspring/decimal"
)

type GroupBy string

const (
	GroupByHour  GroupBy = "hour"
	GroupByDay   GroupBy = "day"
	GroupByWeek  GroupBy = "week"
	GroupByMonth GroupBy = "month"
	GroupByYear  GroupBy = "year"
)

func (g GroupBy) Valid() bool {
	switch g {
	case GroupByHour, GroupByDay, GroupByWeek, GroupByMonth, GroupByYear:
		return true
	}
	return false
}

// Query is the raw window taken from the request.
type Query struct {
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
	GroupBy   string `form:"groupBy"`
}

// Window is a resolved, inclusive time range.
type Window struct {
	Start   time.Time `json:"startDate"`
	End     time.Time `json:"endDate"`
	GroupBy GroupBy   `json:"groupBy"`
}

type SalesBucket struct {
	Period            time.Time       `json:"period"`
	TotalSales        decimal.Decimal `json:"totalSales"`
	OrderCount        int             `json:"orderCount"`
	AverageOrderValue decimal.Decimal `json:"averageOrderValue"`
}

type ProductSales struct {
	ProductID uint            `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Revenue   decimal.Decimal `json:"revenue"`
}

type CustomerSpend struct {
	UserID     uint            `json:"userId"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	OrderCount int             `json:"orderCount"`
	TotalSpent decimal.Decimal `json:"totalSpent"`
}

type SalesSummary struct {
	TotalSales        decimal.Decimal `json:"totalSales"`
	OrderCount        int             `json:"orderCount"`
	AverageOrderValue decimal.Decimal `json:"averageOrderValue"`
}

type SalesReport struct {
	Window       Window          `json:"window"`
	Buckets      []SalesBucket   `json:"buckets"`
	TopProducts  []ProductSales  `json:"topProducts"`
	TopCustomers []CustomerSpend `json:"topCustomers"`
	Summary      SalesSummary    `json:"summary"`
}

type ServiceBucket struct {
	Period time.Time `json:"period"`
	Count  int       `json:"count"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type ServiceTypeCount struct {
	ServiceTypeID uint   `json:"serviceTypeId"`
	Name          string `json:"name"`
	Count         int    `json:"count"`
}

type ServiceSummary struct {
	Total          int     `json:"total"`
	Completed      int     `json:"completed"`
	CompletionRate float64 `json:"completionRate"`
}

type ServiceReport struct {
	Window        Window             `json:"window"`
	Buckets       []ServiceBucket    `json:"buckets"`
	ByStatus      []StatusCount      `json:"byStatus"`
	ByServiceType []ServiceTypeCount `json:"byServiceType"`
	Summary       ServiceSummary     `json:"summary"`
}

// TrendPoint is one day of the dashboard trend. Days with no activity on one
// side carry zero for that side.
type TrendPoint struct {
	Date            string          `json:"date"`
	Sales           decimal.Decimal `json:"sales"`
	Orders          int             `json:"orders"`
	ServiceRequests int             `json:"serviceRequests"`
}

type RecentOrder struct {
	ID          uint            `json:"id"`
	OrderNumber string          `json:"orderNumber"`
	UserID      uint            `json:"userId"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type Dashboard struct {
	Window        Window         `json:"window"`
	Sales         SalesSummary   `json:"sales"`
	Services      ServiceSummary `json:"services"`
	Trend         []TrendPoint   `json:"trend"`
	LowStockCount int            `json:"lowStockCount"`
	RecentOrders  []RecentOrder  `json:"recentOrders"`
}
