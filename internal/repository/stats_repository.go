package repository

import (
	"time"

	"gorm.io/gorm"
)

type OverviewStats struct {
	TotalOrders     int64   `json:"total_orders"`
	TotalRevenue    float64 `json:"total_revenue"`
	PendingOrders   int64   `json:"pending_orders"`
	CompletedOrders int64   `json:"completed_orders"`
	AvgOrderValue   float64 `json:"avg_order_value"`
	AvgTip          float64 `json:"avg_tip"`
}

// ChartPoint is one labelled value of a dashboard series.
type ChartPoint struct {
	Label string
	Value float64
}

type RecentOrder struct {
	OrderID   uint
	CreatedAt time.Time
	Total     float64
	Status    string
	Customer  string
}

// StatsRepository runs the read-only aggregate queries behind the admin dashboard.
type StatsRepository interface {
	Overview() (*OverviewStats, error)
	DailyRevenue() ([]ChartPoint, error)
	TopItems(limit int) ([]ChartPoint, error)
	RecentOrders(limit int) ([]RecentOrder, error)
	OrdersByStatus() ([]ChartPoint, error)
	QuantityByCategory() ([]ChartPoint, error)
	TopCustomers(limit int) ([]ChartPoint, error)
}

type statsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) Overview() (*OverviewStats, error) {
	var stats OverviewStats
	err := r.db.Raw(`
		SELECT
			COUNT(*) AS total_orders,
			COALESCE(SUM(total), 0) AS total_revenue,
			COALESCE(SUM(CASE WHEN status = 'pending' THEN 1 ELSE 0 END), 0) AS pending_orders,
			COALESCE(SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END), 0) AS completed_orders,
			COALESCE(AVG(total), 0) AS avg_order_value,
			COALESCE(AVG(tip), 0) AS avg_tip
		FROM orders
	`).Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// DailyRevenue groups order totals by calendar day, oldest first.
func (r *statsRepository) DailyRevenue() ([]ChartPoint, error) {
	var points []ChartPoint
	err := r.db.Raw(`
		SELECT CAST(DATE(created_at) AS TEXT) AS label, SUM(total) AS value
		FROM orders
		GROUP BY DATE(created_at)
		ORDER BY label ASC
	`).Scan(&points).Error
	return points, err
}

func (r *statsRepository) TopItems(limit int) ([]ChartPoint, error) {
	var points []ChartPoint
	err := r.db.Raw(`
		SELECT name AS label, SUM(quantity) AS value
		FROM order_items
		GROUP BY name
		ORDER BY value DESC, label ASC
		LIMIT ?
	`, limit).Scan(&points).Error
	return points, err
}

func (r *statsRepository) RecentOrders(limit int) ([]RecentOrder, error) {
	var orders []RecentOrder
	err := r.db.Raw(`
		SELECT o.order_id, o.created_at, o.total, o.status, COALESCE(u.name, 'Guest') AS customer
		FROM orders o
		LEFT JOIN users u ON o.user_id = u.user_id
		ORDER BY o.created_at DESC, o.order_id DESC
		LIMIT ?
	`, limit).Scan(&orders).Error
	return orders, err
}

func (r *statsRepository) OrdersByStatus() ([]ChartPoint, error) {
	var points []ChartPoint
	err := r.db.Raw(`
		SELECT status AS label, COUNT(*) AS value
		FROM orders
		GROUP BY status
		ORDER BY label
	`).Scan(&points).Error
	return points, err
}

func (r *statsRepository) QuantityByCategory() ([]ChartPoint, error) {
	var points []ChartPoint
	err := r.db.Raw(`
		SELECT m.category AS label, SUM(oi.quantity) AS value
		FROM order_items oi
		JOIN menu_items m ON m.item_id = oi.item_id
		GROUP BY m.category
		ORDER BY value DESC, label ASC
	`).Scan(&points).Error
	return points, err
}

func (r *statsRepository) TopCustomers(limit int) ([]ChartPoint, error) {
	var points []ChartPoint
	err := r.db.Raw(`
		SELECT u.name AS label, SUM(o.total) AS value
		FROM orders o
		JOIN users u ON u.user_id = o.user_id
		GROUP BY u.user_id, u.name
		ORDER BY value DESC, label ASC
		LIMIT ?
	`, limit).Scan(&points).Error
	return points, err
}
